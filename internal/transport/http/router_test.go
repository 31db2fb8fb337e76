package httptransport

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	auditstore "github.com/ustudiopd/EventLive-sub001/internal/audit/store"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/guard"
	authzhandler "github.com/ustudiopd/EventLive-sub001/internal/authz/handler"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/membership"
	agencymembers "github.com/ustudiopd/EventLive-sub001/internal/authz/membership/store/agency"
	clientmembers "github.com/ustudiopd/EventLive-sub001/internal/authz/membership/store/client"
	identityhandler "github.com/ustudiopd/EventLive-sub001/internal/identity/handler"
	identityservice "github.com/ustudiopd/EventLive-sub001/internal/identity/service"
	"github.com/ustudiopd/EventLive-sub001/internal/identity/session"
	profilestore "github.com/ustudiopd/EventLive-sub001/internal/identity/store/profile"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/logger"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/metrics"
	tenancyhandler "github.com/ustudiopd/EventLive-sub001/internal/tenancy/handler"
	tenancyservice "github.com/ustudiopd/EventLive-sub001/internal/tenancy/service"
	agencystore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/agency"
	allowedemailstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/allowedemail"
	clientstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/client"
	domainstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/domain"
	webinarstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/webinar"
	"github.com/ustudiopd/EventLive-sub001/pkg/testutil"
)

// RouterSuite drives the fully assembled router over HTTP, including the
// session middleware, the way a browser or API client would.
type RouterSuite struct {
	suite.Suite
	profiles *profilestore.InMemory
	router   chi.Router
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	log := logger.NewNop()
	m := metrics.NewWith(prometheus.NewRegistry())

	s.profiles = profilestore.NewInMemory()
	tokens := session.NewTokenService("router-test-key")
	identitySvc := identityservice.New(s.profiles, session.NewInMemory(), tokens, time.Hour, log)

	memberships := membership.NewResolver(agencymembers.NewInMemory(), clientmembers.NewInMemory())
	guards := guard.New(identitySvc, memberships, m, log)
	dashboard := guard.NewDashboardResolver(identitySvc, memberships, "/super-admin")
	auditor := audit.NewRecorder(auditstore.NewInMemory(), nil, m, log)

	tenancySvc := tenancyservice.New(guards, tenancyservice.Stores{
		Agencies:      agencystore.NewInMemory(),
		Clients:       clientstore.NewInMemory(),
		Webinars:      webinarstore.NewInMemory(),
		Domains:       domainstore.NewInMemory(),
		AllowedEmails: allowedemailstore.NewInMemory(),
	}, auditor, m, log)

	s.router = New(Deps{
		Identity:  identityhandler.New(identitySvc, log),
		Dashboard: authzhandler.New(dashboard, log),
		Tenancy:   tenancyhandler.New(tenancySvc, log),
		Sessions:  tokens,
		Metrics:   m,
		Logger:    log,
	})
}

// login runs the real login flow and returns the bearer token.
func (s *RouterSuite) login(email string) string {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login", map[string]string{
		"email": email,
	}))
	testutil.AssertStatusOK(s.T(), rr)
	return testutil.UnmarshalResponse[identityhandler.LoginResponse](s.T(), rr).Token
}

func (s *RouterSuite) TestHealthAndMetricsArePublic() {
	testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz")))
	testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics")))
}

func (s *RouterSuite) TestProtectedRoutesNeedASession() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/dashboard"))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/agencies", map[string]string{"name": "X"}))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

func (s *RouterSuite) TestBearerTokenFlow() {
	token := s.login("host@example.com")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/dashboard")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "has_workspace", false)
}

func (s *RouterSuite) TestSessionCookieFlow() {
	token := s.login("host@example.com")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/me")
	req.AddCookie(&http.Cookie{Name: "eventlive_session", Value: token})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
}

func (s *RouterSuite) TestLogoutRevokesToken() {
	token := s.login("leaver@example.com")

	me := testutil.NewRequest(s.T(), http.MethodGet, "/me")
	me.Header.Set("Authorization", "Bearer "+token)
	testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, me))

	out := testutil.NewRequest(s.T(), http.MethodPost, "/auth/logout")
	out.Header.Set("Authorization", "Bearer "+token)
	testutil.AssertStatus(s.T(), testutil.DoRequest(s.router, out), http.StatusNoContent)

	// The token still carries a valid signature, but its session is gone.
	again := testutil.NewRequest(s.T(), http.MethodGet, "/me")
	again.Header.Set("Authorization", "Bearer "+token)
	testutil.AssertStatus(s.T(), testutil.DoRequest(s.router, again), http.StatusUnauthorized)
}

func (s *RouterSuite) TestGarbageTokenIsRejected() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/me")
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

func (s *RouterSuite) TestSuperAdminEndToEnd() {
	token := s.login("root@example.com")

	// Promote after first login; the next request resolves the flag fresh.
	profile, err := s.profiles.FindByEmail(nil, "root@example.com")
	s.Require().NoError(err)
	s.Require().NoError(s.profiles.SetSuperAdmin(nil, profile.ID, true))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/agencies", map[string]string{"name": "Root Agency"})
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	dash := testutil.NewRequest(s.T(), http.MethodGet, "/dashboard")
	dash.Header.Set("Authorization", "Bearer "+token)
	resp := testutil.DoRequest(s.router, dash)
	testutil.AssertStatusOK(s.T(), resp)
	testutil.AssertJSONContains(s.T(), resp, "path", "/super-admin")
}
