// Package httptransport assembles the HTTP API: middleware chain, public
// endpoints, and the session-protected application surface.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authzhandler "github.com/ustudiopd/EventLive-sub001/internal/authz/handler"
	identityhandler "github.com/ustudiopd/EventLive-sub001/internal/identity/handler"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/metrics"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/middleware"
	tenancyhandler "github.com/ustudiopd/EventLive-sub001/internal/tenancy/handler"
)

const requestTimeout = 15 * time.Second

// Deps carries everything the router mounts.
type Deps struct {
	Identity  *identityhandler.Handler
	Dashboard *authzhandler.Handler
	Tenancy   *tenancyhandler.Handler

	Sessions middleware.SessionValidator
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// New builds the full router. Login and health endpoints stay outside the
// session middleware; everything else requires a valid session token.
func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.Identity.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(deps.Sessions, deps.Logger))

		deps.Identity.Register(r)
		deps.Dashboard.Register(r)
		deps.Tenancy.Register(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
