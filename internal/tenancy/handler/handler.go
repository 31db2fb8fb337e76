// Package handler exposes the tenant-tree management API. Authorization is
// not checked here; every service operation runs its own guard, so the
// handler only parses input and translates results.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/service"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/httputil"
	"github.com/ustudiopd/EventLive-sub001/pkg/requestcontext"
)

// Service defines the tenancy operations the handler exposes.
type Service interface {
	CreateAgency(ctx context.Context, name string) (*models.Agency, error)
	GetAgency(ctx context.Context, agencyID id.AgencyID) (*models.Agency, error)
	ListAgencies(ctx context.Context) ([]models.Agency, error)

	CreateClient(ctx context.Context, agencyID id.AgencyID, name string) (*models.Client, error)
	GetClient(ctx context.Context, clientID id.ClientID) (*models.Client, error)
	ListClients(ctx context.Context, agencyID id.AgencyID) ([]models.Client, error)

	CreateWebinar(ctx context.Context, clientID id.ClientID, params service.CreateWebinarParams) (*models.Webinar, error)
	GetWebinar(ctx context.Context, webinarID id.WebinarID) (*models.Webinar, error)
	GetWebinarBySlug(ctx context.Context, clientID id.ClientID, slug string) (*models.Webinar, error)
	CheckConsolePasscode(ctx context.Context, webinarID id.WebinarID, passcode string) error

	CreateDomain(ctx context.Context, agencyID id.AgencyID, rawDomain string) (*models.Domain, error)
	DeleteDomain(ctx context.Context, agencyID id.AgencyID, domainID id.DomainID) error
	ListDomains(ctx context.Context, agencyID id.AgencyID) ([]models.Domain, error)

	AddAllowedEmail(ctx context.Context, webinarID id.WebinarID, rawEmail string) (*models.AllowedEmail, error)
	RemoveAllowedEmail(ctx context.Context, webinarID id.WebinarID, rawEmail string) error
	ListAllowedEmails(ctx context.Context, webinarID id.WebinarID) ([]models.AllowedEmail, error)
}

// Handler wires the tenant-tree endpoints to the tenancy service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts all tenant-tree endpoints. Every route requires a session;
// the router installs the session middleware before calling this.
func (h *Handler) Register(r chi.Router) {
	r.Route("/agencies", func(r chi.Router) {
		r.Post("/", h.HandleCreateAgency)
		r.Get("/", h.HandleListAgencies)
		r.Route("/{agencyID}", func(r chi.Router) {
			r.Get("/", h.HandleGetAgency)
			r.Post("/clients", h.HandleCreateClient)
			r.Get("/clients", h.HandleListClients)
			r.Post("/domains", h.HandleCreateDomain)
			r.Get("/domains", h.HandleListDomains)
			r.Delete("/domains/{domainID}", h.HandleDeleteDomain)
		})
	})

	r.Route("/clients/{clientID}", func(r chi.Router) {
		r.Get("/", h.HandleGetClient)
		r.Post("/webinars", h.HandleCreateWebinar)
		r.Get("/webinars/by-slug/{slug}", h.HandleGetWebinarBySlug)
	})

	r.Route("/webinars/{webinarID}", func(r chi.Router) {
		r.Get("/", h.HandleGetWebinar)
		r.Post("/console", h.HandleConsoleAccess)
		r.Post("/allowed-emails", h.HandleAddAllowedEmail)
		r.Get("/allowed-emails", h.HandleListAllowedEmails)
		r.Delete("/allowed-emails/{email}", h.HandleRemoveAllowedEmail)
	})
}

// HandleCreateAgency handles POST /agencies requests. Super admin only.
func (h *Handler) HandleCreateAgency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateAgencyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	agency, err := h.service.CreateAgency(ctx, req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "agency created",
		"request_id", requestID,
		"agency_id", agency.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, agency)
}

// HandleListAgencies handles GET /agencies requests. Super admin only.
func (h *Handler) HandleListAgencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agencies, err := h.service.ListAgencies(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AgencyListResponse{Agencies: agencies})
}

// HandleGetAgency handles GET /agencies/{agencyID} requests.
func (h *Handler) HandleGetAgency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agencyID, ok := agencyIDParam(w, r)
	if !ok {
		return
	}

	agency, err := h.service.GetAgency(ctx, agencyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, agency)
}

// HandleCreateClient handles POST /agencies/{agencyID}/clients requests.
func (h *Handler) HandleCreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	agencyID, ok := agencyIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateClientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	client, err := h.service.CreateClient(ctx, agencyID, req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "client created",
		"request_id", requestID,
		"agency_id", agencyID,
		"client_id", client.ID,
	)

	httputil.WriteJSON(w, http.StatusCreated, client)
}

// HandleListClients handles GET /agencies/{agencyID}/clients requests.
func (h *Handler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agencyID, ok := agencyIDParam(w, r)
	if !ok {
		return
	}

	clients, err := h.service.ListClients(ctx, agencyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ClientListResponse{Clients: clients})
}

// HandleGetClient handles GET /clients/{clientID} requests.
func (h *Handler) HandleGetClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	client, err := h.service.GetClient(ctx, clientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, client)
}

// HandleCreateWebinar handles POST /clients/{clientID}/webinars requests.
func (h *Handler) HandleCreateWebinar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateWebinarRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	webinar, err := h.service.CreateWebinar(ctx, clientID, service.CreateWebinarParams{
		Title:    req.Title,
		Slug:     req.Slug,
		Passcode: req.Passcode,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "webinar created",
		"request_id", requestID,
		"client_id", clientID,
		"webinar_id", webinar.ID,
	)

	httputil.WriteJSON(w, http.StatusCreated, FromWebinar(webinar))
}

// HandleGetWebinar handles GET /webinars/{webinarID} requests.
func (h *Handler) HandleGetWebinar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	webinarID, ok := webinarIDParam(w, r)
	if !ok {
		return
	}

	webinar, err := h.service.GetWebinar(ctx, webinarID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromWebinar(webinar))
}

// HandleGetWebinarBySlug handles GET /clients/{clientID}/webinars/by-slug/{slug}.
func (h *Handler) HandleGetWebinarBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, ok := clientIDParam(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")

	webinar, err := h.service.GetWebinarBySlug(ctx, clientID, slug)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromWebinar(webinar))
}

// HandleConsoleAccess handles POST /webinars/{webinarID}/console requests.
// Checks role and passcode; a success response means the console may open.
func (h *Handler) HandleConsoleAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	webinarID, ok := webinarIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[ConsoleAccessRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.CheckConsolePasscode(ctx, webinarID, req.Passcode); err != nil {
		h.logger.WarnContext(ctx, "console access denied",
			"request_id", requestID,
			"webinar_id", webinarID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ConsoleAccessResponse{Granted: true})
}

// HandleCreateDomain handles POST /agencies/{agencyID}/domains requests.
func (h *Handler) HandleCreateDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	agencyID, ok := agencyIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateDomainRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	domain, err := h.service.CreateDomain(ctx, agencyID, req.Domain)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "domain registered",
		"request_id", requestID,
		"agency_id", agencyID,
		"domain", domain.Domain,
	)

	httputil.WriteJSON(w, http.StatusCreated, domain)
}

// HandleListDomains handles GET /agencies/{agencyID}/domains requests.
func (h *Handler) HandleListDomains(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agencyID, ok := agencyIDParam(w, r)
	if !ok {
		return
	}

	domains, err := h.service.ListDomains(ctx, agencyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DomainListResponse{Domains: domains})
}

// HandleDeleteDomain handles DELETE /agencies/{agencyID}/domains/{domainID}.
func (h *Handler) HandleDeleteDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agencyID, ok := agencyIDParam(w, r)
	if !ok {
		return
	}
	domainID, err := id.ParseDomainID(chi.URLParam(r, "domainID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid domain id"))
		return
	}

	if err := h.service.DeleteDomain(ctx, agencyID, domainID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddAllowedEmail handles POST /webinars/{webinarID}/allowed-emails.
func (h *Handler) HandleAddAllowedEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	webinarID, ok := webinarIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[AllowedEmailRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	entry, err := h.service.AddAllowedEmail(ctx, webinarID, req.Email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// HandleListAllowedEmails handles GET /webinars/{webinarID}/allowed-emails.
func (h *Handler) HandleListAllowedEmails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	webinarID, ok := webinarIDParam(w, r)
	if !ok {
		return
	}

	entries, err := h.service.ListAllowedEmails(ctx, webinarID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AllowedEmailListResponse{Emails: entries})
}

// HandleRemoveAllowedEmail handles DELETE /webinars/{webinarID}/allowed-emails/{email}.
func (h *Handler) HandleRemoveAllowedEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	webinarID, ok := webinarIDParam(w, r)
	if !ok {
		return
	}
	email := chi.URLParam(r, "email")

	if err := h.service.RemoveAllowedEmail(ctx, webinarID, email); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func agencyIDParam(w http.ResponseWriter, r *http.Request) (id.AgencyID, bool) {
	agencyID, err := id.ParseAgencyID(chi.URLParam(r, "agencyID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid agency id"))
		return id.AgencyID{}, false
	}
	return agencyID, true
}

func clientIDParam(w http.ResponseWriter, r *http.Request) (id.ClientID, bool) {
	clientID, err := id.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid client id"))
		return id.ClientID{}, false
	}
	return clientID, true
}

func webinarIDParam(w http.ResponseWriter, r *http.Request) (id.WebinarID, bool) {
	webinarID, err := id.ParseWebinarID(chi.URLParam(r, "webinarID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid webinar id"))
		return id.WebinarID{}, false
	}
	return webinarID, true
}
