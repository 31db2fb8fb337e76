// Package handler exposes the post-login dashboard resolution endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ustudiopd/EventLive-sub001/pkg/platform/httputil"
	"github.com/ustudiopd/EventLive-sub001/pkg/requestcontext"
)

// LandingResolver picks the dashboard path for the current actor.
type LandingResolver interface {
	LandingPath(ctx context.Context) (string, error)
}

// Handler serves the dashboard routing decision.
type Handler struct {
	resolver LandingResolver
	logger   *slog.Logger
}

func New(resolver LandingResolver, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// Register mounts the dashboard endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)
}

// DashboardResponse tells the frontend where to land. HasWorkspace false
// means the user belongs to no agency or client and Path is empty.
type DashboardResponse struct {
	Path         string `json:"path"`
	HasWorkspace bool   `json:"has_workspace"`
}

// HandleDashboard handles GET /dashboard requests.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	path, err := h.resolver.LandingPath(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard resolution failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DashboardResponse{
		Path:         path,
		HasWorkspace: path != "",
	})
}
