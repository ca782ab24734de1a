package metricshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workdesk/internal/domain/auth"
	"workdesk/internal/platform/metrics"
	"workdesk/internal/transport/http/api"
	"workdesk/internal/transport/http/middleware"
)

type Handler struct {
	Collector *metrics.Collector
	Perms     middleware.PermissionStore
}

func NewHandler(collector *metrics.Collector, perms middleware.PermissionStore) *Handler {
	return &Handler{Collector: collector, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermMetricsRead, h.Perms)).Get("/metrics", h.handleSnapshot)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Collector.Snapshot(), middleware.GetRequestID(r.Context()))
}
