package performancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/performance"
	"workdesk/internal/transport/http/api"
	"workdesk/internal/transport/http/middleware"
	"workdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *performance.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *performance.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/{employeeID}", h.handleListForEmployee)
	})
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	page := shared.ParseWindow(r, 24, 120)
	records, err := h.Store.ListForEmployee(r.Context(), chi.URLParam(r, "employeeID"), page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list performance records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}
