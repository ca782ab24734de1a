package reportshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"workdesk/internal/domain/audit"
	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/org"
	"workdesk/internal/domain/report"
	"workdesk/internal/platform/metrics"
	"workdesk/internal/transport/http/api"
	"workdesk/internal/transport/http/middleware"
	"workdesk/internal/transport/http/shared"
)

type Handler struct {
	Service *report.Service
	Users   *org.Store
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service *report.Service, users *org.Store, perms middleware.PermissionStore, auditor *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Users: users, Perms: perms, Audit: auditor, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRun, h.Perms)).Post("/performance", h.handleGenerate)
		r.With(middleware.RequirePermission(auth.PermReportsRun, h.Perms)).Post("/performance/pdf", h.handleGeneratePDF)
	})
}

type reportRequest struct {
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	rep, user, ok := h.run(w, r)
	if !ok {
		return
	}
	h.recordMetrics(false)
	h.recordRun(r, user, rep, "report.generate")
	api.Success(w, rep, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	rep, user, ok := h.run(w, r)
	if !ok {
		return
	}

	generatedBy := user.UserID
	if h.Users != nil {
		if actor, err := h.Users.GetUser(r.Context(), user.UserID); err == nil {
			generatedBy = actor.Name
		}
	}

	payload, err := report.RenderPDF(rep, generatedBy, time.Now())
	if err != nil {
		// The computed report stayed valid; only this serialization failed.
		h.recordMetrics(true)
		slog.Error("report pdf render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render report pdf", middleware.GetRequestID(r.Context()))
		return
	}

	h.recordMetrics(false)
	h.recordRun(r, user, rep, "report.generate_pdf")
	filename := report.Filename(rep.Label, rep.StartDate, rep.EndDate, "pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(payload); err != nil {
		slog.Warn("report pdf write interrupted", "err", err)
	}
}

// run parses the request, resolves the principal and executes the engine. On
// failure it writes the error response and returns ok=false.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*report.Report, auth.UserContext, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return nil, auth.UserContext{}, false
	}

	var payload reportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return nil, user, false
	}

	v := shared.NewValidator()
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return nil, user, false
	}

	principal := report.Principal{UserID: user.UserID, Role: user.Role}
	rep, err := h.Service.Generate(r.Context(), principal, start, end)
	if err != nil {
		h.recordMetrics(true)
		if errors.Is(err, report.ErrInvalidRange) {
			api.Fail(w, http.StatusBadRequest, "invalid_range", "start date is after end date", middleware.GetRequestID(r.Context()))
			return nil, user, false
		}
		slog.Error("report generation failed", "userId", user.UserID, "err", err)
		api.Fail(w, http.StatusBadGateway, "upstream_fetch_failure", "failed to fetch report inputs", middleware.GetRequestID(r.Context()))
		return nil, user, false
	}

	if payload.Label != "" {
		rep.Label = payload.Label
	}
	return rep, user, true
}

// recordMetrics counts one report run per request. run leaves the success
// count to its callers so a PDF render failure after a successful generate
// still shows up as exactly one run.
func (h *Handler) recordMetrics(failed bool) {
	if h.Metrics != nil {
		h.Metrics.RecordReport(failed)
	}
}

func (h *Handler) recordRun(r *http.Request, user auth.UserContext, rep *report.Report, action string) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), user.UserID, action, "report", rep.Label,
		middleware.GetRequestID(r.Context()), r.RemoteAddr, map[string]any{
			"startDate": rep.StartDate.Format(shared.ISODate),
			"endDate":   rep.EndDate.Format(shared.ISODate),
			"employees": rep.Summary.EmployeeCount,
		})
	if err != nil {
		slog.Warn("report audit record failed", "err", err)
	}
}
