package attachmentshandler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"workdesk/internal/domain/attachments"
	"workdesk/internal/domain/auth"
	"workdesk/internal/transport/http/api"
	"workdesk/internal/transport/http/middleware"
)

type Handler struct {
	Service        *attachments.Service
	Perms          middleware.PermissionStore
	MaxUploadBytes int64
}

func NewHandler(service *attachments.Service, perms middleware.PermissionStore, maxUploadBytes int64) *Handler {
	return &Handler{Service: service, Perms: perms, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks/{taskID}/attachments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAttachmentsWrite, h.Perms)).Post("/", h.handleUpload)
	})
	r.Route("/attachments/{attachmentID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/download", h.handleDownload)
		r.With(middleware.RequirePermission(auth.PermAttachmentsWrite, h.Perms)).Delete("/", h.handleDelete)
	})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		api.Fail(w, http.StatusRequestEntityTooLarge, "upload_too_large", "upload exceeds the size limit", middleware.GetRequestID(r.Context()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "multipart field 'file' is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	var uploaderID string
	if user, ok := middleware.GetUser(r.Context()); ok {
		uploaderID = user.UserID
	}

	att, err := h.Service.Save(r.Context(), chi.URLParam(r, "taskID"), uploaderID, header.Filename, contentType, file)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store attachment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, att, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListForTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list attachments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	att, reader, err := h.Service.Open(r.Context(), chi.URLParam(r, "attachmentID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "attachment not found", middleware.GetRequestID(r.Context()))
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", att.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(att.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.FileName))
	if _, err := io.Copy(w, reader); err != nil {
		slog.Warn("attachment stream interrupted", "attachmentId", att.ID, "err", err)
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "attachmentID"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, attachments.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "attachment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete attachment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
