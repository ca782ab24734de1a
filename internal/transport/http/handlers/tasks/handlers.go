package taskshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/notifications"
	"workdesk/internal/domain/tasks"
	"workdesk/internal/transport/http/api"
	"workdesk/internal/transport/http/middleware"
	"workdesk/internal/transport/http/shared"
)

type Handler struct {
	Store    *tasks.Store
	Perms    middleware.PermissionStore
	Notifier *notifications.Service
}

func NewHandler(store *tasks.Store, perms middleware.PermissionStore, notifier *notifications.Service) *Handler {
	return &Handler{Store: store, Perms: perms, Notifier: notifier}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/", h.handleListProjects)
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/{projectID}", h.handleGetProject)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Post("/", h.handleCreateProject)
	})
	r.Route("/tasks", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/", h.handleListTasks)
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/board", h.handleBoard)
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/timeline", h.handleTimeline)
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/analytics", h.handleAnalytics)
		r.With(middleware.RequirePermission(auth.PermTasksRead, h.Perms)).Get("/{taskID}", h.handleGetTask)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Post("/", h.handleCreateTask)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Put("/{taskID}", h.handleUpdateTask)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Patch("/{taskID}/status", h.handleUpdateStatus)
		r.With(middleware.RequirePermission(auth.PermTasksWrite, h.Perms)).Delete("/{taskID}", h.handleDeleteTask)
	})
}

type taskRequest struct {
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  string `json:"assigneeId"`
	DueDate     string `json:"dueDate"`
}

func queryFromRequest(r *http.Request) tasks.Query {
	q := r.URL.Query()
	page := shared.ParseWindow(r, 0, 500)
	return tasks.Query{
		Status:     q.Get("status"),
		Priority:   q.Get("priority"),
		AssigneeID: q.Get("assigneeId"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sortBy"),
		Desc:       q.Get("order") == "desc",
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListTasks(r.Context(), r.URL.Query().Get("projectId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list tasks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, queryFromRequest(r).Apply(items), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListTasks(r.Context(), r.URL.Query().Get("projectId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list tasks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tasks.GroupBoard(items), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListTasks(r.Context(), r.URL.Query().Get("projectId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list tasks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tasks.SortTimeline(items), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListTasks(r.Context(), r.URL.Query().Get("projectId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list tasks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tasks.ComputeAnalytics(items, time.Now().UTC()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Store.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "task not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var payload taskRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	status := payload.Status
	if status == "" {
		status = tasks.StatusTodo
	}
	if !tasks.ValidStatus(status) {
		v.Add("status", "must be one of todo, in_progress, review, done")
	}
	priority := payload.Priority
	if priority == "" {
		priority = tasks.PriorityMedium
	}
	if !tasks.ValidPriority(priority) {
		v.Add("priority", "must be one of low, medium, high, urgent")
	}
	var dueDate *time.Time
	if payload.DueDate != "" {
		parsed, ok := v.Date("dueDate", payload.DueDate)
		if ok {
			dueDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	task := tasks.Task{
		ProjectID:   payload.ProjectID,
		Title:       payload.Title,
		Description: payload.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  payload.AssigneeID,
		DueDate:     dueDate,
	}
	id, err := h.Store.CreateTask(r.Context(), task)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create task", middleware.GetRequestID(r.Context()))
		return
	}

	if payload.AssigneeID != "" {
		h.notify(r, payload.AssigneeID, notifications.TypeTaskAssigned,
			"Task assigned: "+payload.Title, "You have been assigned a new task.")
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	var payload taskRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	current, err := h.Store.GetTask(r.Context(), taskID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "task not found", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	updated := *current
	if payload.Title != "" {
		updated.Title = payload.Title
	}
	if payload.Description != "" {
		updated.Description = payload.Description
	}
	if payload.Priority != "" {
		if !tasks.ValidPriority(payload.Priority) {
			v.Add("priority", "must be one of low, medium, high, urgent")
		}
		updated.Priority = payload.Priority
	}
	if payload.ProjectID != "" {
		updated.ProjectID = payload.ProjectID
	}
	if payload.AssigneeID != "" {
		updated.AssigneeID = payload.AssigneeID
	}
	if payload.DueDate != "" {
		parsed, ok := v.Date("dueDate", payload.DueDate)
		if ok {
			updated.DueDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.UpdateTask(r.Context(), taskID, updated); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update task", middleware.GetRequestID(r.Context()))
		return
	}

	if payload.AssigneeID != "" && payload.AssigneeID != current.AssigneeID {
		h.notify(r, payload.AssigneeID, notifications.TypeTaskAssigned,
			"Task assigned: "+updated.Title, "You have been assigned a task.")
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !tasks.ValidStatus(payload.Status) {
		api.Fail(w, http.StatusBadRequest, "invalid_status", "must be one of todo, in_progress, review, done", middleware.GetRequestID(r.Context()))
		return
	}

	current, err := h.Store.GetTask(r.Context(), taskID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "task not found", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateStatus(r.Context(), taskID, payload.Status, time.Now().UTC()); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update status", middleware.GetRequestID(r.Context()))
		return
	}

	if payload.Status == tasks.StatusDone && current.Status != tasks.StatusDone && current.AssigneeID != "" {
		h.notify(r, current.AssigneeID, notifications.TypeTaskCompleted,
			"Task completed: "+current.Title, "A task assigned to you was marked done.")
	}
	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete task", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list projects", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, projects, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, project, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var payload projectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	var ownerID string
	if user, ok := middleware.GetUser(r.Context()); ok {
		ownerID = user.UserID
	}
	id, err := h.Store.CreateProject(r.Context(), tasks.Project{
		Name:        payload.Name,
		Description: payload.Description,
		OwnerID:     ownerID,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) notify(r *http.Request, userID, ntype, title, body string) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Create(r.Context(), userID, ntype, title, body); err != nil {
		slog.Warn("task notification failed", "userId", userID, "type", ntype, "err", err)
	}
}
