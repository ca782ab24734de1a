package orghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/org"
	"workdesk/internal/transport/http/api"
	"workdesk/internal/transport/http/middleware"
	"workdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *org.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *org.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/org", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermUsersRead, h.Perms)).Get("/", h.handleListUsers)
			r.With(middleware.RequirePermission(auth.PermUsersRead, h.Perms)).Get("/{userID}", h.handleGetUser)
			r.With(middleware.RequirePermission(auth.PermUsersWrite, h.Perms)).Post("/", h.handleCreateUser)
			r.With(middleware.RequirePermission(auth.PermUsersWrite, h.Perms)).Put("/{userID}", h.handleUpdateUser)
			r.With(middleware.RequirePermission(auth.PermUsersWrite, h.Perms)).Delete("/{userID}", h.handleDeactivateUser)
		})
		r.Route("/departments", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermDepartmentsRead, h.Perms)).Get("/", h.handleListDepartments)
			r.With(middleware.RequirePermission(auth.PermDepartmentsWrite, h.Perms)).Post("/", h.handleCreateDepartment)
			r.With(middleware.RequirePermission(auth.PermDepartmentsWrite, h.Perms)).Put("/{departmentID}", h.handleUpdateDepartment)
		})
	})
}

type userRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	AvatarURL    string `json:"avatarUrl"`
	BaseSalary   string `json:"baseSalary"`
	DepartmentID string `json:"departmentId"`
	Role         string `json:"role"`
	Active       *bool  `json:"active"`
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload userRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	role, roleOK := auth.ParseRole(payload.Role)
	if !roleOK {
		v.Add("role", "must be one of admin, manager, employee")
	}
	salary, salaryErr := parseSalary(payload.BaseSalary)
	if salaryErr != nil {
		v.Add("baseSalary", "must be a non-negative decimal amount")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	roleID, err := h.Store.RoleIDByName(r.Context(), string(role))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "role_lookup_failed", "failed to resolve role", middleware.GetRequestID(r.Context()))
		return
	}
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to hash password", middleware.GetRequestID(r.Context()))
		return
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	user := org.User{
		Name:         payload.Name,
		Email:        payload.Email,
		AvatarURL:    payload.AvatarURL,
		BaseSalary:   salary,
		DepartmentID: payload.DepartmentID,
		RoleID:       roleID,
		Active:       active,
	}
	id, err := h.Store.CreateUser(r.Context(), user, hash)
	if err != nil {
		api.Fail(w, http.StatusConflict, "create_failed", "failed to create user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var payload userRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	current, err := h.Store.GetUser(r.Context(), userID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	updated := *current
	if payload.Name != "" {
		updated.Name = payload.Name
	}
	if payload.Email != "" {
		updated.Email = payload.Email
	}
	if payload.AvatarURL != "" {
		updated.AvatarURL = payload.AvatarURL
	}
	if payload.DepartmentID != "" {
		updated.DepartmentID = payload.DepartmentID
	}
	if payload.BaseSalary != "" {
		salary, err := parseSalary(payload.BaseSalary)
		if err != nil {
			v.Add("baseSalary", "must be a non-negative decimal amount")
		} else {
			updated.BaseSalary = salary
		}
	}
	if payload.Role != "" {
		role, ok := auth.ParseRole(payload.Role)
		if !ok {
			v.Add("role", "must be one of admin, manager, employee")
		} else {
			roleID, err := h.Store.RoleIDByName(r.Context(), string(role))
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "role_lookup_failed", "failed to resolve role", middleware.GetRequestID(r.Context()))
				return
			}
			updated.RoleID = roleID
		}
	}
	if payload.Active != nil {
		updated.Active = *payload.Active
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.UpdateUser(r.Context(), userID, updated); err != nil {
		if errors.Is(err, org.ErrUserNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeactivateUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
		if errors.Is(err, org.ErrUserNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "deactivate_failed", "failed to deactivate user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deactivated"}, middleware.GetRequestID(r.Context()))
}

type departmentRequest struct {
	Name      string `json:"name"`
	ManagerID string `json:"managerId"`
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateDepartment(r.Context(), org.Department{Name: payload.Name, ManagerID: payload.ManagerID})
	if err != nil {
		api.Fail(w, http.StatusConflict, "create_failed", "failed to create department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Store.UpdateDepartment(r.Context(), chi.URLParam(r, "departmentID"),
		org.Department{Name: payload.Name, ManagerID: payload.ManagerID})
	if err != nil {
		if errors.Is(err, org.ErrDepartmentNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "department not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func parseSalary(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() {
		return decimal.Zero, errors.New("negative salary")
	}
	return value, nil
}
