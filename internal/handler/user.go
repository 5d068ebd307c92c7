package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/handler/dto"
	"github.com/inkwell/inkwell/internal/service"
	"github.com/inkwell/inkwell/internal/validate"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.Envelope{
		Success: true,
		Data:    dto.ToUserResponse(user),
	})
}

// Login handles POST /api/users/login. On success the session token is
// set as an HTTP-only cookie and only {id, email} is returned.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	http.SetCookie(w, auth.NewSessionCookie(token, h.svc.TokenTTL()))

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Data: dto.SessionResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	})
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	count := len(users)
	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Count:   &count,
		Data:    dto.ToUserResponses(users),
	})
}

// Update handles PATCH /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := auth.MustIdentityFromContext(r.Context())

	var req dto.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.svc.Update(r.Context(), id, identity.UserID, service.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("user_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Data:    dto.ToUserResponse(user),
	})
}

// Delete handles DELETE /api/users/{id}. On success the session cookie
// is cleared; the deleted account's token would no longer resolve to a
// user anyway.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := auth.MustIdentityFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), id, identity.UserID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	http.SetCookie(w, auth.ClearSessionCookie())

	h.logger.Info("user_deleted", "user_id", id)

	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Data:    map[string]any{},
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case validate.IsError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("internal_error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
