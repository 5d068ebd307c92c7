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

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	svc    *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/posts. The author is the session identity.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req dto.CreatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.svc.Create(r.Context(), service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		AuthorID: identity.UserID,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("post_created",
		"post_id", post.ID,
		"slug", post.Slug,
		"author_id", post.AuthorID,
	)

	writeJSON(w, http.StatusCreated, dto.Envelope{
		Success: true,
		Data:    dto.ToPostResponse(post),
	})
}

// GetBySlug handles GET /api/posts/{slug}.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Data:    dto.ToPostResponse(post),
	})
}

// List handles GET /api/posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	count := len(posts)
	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Count:   &count,
		Data:    dto.ToPostResponses(posts),
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *PostHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case validate.IsError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	default:
		h.logger.Error("internal_error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
