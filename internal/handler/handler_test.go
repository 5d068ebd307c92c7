package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/middleware"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
	"github.com/inkwell/inkwell/internal/service"
)

// memoryUserStore implements service.UserStore for handler tests.
type memoryUserStore struct {
	users map[string]*model.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]*model.User)}
}

func (s *memoryUserStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memoryUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memoryUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memoryUserStore) ListUsers(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memoryUserStore) UpdateUser(_ context.Context, id string, update repository.UserUpdate) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	clone := *u
	return &clone, nil
}

func (s *memoryUserStore) DeleteUser(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *memoryUserStore) ListPostSlugsByAuthor(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

// memoryPostStore implements service.PostStore for handler tests.
type memoryPostStore struct {
	posts []*model.Post
}

func (s *memoryPostStore) CreatePost(_ context.Context, post *model.Post) error {
	clone := *post
	s.posts = append(s.posts, &clone)
	return nil
}

func (s *memoryPostStore) GetPostBySlug(_ context.Context, slug string) (*model.Post, error) {
	for i := len(s.posts) - 1; i >= 0; i-- {
		if s.posts[i].Slug == slug {
			clone := *s.posts[i]
			return &clone, nil
		}
	}
	return nil, repository.ErrPostNotFound
}

func (s *memoryPostStore) ListPosts(_ context.Context) ([]*model.Post, error) {
	out := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

// testEnv wires handlers, services and fake stores behind the same
// routing main uses.
type testEnv struct {
	router *chi.Mux
	users  *memoryUserStore
	posts  *memoryPostStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenIssuer("handler-test-secret-key", time.Hour)

	users := newMemoryUserStore()
	posts := &memoryPostStore{}

	userService := service.NewUserService(users, tokens, nil, nil)
	postService := service.NewPostService(posts, nil, nil)

	h := New()
	userHandler := NewUserHandler(userService, logger)
	postHandler := NewPostHandler(postService, logger)

	session := middleware.Session(middleware.SessionConfig{
		Logger: logger,
		Tokens: tokens,
	})

	r := chi.NewRouter()
	r.Get("/", h.Hello)
	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(session).Get("/", userHandler.List)
			r.With(session).Patch("/{id}", userHandler.Update)
			r.With(session).Delete("/{id}", userHandler.Delete)
		})
		r.Route("/posts", func(r chi.Router) {
			r.With(session).Post("/", postHandler.Create)
			r.Get("/", postHandler.List)
			r.Get("/{slug}", postHandler.GetBySlug)
		})
	})
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return &testEnv{router: r, users: users, posts: posts}
}

// do performs a request against the test router. A nil body sends no
// payload; cookies are attached as-is.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the response wrapper for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

// sessionCookie finds the session cookie in the response, if set.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestHello(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["message"] == "" {
		t.Error("expected a greeting message")
	}
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/no/such/route", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	resp := decode(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error != "Resource not found" {
		t.Errorf("error = %q, want %q", resp.Error, "Resource not found")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/users/register", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}

	resp := decode(t, rec)
	if resp.Error != "Method not allowed" {
		t.Errorf("error = %q, want %q", resp.Error, "Method not allowed")
	}
}
