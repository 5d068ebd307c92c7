// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/metrics"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
	"github.com/inkwell/inkwell/internal/validate"
)

// User service errors.
var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password, so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	// ErrNotOwner indicates the session identity does not own the
	// targeted record.
	ErrNotOwner = errors.New("not the owner of this resource")
)

// UserStore is the persistence surface the user service needs.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, id string, update repository.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListPostSlugsByAuthor(ctx context.Context, authorID string) ([]string, error)
}

// UserService orchestrates registration, login, listing, update and
// deletion of users.
type UserService struct {
	store   UserStore
	tokens  *auth.TokenIssuer
	cache   PostCache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService. The cache may be nil, in
// which case deletions skip post-cache invalidation.
func NewUserService(store UserStore, tokens *auth.TokenIssuer, postCache PostCache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		tokens:  tokens,
		cache:   postCache,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates the payload, hashes the password and persists a
// new user. The stored password is only ever the hash. Duplicate email
// fails with ErrEmailTaken; the pre-check below is an optimization, the
// database unique constraint is the source of truth under concurrent
// registration.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := validate.Registration(input.Username, input.Email, input.Password); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Login verifies the credentials and issues a session token for the
// user. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if err := validate.Login(email, password); err != nil {
		return nil, "", err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.metrics.IncLoginFailure()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	s.metrics.IncLoginSuccess()

	return user, token, nil
}

// TokenTTL returns the validity window of issued session tokens.
func (s *UserService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// List returns all users. No pagination, no filtering.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateInput defines the fields of a partial self-update. Nil fields
// are left unchanged.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

// Update applies a partial update to the user's own record. The path id
// must match the session id; a mismatch fails with ErrNotOwner before
// anything else is checked. Only supplied fields are validated and
// written; a supplied password is re-hashed.
func (s *UserService) Update(ctx context.Context, targetID, sessionUserID string, input UpdateInput) (*model.User, error) {
	if targetID != sessionUserID {
		return nil, ErrNotOwner
	}

	if err := validate.UserUpdate(input.Username, input.Email, input.Password); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	update := repository.UserUpdate{
		Username: input.Username,
		Email:    input.Email,
	}

	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	user, err := s.store.UpdateUser(ctx, targetID, update)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes the user's own record. The same ownership rule as
// Update applies. Deleting a user cascades away their posts, so the
// cache entries for those posts are invalidated as well; invalidation
// is best-effort, a stale entry expires on its own TTL.
func (s *UserService) Delete(ctx context.Context, targetID, sessionUserID string) error {
	if targetID != sessionUserID {
		return ErrNotOwner
	}

	// Slugs must be collected before the delete cascades the rows away.
	var slugs []string
	if s.cache != nil {
		slugs, _ = s.store.ListPostSlugsByAuthor(ctx, targetID)
	}

	if err := s.store.DeleteUser(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	for _, slug := range slugs {
		_ = s.cache.DeletePost(ctx, slug)
	}

	s.metrics.IncUserDeleted()

	return nil
}
