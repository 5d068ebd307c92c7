//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/inkwell/internal/testutil"
)

func newRepositoryTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func TestIntegrationUserRepository_CreateUser(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	user := testutil.NewTestUser(t, "ann")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}

	if retrieved.Username != user.Username {
		t.Errorf("Username mismatch: got %q, want %q", retrieved.Username, user.Username)
	}
	if retrieved.Email != user.Email {
		t.Errorf("Email mismatch: got %q, want %q", retrieved.Email, user.Email)
	}
	if retrieved.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash mismatch: got %q, want %q", retrieved.PasswordHash, user.PasswordHash)
	}
}

func TestIntegrationUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	user := testutil.NewTestUser(t, "ann")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	duplicate := testutil.NewTestUser(t, "ann2")
	duplicate.Email = user.Email

	if err := repo.CreateUser(ctx, duplicate); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_GetUserByEmail(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	user := testutil.NewTestUser(t, "ann")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if retrieved.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, user.ID)
	}
}

func TestIntegrationUserRepository_GetUser_NotFound(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	if _, err := repo.GetUserByID(ctx, "nonexistent-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByID: expected ErrUserNotFound, got: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByEmail: expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_ListUsers(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	for _, name := range []string{"ann", "bob", "carol"} {
		user := testutil.NewTestUser(t, name)
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser %q failed: %v", name, err)
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("len(users) = %d, want 3", len(users))
	}
}

func TestIntegrationUserRepository_UpdateUser_Partial(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	user := testutil.NewTestUser(t, "ann")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	newName := "annabelle"
	updated, err := repo.UpdateUser(ctx, user.ID, UserUpdate{Username: &newName})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	if updated.Username != newName {
		t.Errorf("Username = %q, want %q", updated.Username, newName)
	}
	if updated.Email != user.Email {
		t.Error("nil Email field must leave the column unchanged")
	}
	if updated.PasswordHash != user.PasswordHash {
		t.Error("nil PasswordHash field must leave the column unchanged")
	}
	if !updated.UpdatedAt.After(user.UpdatedAt) {
		t.Error("UpdatedAt must advance on update")
	}
}

func TestIntegrationUserRepository_UpdateUser_DuplicateEmail(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	ann := testutil.NewTestUser(t, "ann")
	bob := testutil.NewTestUser(t, "bob")
	if err := repo.CreateUser(ctx, ann); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := repo.CreateUser(ctx, bob); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := repo.UpdateUser(ctx, bob.ID, UserUpdate{Email: &ann.Email}); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_UpdateUser_NotFound(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	name := "ghost"
	if _, err := repo.UpdateUser(ctx, "nonexistent-id", UserUpdate{Username: &name}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_DeleteUser(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	user := testutil.NewTestUser(t, "ann")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := repo.GetUserByID(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got: %v", err)
	}

	if err := repo.DeleteUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound on second delete, got: %v", err)
	}
}
