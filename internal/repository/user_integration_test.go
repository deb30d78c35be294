//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/messagely/messagely/internal/testutil"
)

func newRepoTestEnv(t *testing.T) (context.Context, *Repository) {
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

	if err := testutil.Truncate(ctx, repo.Pool()); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return ctx, repo
}

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("alice"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}

	if retrieved.Username != user.Username {
		t.Errorf("Username mismatch: got %q, want %q", retrieved.Username, user.Username)
	}
	if retrieved.PasswordHash != user.PasswordHash {
		t.Error("PasswordHash mismatch")
	}
	if retrieved.FirstName != user.FirstName || retrieved.LastName != user.LastName {
		t.Errorf("name mismatch: got %q %q", retrieved.FirstName, retrieved.LastName)
	}
	if retrieved.JoinedAt.IsZero() || retrieved.LastLoginAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestIntegrationUserRepository_CreateUser_Duplicate(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("dup"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestIntegrationUserRepository_GetUserByUsername_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	_, err := repo.GetUserByUsername(ctx, "no-such-user")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIntegrationUserRepository_UserExists(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("exists"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	exists, err := repo.UserExists(ctx, user.Username)
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if !exists {
		t.Error("expected user to exist")
	}

	exists, err = repo.UserExists(ctx, "no-such-user")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if exists {
		t.Error("expected user not to exist")
	}
}

func TestIntegrationUserRepository_TouchLogin(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("touch"))
	user.LastLoginAt = time.Now().UTC().Add(-time.Hour)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.TouchLogin(ctx, user.Username); err != nil {
		t.Fatalf("TouchLogin failed: %v", err)
	}

	retrieved, err := repo.GetUserByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if !retrieved.LastLoginAt.After(user.LastLoginAt) {
		t.Error("expected last_login_at to advance")
	}
}

func TestIntegrationUserRepository_TouchLogin_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	err := repo.TouchLogin(ctx, "no-such-user")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIntegrationUserRepository_ListUsers(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	for _, username := range []string{"list-b", "list-a", "list-c"} {
		if err := repo.CreateUser(ctx, testutil.NewTestUser(t, username)); err != nil {
			t.Fatalf("CreateUser %s failed: %v", username, err)
		}
	}

	profiles, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("expected 3 users, got %d", len(profiles))
	}
	for i, want := range []string{"list-a", "list-b", "list-c"} {
		if profiles[i].Username != want {
			t.Errorf("profiles[%d].Username = %q, want %q", i, profiles[i].Username, want)
		}
	}
}
