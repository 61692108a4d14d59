package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"promptpic/internal/adapter/memory"
	"promptpic/internal/app"
)

func newAuthService(t *testing.T) (*app.AuthService, *app.IdentityService, *memory.SessionRepo, *memory.DB) {
	t.Helper()
	db := memory.New()
	posts := app.NewPostService(db)
	identity := app.NewIdentityService(memory.NewProfileRepo(db), posts)
	sessions := memory.NewSessionRepo(db)
	return app.NewAuthService(identity, sessions), identity, sessions, db
}

func TestRegister_OpensSession(t *testing.T) {
	auth, _, _, _ := newAuthService(t)
	ctx := context.Background()

	token, profile, err := auth.Register(ctx, "alice", "secret1", "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" || profile == nil {
		t.Fatalf("token=%q profile=%v", token, profile)
	}

	got, err := auth.ValidateSession(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("session resolves to %s", got.Username)
	}
}

func TestRegister_Invalid(t *testing.T) {
	auth, _, _, _ := newAuthService(t)

	_, _, err := auth.Register(context.Background(), "ab", "secret1", "Alice", "")
	var verr *app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	auth, _, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, "alice", "secret1", "Alice", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login(ctx, "alice", "wrong12"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, "bob", "secret1"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, "ALICE", "secret1"); err != nil {
		t.Fatalf("case-insensitive login: %v", err)
	}
}

func TestValidateSession_UnknownToken(t *testing.T) {
	auth, _, _, _ := newAuthService(t)

	_, err := auth.ValidateSession(context.Background(), "nope")
	if !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestValidateSession_Expired(t *testing.T) {
	auth, _, sessions, _ := newAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, "alice", "secret1", "Alice", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := sessions.Create(ctx, "stale", "alice", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("create session: %v", err)
	}

	_, err := auth.ValidateSession(ctx, "stale")
	// The memory store drops expired sessions on read, so the error may
	// surface as either sentinel; both mean "log in again".
	if !errors.Is(err, app.ErrSessionExpired) && !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected expiry rejection, got %v", err)
	}
}

func TestLogout_InvalidatesSessionAndIdentity(t *testing.T) {
	auth, identity, _, db := newAuthService(t)
	ctx := context.Background()

	token, _, err := auth.Register(ctx, "alice", "secret1", "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	posts := app.NewPostService(db)
	posts.SetCurrentUser("alice", "Alice")
	if _, err := posts.AddPost(ctx, "photo", "", 0); err != nil {
		t.Fatalf("add post: %v", err)
	}

	if err := auth.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := auth.ValidateSession(ctx, token); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("session must be gone, got %v", err)
	}
	if p, _ := identity.CurrentUser(ctx); p != nil {
		t.Fatal("profile must be cleared")
	}
}

func TestLoginSSO(t *testing.T) {
	auth, identity, _, _ := newAuthService(t)
	ctx := context.Background()

	// No account yet: one is provisioned for the external identity.
	token, err := auth.LoginSSO(ctx, "Alice")
	if err != nil {
		t.Fatalf("sso login: %v", err)
	}
	if token == "" {
		t.Fatal("expected session token")
	}
	profile, _ := identity.CurrentUser(ctx)
	if profile == nil || profile.Username != "alice" {
		t.Fatalf("provisioned profile = %+v", profile)
	}

	// Same identity again reuses the account.
	if _, err := auth.LoginSSO(ctx, "alice"); err != nil {
		t.Fatalf("repeat sso login: %v", err)
	}

	// A different identity cannot take over the device account.
	if _, err := auth.LoginSSO(ctx, "mallory"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
