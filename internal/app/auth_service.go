package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"promptpic/internal/domain"
)

const sessionTTL = 24 * time.Hour

// AuthService manages login sessions for the HTTP surface. The actual
// identity checks live in IdentityService; this layer only mints and
// validates session tokens.
type AuthService struct {
	identity *IdentityService
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(identity *IdentityService, sessions domain.SessionRepository) *AuthService {
	return &AuthService{identity: identity, sessions: sessions}
}

// Register creates the device account and immediately opens a session for it.
func (s *AuthService) Register(ctx context.Context, username, credential, displayName, profilePicture string) (string, *domain.Profile, error) {
	profile, err := s.identity.CreateAccount(ctx, username, credential, displayName, profilePicture)
	if err != nil {
		return "", nil, err
	}
	token, err := s.openSession(ctx, profile.Username)
	return token, profile, err
}

// Login authenticates against the stored account and creates a session.
func (s *AuthService) Login(ctx context.Context, username, credential string) (string, error) {
	profile, err := s.identity.Login(ctx, username, credential)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrInvalidCredentials
	}
	return s.openSession(ctx, profile.Username)
}

// LoginSSO opens a session for an externally authenticated username,
// provisioning the device account with a random credential when none exists.
func (s *AuthService) LoginSSO(ctx context.Context, username string) (string, error) {
	username = domain.NormalizeUsername(username)

	profile, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if profile == nil {
		credential, err := randomString(24)
		if err != nil {
			return "", err
		}
		profile, err = s.identity.CreateAccount(ctx, username, credential, username, "")
		if err != nil {
			return "", err
		}
	} else if profile.Username != username {
		return "", ErrInvalidCredentials
	}

	return s.openSession(ctx, profile.Username)
}

// Logout tears down the session and the device identity: the stored profile
// is cleared and the user's posts and follows are purged.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token != "" {
		_ = s.sessions.Delete(ctx, token)
	}
	return s.identity.Logout(ctx)
}

// ValidateSession resolves a session token to the stored profile.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Profile, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	profile, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Username != session.Username {
		// The account was logged out or renamed after the session was minted.
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}
	return profile, nil
}

func (s *AuthService) openSession(ctx context.Context, username string) (string, error) {
	token, err := randomString(32)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, token, username, time.Now().Add(sessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
