package app

import (
	"context"
	"strings"
	"time"

	"promptpic/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// IdentitySync is the capability the identity service uses to push identity
// changes into the stores that act on behalf of the current user. It is
// injected at construction rather than patched in at runtime, so the wiring
// is visible in one place.
type IdentitySync interface {
	SetCurrentUser(username, displayName string)
	ClearCurrentUser(ctx context.Context) error
}

// ProfileUpdate carries a partial profile edit. Nil fields keep their prior
// value; non-nil fields are applied even when they hold the empty string.
type ProfileUpdate struct {
	Username       *string
	Credential     *string
	DisplayName    *string
	ProfilePicture *string
	Email          *string
	Bio            *string
}

// IdentityService holds the single local user profile and notifies the
// post and follow stores whenever that identity changes.
type IdentityService struct {
	profiles domain.ProfileRepository
	syncs    []IdentitySync
	metrics  Metrics
}

// NewIdentityService creates an IdentityService that pushes identity changes
// to the given sync targets.
func NewIdentityService(profiles domain.ProfileRepository, syncs ...IdentitySync) *IdentityService {
	return &IdentityService{profiles: profiles, syncs: syncs, metrics: noopMetrics{}}
}

// SetMetrics installs a metrics collector. Nil restores the no-op default.
func (s *IdentityService) SetMetrics(m Metrics) {
	if m == nil {
		m = noopMetrics{}
	}
	s.metrics = m
}

// CreateAccount creates the device account, replacing any existing identity.
// Username is stored normalized (lowercase, trimmed); the credential is
// stored as a bcrypt hash, never in the clear.
func (s *IdentityService) CreateAccount(ctx context.Context, username, credential, displayName, profilePicture string) (*domain.Profile, error) {
	username = domain.NormalizeUsername(username)
	displayName = strings.TrimSpace(displayName)

	if len(username) < 3 {
		return nil, &ValidationError{Field: "username", Reason: "must be at least 3 characters"}
	}
	if displayName == "" {
		return nil, &ValidationError{Field: "displayName", Reason: "must not be empty"}
	}
	if len(credential) < 6 {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:             uuid.NewString(),
		Username:       username,
		CredentialHash: string(hash),
		DisplayName:    displayName,
		ProfilePicture: profilePicture,
		CreatedAt:      time.Now(),
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.pushCurrent(profile)
	s.metrics.AccountCreated()
	return profile, nil
}

// UpdateProfile applies a partial edit to the current profile and returns the
// updated profile. When no account exists it returns (nil, nil): a silent
// no-op, not an error.
func (s *IdentityService) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	if upd.Username != nil {
		username := domain.NormalizeUsername(*upd.Username)
		if username == "" {
			return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
		}
		profile.Username = username
	}
	if upd.DisplayName != nil {
		displayName := strings.TrimSpace(*upd.DisplayName)
		if displayName == "" {
			return nil, &ValidationError{Field: "displayName", Reason: "must not be empty"}
		}
		profile.DisplayName = displayName
	}
	if upd.Credential != nil {
		// An explicitly supplied credential is applied even when empty.
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Credential), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		profile.CredentialHash = string(hash)
	}
	if upd.ProfilePicture != nil {
		profile.ProfilePicture = *upd.ProfilePicture
	}
	if upd.Email != nil {
		profile.Email = *upd.Email
	}
	if upd.Bio != nil {
		profile.Bio = *upd.Bio
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.pushCurrent(profile)
	return profile, nil
}

// Login checks the given username (case-insensitive, trimmed) and credential
// against the stored account. Any mismatch returns (nil, nil); the caller
// cannot tell a wrong username from a wrong password.
func (s *IdentityService) Login(ctx context.Context, username, credential string) (*domain.Profile, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Username != domain.NormalizeUsername(username) {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.CredentialHash), []byte(credential)) != nil {
		return nil, nil
	}

	// Re-establish the acting identity; a fresh process starts as guest.
	s.pushCurrent(profile)
	return profile, nil
}

// CurrentUser returns the stored account, or nil when logged out.
func (s *IdentityService) CurrentUser(ctx context.Context) (*domain.Profile, error) {
	return s.profiles.Get(ctx)
}

// CurrentAuthor returns the identity snapshot for the stored account, or the
// guest placeholder when no account exists.
func (s *IdentityService) CurrentAuthor(ctx context.Context) domain.Author {
	profile, err := s.profiles.Get(ctx)
	if err != nil || profile == nil {
		return domain.Guest()
	}
	return domain.Author{Username: profile.Username, DisplayName: profile.DisplayName}
}

// IsUsernameAvailable reports whether the username is free. With a single
// stored account this only ever checks against that account; it is the seam
// where a directory-wide check would go.
func (s *IdentityService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return false, err
	}
	return profile == nil || profile.Username != domain.NormalizeUsername(username), nil
}

// Logout clears the stored identity and instructs the synced stores to purge
// everything owned by it. The purge is irreversible.
func (s *IdentityService) Logout(ctx context.Context) error {
	for _, target := range s.syncs {
		if err := target.ClearCurrentUser(ctx); err != nil {
			return err
		}
	}
	return s.profiles.Clear(ctx)
}

func (s *IdentityService) pushCurrent(p *domain.Profile) {
	for _, target := range s.syncs {
		target.SetCurrentUser(p.Username, p.DisplayName)
	}
}
