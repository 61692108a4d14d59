// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"strings"
	"time"
)

// Profile is the single locally-held user account. The app follows a
// one-device-one-account model: at most one Profile exists at a time.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	CredentialHash string    `json:"-"`
	DisplayName    string    `json:"displayName"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Email          string    `json:"email,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Author is the identity snapshot stamped onto posts and comments at
// creation time. It is a copy, never a live reference: later profile edits
// do not propagate into existing posts.
type Author struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// Guest is the placeholder identity used while nobody is logged in.
func Guest() Author {
	return Author{Username: "guest", DisplayName: "Your Name"}
}

// NormalizeUsername lowercases and trims a username. All username
// comparisons in the system go through this.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ProfileRepository is the port for the single-account profile store.
// Get returns nil when no account exists.
type ProfileRepository interface {
	Save(ctx context.Context, p *Profile) error
	Get(ctx context.Context) (*Profile, error)
	Clear(ctx context.Context) error
}
