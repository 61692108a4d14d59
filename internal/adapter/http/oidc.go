package adapthttp

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"promptpic/internal/config"
)

// OIDC holds the verifier and OAuth2 exchange config for the SSO flow.
type OIDC struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth2   oauth2.Config
}

// NewOIDC discovers the issuer and prepares the authorization code flow.
func NewOIDC(ctx context.Context, cfg config.OIDCConfig) (*OIDC, error) {
	if cfg.IssuerURL == "" || cfg.ClientID == "" {
		return nil, errors.New("oidc: issuer URL and client ID are required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, err
	}

	return &OIDC{
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth2: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// AuthCodeURL returns the provider URL to redirect the browser to.
func (o *OIDC) AuthCodeURL(state string) string {
	return o.oauth2.AuthCodeURL(state)
}

// ssoIdentity is the subset of ID token claims the app consumes.
type ssoIdentity struct {
	Subject string
	Name    string
	Email   string
}

// Exchange trades the authorization code for a verified identity.
func (o *OIDC) Exchange(ctx context.Context, code string) (*ssoIdentity, error) {
	token, err := o.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("oidc: token response missing id_token")
	}

	idToken, err := o.verifier.Verify(ctx, rawID)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Name              string `json:"name"`
		PreferredUsername string `json:"preferred_username"`
		Email             string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	name := claims.Name
	if name == "" {
		name = claims.PreferredUsername
	}
	return &ssoIdentity{Subject: idToken.Subject, Name: name, Email: claims.Email}, nil
}
