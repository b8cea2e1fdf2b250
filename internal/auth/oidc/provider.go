// Package oidc adapts an external OIDC identity provider to the auth
// service's FederationVerifier interface.
package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type ProviderConfig struct {
	IssuerURL  string // issuer or discovery URL
	ClientID   string // expected audience of presented ID tokens
	HTTPClient *http.Client
}

// Provider verifies ID tokens against the federation provider's
// public key set and intended audience.
type Provider struct {
	verifier *gooidc.IDTokenVerifier
}

func NewProvider(ctx context.Context, config ProviderConfig) (*Provider, error) {
	if config.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	issuer := strings.TrimSuffix(config.IssuerURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")

	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		verifier: op.Verifier(&gooidc.Config{ClientID: config.ClientID}),
	}, nil
}

// VerifyEmail checks signature, expiry and audience of the raw ID
// token and returns the verified email claim.
func (p *Provider) VerifyEmail(ctx context.Context, rawToken string) (string, error) {
	idToken, err := p.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", fmt.Errorf("decode id token claims: %w", err)
	}
	if claims.Email == "" {
		return "", errors.New("id token has no email claim")
	}

	return claims.Email, nil
}
