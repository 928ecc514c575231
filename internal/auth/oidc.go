// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"

	"github.com/tomtom215/cinefolio/internal/config"
	"github.com/tomtom215/cinefolio/internal/logging"
)

const (
	stateKeyBytes     = 32
	codeVerifierBytes = 48
	defaultStateTTL   = 10 * time.Minute
)

// OIDCIdentity is the profile returned by the provider after a successful
// code exchange.
type OIDCIdentity struct {
	Issuer            string
	Subject           string
	Username          string
	Email             string
	EmailVerified     bool
	AvatarURL         string
	PostLoginRedirect string
}

// OIDCFlow runs the authorization code flow with PKCE against one provider.
type OIDCFlow struct {
	rp       rp.RelyingParty
	states   *StateStore
	stateTTL time.Duration
	redirect string
}

// NewOIDCFlow performs provider discovery and returns a ready flow.
func NewOIDCFlow(ctx context.Context, cfg *config.OIDCConfig, states *StateStore, client *http.Client) (*OIDCFlow, error) {
	if cfg.IssuerURL == "" || cfg.ClientID == "" || cfg.RedirectURL == "" {
		return nil, fmt.Errorf("oidc requires issuer_url, client_id and redirect_url")
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, oidc.ScopeProfile, oidc.ScopeEmail}
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	relyingParty, err := rp.NewRelyingPartyOIDC(ctx,
		cfg.IssuerURL,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.RedirectURL,
		scopes,
		rp.WithHTTPClient(client),
	)
	if err != nil {
		return nil, fmt.Errorf("create relying party: %w", err)
	}

	ttl := cfg.StateTTL
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &OIDCFlow{
		rp:       relyingParty,
		states:   states,
		stateTTL: ttl,
		redirect: cfg.PostLoginRedirect,
	}, nil
}

// AuthorizationURL starts a sign-in: it stores a fresh state and PKCE
// verifier and returns the provider URL to redirect the browser to.
func (f *OIDCFlow) AuthorizationURL(ctx context.Context) (string, error) {
	stateKey, err := randomToken(stateKeyBytes)
	if err != nil {
		return "", err
	}
	verifier, err := randomToken(codeVerifierBytes)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if err := f.states.Store(ctx, stateKey, &StateData{
		CodeVerifier:      verifier,
		PostLoginRedirect: f.redirect,
		CreatedAt:         now,
		ExpiresAt:         now.Add(f.stateTTL),
	}); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}

	logging.Ctx(ctx).Debug().Str("state", stateKey[:8]+"...").Msg("Generated OIDC authorization URL")
	return rp.AuthURL(stateKey, f.rp, rp.WithCodeChallenge(oidc.NewSHACodeChallenge(verifier))), nil
}

// HandleCallback consumes the state, exchanges the code and returns the
// provider identity.
func (f *OIDCFlow) HandleCallback(ctx context.Context, code, state string) (*OIDCIdentity, error) {
	stateData, err := f.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", ErrTokenExchangeFailed)
	}

	tokens, err := rp.CodeExchange[*oidc.IDTokenClaims](ctx, code, f.rp, rp.WithCodeVerifier(stateData.CodeVerifier))
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Token exchange failed")
		return nil, fmt.Errorf("%w: %v", ErrTokenExchangeFailed, err)
	}
	if tokens.IDTokenClaims == nil || tokens.IDTokenClaims.Subject == "" {
		return nil, fmt.Errorf("%w: no id token subject", ErrTokenExchangeFailed)
	}

	claims := tokens.IDTokenClaims
	return &OIDCIdentity{
		Issuer:            f.rp.Issuer(),
		Subject:           claims.Subject,
		Username:          displayName(claims),
		Email:             claims.Email,
		EmailVerified:     bool(claims.EmailVerified),
		AvatarURL:         claims.Picture,
		PostLoginRedirect: stateData.PostLoginRedirect,
	}, nil
}

// displayName picks the first non-empty of name, preferred_username and
// the local part of the email.
func displayName(claims *oidc.IDTokenClaims) string {
	if claims.Name != "" {
		return claims.Name
	}
	if claims.PreferredUsername != "" {
		return claims.PreferredUsername
	}
	if local, _, ok := strings.Cut(claims.Email, "@"); ok && local != "" {
		return local
	}
	return ""
}
