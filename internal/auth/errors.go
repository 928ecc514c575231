// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned for a malformed, expired or forged token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSessionNotFound is returned when a session does not exist (or was revoked).
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session exists but has expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidState is returned when an OIDC callback carries an unknown,
	// expired or already used state.
	ErrInvalidState = errors.New("invalid OIDC state")

	// ErrStateNotFound is returned by the state store for an unknown key.
	ErrStateNotFound = errors.New("state not found")

	// ErrTokenExchangeFailed is returned when the OIDC provider rejects the code.
	ErrTokenExchangeFailed = errors.New("token exchange failed")
)
