// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

/*
Package auth implements Cinefolio sign-in.

Two sign-in methods produce the same kind of session:

  - Email and password (bcrypt hashes stored with the user row)
  - OIDC authorization code flow with PKCE, using the zitadel relying party

A successful sign-in creates a Session in BadgerDB and returns an HS256 JWT
whose jti is the session ID. Requests are authenticated by validating the
JWT and then checking that its session still exists, so logout takes effect
immediately even though the token has not expired.

OIDC state (the PKCE verifier and post-login redirect) is kept in the same
Badger database with a TTL and consumed exactly once on callback.

Roles are assigned at sign-in: addresses listed in security.admin_emails get
the admin role, everyone else gets user. Authorization itself lives in
package authz.
*/
package auth
