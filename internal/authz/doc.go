// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package authz decides what an authenticated caller may do, using Casbin.
//
//	Request -> auth.RequireAuth -> authz.Middleware -> Handler
//
// The RBAC model and policy are embedded (model.conf, policy.csv). Policy
// objects are request paths matched with keyMatch2 and actions are HTTP
// methods matched with regexMatch:
//
//	p, user, /api/v1/me/*, (GET)|(POST)|(DELETE)
//	p, admin, /api/v1/admin/*, (GET)|(POST)
//	g, admin, user
//
// Roles come from the session (see auth.Principal); admin inherits user.
package authz
