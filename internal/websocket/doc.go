// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package websocket serves the live discover session.
//
// A browser opens /api/v1/discover/live and sends a query message each time
// its filters change:
//
//	{"type":"query","data":{"q":"","genre":28,"rating_min":6,"rating_max":10,"page":1}}
//
// Each query supersedes the previous one: the in-flight request is
// cancelled and its result, if it still arrives, is dropped. Replies carry
// the generation they answer:
//
//	{"type":"results","generation":3,"data":{"results":[...],"page":1,"total_pages":20,"has_more":true}}
//
// The Hub tracks open sessions so they are closed on shutdown. It runs
// under the supervisor tree.
package websocket
