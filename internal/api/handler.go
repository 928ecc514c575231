// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinefolio/internal/auth"
	"github.com/tomtom215/cinefolio/internal/database"
	"github.com/tomtom215/cinefolio/internal/discover"
	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/news"
	"github.com/tomtom215/cinefolio/internal/recommend"
	"github.com/tomtom215/cinefolio/internal/social"
	"github.com/tomtom215/cinefolio/internal/tmdb"
	"github.com/tomtom215/cinefolio/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ContentSource is the TMDB client surface used by the content endpoints.
type ContentSource interface {
	Trending(ctx context.Context, window string, page int) models.PaginatedResult
	Popular(ctx context.Context, mt models.MediaType, page int) models.PaginatedResult
	TopRated(ctx context.Context, mt models.MediaType, page int) models.PaginatedResult
	Details(ctx context.Context, mt models.MediaType, id int) *models.ContentItem
	Similar(ctx context.Context, mt models.MediaType, id int) []models.ContentItem
	Search(ctx context.Context, query string, page int) models.PaginatedResult
	Genres(ctx context.Context) []models.Genre
	ImageURL(path string, size tmdb.ImageSize) string
}

// NewsSource returns cinema news.
type NewsSource interface {
	Latest(ctx context.Context, q news.Query) []models.Article
}

// ListStore reads and writes the caller's own lists.
type ListStore interface {
	AddToList(ctx context.Context, userID string, kind models.ListKind, item models.ContentItem, now time.Time) (*models.ListEntry, error)
	RemoveFromList(ctx context.Context, userID string, kind models.ListKind, contentID int) error
	GetList(ctx context.Context, userID string, kind models.ListKind) ([]models.ListEntry, error)
	GetListStatus(ctx context.Context, userID string, contentID int) (models.ListStatus, error)
}

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the services behind the HTTP endpoints.
type Handler struct {
	content   ContentSource
	news      NewsSource
	discover  *discover.Service
	lists     ListStore
	auth      *auth.Service
	oidc      *auth.OIDCFlow
	social    *social.Service
	recommend *recommend.Service
	db        Pinger
	startTime time.Time
	now       func() time.Time
}

// Dependencies wires a Handler. OIDC is nil when single sign-on is disabled.
type Dependencies struct {
	Content   ContentSource
	News      NewsSource
	Discover  *discover.Service
	Lists     ListStore
	Auth      *auth.Service
	OIDC      *auth.OIDCFlow
	Social    *social.Service
	Recommend *recommend.Service
	DB        Pinger
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		content:   deps.Content,
		news:      deps.News,
		discover:  deps.Discover,
		lists:     deps.Lists,
		auth:      deps.Auth,
		oidc:      deps.OIDC,
		social:    deps.Social,
		recommend: deps.Recommend,
		db:        deps.DB,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return errors.New("request body is empty")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// validateRequest runs struct validation and writes the 400 response on
// failure. It reports whether the request is valid.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	if verr := validation.ValidateStruct(v); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getFloatParam extracts a float query parameter with a default value.
func getFloatParam(r *http.Request, key string, defaultValue float64) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// pathContentID parses a positive TMDB id from a URL parameter.
func pathContentID(r *http.Request, key string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathMediaType parses the {type} URL parameter.
func pathMediaType(r *http.Request) (models.MediaType, bool) {
	mt := models.MediaType(strings.ToLower(chi.URLParam(r, "type")))
	return mt, mt.IsValid()
}

// pathListKind parses the {list} URL parameter.
func pathListKind(r *http.Request) (models.ListKind, bool) {
	return models.ParseListKind(chi.URLParam(r, "list"))
}

// principal returns the authenticated caller. Routes using it sit behind
// RequireAuth, so a missing principal is a wiring bug and answers 401.
func principal(rw *ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Authentication required")
	}
	return p, ok
}

// respondServiceError maps store and service errors onto the envelope.
func respondServiceError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound("Not found")
	case errors.Is(err, database.ErrEmailTaken):
		rw.Conflict(err.Error())
	case errors.Is(err, database.ErrSelfFollow), errors.Is(err, database.ErrInvalidList):
		rw.BadRequest(err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		rw.Unauthorized("Invalid email or password")
	case errors.Is(err, auth.ErrInvalidState):
		rw.Error(http.StatusBadRequest, ErrCodeInvalidState, "Sign-in request expired or was already used")
	case errors.Is(err, auth.ErrTokenExchangeFailed):
		rw.Error(http.StatusBadGateway, ErrCodeExternalServiceFail, "Identity provider rejected the sign-in")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("Request cancelled")
	default:
		rw.DatabaseError(err)
	}
}
