// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinefolio/internal/database"
	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/metrics"
	"github.com/tomtom215/cinefolio/internal/models"
)

// UserStore is the subset of the database the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertOIDCUser(ctx context.Context, user *models.User) (*models.User, error)
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthResult is returned after a successful sign-in.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    string
	Username  string
	Role      string
	SessionID string
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// Service handles account creation, sign-in and token authentication.
type Service struct {
	users    UserStore
	sessions *SessionStore
	tokens   *JWTManager
	admins   map[string]struct{}
	now      func() time.Time
}

// NewService creates an auth service. Accounts whose email is listed in
// adminEmails are granted the admin role when they sign in.
func NewService(users UserStore, sessions *SessionStore, tokens *JWTManager, adminEmails []string) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if e := database.NormalizeEmail(email); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		admins:   admins,
		now:      time.Now,
	}
}

// Signup creates a password account and signs it in.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (result *AuthResult, err error) {
	defer func() { metrics.RecordAuthAttempt("signup", err == nil) }()

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserProfile: models.UserProfile{
			Username: strings.TrimSpace(req.Name),
			Email:    req.Email,
			JoinDate: s.now().UTC(),
		},
		PasswordHash: hash,
		Provider:     models.ProviderPassword,
		Role:         s.roleFor(req.Email, ""),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("Account created")
	return s.IssueSession(ctx, user)
}

// Login verifies an email and password and issues a session.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (result *AuthResult, err error) {
	defer func() { metrics.RecordAuthAttempt("password", err == nil) }()

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := CheckPassword(user.PasswordHash, req.Password); err != nil {
		logging.Ctx(ctx).Debug().Str("user_id", user.ID).Msg("Password mismatch")
		return nil, err
	}
	return s.IssueSession(ctx, user)
}

// LoginOIDC creates or refreshes the account behind an OIDC identity and
// issues a session for it. The email is stored, and checked against the
// admin list, only when the provider marked it verified.
func (s *Service) LoginOIDC(ctx context.Context, identity *OIDCIdentity) (result *AuthResult, err error) {
	defer func() { metrics.RecordAuthAttempt("oidc", err == nil) }()

	email := ""
	if identity.EmailVerified {
		email = identity.Email
	} else if identity.Email != "" {
		logging.Ctx(ctx).Debug().Str("subject", identity.Subject).Msg("Ignoring unverified OIDC email")
	}

	user, err := s.users.UpsertOIDCUser(ctx, &models.User{
		UserProfile: models.UserProfile{
			ID:        OIDCUserID(identity.Issuer, identity.Subject),
			Username:  identity.Username,
			Email:     email,
			AvatarURL: identity.AvatarURL,
			JoinDate:  s.now().UTC(),
		},
		Provider: models.ProviderOIDC,
		Subject:  identity.Subject,
		Role:     models.RoleUser,
	})
	if err != nil {
		return nil, fmt.Errorf("store oidc user: %w", err)
	}
	return s.IssueSession(ctx, user)
}

// IssueSession stores a new session for user and signs its token.
func (s *Service) IssueSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	now := s.now()
	session := &Session{
		ID:        NewSessionID(),
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      s.roleFor(user.Email, user.Role),
		Provider:  user.Provider,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.Timeout()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.tokens.GenerateToken(session)
	if err != nil {
		if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
			logging.Ctx(ctx).Warn().Err(delErr).Msg("Failed to remove orphaned session")
		}
		return nil, err
	}

	user.Role = session.Role
	return &AuthResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// Logout revokes the session. Tokens for it stop authenticating at once.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Authenticate validates a bearer token and checks its session is live.
func (s *Service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.Subject {
		return nil, ErrInvalidToken
	}
	return &Principal{
		UserID:    session.UserID,
		Username:  session.Username,
		Role:      session.Role,
		SessionID: session.ID,
	}, nil
}

// CurrentUser loads the account of an authenticated principal.
func (s *Service) CurrentUser(ctx context.Context, p *Principal) (*models.User, error) {
	user, err := s.users.GetUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	user.Role = s.roleFor(user.Email, user.Role)
	return user, nil
}

func (s *Service) roleFor(email, stored string) string {
	if stored == models.RoleAdmin {
		return models.RoleAdmin
	}
	if _, ok := s.admins[database.NormalizeEmail(email)]; ok {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// OIDCUserID derives a stable account ID from an issuer and subject.
func OIDCUserID(issuer, subject string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(issuer+"#"+subject)).String()
}
