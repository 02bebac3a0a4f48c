// Package auth implements the credential and session-token lifecycle:
// registration, login, token-pair issuance, refresh rotation with
// single-active-session enforcement, and stateless access verification.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-service/internal/config"
	"github.com/jrsteele09/go-session-service/token"
	"github.com/jrsteele09/go-session-service/token/refresh"
	"github.com/jrsteele09/go-session-service/users"
)

const bearerPrefix = "Bearer "

// Credentials is the client-supplied input to registration and login.
type Credentials struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Repos holds the repository dependencies for the Service.
type Repos struct {
	Users    users.UserRepo // Repository for credential records
	Sessions refresh.Repo   // Repository for refresh sessions (one per user)
}

// Service implements the token lifecycle. All failures surface as the tagged
// sentinel errors in auth_errors.go; infrastructure causes are logged here
// and never reach the caller.
type Service struct {
	repos           Repos
	codec           *token.Codec
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	nowTime         func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a Service with required dependencies. The token
// lifetimes are read from cfg once; they are process-wide configuration.
func NewService(repos Repos, codec *token.Codec, cfg config.TokenConfig, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("[NewService] Sessions repo is required")
	}
	if codec == nil {
		return nil, errors.New("[NewService] codec is required")
	}

	s := &Service{
		repos:           repos,
		codec:           codec,
		accessLifetime:  cfg.GetAccessTokenLife(),
		refreshLifetime: cfg.GetRefreshTokenLife(),
		nowTime:         time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Register validates the supplied credentials, hashes the password, and
// creates the user. The password hash never leaves this flow. Registration
// does not issue tokens; callers log in afterwards.
func (s *Service) Register(ctx context.Context, creds Credentials) (token.Identity, error) {
	if err := validateRegistration(creds); err != nil {
		return token.Identity{}, err
	}

	hash, err := users.HashPassword(creds.Password)
	if err != nil {
		log.Error().Err(err).Msg("password hashing failed")
		return token.Identity{}, ErrInternal
	}

	created, err := s.repos.Users.Insert(ctx, &users.User{Email: creds.Email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return token.Identity{}, ErrDuplicateEmail
		}
		log.Error().Err(err).Msg("user insert failed")
		return token.Identity{}, ErrInternal
	}

	return token.Identity{ID: created.ID, Email: created.Email}, nil
}

// Login verifies credentials and returns the user's identity. Unknown email
// and wrong password produce the same failure so the caller cannot tell
// them apart.
func (s *Service) Login(ctx context.Context, creds Credentials) (token.Identity, error) {
	if creds.Email == "" || creds.Password == "" {
		return token.Identity{}, ErrInvalidInput
	}

	user, err := s.repos.Users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return token.Identity{}, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("user lookup failed")
		return token.Identity{}, ErrInternal
	}

	if !users.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return token.Identity{}, ErrInvalidCredentials
	}

	return token.Identity{ID: user.ID, Email: user.Email}, nil
}

// IssueSession mints an access/refresh token pair for a verified identity
// and stores the refresh token, replacing any existing session for the user
// in a single write (at most one active refresh session per user).
func (s *Service) IssueSession(ctx context.Context, identity token.Identity) (*TokenPair, error) {
	accessToken, err := s.codec.Sign(identity, s.accessLifetime)
	if err != nil {
		log.Error().Err(err).Msg("access token signing failed")
		return nil, ErrInternal
	}

	refreshToken, err := s.codec.Sign(identity, s.refreshLifetime)
	if err != nil {
		log.Error().Err(err).Msg("refresh token signing failed")
		return nil, ErrInternal
	}

	session := &refresh.Session{
		UserID:   identity.ID,
		Token:    refreshToken,
		IssuedAt: s.nowTime(),
	}
	if err := s.repos.Sessions.Upsert(ctx, session); err != nil {
		log.Error().Err(err).Msg("refresh session upsert failed")
		return nil, ErrInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh validates a presented refresh token and rotates the session.
// A refresh token is accepted only if it is cryptographically valid,
// unexpired, and textually equal to the stored one; a token that has been
// rotated out fails with ErrTokenSuperseded (still a 403 to the caller, but
// distinguishable in logs). Both new tokens are minted before the single
// session write, so rotation is never partial; on any rejection the stored
// session is left untouched.
func (s *Service) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if presented == "" {
		return nil, ErrForbidden
	}

	identity, err := s.codec.Verify(presented)
	if err != nil {
		log.Debug().Err(err).Msg("refresh token rejected")
		return nil, ErrForbidden
	}

	user, err := s.repos.Users.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrForbidden
		}
		log.Error().Err(err).Msg("user lookup failed")
		return nil, ErrInternal
	}

	session, err := s.repos.Sessions.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, refresh.ErrNotFound) {
			return nil, ErrForbidden
		}
		log.Error().Err(err).Msg("refresh session lookup failed")
		return nil, ErrInternal
	}

	if session.Token != presented {
		log.Warn().Str("userId", user.ID).Msg("superseded refresh token presented")
		return nil, ErrTokenSuperseded
	}

	return s.IssueSession(ctx, token.Identity{ID: user.ID, Email: user.Email})
}

// Logout deletes the caller's refresh session. Idempotent.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.repos.Sessions.DeleteByUserID(ctx, userID); err != nil {
		log.Error().Err(err).Msg("refresh session delete failed")
		return ErrInternal
	}
	return nil
}

// VerifyAccess validates an Authorization header value carrying a Bearer
// access token. Purely cryptographic: no store lookup, so a deleted user's
// token stays valid until it expires.
func (s *Service) VerifyAccess(authHeader string) (token.Identity, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return token.Identity{}, ErrUnauthorized
	}

	identity, err := s.codec.Verify(strings.TrimPrefix(authHeader, bearerPrefix))
	if err != nil {
		return token.Identity{}, ErrUnauthorized
	}
	if identity.ID == "" {
		return token.Identity{}, ErrUnauthorized
	}
	return identity, nil
}
