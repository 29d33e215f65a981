// Package auth is the token lifecycle manager: it orchestrates signup,
// login, refresh, logout and access-token authentication over the user
// store, the refresh registry and the two token codecs.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-catalog-server/registry"
	"github.com/jrsteele09/go-catalog-server/token"
	"github.com/jrsteele09/go-catalog-server/users"
)

type Service struct {
	users      users.Repo
	registry   registry.Registry
	access     *token.Codec
	refresh    *token.Codec
	bcryptCost int
}

type ServiceOption func(*Service)

// WithBcryptCost overrides the bcrypt cost factor used when hashing
// signup passwords.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func NewService(userRepo users.Repo, reg registry.Registry, accessCodec, refreshCodec *token.Codec, options ...ServiceOption) *Service {
	s := &Service{
		users:    userRepo,
		registry: reg,
		access:   accessCodec,
		refresh:  refreshCodec,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// LoginResult carries both tokens plus the public user summary returned
// to the client.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         users.Summary
}

// Signup validates the request, hashes the password and inserts a new
// user. A duplicate email surfaces as EmailTakenErr, detected from the
// storage uniqueness constraint rather than a pre-check query.
func (s *Service) Signup(ctx context.Context, name, email, password string, role users.RoleType) error {
	if name == "" || email == "" || password == "" {
		return &ValidationError{Violations: []string{"name, email, password are required"}}
	}

	if violations := users.ValidatePassword(password); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	if role == "" {
		role = users.RoleUser
	}

	passwordHash, err := users.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("Service.Signup hash: %w", err)
	}

	if _, err := s.users.Insert(ctx, name, email, passwordHash, role); err != nil {
		if errors.Is(err, users.DuplicateEmailErr) {
			return EmailTakenErr
		}
		return fmt.Errorf("Service.Signup insert: %w", err)
	}

	return nil
}

// Login verifies credentials and, on success, issues the access/refresh
// token pair and registers the refresh token. Unknown-user and
// wrong-password both match InvalidCredentialsErr.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.NotFoundErr) {
			return nil, UnknownUserErr
		}
		return nil, fmt.Errorf("Service.Login lookup: %w", err)
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, WrongPasswordErr
	}

	accessToken, err := s.access.EncodeAccess(token.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("Service.Login access token: %w", err)
	}

	refreshToken, err := s.refresh.EncodeRefresh(token.RefreshClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("Service.Login refresh token: %w", err)
	}

	if err := s.registry.Add(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("Service.Login register token: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Summary(),
	}, nil
}

// Refresh exchanges a registered, unexpired refresh token for a new
// access token. Registry membership is checked before the signature so a
// revoked token is refused immediately. The user's role and name are
// re-fetched from storage, so a role change takes effect on the next
// refresh without a new login. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", MissingTokenErr
	}

	registered, err := s.registry.Has(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("Service.Refresh registry: %w", err)
	}
	if !registered {
		return "", UnrecognizedTokenErr
	}

	claims, err := s.refresh.DecodeRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, users.NotFoundErr) {
			return "", UserNotFoundErr
		}
		return "", fmt.Errorf("Service.Refresh lookup: %w", err)
	}

	newAccess, err := s.access.EncodeAccess(token.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
	})
	if err != nil {
		return "", fmt.Errorf("Service.Refresh access token: %w", err)
	}

	return newAccess, nil
}

// Logout removes the refresh token from the registry. It is idempotent
// and never fails: a registry error is logged and swallowed, since the
// client holds nothing actionable at this point.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := s.registry.Remove(ctx, refreshToken); err != nil {
		log.Warn().Err(err).Msg("logout: failed to remove refresh token from registry")
	}
}

// Authenticate decodes an access token and returns its claims. Pure
// computation over the token and secret: no storage access, no side
// effects.
func (s *Service) Authenticate(rawToken string) (*token.AccessClaims, error) {
	if rawToken == "" {
		return nil, MissingTokenErr
	}
	return s.access.DecodeAccess(rawToken)
}
