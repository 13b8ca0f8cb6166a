// Package auth guards the API with a single configured admin account and
// short-lived JWT access tokens that can be revoked on logout.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"reseller-backend/internal/metrics"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is what a successful login hands back.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      string    `json:"user"`
}

type Service struct {
	adminUser    string
	passwordHash []byte
	tokens       *TokenService
	revocations  RevocationList
	metrics      *metrics.Metrics
	logger       *log.Entry
}

type Option func(s *Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(adminUser, passwordHash string, tokens *TokenService, revocations RevocationList, opts ...Option) *Service {
	s := &Service{
		adminUser:    adminUser,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		revocations:  revocations,
		logger:       log.WithField("component", "auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword produces the value expected in the admin password hash
// setting.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *Service) Login(ctx context.Context, user, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.adminUser)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		s.metrics.RecordLogin("failure")
		s.logger.WithField("user", user).Warn("login rejected")
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(s.adminUser)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.metrics.RecordLogin("success")
	s.logger.WithField("user", user).Info("login accepted")
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: s.adminUser}, nil
}

// Authenticate verifies a bearer token and checks it was not logged out.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if err := s.revocations.Revoke(ctx, claims.ID, s.tokens.remaining(claims)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.WithField("user", claims.Subject).Info("logged out")
	return nil
}

// IsAuthError reports whether err should be answered with 401.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenRevoked)
}

