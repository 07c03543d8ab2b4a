// Package auth implements the back-office admin login: a single
// configured credential checked at login, with a random session token
// held server-side and carried by the client in a cookie.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/blexpay/backoffice/internal/config"
)

var (
	// ErrInvalidCredentials covers both a wrong email and a wrong
	// password so the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound indicates a missing or expired session token.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "backoffice_session"

// Session is one authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore persists sessions for their lifetime.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// Service validates the admin credential and manages sessions.
type Service struct {
	cfg      config.Config
	sessions SessionStore
}

// NewService builds an auth service.
func NewService(cfg config.Config, sessions SessionStore) *Service {
	return &Service{cfg: cfg, sessions: sessions}
}

// Login checks the configured admin credential and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail) {
		return Session{}, ErrInvalidCredentials
	}
	if !s.passwordMatches(password) {
		return Session{}, ErrInvalidCredentials
	}

	session := Session{
		Token:     uuid.NewString(),
		Email:     s.cfg.AdminEmail,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Validate resolves a session token.
func (s *Service) Validate(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}
	return s.sessions.Get(ctx, token)
}

// Logout closes a session. Closing an already-expired session is not an
// error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *Service) passwordMatches(password string) bool {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
}
