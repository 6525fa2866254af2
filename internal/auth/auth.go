// Package auth implements the shared-secret login scheme. There are no user
// accounts: one site password grants the admin role and an optional second
// password grants read-only guest access. Sessions are stateless fernet
// tokens carried in a cookie.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
)

// Roles granted by the two site passwords
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// CookieName is the session cookie carrying the fernet token
const CookieName = "portfolio_auth"

// Service verifies passwords and issues and checks session tokens
type Service struct {
	adminPassword string
	guestPassword string
	key           *fernet.Key
	ttl           time.Duration
}

// NewService creates a Service from the auth configuration. The session key
// must be a base64url-encoded 32-byte fernet key.
func NewService(cfg config.AuthConfig) (*Service, error) {
	key, err := fernet.DecodeKey(cfg.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}
	return &Service{
		adminPassword: cfg.AdminPassword,
		guestPassword: cfg.GuestPassword,
		key:           key,
		ttl:           cfg.SessionTTL,
	}, nil
}

// Login checks a password against both site passwords and returns the role
// it grants
func (s *Service) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1 {
		return RoleAdmin, nil
	}
	if s.guestPassword != "" && subtle.ConstantTimeCompare([]byte(password), []byte(s.guestPassword)) == 1 {
		return RoleGuest, nil
	}
	return "", apperrors.ErrInvalidPassword
}

// IssueToken mints a session token embedding the role
func (s *Service) IssueToken(role string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(role), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return string(token), nil
}

// VerifyToken validates a session token and returns the embedded role.
// Expired, tampered, or unrecognized tokens fail as unauthenticated.
func (s *Service) VerifyToken(token string) (string, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if payload == nil {
		return "", apperrors.ErrUnauthenticated
	}
	role := string(payload)
	if role != RoleAdmin && role != RoleGuest {
		return "", apperrors.ErrUnauthenticated
	}
	return role, nil
}

// TTL returns the session lifetime, used when setting the cookie expiry
func (s *Service) TTL() time.Duration {
	return s.ttl
}
