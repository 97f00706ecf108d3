package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/bellakids/storefront-backend/pkg/auth"
	"github.com/bellakids/storefront-backend/pkg/auth/session"
	"github.com/bellakids/storefront-backend/pkg/config"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/security"
)

type sessionManager interface {
	Start(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// Service handles the single-admin login flow.
type Service interface {
	Login(ctx context.Context, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

// LoginResult carries the minted access token back to the admin panel.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type service struct {
	jwtCfg       config.JWTConfig
	passwordHash string
	sessions     sessionManager
	now          func() time.Time
}

// NewService prepares the admin credential. A plaintext dev password is
// hashed once at boot so verification always runs against Argon2id.
func NewService(jwtCfg config.JWTConfig, adminCfg config.AdminConfig, passwordCfg config.PasswordConfig, sessions sessionManager) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}

	hash := adminCfg.PasswordHash
	if hash == "" {
		if adminCfg.Password == "" {
			return nil, fmt.Errorf("admin credential required")
		}
		hashed, err := security.HashPassword(adminCfg.Password, passwordCfg)
		if err != nil {
			return nil, fmt.Errorf("hashing admin password: %w", err)
		}
		hash = hashed
	}

	return &service{
		jwtCfg:       jwtCfg,
		passwordHash: hash,
		sessions:     sessions,
		now:          time.Now,
	}, nil
}

// Login verifies the admin password, mints a JWT, and opens the server-side
// session the middleware checks on every admin request.
func (s *service) Login(ctx context.Context, password string) (*LoginResult, error) {
	if strings.TrimSpace(password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	match, err := security.VerifyPassword(password, s.passwordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying admin password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now().UTC()
	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		Role: pkgauth.RoleAdmin,
		JTI:  accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if err := s.sessions.Start(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "starting admin session")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}

// Logout revokes the server-side session so the JWT dies before its expiry.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "revoking admin session")
	}
	return nil
}
