// Package service contains the application services behind the HTTP API.
package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	pkgcrypto "github.com/and161185/nutrilog/internal/crypto"
	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/and161185/nutrilog/internal/token"
	"github.com/gofrs/uuid/v5"
)

// AuthService defines registration, login and the refresh token rotation protocol.
type AuthService interface {
	// Register creates an account and opens its first session.
	Register(ctx context.Context, email, password, name string) (model.Session, error)
	// Login verifies credentials and opens a session.
	Login(ctx context.Context, email, password string) (model.Session, error)
	// Refresh consumes a refresh secret and returns a rotated session.
	Refresh(ctx context.Context, secret string) (model.Session, error)
	// Logout revokes the given secret (if any) of userID and purges the user's expired tokens.
	Logout(ctx context.Context, userID uuid.UUID, secret string) error
	// Me loads the authenticated user's profile.
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
}

type AuthServiceImpl struct {
	users      repository.UserRepository
	tokens     repository.RefreshTokenRepository
	issuer     *token.Issuer
	refreshTTL time.Duration
	now        func() time.Time
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, issuer *token.Issuer, refreshTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, issuer: issuer, refreshTTL: refreshTTL, now: time.Now}
}

// WithClock replaces the time source used for refresh expiry. Used by tests.
func (s *AuthServiceImpl) WithClock(now func() time.Time) *AuthServiceImpl {
	s.now = now
	return s
}

// Register validates input, hashes the password and creates the user with default settings.
// The password is hashed before the insert so a taken email costs the same as a new one.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name string) (model.Session, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	var c checker
	c.check(isEmail(email), "Valid email required.")
	lengthOK, classesOK := strongPassword(password)
	c.check(lengthOK, "Password must be 8-128 characters.")
	c.check(classesOK, "Password must contain uppercase, lowercase, and a number.")
	n := len([]rune(name))
	c.check(n >= 1 && n <= 100, "Name is required (max 100 chars).")
	if err := c.err(); err != nil {
		return model.Session{}, err
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return model.Session{}, err
	}
	saltAuth, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return model.Session{}, err
	}
	u := &model.User{
		ID:       uid,
		Email:    email,
		Name:     name,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), saltAuth),
		SaltAuth: saltAuth,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return model.Session{}, err
	}
	return s.openSession(ctx, *u)
}

// dummyVerify equalizes the cost of rejected logins with a real verification.
var dummyVerify = pkgcrypto.DummyVerify

// Login authenticates by email and password. Unknown emails run a dummy verification
// and fail exactly like a wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" || utf8.RuneCountInString(password) > 128 || len(email) > 255 {
		dummyVerify([]byte(password))
		return model.Session{}, errs.ErrUnauthorized
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return model.Session{}, err
		}
		dummyVerify([]byte(password))
		return model.Session{}, errs.ErrUnauthorized
	}
	if !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		return model.Session{}, errs.ErrUnauthorized
	}

	if _, err := s.tokens.RevokeAllExpiredFor(ctx, u.ID, s.now()); err != nil {
		return model.Session{}, err
	}
	return s.openSession(ctx, *u)
}

// Refresh implements single-use rotation: the presented secret is deleted and replaced
// in one transaction. Unknown, expired, or already rotated secrets all yield errs.ErrInvalidToken.
func (s *AuthServiceImpl) Refresh(ctx context.Context, secret string) (model.Session, error) {
	if secret == "" {
		return model.Session{}, errs.ErrInvalidToken
	}
	old, err := s.tokens.Lookup(ctx, pkgcrypto.HashToken(secret))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Session{}, errs.ErrInvalidToken
		}
		return model.Session{}, err
	}

	now := s.now()
	if old.Expired(now) {
		if err := s.tokens.Revoke(ctx, old.ID); err != nil {
			return model.Session{}, err
		}
		return model.Session{}, errs.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, old.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			_ = s.tokens.Revoke(ctx, old.ID)
			return model.Session{}, errs.ErrInvalidToken
		}
		return model.Session{}, err
	}

	newSecret, err := token.NewRefreshSecret()
	if err != nil {
		return model.Session{}, err
	}
	if _, err := s.tokens.Rotate(ctx, old.ID, u.ID, pkgcrypto.HashToken(newSecret), now.Add(s.refreshTTL)); err != nil {
		return model.Session{}, err
	}

	access, exp, err := s.issuer.IssueAccessToken(u.ID)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{
		User:   *u,
		Tokens: model.Tokens{AccessToken: access, RefreshToken: newSecret, ExpiresAt: exp},
	}, nil
}

// Logout deletes the caller's presented secret and any of their expired secrets.
// A secret belonging to another user is left untouched.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uuid.UUID, secret string) error {
	var firstErr error
	if secret != "" {
		firstErr = s.tokens.RevokeByHash(ctx, userID, pkgcrypto.HashToken(secret))
	}
	if _, err := s.tokens.RevokeAllExpiredFor(ctx, userID, s.now()); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Me returns the user row for userID.
func (s *AuthServiceImpl) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return *u, nil
}

// openSession issues an access token and records a fresh refresh secret for u.
func (s *AuthServiceImpl) openSession(ctx context.Context, u model.User) (model.Session, error) {
	access, exp, err := s.issuer.IssueAccessToken(u.ID)
	if err != nil {
		return model.Session{}, err
	}
	secret, err := token.NewRefreshSecret()
	if err != nil {
		return model.Session{}, err
	}
	if _, err := s.tokens.Record(ctx, u.ID, pkgcrypto.HashToken(secret), s.now().Add(s.refreshTTL)); err != nil {
		return model.Session{}, err
	}
	return model.Session{
		User:   u,
		Tokens: model.Tokens{AccessToken: access, RefreshToken: secret, ExpiresAt: exp},
	}, nil
}
