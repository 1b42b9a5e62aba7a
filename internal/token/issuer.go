// Package token mints and verifies HS256 access tokens and refresh secrets.
package token

import (
	"errors"
	"fmt"
	"time"

	pkgcrypto "github.com/and161185/nutrilog/internal/crypto"
	"github.com/and161185/nutrilog/internal/errs"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// RefreshSecretBytes is the amount of CSPRNG output behind one refresh secret.
const RefreshSecretBytes = 64

// Issuer signs and verifies access tokens with a fixed HS256 key.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewIssuer returns an Issuer. An empty key or non-positive TTL is a configuration error.
func NewIssuer(key []byte, ttl time.Duration) (*Issuer, error) {
	if len(key) == 0 {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: access ttl must be positive, got %s", ttl)
	}
	return &Issuer{key: key, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source. Used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// TTL returns the access token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// IssueAccessToken creates a signed HS256 JWT for the given subject.
func (i *Issuer) IssueAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.key)
	return signed, exp, err
}

// Verify checks signature, algorithm and expiry and returns the subject.
// A well-signed but expired token yields errs.ErrTokenExpired; anything else errs.ErrInvalidToken.
func (i *Issuer) Verify(raw string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, errs.ErrTokenExpired
		}
		return uuid.Nil, errs.ErrInvalidToken
	}
	uid, err := uuid.FromString(claims.Subject)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, errs.ErrInvalidToken
	}
	return uid, nil
}

// NewRefreshSecret returns a fresh opaque refresh secret (hex of 64 random bytes).
func NewRefreshSecret() (string, error) {
	return pkgcrypto.RandHex(RefreshSecretBytes)
}
