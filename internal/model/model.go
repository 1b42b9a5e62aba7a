// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Tokens collects an issued access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // access token expiry (for diagnostics)
}

// User represents an account stored on the server. The password is never stored in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Email     string    // unique, lower-cased
	Name      string
	PwdHash   []byte // Argon2id(password, SaltAuth)
	SaltAuth  []byte // per-user salt
	CreatedAt time.Time
}

// PublicUser is the client-visible projection of a User.
type PublicUser struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Public returns the client-visible fields of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// RefreshToken is a ledger row. Only the SHA-256 of the secret is persisted.
type RefreshToken struct {
	ID        int64
	UserID    uuid.UUID
	TokenHash string // hex(SHA-256(secret)), unique
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// Session is the result of a successful register/login/refresh.
type Session struct {
	User   User
	Tokens Tokens
}

// SweepResult reports how many rows a retention sweep removed.
type SweepResult struct {
	FoodLogs      int64 `json:"foodDeleted"`
	WaterLogs     int64 `json:"waterDeleted"`
	ExerciseLogs  int64 `json:"exerciseDeleted"`
	CaffeineLogs  int64 `json:"caffeineDeleted"`
	RefreshTokens int64 `json:"refreshTokensDeleted"`
	LoginLockouts int64 `json:"loginLockoutsDeleted"`
}
