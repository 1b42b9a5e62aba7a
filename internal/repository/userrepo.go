// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides access to accounts.
type UserRepository interface {
	// Create inserts a new user together with its default settings row.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by lower-cased email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// RefreshTokenRepository is the refresh token ledger. It only ever sees token hashes.
type RefreshTokenRepository interface {
	// Record stores a new ledger row. A duplicate hash yields errs.ErrAlreadyExists.
	Record(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*model.RefreshToken, error)
	// Lookup finds the row with exactly this hash.
	Lookup(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	// Revoke deletes a row by id. Missing rows are not an error.
	Revoke(ctx context.Context, id int64) error
	// RevokeByHash deletes the row with this hash owned by userID. Missing rows are not an error.
	RevokeByHash(ctx context.Context, userID uuid.UUID, tokenHash string) error
	// RevokeAllExpiredFor deletes the user's rows whose expiry is before now.
	RevokeAllExpiredFor(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
	// Rotate atomically deletes oldID and records the replacement.
	// If oldID is already gone, nothing is recorded and errs.ErrInvalidToken is returned.
	Rotate(ctx context.Context, oldID int64, userID uuid.UUID, newHash string, expiresAt time.Time) (*model.RefreshToken, error)
}
