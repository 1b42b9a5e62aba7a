package postgres

import (
	"context"
	"time"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// RefreshTokenRepo implements RefreshTokenRepository using PostgreSQL.
type RefreshTokenRepo struct{ db *DB }

// NewRefreshTokenRepo constructs a refresh token ledger.
func NewRefreshTokenRepo(db *DB) *RefreshTokenRepo { return &RefreshTokenRepo{db: db} }

const insertRefreshToken = `
INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3)
RETURNING id, created_at`

// Record stores a new token hash.
func (r *RefreshTokenRepo) Record(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*model.RefreshToken, error) {
	return recordToken(ctx, r.db.Pool, userID, tokenHash, expiresAt)
}

// Lookup finds a token by exact hash match.
func (r *RefreshTokenRepo) Lookup(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	const q = `
SELECT id, user_id, token_hash, expires_at, created_at
FROM refresh_tokens WHERE token_hash = $1`
	var t model.RefreshToken
	err := r.db.Pool.QueryRow(ctx, q, tokenHash).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// Revoke deletes a token by id.
func (r *RefreshTokenRepo) Revoke(ctx context.Context, id int64) error {
	const q = `DELETE FROM refresh_tokens WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, id)
	return err
}

// RevokeByHash deletes the user's token with this hash.
func (r *RefreshTokenRepo) RevokeByHash(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	const q = `DELETE FROM refresh_tokens WHERE token_hash = $1 AND user_id = $2`
	_, err := r.db.Pool.Exec(ctx, q, tokenHash, userID)
	return err
}

// RevokeAllExpiredFor deletes every expired token of the user.
func (r *RefreshTokenRepo) RevokeAllExpiredFor(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	const q = `DELETE FROM refresh_tokens WHERE user_id = $1 AND expires_at < $2`
	tag, err := r.db.Pool.Exec(ctx, q, userID, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Rotate replaces oldID with a new hash. The delete must hit exactly the presented row,
// so two concurrent rotations of the same token cannot both succeed.
func (r *RefreshTokenRepo) Rotate(ctx context.Context, oldID int64, userID uuid.UUID, newHash string, expiresAt time.Time) (*model.RefreshToken, error) {
	const del = `DELETE FROM refresh_tokens WHERE id = $1 AND user_id = $2`

	var out *model.RefreshToken
	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, del, oldID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrInvalidToken
		}
		out, err = recordToken(ctx, tx, userID, newHash, expiresAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func recordToken(ctx context.Context, q queryRower, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*model.RefreshToken, error) {
	t := model.RefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	if err := q.QueryRow(ctx, insertRefreshToken, userID, tokenHash, expiresAt).Scan(&t.ID, &t.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return &t, nil
}
