package postgres

import (
	"context"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/jackc/pgx/v5"
)

// lockoutIdle is how long an unblocked login lockout row survives without new failures.
const lockoutIdle = 24 * time.Hour

// RetentionRepo implements RetentionRepository using PostgreSQL.
type RetentionRepo struct{ db *DB }

// NewRetentionRepo constructs a retention repository.
func NewRetentionRepo(db *DB) *RetentionRepo { return &RetentionRepo{db: db} }

// Sweep deletes aged log rows, expired refresh tokens and idle login lockouts in one transaction.
func (r *RetentionRepo) Sweep(ctx context.Context, cutoff string, now time.Time) (model.SweepResult, error) {
	var res model.SweepResult
	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		steps := []struct {
			q    string
			args []any
			n    *int64
		}{
			{`DELETE FROM food_log WHERE date < $1`, []any{cutoff}, &res.FoodLogs},
			{`DELETE FROM water_log WHERE date < $1`, []any{cutoff}, &res.WaterLogs},
			{`DELETE FROM exercise_log WHERE date < $1`, []any{cutoff}, &res.ExerciseLogs},
			{`DELETE FROM caffeine_log WHERE date < $1`, []any{cutoff}, &res.CaffeineLogs},
			{`DELETE FROM refresh_tokens WHERE expires_at < $1`, []any{now}, &res.RefreshTokens},
			{`DELETE FROM login_lockouts WHERE updated_at < $1 AND blocked_until < $2`,
				[]any{now.Add(-lockoutIdle), now}, &res.LoginLockouts},
		}
		for _, s := range steps {
			tag, err := tx.Exec(ctx, s.q, s.args...)
			if err != nil {
				return err
			}
			*s.n = tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return model.SweepResult{}, err
	}
	return res, nil
}
