package postgres

import (
	"context"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
)

// WaterLogRepo implements WaterLogRepository using PostgreSQL.
type WaterLogRepo struct{ db *DB }

// NewWaterLogRepo constructs a water log repository.
func NewWaterLogRepo(db *DB) *WaterLogRepo { return &WaterLogRepo{db: db} }

const waterCols = `id, user_id, to_char(date, 'YYYY-MM-DD'), to_char(time_of_day, 'HH24:MI'), amount_ml, created_at`

// List returns entries, filtered to one day when date is set.
func (r *WaterLogRepo) List(ctx context.Context, userID uuid.UUID, date string) ([]model.WaterLogEntry, error) {
	if date == "" {
		return r.query(ctx, `SELECT `+waterCols+` FROM water_log WHERE user_id = $1 ORDER BY date DESC, time_of_day ASC`, userID)
	}
	return r.query(ctx, `SELECT `+waterCols+` FROM water_log WHERE user_id = $1 AND date = $2 ORDER BY time_of_day ASC`, userID, date)
}

// ListSince returns entries dated on or after since.
func (r *WaterLogRepo) ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.WaterLogEntry, error) {
	return r.query(ctx, `SELECT `+waterCols+` FROM water_log WHERE user_id = $1 AND date >= $2 ORDER BY date DESC, time_of_day ASC`, userID, since)
}

// Create inserts an entry.
func (r *WaterLogRepo) Create(ctx context.Context, e *model.WaterLogEntry) error {
	const q = `
INSERT INTO water_log (user_id, date, time_of_day, amount_ml)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, e.UserID, e.Date, e.Time, e.AmountMl).Scan(&e.ID, &e.CreatedAt)
}

// Delete removes one entry.
func (r *WaterLogRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, r.db, "water_log", userID, id)
}

func (r *WaterLogRepo) query(ctx context.Context, q string, args ...any) ([]model.WaterLogEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WaterLogEntry{}
	for rows.Next() {
		var e model.WaterLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Time, &e.AmountMl, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CaffeineLogRepo implements CaffeineLogRepository using PostgreSQL.
type CaffeineLogRepo struct{ db *DB }

// NewCaffeineLogRepo constructs a caffeine log repository.
func NewCaffeineLogRepo(db *DB) *CaffeineLogRepo { return &CaffeineLogRepo{db: db} }

const caffeineCols = `id, user_id, to_char(date, 'YYYY-MM-DD'), to_char(time_of_day, 'HH24:MI'), amount_mg, created_at`

// List returns entries, filtered to one day when date is set.
func (r *CaffeineLogRepo) List(ctx context.Context, userID uuid.UUID, date string) ([]model.CaffeineLogEntry, error) {
	if date == "" {
		return r.query(ctx, `SELECT `+caffeineCols+` FROM caffeine_log WHERE user_id = $1 ORDER BY date DESC, time_of_day ASC`, userID)
	}
	return r.query(ctx, `SELECT `+caffeineCols+` FROM caffeine_log WHERE user_id = $1 AND date = $2 ORDER BY time_of_day ASC`, userID, date)
}

// ListSince returns entries dated on or after since.
func (r *CaffeineLogRepo) ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.CaffeineLogEntry, error) {
	return r.query(ctx, `SELECT `+caffeineCols+` FROM caffeine_log WHERE user_id = $1 AND date >= $2 ORDER BY date DESC, time_of_day ASC`, userID, since)
}

// Create inserts an entry.
func (r *CaffeineLogRepo) Create(ctx context.Context, e *model.CaffeineLogEntry) error {
	const q = `
INSERT INTO caffeine_log (user_id, date, time_of_day, amount_mg)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, e.UserID, e.Date, e.Time, e.AmountMg).Scan(&e.ID, &e.CreatedAt)
}

// Delete removes one entry.
func (r *CaffeineLogRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, r.db, "caffeine_log", userID, id)
}

func (r *CaffeineLogRepo) query(ctx context.Context, q string, args ...any) ([]model.CaffeineLogEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CaffeineLogEntry{}
	for rows.Next() {
		var e model.CaffeineLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Time, &e.AmountMg, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
