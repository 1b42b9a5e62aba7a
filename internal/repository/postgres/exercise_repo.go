package postgres

import (
	"context"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ExerciseLogRepo implements ExerciseLogRepository using PostgreSQL.
type ExerciseLogRepo struct{ db *DB }

// NewExerciseLogRepo constructs an exercise log repository.
func NewExerciseLogRepo(db *DB) *ExerciseLogRepo { return &ExerciseLogRepo{db: db} }

const exerciseCols = `id, user_id, to_char(date, 'YYYY-MM-DD'), exercise_type, calories_burnt, hr_zone1_seconds, hr_zone2_seconds, hr_zone3_seconds, hr_zone4_seconds, hr_zone5_seconds, notes, created_at`

// List returns workouts, filtered to one day when date is set.
func (r *ExerciseLogRepo) List(ctx context.Context, userID uuid.UUID, date string) ([]model.ExerciseLogEntry, error) {
	if date == "" {
		return r.query(ctx, `SELECT `+exerciseCols+` FROM exercise_log WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
	}
	return r.query(ctx, `SELECT `+exerciseCols+` FROM exercise_log WHERE user_id = $1 AND date = $2 ORDER BY created_at DESC`, userID, date)
}

// ListSince returns workouts dated on or after since.
func (r *ExerciseLogRepo) ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.ExerciseLogEntry, error) {
	return r.query(ctx, `SELECT `+exerciseCols+` FROM exercise_log WHERE user_id = $1 AND date >= $2 ORDER BY date DESC, created_at DESC`, userID, since)
}

// Create inserts a workout.
func (r *ExerciseLogRepo) Create(ctx context.Context, e *model.ExerciseLogEntry) error {
	const q = `
INSERT INTO exercise_log (user_id, date, exercise_type, calories_burnt,
  hr_zone1_seconds, hr_zone2_seconds, hr_zone3_seconds, hr_zone4_seconds, hr_zone5_seconds, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, e.UserID, e.Date, e.ExerciseType, e.CaloriesBurnt,
		e.HRZone1Seconds, e.HRZone2Seconds, e.HRZone3Seconds, e.HRZone4Seconds, e.HRZone5Seconds, e.Notes,
	).Scan(&e.ID, &e.CreatedAt)
}

// Delete removes one workout.
func (r *ExerciseLogRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, r.db, "exercise_log", userID, id)
}

func (r *ExerciseLogRepo) query(ctx context.Context, q string, args ...any) ([]model.ExerciseLogEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ExerciseLogEntry{}
	for rows.Next() {
		var e model.ExerciseLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.ExerciseType, &e.CaloriesBurnt,
			&e.HRZone1Seconds, &e.HRZone2Seconds, &e.HRZone3Seconds, &e.HRZone4Seconds, &e.HRZone5Seconds,
			&e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
