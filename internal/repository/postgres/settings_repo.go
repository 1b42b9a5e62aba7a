package postgres

import (
	"context"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
)

// SettingsRepo implements SettingsRepository using PostgreSQL.
type SettingsRepo struct{ db *DB }

// NewSettingsRepo constructs a settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the user's settings, inserting the defaults first if the row is missing.
func (r *SettingsRepo) Get(ctx context.Context, userID uuid.UUID) (*model.Settings, error) {
	const ensure = `INSERT INTO settings (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	const q = `
SELECT user_id, daily_calorie_target, daily_water_target_ml, daily_caffeine_target_mg,
  weekly_hr_zone13_mins, weekly_hr_zone45_mins
FROM settings WHERE user_id = $1`

	if _, err := r.db.Pool.Exec(ctx, ensure, userID); err != nil {
		return nil, err
	}
	var s model.Settings
	err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&s.UserID, &s.DailyCalorieTarget, &s.DailyWaterTargetMl,
		&s.DailyCaffeineTargetMg, &s.WeeklyHRZone13Mins, &s.WeeklyHRZone45Mins)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// Update stores every target of s.
func (r *SettingsRepo) Update(ctx context.Context, s *model.Settings) error {
	const q = `
UPDATE settings SET daily_calorie_target = $2, daily_water_target_ml = $3, daily_caffeine_target_mg = $4,
  weekly_hr_zone13_mins = $5, weekly_hr_zone45_mins = $6, updated_at = now()
WHERE user_id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, s.UserID, s.DailyCalorieTarget, s.DailyWaterTargetMl,
		s.DailyCaffeineTargetMg, s.WeeklyHRZone13Mins, s.WeeklyHRZone45Mins)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
