package service

import (
	"context"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// ErrNoSettingsFields is returned when an update names no known field.
var ErrNoSettingsFields = errs.Validation("No valid fields to update.")

// SettingsService manages per-user targets.
type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (model.Settings, error)
	Update(ctx context.Context, userID uuid.UUID, patch model.SettingsPatch) (model.Settings, error)
}

type SettingsServiceImpl struct {
	repo repository.SettingsRepository
}

// NewSettingsService constructs SettingsService.
func NewSettingsService(repo repository.SettingsRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{repo: repo}
}

// Get returns the targets, creating the defaults on first access.
func (s *SettingsServiceImpl) Get(ctx context.Context, userID uuid.UUID) (model.Settings, error) {
	st, err := s.repo.Get(ctx, userID)
	if err != nil {
		return model.Settings{}, err
	}
	return *st, nil
}

// Update applies a partial update after bounds checks.
func (s *SettingsServiceImpl) Update(ctx context.Context, userID uuid.UUID, patch model.SettingsPatch) (model.Settings, error) {
	var c checker
	c.optInteger(patch.DailyCalorieTarget, 500, 10000, "dailyCalorieTarget")
	c.optInteger(patch.DailyWaterTargetMl, 500, 10000, "dailyWaterTargetMl")
	c.optInteger(patch.DailyCaffeineTargetMg, 0, 2000, "dailyCaffeineTargetMg")
	c.optInteger(patch.WeeklyHRZone13Mins, 0, 1440, "weeklyHrZone13Mins")
	c.optInteger(patch.WeeklyHRZone45Mins, 0, 1440, "weeklyHrZone45Mins")
	if err := c.err(); err != nil {
		return model.Settings{}, err
	}
	if patch.Empty() {
		return model.Settings{}, ErrNoSettingsFields
	}

	cur, err := s.repo.Get(ctx, userID)
	if err != nil {
		return model.Settings{}, err
	}
	next := patch.Apply(*cur)
	if err := s.repo.Update(ctx, &next); err != nil {
		return model.Settings{}, err
	}
	return next, nil
}
