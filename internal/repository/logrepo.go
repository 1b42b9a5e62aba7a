package repository

import (
	"context"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
)

// FoodLogFilter narrows a food log listing. Empty fields match everything.
type FoodLogFilter struct {
	Date     string
	MealType string
}

// FoodLogRepository stores food log entries.
type FoodLogRepository interface {
	List(ctx context.Context, userID uuid.UUID, f FoodLogFilter) ([]model.FoodLogEntry, error)
	// ListSince returns entries dated on or after since (YYYY-MM-DD).
	ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.FoodLogEntry, error)
	Create(ctx context.Context, e *model.FoodLogEntry) error
	UpdateMealType(ctx context.Context, userID uuid.UUID, id int64, mealType string) (*model.FoodLogEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// WaterLogRepository stores water intake entries.
type WaterLogRepository interface {
	List(ctx context.Context, userID uuid.UUID, date string) ([]model.WaterLogEntry, error)
	ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.WaterLogEntry, error)
	Create(ctx context.Context, e *model.WaterLogEntry) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// CaffeineLogRepository stores caffeine intake entries.
type CaffeineLogRepository interface {
	List(ctx context.Context, userID uuid.UUID, date string) ([]model.CaffeineLogEntry, error)
	ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.CaffeineLogEntry, error)
	Create(ctx context.Context, e *model.CaffeineLogEntry) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// ExerciseLogRepository stores workouts.
type ExerciseLogRepository interface {
	List(ctx context.Context, userID uuid.UUID, date string) ([]model.ExerciseLogEntry, error)
	ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.ExerciseLogEntry, error)
	Create(ctx context.Context, e *model.ExerciseLogEntry) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// RetentionRepository removes aged data.
type RetentionRepository interface {
	// Sweep deletes log rows dated before cutoff (YYYY-MM-DD) and refresh tokens expired at now,
	// all in one transaction.
	Sweep(ctx context.Context, cutoff string, now time.Time) (model.SweepResult, error)
}
