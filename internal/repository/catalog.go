package repository

import (
	"context"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CustomFoodRepository stores user-defined foods. Every call is scoped to userID.
type CustomFoodRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.CustomFood, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.CustomFood, error)
	// FindByBarcode returns the newest custom food carrying barcode.
	FindByBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*model.CustomFood, error)
	// Search matches name or brand case-insensitively.
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.CustomFood, error)
	Create(ctx context.Context, f *model.CustomFood) error
	Update(ctx context.Context, f *model.CustomFood) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// CustomMealRepository stores user-defined meals. Every call is scoped to userID.
type CustomMealRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.CustomMeal, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.CustomMeal, error)
	Create(ctx context.Context, m *model.CustomMeal) error
	Update(ctx context.Context, m *model.CustomMeal) error
	ToggleFavourite(ctx context.Context, userID uuid.UUID, id int64) (*model.CustomMeal, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// SettingsRepository stores per-user targets.
type SettingsRepository interface {
	// Get returns the user's settings, creating the default row when none exists.
	Get(ctx context.Context, userID uuid.UUID) (*model.Settings, error)
	Update(ctx context.Context, s *model.Settings) error
}
