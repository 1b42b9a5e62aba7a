package service

import (
	"context"
	"strings"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// FoodLogInput is the body of a new food log entry. Pointer fields are required unless noted.
type FoodLogInput struct {
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	MealType     string   `json:"mealType"`
	Source       string   `json:"source"`
	SourceID     string   `json:"sourceId"`
	Name         string   `json:"name"`
	QuantityG    *float64 `json:"quantityG"`
	Calories     *float64 `json:"calories"`
	Fat          *float64 `json:"fat"`
	SaturatedFat *float64 `json:"saturatedFat"`
	Carbs        *float64 `json:"carbs"`
	Sugars       *float64 `json:"sugars"`
	Fiber        *float64 `json:"fiber"`
	Protein      *float64 `json:"protein"`
	Salt         *float64 `json:"salt"`
	Caffeine     *float64 `json:"caffeine"` // optional
}

// FoodLogService manages the food diary.
type FoodLogService interface {
	List(ctx context.Context, userID uuid.UUID, date, mealType string) ([]model.FoodLogEntry, error)
	Recent(ctx context.Context, userID uuid.UUID, days int) ([]model.RecentFood, error)
	Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.FoodDaySummary, error)
	Create(ctx context.Context, userID uuid.UUID, in FoodLogInput) (model.FoodLogEntry, error)
	UpdateMealType(ctx context.Context, userID uuid.UUID, id int64, mealType string) (model.FoodLogEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type FoodLogServiceImpl struct {
	repo repository.FoodLogRepository
	now  func() time.Time
}

// NewFoodLogService constructs FoodLogService.
func NewFoodLogService(repo repository.FoodLogRepository) *FoodLogServiceImpl {
	return &FoodLogServiceImpl{repo: repo, now: time.Now}
}

// List returns entries, optionally filtered by day and meal type.
func (s *FoodLogServiceImpl) List(ctx context.Context, userID uuid.UUID, date, mealType string) ([]model.FoodLogEntry, error) {
	var c checker
	if date != "" {
		c.date(date, "date")
	}
	if mealType != "" {
		c.oneOf(mealType, model.MealTypes, "meal_type")
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID, repository.FoodLogFilter{Date: date, MealType: mealType})
}

// Recent returns deduplicated foods logged in the last days days (1-30, default 7).
func (s *FoodLogServiceImpl) Recent(ctx context.Context, userID uuid.UUID, days int) ([]model.RecentFood, error) {
	days, err := daysParam(days, 7, 30)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListSince(ctx, userID, sinceDate(s.now(), days))
	if err != nil {
		return nil, err
	}
	return DeriveRecentFoods(entries), nil
}

// Summary returns per-day nutrient totals for the last days days (1-90, default 30).
func (s *FoodLogServiceImpl) Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.FoodDaySummary, error) {
	days, err := daysParam(days, 30, 90)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListSince(ctx, userID, sinceDate(s.now(), days))
	if err != nil {
		return nil, err
	}
	return SummarizeFood(entries), nil
}

// Create validates and stores a new entry.
func (s *FoodLogServiceImpl) Create(ctx context.Context, userID uuid.UUID, in FoodLogInput) (model.FoodLogEntry, error) {
	in.SourceID = strings.TrimSpace(in.SourceID)
	in.Name = strings.TrimSpace(in.Name)

	var c checker
	c.date(in.Date, "date")
	c.clock(in.Time, "time")
	c.oneOf(in.MealType, model.MealTypes, "mealType")
	c.oneOf(in.Source, model.FoodSources, "source")
	c.text(in.SourceID, 1, 255, "sourceId")
	c.text(in.Name, 1, 255, "name")
	c.number(in.QuantityG, 0.1, 10000, "quantityG")
	c.number(in.Calories, 0, 99999, "calories")
	c.number(in.Fat, 0, 9999, "fat")
	c.number(in.SaturatedFat, 0, 9999, "saturatedFat")
	c.number(in.Carbs, 0, 9999, "carbs")
	c.number(in.Sugars, 0, 9999, "sugars")
	c.number(in.Fiber, 0, 9999, "fiber")
	c.number(in.Protein, 0, 9999, "protein")
	c.number(in.Salt, 0, 9999, "salt")
	c.optNumber(in.Caffeine, 0, 5000, "caffeine")
	if err := c.err(); err != nil {
		return model.FoodLogEntry{}, err
	}

	e := model.FoodLogEntry{
		UserID:    userID,
		Date:      in.Date,
		Time:      in.Time,
		MealType:  in.MealType,
		Source:    in.Source,
		SourceID:  in.SourceID,
		Name:      in.Name,
		QuantityG: *in.QuantityG,
		Nutrients: model.Nutrients{
			Calories:     *in.Calories,
			Fat:          *in.Fat,
			SaturatedFat: *in.SaturatedFat,
			Carbs:        *in.Carbs,
			Sugars:       *in.Sugars,
			Fiber:        *in.Fiber,
			Protein:      *in.Protein,
			Salt:         *in.Salt,
			Caffeine:     in.Caffeine,
		},
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return model.FoodLogEntry{}, err
	}
	return e, nil
}

// UpdateMealType moves an entry to another meal slot.
func (s *FoodLogServiceImpl) UpdateMealType(ctx context.Context, userID uuid.UUID, id int64, mealType string) (model.FoodLogEntry, error) {
	var c checker
	c.check(id >= 1, "id must be a positive integer.")
	c.oneOf(mealType, model.MealTypes, "mealType")
	if err := c.err(); err != nil {
		return model.FoodLogEntry{}, err
	}
	e, err := s.repo.UpdateMealType(ctx, userID, id, mealType)
	if err != nil {
		return model.FoodLogEntry{}, err
	}
	return *e, nil
}

// Delete removes an entry.
func (s *FoodLogServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

// sinceDate returns the calendar date days before now as YYYY-MM-DD.
func sinceDate(now time.Time, days int) string {
	return now.AddDate(0, 0, -days).Format(time.DateOnly)
}
