package service

import (
	"context"
	"strings"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// ExerciseInput is the body of a new workout.
type ExerciseInput struct {
	Date           string  `json:"date"`
	ExerciseType   string  `json:"exerciseType"`
	CaloriesBurnt  *int    `json:"caloriesBurnt"`
	HRZone1Seconds *int    `json:"hrZone1Seconds"`
	HRZone2Seconds *int    `json:"hrZone2Seconds"`
	HRZone3Seconds *int    `json:"hrZone3Seconds"`
	HRZone4Seconds *int    `json:"hrZone4Seconds"`
	HRZone5Seconds *int    `json:"hrZone5Seconds"`
	Notes          *string `json:"notes"`
}

// ExerciseService manages workouts.
type ExerciseService interface {
	// List returns workouts (of one day when date is set) and their total calories.
	List(ctx context.Context, userID uuid.UUID, date string) ([]model.ExerciseLogEntry, int, error)
	Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.ExerciseDaySummary, error)
	Create(ctx context.Context, userID uuid.UUID, in ExerciseInput) (model.ExerciseLogEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type ExerciseServiceImpl struct {
	repo repository.ExerciseLogRepository
	now  func() time.Time
}

// NewExerciseService constructs ExerciseService.
func NewExerciseService(repo repository.ExerciseLogRepository) *ExerciseServiceImpl {
	return &ExerciseServiceImpl{repo: repo, now: time.Now}
}

func (s *ExerciseServiceImpl) List(ctx context.Context, userID uuid.UUID, date string) ([]model.ExerciseLogEntry, int, error) {
	if err := optionalDate(date); err != nil {
		return nil, 0, err
	}
	entries, err := s.repo.List(ctx, userID, date)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.CaloriesBurnt
	}
	return entries, total, nil
}

// Summary returns per-day workout totals for the last days days (1-90, default 7).
func (s *ExerciseServiceImpl) Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.ExerciseDaySummary, error) {
	days, err := daysParam(days, 7, 90)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListSince(ctx, userID, sinceDate(s.now(), days))
	if err != nil {
		return nil, err
	}
	return SummarizeExercise(entries), nil
}

func (s *ExerciseServiceImpl) Create(ctx context.Context, userID uuid.UUID, in ExerciseInput) (model.ExerciseLogEntry, error) {
	if in.Notes != nil {
		trimmed := strings.TrimSpace(*in.Notes)
		in.Notes = &trimmed
	}
	var c checker
	c.date(in.Date, "date")
	c.oneOf(in.ExerciseType, model.ExerciseTypes, "exerciseType")
	c.integer(in.CaloriesBurnt, 1, 99999, "caloriesBurnt")
	c.optInteger(in.HRZone1Seconds, 0, 86400, "hrZone1Seconds")
	c.optInteger(in.HRZone2Seconds, 0, 86400, "hrZone2Seconds")
	c.optInteger(in.HRZone3Seconds, 0, 86400, "hrZone3Seconds")
	c.optInteger(in.HRZone4Seconds, 0, 86400, "hrZone4Seconds")
	c.optInteger(in.HRZone5Seconds, 0, 86400, "hrZone5Seconds")
	c.optText(in.Notes, 500, "notes")
	if err := c.err(); err != nil {
		return model.ExerciseLogEntry{}, err
	}

	e := model.ExerciseLogEntry{
		UserID:         userID,
		Date:           in.Date,
		ExerciseType:   in.ExerciseType,
		CaloriesBurnt:  *in.CaloriesBurnt,
		HRZone1Seconds: in.HRZone1Seconds,
		HRZone2Seconds: in.HRZone2Seconds,
		HRZone3Seconds: in.HRZone3Seconds,
		HRZone4Seconds: in.HRZone4Seconds,
		HRZone5Seconds: in.HRZone5Seconds,
		Notes:          in.Notes,
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return model.ExerciseLogEntry{}, err
	}
	return e, nil
}

func (s *ExerciseServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}
