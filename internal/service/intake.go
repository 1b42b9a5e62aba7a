package service

import (
	"context"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// IntakeInput is the body of a new water or caffeine entry.
type IntakeInput struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	AmountMl *int   `json:"amountMl,omitempty"`
	AmountMg *int   `json:"amountMg,omitempty"`
}

// WaterService manages water intake.
type WaterService interface {
	// List returns the entries (of one day when date is set) and their total in ml.
	List(ctx context.Context, userID uuid.UUID, date string) ([]model.WaterLogEntry, int, error)
	Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.WaterDaySummary, error)
	Create(ctx context.Context, userID uuid.UUID, in IntakeInput) (model.WaterLogEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type WaterServiceImpl struct {
	repo repository.WaterLogRepository
	now  func() time.Time
}

// NewWaterService constructs WaterService.
func NewWaterService(repo repository.WaterLogRepository) *WaterServiceImpl {
	return &WaterServiceImpl{repo: repo, now: time.Now}
}

func (s *WaterServiceImpl) List(ctx context.Context, userID uuid.UUID, date string) ([]model.WaterLogEntry, int, error) {
	if err := optionalDate(date); err != nil {
		return nil, 0, err
	}
	entries, err := s.repo.List(ctx, userID, date)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.AmountMl
	}
	return entries, total, nil
}

func (s *WaterServiceImpl) Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.WaterDaySummary, error) {
	days, err := daysParam(days, 30, 90)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListSince(ctx, userID, sinceDate(s.now(), days))
	if err != nil {
		return nil, err
	}
	return SummarizeWater(entries), nil
}

func (s *WaterServiceImpl) Create(ctx context.Context, userID uuid.UUID, in IntakeInput) (model.WaterLogEntry, error) {
	var c checker
	c.date(in.Date, "date")
	c.clock(in.Time, "time")
	c.integer(in.AmountMl, 1, 5000, "amountMl")
	if err := c.err(); err != nil {
		return model.WaterLogEntry{}, err
	}
	e := model.WaterLogEntry{UserID: userID, Date: in.Date, Time: in.Time, AmountMl: *in.AmountMl}
	if err := s.repo.Create(ctx, &e); err != nil {
		return model.WaterLogEntry{}, err
	}
	return e, nil
}

func (s *WaterServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

// CaffeineService manages caffeine intake.
type CaffeineService interface {
	// List returns the entries (of one day when date is set) and their total in mg.
	List(ctx context.Context, userID uuid.UUID, date string) ([]model.CaffeineLogEntry, int, error)
	Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.CaffeineDaySummary, error)
	Create(ctx context.Context, userID uuid.UUID, in IntakeInput) (model.CaffeineLogEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type CaffeineServiceImpl struct {
	repo repository.CaffeineLogRepository
	now  func() time.Time
}

// NewCaffeineService constructs CaffeineService.
func NewCaffeineService(repo repository.CaffeineLogRepository) *CaffeineServiceImpl {
	return &CaffeineServiceImpl{repo: repo, now: time.Now}
}

func (s *CaffeineServiceImpl) List(ctx context.Context, userID uuid.UUID, date string) ([]model.CaffeineLogEntry, int, error) {
	if err := optionalDate(date); err != nil {
		return nil, 0, err
	}
	entries, err := s.repo.List(ctx, userID, date)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.AmountMg
	}
	return entries, total, nil
}

func (s *CaffeineServiceImpl) Summary(ctx context.Context, userID uuid.UUID, days int) ([]model.CaffeineDaySummary, error) {
	days, err := daysParam(days, 30, 90)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListSince(ctx, userID, sinceDate(s.now(), days))
	if err != nil {
		return nil, err
	}
	return SummarizeCaffeine(entries), nil
}

func (s *CaffeineServiceImpl) Create(ctx context.Context, userID uuid.UUID, in IntakeInput) (model.CaffeineLogEntry, error) {
	var c checker
	c.date(in.Date, "date")
	c.clock(in.Time, "time")
	c.integer(in.AmountMg, 1, 5000, "amountMg")
	if err := c.err(); err != nil {
		return model.CaffeineLogEntry{}, err
	}
	e := model.CaffeineLogEntry{UserID: userID, Date: in.Date, Time: in.Time, AmountMg: *in.AmountMg}
	if err := s.repo.Create(ctx, &e); err != nil {
		return model.CaffeineLogEntry{}, err
	}
	return e, nil
}

func (s *CaffeineServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}
