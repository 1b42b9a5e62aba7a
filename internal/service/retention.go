package service

import (
	"context"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"go.uber.org/zap"
)

// RetentionService deletes log data older than the retention window and expired refresh tokens.
type RetentionService struct {
	repo      repository.RetentionRepository
	keepDays  int
	sweepHour int
	log       *zap.Logger
	now       func() time.Time
}

// NewRetentionService constructs a RetentionService that keeps keepDays days of logs
// and, when run as a loop, sweeps daily at sweepHour local time.
func NewRetentionService(repo repository.RetentionRepository, keepDays, sweepHour int, log *zap.Logger) *RetentionService {
	return &RetentionService{repo: repo, keepDays: keepDays, sweepHour: sweepHour, log: log, now: time.Now}
}

// Sweep runs one retention pass.
func (s *RetentionService) Sweep(ctx context.Context) (model.SweepResult, error) {
	now := s.now()
	cutoff := sinceDate(now, s.keepDays)
	res, err := s.repo.Sweep(ctx, cutoff, now)
	if err != nil {
		s.log.Error("retention sweep failed", zap.String("cutoff", cutoff), zap.Error(err))
		return model.SweepResult{}, err
	}
	s.log.Info("retention sweep done",
		zap.String("cutoff", cutoff),
		zap.Int64("food", res.FoodLogs),
		zap.Int64("water", res.WaterLogs),
		zap.Int64("exercise", res.ExerciseLogs),
		zap.Int64("caffeine", res.CaffeineLogs),
		zap.Int64("refresh_tokens", res.RefreshTokens),
		zap.Int64("login_lockouts", res.LoginLockouts),
	)
	return res, nil
}

// Run sweeps once per day at the configured hour until ctx is cancelled.
// Sweep errors are logged and the loop continues.
func (s *RetentionService) Run(ctx context.Context) error {
	for {
		wait := nextRun(s.now(), s.sweepHour).Sub(s.now())
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
			_, _ = s.Sweep(ctx)
		}
	}
}

// nextRun returns the next moment strictly after now whose local hour is hour:00.
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
