package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNextRun(t *testing.T) {
	t.Parallel()
	loc := time.UTC

	now := time.Date(2026, 6, 1, 1, 30, 0, 0, loc)
	require.Equal(t, time.Date(2026, 6, 1, 3, 0, 0, 0, loc), nextRun(now, 3))

	now = time.Date(2026, 6, 1, 3, 0, 0, 0, loc)
	require.Equal(t, time.Date(2026, 6, 2, 3, 0, 0, 0, loc), nextRun(now, 3))

	now = time.Date(2026, 12, 31, 23, 0, 0, 0, loc)
	require.Equal(t, time.Date(2027, 1, 1, 3, 0, 0, 0, loc), nextRun(now, 3))
}

func TestRetentionService_Sweep(t *testing.T) {
	t.Parallel()
	repo := &fakeRetention{res: model.SweepResult{FoodLogs: 3, RefreshTokens: 1}}
	s := NewRetentionService(repo, 30, 3, zaptest.NewLogger(t))
	now := time.Date(2026, 6, 30, 3, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	res, err := s.Sweep(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, res.FoodLogs)
	require.Equal(t, "2026-05-31", repo.cutoff)
	require.Equal(t, now, repo.now)

	repo.err = errors.New("boom")
	_, err = s.Sweep(context.Background())
	require.Error(t, err)
}

func TestRetentionService_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	s := NewRetentionService(&fakeRetention{}, 30, 3, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
