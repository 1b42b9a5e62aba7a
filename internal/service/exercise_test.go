package service

import (
	"context"
	"testing"
	"time"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

type fakeExercise struct {
	rows  []model.ExerciseLogEntry
	since string
}

func (f *fakeExercise) List(context.Context, uuid.UUID, string) ([]model.ExerciseLogEntry, error) {
	return f.rows, nil
}
func (f *fakeExercise) ListSince(_ context.Context, _ uuid.UUID, since string) ([]model.ExerciseLogEntry, error) {
	f.since = since
	return f.rows, nil
}
func (f *fakeExercise) Create(_ context.Context, e *model.ExerciseLogEntry) error {
	e.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *e)
	return nil
}
func (f *fakeExercise) Delete(context.Context, uuid.UUID, int64) error { return errs.ErrNotFound }

func TestExerciseService_CreateAndTotals(t *testing.T) {
	t.Parallel()
	repo := &fakeExercise{}
	s := NewExerciseService(repo)
	ctx := context.Background()
	uid := uuid.Must(uuid.NewV4())

	e, err := s.Create(ctx, uid, ExerciseInput{
		Date: "2026-05-01", ExerciseType: "running", CaloriesBurnt: iptr(420),
		HRZone3Seconds: iptr(900), Notes: sptr("  intervals  "),
	})
	require.NoError(t, err)
	require.Equal(t, "intervals", *e.Notes)
	require.Nil(t, e.HRZone1Seconds)

	_, err = s.Create(ctx, uid, ExerciseInput{Date: "2026-05-01", ExerciseType: "gym", CaloriesBurnt: iptr(180)})
	require.NoError(t, err)

	entries, total, err := s.List(ctx, uid, "2026-05-01")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, 600, total)
}

func TestExerciseService_Validation(t *testing.T) {
	t.Parallel()
	s := NewExerciseService(&fakeExercise{})
	uid := uuid.Must(uuid.NewV4())

	_, err := s.Create(context.Background(), uid, ExerciseInput{
		Date: "01/05/2026", ExerciseType: "rowing", CaloriesBurnt: iptr(0), HRZone5Seconds: iptr(90000),
	})
	v, ok := errs.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, []string{
		"date must be a date in YYYY-MM-DD format.",
		"exerciseType must be one of: football, running, walking, netball, gym, swimming, other.",
		"caloriesBurnt must be between 1 and 99999.",
		"hrZone5Seconds must be between 0 and 86400.",
	}, v.Details)

	_, err = s.Create(context.Background(), uid, ExerciseInput{Date: "2026-05-01", ExerciseType: "gym"})
	v, ok = errs.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, []string{"caloriesBurnt is required."}, v.Details)

	require.ErrorIs(t, s.Delete(context.Background(), uid, 3), errs.ErrNotFound)
	_, ok = errs.AsValidation(s.Delete(context.Background(), uid, 0))
	require.True(t, ok)
}

func TestExerciseService_SummaryWindow(t *testing.T) {
	t.Parallel()
	repo := &fakeExercise{rows: []model.ExerciseLogEntry{
		{Date: "2026-06-10", ExerciseType: "walking", CaloriesBurnt: 120},
	}}
	s := NewExerciseService(repo)
	s.now = func() time.Time { return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC) }
	uid := uuid.Must(uuid.NewV4())

	out, err := s.Summary(context.Background(), uid, 0)
	require.NoError(t, err)
	require.Equal(t, "2026-06-03", repo.since)
	require.Len(t, out, 1)
	require.Equal(t, 120, out[0].CaloriesBurnt)

	_, err = s.Summary(context.Background(), uid, 91)
	_, ok := errs.AsValidation(err)
	require.True(t, ok)
}
