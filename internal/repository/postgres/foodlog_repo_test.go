package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var foodLogColNames = []string{"id", "user_id", "date", "time", "meal_type", "source", "source_id", "name", "quantity_g",
	"calories", "fat", "saturated_fat", "carbs", "sugars", "fiber", "protein", "salt", "caffeine", "created_at"}

func foodLogRow(rows *pgxmock.Rows, id int64, uid uuid.UUID, date, tm string, caffeine *float64) *pgxmock.Rows {
	return rows.AddRow(id, uid, date, tm, "lunch", model.SourceOpenFoodFacts, "3017", "Bread", 50.0,
		120.0, 1.0, 0.2, 24.0, 2.0, 3.0, 4.0, 0.5, caffeine, time.Now())
}

func TestFoodLogRepo_List_BuildsFilters(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewFoodLogRepo(db)
	ctx := context.Background()
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`FROM food_log WHERE user_id = \$1 ORDER BY date DESC, time_of_day ASC`).
		WithArgs(uid).
		WillReturnRows(foodLogRow(pgxmock.NewRows(foodLogColNames), 1, uid, "2025-03-01", "08:00", nil))
	out, err := r.List(ctx, uid, repository.FoodLogFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "2025-03-01", out[0].Date)
	require.Equal(t, "08:00", out[0].Time)
	require.Nil(t, out[0].Caffeine)
	require.InDelta(t, 120.0, out[0].Calories, 1e-9)

	mock.ExpectQuery(`FROM food_log WHERE user_id = \$1 AND date = \$2 AND meal_type = \$3 ORDER BY`).
		WithArgs(uid, "2025-03-01", "lunch").
		WillReturnRows(pgxmock.NewRows(foodLogColNames))
	out, err = r.List(ctx, uid, repository.FoodLogFilter{Date: "2025-03-01", MealType: "lunch"})
	require.NoError(t, err)
	require.Empty(t, out)
	require.NotNil(t, out)

	mock.ExpectQuery(`FROM food_log WHERE user_id = \$1 AND meal_type = \$2 ORDER BY`).
		WithArgs(uid, "snack").
		WillReturnRows(pgxmock.NewRows(foodLogColNames))
	_, err = r.List(ctx, uid, repository.FoodLogFilter{MealType: "snack"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodLogRepo_ListSince_ScansCaffeine(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewFoodLogRepo(db)
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`FROM food_log WHERE user_id = \$1 AND date >= \$2 ORDER BY date DESC, time_of_day DESC`).
		WithArgs(uid, "2025-02-22").
		WillReturnRows(foodLogRow(pgxmock.NewRows(foodLogColNames), 1, uid, "2025-03-01", "08:00", ptr(40.0)))
	out, err := r.ListSince(context.Background(), uid, "2025-02-22")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Caffeine)
	require.InDelta(t, 40.0, *out[0].Caffeine, 1e-9)
}

func TestFoodLogRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewFoodLogRepo(db)
	uid := uuid.Must(uuid.NewV4())
	e := &model.FoodLogEntry{
		UserID: uid, Date: "2025-03-01", Time: "12:30", MealType: "lunch",
		Source: model.SourceCustomFood, SourceID: "12", Name: "Soup", QuantityG: 250,
		Nutrients: model.Nutrients{Calories: 200, Protein: 8},
	}

	mock.ExpectQuery(`INSERT INTO food_log`).
		WithArgs(uid, "2025-03-01", "12:30", "lunch", model.SourceCustomFood, "12", "Soup", 250.0,
			200.0, 0.0, 0.0, 0.0, 0.0, 0.0, 8.0, 0.0, (*float64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), time.Now()))
	require.NoError(t, r.Create(context.Background(), e))
	require.Equal(t, int64(42), e.ID)
}

func TestFoodLogRepo_UpdateMealType(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewFoodLogRepo(db)
	ctx := context.Background()
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`UPDATE food_log SET meal_type = \$3 WHERE id = \$1 AND user_id = \$2 RETURNING`).
		WithArgs(int64(1), uid, "dinner").
		WillReturnRows(foodLogRow(pgxmock.NewRows(foodLogColNames), 1, uid, "2025-03-01", "19:00", nil))
	e, err := r.UpdateMealType(ctx, uid, 1, "dinner")
	require.NoError(t, err)
	require.Equal(t, int64(1), e.ID)

	mock.ExpectQuery(`UPDATE food_log SET meal_type`).
		WithArgs(int64(2), uid, "dinner").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.UpdateMealType(ctx, uid, 2, "dinner")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestFoodLogRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewFoodLogRepo(db)
	ctx := context.Background()
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM food_log WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), uid).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, uid, 1))

	mock.ExpectExec(`DELETE FROM food_log WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), uid).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, uid, 1), errs.ErrNotFound)
}
