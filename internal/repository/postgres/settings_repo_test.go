package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_Get_EnsuresDefaults(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`INSERT INTO settings \(user_id\) VALUES \(\$1\) ON CONFLICT \(user_id\) DO NOTHING`).
		WithArgs(uid).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`FROM settings WHERE user_id = \$1`).
		WithArgs(uid).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "cal", "water", "caffeine", "z13", "z45"}).
			AddRow(uid, 2000, 2000, 400, 150, 75))

	s, err := r.Get(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, model.DefaultSettings(uid), *s)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepo_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)
	uid := uuid.Must(uuid.NewV4())
	s := model.DefaultSettings(uid)
	s.DailyCalorieTarget = 2500

	mock.ExpectExec(`UPDATE settings SET daily_calorie_target = \$2`).
		WithArgs(uid, 2500, 2000, 400, 150, 75).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(context.Background(), &s))

	mock.ExpectExec(`UPDATE settings SET daily_calorie_target = \$2`).
		WithArgs(uid, 2500, 2000, 400, 150, 75).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(context.Background(), &s), errs.ErrNotFound)
}

func TestDB_Ping(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()

	mock.ExpectPing()
	require.NoError(t, db.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	require.Error(t, db.Ping(context.Background()))
}
