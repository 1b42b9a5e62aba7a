package postgres

import (
	"context"
	"fmt"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

const foodLogCols = `id, user_id, to_char(date, 'YYYY-MM-DD'), to_char(time_of_day, 'HH24:MI'), meal_type, source, source_id, name, quantity_g, calories, fat, saturated_fat, carbs, sugars, fiber, protein, salt, caffeine, created_at`

// FoodLogRepo implements FoodLogRepository using PostgreSQL.
type FoodLogRepo struct{ db *DB }

// NewFoodLogRepo constructs a food log repository.
func NewFoodLogRepo(db *DB) *FoodLogRepo { return &FoodLogRepo{db: db} }

// List returns entries newest day first, then by time of day.
func (r *FoodLogRepo) List(ctx context.Context, userID uuid.UUID, f repository.FoodLogFilter) ([]model.FoodLogEntry, error) {
	q := `SELECT ` + foodLogCols + ` FROM food_log WHERE user_id = $1`
	args := []any{userID}
	if f.Date != "" {
		args = append(args, f.Date)
		q += fmt.Sprintf(" AND date = $%d", len(args))
	}
	if f.MealType != "" {
		args = append(args, f.MealType)
		q += fmt.Sprintf(" AND meal_type = $%d", len(args))
	}
	q += " ORDER BY date DESC, time_of_day ASC"
	return r.query(ctx, q, args...)
}

// ListSince returns entries dated on or after since, most recent first.
func (r *FoodLogRepo) ListSince(ctx context.Context, userID uuid.UUID, since string) ([]model.FoodLogEntry, error) {
	q := `SELECT ` + foodLogCols + ` FROM food_log WHERE user_id = $1 AND date >= $2 ORDER BY date DESC, time_of_day DESC`
	return r.query(ctx, q, userID, since)
}

// Create inserts an entry and fills its id and creation time.
func (r *FoodLogRepo) Create(ctx context.Context, e *model.FoodLogEntry) error {
	const q = `
INSERT INTO food_log (user_id, date, time_of_day, meal_type, source, source_id, name, quantity_g,
  calories, fat, saturated_fat, carbs, sugars, fiber, protein, salt, caffeine)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id, created_at`
	n := e.Nutrients
	return r.db.Pool.QueryRow(ctx, q,
		e.UserID, e.Date, e.Time, e.MealType, e.Source, e.SourceID, e.Name, e.QuantityG,
		n.Calories, n.Fat, n.SaturatedFat, n.Carbs, n.Sugars, n.Fiber, n.Protein, n.Salt, n.Caffeine,
	).Scan(&e.ID, &e.CreatedAt)
}

// UpdateMealType changes the meal slot of one entry.
func (r *FoodLogRepo) UpdateMealType(ctx context.Context, userID uuid.UUID, id int64, mealType string) (*model.FoodLogEntry, error) {
	q := `UPDATE food_log SET meal_type = $3 WHERE id = $1 AND user_id = $2 RETURNING ` + foodLogCols
	e, err := scanFoodLog(r.db.Pool.QueryRow(ctx, q, id, userID, mealType))
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// Delete removes one entry.
func (r *FoodLogRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, r.db, "food_log", userID, id)
}

func (r *FoodLogRepo) query(ctx context.Context, q string, args ...any) ([]model.FoodLogEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.FoodLogEntry{}
	for rows.Next() {
		e, err := scanFoodLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanFoodLog(row pgx.Row) (model.FoodLogEntry, error) {
	var e model.FoodLogEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Time, &e.MealType, &e.Source, &e.SourceID, &e.Name, &e.QuantityG,
		&e.Calories, &e.Fat, &e.SaturatedFat, &e.Carbs, &e.Sugars, &e.Fiber, &e.Protein, &e.Salt, &e.Caffeine,
		&e.CreatedAt)
	return e, err
}

// deleteOwned deletes row id from table when it belongs to userID. Table names are package constants.
func deleteOwned(ctx context.Context, db *DB, table string, userID uuid.UUID, id int64) error {
	q := `DELETE FROM ` + table + ` WHERE id = $1 AND user_id = $2`
	tag, err := db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
