package postgres

import (
	"context"
	"strings"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

const customFoodCols = `id, user_id, barcode, name, brand, serving_size_g, calories_per_100g, fat_per_100g, saturated_fat_per_100g, carbs_per_100g, sugars_per_100g, fiber_per_100g, protein_per_100g, salt_per_100g, caffeine_per_100g, created_at, updated_at`

// CustomFoodRepo implements CustomFoodRepository using PostgreSQL.
type CustomFoodRepo struct{ db *DB }

// NewCustomFoodRepo constructs a custom food repository.
func NewCustomFoodRepo(db *DB) *CustomFoodRepo { return &CustomFoodRepo{db: db} }

// List returns the user's foods, newest first.
func (r *CustomFoodRepo) List(ctx context.Context, userID uuid.UUID) ([]model.CustomFood, error) {
	return r.query(ctx, `SELECT `+customFoodCols+` FROM custom_foods WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// Get returns one food.
func (r *CustomFoodRepo) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.CustomFood, error) {
	f, err := scanCustomFood(r.db.Pool.QueryRow(ctx, `SELECT `+customFoodCols+` FROM custom_foods WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// FindByBarcode returns the newest food with this barcode.
func (r *CustomFoodRepo) FindByBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*model.CustomFood, error) {
	q := `SELECT ` + customFoodCols + ` FROM custom_foods WHERE user_id = $1 AND barcode = $2 ORDER BY created_at DESC LIMIT 1`
	f, err := scanCustomFood(r.db.Pool.QueryRow(ctx, q, userID, barcode))
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// Search matches name or brand by substring, case-insensitively.
func (r *CustomFoodRepo) Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.CustomFood, error) {
	q := `SELECT ` + customFoodCols + ` FROM custom_foods WHERE user_id = $1 AND (name ILIKE $2 OR brand ILIKE $2) ORDER BY name ASC LIMIT $3`
	return r.query(ctx, q, userID, likePattern(query), limit)
}

// Create inserts a food.
func (r *CustomFoodRepo) Create(ctx context.Context, f *model.CustomFood) error {
	const q = `
INSERT INTO custom_foods (user_id, barcode, name, brand, serving_size_g,
  calories_per_100g, fat_per_100g, saturated_fat_per_100g, carbs_per_100g, sugars_per_100g,
  fiber_per_100g, protein_per_100g, salt_per_100g, caffeine_per_100g)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, created_at, updated_at`
	p := f.Per100g
	return r.db.Pool.QueryRow(ctx, q, f.UserID, f.Barcode, f.Name, f.Brand, f.ServingSizeG,
		p.CaloriesPer100g, p.FatPer100g, p.SaturatedFatPer100g, p.CarbsPer100g, p.SugarsPer100g,
		p.FiberPer100g, p.ProteinPer100g, p.SaltPer100g, p.CaffeinePer100g,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// Update overwrites every mutable column of a food.
func (r *CustomFoodRepo) Update(ctx context.Context, f *model.CustomFood) error {
	const q = `
UPDATE custom_foods SET barcode = $3, name = $4, brand = $5, serving_size_g = $6,
  calories_per_100g = $7, fat_per_100g = $8, saturated_fat_per_100g = $9, carbs_per_100g = $10,
  sugars_per_100g = $11, fiber_per_100g = $12, protein_per_100g = $13, salt_per_100g = $14,
  caffeine_per_100g = $15, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING created_at, updated_at`
	p := f.Per100g
	err := r.db.Pool.QueryRow(ctx, q, f.ID, f.UserID, f.Barcode, f.Name, f.Brand, f.ServingSizeG,
		p.CaloriesPer100g, p.FatPer100g, p.SaturatedFatPer100g, p.CarbsPer100g, p.SugarsPer100g,
		p.FiberPer100g, p.ProteinPer100g, p.SaltPer100g, p.CaffeinePer100g,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	return notFound(err)
}

// Delete removes a food.
func (r *CustomFoodRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, r.db, "custom_foods", userID, id)
}

func (r *CustomFoodRepo) query(ctx context.Context, q string, args ...any) ([]model.CustomFood, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CustomFood{}
	for rows.Next() {
		f, err := scanCustomFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanCustomFood(row pgx.Row) (model.CustomFood, error) {
	var f model.CustomFood
	err := row.Scan(&f.ID, &f.UserID, &f.Barcode, &f.Name, &f.Brand, &f.ServingSizeG,
		&f.CaloriesPer100g, &f.FatPer100g, &f.SaturatedFatPer100g, &f.CarbsPer100g, &f.SugarsPer100g,
		&f.FiberPer100g, &f.ProteinPer100g, &f.SaltPer100g, &f.CaffeinePer100g, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// likePattern wraps s for a substring ILIKE match with wildcards escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

const customMealCols = `id, user_id, name, description, serving_size_g, calories, fat, saturated_fat, carbs, sugars, fiber, protein, salt, caffeine, is_favourite, created_at, updated_at`

// CustomMealRepo implements CustomMealRepository using PostgreSQL.
type CustomMealRepo struct{ db *DB }

// NewCustomMealRepo constructs a custom meal repository.
func NewCustomMealRepo(db *DB) *CustomMealRepo { return &CustomMealRepo{db: db} }

// List returns favourites first, then newest.
func (r *CustomMealRepo) List(ctx context.Context, userID uuid.UUID) ([]model.CustomMeal, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+customMealCols+` FROM custom_meals WHERE user_id = $1 ORDER BY is_favourite DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CustomMeal{}
	for rows.Next() {
		m, err := scanCustomMeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Get returns one meal.
func (r *CustomMealRepo) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.CustomMeal, error) {
	m, err := scanCustomMeal(r.db.Pool.QueryRow(ctx, `SELECT `+customMealCols+` FROM custom_meals WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// Create inserts a meal.
func (r *CustomMealRepo) Create(ctx context.Context, m *model.CustomMeal) error {
	const q = `
INSERT INTO custom_meals (user_id, name, description, serving_size_g,
  calories, fat, saturated_fat, carbs, sugars, fiber, protein, salt, caffeine, is_favourite)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, created_at, updated_at`
	n := m.Nutrients
	return r.db.Pool.QueryRow(ctx, q, m.UserID, m.Name, m.Description, m.ServingSizeG,
		n.Calories, n.Fat, n.SaturatedFat, n.Carbs, n.Sugars, n.Fiber, n.Protein, n.Salt, n.Caffeine, m.IsFavourite,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// Update overwrites every mutable column of a meal.
func (r *CustomMealRepo) Update(ctx context.Context, m *model.CustomMeal) error {
	const q = `
UPDATE custom_meals SET name = $3, description = $4, serving_size_g = $5,
  calories = $6, fat = $7, saturated_fat = $8, carbs = $9, sugars = $10, fiber = $11,
  protein = $12, salt = $13, caffeine = $14, is_favourite = $15, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING created_at, updated_at`
	n := m.Nutrients
	err := r.db.Pool.QueryRow(ctx, q, m.ID, m.UserID, m.Name, m.Description, m.ServingSizeG,
		n.Calories, n.Fat, n.SaturatedFat, n.Carbs, n.Sugars, n.Fiber, n.Protein, n.Salt, n.Caffeine, m.IsFavourite,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return notFound(err)
}

// ToggleFavourite flips the favourite flag.
func (r *CustomMealRepo) ToggleFavourite(ctx context.Context, userID uuid.UUID, id int64) (*model.CustomMeal, error) {
	q := `UPDATE custom_meals SET is_favourite = NOT is_favourite, updated_at = now() WHERE id = $1 AND user_id = $2 RETURNING ` + customMealCols
	m, err := scanCustomMeal(r.db.Pool.QueryRow(ctx, q, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// Delete removes a meal.
func (r *CustomMealRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, r.db, "custom_meals", userID, id)
}

func scanCustomMeal(row pgx.Row) (model.CustomMeal, error) {
	var m model.CustomMeal
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.ServingSizeG,
		&m.Calories, &m.Fat, &m.SaturatedFat, &m.Carbs, &m.Sugars, &m.Fiber, &m.Protein, &m.Salt, &m.Caffeine,
		&m.IsFavourite, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

