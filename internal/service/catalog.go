package service

import (
	"context"
	"strings"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// CustomFoodInput is the body of a custom food create or update.
type CustomFoodInput struct {
	Barcode             *string  `json:"barcode"`
	Name                string   `json:"name"`
	Brand               *string  `json:"brand"`
	ServingSizeG        *float64 `json:"servingSizeG"`
	CaloriesPer100g     *float64 `json:"caloriesPer100g"`
	FatPer100g          *float64 `json:"fatPer100g"`
	SaturatedFatPer100g *float64 `json:"saturatedFatPer100g"`
	CarbsPer100g        *float64 `json:"carbsPer100g"`
	SugarsPer100g       *float64 `json:"sugarsPer100g"`
	FiberPer100g        *float64 `json:"fiberPer100g"`
	ProteinPer100g      *float64 `json:"proteinPer100g"`
	SaltPer100g         *float64 `json:"saltPer100g"`
	CaffeinePer100g     *float64 `json:"caffeinePer100g"`
}

func (in *CustomFoodInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Barcode = trimOrNil(in.Barcode)
	in.Brand = trimOrNil(in.Brand)
}

func (in CustomFoodInput) validate() error {
	var c checker
	if in.Barcode != nil {
		c.check(len(*in.Barcode) <= 50 && digitsRe.MatchString(*in.Barcode), "barcode must be at most 50 digits.")
	}
	c.text(in.Name, 1, 255, "name")
	c.optText(in.Brand, 255, "brand")
	c.number(in.ServingSizeG, 0.1, 5000, "servingSizeG")
	c.number(in.CaloriesPer100g, 0, 9999, "caloriesPer100g")
	c.number(in.FatPer100g, 0, 100, "fatPer100g")
	c.number(in.SaturatedFatPer100g, 0, 100, "saturatedFatPer100g")
	c.number(in.CarbsPer100g, 0, 100, "carbsPer100g")
	c.number(in.SugarsPer100g, 0, 100, "sugarsPer100g")
	c.number(in.FiberPer100g, 0, 100, "fiberPer100g")
	c.number(in.ProteinPer100g, 0, 100, "proteinPer100g")
	c.number(in.SaltPer100g, 0, 100, "saltPer100g")
	c.optNumber(in.CaffeinePer100g, 0, 5000, "caffeinePer100g")
	return c.err()
}

func (in CustomFoodInput) apply(f *model.CustomFood) {
	f.Barcode = in.Barcode
	f.Name = in.Name
	f.Brand = in.Brand
	f.ServingSizeG = *in.ServingSizeG
	f.Per100g = model.Per100g{
		CaloriesPer100g:     *in.CaloriesPer100g,
		FatPer100g:          *in.FatPer100g,
		SaturatedFatPer100g: *in.SaturatedFatPer100g,
		CarbsPer100g:        *in.CarbsPer100g,
		SugarsPer100g:       *in.SugarsPer100g,
		FiberPer100g:        *in.FiberPer100g,
		ProteinPer100g:      *in.ProteinPer100g,
		SaltPer100g:         *in.SaltPer100g,
		CaffeinePer100g:     in.CaffeinePer100g,
	}
}

// CustomFoodService manages user-defined foods.
type CustomFoodService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.CustomFood, error)
	Create(ctx context.Context, userID uuid.UUID, in CustomFoodInput) (model.CustomFood, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, in CustomFoodInput) (model.CustomFood, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type CustomFoodServiceImpl struct {
	repo repository.CustomFoodRepository
}

// NewCustomFoodService constructs CustomFoodService.
func NewCustomFoodService(repo repository.CustomFoodRepository) *CustomFoodServiceImpl {
	return &CustomFoodServiceImpl{repo: repo}
}

func (s *CustomFoodServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.CustomFood, error) {
	return s.repo.List(ctx, userID)
}

func (s *CustomFoodServiceImpl) Create(ctx context.Context, userID uuid.UUID, in CustomFoodInput) (model.CustomFood, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return model.CustomFood{}, err
	}
	f := model.CustomFood{UserID: userID}
	in.apply(&f)
	if err := s.repo.Create(ctx, &f); err != nil {
		return model.CustomFood{}, err
	}
	return f, nil
}

// Update replaces every field of an owned food.
func (s *CustomFoodServiceImpl) Update(ctx context.Context, userID uuid.UUID, id int64, in CustomFoodInput) (model.CustomFood, error) {
	if err := validID(id); err != nil {
		return model.CustomFood{}, err
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return model.CustomFood{}, err
	}
	f := model.CustomFood{ID: id, UserID: userID}
	in.apply(&f)
	if err := s.repo.Update(ctx, &f); err != nil {
		return model.CustomFood{}, err
	}
	return f, nil
}

func (s *CustomFoodServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

// CustomMealInput is the body of a custom meal create or update.
type CustomMealInput struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	ServingSizeG *float64 `json:"servingSizeG"`
	Calories     *float64 `json:"calories"`
	Fat          *float64 `json:"fat"`
	SaturatedFat *float64 `json:"saturatedFat"`
	Carbs        *float64 `json:"carbs"`
	Sugars       *float64 `json:"sugars"`
	Fiber        *float64 `json:"fiber"`
	Protein      *float64 `json:"protein"`
	Salt         *float64 `json:"salt"`
	Caffeine     *float64 `json:"caffeine"`
	IsFavourite  *bool    `json:"isFavourite"`
}

func (in *CustomMealInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = trimOrNil(in.Description)
}

func (in CustomMealInput) validate() error {
	var c checker
	c.text(in.Name, 1, 255, "name")
	c.optText(in.Description, 2000, "description")
	c.number(in.ServingSizeG, 0.1, 5000, "servingSizeG")
	c.number(in.Calories, 0, 9999, "calories")
	c.number(in.Fat, 0, 999, "fat")
	c.number(in.SaturatedFat, 0, 999, "saturatedFat")
	c.number(in.Carbs, 0, 999, "carbs")
	c.number(in.Sugars, 0, 999, "sugars")
	c.number(in.Fiber, 0, 999, "fiber")
	c.number(in.Protein, 0, 999, "protein")
	c.number(in.Salt, 0, 100, "salt")
	c.optNumber(in.Caffeine, 0, 5000, "caffeine")
	return c.err()
}

func (in CustomMealInput) apply(m *model.CustomMeal) {
	m.Name = in.Name
	m.Description = in.Description
	m.ServingSizeG = *in.ServingSizeG
	m.Nutrients = model.Nutrients{
		Calories:     *in.Calories,
		Fat:          *in.Fat,
		SaturatedFat: *in.SaturatedFat,
		Carbs:        *in.Carbs,
		Sugars:       *in.Sugars,
		Fiber:        *in.Fiber,
		Protein:      *in.Protein,
		Salt:         *in.Salt,
		Caffeine:     in.Caffeine,
	}
	if in.IsFavourite != nil {
		m.IsFavourite = *in.IsFavourite
	}
}

// CustomMealService manages user-defined meals.
type CustomMealService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.CustomMeal, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (model.CustomMeal, error)
	Create(ctx context.Context, userID uuid.UUID, in CustomMealInput) (model.CustomMeal, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, in CustomMealInput) (model.CustomMeal, error)
	ToggleFavourite(ctx context.Context, userID uuid.UUID, id int64) (model.CustomMeal, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type CustomMealServiceImpl struct {
	repo repository.CustomMealRepository
}

// NewCustomMealService constructs CustomMealService.
func NewCustomMealService(repo repository.CustomMealRepository) *CustomMealServiceImpl {
	return &CustomMealServiceImpl{repo: repo}
}

func (s *CustomMealServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.CustomMeal, error) {
	return s.repo.List(ctx, userID)
}

func (s *CustomMealServiceImpl) Get(ctx context.Context, userID uuid.UUID, id int64) (model.CustomMeal, error) {
	if err := validID(id); err != nil {
		return model.CustomMeal{}, err
	}
	m, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return model.CustomMeal{}, err
	}
	return *m, nil
}

func (s *CustomMealServiceImpl) Create(ctx context.Context, userID uuid.UUID, in CustomMealInput) (model.CustomMeal, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return model.CustomMeal{}, err
	}
	m := model.CustomMeal{UserID: userID}
	in.apply(&m)
	if err := s.repo.Create(ctx, &m); err != nil {
		return model.CustomMeal{}, err
	}
	return m, nil
}

// Update replaces the meal's fields. The favourite flag is kept unless the input sets it.
func (s *CustomMealServiceImpl) Update(ctx context.Context, userID uuid.UUID, id int64, in CustomMealInput) (model.CustomMeal, error) {
	if err := validID(id); err != nil {
		return model.CustomMeal{}, err
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return model.CustomMeal{}, err
	}
	cur, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return model.CustomMeal{}, err
	}
	in.apply(cur)
	if err := s.repo.Update(ctx, cur); err != nil {
		return model.CustomMeal{}, err
	}
	return *cur, nil
}

func (s *CustomMealServiceImpl) ToggleFavourite(ctx context.Context, userID uuid.UUID, id int64) (model.CustomMeal, error) {
	if err := validID(id); err != nil {
		return model.CustomMeal{}, err
	}
	m, err := s.repo.ToggleFavourite(ctx, userID, id)
	if err != nil {
		return model.CustomMeal{}, err
	}
	return *m, nil
}

func (s *CustomMealServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

func trimOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
