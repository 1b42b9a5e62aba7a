package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Food sources as stored on log entries and returned by lookups.
const (
	SourceOpenFoodFacts = "openfoodfacts"
	SourceCustomFood    = "custom_food"
	SourceCustomMeal    = "custom_meal"
)

// Nutrients is an absolute nutrient vector (totals as logged or per meal serving).
type Nutrients struct {
	Calories     float64  `json:"calories"`
	Fat          float64  `json:"fat"`
	SaturatedFat float64  `json:"saturatedFat"`
	Carbs        float64  `json:"carbs"`
	Sugars       float64  `json:"sugars"`
	Fiber        float64  `json:"fiber"`
	Protein      float64  `json:"protein"`
	Salt         float64  `json:"salt"`
	Caffeine     *float64 `json:"caffeine"`
}

// Per100g is a nutrient density vector expressed per 100 g of product.
type Per100g struct {
	CaloriesPer100g     float64  `json:"caloriesPer100g"`
	FatPer100g          float64  `json:"fatPer100g"`
	SaturatedFatPer100g float64  `json:"saturatedFatPer100g"`
	CarbsPer100g        float64  `json:"carbsPer100g"`
	SugarsPer100g       float64  `json:"sugarsPer100g"`
	FiberPer100g        float64  `json:"fiberPer100g"`
	ProteinPer100g      float64  `json:"proteinPer100g"`
	SaltPer100g         float64  `json:"saltPer100g"`
	CaffeinePer100g     *float64 `json:"caffeinePer100g"`
}

// Food is the normalized record returned by lookups regardless of source.
type Food struct {
	Barcode      string  `json:"barcode,omitempty"`
	Name         string  `json:"name"`
	Brand        *string `json:"brand"`
	ServingSizeG float64 `json:"servingSizeG"`
	Per100g
}

// FoodMatch pairs a normalized record with where it came from.
type FoodMatch struct {
	Source string `json:"source"`
	Food   Food   `json:"food"`
}

// CustomFood is a user-defined product with per-100g nutrition.
type CustomFood struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"-"`
	Barcode      *string   `json:"barcode"`
	Name         string    `json:"name"`
	Brand        *string   `json:"brand"`
	ServingSizeG float64   `json:"servingSizeG"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Per100g
}

// Food converts the custom food into the normalized lookup shape.
func (c CustomFood) Food() Food {
	f := Food{
		Name:         c.Name,
		Brand:        c.Brand,
		ServingSizeG: c.ServingSizeG,
		Per100g:      c.Per100g,
	}
	if c.Barcode != nil {
		f.Barcode = *c.Barcode
	}
	return f
}

// CustomMeal is a user-defined composite with absolute nutrients per serving.
type CustomMeal struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"-"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ServingSizeG float64   `json:"servingSizeG"`
	IsFavourite  bool      `json:"isFavourite"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Nutrients
}

// RecentFood is a deduplicated recently-logged food with reconstructed per-100g values.
type RecentFood struct {
	Name         string    `json:"name"`
	Source       string    `json:"source"`
	SourceID     string    `json:"sourceId"`
	LastDate     string    `json:"lastDate"`
	ServingSizeG float64   `json:"servingSizeG"`
	Per100g
}
