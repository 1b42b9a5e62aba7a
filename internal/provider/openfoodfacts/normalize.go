package openfoodfacts

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/and161185/nutrilog/internal/model"
)

// Upper bounds applied to upstream values.
const (
	maxName     = 255
	maxCalories = 9999
	maxMacro    = 100
	maxServing  = 5000
	maxCaffeine = 5000

	unknownName    = "Unknown"
	defaultServing = 100
)

type productResponse struct {
	Status  int      `json:"status"`
	Product *product `json:"product"`
}

type searchResponse struct {
	Products []product `json:"products"`
}

// product fields are untyped because community data mixes numbers, strings and nulls.
type product struct {
	Code            any            `json:"code"`
	ProductName     any            `json:"product_name"`
	Brands          any            `json:"brands"`
	ServingQuantity any            `json:"serving_quantity"`
	Nutriments      map[string]any `json:"nutriments"`
}

// normalize maps an upstream product onto the internal shape. Every number ends up in
// [0, max], missing or malformed numbers become 0, and strings are bounded.
func normalize(p product) model.Food {
	n := p.Nutriments
	f := model.Food{
		Name:         nameOf(p.ProductName),
		Brand:        brandOf(p.Brands),
		ServingSizeG: clamp(p.ServingQuantity, maxServing),
		Per100g: model.Per100g{
			CaloriesPer100g:     clamp(n["energy-kcal_100g"], maxCalories),
			FatPer100g:          clamp(n["fat_100g"], maxMacro),
			SaturatedFatPer100g: clamp(n["saturated-fat_100g"], maxMacro),
			CarbsPer100g:        clamp(n["carbohydrates_100g"], maxMacro),
			SugarsPer100g:       clamp(n["sugars_100g"], maxMacro),
			FiberPer100g:        clamp(n["fiber_100g"], maxMacro),
			ProteinPer100g:      clamp(n["proteins_100g"], maxMacro),
			SaltPer100g:         clamp(n["salt_100g"], maxMacro),
		},
	}
	if f.ServingSizeG == 0 {
		f.ServingSizeG = defaultServing
	}
	if v, ok := n["caffeine_100g"]; ok {
		c := clamp(v, maxCaffeine)
		f.CaffeinePer100g = &c
	}
	return f
}

func nameOf(v any) string {
	s, ok := v.(string)
	if !ok {
		return unknownName
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownName
	}
	return truncate(s, maxName)
}

func brandOf(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = truncate(s, maxName)
	return &s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// clamp parses v as a number and bounds it to [0, max]. Unparseable, negative and
// non-finite values become 0.
func clamp(v any, max float64) float64 {
	f, ok := number(v)
	if !ok || math.IsNaN(f) || f < 0 {
		return 0
	}
	if math.IsInf(f, 1) || f > max {
		return max
	}
	return f
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
