package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Meal types accepted on food log entries.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// Food sources accepted on food log entries.
var FoodSources = []string{SourceOpenFoodFacts, SourceCustomFood, SourceCustomMeal}

// Exercise types accepted on exercise log entries.
var ExerciseTypes = []string{"football", "running", "walking", "netball", "gym", "swimming", "other"}

// FoodLogEntry is one logged food with totals as eaten. Only MealType is mutable.
type FoodLogEntry struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	MealType  string    `json:"mealType"`
	Source    string    `json:"source"`
	SourceID  string    `json:"sourceId"`
	Name      string    `json:"name"`
	QuantityG float64   `json:"quantityG"`
	CreatedAt time.Time `json:"createdAt"`
	Nutrients
}

// WaterLogEntry is one logged drink of water.
type WaterLogEntry struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"`
	AmountMl  int       `json:"amountMl"`
	CreatedAt time.Time `json:"createdAt"`
}

// CaffeineLogEntry is one logged caffeine intake.
type CaffeineLogEntry struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"`
	AmountMg  int       `json:"amountMg"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExerciseLogEntry is one logged workout with optional heart-rate zone breakdown.
type ExerciseLogEntry struct {
	ID             int64     `json:"id"`
	UserID         uuid.UUID `json:"-"`
	Date           string    `json:"date"` // YYYY-MM-DD
	ExerciseType   string    `json:"exerciseType"`
	CaloriesBurnt  int       `json:"caloriesBurnt"`
	HRZone1Seconds *int      `json:"hrZone1Seconds"`
	HRZone2Seconds *int      `json:"hrZone2Seconds"`
	HRZone3Seconds *int      `json:"hrZone3Seconds"`
	HRZone4Seconds *int      `json:"hrZone4Seconds"`
	HRZone5Seconds *int      `json:"hrZone5Seconds"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FoodDaySummary is the per-day nutrient total of food log entries.
type FoodDaySummary struct {
	Date         string  `json:"date"`
	Calories     float64 `json:"calories"`
	Fat          float64 `json:"fat"`
	SaturatedFat float64 `json:"saturatedFat"`
	Carbs        float64 `json:"carbs"`
	Sugars       float64 `json:"sugars"`
	Fiber        float64 `json:"fiber"`
	Protein      float64 `json:"protein"`
	Salt         float64 `json:"salt"`
	Caffeine     float64 `json:"caffeine"`
	EntryCount   int     `json:"entryCount"`
}

// WaterDaySummary is the per-day total of water entries.
type WaterDaySummary struct {
	Date       string `json:"date"`
	TotalMl    int    `json:"totalMl"`
	EntryCount int    `json:"entryCount"`
}

// CaffeineDaySummary is the per-day total of caffeine entries.
type CaffeineDaySummary struct {
	Date       string `json:"date"`
	TotalMg    int    `json:"totalMg"`
	EntryCount int    `json:"entryCount"`
}

// ExerciseItem is one workout inside an exercise day summary.
type ExerciseItem struct {
	Type          string `json:"type"`
	CaloriesBurnt int    `json:"caloriesBurnt"`
}

// ExerciseDaySummary is the per-day total of exercise log entries.
type ExerciseDaySummary struct {
	Date           string         `json:"date"`
	CaloriesBurnt  int            `json:"caloriesBurnt"`
	ExerciseCount  int            `json:"exerciseCount"`
	HRZone1Seconds int            `json:"hrZone1Seconds"`
	HRZone2Seconds int            `json:"hrZone2Seconds"`
	HRZone3Seconds int            `json:"hrZone3Seconds"`
	HRZone4Seconds int            `json:"hrZone4Seconds"`
	HRZone5Seconds int            `json:"hrZone5Seconds"`
	Exercises      []ExerciseItem `json:"exercises"`
}

// Settings holds a user's daily and weekly targets.
type Settings struct {
	UserID                uuid.UUID `json:"-"`
	DailyCalorieTarget    int       `json:"dailyCalorieTarget"`
	DailyWaterTargetMl    int       `json:"dailyWaterTargetMl"`
	DailyCaffeineTargetMg int       `json:"dailyCaffeineTargetMg"`
	WeeklyHRZone13Mins    int       `json:"weeklyHrZone13Mins"`
	WeeklyHRZone45Mins    int       `json:"weeklyHrZone45Mins"`
}

// DefaultSettings returns the targets a new account starts with.
func DefaultSettings(userID uuid.UUID) Settings {
	return Settings{
		UserID:                userID,
		DailyCalorieTarget:    2000,
		DailyWaterTargetMl:    2000,
		DailyCaffeineTargetMg: 400,
		WeeklyHRZone13Mins:    150,
		WeeklyHRZone45Mins:    75,
	}
}

// SettingsPatch carries the optional fields of a partial settings update.
type SettingsPatch struct {
	DailyCalorieTarget    *int `json:"dailyCalorieTarget"`
	DailyWaterTargetMl    *int `json:"dailyWaterTargetMl"`
	DailyCaffeineTargetMg *int `json:"dailyCaffeineTargetMg"`
	WeeklyHRZone13Mins    *int `json:"weeklyHrZone13Mins"`
	WeeklyHRZone45Mins    *int `json:"weeklyHrZone45Mins"`
}

// Empty reports whether the patch sets no field.
func (p SettingsPatch) Empty() bool {
	return p.DailyCalorieTarget == nil && p.DailyWaterTargetMl == nil && p.DailyCaffeineTargetMg == nil &&
		p.WeeklyHRZone13Mins == nil && p.WeeklyHRZone45Mins == nil
}

// Apply overlays the set fields of p onto s.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.DailyCalorieTarget != nil {
		s.DailyCalorieTarget = *p.DailyCalorieTarget
	}
	if p.DailyWaterTargetMl != nil {
		s.DailyWaterTargetMl = *p.DailyWaterTargetMl
	}
	if p.DailyCaffeineTargetMg != nil {
		s.DailyCaffeineTargetMg = *p.DailyCaffeineTargetMg
	}
	if p.WeeklyHRZone13Mins != nil {
		s.WeeklyHRZone13Mins = *p.WeeklyHRZone13Mins
	}
	if p.WeeklyHRZone45Mins != nil {
		s.WeeklyHRZone45Mins = *p.WeeklyHRZone45Mins
	}
	return s
}
