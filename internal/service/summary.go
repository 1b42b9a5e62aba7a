package service

import (
	"sort"

	"github.com/and161185/nutrilog/internal/model"
)

// SummarizeFood groups entries per day in ascending date order. Calories, macros and
// caffeine are rounded to 1 decimal, salt to 2.
func SummarizeFood(entries []model.FoodLogEntry) []model.FoodDaySummary {
	byDay := map[string]*model.FoodDaySummary{}
	for _, e := range entries {
		s, ok := byDay[e.Date]
		if !ok {
			s = &model.FoodDaySummary{Date: e.Date}
			byDay[e.Date] = s
		}
		s.Calories += e.Calories
		s.Fat += e.Fat
		s.SaturatedFat += e.SaturatedFat
		s.Carbs += e.Carbs
		s.Sugars += e.Sugars
		s.Fiber += e.Fiber
		s.Protein += e.Protein
		s.Salt += e.Salt
		if e.Caffeine != nil {
			s.Caffeine += *e.Caffeine
		}
		s.EntryCount++
	}

	out := make([]model.FoodDaySummary, 0, len(byDay))
	for _, s := range byDay {
		s.Calories = round1(s.Calories)
		s.Fat = round1(s.Fat)
		s.SaturatedFat = round1(s.SaturatedFat)
		s.Carbs = round1(s.Carbs)
		s.Sugars = round1(s.Sugars)
		s.Fiber = round1(s.Fiber)
		s.Protein = round1(s.Protein)
		s.Salt = round2(s.Salt)
		s.Caffeine = round1(s.Caffeine)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// SummarizeWater totals water per day in ascending date order.
func SummarizeWater(entries []model.WaterLogEntry) []model.WaterDaySummary {
	byDay := map[string]*model.WaterDaySummary{}
	for _, e := range entries {
		s, ok := byDay[e.Date]
		if !ok {
			s = &model.WaterDaySummary{Date: e.Date}
			byDay[e.Date] = s
		}
		s.TotalMl += e.AmountMl
		s.EntryCount++
	}
	out := make([]model.WaterDaySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// SummarizeCaffeine totals caffeine per day in ascending date order.
func SummarizeCaffeine(entries []model.CaffeineLogEntry) []model.CaffeineDaySummary {
	byDay := map[string]*model.CaffeineDaySummary{}
	for _, e := range entries {
		s, ok := byDay[e.Date]
		if !ok {
			s = &model.CaffeineDaySummary{Date: e.Date}
			byDay[e.Date] = s
		}
		s.TotalMg += e.AmountMg
		s.EntryCount++
	}
	out := make([]model.CaffeineDaySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// SummarizeExercise totals workouts and heart-rate zones per day in ascending date order.
// Within a day, workouts keep their input order.
func SummarizeExercise(entries []model.ExerciseLogEntry) []model.ExerciseDaySummary {
	byDay := map[string]*model.ExerciseDaySummary{}
	for _, e := range entries {
		s, ok := byDay[e.Date]
		if !ok {
			s = &model.ExerciseDaySummary{Date: e.Date, Exercises: []model.ExerciseItem{}}
			byDay[e.Date] = s
		}
		s.CaloriesBurnt += e.CaloriesBurnt
		s.ExerciseCount++
		s.HRZone1Seconds += deref(e.HRZone1Seconds)
		s.HRZone2Seconds += deref(e.HRZone2Seconds)
		s.HRZone3Seconds += deref(e.HRZone3Seconds)
		s.HRZone4Seconds += deref(e.HRZone4Seconds)
		s.HRZone5Seconds += deref(e.HRZone5Seconds)
		s.Exercises = append(s.Exercises, model.ExerciseItem{Type: e.ExerciseType, CaloriesBurnt: e.CaloriesBurnt})
	}
	out := make([]model.ExerciseDaySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
