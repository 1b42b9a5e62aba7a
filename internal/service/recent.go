package service

import (
	"math"
	"sort"

	"github.com/and161185/nutrilog/internal/model"
)

// DeriveRecentFoods collapses log entries to one item per (source, sourceId), keeping the
// most recent by date then time, and reconstructs per-100g values from the logged totals.
// A missing or non-positive quantity is treated as 100 g. The input slice is not modified.
func DeriveRecentFoods(entries []model.FoodLogEntry) []model.RecentFood {
	sorted := make([]model.FoodLogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].Time > sorted[j].Time
	})

	seen := make(map[string]struct{}, len(sorted))
	out := make([]model.RecentFood, 0, len(sorted))
	for _, e := range sorted {
		key := e.Source + "::" + e.SourceID
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		qty := e.QuantityG
		if qty <= 0 || math.IsNaN(qty) {
			qty = 100
		}
		rf := model.RecentFood{
			Name:         e.Name,
			Source:       e.Source,
			SourceID:     e.SourceID,
			LastDate:     e.Date,
			ServingSizeG: qty,
			Per100g: model.Per100g{
				CaloriesPer100g:     round1(e.Calories / qty * 100),
				FatPer100g:          round2(e.Fat / qty * 100),
				SaturatedFatPer100g: round2(e.SaturatedFat / qty * 100),
				CarbsPer100g:        round2(e.Carbs / qty * 100),
				SugarsPer100g:       round2(e.Sugars / qty * 100),
				FiberPer100g:        round2(e.Fiber / qty * 100),
				ProteinPer100g:      round2(e.Protein / qty * 100),
				SaltPer100g:         round2(e.Salt / qty * 100),
			},
		}
		if e.Caffeine != nil {
			v := round2(*e.Caffeine / qty * 100)
			rf.CaffeinePer100g = &v
		}
		out = append(out, rf)
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
