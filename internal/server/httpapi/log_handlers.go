package httpapi

import (
	"net/http"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/service"
)

const (
	msgLogNotFound      = "Log entry not found."
	msgEntryNotFound    = "Entry not found."
	msgExerciseNotFound = "Exercise entry not found."
	msgEntryDeleted     = "Entry deleted."
)

// food log

func (a *api) listFoodLog(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	q := r.URL.Query()
	entries, err := a.FoodLog.List(r.Context(), uid, q.Get("date"), q.Get("meal_type"))
	if err != nil {
		a.writeServiceError(w, r, err, msgLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (a *api) recentFoods(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	days, ok := queryInt(w, r, "days")
	if !ok {
		return
	}
	foods, err := a.FoodLog.Recent(r.Context(), uid, days)
	if err != nil {
		a.writeServiceError(w, r, err, msgLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(foods))
}

func (a *api) foodSummary(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	days, ok := queryInt(w, r, "days")
	if !ok {
		return
	}
	sum, err := a.FoodLog.Summary(r.Context(), uid, days)
	if err != nil {
		a.writeServiceError(w, r, err, msgLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(sum))
}

func (a *api) createFoodLog(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	var in service.FoodLogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	e, err := a.FoodLog.Create(r.Context(), uid, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgLogNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

type mealTypeRequest struct {
	MealType string `json:"mealType"`
}

func (a *api) updateMealType(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req mealTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := a.FoodLog.UpdateMealType(r.Context(), uid, id, req.MealType)
	if err != nil {
		a.writeServiceError(w, r, err, msgLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *api) deleteFoodLog(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.FoodLog.Delete(r.Context(), uid, id); err != nil {
		a.writeServiceError(w, r, err, msgLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgEntryDeleted})
}

// water log

type waterList struct {
	Entries []model.WaterLogEntry `json:"entries"`
	TotalMl int                   `json:"totalMl"`
}

func (a *api) listWater(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	entries, total, err := a.Water.List(r.Context(), uid, r.URL.Query().Get("date"))
	if err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, waterList{Entries: nonNil(entries), TotalMl: total})
}

func (a *api) waterSummary(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	days, ok := queryInt(w, r, "days")
	if !ok {
		return
	}
	sum, err := a.Water.Summary(r.Context(), uid, days)
	if err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(sum))
}

func (a *api) createWater(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	var in service.IntakeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	e, err := a.Water.Create(r.Context(), uid, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (a *api) deleteWater(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Water.Delete(r.Context(), uid, id); err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgEntryDeleted})
}

// caffeine log

type caffeineList struct {
	Entries []model.CaffeineLogEntry `json:"entries"`
	TotalMg int                      `json:"totalMg"`
}

func (a *api) listCaffeine(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	entries, total, err := a.Caffeine.List(r.Context(), uid, r.URL.Query().Get("date"))
	if err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, caffeineList{Entries: nonNil(entries), TotalMg: total})
}

func (a *api) caffeineSummary(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	days, ok := queryInt(w, r, "days")
	if !ok {
		return
	}
	sum, err := a.Caffeine.Summary(r.Context(), uid, days)
	if err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(sum))
}

func (a *api) createCaffeine(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	var in service.IntakeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	e, err := a.Caffeine.Create(r.Context(), uid, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (a *api) deleteCaffeine(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Caffeine.Delete(r.Context(), uid, id); err != nil {
		a.writeServiceError(w, r, err, msgEntryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgEntryDeleted})
}

// exercise log

type exerciseList struct {
	Entries            []model.ExerciseLogEntry `json:"entries"`
	TotalCaloriesBurnt int                      `json:"totalCaloriesBurnt"`
}

func (a *api) listExercise(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	entries, total, err := a.Exercise.List(r.Context(), uid, r.URL.Query().Get("date"))
	if err != nil {
		a.writeServiceError(w, r, err, msgExerciseNotFound)
		return
	}
	writeJSON(w, http.StatusOK, exerciseList{Entries: nonNil(entries), TotalCaloriesBurnt: total})
}

func (a *api) exerciseSummary(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	days, ok := queryInt(w, r, "days")
	if !ok {
		return
	}
	sum, err := a.Exercise.Summary(r.Context(), uid, days)
	if err != nil {
		a.writeServiceError(w, r, err, msgExerciseNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(sum))
}

func (a *api) createExercise(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	var in service.ExerciseInput
	if !decodeJSON(w, r, &in) {
		return
	}
	e, err := a.Exercise.Create(r.Context(), uid, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgExerciseNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (a *api) deleteExercise(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Exercise.Delete(r.Context(), uid, id); err != nil {
		a.writeServiceError(w, r, err, msgExerciseNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgEntryDeleted})
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
