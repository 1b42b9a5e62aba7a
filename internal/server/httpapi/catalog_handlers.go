package httpapi

import (
	"errors"
	"net/http"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/service"
)

const (
	msgCustomFoodNotFound = "Food not found."
	msgCustomFoodDeleted  = "Food deleted."
	msgMealNotFound       = "Meal not found."
	msgMealDeleted        = "Meal deleted."
	msgNoSettingsFields   = "No valid fields to update."
)

func (a *api) listCustomFoods(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	foods, err := a.CustomFoods.List(r.Context(), uid)
	if err != nil {
		a.writeServiceError(w, r, err, msgCustomFoodNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(foods))
}

func (a *api) createCustomFood(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	var in service.CustomFoodInput
	if !decodeJSON(w, r, &in) {
		return
	}
	f, err := a.CustomFoods.Create(r.Context(), uid, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgCustomFoodNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (a *api) updateCustomFood(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.CustomFoodInput
	if !decodeJSON(w, r, &in) {
		return
	}
	f, err := a.CustomFoods.Update(r.Context(), uid, id, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgCustomFoodNotFound)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (a *api) deleteCustomFood(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.CustomFoods.Delete(r.Context(), uid, id); err != nil {
		a.writeServiceError(w, r, err, msgCustomFoodNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgCustomFoodDeleted})
}

func (a *api) listCustomMeals(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	meals, err := a.CustomMeals.List(r.Context(), uid)
	if err != nil {
		a.writeServiceError(w, r, err, msgMealNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(meals))
}

func (a *api) getCustomMeal(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := a.CustomMeals.Get(r.Context(), uid, id)
	if err != nil {
		a.writeServiceError(w, r, err, msgMealNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *api) createCustomMeal(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	var in service.CustomMealInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := a.CustomMeals.Create(r.Context(), uid, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgMealNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (a *api) updateCustomMeal(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.CustomMealInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := a.CustomMeals.Update(r.Context(), uid, id, in)
	if err != nil {
		a.writeServiceError(w, r, err, msgMealNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *api) toggleFavourite(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := a.CustomMeals.ToggleFavourite(r.Context(), uid, id)
	if err != nil {
		a.writeServiceError(w, r, err, msgMealNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *api) deleteCustomMeal(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.CustomMeals.Delete(r.Context(), uid, id); err != nil {
		a.writeServiceError(w, r, err, msgMealNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgMealDeleted})
}

func (a *api) getSettings(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	s, err := a.Settings.Get(r.Context(), uid)
	if err != nil {
		a.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *api) updateSettings(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	var patch model.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	s, err := a.Settings.Update(r.Context(), uid, patch)
	if err != nil {
		if errors.Is(err, service.ErrNoSettingsFields) {
			writeError(w, http.StatusBadRequest, msgNoSettingsFields)
			return
		}
		a.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
