package httpapi

import (
	"net/http"

	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	msgInvalidBarcode = "Invalid barcode format."
	msgFoodNotFound   = "Food not found. You can add it manually."
)

func (a *api) foodByBarcode(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	code := chi.URLParam(r, "code")
	if !service.ValidBarcode(code) {
		writeError(w, http.StatusBadRequest, msgInvalidBarcode)
		return
	}
	m, err := a.Foods.Barcode(r.Context(), uid, code)
	if err != nil {
		a.writeServiceError(w, r, err, msgFoodNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *api) foodSearch(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	res, err := a.Foods.Search(r.Context(), uid, r.URL.Query().Get("q"), limit)
	if err != nil {
		a.writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.FoodMatch{"results": res})
}
