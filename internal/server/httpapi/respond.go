package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Client-facing messages.
const (
	msgValidation   = "Validation failed."
	msgInternal     = "An unexpected error occurred."
	msgConflict     = "A record with that value already exists."
	msgAuthRequired = "Authentication required."
	msgInvalidToken = "Invalid token."
	msgTokenExpired = "Token expired."
	msgRateLimited  = "Too many requests, please try again later."
	msgInvalidJSON  = "Invalid JSON body."
	msgBodyTooLarge = "Request body too large."
	msgNotFound     = "Not found."

	codeTokenExpired = "TOKEN_EXPIRED"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeValidation(w http.ResponseWriter, details ...string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgValidation, Details: details})
}

// writeServiceError maps a service error onto the HTTP error taxonomy. notFound is the
// message for errs.ErrNotFound on this route.
func (a *api) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if v, ok := errs.AsValidation(err); ok {
		writeValidation(w, v.Details...)
		return
	}
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, errs.ErrAlreadyExists):
		writeError(w, http.StatusConflict, msgConflict)
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, msgRateLimited)
	default:
		a.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON reads the request body into dst. It writes the error response and
// returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var (
		tooLarge *http.MaxBytesError
		typeErr  *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		writeValidation(w, fmt.Sprintf("%s has an invalid type.", typeErr.Field))
	default:
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
	}
	return false
}

// pathID parses the {id} URL parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeValidation(w, "id must be a positive integer.")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		writeValidation(w, name+" must be a positive integer.")
		return 0, false
	}
	return n, true
}
