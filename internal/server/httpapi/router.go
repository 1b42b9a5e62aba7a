// Package httpapi exposes the nutrilog REST API over chi.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/and161185/nutrilog/internal/limiter"
	"github.com/and161185/nutrilog/internal/service"
	"github.com/and161185/nutrilog/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Deps are the services and policies the API is built from.
type Deps struct {
	Auth        service.AuthService
	Foods       service.FoodService
	FoodLog     service.FoodLogService
	Water       service.WaterService
	Caffeine    service.CaffeineService
	Exercise    service.ExerciseService
	CustomFoods service.CustomFoodService
	CustomMeals service.CustomMealService
	Settings    service.SettingsService

	Issuer         *token.Issuer
	GeneralLimiter limiter.Limiter
	AuthLimiter    limiter.Limiter
	Lockout        LoginGuard
	CORSOrigins    []string
	Log            *zap.Logger
}

// LoginGuard tracks failed logins per (email, client) pair. It is optional.
type LoginGuard interface {
	Allow(ctx context.Context, emailHash, ipHash string) (bool, time.Duration, error)
	Success(ctx context.Context, emailHash, ipHash string) error
	Failure(ctx context.Context, emailHash, ipHash string) (bool, time.Duration, error)
}

type api struct {
	Deps
	log *zap.Logger
	now func() time.Time
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	a := &api{Deps: d, log: log.Named("http"), now: time.Now}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		RequestLogger(a.log),
		Recoverer(a.log),
		SecurityHeaders,
		cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		LimitBody(MaxBodyBytes),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	auth := RequireAuth(d.Issuer)

	r.Route("/api", func(r chi.Router) {
		if d.GeneralLimiter != nil {
			r.Use(RateLimit(d.GeneralLimiter, a.log))
		}
		r.Get("/health", a.health)

		r.Route("/auth", func(r chi.Router) {
			if d.AuthLimiter != nil {
				r.Use(RateLimit(d.AuthLimiter, a.log))
			}
			r.Post("/register", a.register)
			r.Post("/login", a.login)
			r.Post("/refresh", a.refresh)
			r.With(auth).Post("/logout", a.logout)
			r.With(auth).Get("/me", a.me)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/foods/barcode/{code}", a.foodByBarcode)
			r.Get("/foods/search", a.foodSearch)

			r.Route("/food-log", func(r chi.Router) {
				r.Get("/", a.listFoodLog)
				r.Get("/recent", a.recentFoods)
				r.Get("/summary", a.foodSummary)
				r.Post("/", a.createFoodLog)
				r.Patch("/{id}/meal-type", a.updateMealType)
				r.Delete("/{id}", a.deleteFoodLog)
			})
			r.Route("/water-log", func(r chi.Router) {
				r.Get("/", a.listWater)
				r.Get("/summary", a.waterSummary)
				r.Post("/", a.createWater)
				r.Delete("/{id}", a.deleteWater)
			})
			r.Route("/caffeine-log", func(r chi.Router) {
				r.Get("/", a.listCaffeine)
				r.Get("/summary", a.caffeineSummary)
				r.Post("/", a.createCaffeine)
				r.Delete("/{id}", a.deleteCaffeine)
			})
			r.Route("/exercise-log", func(r chi.Router) {
				r.Get("/", a.listExercise)
				r.Get("/summary", a.exerciseSummary)
				r.Post("/", a.createExercise)
				r.Delete("/{id}", a.deleteExercise)
			})
			r.Route("/custom-foods", func(r chi.Router) {
				r.Get("/", a.listCustomFoods)
				r.Post("/", a.createCustomFood)
				r.Put("/{id}", a.updateCustomFood)
				r.Delete("/{id}", a.deleteCustomFood)
			})
			r.Route("/custom-meals", func(r chi.Router) {
				r.Get("/", a.listCustomMeals)
				r.Get("/{id}", a.getCustomMeal)
				r.Post("/", a.createCustomMeal)
				r.Put("/{id}", a.updateCustomMeal)
				r.Patch("/{id}/favourite", a.toggleFavourite)
				r.Delete("/{id}", a.deleteCustomMeal)
			})
			r.Get("/settings", a.getSettings)
			r.Put("/settings", a.updateSettings)
		})
	})
	return r
}

// NewServer wraps h in an http.Server with conservative timeouts.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": a.now().UTC().Format(time.RFC3339Nano),
	})
}
