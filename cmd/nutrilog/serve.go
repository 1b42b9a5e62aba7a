package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/and161185/nutrilog/internal/config"
	"github.com/and161185/nutrilog/internal/limiter"
	"github.com/and161185/nutrilog/internal/migrate"
	"github.com/and161185/nutrilog/internal/provider/openfoodfacts"
	"github.com/and161185/nutrilog/internal/repository/postgres"
	grpcserver "github.com/and161185/nutrilog/internal/server/grpc"
	"github.com/and161185/nutrilog/internal/server/httpapi"
	"github.com/and161185/nutrilog/internal/service"
	"github.com/and161185/nutrilog/internal/token"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const (
	shutdownGrace  = 10 * time.Second
	healthInterval = 15 * time.Second
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return serve(cmd.Context(), *cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	log.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("env", cfg.Env),
		zap.String("http", cfg.HTTPAddr),
	)

	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	issuer, err := token.NewIssuer([]byte(cfg.JWTSecret), cfg.AccessTTL)
	if err != nil {
		return err
	}

	general, auth, closeLimiters, err := newLimiters(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiters()

	customFoods := postgres.NewCustomFoodRepo(db)
	off := openfoodfacts.New(openfoodfacts.Options{
		BaseURL:      cfg.OFFBaseURL,
		Timeout:      cfg.OFFTimeout,
		MaxRedirects: cfg.OFFMaxRedirects,
	}, log)

	handler := httpapi.NewRouter(httpapi.Deps{
		Auth:           service.NewAuthService(postgres.NewUserRepo(db), postgres.NewRefreshTokenRepo(db), issuer, cfg.RefreshTTL),
		Foods:          service.NewFoodService(off, customFoods),
		FoodLog:        service.NewFoodLogService(postgres.NewFoodLogRepo(db)),
		Water:          service.NewWaterService(postgres.NewWaterLogRepo(db)),
		Caffeine:       service.NewCaffeineService(postgres.NewCaffeineLogRepo(db)),
		Exercise:       service.NewExerciseService(postgres.NewExerciseLogRepo(db)),
		CustomFoods:    service.NewCustomFoodService(customFoods),
		CustomMeals:    service.NewCustomMealService(postgres.NewCustomMealRepo(db)),
		Settings:       service.NewSettingsService(postgres.NewSettingsRepo(db)),
		Issuer:         issuer,
		GeneralLimiter: general,
		AuthLimiter:    auth,
		Lockout:        newLockout(cfg, db),
		CORSOrigins:    cfg.CORSOrigins,
		Log:            log,
	})
	retention := service.NewRetentionService(postgres.NewRetentionRepo(db), cfg.RetentionDays, cfg.SweepHour, log)

	// Bound before the errgroup starts so a busy port fails without goroutines to unwind.
	healthLis, monitor, gs, err := bindHealth(cfg, db, log)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	srv := httpapi.NewServer(cfg.HTTPAddr, handler)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	g.Go(func() error { return retention.Run(gctx) })

	if gs != nil {
		g.Go(func() error { return monitor.Run(gctx) })
		g.Go(func() error {
			log.Info("health listening", zap.String("addr", cfg.HealthAddr))
			return gs.Serve(healthLis)
		})
		g.Go(func() error {
			<-gctx.Done()
			grpcserver.Stop(gs, shutdownGrace/2)
			return nil
		})
	}

	err = g.Wait()
	log.Info("shutdown complete")
	return err
}

// bindHealth listens on the gRPC health address. All results are nil when it is disabled.
func bindHealth(cfg config.Config, db grpcserver.Pinger, log *zap.Logger) (net.Listener, *grpcserver.HealthMonitor, *grpc.Server, error) {
	if cfg.HealthAddr == "" {
		return nil, nil, nil, nil
	}
	lis, err := net.Listen("tcp", cfg.HealthAddr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listen health: %w", err)
	}
	monitor := grpcserver.NewHealthMonitor(db, healthInterval, log)
	return lis, monitor, grpcserver.NewServer(monitor, log, cfg.Development()), nil
}

// newLimiters uses shared Redis counters when REDIS_URL is set and per-process memory otherwise.
func newLimiters(ctx context.Context, cfg config.Config, log *zap.Logger) (general, auth limiter.Limiter, closeFn func(), err error) {
	if cfg.RedisURL == "" {
		log.Info("rate limiter: in-memory")
		return limiter.NewMemory(cfg.RateGeneral, cfg.RateWindow),
			limiter.NewMemory(cfg.RateAuth, cfg.RateWindow),
			func() {}, nil
	}
	rdb, err := limiter.Dial(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("rate limiter: redis")
	return limiter.NewRedis(rdb, "nutrilog:rl:general:", cfg.RateGeneral, cfg.RateWindow),
		limiter.NewRedis(rdb, "nutrilog:rl:auth:", cfg.RateAuth, cfg.RateWindow),
		func() { _ = rdb.Close() }, nil
}

// newLockout returns nil when lockouts are disabled so the login handler skips them.
func newLockout(cfg config.Config, db *postgres.DB) httpapi.LoginGuard {
	if cfg.LockoutFails == 0 {
		return nil
	}
	return limiter.NewLockout(db.Pool, cfg.LockoutWindow, cfg.LockoutFails, cfg.LockoutBlock)
}
