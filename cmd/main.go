package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/atelieflow/production-scheduling/internal/config"
	"github.com/atelieflow/production-scheduling/internal/handler"
	"github.com/atelieflow/production-scheduling/internal/health"
	"github.com/atelieflow/production-scheduling/internal/infra/holidayapi"
	"github.com/atelieflow/production-scheduling/internal/infra/repository"
	"github.com/atelieflow/production-scheduling/internal/infra/schedulerecorder"
	"github.com/atelieflow/production-scheduling/internal/observability"
	"github.com/atelieflow/production-scheduling/internal/observability/logging"
	"github.com/atelieflow/production-scheduling/internal/observability/metrics"
	"github.com/atelieflow/production-scheduling/internal/observability/middleware"
	"github.com/atelieflow/production-scheduling/internal/service/backlog"
	"github.com/atelieflow/production-scheduling/internal/service/calendar"
	"github.com/atelieflow/production-scheduling/internal/service/schedule"
	"github.com/atelieflow/production-scheduling/internal/service/triage"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	resultRecorderCfg := schedulerecorder.LoadConfig()
	resultRecorder, err := schedulerecorder.NewRecorder(ctx, resultRecorderCfg)
	if err != nil {
		slog.Error("failed to initialize schedule result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	planRepo := repository.NewPlanRepository(redisClient)
	holidayRepo := repository.NewHolidayRepository(redisClient)

	var holidaySource calendar.Source
	if cfg.HolidayCalendarURL != "" {
		holidaySource = holidayapi.NewClient(cfg.HolidayCalendarURL)
		slog.Info("holiday calendar source configured",
			slog.String("url", cfg.HolidayCalendarURL),
		)
	} else {
		slog.Warn("HOLIDAY_CALENDAR_URL not set, holidays come from stored calendars only")
	}

	calendarProvider := calendar.NewProvider(holidayRepo, holidaySource)

	scheduleService := schedule.NewService(
		planRepo,
		calendarProvider,
		scheduleMetrics,
		resultRecorder,
		cfg.Schedule.CalendarHorizonYears,
	)
	backlogService := backlog.NewService(
		planRepo,
		triage.NewClassifier(),
		scheduleMetrics,
		resultRecorder,
	)

	planHandler := handler.NewPlanHandler(scheduleService)
	backlogHandler := handler.NewBacklogHandler(backlogService)
	calendarHandler := handler.NewCalendarHandler(holidayRepo)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.PUT("/plans/:planID", planHandler.HandleUpsertPlan)
		v1.GET("/plans/:planID", planHandler.HandleGetPlan)
		v1.DELETE("/plans/:planID", planHandler.HandleDeletePlan)
		v1.POST("/plans/:planID/edits", planHandler.HandleApplyEdit)
		v1.GET("/backlog/triage", backlogHandler.HandleTriage)
		v1.PUT("/calendars/:year", calendarHandler.HandleUpsertCalendar)
		v1.GET("/calendars/:year", calendarHandler.HandleGetCalendar)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("calendar_horizon_years", cfg.Schedule.CalendarHorizonYears),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "production-scheduling"
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		LogLevel:      config.ParseLogLevel(os.Getenv("LOG_LEVEL")),
		DefaultModule: logging.Module("production-scheduling"),
		SamplingRate:  1.0,
	})
}
