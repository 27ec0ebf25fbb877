package main

import (
	"fmt"
	"log"

	_ "github.com/edupulse/timetable-api/api/swagger"
	"github.com/edupulse/timetable-api/internal/engine"
	"github.com/edupulse/timetable-api/internal/handler"
	"github.com/edupulse/timetable-api/internal/holiday"
	"github.com/edupulse/timetable-api/internal/repository"
	"github.com/edupulse/timetable-api/internal/router"
	"github.com/edupulse/timetable-api/internal/service"
	"github.com/edupulse/timetable-api/pkg/cache"
	"github.com/edupulse/timetable-api/pkg/config"
	"github.com/edupulse/timetable-api/pkg/database"
	"github.com/edupulse/timetable-api/pkg/logger"
)

// @title EduPulse Timetable API
// @version 0.1.0
// @description Class session allocation for academic periods
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, holiday caching disabled", "error", err)
		redisClient = nil
	}

	periodRepo := repository.NewAcademicPeriodRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	disciplineRepo := repository.NewDisciplineRepository(db)
	classScheduleRepo := repository.NewClassScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()

	holidayClient := holiday.New(holiday.Config{
		BaseURL:     cfg.Holidays.BaseURL,
		CountryCode: cfg.Holidays.CountryCode,
		Timeout:     cfg.Holidays.Timeout,
		CacheTTL:    cfg.Holidays.CacheTTL,
	}, cacheRepo, metricsService, logr)

	checker := engine.NewChecker(classScheduleRepo, cfg.Generator.MinimumGapDays)
	matcher := engine.NewRoomMatcher(roomRepo, checker)
	locks := engine.NewPeriodLocks()

	generator := engine.NewGenerator(
		periodRepo,
		disciplineRepo,
		availabilityRepo,
		matcher,
		checker,
		classScheduleRepo,
		holidayClient,
		metricsService,
		logr,
		locks,
	)
	rescheduler := engine.NewRescheduler(
		classScheduleRepo,
		scheduleRepo,
		matcher,
		checker,
		holidayClient,
		logr,
		locks,
	)

	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	catalogService := service.NewCatalogService(periodRepo, roomRepo, timeSlotRepo, scheduleRepo, availabilityRepo, nil, logr)
	classScheduleService := service.NewClassScheduleService(generator, rescheduler, classScheduleRepo, nil, logr)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Catalog:       handler.NewCatalogHandler(catalogService),
		ClassSchedule: handler.NewClassScheduleHandler(classScheduleService),
		Metrics:       handler.NewMetricsHandler(metricsService, db, redisClient),
	}

	r := router.Setup(cfg, logr, handlers, authService, metricsService)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
