package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/edupulse/timetable-api/internal/handler"
	"github.com/edupulse/timetable-api/internal/middleware"
	"github.com/edupulse/timetable-api/internal/models"
	"github.com/edupulse/timetable-api/internal/service"
	"github.com/edupulse/timetable-api/pkg/config"
	"github.com/edupulse/timetable-api/pkg/logger"
	corsmiddleware "github.com/edupulse/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edupulse/timetable-api/pkg/middleware/requestid"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Catalog       *handler.CatalogHandler
	ClassSchedule *handler.ClassScheduleHandler
	Metrics       *handler.MetricsHandler
}

// Setup builds the gin engine with the full middleware chain and all routes.
func Setup(cfg *config.Config, logr *zap.Logger, handlers Handlers, authService *service.AuthService, metricsService *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", handlers.Metrics.Health)
	r.GET("/ready", handlers.Metrics.Ready)
	r.GET("/metrics", handlers.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", handlers.Auth.Login)

	authorized := api.Group("")
	authorized.Use(middleware.JWT(authService))
	{
		authorized.GET("/auth/me", handlers.Auth.Me)

		staff := middleware.RBAC(models.RoleAdmin, models.RoleCoordinator)
		admin := middleware.RBAC(models.RoleAdmin)

		periods := authorized.Group("/academic-periods")
		{
			periods.GET("", handlers.Catalog.ListAcademicPeriods)
			periods.GET("/:id", handlers.Catalog.GetAcademicPeriod)
			periods.POST("", staff, handlers.Catalog.CreateAcademicPeriod)
		}

		rooms := authorized.Group("/rooms")
		{
			rooms.GET("", handlers.Catalog.ListRooms)
			rooms.POST("", staff, handlers.Catalog.CreateRoom)
		}

		timeSlots := authorized.Group("/time-slots")
		{
			timeSlots.GET("", handlers.Catalog.ListTimeSlots)
			timeSlots.POST("", staff, handlers.Catalog.CreateTimeSlot)
		}

		schedules := authorized.Group("/schedules")
		{
			schedules.GET("", handlers.Catalog.ListSchedules)
			schedules.POST("", staff, handlers.Catalog.CreateSchedule)
		}

		availabilities := authorized.Group("/teacher-availability")
		{
			availabilities.GET("", handlers.Catalog.ListAvailabilities)
			availabilities.POST("", staff, handlers.Catalog.CreateAvailability)
			availabilities.POST("/:id/exceptions", staff, handlers.Catalog.CreateException)
		}

		classSchedules := authorized.Group("/class-schedules")
		{
			classSchedules.GET("", handlers.ClassSchedule.List)
			classSchedules.POST("/generate", admin, handlers.ClassSchedule.Generate)
			classSchedules.PUT("/:id", admin, handlers.ClassSchedule.Reschedule)
			classSchedules.DELETE("/:id", admin, handlers.ClassSchedule.Delete)
		}
	}

	return r
}
