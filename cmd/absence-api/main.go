package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campusops/absence-api/api/swagger"
	"github.com/campusops/absence-api/internal/handler"
	"github.com/campusops/absence-api/internal/middleware"
	"github.com/campusops/absence-api/internal/models"
	"github.com/campusops/absence-api/internal/repository"
	"github.com/campusops/absence-api/internal/service"
	"github.com/campusops/absence-api/pkg/cache"
	"github.com/campusops/absence-api/pkg/config"
	"github.com/campusops/absence-api/pkg/database"
	"github.com/campusops/absence-api/pkg/logger"
	corsmiddleware "github.com/campusops/absence-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusops/absence-api/pkg/middleware/requestid"
)

// @title Absence API
// @version 1.0.0
// @description Attendance tracking and substitute resolution for academic groups
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Attendance.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close()
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Attendance.CacheTTL, logr, true)
	}

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	materialRepo := repository.NewCourseMaterialRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, groupRepo, materialRepo, cfg.Accounts.EmailDomain, nil, logr)
	substituteSvc := service.NewSubstitutePoolService(groupRepo, enrollmentRepo, logr)
	attendanceSvc := service.NewAttendanceService(presenceRepo, cacheSvc, service.AttendanceConfig{CacheTTL: cfg.Attendance.CacheTTL}, logr)
	exportSvc := service.NewExportService(nil, nil, logr)
	preferenceSvc := service.NewPreferenceService(preferenceRepo, materialRepo, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	groupHandler := handler.NewGroupHandler(studentSvc, substituteSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, exportSvc)
	preferenceHandler := handler.NewPreferenceHandler(preferenceSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	protected := api.Group("", middleware.JWT(authSvc))
	{
		students := protected.Group("/students")
		{
			students.GET("", studentHandler.List)
			students.GET("/:id", studentHandler.Get)
			students.POST("/by-numbers", studentHandler.GetByNumbers)
			admin := students.Group("", middleware.RequireRoles(models.RoleAdmin))
			{
				admin.POST("", studentHandler.Create)
				admin.PUT("/:id", studentHandler.Update)
				admin.DELETE("/:id", studentHandler.Delete)
			}
		}

		groups := protected.Group("/groups")
		{
			groups.GET("/:id/students", groupHandler.Roster)
			groups.GET("/:id/substitutes", groupHandler.Substitutes)
		}

		materials := protected.Group("/course-materials")
		{
			materials.GET("/:id/students", studentHandler.ListByCourseMaterial)
			materials.GET("/:id/attendance", attendanceHandler.Report)
			materials.GET("/:id/attendance/export", attendanceHandler.Export)
		}

		preferences := protected.Group("/preferences")
		{
			mine := preferences.Group("/me", middleware.RequireRoles(models.RoleProfessor, models.RoleAdmin))
			{
				mine.GET("", preferenceHandler.ListMine)
				mine.PUT("", preferenceHandler.ReplaceMine)
				mine.POST("/:courseMaterialId", preferenceHandler.AddMine)
				mine.DELETE("/:courseMaterialId", preferenceHandler.RemoveMine)
			}
			preferences.GET("/:professorId", middleware.RequireRoles(models.RoleAdmin), preferenceHandler.ListByProfessor)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
