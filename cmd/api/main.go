package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/sheriffsaka/alibaanah-v1/api/swagger"
	"github.com/sheriffsaka/alibaanah-v1/internal/handler"
	"github.com/sheriffsaka/alibaanah-v1/internal/ledger"
	"github.com/sheriffsaka/alibaanah-v1/internal/middleware"
	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	"github.com/sheriffsaka/alibaanah-v1/internal/repository"
	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	"github.com/sheriffsaka/alibaanah-v1/pkg/cache"
	"github.com/sheriffsaka/alibaanah-v1/pkg/config"
	"github.com/sheriffsaka/alibaanah-v1/pkg/database"
	"github.com/sheriffsaka/alibaanah-v1/pkg/logger"
	corsmiddleware "github.com/sheriffsaka/alibaanah-v1/pkg/middleware/cors"
	reqidmiddleware "github.com/sheriffsaka/alibaanah-v1/pkg/middleware/requestid"
)

// @title Al-Ibaanah Intake API
// @version 1.0.0
// @description Student intake booking ledger: slots, registrations, check-ins
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

	metricsSvc := service.NewMetricsService()

	store, err := newSnapshotStore(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open snapshot store", "error", err)
	}

	seed, err := bootstrapSeed(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to build bootstrap seed", "error", err)
	}

	book, err := ledger.Open(repository.NewInstrumentedSnapshotStore(store, metricsSvc), seed, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open booking ledger", "error", err)
	}

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()

	authSvc := service.NewAuthService(book, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	bookingSvc := service.NewBookingService(book, cacheSvc, metricsSvc, validate, logr)
	slotSvc := service.NewSlotService(book, cacheSvc, validate, logr)
	userSvc := service.NewUserService(book, validate, logr)
	notifySvc := service.NewNotificationService(book, validate, logr)
	dashboardSvc := service.NewDashboardService(book, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(book, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	slotHandler := handler.NewSlotHandler(slotSvc)
	registrationHandler := handler.NewRegistrationHandler(bookingSvc, exportSvc)
	studentHandler := handler.NewStudentHandler(bookingSvc)
	checkInHandler := handler.NewCheckInHandler(bookingSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	userHandler := handler.NewUserHandler(userSvc)
	notificationHandler := handler.NewNotificationHandler(notifySvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Public surface: applicants book seats and fetch slips without accounts.
	api.POST("/auth/login", authHandler.Login)
	api.GET("/slots", slotHandler.List)
	api.GET("/slots/:id", slotHandler.Get)
	api.POST("/registrations", registrationHandler.Register)
	api.GET("/registrations/:code/slip", registrationHandler.Slip)

	staff := api.Group("")
	staff.Use(middleware.JWT(authSvc))

	staff.GET("/students", studentHandler.List)
	staff.GET("/students/search", studentHandler.Search)
	staff.POST("/checkins", checkInHandler.CheckIn)
	staff.GET("/dashboard/stats", dashboardHandler.Stats)
	staff.GET("/exports/students.csv", exportHandler.StudentsCSV)

	admin := staff.Group("")
	admin.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))

	admin.POST("/slots", slotHandler.Create)
	admin.PATCH("/slots/:id", slotHandler.Update)
	admin.DELETE("/slots/:id", slotHandler.Delete)
	admin.GET("/settings", notificationHandler.Settings)
	admin.PATCH("/settings", notificationHandler.UpdateSettings)
	admin.GET("/notifications", notificationHandler.Log)
	admin.POST("/notifications/test", notificationHandler.SendTest)

	super := staff.Group("")
	super.Use(middleware.RequireRoles(models.RoleSuperAdmin))

	super.GET("/users", userHandler.List)
	super.POST("/users", userHandler.Create)
	super.PATCH("/users/:id", userHandler.Update)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Ledger.Store)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newSnapshotStore selects the persistence backend from configuration.
func newSnapshotStore(cfg *config.Config, logr *zap.Logger) (ledger.SnapshotStore, error) {
	switch cfg.Ledger.Store {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresSnapshotStore(db), nil
	case config.StoreMemory:
		logr.Warn("using in-memory snapshot store, state is lost on restart")
		return repository.NewMemorySnapshotStore(), nil
	default:
		return repository.NewFileSnapshotStore(cfg.Ledger.SnapshotPath)
	}
}

// bootstrapSeed builds the initial state used when the store is empty.
func bootstrapSeed(cfg *config.Config, logr *zap.Logger) (ledger.Seed, error) {
	seed := ledger.Seed{
		Config: models.SystemConfig{
			RegistrationOpen: cfg.Registration.Open,
			MaxDailyCapacity: cfg.Registration.MaxDailyCapacity,
			MaxGroupSize:     cfg.Registration.MaxGroupSize,
			Reminders: models.ReminderToggles{
				ConfirmationEmail: cfg.Registration.ConfirmationEmail,
				TwentyFourHour:    cfg.Registration.TwentyFourHour,
				DayOf:             cfg.Registration.DayOf,
			},
		},
	}

	if cfg.Bootstrap.AdminPassword == "" {
		logr.Warn("no bootstrap admin password set, fresh stores start without accounts")
		return seed, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return seed, err
	}
	seed.Admins = []models.AdminUser{{
		ID:           uuid.NewString(),
		Username:     cfg.Bootstrap.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}}
	return seed, nil
}
