package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/KamalGanth/quarry-ops/internal/api/handler"
	"github.com/KamalGanth/quarry-ops/internal/api/middleware"
	"github.com/KamalGanth/quarry-ops/internal/core/domain"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
	"github.com/KamalGanth/quarry-ops/internal/core/service"
	mongodb "github.com/KamalGanth/quarry-ops/internal/infrastructure/db/mongo"
	redisdb "github.com/KamalGanth/quarry-ops/internal/infrastructure/db/redis"
	"github.com/KamalGanth/quarry-ops/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, jwtSecret string, sheets ports.SheetWriter) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quarry_http"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	recordRepo := mongodb.NewRecordRepository(client, db)
	dedup := redisdb.NewDedupChecker(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour, log)
	recordService := service.NewRecordService(recordRepo, dedup, log)
	adminService := service.NewAdminService(userRepo, recordRepo, log)
	exportService := service.NewExportService(recordService, sheets, log)

	authHandler := handler.NewAuthHandler(authService)
	recordHandler := handler.NewRecordHandler(recordService)
	exportHandler := handler.NewExportHandler(exportService)
	adminHandler := handler.NewAdminHandler(authService, adminService)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret))

	v1.POST("/records/production", recordHandler.CreateProduction)
	v1.POST("/records/equipment", recordHandler.CreateEquipment)
	v1.PUT("/records/equipment/:equipment_id", recordHandler.UpsertEquipment)
	v1.POST("/records/inventory", recordHandler.CreateInventory)
	v1.POST("/records/workers", recordHandler.CreateWorker)
	v1.POST("/records/environment", recordHandler.CreateEnvironment)

	v1.GET("/records/:table", recordHandler.List)
	v1.GET("/records/:table/export", exportHandler.Export)
	v1.GET("/dashboard", recordHandler.Dashboard)

	// --- Admin surface ---
	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.DELETE("/records", adminHandler.ClearRecords)

	return e
}
