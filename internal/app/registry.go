package app

import (
	"database/sql"

	"go-shinsei/internal/auth"
	"go-shinsei/internal/directory"
	"go-shinsei/internal/messaging/kafka"
	"go-shinsei/internal/rbac"
	"go-shinsei/internal/rbac/infra"
	"go-shinsei/internal/report"
	"go-shinsei/internal/request"
	"go-shinsei/internal/routing"
	"go-shinsei/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	directoryRepo := directory.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	directoryService := directory.NewService(directoryRepo)
	settingsService := settings.NewService(settingsRepo)
	routeResolver := routing.NewResolver(settingsService)
	authService := auth.NewService(directoryService)
	requestService := request.NewService(db, requestRepo, outboxRepo, directoryService, routeResolver, settingsService)
	reportService := report.NewService(reportRepo, directoryService, settingsService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	settingsHandler := settings.NewHandler(settingsService, directoryService)
	requestHandler := request.NewHandlerWithCache(requestService, report.NewCacheInvalidator(rdb))
	reportHandler := report.NewHandlerWithRedis(reportService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		settings.RegisterRoutes(api, settingsHandler, rbacService)
		request.RegisterRoutes(api, requestHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
	}

	return nil
}
