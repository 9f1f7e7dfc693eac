package routes

import (
	"contact-system/internal/repositories"
	"contact-system/internal/services"
	appconfig "contact-system/pkg/config"
	"contact-system/pkg/fallback"
	"contact-system/pkg/filestorage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InitRouter собирает зависимости и регистрирует все роуты сервиса.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	fileStorage filestorage.FileStorageInterface,
	fallbackStore *fallback.Store,
	cacheRepo repositories.CacheRepositoryInterface,
	notifier services.NotificationServiceInterface,
	logger *zap.Logger,
	cfg *appconfig.Config,
) {
	api := e.Group("/api")

	runSubmissionRouter(api, dbConn, fileStorage, fallbackStore, cacheRepo, notifier, logger, cfg)

	admin := api.Group("/admin")
	runAdminRouter(admin, dbConn, cacheRepo, logger, cfg)
	runAttachmentRouter(admin, dbConn, fileStorage, logger)
}
