package routes

import (
	"contact-system/internal/controllers"
	"contact-system/internal/repositories"
	"contact-system/internal/services"
	appconfig "contact-system/pkg/config"
	"contact-system/pkg/fallback"
	"contact-system/pkg/filestorage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runSubmissionRouter(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	fileStorage filestorage.FileStorageInterface,
	fallbackStore *fallback.Store,
	cacheRepo repositories.CacheRepositoryInterface,
	notifier services.NotificationServiceInterface,
	logger *zap.Logger,
	cfg *appconfig.Config,
) {
	submissionRepo := repositories.NewSubmissionRepository(dbConn)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn)

	submissionService := services.NewSubmissionService(
		submissionRepo,
		attachmentRepo,
		fileStorage,
		fallbackStore,
		notifier,
		cacheRepo,
		logger,
	)

	contactController := controllers.NewContactController(submissionService, logger, cfg.Server.Debug)

	api.POST("/contact", contactController.Ingest)
}
