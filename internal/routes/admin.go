package routes

import (
	"contact-system/internal/controllers"
	"contact-system/internal/repositories"
	"contact-system/internal/services"
	appconfig "contact-system/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAdminRouter(
	group *echo.Group,
	dbConn *pgxpool.Pool,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *appconfig.Config,
) {
	submissionRepo := repositories.NewSubmissionRepository(dbConn)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn)

	adminService := services.NewAdminService(
		submissionRepo,
		attachmentRepo,
		cacheRepo,
		cfg.Admin.ListCacheTTL,
		logger,
	)

	adminController := controllers.NewAdminSubmissionController(adminService, logger)

	group.GET("/submissions", adminController.GetSubmissions)
	group.PUT("/submissions", adminController.UpdateSubmission)
	group.GET("/submissions/export", adminController.ExportSubmissions)
}
