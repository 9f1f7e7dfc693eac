package routes

import (
	"contact-system/internal/controllers"
	"contact-system/internal/repositories"
	"contact-system/internal/services"
	"contact-system/pkg/filestorage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAttachmentRouter(
	group *echo.Group,
	dbConn *pgxpool.Pool,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) {
	attachmentRepo := repositories.NewAttachmentRepository(dbConn)

	attachmentService := services.NewAttachmentService(
		attachmentRepo,
		fileStorage,
		logger,
	)

	attachmentController := controllers.NewAttachmentController(
		attachmentService,
		logger,
	)

	group.GET("/attachments", attachmentController.GetAttachmentsBySubmission)
	group.DELETE("/attachments/:id", attachmentController.DeleteAttachment)
}
