package controllers

import (
	"net/http"
	"strconv"

	"contact-system/internal/services"
	"contact-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewAttachmentController(
	attachmentService services.AttachmentServiceInterface,
	logger *zap.Logger,
) *AttachmentController {
	return &AttachmentController{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

func (c *AttachmentController) GetAttachmentsBySubmission(ctx echo.Context) error {
	submissionID := ctx.QueryParam("submission_id")
	if _, err := uuid.Parse(submissionID); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный или отсутствующий 'submission_id'"), c.logger)
	}

	res, err := c.attachmentService.GetAttachmentsBySubmissionID(ctx.Request().Context(), submissionID)
	if err != nil {
		c.logger.Error("ошибка при получении вложений", zap.Error(err), zap.String("submissionID", submissionID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

func (c *AttachmentController) DeleteAttachment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		c.logger.Error("неверный ID вложения", zap.Error(err))
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "неверный ID вложения"), c.logger)
	}

	if err := c.attachmentService.DeleteAttachment(ctx.Request().Context(), id); err != nil {
		c.logger.Error("ошибка при удалении вложения", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Attachment successfully deleted", http.StatusOK)
}
