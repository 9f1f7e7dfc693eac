// Файл: internal/controllers/submission.go
package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"contact-system/internal/dto"
	"contact-system/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContactController обслуживает публичную контактную форму.
// Формат ответа здесь - внешний контракт фронтенда, поэтому он
// не заворачивается в стандартный конверт админских ручек.
type ContactController struct {
	submissionService services.SubmissionServiceInterface
	logger            *zap.Logger
	debug             bool
}

func NewContactController(
	submissionService services.SubmissionServiceInterface,
	logger *zap.Logger,
	debug bool,
) *ContactController {
	return &ContactController{
		submissionService: submissionService,
		logger:            logger,
		debug:             debug,
	}
}

// Ingest принимает multipart-запрос контактной формы.
// Валидация полей проходит до любых побочных эффектов; временные файлы
// multipart-формы освобождаются на любом пути выхода.
func (c *ContactController) Ingest(ctx echo.Context) error {
	var payload dto.CreateSubmissionDTO
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]interface{}{
			"message": "Invalid form data.",
		})
	}

	if err := ctx.Validate(&payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			e := validationErrors[0]
			return ctx.JSON(http.StatusBadRequest, map[string]interface{}{
				"message": "Missing or invalid required field: " + e.Field(),
			})
		}
		return ctx.JSON(http.StatusBadRequest, map[string]interface{}{
			"message": "Missing or invalid required fields.",
		})
	}

	var files []*multipart.FileHeader
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		files = form.File["attachments"]
		defer func() {
			if err := form.RemoveAll(); err != nil {
				c.logger.Warn("не удалось удалить временные файлы формы", zap.Error(err))
			}
		}()
	}

	meta := dto.RequestMeta{
		IPAddress: ctx.RealIP(),
		UserAgent: ctx.Request().UserAgent(),
	}

	result, err := c.submissionService.Ingest(ctx.Request().Context(), payload, files, meta)
	if err != nil {
		c.logger.Error("обращение не записано ни в одно из хранилищ", zap.Error(err))

		response := map[string]interface{}{
			"message": "Failed to submit form. Please try again.",
		}
		if c.debug {
			response["error"] = err.Error()
		} else {
			response["error"] = "Internal server error"
		}
		return ctx.JSON(http.StatusInternalServerError, response)
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"message":         "Form submitted successfully!",
		"submissionId":    result.SubmissionID,
		"savedToDatabase": result.SavedToDatabase,
		"emailSent":       result.EmailSent,
		"attachmentCount": result.AttachmentCount,
	})
}
