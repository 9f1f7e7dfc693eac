package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "contact-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	if len(total) > 0 {
		limit, _, page := ParsePaginationParams(ctx.Request().URL.Query())
		totalPages := uint64(0)
		if limit > 0 {
			totalPages = (total[0] + limit - 1) / limit
		}
		pagination := map[string]interface{}{
			"total_count": total[0],
			"page":        page,
			"limit":       limit,
			"total_pages": totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return c.JSON(echoErr.Code, map[string]interface{}{"status": false, "message": fmt.Sprintf("%v", echoErr.Message)})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Ошибка валидации: " + strings.Join(msgs, "; ")})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": invalidInput.Message})
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"status": false, "message": err.Error()})
	}
	if errors.Is(err, apperrors.ErrBadRequest) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}
