// Файл: internal/controllers/admin_submission.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"contact-system/internal/dto"
	"contact-system/internal/services"
	apperrors "contact-system/pkg/errors"
	"contact-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type AdminSubmissionController struct {
	adminService services.AdminServiceInterface
	logger       *zap.Logger
}

func NewAdminSubmissionController(adminService services.AdminServiceInterface, logger *zap.Logger) *AdminSubmissionController {
	return &AdminSubmissionController{adminService: adminService, logger: logger}
}

func (c *AdminSubmissionController) GetSubmissions(ctx echo.Context) error {
	limit, offset, page := utils.ParsePaginationParams(ctx.Request().URL.Query())

	list, total, err := c.adminService.ListSubmissions(ctx.Request().Context(), limit, offset, page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Successfully", http.StatusOK, total)
}

func (c *AdminSubmissionController) UpdateSubmission(ctx echo.Context) error {
	var payload dto.UpdateSubmissionStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "некорректное тело запроса", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.adminService.UpdateSubmissionStatus(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Submission status updated", http.StatusOK)
}

func (c *AdminSubmissionController) ExportSubmissions(ctx echo.Context) error {
	format := strings.ToLower(ctx.QueryParam("format"))
	if format != "" && format != "xlsx" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "неподдерживаемый формат выгрузки", apperrors.ErrBadRequest,
				map[string]interface{}{"format": format}),
			c.logger,
		)
	}

	list, err := c.adminService.ExportSubmissions(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return c.respondWithXLSX(ctx, list)
}

var submissionExportHeaders = []string{
	"ID", "Name", "Email", "Subject", "Reason", "Message", "Status",
	"Attachments", "IP Address", "Created At",
}

func submissionRowToSlice(item dto.SubmissionResponseDTO) []interface{} {
	return []interface{}{
		item.ID, item.Name, item.Email, item.Subject, item.Reason, item.Message,
		item.Status, item.AttachmentsCount, item.IPAddress.String, item.CreatedAt,
	}
}

func (c *AdminSubmissionController) respondWithXLSX(ctx echo.Context, data []dto.SubmissionResponseDTO) error {
	f := excelize.NewFile()
	sheet := "Submissions"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &submissionExportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := submissionRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "E", 25)
	f.SetColWidth(sheet, "F", "F", 50)
	f.SetColWidth(sheet, "I", "J", 22)

	fileName := fmt.Sprintf("submissions_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
