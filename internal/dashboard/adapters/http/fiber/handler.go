package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"firehose-dashboard/internal/dashboard/adapters/excel"
	"firehose-dashboard/internal/dashboard/adapters/html"
	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errInvalidPeriodParam = errors.New("period must be a positive integer")

type BuildDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error)
}

type DashboardHandler struct {
	uc     BuildDashboardUseCase
	logger *zap.Logger
}

func NewDashboardHandler(uc BuildDashboardUseCase, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{uc: uc, logger: logger}
}

// GetDashboard godoc
// @Summary Dashboard data
// @Description Returns run count, averages, record-level series and the daily grid for the trailing window
// @Tags Dashboard
// @Produce json
// @Param period query int false "Window length in days"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.build(c)
	if err != nil {
		status, body := h.errorResponse(err)
		return c.Status(status).JSON(body)
	}
	return c.Status(http.StatusOK).JSON(toDashboardResponse(d))
}

// GetPage godoc
// @Summary Dashboard page
// @Description Renders the dashboard as HTML
// @Tags Dashboard
// @Produce html
// @Param period query int false "Window length in days"
// @Success 200 {string} string
// @Failure 400 {string} string
// @Failure 503 {string} string
// @Router / [get]
func (h *DashboardHandler) GetPage(c *fiber.Ctx) error {
	d, err := h.build(c)
	if err != nil {
		status, body := h.errorResponse(err)
		msg := body.Message
		if msg == "" {
			msg = "The dashboard could not be rendered."
		}
		page, rerr := html.RenderError(msg)
		if rerr != nil {
			return c.Status(http.StatusInternalServerError).SendString("internal server error")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(status).Send(page)
	}

	page, err := html.RenderDashboard(d)
	if err != nil {
		h.logger.Error("failed to render dashboard page", zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString("internal server error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).Send(page)
}

// ExportDaily godoc
// @Summary Daily grid export
// @Description Returns the daily grid with color fills as an xlsx workbook
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param period query int false "Window length in days"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/dashboard/daily.xlsx [get]
func (h *DashboardHandler) ExportDaily(c *fiber.Ctx) error {
	d, err := h.build(c)
	if err != nil {
		status, body := h.errorResponse(err)
		return c.Status(status).JSON(body)
	}

	data, err := excel.GenerateDailyGrid(d)
	if err != nil {
		h.logger.Error("failed to generate daily grid workbook", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	filename := fmt.Sprintf("firehose-daily-%s-to-%s.xlsx",
		d.Window.Start.Format(domain.DayLayout),
		d.Window.End.Format(domain.DayLayout),
	)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(http.StatusOK).Send(data)
}

func (h *DashboardHandler) build(c *fiber.Ctx) (*domain.Dashboard, error) {
	period, err := parsePeriod(c.Query("period", ""))
	if err != nil {
		return nil, err
	}
	return h.uc.Execute(c.UserContext(), usecase.BuildDashboardInput{Period: period})
}

// parsePeriod returns 0 (use the configured default) when raw is empty.
func parsePeriod(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errInvalidPeriodParam
	}
	return n, nil
}

func (h *DashboardHandler) errorResponse(err error) (int, ErrorResponse) {
	var dsErr *usecase.DataSourceError

	switch {
	case errors.Is(err, errInvalidPeriodParam),
		errors.Is(err, usecase.ErrInvalidPeriod):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_period",
			Message: err.Error(),
		}
	case errors.As(err, &dsErr):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error:   "data_source_unavailable",
			Message: "The status database could not be queried. Try again later.",
		}
	default:
		h.logger.Error("dashboard request failed", zap.Error(err))
		return http.StatusInternalServerError, ErrorResponse{
			Error: "internal_server_error",
		}
	}
}
