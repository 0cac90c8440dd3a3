package fiber

import (
	"context"
	"errors"
	"net/http"

	"firehose-dashboard/internal/runs/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StoreRunUseCase interface {
	Execute(ctx context.Context, in usecase.StoreRunInput) error
	BulkStoreRuns(ctx context.Context, in usecase.BulkStoreRunsInput) (usecase.BulkStoreRunsResult, error)
}

type RunHandler struct {
	storeUC StoreRunUseCase
}

func NewRunHandler(storeUC StoreRunUseCase) *RunHandler {
	return &RunHandler{storeUC: storeUC}
}

// CreateRun godoc
// @Summary Record a pipeline run
// @Description Stores the per-field counts of one run in the status table
// @Tags Runs
// @Accept json
// @Produce json
// @Param request body CreateRunRequest true "Run payload"
// @Success 201 {object} CreateRunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /runs [post]
func (h *RunHandler) CreateRun(c *fiber.Ctx) error {
	var req CreateRunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if err := h.storeUC.Execute(c.UserContext(), toInput(req)); err != nil {
		status, body := errorResponse(err)
		return c.Status(status).JSON(body)
	}

	return c.Status(http.StatusCreated).JSON(CreateRunResponse{Status: "stored"})
}

// BulkCreateRuns godoc
// @Summary Record several pipeline runs
// @Description Validates every run first, then stores them in order
// @Tags Runs
// @Accept json
// @Produce json
// @Param request body BulkCreateRunsRequest true "Bulk run payload"
// @Success 201 {object} BulkCreateRunsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /runs/bulk [post]
func (h *RunHandler) BulkCreateRuns(c *fiber.Ctx) error {
	var req BulkCreateRunsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Runs) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "runs_list_required",
		})
	}

	inputs := make([]usecase.StoreRunInput, len(req.Runs))
	for i, r := range req.Runs {
		inputs[i] = toInput(r)
	}

	result, err := h.storeUC.BulkStoreRuns(c.UserContext(), usecase.BulkStoreRunsInput{Runs: inputs})
	if err != nil {
		status, body := errorResponse(err)
		return c.Status(status).JSON(body)
	}

	return c.Status(http.StatusCreated).JSON(BulkCreateRunsResponse{Stored: result.Stored})
}

func toInput(r CreateRunRequest) usecase.StoreRunInput {
	return usecase.StoreRunInput{
		Name:      r.Name,
		Timestamp: r.Timestamp,
		Counts:    r.Counts,
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRun),
		errors.Is(err, usecase.ErrFutureTime),
		errors.Is(err, usecase.ErrUnknownField):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_run",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "internal_server_error",
		}
	}
}
