package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/logger"
	"github.com/taskboard/taskboard-api/internal/query"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/service/serviceutils"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ListHandler handles GET /tasks
func (h *TaskHandler) ListHandler(c echo.Context) error {
	ctx := c.Request().Context()

	q, err := query.Normalize(query.RawParams{
		Page:    c.QueryParam("page"),
		RowSize: c.QueryParam("rowSize"),
		SortBy:  c.QueryParam("sortBy"),
		Search:  c.QueryParam("search"),
	})
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, err.Error(), nil)
	}

	tasks, maxPage, err := h.svc.List(ctx, q)
	if err != nil {
		logger.ErrorLog(ctx, "failed to list tasks: %v", err)
		return respondServiceError(c, err, "failed to list tasks")
	}

	return serviceutils.ResponseList(c, http.StatusOK, maxPage, tasks)
}

// CreateHandler handles POST /tasks
func (h *TaskHandler) CreateHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var in domain.CreateTaskInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}

	id, err := h.svc.Create(ctx, &in)
	if err != nil {
		logger.ErrorLog(ctx, "failed to create task: %v", err)
		return respondServiceError(c, err, "failed to create task")
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "task created",
		echo.Map{"insertedId": id})
}

// CustomFieldsHandler handles GET /tasks/custom-fields
func (h *TaskHandler) CustomFieldsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.svc.CustomFieldOverview(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "failed to read custom fields: %v", err)
		return respondServiceError(c, err, "failed to read custom fields")
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "", overview)
}

// respondServiceError maps the error taxonomy onto the response envelope.
// Nothing propagates past here as an unhandled fault.
func respondServiceError(c echo.Context, err error, fallback string) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return serviceutils.ResponseError(c, http.StatusBadRequest, vErr.Error(), nil)
	}

	var pwErr *domain.PartialWriteError
	if errors.As(err, &pwErr) {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, pwErr.Error(), nil)
	}

	var pErr *domain.PersistenceError
	if errors.As(err, &pErr) {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, pErr.Error(), nil)
	}

	return serviceutils.ResponseError(c, http.StatusInternalServerError, fallback, err)
}
