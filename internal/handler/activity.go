package handler

import (
	"context"
	"log"
	"net/http"

	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
)

// ActivityServiceAPI is the slice of the activity service the handler depends on.
type ActivityServiceAPI interface {
	GetGroupedActivityLogs(ctx context.Context, filter model.ActivityFilter, params repository.PaginationParams) ([]model.GroupedActivityLog, int, error)
}

// ActivityHandler handles the HTTP requests for the activity log viewers.
type ActivityHandler struct {
	Service ActivityServiceAPI
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewActivityHandler creates a new ActivityHandler with dependencies and helpers.
func NewActivityHandler(service ActivityServiceAPI, logger *log.Logger) *ActivityHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ActivityHandler{
		Service:        service,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(logger),
	}
}

// GetActivityLogsHandler handles GET /api/hr/activity-logs. The result is
// grouped per employee; activity_type selects the asset or ticket view.
func (h *ActivityHandler) GetActivityLogsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	query := r.URL.Query()
	// Employee grouping is the only shape served; the parameter exists so the
	// contract can grow other groupings later.
	if groupBy := query.Get("group_by"); groupBy != "" && groupBy != "employee" {
		h.ErrorHandler.HandleBadRequest(w, "group_by must be employee")
		return
	}
	activityType := query.Get("activity_type")
	if activityType != "" && activityType != "asset" && activityType != "ticket" {
		h.ErrorHandler.HandleBadRequest(w, "activity_type must be asset or ticket")
		return
	}

	filter := model.ActivityFilter{
		ActivityType: activityType,
		EmployeeName: query.Get("employee_name"),
		EmployeeID:   query.Get("employee_id"),
		StartDate:    query.Get("start_date"),
		EndDate:      query.Get("end_date"),
	}
	params := h.ResponseHelper.ParsePaginationParams(r)

	groups, total, err := h.Service.GetGroupedActivityLogs(ctx, filter, repository.PaginationParams{
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve activity logs")
		return
	}

	meta := h.ResponseHelper.PaginationMeta(params, total)
	h.ResponseHelper.SendPaginatedData(w, groups, meta)
}
