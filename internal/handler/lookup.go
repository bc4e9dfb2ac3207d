package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"hr-administration-api/internal/model"
)

// LookupServiceAPI is the slice of the lookup service the handler depends on.
type LookupServiceAPI interface {
	GetDepartments(ctx context.Context) ([]model.Department, error)
	GetEmployeesByGroup(ctx context.Context, grpID int) ([]model.Employee, error)
}

// LookupHandler serves the reference datasets behind the allocation form.
type LookupHandler struct {
	Service LookupServiceAPI
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewLookupHandler creates a new LookupHandler with dependencies and helpers.
func NewLookupHandler(service LookupServiceAPI, logger *log.Logger) *LookupHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &LookupHandler{
		Service:        service,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(logger),
	}
}

// GetDepartmentsHandler handles GET /api/departments.
func (h *LookupHandler) GetDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	departments, err := h.Service.GetDepartments(ctx)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve departments")
		return
	}

	h.ResponseHelper.SendData(w, http.StatusOK, departments)
}

// GetEmployeesByGroupHandler handles GET /api/employees/by-group?grp_id=N.
func (h *LookupHandler) GetEmployeesByGroupHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	grpID, err := strconv.Atoi(r.URL.Query().Get("grp_id"))
	if err != nil {
		h.ErrorHandler.HandleBadRequest(w, "grp_id must be an integer")
		return
	}

	employees, err := h.Service.GetEmployeesByGroup(ctx, grpID)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve employees")
		return
	}

	h.ResponseHelper.SendData(w, http.StatusOK, employees)
}
