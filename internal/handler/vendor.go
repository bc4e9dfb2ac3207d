package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"hr-administration-api/internal/model"
)

// VendorServiceAPI is the slice of the vendor service the handler depends on.
type VendorServiceAPI interface {
	CreateVendor(ctx context.Context, payload model.VendorPayload) (*model.Vendor, error)
	GetVendors(ctx context.Context) ([]model.Vendor, error)
	GetVendorByID(ctx context.Context, id int64) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, id int64, payload model.VendorPayload) (*model.Vendor, error)
	DeleteVendor(ctx context.Context, id int64) error
}

// VendorHandler handles the HTTP requests for vendors.
type VendorHandler struct {
	Service VendorServiceAPI
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewVendorHandler creates a new VendorHandler with dependencies and helpers.
func NewVendorHandler(service VendorServiceAPI, logger *log.Logger) *VendorHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &VendorHandler{
		Service:        service,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(logger),
	}
}

func (h *VendorHandler) vendorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.ErrorHandler.HandleBadRequest(w, "Vendor id must be a positive integer")
		return 0, false
	}
	return id, true
}

// CreateVendorHandler handles POST /api/vendors.
func (h *VendorHandler) CreateVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var payload model.VendorPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	vendor, err := h.Service.CreateVendor(ctx, payload)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "create vendor")
		return
	}

	h.ResponseHelper.SendMessage(w, http.StatusCreated, "Vendor created successfully", vendor)
}

// GetVendorsHandler handles GET /api/vendors.
func (h *VendorHandler) GetVendorsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	vendors, err := h.Service.GetVendors(ctx)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve vendors")
		return
	}

	h.ResponseHelper.SendData(w, http.StatusOK, vendors)
}

// GetVendorHandler handles GET /api/vendors/{id}.
func (h *VendorHandler) GetVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, ok := h.vendorID(w, r)
	if !ok {
		return
	}

	vendor, err := h.Service.GetVendorByID(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve vendor")
		return
	}

	h.ResponseHelper.SendData(w, http.StatusOK, vendor)
}

// UpdateVendorHandler handles PUT /api/vendors/{id}.
func (h *VendorHandler) UpdateVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, ok := h.vendorID(w, r)
	if !ok {
		return
	}

	var payload model.VendorPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	vendor, err := h.Service.UpdateVendor(ctx, id, payload)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "update vendor")
		return
	}

	h.ResponseHelper.SendMessage(w, http.StatusOK, "Vendor updated successfully", vendor)
}

// DeleteVendorHandler handles DELETE /api/vendors/{id}.
func (h *VendorHandler) DeleteVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, ok := h.vendorID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteVendor(ctx, id); err != nil {
		h.ErrorHandler.HandleError(w, err, "delete vendor")
		return
	}

	h.ResponseHelper.SendMessage(w, http.StatusOK, "Vendor deleted successfully", nil)
}
