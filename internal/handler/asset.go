package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
)

// AssetServiceAPI is the slice of the asset service the handler depends on.
type AssetServiceAPI interface {
	CreateAsset(ctx context.Context, payload model.AssetPayload, actor string) (*model.Asset, error)
	GetAssets(ctx context.Context, params repository.PaginationParams) (*repository.PaginatedAssets, error)
	GetAssetByAssetID(ctx context.Context, assetID string) (*model.Asset, error)
	UpdateAsset(ctx context.Context, assetID string, payload model.AssetPayload, actor string) (*model.Asset, error)
	DeleteAsset(ctx context.Context, assetID string) error
	NextAssetID(ctx context.Context) (string, error)
}

// AssetHandler handles the HTTP requests for assets.
type AssetHandler struct {
	Service AssetServiceAPI
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewAssetHandler creates a new AssetHandler with dependencies and helpers.
func NewAssetHandler(service AssetServiceAPI, logger *log.Logger) *AssetHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &AssetHandler{
		Service:        service,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(logger),
	}
}

// CreateAssetHandler handles POST /api/assets.
func (h *AssetHandler) CreateAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var payload model.AssetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	asset, err := h.Service.CreateAsset(ctx, payload, Actor(r))
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "create asset")
		return
	}

	h.ResponseHelper.SendMessage(w, http.StatusCreated, "Asset created successfully", asset)
}

// GetAssetsHandler handles GET /api/assets with pagination.
func (h *AssetHandler) GetAssetsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	params := h.ResponseHelper.ParsePaginationParams(r)

	result, err := h.Service.GetAssets(ctx, repository.PaginationParams{
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve assets")
		return
	}

	meta := h.ResponseHelper.PaginationMeta(params, result.TotalCount)
	h.ResponseHelper.SendPaginatedData(w, result.Items, meta)
}

// GetAssetHandler handles GET /api/assets/{assetId}.
func (h *AssetHandler) GetAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	assetID := mux.Vars(r)["assetId"]

	asset, err := h.Service.GetAssetByAssetID(ctx, assetID)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve asset")
		return
	}

	h.ResponseHelper.SendData(w, http.StatusOK, asset)
}

// UpdateAssetHandler handles PUT /api/assets/{assetId}.
func (h *AssetHandler) UpdateAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	assetID := mux.Vars(r)["assetId"]

	var payload model.AssetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	asset, err := h.Service.UpdateAsset(ctx, assetID, payload, Actor(r))
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "update asset")
		return
	}

	h.ResponseHelper.SendMessage(w, http.StatusOK, "Asset updated successfully", asset)
}

// DeleteAssetHandler handles DELETE /api/assets/{assetId}.
func (h *AssetHandler) DeleteAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	assetID := mux.Vars(r)["assetId"]

	if err := h.Service.DeleteAsset(ctx, assetID); err != nil {
		h.ErrorHandler.HandleError(w, err, "delete asset")
		return
	}

	h.ResponseHelper.SendMessage(w, http.StatusOK, "Asset deleted successfully", nil)
}

// NextAssetIDHandler handles GET /api/assets/next-id. The id is advisory; two
// concurrent creators can both see it and one will lose on the unique key.
func (h *AssetHandler) NextAssetIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	next, err := h.Service.NextAssetID(ctx)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "derive next asset id")
		return
	}

	h.ResponseHelper.SendData(w, http.StatusOK, map[string]string{"nextId": next})
}
