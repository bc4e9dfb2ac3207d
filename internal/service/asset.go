package service

import (
	"context"
	"fmt"
	"log"

	"hr-administration-api/internal/allocation"
	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
	"hr-administration-api/pkg/errors"
	"hr-administration-api/pkg/validation"
)

// AssetService handles business logic for asset operations.
type AssetService struct {
	repo     repository.AssetRepository
	activity repository.ActivityRepository
	logger   *log.Logger
}

// NewAssetService creates a new asset service.
func NewAssetService(repo repository.AssetRepository, activity repository.ActivityRepository, logger *log.Logger) *AssetService {
	if logger == nil {
		logger = log.Default()
	}
	return &AssetService{
		repo:     repo,
		activity: activity,
		logger:   logger,
	}
}

// CreateAsset validates the payload, assigns the next business key if none
// was supplied, and persists the asset.
func (s *AssetService) CreateAsset(ctx context.Context, payload model.AssetPayload, actor string) (*model.Asset, error) {
	if fields := validation.ValidateAssetPayload(&payload); len(fields) > 0 {
		return nil, errors.ValidationFieldsError(fields)
	}

	asset, err := assetFromPayload(payload)
	if err != nil {
		return nil, err
	}

	if asset.AssetID == "" {
		next, err := s.repo.NextAssetID(ctx)
		if err != nil {
			return nil, errors.DatabaseError("failed to derive next asset id", err)
		}
		asset.AssetID = next
	}

	exists, err := s.repo.SerialExists(ctx, asset.SerialNumber)
	if err != nil {
		return nil, errors.DatabaseError("failed to check serial number uniqueness", err)
	}
	if exists {
		return nil, errors.AlreadyExistsError("asset with this serial number")
	}

	if err := s.repo.CreateAsset(ctx, asset); err != nil {
		if err == repository.ErrDuplicateSerial || err == repository.ErrDuplicateAssetID {
			return nil, errors.AlreadyExistsError("asset")
		}
		return nil, errors.DatabaseError("failed to create asset", err)
	}

	created, err := s.repo.GetAssetByAssetID(ctx, asset.AssetID)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve created asset", err)
	}

	s.recordAssetActivity(ctx, model.ActionAssetCreated,
		fmt.Sprintf("Asset %s (%s) created", created.AssetID, created.Name), *created, actor)
	if created.Status == model.StatusAllocated {
		s.recordAssetActivity(ctx, model.ActionAssetAllocated,
			fmt.Sprintf("Asset %s allocated on creation", created.AssetID), *created, actor)
	}

	s.logger.Printf("Asset created: asset_id=%s serial=%s status=%s",
		created.AssetID, created.SerialNumber, created.Status)

	return created, nil
}

// GetAssets retrieves assets with pagination.
func (s *AssetService) GetAssets(ctx context.Context, params repository.PaginationParams) (*repository.PaginatedAssets, error) {
	result, err := s.repo.GetAssetsPaginated(ctx, params)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve assets", err)
	}

	s.logger.Printf("Retrieved %d assets (offset %d, limit %d)",
		len(result.Items), params.Offset, params.Limit)

	return result, nil
}

// GetAssetByAssetID retrieves a single asset by its business key.
func (s *AssetService) GetAssetByAssetID(ctx context.Context, assetID string) (*model.Asset, error) {
	asset, err := s.repo.GetAssetByAssetID(ctx, assetID)
	if err != nil {
		if err == repository.ErrAssetNotFound {
			return nil, errors.NotFoundError("asset")
		}
		return nil, errors.DatabaseError("failed to retrieve asset", err)
	}
	return asset, nil
}

// UpdateAsset validates and applies a full replacement of the asset's mutable
// fields. An allocation change is recorded as an allocated or returned event
// on top of the plain update event.
func (s *AssetService) UpdateAsset(ctx context.Context, assetID string, payload model.AssetPayload, actor string) (*model.Asset, error) {
	existing, err := s.repo.GetAssetByAssetID(ctx, assetID)
	if err != nil {
		if err == repository.ErrAssetNotFound {
			return nil, errors.NotFoundError("asset")
		}
		return nil, errors.DatabaseError("failed to retrieve asset for update", err)
	}

	if fields := validation.ValidateAssetPayload(&payload); len(fields) > 0 {
		return nil, errors.ValidationFieldsError(fields)
	}

	asset, err := assetFromPayload(payload)
	if err != nil {
		return nil, err
	}
	// The business key and serial number never change through this path.
	asset.AssetID = existing.AssetID
	asset.SerialNumber = existing.SerialNumber

	if err := s.repo.UpdateAsset(ctx, assetID, asset); err != nil {
		if err == repository.ErrAssetNotFound {
			return nil, errors.NotFoundError("asset")
		}
		return nil, errors.DatabaseError("failed to update asset", err)
	}

	updated, err := s.repo.GetAssetByAssetID(ctx, assetID)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve updated asset", err)
	}

	s.recordAssetActivity(ctx, model.ActionAssetUpdated,
		fmt.Sprintf("Asset %s updated", updated.AssetID), *updated, actor)
	switch {
	case existing.Status != model.StatusAllocated && updated.Status == model.StatusAllocated:
		s.recordAssetActivity(ctx, model.ActionAssetAllocated,
			fmt.Sprintf("Asset %s allocated", updated.AssetID), *updated, actor)
	case existing.Status == model.StatusAllocated && updated.Status != model.StatusAllocated:
		returned := *updated
		// The allocation fields were just cleared; attribute the return to the
		// employee who held the asset.
		returned.AllocatedTo = existing.AllocatedTo
		s.recordAssetActivity(ctx, model.ActionAssetReturned,
			fmt.Sprintf("Asset %s returned", updated.AssetID), returned, actor)
	}

	s.logger.Printf("Asset updated: asset_id=%s status=%s", updated.AssetID, updated.Status)

	return updated, nil
}

// DeleteAsset deletes an asset by its business key.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	if err := s.repo.DeleteAsset(ctx, assetID); err != nil {
		if err == repository.ErrAssetNotFound {
			return errors.NotFoundError("asset")
		}
		return errors.DatabaseError("failed to delete asset", err)
	}

	s.logger.Printf("Asset deleted: asset_id=%s", assetID)

	return nil
}

// NextAssetID returns the next free business key for the create form.
func (s *AssetService) NextAssetID(ctx context.Context) (string, error) {
	next, err := s.repo.NextAssetID(ctx)
	if err != nil {
		return "", errors.DatabaseError("failed to derive next asset id", err)
	}
	return next, nil
}

// recordAssetActivity appends an activity log entry. Failures are logged and
// swallowed; the asset write already succeeded and must not be rolled back by
// a logging problem.
func (s *AssetService) recordAssetActivity(ctx context.Context, actionType, description string, asset model.Asset, actor string) {
	entry := model.ActivityLog{
		EmployeeID:        asset.AllocatedTo,
		ActionType:        actionType,
		ActionDescription: description,
		AssetID:           asset.AssetID,
		PerformedBy:       actor,
	}
	if err := s.activity.RecordActivity(ctx, entry); err != nil {
		s.logger.Printf("Failed to record %s activity for asset %s: %v", actionType, asset.AssetID, err)
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// assetFromPayload maps the write contract onto a storable record, deriving
// the allocation discriminator from the two nullable allocation fields.
func assetFromPayload(p model.AssetPayload) (model.Asset, error) {
	kind, err := allocation.TargetFromRecord(deref(p.AllocatedTo), deref(p.AllocatedToOffice))
	if err != nil {
		return model.Asset{}, errors.ValidationError("allocated_to and allocated_to_office are mutually exclusive")
	}

	return model.Asset{
		AssetID:           p.AssetID,
		SerialNumber:      p.SerialNumber,
		Name:              p.Name,
		Type:              p.Type,
		Brand:             p.Brand,
		Model:             p.Model,
		Status:            p.Status,
		AllocationKind:    string(kind),
		AllocatedTo:       deref(p.AllocatedTo),
		AllocatedToOffice: deref(p.AllocatedToOffice),
		Location:          deref(p.Location),
		Vendor:            p.Vendor,
		VendorEmail:       p.VendorEmail,
		VendorContact:     p.VendorContact,
		WarrantyExpiry:    deref(p.WarrantyExpiry),
		Reason:            deref(p.Reason),
	}, nil
}
