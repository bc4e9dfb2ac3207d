package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hr-administration-api/internal/model"
)

// Custom errors for better error handling
var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrDuplicateSerial   = errors.New("asset with this serial number already exists")
	ErrDuplicateAssetID  = errors.New("asset with this asset id already exists")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNothingToUpdate   = errors.New("update carries no fields")
	ErrDepartmentUnknown = errors.New("department not found")
)

// PaginationParams holds pagination parameters for repository queries
type PaginationParams struct {
	Offset int
	Limit  int
}

// PaginatedAssets holds one page of assets plus the total row count.
type PaginatedAssets struct {
	Items      []model.Asset
	TotalCount int
}

// AssetRepository is an interface for interacting with asset data.
type AssetRepository interface {
	CreateAsset(ctx context.Context, asset model.Asset) error
	GetAssetsPaginated(ctx context.Context, params PaginationParams) (*PaginatedAssets, error)
	GetAssetByAssetID(ctx context.Context, assetID string) (*model.Asset, error)
	UpdateAsset(ctx context.Context, assetID string, asset model.Asset) error
	DeleteAsset(ctx context.Context, assetID string) error
	NextAssetID(ctx context.Context) (string, error)
	SerialExists(ctx context.Context, serialNumber string) (bool, error)
}

type assetRepository struct {
	DB *sql.DB
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db *sql.DB) AssetRepository {
	return &assetRepository{DB: db}
}

const assetColumns = `id, asset_id, serial_number, name, type, brand, model, status,
	COALESCE(allocation_kind, ''), COALESCE(allocated_to, ''), COALESCE(allocated_to_office, ''),
	COALESCE(location, ''), vendor, COALESCE(vendor_email, ''), COALESCE(vendor_contact, ''),
	COALESCE(warranty_expiry, ''), COALESCE(reason, ''), created_at, updated_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (model.Asset, error) {
	var a model.Asset
	err := row.Scan(&a.ID, &a.AssetID, &a.SerialNumber, &a.Name, &a.Type, &a.Brand, &a.Model,
		&a.Status, &a.AllocationKind, &a.AllocatedTo, &a.AllocatedToOffice, &a.Location,
		&a.Vendor, &a.VendorEmail, &a.VendorContact, &a.WarrantyExpiry, &a.Reason,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateAsset adds a new asset to the database. Empty optional fields are
// stored as NULL, matching the cleared-field semantics of the write contract.
func (r *assetRepository) CreateAsset(ctx context.Context, asset model.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO assets (asset_id, serial_number, name, type, brand, model, status,
			allocation_kind, allocated_to, allocated_to_office, location,
			vendor, vendor_email, vendor_contact, warranty_expiry, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			$12, NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''), NULLIF($16, ''))`

	_, err := r.DB.ExecContext(ctx, query,
		asset.AssetID, asset.SerialNumber, asset.Name, asset.Type, asset.Brand, asset.Model,
		asset.Status, asset.AllocationKind, asset.AllocatedTo, asset.AllocatedToOffice,
		asset.Location, asset.Vendor, asset.VendorEmail, asset.VendorContact,
		asset.WarrantyExpiry, asset.Reason,
	)

	if err != nil {
		// PostgreSQL unique violation (23505)
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			if strings.Contains(err.Error(), "assets_serial_number_key") {
				return fmt.Errorf("%w: %s", ErrDuplicateSerial, asset.SerialNumber)
			}
			if strings.Contains(err.Error(), "assets_asset_id_key") {
				return fmt.Errorf("%w: %s", ErrDuplicateAssetID, asset.AssetID)
			}
		}
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// GetAssetsPaginated retrieves one page of assets plus the total count.
func (r *assetRepository) GetAssetsPaginated(ctx context.Context, params PaginationParams) (*PaginatedAssets, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT ` + assetColumns + `
		FROM assets
		ORDER BY asset_id
		OFFSET $1 LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	var totalCount int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count of assets: %w", err)
	}

	return &PaginatedAssets{Items: assets, TotalCount: totalCount}, nil
}

// GetAssetByAssetID retrieves a single asset by its business key.
func (r *assetRepository) GetAssetByAssetID(ctx context.Context, assetID string) (*model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1`

	a, err := scanAsset(r.DB.QueryRowContext(ctx, query, assetID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by asset id: %w", err)
	}
	return &a, nil
}

// UpdateAsset replaces an asset's mutable fields; the serial number and
// business key stay fixed.
func (r *assetRepository) UpdateAsset(ctx context.Context, assetID string, asset model.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE assets
		SET name = $1, type = $2, brand = $3, model = $4, status = $5,
			allocation_kind = NULLIF($6, ''), allocated_to = NULLIF($7, ''),
			allocated_to_office = NULLIF($8, ''), location = NULLIF($9, ''),
			vendor = $10, vendor_email = NULLIF($11, ''), vendor_contact = NULLIF($12, ''),
			warranty_expiry = NULLIF($13, ''), reason = NULLIF($14, ''),
			updated_at = CURRENT_TIMESTAMP
		WHERE asset_id = $15`

	result, err := r.DB.ExecContext(ctx, query,
		asset.Name, asset.Type, asset.Brand, asset.Model, asset.Status,
		asset.AllocationKind, asset.AllocatedTo, asset.AllocatedToOffice, asset.Location,
		asset.Vendor, asset.VendorEmail, asset.VendorContact, asset.WarrantyExpiry,
		asset.Reason, assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAssetNotFound
	}

	return nil
}

// DeleteAsset deletes an asset by its business key.
func (r *assetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE asset_id = $1`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAssetNotFound
	}

	return nil
}

// NextAssetID derives the next free AID<digits> business key.
func (r *assetRepository) NextAssetID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT COALESCE(MAX(CAST(SUBSTRING(asset_id FROM 4) AS INTEGER)), 0) FROM assets`

	var max int
	if err := r.DB.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return "", fmt.Errorf("failed to derive next asset id: %w", err)
	}

	return fmt.Sprintf("AID%04d", max+1), nil
}

// SerialExists checks if an asset with the given serial number already exists.
func (r *assetRepository) SerialExists(ctx context.Context, serialNumber string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM assets WHERE serial_number = $1)`, serialNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check serial existence: %w", err)
	}

	return exists, nil
}
