package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hr-administration-api/internal/model"
)

// VendorRepository is an interface for interacting with vendor data.
type VendorRepository interface {
	CreateVendor(ctx context.Context, vendor model.Vendor) (int64, error)
	GetVendors(ctx context.Context) ([]model.Vendor, error)
	GetVendorByID(ctx context.Context, id int64) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, id int64, vendor model.Vendor) error
	DeleteVendor(ctx context.Context, id int64) error
}

type vendorRepository struct {
	DB *sql.DB
}

// NewVendorRepository creates a new VendorRepository.
func NewVendorRepository(db *sql.DB) VendorRepository {
	return &vendorRepository{DB: db}
}

func (r *vendorRepository) CreateVendor(ctx context.Context, vendor model.Vendor) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO vendors (name, contact_person, email, phone, address)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id`

	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		vendor.Name, vendor.ContactPerson, vendor.Email, vendor.Phone, vendor.Address,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create vendor: %w", err)
	}

	return id, nil
}

// GetVendors returns every vendor ordered by name. The vendor directory is
// small enough that the list is not paginated.
func (r *vendorRepository) GetVendors(ctx context.Context) ([]model.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `
		SELECT id, name, contact_person, email, COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM vendors
		ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []model.Vendor
	for rows.Next() {
		var v model.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Email, &v.Phone, &v.Address, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return vendors, nil
}

func (r *vendorRepository) GetVendorByID(ctx context.Context, id int64) (*model.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, name, contact_person, email, COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM vendors
		WHERE id = $1`

	var v model.Vendor
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.ContactPerson, &v.Email, &v.Phone, &v.Address, &v.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return &v, nil
}

func (r *vendorRepository) UpdateVendor(ctx context.Context, id int64, vendor model.Vendor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE vendors
		SET name = $1, contact_person = $2, email = $3,
			phone = NULLIF($4, ''), address = NULLIF($5, '')
		WHERE id = $6`

	result, err := r.DB.ExecContext(ctx, query,
		vendor.Name, vendor.ContactPerson, vendor.Email, vendor.Phone, vendor.Address, id)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrVendorNotFound
	}

	return nil
}

func (r *vendorRepository) DeleteVendor(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrVendorNotFound
	}

	return nil
}
