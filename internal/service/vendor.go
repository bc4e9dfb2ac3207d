package service

import (
	"context"
	"log"

	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
	"hr-administration-api/pkg/errors"
	"hr-administration-api/pkg/validation"
)

// VendorService handles business logic for vendor operations.
type VendorService struct {
	repo   repository.VendorRepository
	logger *log.Logger
}

// NewVendorService creates a new vendor service.
func NewVendorService(repo repository.VendorRepository, logger *log.Logger) *VendorService {
	if logger == nil {
		logger = log.Default()
	}
	return &VendorService{repo: repo, logger: logger}
}

// CreateVendor validates and persists a new vendor.
func (s *VendorService) CreateVendor(ctx context.Context, payload model.VendorPayload) (*model.Vendor, error) {
	if fields := validation.ValidateVendorPayload(&payload); len(fields) > 0 {
		return nil, errors.ValidationFieldsError(fields)
	}

	vendor := vendorFromPayload(payload)
	id, err := s.repo.CreateVendor(ctx, vendor)
	if err != nil {
		return nil, errors.DatabaseError("failed to create vendor", err)
	}

	created, err := s.repo.GetVendorByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve created vendor", err)
	}

	s.logger.Printf("Vendor created: id=%d name=%s", created.ID, created.Name)

	return created, nil
}

// GetVendors returns all vendors.
func (s *VendorService) GetVendors(ctx context.Context) ([]model.Vendor, error) {
	vendors, err := s.repo.GetVendors(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve vendors", err)
	}
	return vendors, nil
}

// GetVendorByID returns one vendor.
func (s *VendorService) GetVendorByID(ctx context.Context, id int64) (*model.Vendor, error) {
	vendor, err := s.repo.GetVendorByID(ctx, id)
	if err != nil {
		if err == repository.ErrVendorNotFound {
			return nil, errors.NotFoundError("vendor")
		}
		return nil, errors.DatabaseError("failed to retrieve vendor", err)
	}
	return vendor, nil
}

// UpdateVendor validates and applies a full replacement of the vendor.
func (s *VendorService) UpdateVendor(ctx context.Context, id int64, payload model.VendorPayload) (*model.Vendor, error) {
	if fields := validation.ValidateVendorPayload(&payload); len(fields) > 0 {
		return nil, errors.ValidationFieldsError(fields)
	}

	if err := s.repo.UpdateVendor(ctx, id, vendorFromPayload(payload)); err != nil {
		if err == repository.ErrVendorNotFound {
			return nil, errors.NotFoundError("vendor")
		}
		return nil, errors.DatabaseError("failed to update vendor", err)
	}

	updated, err := s.repo.GetVendorByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve updated vendor", err)
	}

	s.logger.Printf("Vendor updated: id=%d", id)

	return updated, nil
}

// DeleteVendor deletes a vendor.
func (s *VendorService) DeleteVendor(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVendor(ctx, id); err != nil {
		if err == repository.ErrVendorNotFound {
			return errors.NotFoundError("vendor")
		}
		return errors.DatabaseError("failed to delete vendor", err)
	}

	s.logger.Printf("Vendor deleted: id=%d", id)

	return nil
}

func vendorFromPayload(p model.VendorPayload) model.Vendor {
	return model.Vendor{
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Phone:         deref(p.Phone),
		Address:       deref(p.Address),
	}
}
