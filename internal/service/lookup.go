package service

import (
	"context"
	"log"

	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
	"hr-administration-api/pkg/errors"
)

// LookupService serves the reference datasets behind the allocation form.
type LookupService struct {
	repo   repository.LookupRepository
	logger *log.Logger
}

// NewLookupService creates a new lookup service.
func NewLookupService(repo repository.LookupRepository, logger *log.Logger) *LookupService {
	if logger == nil {
		logger = log.Default()
	}
	return &LookupService{repo: repo, logger: logger}
}

// GetDepartments returns all departments.
func (s *LookupService) GetDepartments(ctx context.Context) ([]model.Department, error) {
	departments, err := s.repo.GetDepartments(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve departments", err)
	}
	return departments, nil
}

// GetEmployeesByGroup returns the employees belonging to one department.
func (s *LookupService) GetEmployeesByGroup(ctx context.Context, grpID int) ([]model.Employee, error) {
	if grpID <= 0 {
		return nil, errors.ValidationError("grp_id must be a positive integer")
	}

	employees, err := s.repo.GetEmployeesByGroup(ctx, grpID)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve employees", err)
	}

	s.logger.Printf("Retrieved %d employees for group %d", len(employees), grpID)

	return employees, nil
}
