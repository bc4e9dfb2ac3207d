package service

import (
	"context"
	"log"

	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
	"hr-administration-api/pkg/errors"
	"hr-administration-api/pkg/validation"
)

// ProfileService handles business logic for employee profiles.
type ProfileService struct {
	repo   repository.ProfileRepository
	logger *log.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository, logger *log.Logger) *ProfileService {
	if logger == nil {
		logger = log.Default()
	}
	return &ProfileService{repo: repo, logger: logger}
}

// GetProfile returns the profile stored for an email address.
func (s *ProfileService) GetProfile(ctx context.Context, email string) (*model.Profile, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, errors.ValidationError("a valid email is required")
	}

	profile, err := s.repo.GetProfileByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrProfileNotFound {
			return nil, errors.NotFoundError("profile")
		}
		return nil, errors.DatabaseError("failed to retrieve profile", err)
	}
	return profile, nil
}

// SaveProfile validates and upserts a profile along with any documents that
// were uploaded with it. Document rows are appended, never replaced; earlier
// uploads stay listed on the profile.
func (s *ProfileService) SaveProfile(ctx context.Context, profile model.Profile, docs []model.ProfileDocument) (*model.Profile, error) {
	fields := map[string]string{}
	if profile.EmployeeID == "" {
		fields["employeeId"] = "employeeId is required"
	}
	if profile.Name == "" {
		fields["name"] = "name is required"
	}
	if err := validation.ValidateEmail(profile.Email); err != nil {
		fields["email"] = "a valid email is required"
	}
	if len(fields) > 0 {
		return nil, errors.ValidationFieldsError(fields)
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, errors.DatabaseError("failed to save profile", err)
	}

	for _, doc := range docs {
		if err := s.repo.AddDocument(ctx, profile.Email, doc); err != nil {
			return nil, errors.DatabaseError("failed to save profile document", err)
		}
	}

	saved, err := s.repo.GetProfileByEmail(ctx, profile.Email)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve saved profile", err)
	}

	s.logger.Printf("Profile saved: employee_id=%s email=%s documents=%d",
		profile.EmployeeID, profile.Email, len(docs))

	return saved, nil
}
