package service

import (
	"context"
	"log"

	"hr-administration-api/internal/activity"
	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
	"hr-administration-api/pkg/errors"
)

// ActivityService serves the grouped activity log viewers.
type ActivityService struct {
	repo   repository.ActivityRepository
	logger *log.Logger
}

// NewActivityService creates a new activity service.
func NewActivityService(repo repository.ActivityRepository, logger *log.Logger) *ActivityService {
	if logger == nil {
		logger = log.Default()
	}
	return &ActivityService{repo: repo, logger: logger}
}

// GetGroupedActivityLogs returns one page of activity logs grouped per
// employee, newest first within each group. The activity_type filter selects
// the asset or ticket view of the grouped page; the total count refers to the
// flat page the grouping was built from.
func (s *ActivityService) GetGroupedActivityLogs(ctx context.Context, filter model.ActivityFilter, params repository.PaginationParams) ([]model.GroupedActivityLog, int, error) {
	logs, total, err := s.repo.GetActivityLogs(ctx, filter, params)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to retrieve activity logs", err)
	}

	groups := activity.View(activity.Group(logs), filter.ActivityType)

	s.logger.Printf("Retrieved %d activity logs in %d groups (view=%q)",
		len(logs), len(groups), filter.ActivityType)

	return groups, total, nil
}
