package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hr-administration-api/internal/model"
)

// ActivityRepository is an interface for recording and querying activity logs.
type ActivityRepository interface {
	RecordActivity(ctx context.Context, log model.ActivityLog) error
	GetActivityLogs(ctx context.Context, filter model.ActivityFilter, params PaginationParams) ([]model.ActivityLog, int, error)
}

type activityRepository struct {
	DB *sql.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{DB: db}
}

// RecordActivity appends one activity log entry. The id is assigned here so
// callers never have to care about it.
func (r *activityRepository) RecordActivity(ctx context.Context, log model.ActivityLog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO activity_logs (id, employee_id, employee_email, employee_name,
			action_type, action_description, asset_id, ticket_id,
			performed_by, performed_by_name, additional_data)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''),
			$5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
			$9, NULLIF($10, ''), $11)`

	var additional interface{}
	if len(log.AdditionalData) > 0 {
		additional = []byte(log.AdditionalData)
	}

	_, err := r.DB.ExecContext(ctx, query,
		uuid.NewString(), log.EmployeeID, log.EmployeeEmail, log.EmployeeName,
		log.ActionType, log.ActionDescription, log.AssetID, log.TicketID,
		log.PerformedBy, log.PerformedByName, additional,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}

// GetActivityLogs returns one page of activity logs, newest first, plus the
// total count for the same filter. Asset/ticket view filtering happens after
// grouping, so only employee and date filters are pushed into SQL.
func (r *activityRepository) GetActivityLogs(ctx context.Context, filter model.ActivityFilter, params PaginationParams) ([]model.ActivityLog, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	where := "1=1"
	args := []interface{}{}
	n := 0
	if filter.EmployeeID != "" {
		n++
		where += fmt.Sprintf(" AND employee_id = $%d", n)
		args = append(args, filter.EmployeeID)
	}
	if filter.EmployeeName != "" {
		n++
		where += fmt.Sprintf(" AND employee_name ILIKE $%d", n)
		args = append(args, "%"+filter.EmployeeName+"%")
	}
	if filter.StartDate != "" {
		n++
		where += fmt.Sprintf(" AND created_at >= $%d::date", n)
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		n++
		where += fmt.Sprintf(" AND created_at < $%d::date + INTERVAL '1 day'", n)
		args = append(args, filter.EndDate)
	}

	countQuery := "SELECT COUNT(*) FROM activity_logs WHERE " + where
	var totalCount int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, COALESCE(employee_id, ''), COALESCE(employee_email, ''), COALESCE(employee_name, ''),
			action_type, COALESCE(action_description, ''), COALESCE(asset_id, ''), COALESCE(ticket_id, ''),
			performed_by, COALESCE(performed_by_name, ''), additional_data, created_at
		FROM activity_logs
		WHERE %s
		ORDER BY created_at DESC
		OFFSET $%d LIMIT $%d`, where, n+1, n+2)
	args = append(args, params.Offset, params.Limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	var logs []model.ActivityLog
	for rows.Next() {
		var l model.ActivityLog
		var additional []byte
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.EmployeeEmail, &l.EmployeeName,
			&l.ActionType, &l.ActionDescription, &l.AssetID, &l.TicketID,
			&l.PerformedBy, &l.PerformedByName, &additional, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity log: %w", err)
		}
		l.AdditionalData = additional
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return logs, totalCount, nil
}
