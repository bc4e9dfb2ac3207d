package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"hr-administration-api/internal/model"
)

// TicketRepository is an interface for interacting with support ticket data.
type TicketRepository interface {
	GetTickets(ctx context.Context, status string) ([]model.Ticket, error)
	GetTicketByID(ctx context.Context, ticketID string) (*model.Ticket, error)
	UpdateTicket(ctx context.Context, ticketID string, update model.TicketUpdate) error
	GetTicketStats(ctx context.Context) (*model.TicketStats, error)
}

type ticketRepository struct {
	DB *sql.DB
}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(db *sql.DB) TicketRepository {
	return &ticketRepository{DB: db}
}

const ticketColumns = `t.ticket_id, t.asset_id, t.reported_by, t.issue_description, t.status,
	t.priority, COALESCE(t.assigned_to, ''), COALESCE(t.resolution_notes, ''),
	COALESCE(a.name, ''), COALESCE(a.model, ''),
	COALESCE(t.employee_id, ''), COALESCE(t.employee_name, ''),
	t.created_at, t.updated_at`

func scanTicket(row interface{ Scan(...interface{}) error }) (model.Ticket, error) {
	var t model.Ticket
	var updatedAt sql.NullTime
	err := row.Scan(&t.TicketID, &t.AssetID, &t.ReportedBy, &t.IssueDescription,
		&t.Status, &t.Priority, &t.AssignedTo, &t.ResolutionNotes,
		&t.AssetName, &t.AssetModel, &t.EmployeeID, &t.EmployeeName,
		&t.CreatedAt, &updatedAt)
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}
	return t, err
}

// GetTickets returns tickets newest first, optionally filtered by status.
// Evidence rows for the page are fetched in one extra query and stitched in.
func (r *ticketRepository) GetTickets(ctx context.Context, status string) ([]model.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `
		SELECT ` + ticketColumns + `
		FROM tickets t
		LEFT JOIN assets a ON a.asset_id = t.asset_id`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE t.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []model.Ticket
	var ids []string
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
		ids = append(ids, t.TicketID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if err := r.attachEvidence(ctx, tickets, ids); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *ticketRepository) attachEvidence(ctx context.Context, tickets []model.Ticket, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT ticket_id, file_path, file_type
		FROM ticket_evidence
		WHERE ticket_id = ANY($1)
		ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query ticket evidence: %w", err)
	}
	defer rows.Close()

	byTicket := make(map[string][]model.Evidence)
	for rows.Next() {
		var ticketID string
		var ev model.Evidence
		if err := rows.Scan(&ticketID, &ev.FilePath, &ev.FileType); err != nil {
			return fmt.Errorf("failed to scan evidence: %w", err)
		}
		byTicket[ticketID] = append(byTicket[ticketID], ev)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	for i := range tickets {
		tickets[i].Evidence = byTicket[tickets[i].TicketID]
	}
	return nil
}

func (r *ticketRepository) GetTicketByID(ctx context.Context, ticketID string) (*model.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT ` + ticketColumns + `
		FROM tickets t
		LEFT JOIN assets a ON a.asset_id = t.asset_id
		WHERE t.ticket_id = $1`

	t, err := scanTicket(r.DB.QueryRowContext(ctx, query, ticketID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	one := []model.Ticket{t}
	if err := r.attachEvidence(ctx, one, []string{t.TicketID}); err != nil {
		return nil, err
	}

	return &one[0], nil
}

// UpdateTicket applies a partial update. Only the fields present in the
// update are written; an empty update is rejected before it reaches SQL.
func (r *ticketRepository) UpdateTicket(ctx context.Context, ticketID string, update model.TicketUpdate) error {
	if update.IsEmpty() {
		return ErrNothingToUpdate
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := "updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	n := 0
	if update.Status != "" {
		n++
		set += fmt.Sprintf(", status = $%d", n)
		args = append(args, update.Status)
	}
	if update.HRResponse != "" {
		n++
		set += fmt.Sprintf(", resolution_notes = $%d", n)
		args = append(args, update.HRResponse)
	}
	args = append(args, ticketID)

	query := fmt.Sprintf("UPDATE tickets SET %s WHERE ticket_id = $%d", set, n+1)

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

// GetTicketStats counts tickets per status in a single grouped query.
func (r *ticketRepository) GetTicketStats(ctx context.Context) (*model.TicketStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket stats: %w", err)
	}
	defer rows.Close()

	var stats model.TicketStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan ticket stats: %w", err)
		}
		switch status {
		case model.TicketOpen:
			stats.Open = count
		case model.TicketClosed:
			stats.Closed = count
		case model.TicketEscalated:
			stats.Escalated = count
		case model.TicketUnderReview:
			stats.UnderReview = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &stats, nil
}
