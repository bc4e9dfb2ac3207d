package service

import (
	"context"
	"fmt"
	"log"

	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
	"hr-administration-api/pkg/errors"
)

// TicketService handles business logic for support ticket operations.
type TicketService struct {
	repo     repository.TicketRepository
	activity repository.ActivityRepository
	logger   *log.Logger
}

// NewTicketService creates a new ticket service.
func NewTicketService(repo repository.TicketRepository, activity repository.ActivityRepository, logger *log.Logger) *TicketService {
	if logger == nil {
		logger = log.Default()
	}
	return &TicketService{
		repo:     repo,
		activity: activity,
		logger:   logger,
	}
}

// GetTickets returns tickets, optionally filtered by status.
func (s *TicketService) GetTickets(ctx context.Context, status string) ([]model.Ticket, error) {
	if status != "" && !model.IsValidTicketStatus(status) {
		return nil, errors.ValidationError(fmt.Sprintf("unknown ticket status %q", status))
	}

	tickets, err := s.repo.GetTickets(ctx, status)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve tickets", err)
	}

	s.logger.Printf("Retrieved %d tickets (status=%q)", len(tickets), status)

	return tickets, nil
}

// GetTicketByID returns a single ticket with its evidence.
func (s *TicketService) GetTicketByID(ctx context.Context, ticketID string) (*model.Ticket, error) {
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		if err == repository.ErrTicketNotFound {
			return nil, errors.NotFoundError("ticket")
		}
		return nil, errors.DatabaseError("failed to retrieve ticket", err)
	}
	return ticket, nil
}

// UpdateTicket applies a status change and/or an HR response. An update with
// neither is rejected before anything is written.
func (s *TicketService) UpdateTicket(ctx context.Context, ticketID string, update model.TicketUpdate, actor string) (*model.Ticket, error) {
	if update.IsEmpty() {
		return nil, errors.ValidationError("update must carry a status or an hrResponse")
	}
	if update.Status != "" && !model.IsValidTicketStatus(update.Status) {
		return nil, errors.ValidationError(fmt.Sprintf("unknown ticket status %q", update.Status))
	}

	existing, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		if err == repository.ErrTicketNotFound {
			return nil, errors.NotFoundError("ticket")
		}
		return nil, errors.DatabaseError("failed to retrieve ticket for update", err)
	}

	if err := s.repo.UpdateTicket(ctx, ticketID, update); err != nil {
		if err == repository.ErrTicketNotFound {
			return nil, errors.NotFoundError("ticket")
		}
		return nil, errors.DatabaseError("failed to update ticket", err)
	}

	updated, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve updated ticket", err)
	}

	s.recordTicketActivity(ctx, existing, update, actor)

	s.logger.Printf("Ticket updated: ticket_id=%s status=%s", updated.TicketID, updated.Status)

	return updated, nil
}

// GetTicketStats returns per-status ticket counts.
func (s *TicketService) GetTicketStats(ctx context.Context) (*model.TicketStats, error) {
	stats, err := s.repo.GetTicketStats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve ticket stats", err)
	}
	return stats, nil
}

func (s *TicketService) recordTicketActivity(ctx context.Context, ticket *model.Ticket, update model.TicketUpdate, actor string) {
	actionType := model.ActionTicketUpdated
	description := fmt.Sprintf("Ticket %s updated", ticket.TicketID)
	switch {
	case update.Status == model.TicketClosed:
		actionType = model.ActionTicketClosed
		description = fmt.Sprintf("Ticket %s closed", ticket.TicketID)
	case update.HRResponse != "" && update.Status == "":
		actionType = model.ActionHRResponse
		description = fmt.Sprintf("HR responded to ticket %s", ticket.TicketID)
	}

	entry := model.ActivityLog{
		EmployeeID:        ticket.EmployeeID,
		EmployeeEmail:     ticket.ReportedBy,
		EmployeeName:      ticket.EmployeeName,
		ActionType:        actionType,
		ActionDescription: description,
		AssetID:           ticket.AssetID,
		TicketID:          ticket.TicketID,
		PerformedBy:       actor,
	}
	if err := s.activity.RecordActivity(ctx, entry); err != nil {
		s.logger.Printf("Failed to record %s activity for ticket %s: %v", actionType, ticket.TicketID, err)
	}
}
