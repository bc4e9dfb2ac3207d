package client

import (
	"context"
	"net/url"

	"hr-administration-api/internal/model"
	apperrors "hr-administration-api/pkg/errors"
)

// TicketsClient provides typed access to the HR ticket endpoints.
type TicketsClient struct {
	c *Client
}

// Tickets returns the ticket resource client.
func (c *Client) Tickets() *TicketsClient {
	return &TicketsClient{c: c}
}

// List fetches tickets, optionally filtered by status.
func (t *TicketsClient) List(ctx context.Context, status string) ([]model.Ticket, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var tickets []model.Ticket
	if _, err := t.c.get(ctx, "/api/hr/tickets", query, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Get fetches one ticket with its evidence.
func (t *TicketsClient) Get(ctx context.Context, ticketID string) (*model.Ticket, error) {
	var ticket model.Ticket
	if _, err := t.c.get(ctx, "/api/hr/tickets/"+url.PathEscape(ticketID), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Stats fetches the per-status ticket counts.
func (t *TicketsClient) Stats(ctx context.Context) (*model.TicketStats, error) {
	var stats model.TicketStats
	if _, err := t.c.get(ctx, "/api/hr/ticket-stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ActionPanel is the edit session for one ticket. It works on a copy of the
// ticket taken when the panel opened, so edits never leak into list views
// until the server accepts them.
type ActionPanel struct {
	tickets *TicketsClient

	ticket model.Ticket
	update model.TicketUpdate

	// OnStatsRefresh runs after every accepted submit.
	OnStatsRefresh func()
}

// OpenPanel starts an edit session on a snapshot of the ticket.
func (t *TicketsClient) OpenPanel(ticket model.Ticket) *ActionPanel {
	copied := ticket
	copied.Evidence = append([]model.Evidence(nil), ticket.Evidence...)
	return &ActionPanel{tickets: t, ticket: copied}
}

// Ticket returns the panel's working copy.
func (p *ActionPanel) Ticket() model.Ticket {
	return p.ticket
}

// SetStatus stages a status change.
func (p *ActionPanel) SetStatus(status string) {
	p.update.Status = status
}

// SetResponse stages an HR response.
func (p *ActionPanel) SetResponse(response string) {
	p.update.HRResponse = response
}

// Submit sends the staged changes. An empty submission is rejected without a
// request. On success only the fields that were actually sent are patched
// into the working copy, and the stats refresh hook fires.
func (p *ActionPanel) Submit(ctx context.Context) (*model.Ticket, error) {
	if p.update.IsEmpty() {
		return nil, apperrors.ValidationError("nothing to submit: set a status or a response first")
	}

	path := "/api/hr/tickets/" + url.PathEscape(p.ticket.TicketID)
	if _, err := p.tickets.c.put(ctx, path, p.update, nil); err != nil {
		return nil, err
	}

	if p.update.Status != "" {
		p.ticket.Status = p.update.Status
	}
	if p.update.HRResponse != "" {
		p.ticket.ResolutionNotes = p.update.HRResponse
	}
	p.update = model.TicketUpdate{}

	if p.OnStatsRefresh != nil {
		p.OnStatsRefresh()
	}

	return &p.ticket, nil
}
