package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"hr-administration-api/internal/model"
)

// TicketServiceAPI is the slice of the ticket service the handler depends on.
type TicketServiceAPI interface {
	GetTickets(ctx context.Context, status string) ([]model.Ticket, error)
	GetTicketByID(ctx context.Context, ticketID string) (*model.Ticket, error)
	UpdateTicket(ctx context.Context, ticketID string, update model.TicketUpdate, actor string) (*model.Ticket, error)
	GetTicketStats(ctx context.Context) (*model.TicketStats, error)
}

// TicketHandler handles the HTTP requests for the HR ticket view.
type TicketHandler struct {
	Service TicketServiceAPI
	// BaseURL is prepended to evidence file paths to form public URLs. When
	// empty, the request's own origin is used.
	BaseURL string
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewTicketHandler creates a new TicketHandler with dependencies and helpers.
func NewTicketHandler(service TicketServiceAPI, baseURL string, logger *log.Logger) *TicketHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &TicketHandler{
		Service:        service,
		BaseURL:        baseURL,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(logger),
	}
}

// GetTicketsHandler handles GET /api/hr/tickets with an optional status filter.
func (h *TicketHandler) GetTicketsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	tickets, err := h.Service.GetTickets(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve tickets")
		return
	}

	for i := range tickets {
		h.decorateEvidence(r, &tickets[i])
	}

	h.ResponseHelper.SendData(w, http.StatusOK, tickets)
}

// GetTicketHandler handles GET /api/hr/tickets/{ticketId}.
func (h *TicketHandler) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	ticket, err := h.Service.GetTicketByID(ctx, mux.Vars(r)["ticketId"])
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve ticket")
		return
	}

	h.decorateEvidence(r, ticket)
	h.ResponseHelper.SendData(w, http.StatusOK, ticket)
}

// UpdateTicketHandler handles PUT /api/hr/tickets/{ticketId}.
func (h *TicketHandler) UpdateTicketHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var update model.TicketUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	ticket, err := h.Service.UpdateTicket(ctx, mux.Vars(r)["ticketId"], update, Actor(r))
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "update ticket")
		return
	}

	h.decorateEvidence(r, ticket)
	h.ResponseHelper.SendMessage(w, http.StatusOK, "Ticket updated successfully", ticket)
}

// GetTicketStatsHandler handles GET /api/hr/ticket-stats.
func (h *TicketHandler) GetTicketStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	stats, err := h.Service.GetTicketStats(ctx)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve ticket stats")
		return
	}

	h.ResponseHelper.SendData(w, http.StatusOK, stats)
}

// decorateEvidence turns stored evidence file paths into public URLs under
// the uploads origin.
func (h *TicketHandler) decorateEvidence(r *http.Request, ticket *model.Ticket) {
	base := h.BaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	base = strings.TrimSuffix(base, "/")

	for i := range ticket.Evidence {
		path := strings.TrimPrefix(ticket.Evidence[i].FilePath, "uploads/")
		ticket.Evidence[i].URL = fmt.Sprintf("%s/uploads/%s", base, path)
	}
}
