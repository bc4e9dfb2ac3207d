package model

import (
	"encoding/json"
	"time"
)

// Activity action types recorded by asset and ticket operations.
const (
	ActionAssetCreated     = "asset_created"
	ActionAssetUpdated     = "asset_updated"
	ActionAssetAllocated   = "asset_allocated"
	ActionAssetReturned    = "asset_returned"
	ActionTicketCreated    = "ticket_created"
	ActionTicketUpdated    = "ticket_updated"
	ActionTicketResponded  = "ticket_responded"
	ActionHRResponse       = "hr_response"
	ActionTicketClosed     = "ticket_closed"
	ActionEvidenceUploaded = "evidence_uploaded"
)

// ActivityLog is an immutable append-only audit record of an asset or
// ticket-related action.
type ActivityLog struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id,omitempty"`
	EmployeeEmail     string          `json:"employee_email,omitempty"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	ActionType        string          `json:"action_type"`
	ActionDescription string          `json:"action_description,omitempty"`
	AssetID           string          `json:"asset_id,omitempty"`
	TicketID          string          `json:"ticket_id,omitempty"`
	PerformedBy       string          `json:"performed_by"`
	PerformedByName   string          `json:"performed_by_name,omitempty"`
	AdditionalData    json.RawMessage `json:"additional_data,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// GroupedActivityLog is the derived per-employee grouping of activity records,
// newest-first within each group. It is never persisted.
type GroupedActivityLog struct {
	EmployeeID    string        `json:"employee_id,omitempty"`
	EmployeeEmail string        `json:"employee_email,omitempty"`
	EmployeeName  string        `json:"employee_name,omitempty"`
	Activities    []ActivityLog `json:"activities"`
}

// ActivityFilter carries the query parameters accepted by the activity-log
// listing endpoint.
type ActivityFilter struct {
	ActivityType string
	EmployeeName string
	EmployeeID   string
	StartDate    string
	EndDate      string
}
