package model

import "time"

// Ticket statuses offered by the HR view. Closed tickets are terminal.
const (
	TicketOpen        = "Open"
	TicketClosed      = "Closed"
	TicketEscalated   = "Escalated"
	TicketUnderReview = "Under Review"
)

// IsValidTicketStatus reports whether s is one of the known ticket statuses.
func IsValidTicketStatus(s string) bool {
	switch s {
	case TicketOpen, TicketClosed, TicketEscalated, TicketUnderReview:
		return true
	}
	return false
}

// Evidence is an image or video attachment on a support ticket. URL is derived
// from FilePath against the upload origin, never stored.
type Evidence struct {
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
	URL      string `json:"url,omitempty"`
}

// IsVideo reports whether the evidence should render as video; anything that is
// not explicitly a video is treated as an image.
func (e Evidence) IsVideo() bool {
	return e.FileType == "video"
}

// Ticket is a support ticket raised against an asset.
type Ticket struct {
	TicketID         string     `json:"ticket_id"`
	AssetID          string     `json:"asset_id"`
	ReportedBy       string     `json:"reported_by"`
	IssueDescription string     `json:"issue_description"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	AssignedTo       string     `json:"assigned_to,omitempty"`
	ResolutionNotes  string     `json:"resolution_notes,omitempty"`
	AssetName        string     `json:"asset_name,omitempty"`
	AssetModel       string     `json:"asset_model,omitempty"`
	EmployeeID       string     `json:"employee_id,omitempty"`
	EmployeeName     string     `json:"employee_name,omitempty"`
	Evidence         []Evidence `json:"evidence"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// TicketUpdate is the write contract for PUT /api/hr/tickets/{ticketId}. Both
// fields are optional but at least one must be present.
type TicketUpdate struct {
	Status     string `json:"status,omitempty"`
	HRResponse string `json:"hrResponse,omitempty"`
}

// IsEmpty reports whether the update carries nothing to send.
func (u TicketUpdate) IsEmpty() bool {
	return u.Status == "" && u.HRResponse == ""
}

// TicketStats are the per-status ticket counts behind the dashboard cards.
type TicketStats struct {
	Open        int `json:"open"`
	Closed      int `json:"closed"`
	Escalated   int `json:"escalated"`
	UnderReview int `json:"under review"`
	Total       int `json:"total"`
}
