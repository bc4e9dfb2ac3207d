package model

import "time"

// Asset lifecycle statuses.
const (
	StatusAvailable   = "Available"
	StatusAllocated   = "Allocated"
	StatusMaintenance = "Maintenance"
	StatusRetired     = "Retired"
)

// OfficeFlag is the value stored in allocated_to_office when an asset is
// allocated to an office rather than an employee.
const OfficeFlag = "yes"

// Asset represents a tracked piece of equipment. AssetID is the business key
// (format AID<digits>), SerialNumber the immutable equipment key.
type Asset struct {
	ID                int64     `json:"id"`
	AssetID           string    `json:"asset_id"`
	SerialNumber      string    `json:"serial_number"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	Status            string    `json:"status"`
	AllocationKind    string    `json:"allocation_kind,omitempty"`
	AllocatedTo       string    `json:"allocated_to,omitempty"`
	AllocatedToOffice string    `json:"allocated_to_office,omitempty"`
	Location          string    `json:"location,omitempty"`
	Vendor            string    `json:"vendor"`
	VendorEmail       string    `json:"vendor_email,omitempty"`
	VendorContact     string    `json:"vendor_contact,omitempty"`
	WarrantyExpiry    string    `json:"warranty_expiry,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AssetPayload is the write contract for POST/PUT /api/assets. Nullable fields
// are pointers so that an explicit null (field cleared) can be distinguished
// from a field that was never present.
type AssetPayload struct {
	AssetID           string  `json:"asset_id,omitempty"`
	SerialNumber      string  `json:"serial_number"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	Status            string  `json:"status"`
	AllocatedTo       *string `json:"allocated_to"`
	AllocatedToOffice *string `json:"allocated_to_office"`
	Location          *string `json:"location"`
	Vendor            string  `json:"vendor"`
	VendorEmail       string  `json:"vendor_email"`
	VendorContact     string  `json:"vendor_contact"`
	WarrantyExpiry    *string `json:"warranty_expiry"`
	Reason            *string `json:"reason"`
}
