package model

import "time"

// Vendor is an independent supplier entity. Assets reference vendors by name,
// not by foreign key, so renaming a vendor does not cascade.
type Vendor struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// VendorPayload is the write contract for POST/PUT /api/vendors.
type VendorPayload struct {
	Name          string  `json:"name"`
	ContactPerson string  `json:"contact_person"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}
