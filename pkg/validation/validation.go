package validation

import (
	"fmt"
	"regexp"
	"strings"

	"hr-administration-api/internal/model"
)

// Asset business key format, e.g. AID0042.
var assetIDRegex = regexp.MustCompile(`^AID\d+$`)

// Deliberately loose: one @, something either side, a dot in the domain.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validStatuses = []string{
	model.StatusAvailable,
	model.StatusAllocated,
	model.StatusMaintenance,
	model.StatusRetired,
}

// ValidateRequired checks if a string field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateEmail validates an email address format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateAssetID validates the AID<digits> business key format
func ValidateAssetID(assetID string) error {
	if !assetIDRegex.MatchString(assetID) {
		return fmt.Errorf("invalid asset id format: %s", assetID)
	}
	return nil
}

// ValidateStatus checks the asset lifecycle status against the known set
func ValidateStatus(status string) error {
	for _, s := range validStatuses {
		if status == s {
			return nil
		}
	}
	return fmt.Errorf("invalid status: %s", status)
}

func isSet(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

// ValidateAssetPayload validates an asset write payload against the static
// field requirements and the allocation invariants. It returns a map of field
// name to problem, empty when the payload is acceptable.
func ValidateAssetPayload(p *model.AssetPayload) map[string]string {
	problems := make(map[string]string)

	required := map[string]string{
		"serial_number":  p.SerialNumber,
		"name":           p.Name,
		"type":           p.Type,
		"brand":          p.Brand,
		"model":          p.Model,
		"vendor":         p.Vendor,
		"vendor_email":   p.VendorEmail,
		"vendor_contact": p.VendorContact,
	}
	for field, value := range required {
		if err := ValidateRequired(field, value); err != nil {
			problems[field] = "is required"
		}
	}

	if p.AssetID != "" {
		if err := ValidateAssetID(p.AssetID); err != nil {
			problems["asset_id"] = "must match AID<digits>"
		}
	}

	if _, seen := problems["vendor_email"]; !seen && p.VendorEmail != "" {
		if err := ValidateEmail(p.VendorEmail); err != nil {
			problems["vendor_email"] = "must be a valid email address"
		}
	}

	if err := ValidateStatus(p.Status); err != nil {
		problems["status"] = err.Error()
		return problems
	}

	switch p.Status {
	case model.StatusMaintenance, model.StatusRetired:
		if !isSet(p.Reason) {
			problems["reason"] = "is required for Maintenance and Retired"
		}
	}

	switch p.Status {
	case model.StatusAvailable, model.StatusRetired:
		if isSet(p.AllocatedTo) || isSet(p.AllocatedToOffice) || isSet(p.Location) {
			problems["allocation"] = "must be cleared for " + p.Status
		}
	case model.StatusAllocated:
		employee := isSet(p.AllocatedTo)
		office := isSet(p.AllocatedToOffice)
		switch {
		case employee && office:
			problems["allocation"] = "cannot target both an employee and an office"
		case office && !isSet(p.Location):
			problems["location"] = "is required for office allocation"
		case !employee && !office:
			problems["allocation"] = "requires an employee or an office target"
		}
	}

	return problems
}

// ValidateVendorPayload validates a vendor write payload.
func ValidateVendorPayload(p *model.VendorPayload) map[string]string {
	problems := make(map[string]string)

	if err := ValidateRequired("name", p.Name); err != nil {
		problems["name"] = "is required"
	}
	if err := ValidateRequired("contact_person", p.ContactPerson); err != nil {
		problems["contact_person"] = "is required"
	}
	if err := ValidateRequired("email", p.Email); err != nil {
		problems["email"] = "is required"
	} else if err := ValidateEmail(p.Email); err != nil {
		problems["email"] = "must be a valid email address"
	}

	return problems
}
