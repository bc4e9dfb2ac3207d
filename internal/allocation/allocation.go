// Package allocation implements the asset allocation form state machine: which
// fields a status selection requires, enables and clears, and how raw form
// state becomes the persisted write payload.
package allocation

import (
	"errors"
	"strings"

	"hr-administration-api/internal/model"
	apperrors "hr-administration-api/pkg/errors"
	"hr-administration-api/pkg/validation"
)

// TargetKind discriminates what an Allocated asset is allocated to. It is kept
// explicitly instead of being inferred from which of the two nullable record
// fields happens to be non-null.
type TargetKind string

const (
	TargetNone     TargetKind = ""
	TargetOffice   TargetKind = "office"
	TargetEmployee TargetKind = "employee"
)

// ErrAmbiguousAllocation is returned when a persisted record carries both an
// employee id and the office flag. The record predates write-side enforcement
// and the true target is unknowable, so it is flagged rather than guessed.
var ErrAmbiguousAllocation = errors.New("record has both employee and office allocation set")

// Form is the in-memory allocation form state. Field names follow the form's
// internal camel-case contract; BuildPayload performs the snake_case
// normalization for the wire.
type Form struct {
	AssetID           string
	SerialNumber      string
	Name              string
	Type              string
	Brand             string
	Model             string
	Status            string
	AllocateTo        TargetKind
	AllocatedTo       string // employee id
	AllocatedToOffice string // office flag, "yes" when set
	Location          string
	Vendor            string
	VendorEmail       string
	VendorContact     string
	WarrantyExpiry    string
	Reason            string
}

// Effect tells the host what dependent state a transition invalidated.
type Effect struct {
	// DiscardEmployees: the department-scoped employee list is stale and must
	// be emptied before anything else happens.
	DiscardEmployees bool
	// LoadDepartments: the department list is needed for an employee target.
	LoadDepartments bool
}

// ApplyStatus moves the form to a new status and clears whatever that status
// forbids.
//
//	Available   — allocation fields and reason cleared
//	Allocated   — reason cleared, department load triggered
//	Maintenance — everything left as-is
//	Retired     — allocation fields cleared, reason kept
func (f *Form) ApplyStatus(status string) Effect {
	f.Status = status

	switch status {
	case model.StatusAvailable:
		f.clearAllocation()
		f.Reason = ""
		return Effect{DiscardEmployees: true}
	case model.StatusAllocated:
		f.Reason = ""
		return Effect{LoadDepartments: true}
	case model.StatusRetired:
		f.clearAllocation()
		return Effect{DiscardEmployees: true}
	}
	return Effect{}
}

// ApplyTarget switches the allocation target while the status is Allocated.
func (f *Form) ApplyTarget(kind TargetKind) Effect {
	f.AllocateTo = kind

	switch kind {
	case TargetOffice:
		f.AllocatedTo = ""
		f.AllocatedToOffice = model.OfficeFlag
		return Effect{DiscardEmployees: true}
	case TargetEmployee:
		f.AllocatedToOffice = ""
		f.Location = ""
		return Effect{LoadDepartments: true}
	default:
		f.AllocatedTo = ""
		f.AllocatedToOffice = ""
		f.Location = ""
		return Effect{DiscardEmployees: true}
	}
}

func (f *Form) clearAllocation() {
	f.AllocateTo = TargetNone
	f.AllocatedTo = ""
	f.AllocatedToOffice = ""
	f.Location = ""
}

// Validate checks the form before submit. A non-nil result is a validation
// error enumerating the offending fields and must block the network call.
func (f *Form) Validate() error {
	problems := make(map[string]string)

	static := map[string]string{
		"assetId":       f.AssetID,
		"serialNumber":  f.SerialNumber,
		"name":          f.Name,
		"type":          f.Type,
		"brand":         f.Brand,
		"model":         f.Model,
		"vendor":        f.Vendor,
		"vendorEmail":   f.VendorEmail,
		"vendorContact": f.VendorContact,
	}
	for field, value := range static {
		if strings.TrimSpace(value) == "" {
			problems[field] = "is required"
		}
	}
	if _, seen := problems["vendorEmail"]; !seen {
		if err := validation.ValidateEmail(f.VendorEmail); err != nil {
			problems["vendorEmail"] = "must be a valid email address"
		}
	}

	switch f.Status {
	case model.StatusMaintenance, model.StatusRetired:
		if strings.TrimSpace(f.Reason) == "" {
			problems["reason"] = "is required for " + f.Status
		}
	case model.StatusAllocated:
		switch f.AllocateTo {
		case TargetOffice:
			if strings.TrimSpace(f.Location) == "" {
				problems["location"] = "is required for office allocation"
			}
		case TargetEmployee:
			if strings.TrimSpace(f.AllocatedTo) == "" {
				problems["allocatedTo"] = "select an employee"
			}
		default:
			problems["allocateTo"] = "select office or employee"
		}
	}

	if len(problems) > 0 {
		return apperrors.ValidationFieldsError(problems)
	}
	return nil
}

// optional converts an empty form value to an explicit null marker. The
// backend distinguishes a cleared field from an empty one.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// BuildPayload turns the form into the persisted write payload. Allocation
// fields follow the status: Allocated sets exactly the chosen target's fields,
// Available and Retired null all three regardless of prior state, and
// Maintenance carries whatever allocation currently exists through unchanged.
func (f *Form) BuildPayload() model.AssetPayload {
	p := model.AssetPayload{
		AssetID:        f.AssetID,
		SerialNumber:   f.SerialNumber,
		Name:           f.Name,
		Type:           f.Type,
		Brand:          f.Brand,
		Model:          f.Model,
		Status:         f.Status,
		Vendor:         f.Vendor,
		VendorEmail:    f.VendorEmail,
		VendorContact:  f.VendorContact,
		WarrantyExpiry: optional(f.WarrantyExpiry),
	}

	switch f.Status {
	case model.StatusAllocated:
		if f.AllocateTo == TargetEmployee {
			p.AllocatedTo = optional(f.AllocatedTo)
		} else if f.AllocateTo == TargetOffice {
			flag := model.OfficeFlag
			p.AllocatedToOffice = &flag
			p.Location = optional(f.Location)
		}
	case model.StatusMaintenance:
		// The one status that deliberately preserves existing allocation.
		p.AllocatedTo = optional(f.AllocatedTo)
		p.AllocatedToOffice = optional(f.AllocatedToOffice)
		p.Location = optional(f.Location)
	}
	// Available and Retired leave all three allocation fields null.

	if f.Status == model.StatusMaintenance || f.Status == model.StatusRetired {
		p.Reason = optional(f.Reason)
	}

	return p
}

// TargetFromRecord reconstructs the allocation discriminator from the two
// persisted fields. When both are set the answer is ambiguous and flagged.
func TargetFromRecord(allocatedTo, allocatedToOffice string) (TargetKind, error) {
	employee := strings.TrimSpace(allocatedTo) != ""
	office := strings.TrimSpace(allocatedToOffice) != ""

	switch {
	case employee && office:
		return TargetNone, ErrAmbiguousAllocation
	case employee:
		return TargetEmployee, nil
	case office:
		return TargetOffice, nil
	default:
		return TargetNone, nil
	}
}

// FormFromAsset builds the edit-flow form from a persisted asset. Records that
// carry an explicit allocation kind use it directly; legacy records fall back
// to TargetFromRecord, which may report ambiguity.
func FormFromAsset(a model.Asset) (Form, error) {
	f := Form{
		AssetID:           a.AssetID,
		SerialNumber:      a.SerialNumber,
		Name:              a.Name,
		Type:              a.Type,
		Brand:             a.Brand,
		Model:             a.Model,
		Status:            a.Status,
		AllocatedTo:       a.AllocatedTo,
		AllocatedToOffice: a.AllocatedToOffice,
		Location:          a.Location,
		Vendor:            a.Vendor,
		VendorEmail:       a.VendorEmail,
		VendorContact:     a.VendorContact,
		WarrantyExpiry:    trimDate(a.WarrantyExpiry),
		Reason:            a.Reason,
	}

	if a.Status != model.StatusAllocated {
		return f, nil
	}

	if a.AllocationKind != "" {
		f.AllocateTo = TargetKind(a.AllocationKind)
		return f, nil
	}

	kind, err := TargetFromRecord(a.AllocatedTo, a.AllocatedToOffice)
	f.AllocateTo = kind
	return f, err
}

// trimDate reduces a timestamp string to its date part for the date input.
func trimDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
