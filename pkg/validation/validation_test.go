package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-administration-api/internal/model"
)

func strptr(s string) *string { return &s }

func validPayload() model.AssetPayload {
	return model.AssetPayload{
		AssetID:       "AID0001",
		SerialNumber:  "SN001",
		Name:          "MacBook Pro",
		Type:          "Laptop",
		Brand:         "Apple",
		Model:         "M1 2021",
		Status:        model.StatusAvailable,
		Vendor:        "Tech Suppliers Inc.",
		VendorEmail:   "contact@techsuppliers.com",
		VendorContact: "John Doe",
	}
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("name", "value"))
	assert.Error(t, ValidateRequired("name", ""))
	assert.Error(t, ValidateRequired("name", "   "))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "john.doe@corp.example.com", "x+tag@y.io"}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "a@b", "@b.co", "a@", "a b@c.co"}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateAssetID(t *testing.T) {
	assert.NoError(t, ValidateAssetID("AID0001"))
	assert.NoError(t, ValidateAssetID("AID7"))
	assert.Error(t, ValidateAssetID("aid0001"))
	assert.Error(t, ValidateAssetID("AID"))
	assert.Error(t, ValidateAssetID("XYZ0001"))
}

func TestValidateStatus(t *testing.T) {
	for _, status := range []string{"Available", "Allocated", "Maintenance", "Retired"} {
		assert.NoError(t, ValidateStatus(status))
	}
	assert.Error(t, ValidateStatus("Broken"))
	assert.Error(t, ValidateStatus(""))
}

func TestValidateAssetPayload_MissingStatics(t *testing.T) {
	p := validPayload()
	p.SerialNumber = ""
	p.VendorEmail = ""

	problems := ValidateAssetPayload(&p)

	assert.Contains(t, problems, "serial_number")
	assert.Contains(t, problems, "vendor_email")
}

func TestValidateAssetPayload_BadVendorEmail(t *testing.T) {
	p := validPayload()
	p.VendorEmail = "nope"

	problems := ValidateAssetPayload(&p)
	assert.Contains(t, problems, "vendor_email")
}

func TestValidateAssetPayload_ReasonRules(t *testing.T) {
	for _, status := range []string{model.StatusMaintenance, model.StatusRetired} {
		p := validPayload()
		p.Status = status

		problems := ValidateAssetPayload(&p)
		assert.Contains(t, problems, "reason", status)

		p.Reason = strptr("screen repair")
		if status == model.StatusRetired {
			// Retired also demands a cleared allocation; already clear here.
			problems = ValidateAssetPayload(&p)
			assert.Empty(t, problems)
		}
	}
}

func TestValidateAssetPayload_AllocationInvariants(t *testing.T) {
	t.Run("available must be unallocated", func(t *testing.T) {
		p := validPayload()
		p.AllocatedTo = strptr("K0021")

		problems := ValidateAssetPayload(&p)
		assert.Contains(t, problems, "allocation")
	})

	t.Run("allocated requires exactly one target", func(t *testing.T) {
		p := validPayload()
		p.Status = model.StatusAllocated

		problems := ValidateAssetPayload(&p)
		assert.Contains(t, problems, "allocation")

		p.AllocatedTo = strptr("K0021")
		p.AllocatedToOffice = strptr(model.OfficeFlag)
		problems = ValidateAssetPayload(&p)
		assert.Contains(t, problems, "allocation")
	})

	t.Run("office target requires location", func(t *testing.T) {
		p := validPayload()
		p.Status = model.StatusAllocated
		p.AllocatedToOffice = strptr(model.OfficeFlag)

		problems := ValidateAssetPayload(&p)
		assert.Contains(t, problems, "location")

		p.Location = strptr("2nd Floor")
		problems = ValidateAssetPayload(&p)
		assert.Empty(t, problems)
	})

	t.Run("employee target accepted", func(t *testing.T) {
		p := validPayload()
		p.Status = model.StatusAllocated
		p.AllocatedTo = strptr("K0021")

		problems := ValidateAssetPayload(&p)
		assert.Empty(t, problems)
	})
}

func TestValidateVendorPayload(t *testing.T) {
	p := model.VendorPayload{Name: "Tech Suppliers Inc.", ContactPerson: "John Doe", Email: "john@techsuppliers.com"}
	assert.Empty(t, ValidateVendorPayload(&p))

	p.Email = "bad"
	problems := ValidateVendorPayload(&p)
	assert.Contains(t, problems, "email")

	p = model.VendorPayload{}
	problems = ValidateVendorPayload(&p)
	assert.Contains(t, problems, "name")
	assert.Contains(t, problems, "contact_person")
	assert.Contains(t, problems, "email")
}
