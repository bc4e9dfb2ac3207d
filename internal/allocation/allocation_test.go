package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-administration-api/internal/model"
	apperrors "hr-administration-api/pkg/errors"
)

// validForm returns a form that passes static validation, allocated to an
// employee.
func validForm() Form {
	return Form{
		AssetID:       "AID0007",
		SerialNumber:  "SN001",
		Name:          "MacBook Pro",
		Type:          "Laptop",
		Brand:         "Apple",
		Model:         "M1 2021",
		Status:        model.StatusAllocated,
		AllocateTo:    TargetEmployee,
		AllocatedTo:   "K0021",
		Vendor:        "Tech Suppliers Inc.",
		VendorEmail:   "contact@techsuppliers.com",
		VendorContact: "John Doe",
	}
}

func TestApplyStatus_AvailableClearsEverything(t *testing.T) {
	f := validForm()
	f.Reason = "left over"
	f.Location = "2nd Floor"

	effect := f.ApplyStatus(model.StatusAvailable)

	assert.True(t, effect.DiscardEmployees)
	assert.False(t, effect.LoadDepartments)
	assert.Equal(t, TargetNone, f.AllocateTo)
	assert.Empty(t, f.AllocatedTo)
	assert.Empty(t, f.AllocatedToOffice)
	assert.Empty(t, f.Location)
	assert.Empty(t, f.Reason)
}

func TestApplyStatus_AllocatedClearsReasonAndLoadsDepartments(t *testing.T) {
	f := validForm()
	f.Status = model.StatusAvailable
	f.Reason = "stale"

	effect := f.ApplyStatus(model.StatusAllocated)

	assert.True(t, effect.LoadDepartments)
	assert.Empty(t, f.Reason)
}

func TestApplyStatus_MaintenanceLeavesAllocationAlone(t *testing.T) {
	f := validForm()

	effect := f.ApplyStatus(model.StatusMaintenance)

	assert.False(t, effect.DiscardEmployees)
	assert.False(t, effect.LoadDepartments)
	assert.Equal(t, "K0021", f.AllocatedTo)
	assert.Equal(t, TargetEmployee, f.AllocateTo)
}

func TestApplyStatus_RetiredClearsAllocationKeepsReason(t *testing.T) {
	f := validForm()
	f.Reason = "End of life"

	effect := f.ApplyStatus(model.StatusRetired)

	assert.True(t, effect.DiscardEmployees)
	assert.Empty(t, f.AllocatedTo)
	assert.Empty(t, f.AllocatedToOffice)
	assert.Empty(t, f.Location)
	assert.Equal(t, "End of life", f.Reason)
}

func TestApplyTarget(t *testing.T) {
	t.Run("office clears employee and sets flag", func(t *testing.T) {
		f := validForm()
		effect := f.ApplyTarget(TargetOffice)

		assert.True(t, effect.DiscardEmployees)
		assert.Empty(t, f.AllocatedTo)
		assert.Equal(t, model.OfficeFlag, f.AllocatedToOffice)
	})

	t.Run("employee clears office fields and loads departments", func(t *testing.T) {
		f := validForm()
		f.AllocatedToOffice = model.OfficeFlag
		f.Location = "3rd Floor"

		effect := f.ApplyTarget(TargetEmployee)

		assert.True(t, effect.LoadDepartments)
		assert.Empty(t, f.AllocatedToOffice)
		assert.Empty(t, f.Location)
	})

	t.Run("none clears all three", func(t *testing.T) {
		f := validForm()
		f.Location = "1st Floor"

		effect := f.ApplyTarget(TargetNone)

		assert.True(t, effect.DiscardEmployees)
		assert.Empty(t, f.AllocatedTo)
		assert.Empty(t, f.AllocatedToOffice)
		assert.Empty(t, f.Location)
	})
}

func TestValidate_StaticFields(t *testing.T) {
	f := validForm()
	f.SerialNumber = ""
	f.VendorContact = "  "

	err := f.Validate()

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	appErr, _ := apperrors.AsAppError(err)
	assert.Contains(t, appErr.Fields, "serialNumber")
	assert.Contains(t, appErr.Fields, "vendorContact")
}

func TestValidate_VendorEmailFormat(t *testing.T) {
	f := validForm()
	f.VendorEmail = "not-an-email"

	err := f.Validate()

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Contains(t, appErr.Fields, "vendorEmail")
}

func TestValidate_ReasonRequiredForMaintenanceAndRetired(t *testing.T) {
	for _, status := range []string{model.StatusMaintenance, model.StatusRetired} {
		t.Run(status, func(t *testing.T) {
			f := validForm()
			f.Status = status
			f.Reason = "   "

			err := f.Validate()

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			appErr, _ := apperrors.AsAppError(err)
			assert.Contains(t, appErr.Fields, "reason")
		})
	}
}

func TestValidate_AllocatedRequiresTarget(t *testing.T) {
	t.Run("no target chosen", func(t *testing.T) {
		f := validForm()
		f.AllocateTo = TargetNone
		f.AllocatedTo = ""

		err := f.Validate()
		require.Error(t, err)
		appErr, _ := apperrors.AsAppError(err)
		assert.Contains(t, appErr.Fields, "allocateTo")
	})

	t.Run("employee target without employee id", func(t *testing.T) {
		f := validForm()
		f.AllocatedTo = ""

		err := f.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		appErr, _ := apperrors.AsAppError(err)
		assert.Contains(t, appErr.Fields, "allocatedTo")
	})

	t.Run("office target without location", func(t *testing.T) {
		f := validForm()
		f.ApplyTarget(TargetOffice)

		err := f.Validate()
		require.Error(t, err)
		appErr, _ := apperrors.AsAppError(err)
		assert.Contains(t, appErr.Fields, "location")
	})
}

func TestValidate_AcceptsCompleteForm(t *testing.T) {
	f := validForm()
	assert.NoError(t, f.Validate())

	f.ApplyStatus(model.StatusRetired)
	f.Reason = "End of life"
	assert.NoError(t, f.Validate())
}

func TestBuildPayload_AllocatedToEmployee(t *testing.T) {
	f := validForm()

	p := f.BuildPayload()

	require.NotNil(t, p.AllocatedTo)
	assert.Equal(t, "K0021", *p.AllocatedTo)
	assert.Nil(t, p.AllocatedToOffice)
	assert.Nil(t, p.Location)
}

func TestBuildPayload_AllocatedToOffice(t *testing.T) {
	f := validForm()
	f.ApplyTarget(TargetOffice)
	f.Location = "2nd Floor"

	p := f.BuildPayload()

	assert.Nil(t, p.AllocatedTo)
	require.NotNil(t, p.AllocatedToOffice)
	assert.Equal(t, model.OfficeFlag, *p.AllocatedToOffice)
	require.NotNil(t, p.Location)
	assert.Equal(t, "2nd Floor", *p.Location)
}

func TestBuildPayload_AvailableAndRetiredNullAllocation(t *testing.T) {
	for _, status := range []string{model.StatusAvailable, model.StatusRetired} {
		t.Run(status, func(t *testing.T) {
			// Stale allocation values left in the form must not leak through.
			f := validForm()
			f.Status = status
			f.Reason = "End of life"

			p := f.BuildPayload()

			assert.Nil(t, p.AllocatedTo)
			assert.Nil(t, p.AllocatedToOffice)
			assert.Nil(t, p.Location)
		})
	}
}

func TestBuildPayload_RetiredCarriesReason(t *testing.T) {
	f := validForm()
	f.ApplyStatus(model.StatusRetired)
	f.Reason = "End of life"

	p := f.BuildPayload()

	assert.Equal(t, model.StatusRetired, p.Status)
	assert.Nil(t, p.AllocatedTo)
	assert.Nil(t, p.AllocatedToOffice)
	require.NotNil(t, p.Reason)
	assert.Equal(t, "End of life", *p.Reason)
}

func TestBuildPayload_MaintenancePreservesAllocation(t *testing.T) {
	f := validForm()
	f.ApplyStatus(model.StatusMaintenance)
	f.Reason = "Screen repair"

	p := f.BuildPayload()

	require.NotNil(t, p.AllocatedTo)
	assert.Equal(t, "K0021", *p.AllocatedTo)
	assert.Nil(t, p.AllocatedToOffice)
	require.NotNil(t, p.Reason)
	assert.Equal(t, "Screen repair", *p.Reason)
}

func TestBuildPayload_EmptyStringsBecomeNull(t *testing.T) {
	f := validForm()
	f.WarrantyExpiry = ""

	p := f.BuildPayload()

	assert.Nil(t, p.WarrantyExpiry)
	assert.Nil(t, p.Reason)
}

func TestTargetFromRecord(t *testing.T) {
	kind, err := TargetFromRecord("K0021", "")
	require.NoError(t, err)
	assert.Equal(t, TargetEmployee, kind)

	kind, err = TargetFromRecord("", model.OfficeFlag)
	require.NoError(t, err)
	assert.Equal(t, TargetOffice, kind)

	kind, err = TargetFromRecord("", "")
	require.NoError(t, err)
	assert.Equal(t, TargetNone, kind)

	_, err = TargetFromRecord("K0021", model.OfficeFlag)
	assert.ErrorIs(t, err, ErrAmbiguousAllocation)
}

// Editing an allocated asset and submitting it unchanged must reproduce the
// original allocation in the payload.
func TestEditRoundTrip_UnchangedEmployeeAllocation(t *testing.T) {
	asset := model.Asset{
		AssetID:       "AID0003",
		SerialNumber:  "SN001",
		Name:          "MacBook Pro",
		Type:          "Laptop",
		Brand:         "Apple",
		Model:         "M1 2021",
		Status:        model.StatusAllocated,
		AllocatedTo:   "K0021",
		Vendor:        "Tech Suppliers Inc.",
		VendorEmail:   "contact@techsuppliers.com",
		VendorContact: "John Doe",
	}

	f, err := FormFromAsset(asset)
	require.NoError(t, err)
	assert.Equal(t, TargetEmployee, f.AllocateTo)
	require.NoError(t, f.Validate())

	p := f.BuildPayload()
	require.NotNil(t, p.AllocatedTo)
	assert.Equal(t, "K0021", *p.AllocatedTo)
	assert.Nil(t, p.AllocatedToOffice)
	assert.Nil(t, p.Location)
}

func TestFormFromAsset_ExplicitKindWins(t *testing.T) {
	asset := model.Asset{
		Status:         model.StatusAllocated,
		AllocationKind: string(TargetOffice),
		Location:       "1st Floor",
	}

	f, err := FormFromAsset(asset)
	require.NoError(t, err)
	assert.Equal(t, TargetOffice, f.AllocateTo)
}

func TestFormFromAsset_AmbiguousRecordIsFlagged(t *testing.T) {
	asset := model.Asset{
		Status:            model.StatusAllocated,
		AllocatedTo:       "K0021",
		AllocatedToOffice: model.OfficeFlag,
	}

	_, err := FormFromAsset(asset)
	assert.ErrorIs(t, err, ErrAmbiguousAllocation)
}

func TestFormFromAsset_TrimsWarrantyTimestamp(t *testing.T) {
	asset := model.Asset{
		Status:         model.StatusAvailable,
		WarrantyExpiry: "2024-12-15T00:00:00Z",
	}

	f, err := FormFromAsset(asset)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-15", f.WarrantyExpiry)
}
