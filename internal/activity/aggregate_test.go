package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-administration-api/internal/model"
)

func at(minutes int) time.Time {
	return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}

func TestGroup_InterleavedEmployees(t *testing.T) {
	logs := []model.ActivityLog{
		{ID: "1", EmployeeID: "A", ActionType: model.ActionAssetCreated, AssetID: "AID0001", CreatedAt: at(0)},
		{ID: "2", EmployeeID: "B", ActionType: model.ActionAssetAllocated, AssetID: "AID0002", CreatedAt: at(1)},
		{ID: "3", EmployeeID: "A", ActionType: model.ActionAssetUpdated, AssetID: "AID0001", CreatedAt: at(2)},
		{ID: "4", EmployeeID: "B", ActionType: model.ActionAssetReturned, AssetID: "AID0002", CreatedAt: at(3)},
	}

	groups := Group(logs)

	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].EmployeeID)
	assert.Equal(t, "B", groups[1].EmployeeID)
	for _, group := range groups {
		require.Len(t, group.Activities, 2)
		assert.True(t, group.Activities[0].CreatedAt.After(group.Activities[1].CreatedAt),
			"activities must be newest-first")
	}
}

func TestGroup_UnknownSentinel(t *testing.T) {
	logs := []model.ActivityLog{
		{ID: "1", ActionType: model.ActionAssetCreated, CreatedAt: at(0)},
	}

	groups := Group(logs)

	require.Len(t, groups, 1)
	assert.Equal(t, UnknownEmployee, groups[0].EmployeeID)
}

func TestGroup_EmailOnlyKey(t *testing.T) {
	logs := []model.ActivityLog{
		{ID: "1", EmployeeEmail: "a@corp.example", ActionType: model.ActionAssetCreated, CreatedAt: at(0)},
		{ID: "2", EmployeeEmail: "a@corp.example", ActionType: model.ActionAssetUpdated, CreatedAt: at(1)},
		{ID: "3", EmployeeEmail: "b@corp.example", ActionType: model.ActionAssetCreated, CreatedAt: at(2)},
	}

	groups := Group(logs)

	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Activities, 2)
}

func TestGroup_BackfillsEmployeeName(t *testing.T) {
	logs := []model.ActivityLog{
		{ID: "1", EmployeeID: "A", ActionType: model.ActionAssetCreated, CreatedAt: at(0)},
		{ID: "2", EmployeeID: "A", EmployeeName: "Asha Rao", ActionType: model.ActionAssetUpdated, CreatedAt: at(1)},
	}

	groups := Group(logs)

	require.Len(t, groups, 1)
	assert.Equal(t, "Asha Rao", groups[0].EmployeeName)
}

func TestAssetView(t *testing.T) {
	groups := Group([]model.ActivityLog{
		{ID: "1", EmployeeID: "A", ActionType: model.ActionAssetAllocated, AssetID: "AID0001", CreatedAt: at(0)},
		// Carries both ids: must never appear in the asset view.
		{ID: "2", EmployeeID: "A", ActionType: model.ActionAssetUpdated, AssetID: "AID0001", TicketID: "TKT9", CreatedAt: at(1)},
		// Asset action type without an asset id still counts.
		{ID: "3", EmployeeID: "A", ActionType: model.ActionAssetReturned, CreatedAt: at(2)},
		{ID: "4", EmployeeID: "B", ActionType: model.ActionTicketCreated, TicketID: "TKT1", CreatedAt: at(3)},
	})

	view := AssetView(groups)

	require.Len(t, view, 1, "group B has no asset activity and must be dropped")
	require.Len(t, view[0].Activities, 2)
	for _, entry := range view[0].Activities {
		assert.NotEqual(t, "2", entry.ID)
		assert.Empty(t, entry.TicketID)
	}
}

func TestTicketView(t *testing.T) {
	groups := Group([]model.ActivityLog{
		{ID: "1", EmployeeID: "A", ActionType: model.ActionTicketClosed, TicketID: "TKT1", CreatedAt: at(0)},
		// Ticket id but a non-ticket action type: excluded.
		{ID: "2", EmployeeID: "A", ActionType: model.ActionAssetUpdated, TicketID: "TKT1", CreatedAt: at(1)},
		// Ticket action type but no ticket id: excluded.
		{ID: "3", EmployeeID: "A", ActionType: model.ActionTicketUpdated, CreatedAt: at(2)},
	})

	view := TicketView(groups)

	require.Len(t, view, 1)
	require.Len(t, view[0].Activities, 1)
	assert.Equal(t, "1", view[0].Activities[0].ID)
}

func TestView_UnknownNameIsPassthrough(t *testing.T) {
	groups := Group([]model.ActivityLog{
		{ID: "1", EmployeeID: "A", ActionType: model.ActionTicketClosed, TicketID: "TKT1", CreatedAt: at(0)},
	})

	assert.Equal(t, groups, View(groups, ""))
	assert.Len(t, View(groups, "ticket"), 1)
	assert.Empty(t, View(groups, "asset"))
}
