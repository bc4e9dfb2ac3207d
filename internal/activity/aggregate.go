// Package activity derives the grouped, per-employee views of the flat
// activity-log stream.
package activity

import (
	"sort"

	"hr-administration-api/internal/model"
)

// UnknownEmployee is the sentinel group key for records carrying neither an
// employee id nor an email.
const UnknownEmployee = "unknown"

var assetActionTypes = map[string]bool{
	model.ActionAssetAllocated: true,
	model.ActionAssetReturned:  true,
	model.ActionAssetUpdated:   true,
	model.ActionAssetCreated:   true,
}

var ticketActionTypes = map[string]bool{
	model.ActionTicketCreated:    true,
	model.ActionTicketUpdated:    true,
	model.ActionTicketResponded:  true,
	model.ActionHRResponse:       true,
	model.ActionTicketClosed:     true,
	model.ActionEvidenceUploaded: true,
}

type groupKey struct {
	employeeID    string
	employeeEmail string
}

// Group buckets a flat activity list by (employee_id, employee_email), keeping
// first-seen group order, and sorts each group's activities newest-first.
func Group(logs []model.ActivityLog) []model.GroupedActivityLog {
	byKey := make(map[groupKey]int)
	groups := make([]model.GroupedActivityLog, 0)

	for _, entry := range logs {
		key := groupKey{entry.EmployeeID, entry.EmployeeEmail}
		if key.employeeID == "" && key.employeeEmail == "" {
			key.employeeID = UnknownEmployee
		}

		idx, seen := byKey[key]
		if !seen {
			idx = len(groups)
			byKey[key] = idx
			groups = append(groups, model.GroupedActivityLog{
				EmployeeID:    key.employeeID,
				EmployeeEmail: entry.EmployeeEmail,
				EmployeeName:  entry.EmployeeName,
			})
		}
		if groups[idx].EmployeeName == "" && entry.EmployeeName != "" {
			groups[idx].EmployeeName = entry.EmployeeName
		}
		groups[idx].Activities = append(groups[idx].Activities, entry)
	}

	for i := range groups {
		sortNewestFirst(groups[i].Activities)
	}
	return groups
}

func sortNewestFirst(activities []model.ActivityLog) {
	sort.SliceStable(activities, func(a, b int) bool {
		return activities[a].CreatedAt.After(activities[b].CreatedAt)
	})
}

// isAssetActivity keeps activities with an asset id or an asset action type,
// but never anything that also carries a ticket id.
func isAssetActivity(entry model.ActivityLog) bool {
	if entry.TicketID != "" {
		return false
	}
	return entry.AssetID != "" || assetActionTypes[entry.ActionType]
}

// isTicketActivity keeps only activities with a ticket id and a ticket action
// type from the fixed allow-list.
func isTicketActivity(entry model.ActivityLog) bool {
	return entry.TicketID != "" && ticketActionTypes[entry.ActionType]
}

func filterGroups(groups []model.GroupedActivityLog, keep func(model.ActivityLog) bool) []model.GroupedActivityLog {
	out := make([]model.GroupedActivityLog, 0, len(groups))
	for _, group := range groups {
		kept := make([]model.ActivityLog, 0, len(group.Activities))
		for _, entry := range group.Activities {
			if keep(entry) {
				kept = append(kept, entry)
			}
		}
		if len(kept) == 0 {
			continue
		}
		group.Activities = kept
		out = append(out, group)
	}
	return out
}

// AssetView filters grouped logs down to asset-related activity, dropping
// groups left empty.
func AssetView(groups []model.GroupedActivityLog) []model.GroupedActivityLog {
	return filterGroups(groups, isAssetActivity)
}

// TicketView filters grouped logs down to ticket-related activity, dropping
// groups left empty.
func TicketView(groups []model.GroupedActivityLog) []model.GroupedActivityLog {
	return filterGroups(groups, isTicketActivity)
}

// View applies the named derived view to grouped logs; anything other than
// "asset" or "ticket" returns the groups unchanged.
func View(groups []model.GroupedActivityLog, name string) []model.GroupedActivityLog {
	switch name {
	case "asset":
		return AssetView(groups)
	case "ticket":
		return TicketView(groups)
	default:
		return groups
	}
}
