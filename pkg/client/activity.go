package client

import (
	"context"
	"net/url"
	"strconv"

	"hr-administration-api/internal/model"
)

// ActivityClient provides typed access to the activity log viewers.
type ActivityClient struct {
	c *Client
}

// Activity returns the activity resource client.
func (c *Client) Activity() *ActivityClient {
	return &ActivityClient{c: c}
}

// ActivityQuery carries the filters for a grouped activity log fetch.
type ActivityQuery struct {
	// View is "asset", "ticket" or empty for everything.
	View         string
	EmployeeName string
	EmployeeID   string
	StartDate    string
	EndDate      string
	Page         int
	Limit        int
}

// Logs fetches one page of per-employee grouped activity logs.
func (a *ActivityClient) Logs(ctx context.Context, q ActivityQuery) ([]model.GroupedActivityLog, *Pagination, error) {
	query := url.Values{}
	if q.View != "" {
		query.Set("activity_type", q.View)
	}
	if q.EmployeeName != "" {
		query.Set("employee_name", q.EmployeeName)
	}
	if q.EmployeeID != "" {
		query.Set("employee_id", q.EmployeeID)
	}
	if q.StartDate != "" {
		query.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		query.Set("end_date", q.EndDate)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var groups []model.GroupedActivityLog
	env, err := a.c.get(ctx, "/api/hr/activity-logs", query, &groups)
	if err != nil {
		return nil, nil, err
	}
	return groups, env.Pagination, nil
}
