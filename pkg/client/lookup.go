package client

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"hr-administration-api/internal/model"
)

// LookupClient fetches the reference datasets behind the allocation form.
// Lookup failures degrade to empty lists with a warning; a broken dropdown
// must not take the whole form down.
type LookupClient struct {
	c *Client
}

// Lookups returns the lookup resource client.
func (c *Client) Lookups() *LookupClient {
	return &LookupClient{c: c}
}

// Departments returns all departments, or an empty list if the lookup fails.
func (l *LookupClient) Departments(ctx context.Context) []model.Department {
	var departments []model.Department
	if _, err := l.c.get(ctx, "/api/departments", nil, &departments); err != nil {
		l.c.logger.Printf("WARNING: department lookup failed, using empty list: %v", err)
		return []model.Department{}
	}
	return departments
}

// EmployeesByGroup returns the employees of one department, or an empty list
// if the lookup fails.
func (l *LookupClient) EmployeesByGroup(ctx context.Context, grpID int) []model.Employee {
	query := url.Values{"grp_id": []string{strconv.Itoa(grpID)}}
	var employees []model.Employee
	if _, err := l.c.get(ctx, "/api/employees/by-group", query, &employees); err != nil {
		l.c.logger.Printf("WARNING: employee lookup failed for group %d, using empty list: %v", grpID, err)
		return []model.Employee{}
	}
	return employees
}

// EmployeePicker backs the employee dropdown of the allocation form. Each
// Load supersedes earlier in-flight loads: when department selections arrive
// faster than lookups complete, only the newest response lands, regardless of
// the order responses come back in.
type EmployeePicker struct {
	lookups *LookupClient

	seq atomic.Uint64

	mu        sync.Mutex
	employees []model.Employee
}

// NewEmployeePicker creates a picker on top of the lookup client.
func (l *LookupClient) NewEmployeePicker() *EmployeePicker {
	return &EmployeePicker{lookups: l}
}

// Load fetches the employees for a department. The stored list is emptied
// before the fetch starts, so the previous department's employees are never
// visible while the new list is in flight. The bool result reports whether
// this load is still current; a superseded load returns false and leaves the
// picker untouched.
func (p *EmployeePicker) Load(ctx context.Context, grpID int) ([]model.Employee, bool) {
	token := p.seq.Add(1)

	p.mu.Lock()
	if token == p.seq.Load() {
		p.employees = nil
	}
	p.mu.Unlock()

	employees := p.lookups.EmployeesByGroup(ctx, grpID)

	if token != p.seq.Load() {
		// A newer load started while this one was in flight.
		return nil, false
	}

	p.mu.Lock()
	p.employees = employees
	p.mu.Unlock()

	return employees, true
}

// Clear empties the picker and invalidates any in-flight loads, for when the
// allocation target switches away from employees.
func (p *EmployeePicker) Clear() {
	p.seq.Add(1)
	p.mu.Lock()
	p.employees = nil
	p.mu.Unlock()
}

// Employees returns the currently loaded employee list.
func (p *EmployeePicker) Employees() []model.Employee {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.employees
}
