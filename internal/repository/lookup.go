package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hr-administration-api/internal/model"
)

// LookupRepository serves the small reference datasets behind the allocation
// form: departments and the employees belonging to one.
type LookupRepository interface {
	GetDepartments(ctx context.Context) ([]model.Department, error)
	GetEmployeesByGroup(ctx context.Context, grpID int) ([]model.Employee, error)
}

type lookupRepository struct {
	DB *sql.DB
}

// NewLookupRepository creates a new LookupRepository.
func NewLookupRepository(db *sql.DB) LookupRepository {
	return &lookupRepository{DB: db}
}

func (r *lookupRepository) GetDepartments(ctx context.Context) ([]model.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT grp_id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.GrpID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return departments, nil
}

func (r *lookupRepository) GetEmployeesByGroup(ctx context.Context, grpID int) ([]model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx,
		`SELECT employee_id, name, grp_id FROM employees WHERE grp_id = $1 ORDER BY name`, grpID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.EmployeeID, &e.Name, &e.GrpID); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return employees, nil
}
