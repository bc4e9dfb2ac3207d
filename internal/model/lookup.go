package model

// Department is read-only reference data for the allocation form.
type Department struct {
	GrpID int    `json:"grp_id"`
	Name  string `json:"name"`
}

// Employee is read-only reference data, always scoped to a department.
type Employee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	GrpID      int    `json:"grp_id"`
}
