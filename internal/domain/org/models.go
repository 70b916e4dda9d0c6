package org

import "time"

// Mapping is the single active manager assignment for an employee. The
// latest write wins; workflows snapshot the manager id at submission time
// and never follow later changes.
type Mapping struct {
	EmployeeID string    `json:"employeeId"`
	ManagerID  string    `json:"managerId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
