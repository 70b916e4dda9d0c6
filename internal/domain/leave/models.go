package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	DecisionApprove = "approved"
	DecisionReject  = "rejected"
)

type LeaveType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Paid        bool      `json:"paid"`
	AnnualLimit *float64  `json:"annualLimit,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Allocation tracks an employee's balance for one leave type. One row per
// (employee, leave type); re-allocation replaces Allocated without touching
// Used.
type Allocation struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	LeaveTypeID string    `json:"leaveTypeId"`
	Allocated   float64   `json:"allocated"`
	Used        float64   `json:"used"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Request is a leave request. ManagerID is snapshotted from the manager map
// at submission time and never re-resolved.
type Request struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employeeId"`
	ManagerID      string    `json:"managerId"`
	LeaveTypeID    string    `json:"leaveTypeId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Days           float64   `json:"days"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	ManagerComment string    `json:"managerComment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Balance joins an allocation with its leave type for balance listings.
type Balance struct {
	EmployeeID    string  `json:"employeeId"`
	LeaveTypeID   string  `json:"leaveTypeId"`
	LeaveTypeName string  `json:"leaveTypeName"`
	Allocated     float64 `json:"allocated"`
	Used          float64 `json:"used"`
	Remaining     float64 `json:"remaining"`
}
