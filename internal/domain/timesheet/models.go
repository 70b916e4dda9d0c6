package timesheet

import "time"

const (
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

const (
	DecisionApprove = "approved"
	DecisionReject  = "rejected"
)

type Entry struct {
	Day   string  `json:"day"` // YYYY-MM-DD
	Hours float64 `json:"hours"`
}

// HistoryItem is one append-only status transition on a timesheet.
type HistoryItem struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	Comment string    `json:"comment,omitempty"`
}

// Timesheet is one employee's weekly submission. ManagerID freezes at first
// submission; an Approved timesheet is immutable, anything else may be
// resubmitted for the same week.
type Timesheet struct {
	ID             string        `json:"id"`
	EmployeeID     string        `json:"employeeId"`
	ManagerID      string        `json:"managerId"`
	WeekStart      time.Time     `json:"weekStartDate"`
	Entries        []Entry       `json:"entries"`
	TotalHours     float64       `json:"totalHours"`
	Status         string        `json:"status"`
	ManagerComment string        `json:"managerComment,omitempty"`
	History        []HistoryItem `json:"history"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
