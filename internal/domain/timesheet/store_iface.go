package timesheet

import (
	"context"
	"time"
)

// Filter narrows timesheet listings; zero values match everything.
type Filter struct {
	EmployeeID string
	ManagerID  string
	WeekStart  time.Time
}

type StoreAPI interface {
	Create(ctx context.Context, sheet Timesheet) error
	Update(ctx context.Context, sheet Timesheet) error
	Get(ctx context.Context, id string) (Timesheet, bool, error)
	GetByWeek(ctx context.Context, employeeID string, weekStart time.Time) (Timesheet, bool, error)
	List(ctx context.Context, filter Filter) ([]Timesheet, error)
	CountByStatus(ctx context.Context, status, managerID string) (int, error)
}
