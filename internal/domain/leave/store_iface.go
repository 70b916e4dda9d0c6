package leave

import "context"

// RequestFilter narrows request listings; empty fields match everything.
type RequestFilter struct {
	EmployeeID string
	ManagerID  string
}

type StoreAPI interface {
	CreateType(ctx context.Context, t LeaveType) error
	GetType(ctx context.Context, id string) (LeaveType, bool, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)

	GetAllocation(ctx context.Context, employeeID, leaveTypeID string) (Allocation, bool, error)
	UpsertAllocation(ctx context.Context, allocation Allocation) error
	ListAllocations(ctx context.Context, employeeID string) ([]Allocation, error)

	CreateRequest(ctx context.Context, request Request) error
	GetRequest(ctx context.Context, id string) (Request, bool, error)
	UpdateRequest(ctx context.Context, request Request) error
	ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error)
}
