package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

// ManagerDirectory resolves an employee's current manager. Satisfied by
// org.Service.
type ManagerDirectory interface {
	ManagerFor(ctx context.Context, employeeID string) (string, bool, error)
}

type Service struct {
	store     StoreAPI
	directory ManagerDirectory
	ids       ids.Generator
	now       func() time.Time
}

func NewService(store StoreAPI, directory ManagerDirectory, gen ids.Generator) *Service {
	return &Service{store: store, directory: directory, ids: gen, now: time.Now}
}

// WithClock overrides the service clock; tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateTypeInput struct {
	Name        string   `json:"name"`
	Paid        bool     `json:"paid"`
	AnnualLimit *float64 `json:"annualLimit,omitempty"`
}

func (s *Service) CreateType(ctx context.Context, who actor.Actor, in CreateTypeInput) (LeaveType, []effects.Effect, error) {
	if !who.IsHRAdmin() {
		return LeaveType{}, nil, apperr.Forbidden("hr_admin role required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return LeaveType{}, nil, apperr.InvalidInput("leave type name is required")
	}

	created := LeaveType{
		ID:          s.ids.New(),
		Name:        strings.TrimSpace(in.Name),
		Paid:        in.Paid,
		AnnualLimit: in.AnnualLimit,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateType(ctx, created); err != nil {
		return LeaveType{}, nil, err
	}

	fx := []effects.Effect{
		effects.Record(who.SubjectID, "leave.type.created", "leave_type", created.ID, map[string]any{"name": created.Name, "paid": created.Paid}),
	}
	return created, fx, nil
}

func (s *Service) ListTypes(ctx context.Context) ([]LeaveType, error) {
	return s.store.ListTypes(ctx)
}

type AllocateInput struct {
	EmployeeID  string  `json:"employeeId"`
	LeaveTypeID string  `json:"leaveTypeId"`
	Allocated   float64 `json:"allocated"`
}

// Allocate upserts the allocation for (employee, leave type). An existing
// allocation keeps its Used counter; only Allocated is replaced.
func (s *Service) Allocate(ctx context.Context, who actor.Actor, in AllocateInput) (Allocation, []effects.Effect, error) {
	if !who.IsHRAdmin() {
		return Allocation{}, nil, apperr.Forbidden("hr_admin role required")
	}
	if strings.TrimSpace(in.EmployeeID) == "" {
		return Allocation{}, nil, apperr.InvalidInput("employee id is required")
	}
	if _, ok, err := s.store.GetType(ctx, in.LeaveTypeID); err != nil {
		return Allocation{}, nil, err
	} else if !ok {
		return Allocation{}, nil, apperr.InvalidInput("unknown leave type")
	}

	allocation, ok, err := s.store.GetAllocation(ctx, in.EmployeeID, in.LeaveTypeID)
	if err != nil {
		return Allocation{}, nil, err
	}
	if ok {
		allocation.Allocated = in.Allocated
	} else {
		allocation = Allocation{
			ID:          s.ids.New(),
			EmployeeID:  in.EmployeeID,
			LeaveTypeID: in.LeaveTypeID,
			Allocated:   in.Allocated,
			Used:        0,
		}
	}
	allocation.UpdatedAt = s.now().UTC()
	if err := s.store.UpsertAllocation(ctx, allocation); err != nil {
		return Allocation{}, nil, err
	}

	fx := []effects.Effect{
		effects.Record(who.SubjectID, "leave.allocation.set", "leave_allocation", allocation.ID, map[string]any{
			"employeeId": allocation.EmployeeID, "leaveTypeId": allocation.LeaveTypeID, "allocated": allocation.Allocated,
		}),
	}
	return allocation, fx, nil
}

type RequestInput struct {
	LeaveTypeID string    `json:"leaveTypeId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Reason      string    `json:"reason,omitempty"`
}

// Request submits a leave request for the acting employee. The manager is
// resolved from the directory now and frozen on the request. All validation
// happens before the request row exists; effects are emitted only for a
// persisted request.
func (s *Service) Request(ctx context.Context, who actor.Actor, in RequestInput) (Request, []effects.Effect, error) {
	if !who.IsEmployee() {
		return Request{}, nil, apperr.Forbidden("employee role required")
	}

	start := MidnightUTC(in.StartDate)
	end := MidnightUTC(in.EndDate)
	days, err := CalculateDays(start, end)
	if err != nil {
		return Request{}, nil, apperr.InvalidInput("end date must not be before start date")
	}

	leaveType, ok, err := s.store.GetType(ctx, in.LeaveTypeID)
	if err != nil {
		return Request{}, nil, err
	}
	if !ok {
		return Request{}, nil, apperr.InvalidInput("unknown leave type")
	}

	managerID, ok, err := s.directory.ManagerFor(ctx, who.SubjectID)
	if err != nil {
		return Request{}, nil, err
	}
	if !ok {
		return Request{}, nil, apperr.InvalidInput("no manager assigned")
	}

	if leaveType.Paid {
		allocation, ok, err := s.store.GetAllocation(ctx, who.SubjectID, in.LeaveTypeID)
		if err != nil {
			return Request{}, nil, err
		}
		if !ok {
			return Request{}, nil, apperr.InvalidInput("no leave allocation for this type")
		}
		if allocation.Allocated-allocation.Used < days {
			return Request{}, nil, apperr.InvalidInputf("insufficient leave balance: %.1f day(s) remaining", allocation.Allocated-allocation.Used)
		}
	}

	request := Request{
		ID:          s.ids.New(),
		EmployeeID:  who.SubjectID,
		ManagerID:   managerID,
		LeaveTypeID: leaveType.ID,
		StartDate:   start,
		EndDate:     end,
		Days:        days,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      StatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateRequest(ctx, request); err != nil {
		return Request{}, nil, err
	}

	fx := []effects.Effect{
		effects.Notify(managerID, effects.NotificationLeave, "Leave request submitted",
			fmt.Sprintf("%s requested %.1f day(s) of %s", request.EmployeeID, request.Days, leaveType.Name)),
		effects.Record(who.SubjectID, "leave.request.submitted", "leave_request", request.ID, map[string]any{
			"leaveTypeId": request.LeaveTypeID, "days": request.Days,
		}),
	}
	return request, fx, nil
}

// List scopes request listings by role: employees see their own, managers
// their direct reports' requests, hr_admin everything (optionally filtered).
func (s *Service) List(ctx context.Context, who actor.Actor, filter RequestFilter) ([]Request, error) {
	switch {
	case who.IsEmployee():
		filter = RequestFilter{EmployeeID: who.SubjectID}
	case who.IsManager():
		filter = RequestFilter{ManagerID: who.SubjectID}
	case who.IsHRAdmin():
		// filter taken as given
	default:
		return nil, apperr.Forbidden("unknown role")
	}
	return s.store.ListRequests(ctx, filter)
}

type DecideInput struct {
	RequestID      string `json:"requestId"`
	Decision       string `json:"decision"`
	ManagerComment string `json:"managerComment,omitempty"`
}

// Decide resolves a pending request. Only the manager frozen on the request
// may decide it; approval consumes the allocation balance.
func (s *Service) Decide(ctx context.Context, who actor.Actor, in DecideInput) (Request, []effects.Effect, error) {
	if !who.IsManager() {
		return Request{}, nil, apperr.Forbidden("manager role required")
	}

	decision := strings.ToLower(strings.TrimSpace(in.Decision))
	if decision != DecisionApprove && decision != DecisionReject {
		return Request{}, nil, apperr.InvalidInput("decision must be approved or rejected")
	}

	request, ok, err := s.store.GetRequest(ctx, in.RequestID)
	if err != nil {
		return Request{}, nil, err
	}
	if !ok {
		return Request{}, nil, apperr.NotFound("leave request not found")
	}
	if request.ManagerID != who.SubjectID {
		return Request{}, nil, apperr.Forbidden("not the assigned manager for this request")
	}
	if request.Status != StatusPending {
		return Request{}, nil, apperr.InvalidState("leave request already decided")
	}

	request.Status = decision
	request.ManagerComment = strings.TrimSpace(in.ManagerComment)
	if err := s.store.UpdateRequest(ctx, request); err != nil {
		return Request{}, nil, err
	}

	if decision == DecisionApprove {
		if err := s.consumeBalance(ctx, request); err != nil {
			return Request{}, nil, err
		}
	}

	action := "leave.request.approved"
	title := "Leave request approved"
	if decision == DecisionReject {
		action = "leave.request.rejected"
		title = "Leave request rejected"
	}
	fx := []effects.Effect{
		effects.Notify(request.EmployeeID, effects.NotificationLeave, title,
			fmt.Sprintf("Your leave request for %.1f day(s) was %s", request.Days, decision)),
		effects.Record(who.SubjectID, action, "leave_request", request.ID, map[string]any{
			"employeeId": request.EmployeeID, "days": request.Days,
		}),
	}
	return request, fx, nil
}

// consumeBalance adds the approved days to the allocation's Used counter.
// A vanished allocation is a no-op; the approval itself stands.
func (s *Service) consumeBalance(ctx context.Context, request Request) error {
	allocation, ok, err := s.store.GetAllocation(ctx, request.EmployeeID, request.LeaveTypeID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	allocation.Used += request.Days
	allocation.UpdatedAt = s.now().UTC()
	return s.store.UpsertAllocation(ctx, allocation)
}

// Balances returns each allocation for the target employee joined with the
// leave type name and the remaining balance. Employees always resolve to
// themselves; other roles must name an employee.
func (s *Service) Balances(ctx context.Context, who actor.Actor, employeeID string) ([]Balance, error) {
	target := strings.TrimSpace(employeeID)
	if who.IsEmployee() {
		target = who.SubjectID
	}
	if target == "" {
		return nil, apperr.InvalidInput("employee id required")
	}

	allocations, err := s.store.ListAllocations(ctx, target)
	if err != nil {
		return nil, err
	}

	balances := make([]Balance, 0, len(allocations))
	for _, allocation := range allocations {
		name := ""
		if leaveType, ok, err := s.store.GetType(ctx, allocation.LeaveTypeID); err != nil {
			return nil, err
		} else if ok {
			name = leaveType.Name
		}
		balances = append(balances, Balance{
			EmployeeID:    allocation.EmployeeID,
			LeaveTypeID:   allocation.LeaveTypeID,
			LeaveTypeName: name,
			Allocated:     allocation.Allocated,
			Used:          allocation.Used,
			Remaining:     allocation.Allocated - allocation.Used,
		})
	}
	return balances, nil
}
