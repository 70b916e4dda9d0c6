package leave

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/datainventdev-eng/hr-management/internal/platform/querier"
)

type PGStore struct {
	DB querier.Querier
}

func NewPGStore(db querier.Querier) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) CreateType(ctx context.Context, t LeaveType) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_types (id, name, paid, annual_limit, created_at)
    VALUES ($1, $2, $3, $4, $5)
  `, t.ID, t.Name, t.Paid, t.AnnualLimit, t.CreatedAt)
	return err
}

func (s *PGStore) GetType(ctx context.Context, id string) (LeaveType, bool, error) {
	var t LeaveType
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, paid, annual_limit, created_at
    FROM leave_types
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Name, &t.Paid, &t.AnnualLimit, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveType{}, false, nil
	}
	if err != nil {
		return LeaveType{}, false, err
	}
	return t, true, nil
}

func (s *PGStore) ListTypes(ctx context.Context) ([]LeaveType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, paid, annual_limit, created_at
    FROM leave_types
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []LeaveType
	for rows.Next() {
		var t LeaveType
		if err := rows.Scan(&t.ID, &t.Name, &t.Paid, &t.AnnualLimit, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (s *PGStore) GetAllocation(ctx context.Context, employeeID, leaveTypeID string) (Allocation, bool, error) {
	var allocation Allocation
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, leave_type_id, allocated, used, updated_at
    FROM leave_allocations
    WHERE employee_id = $1 AND leave_type_id = $2
  `, employeeID, leaveTypeID).Scan(&allocation.ID, &allocation.EmployeeID, &allocation.LeaveTypeID, &allocation.Allocated, &allocation.Used, &allocation.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Allocation{}, false, nil
	}
	if err != nil {
		return Allocation{}, false, err
	}
	return allocation, true, nil
}

func (s *PGStore) UpsertAllocation(ctx context.Context, allocation Allocation) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_allocations (id, employee_id, leave_type_id, allocated, used, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (employee_id, leave_type_id)
    DO UPDATE SET allocated = EXCLUDED.allocated, used = EXCLUDED.used, updated_at = EXCLUDED.updated_at
  `, allocation.ID, allocation.EmployeeID, allocation.LeaveTypeID, allocation.Allocated, allocation.Used, allocation.UpdatedAt)
	return err
}

func (s *PGStore) ListAllocations(ctx context.Context, employeeID string) ([]Allocation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, leave_type_id, allocated, used, updated_at
    FROM leave_allocations
    WHERE employee_id = $1
    ORDER BY leave_type_id
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []Allocation
	for rows.Next() {
		var allocation Allocation
		if err := rows.Scan(&allocation.ID, &allocation.EmployeeID, &allocation.LeaveTypeID, &allocation.Allocated, &allocation.Used, &allocation.UpdatedAt); err != nil {
			return nil, err
		}
		allocations = append(allocations, allocation)
	}
	return allocations, rows.Err()
}

func (s *PGStore) CreateRequest(ctx context.Context, request Request) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_requests (id, employee_id, manager_id, leave_type_id, start_date, end_date, days, reason, status, manager_comment, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
  `, request.ID, request.EmployeeID, request.ManagerID, request.LeaveTypeID, request.StartDate, request.EndDate, request.Days, request.Reason, request.Status, request.ManagerComment, request.CreatedAt)
	return err
}

func (s *PGStore) GetRequest(ctx context.Context, id string) (Request, bool, error) {
	var request Request
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, manager_id, leave_type_id, start_date, end_date, days, reason, status, manager_comment, created_at
    FROM leave_requests
    WHERE id = $1
  `, id).Scan(&request.ID, &request.EmployeeID, &request.ManagerID, &request.LeaveTypeID, &request.StartDate, &request.EndDate, &request.Days, &request.Reason, &request.Status, &request.ManagerComment, &request.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, false, nil
	}
	if err != nil {
		return Request{}, false, err
	}
	return request, true, nil
}

func (s *PGStore) UpdateRequest(ctx context.Context, request Request) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $2, manager_comment = $3
    WHERE id = $1
  `, request.ID, request.Status, request.ManagerComment)
	return err
}

func (s *PGStore) ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error) {
	query := `
    SELECT id, employee_id, manager_id, leave_type_id, start_date, end_date, days, reason, status, manager_comment, created_at
    FROM leave_requests
    WHERE 1 = 1
  `
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += " AND employee_id = $1"
	}
	if filter.ManagerID != "" {
		args = append(args, filter.ManagerID)
		if len(args) == 1 {
			query += " AND manager_id = $1"
		} else {
			query += " AND manager_id = $2"
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var request Request
		if err := rows.Scan(&request.ID, &request.EmployeeID, &request.ManagerID, &request.LeaveTypeID, &request.StartDate, &request.EndDate, &request.Days, &request.Reason, &request.Status, &request.ManagerComment, &request.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
