package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/datainventdev-eng/hr-management/internal/platform/querier"
)

type PGStore struct {
	DB querier.Querier
}

func NewPGStore(db querier.Querier) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) CreateComponent(ctx context.Context, component Component) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO salary_components (id, employee_id, component_type, name, amount, effective_from, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
  `, component.ID, component.EmployeeID, component.Type, component.Name,
		component.Amount, component.EffectiveFrom, component.CreatedAt)
	return err
}

func (s *PGStore) ListComponents(ctx context.Context, employeeID string) ([]Component, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, component_type, name, amount, effective_from, created_at
    FROM salary_components
    WHERE employee_id = $1
    ORDER BY created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []Component
	for rows.Next() {
		var c Component
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Type, &c.Name, &c.Amount, &c.EffectiveFrom, &c.CreatedAt); err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (s *PGStore) GetEntry(ctx context.Context, employeeID, month, status string) (Entry, bool, error) {
	var e Entry
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, month, gross, deductions, net, status, updated_at
    FROM payroll_entries
    WHERE employee_id = $1 AND month = $2 AND status = $3
  `, employeeID, month, status).Scan(&e.EmployeeID, &e.Month, &e.Gross, &e.Deductions, &e.Net, &e.Status, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (s *PGStore) SaveDraft(ctx context.Context, entry Entry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_entries (employee_id, month, gross, deductions, net, status, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (employee_id, month, status)
    DO UPDATE SET gross = $3, deductions = $4, net = $5, updated_at = $7
  `, entry.EmployeeID, entry.Month, entry.Gross, entry.Deductions, entry.Net, StatusDraft, entry.UpdatedAt)
	return err
}

func (s *PGStore) MarkFinalized(ctx context.Context, employeeID, month string, at time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_entries
    SET status = $3, updated_at = $4
    WHERE employee_id = $1 AND month = $2 AND status = $5
  `, employeeID, month, StatusFinalized, at, StatusDraft)
	return err
}

func (s *PGStore) ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	query := `
    SELECT employee_id, month, gross, deductions, net, status, updated_at
    FROM payroll_entries
    WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Month != "" {
		args = append(args, filter.Month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY month DESC, employee_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.EmployeeID, &e.Month, &e.Gross, &e.Deductions, &e.Net, &e.Status, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PGStore) CreatePayslip(ctx context.Context, payslip Payslip) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payslips (id, employee_id, month, gross, deductions, net, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
  `, payslip.ID, payslip.EmployeeID, payslip.Month, payslip.Gross, payslip.Deductions, payslip.Net, payslip.CreatedAt)
	return err
}

func (s *PGStore) GetPayslip(ctx context.Context, id string) (Payslip, bool, error) {
	var p Payslip
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, month, gross, deductions, net, created_at
    FROM payslips
    WHERE id = $1
  `, id).Scan(&p.ID, &p.EmployeeID, &p.Month, &p.Gross, &p.Deductions, &p.Net, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, false, nil
	}
	if err != nil {
		return Payslip{}, false, err
	}
	return p, true, nil
}

func (s *PGStore) GetPayslipForMonth(ctx context.Context, employeeID, month string) (Payslip, bool, error) {
	var p Payslip
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, month, gross, deductions, net, created_at
    FROM payslips
    WHERE employee_id = $1 AND month = $2
  `, employeeID, month).Scan(&p.ID, &p.EmployeeID, &p.Month, &p.Gross, &p.Deductions, &p.Net, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, false, nil
	}
	if err != nil {
		return Payslip{}, false, err
	}
	return p, true, nil
}

func (s *PGStore) ListPayslips(ctx context.Context, filter PayslipFilter) ([]Payslip, error) {
	query := `
    SELECT id, employee_id, month, gross, deductions, net, created_at
    FROM payslips
    WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Month != "" {
		args = append(args, filter.Month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	query += " ORDER BY month DESC, employee_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []Payslip
	for rows.Next() {
		var p Payslip
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Month, &p.Gross, &p.Deductions, &p.Net, &p.CreatedAt); err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}
