package timesheet

import (
	"context"
	"encoding/json"
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

func (s *PGStore) Create(ctx context.Context, sheet Timesheet) error {
	entries, history, err := marshalLogs(sheet)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO timesheets (id, employee_id, manager_id, week_start, entries, total_hours, status, manager_comment, history, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
  `, sheet.ID, sheet.EmployeeID, sheet.ManagerID, sheet.WeekStart, entries, sheet.TotalHours, sheet.Status, sheet.ManagerComment, history, sheet.CreatedAt, sheet.UpdatedAt)
	return err
}

func (s *PGStore) Update(ctx context.Context, sheet Timesheet) error {
	entries, history, err := marshalLogs(sheet)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    UPDATE timesheets
    SET entries = $2, total_hours = $3, status = $4, manager_comment = $5, history = $6, updated_at = $7
    WHERE id = $1
  `, sheet.ID, entries, sheet.TotalHours, sheet.Status, sheet.ManagerComment, history, sheet.UpdatedAt)
	return err
}

func (s *PGStore) Get(ctx context.Context, id string) (Timesheet, bool, error) {
	row := s.DB.QueryRow(ctx, selectColumns+" FROM timesheets WHERE id = $1", id)
	return scanSheet(row)
}

func (s *PGStore) GetByWeek(ctx context.Context, employeeID string, weekStart time.Time) (Timesheet, bool, error) {
	row := s.DB.QueryRow(ctx, selectColumns+" FROM timesheets WHERE employee_id = $1 AND week_start = $2", employeeID, weekStart)
	return scanSheet(row)
}

func (s *PGStore) List(ctx context.Context, filter Filter) ([]Timesheet, error) {
	query := selectColumns + " FROM timesheets WHERE 1 = 1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.ManagerID != "" {
		args = append(args, filter.ManagerID)
		query += fmt.Sprintf(" AND manager_id = $%d", len(args))
	}
	if !filter.WeekStart.IsZero() {
		args = append(args, filter.WeekStart)
		query += fmt.Sprintf(" AND week_start = $%d", len(args))
	}
	query += " ORDER BY week_start DESC, employee_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []Timesheet
	for rows.Next() {
		sheet, ok, err := scanSheet(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			sheets = append(sheets, sheet)
		}
	}
	return sheets, rows.Err()
}

func (s *PGStore) CountByStatus(ctx context.Context, status, managerID string) (int, error) {
	query := "SELECT COUNT(1) FROM timesheets WHERE status = $1"
	args := []any{status}
	if managerID != "" {
		args = append(args, managerID)
		query += " AND manager_id = $2"
	}
	var count int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

const selectColumns = "SELECT id, employee_id, manager_id, week_start, entries, total_hours, status, manager_comment, history, created_at, updated_at"

func marshalLogs(sheet Timesheet) ([]byte, []byte, error) {
	entries, err := json.Marshal(sheet.Entries)
	if err != nil {
		return nil, nil, err
	}
	history, err := json.Marshal(sheet.History)
	if err != nil {
		return nil, nil, err
	}
	return entries, history, nil
}

func scanSheet(row pgx.Row) (Timesheet, bool, error) {
	var sheet Timesheet
	var entries, history []byte
	err := row.Scan(&sheet.ID, &sheet.EmployeeID, &sheet.ManagerID, &sheet.WeekStart, &entries, &sheet.TotalHours, &sheet.Status, &sheet.ManagerComment, &history, &sheet.CreatedAt, &sheet.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Timesheet{}, false, nil
	}
	if err != nil {
		return Timesheet{}, false, err
	}
	if err := json.Unmarshal(entries, &sheet.Entries); err != nil {
		return Timesheet{}, false, err
	}
	if err := json.Unmarshal(history, &sheet.History); err != nil {
		return Timesheet{}, false, err
	}
	return sheet, true, nil
}
