package org

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

func (s *PGStore) Upsert(ctx context.Context, mapping Mapping) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_manager_map (employee_id, manager_id, updated_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (employee_id) DO UPDATE SET manager_id = EXCLUDED.manager_id, updated_at = EXCLUDED.updated_at
  `, mapping.EmployeeID, mapping.ManagerID, mapping.UpdatedAt)
	return err
}

func (s *PGStore) ManagerFor(ctx context.Context, employeeID string) (string, bool, error) {
	var managerID string
	err := s.DB.QueryRow(ctx, "SELECT manager_id FROM employee_manager_map WHERE employee_id = $1", employeeID).Scan(&managerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return managerID, true, nil
}

func (s *PGStore) List(ctx context.Context) ([]Mapping, error) {
	rows, err := s.DB.Query(ctx, "SELECT employee_id, manager_id, updated_at FROM employee_manager_map ORDER BY employee_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Mapping
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.EmployeeID, &m.ManagerID, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
