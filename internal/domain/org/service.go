package org

import (
	"context"
	"strings"
	"time"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock overrides the service clock; tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Set replaces the employee's manager assignment. HR only.
func (s *Service) Set(ctx context.Context, who actor.Actor, employeeID, managerID string) (Mapping, error) {
	if !who.IsHRAdmin() {
		return Mapping{}, apperr.Forbidden("hr_admin role required")
	}
	return s.upsert(ctx, employeeID, managerID)
}

// SetByManager is the timesheet-side variant: managers may also assign, HR
// always may.
func (s *Service) SetByManager(ctx context.Context, who actor.Actor, employeeID, managerID string) (Mapping, error) {
	if !who.IsHRAdmin() && !who.IsManager() {
		return Mapping{}, apperr.Forbidden("hr_admin or manager role required")
	}
	return s.upsert(ctx, employeeID, managerID)
}

func (s *Service) upsert(ctx context.Context, employeeID, managerID string) (Mapping, error) {
	employeeID = strings.TrimSpace(employeeID)
	managerID = strings.TrimSpace(managerID)
	if employeeID == "" {
		return Mapping{}, apperr.InvalidInput("employee id is required")
	}
	if managerID == "" {
		return Mapping{}, apperr.InvalidInput("manager id is required")
	}
	mapping := Mapping{EmployeeID: employeeID, ManagerID: managerID, UpdatedAt: s.now().UTC()}
	if err := s.store.Upsert(ctx, mapping); err != nil {
		return Mapping{}, err
	}
	return mapping, nil
}

// ManagerFor resolves the current manager for an employee.
func (s *Service) ManagerFor(ctx context.Context, employeeID string) (string, bool, error) {
	return s.store.ManagerFor(ctx, employeeID)
}

func (s *Service) List(ctx context.Context, who actor.Actor) ([]Mapping, error) {
	if !who.IsHRAdmin() {
		return nil, apperr.Forbidden("hr_admin role required")
	}
	return s.store.List(ctx)
}
