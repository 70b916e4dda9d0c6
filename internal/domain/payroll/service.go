package payroll

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

type Service struct {
	store      StoreAPI
	ids        ids.Generator
	now        func() time.Time
	payslipDir string

	// mu serializes the read-check-write sequences of RunDraft and
	// FinalizeMonth so two concurrent runs cannot race past the
	// finalized-check for the same (employee, month).
	mu sync.Mutex
}

func NewService(store StoreAPI, gen ids.Generator) *Service {
	return &Service{store: store, ids: gen, now: time.Now}
}

// WithClock overrides the service clock; tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type AddComponentInput struct {
	EmployeeID    string    `json:"employeeId"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
	EffectiveFrom time.Time `json:"effectiveFrom"`
}

func (s *Service) AddComponent(ctx context.Context, who actor.Actor, in AddComponentInput) (Component, []effects.Effect, error) {
	if !who.IsHRAdmin() {
		return Component{}, nil, apperr.Forbidden("hr_admin role required")
	}
	if strings.TrimSpace(in.EmployeeID) == "" {
		return Component{}, nil, apperr.InvalidInput("employee id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return Component{}, nil, apperr.InvalidInput("component name is required")
	}
	if in.Amount < 0 {
		return Component{}, nil, apperr.InvalidInput("amount must not be negative")
	}
	componentType := strings.ToLower(strings.TrimSpace(in.Type))
	if componentType != ComponentEarning && componentType != ComponentDeduction {
		return Component{}, nil, apperr.InvalidInput("type must be earning or deduction")
	}

	component := Component{
		ID:            s.ids.New(),
		EmployeeID:    strings.TrimSpace(in.EmployeeID),
		Type:          componentType,
		Name:          strings.TrimSpace(in.Name),
		Amount:        in.Amount,
		EffectiveFrom: in.EffectiveFrom,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.CreateComponent(ctx, component); err != nil {
		return Component{}, nil, err
	}

	fx := []effects.Effect{
		effects.Record(who.SubjectID, "payroll.component.added", "salary_component", component.ID, map[string]any{
			"employeeId": component.EmployeeID, "type": component.Type, "amount": component.Amount,
		}),
	}
	return component, fx, nil
}

func (s *Service) ListComponents(ctx context.Context, who actor.Actor, employeeID string) ([]Component, error) {
	target := strings.TrimSpace(employeeID)
	if who.IsEmployee() {
		target = who.SubjectID
	}
	if target == "" {
		return nil, apperr.InvalidInput("employee id required")
	}
	return s.store.ListComponents(ctx, target)
}

type RunInput struct {
	Month       string   `json:"month"`
	EmployeeIDs []string `json:"employeeIds"`
}

// RunDraft computes (or idempotently recomputes) Draft entries for the
// given employees. The batch is processed sequentially and fails fast:
// drafts already written for earlier ids in the same call are kept when a
// later id fails.
func (s *Service) RunDraft(ctx context.Context, who actor.Actor, in RunInput) ([]Entry, []effects.Effect, error) {
	if !who.IsHRAdmin() {
		return nil, nil, apperr.Forbidden("hr_admin role required")
	}
	month, err := parseMonth(in.Month)
	if err != nil {
		return nil, nil, err
	}
	if len(in.EmployeeIDs) == 0 {
		return nil, nil, apperr.InvalidInput("employee ids are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		entries []Entry
		fx      []effects.Effect
	)
	for _, employeeID := range in.EmployeeIDs {
		if _, ok, err := s.store.GetEntry(ctx, employeeID, month, StatusFinalized); err != nil {
			return entries, fx, err
		} else if ok {
			return entries, fx, apperr.InvalidState("already finalized")
		}

		components, err := s.store.ListComponents(ctx, employeeID)
		if err != nil {
			return entries, fx, err
		}
		gross, deductions, net := ComputeTotals(components)

		entry := Entry{
			EmployeeID: employeeID,
			Month:      month,
			Gross:      gross,
			Deductions: deductions,
			Net:        net,
			Status:     StatusDraft,
			UpdatedAt:  s.now().UTC(),
		}
		if err := s.store.SaveDraft(ctx, entry); err != nil {
			return entries, fx, err
		}
		entries = append(entries, entry)
		fx = append(fx, effects.Record(who.SubjectID, "payroll.draft.saved", "payroll_entry", entryID(employeeID, month), map[string]any{
			"month": month, "net": net,
		}))
	}
	return entries, fx, nil
}

// FinalizeMonth flips each employee's Draft to Finalized and materializes a
// payslip if one does not exist yet. Like RunDraft it is fail-fast and not
// atomic across the batch; effects for already-finalized employees in the
// same call are still returned on failure.
func (s *Service) FinalizeMonth(ctx context.Context, who actor.Actor, in RunInput) ([]Entry, []effects.Effect, error) {
	if !who.IsHRAdmin() {
		return nil, nil, apperr.Forbidden("hr_admin role required")
	}
	month, err := parseMonth(in.Month)
	if err != nil {
		return nil, nil, err
	}
	if len(in.EmployeeIDs) == 0 {
		return nil, nil, apperr.InvalidInput("employee ids are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		entries []Entry
		fx      []effects.Effect
	)
	for _, employeeID := range in.EmployeeIDs {
		// Finalized wins over draft-missing: a repeated finalize must
		// surface as InvalidState, not as a vanished draft.
		if _, ok, err := s.store.GetEntry(ctx, employeeID, month, StatusFinalized); err != nil {
			return entries, fx, err
		} else if ok {
			return entries, fx, apperr.InvalidState("already finalized")
		}

		draft, ok, err := s.store.GetEntry(ctx, employeeID, month, StatusDraft)
		if err != nil {
			return entries, fx, err
		}
		if !ok {
			return entries, fx, apperr.InvalidInput("draft not found")
		}

		now := s.now().UTC()
		if err := s.store.MarkFinalized(ctx, employeeID, month, now); err != nil {
			return entries, fx, err
		}
		draft.Status = StatusFinalized
		draft.UpdatedAt = now

		if _, ok, err := s.store.GetPayslipForMonth(ctx, employeeID, month); err != nil {
			return entries, fx, err
		} else if !ok {
			payslip := Payslip{
				ID:         s.ids.New(),
				EmployeeID: employeeID,
				Month:      month,
				Gross:      draft.Gross,
				Deductions: draft.Deductions,
				Net:        draft.Net,
				CreatedAt:  now,
			}
			if err := s.store.CreatePayslip(ctx, payslip); err != nil {
				return entries, fx, err
			}
		}

		entries = append(entries, draft)
		fx = append(fx,
			effects.Notify(employeeID, effects.NotificationPayroll, "Payslip available",
				fmt.Sprintf("Your payslip for %s is available", month)),
			effects.Record(who.SubjectID, "payroll.finalized", "payroll_entry", entryID(employeeID, month), map[string]any{
				"month": month, "net": draft.Net,
			}),
		)
	}
	return entries, fx, nil
}

// ListEntries is role scoped: employees see only their own entries, other
// roles may filter freely.
func (s *Service) ListEntries(ctx context.Context, who actor.Actor, filter EntryFilter) ([]Entry, error) {
	if who.IsEmployee() {
		filter.EmployeeID = who.SubjectID
	}
	return s.store.ListEntries(ctx, filter)
}

func (s *Service) ListPayslips(ctx context.Context, who actor.Actor, filter PayslipFilter) ([]Payslip, error) {
	if who.IsEmployee() {
		filter.EmployeeID = who.SubjectID
	}
	return s.store.ListPayslips(ctx, filter)
}

// GetPayslip enforces that employees only read their own payslips.
func (s *Service) GetPayslip(ctx context.Context, who actor.Actor, payslipID string) (Payslip, error) {
	payslip, ok, err := s.store.GetPayslip(ctx, payslipID)
	if err != nil {
		return Payslip{}, err
	}
	if !ok {
		return Payslip{}, apperr.NotFound("payslip not found")
	}
	if who.IsEmployee() && payslip.EmployeeID != who.SubjectID {
		return Payslip{}, apperr.Forbidden("not your payslip")
	}
	return payslip, nil
}

// MonthlySummary aggregates finalized entries only.
func (s *Service) MonthlySummary(ctx context.Context, who actor.Actor, month string) (Summary, error) {
	if !who.IsHRAdmin() {
		return Summary{}, apperr.Forbidden("hr_admin role required")
	}
	normalized, err := parseMonth(month)
	if err != nil {
		return Summary{}, err
	}

	entries, err := s.store.ListEntries(ctx, EntryFilter{Month: normalized, Status: StatusFinalized})
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Month: normalized}
	for _, entry := range entries {
		summary.TotalGross += entry.Gross
		summary.TotalDeductions += entry.Deductions
		summary.TotalNet += entry.Net
		summary.EmployeeCount++
	}
	return summary, nil
}

func parseMonth(month string) (string, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", apperr.InvalidInput("month must be in YYYY-MM format")
	}
	return month, nil
}

func entryID(employeeID, month string) string {
	return employeeID + ":" + month
}
