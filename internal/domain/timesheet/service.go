package timesheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/domain/leave"
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

type SubmitInput struct {
	WeekStart time.Time `json:"weekStartDate"`
	Entries   []Entry   `json:"entries"`
}

// Submit creates or resubmits the week's timesheet for the acting employee.
// Resubmission overwrites entries and re-enters Submitted unless the sheet
// is already Approved; the history log is only ever appended to.
func (s *Service) Submit(ctx context.Context, who actor.Actor, in SubmitInput) (Timesheet, []effects.Effect, error) {
	if !who.IsEmployee() {
		return Timesheet{}, nil, apperr.Forbidden("employee role required")
	}
	if len(in.Entries) == 0 {
		return Timesheet{}, nil, apperr.InvalidInput("at least one entry is required")
	}

	total := 0.0
	for _, entry := range in.Entries {
		if entry.Hours < 0 || entry.Hours > 24 {
			return Timesheet{}, nil, apperr.InvalidInputf("hours for %s must be between 0 and 24", entry.Day)
		}
		total += entry.Hours
	}

	weekStart := leave.MidnightUTC(in.WeekStart)
	if weekStart.IsZero() {
		return Timesheet{}, nil, apperr.InvalidInput("week start date is required")
	}

	managerID, ok, err := s.directory.ManagerFor(ctx, who.SubjectID)
	if err != nil {
		return Timesheet{}, nil, err
	}
	if !ok {
		return Timesheet{}, nil, apperr.InvalidInput("no manager assigned")
	}

	now := s.now().UTC()
	existing, found, err := s.store.GetByWeek(ctx, who.SubjectID, weekStart)
	if err != nil {
		return Timesheet{}, nil, err
	}

	if found {
		if existing.Status == StatusApproved {
			return Timesheet{}, nil, apperr.InvalidState("cannot edit an approved timesheet")
		}
		existing.Entries = in.Entries
		existing.TotalHours = total
		existing.Status = StatusSubmitted
		existing.ManagerComment = ""
		existing.History = append(existing.History, HistoryItem{Status: StatusSubmitted, At: now})
		existing.UpdatedAt = now
		if err := s.store.Update(ctx, existing); err != nil {
			return Timesheet{}, nil, err
		}

		fx := []effects.Effect{
			effects.Notify(existing.ManagerID, effects.NotificationTimesheet, "Timesheet resubmitted",
				fmt.Sprintf("%s resubmitted the timesheet for week %s", existing.EmployeeID, weekStart.Format("2006-01-02"))),
			effects.Record(who.SubjectID, "timesheet.resubmitted", "timesheet", existing.ID, map[string]any{
				"weekStartDate": weekStart.Format("2006-01-02"), "totalHours": total,
			}),
		}
		return existing, fx, nil
	}

	sheet := Timesheet{
		ID:         s.ids.New(),
		EmployeeID: who.SubjectID,
		ManagerID:  managerID,
		WeekStart:  weekStart,
		Entries:    in.Entries,
		TotalHours: total,
		Status:     StatusSubmitted,
		History:    []HistoryItem{{Status: StatusSubmitted, At: now}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, sheet); err != nil {
		return Timesheet{}, nil, err
	}

	fx := []effects.Effect{
		effects.Notify(managerID, effects.NotificationTimesheet, "Timesheet submitted",
			fmt.Sprintf("%s submitted a timesheet for week %s", sheet.EmployeeID, weekStart.Format("2006-01-02"))),
		effects.Record(who.SubjectID, "timesheet.submitted", "timesheet", sheet.ID, map[string]any{
			"weekStartDate": weekStart.Format("2006-01-02"), "totalHours": total,
		}),
	}
	return sheet, fx, nil
}

// List scopes timesheet listings by role; any role may narrow by week.
func (s *Service) List(ctx context.Context, who actor.Actor, filter Filter) ([]Timesheet, error) {
	week := filter.WeekStart
	switch {
	case who.IsEmployee():
		filter = Filter{EmployeeID: who.SubjectID}
	case who.IsManager():
		filter = Filter{ManagerID: who.SubjectID}
	case who.IsHRAdmin():
		filter = Filter{EmployeeID: filter.EmployeeID}
	default:
		return nil, apperr.Forbidden("unknown role")
	}
	if !week.IsZero() {
		filter.WeekStart = leave.MidnightUTC(week)
	}
	return s.store.List(ctx, filter)
}

type DecideInput struct {
	TimesheetID    string `json:"timesheetId"`
	Decision       string `json:"decision"`
	ManagerComment string `json:"managerComment,omitempty"`
}

// Decide resolves a submitted timesheet. Only the manager frozen at first
// submission may decide it.
func (s *Service) Decide(ctx context.Context, who actor.Actor, in DecideInput) (Timesheet, []effects.Effect, error) {
	if !who.IsManager() {
		return Timesheet{}, nil, apperr.Forbidden("manager role required")
	}

	decision := strings.ToLower(strings.TrimSpace(in.Decision))
	if decision != DecisionApprove && decision != DecisionReject {
		return Timesheet{}, nil, apperr.InvalidInput("decision must be approved or rejected")
	}

	sheet, ok, err := s.store.Get(ctx, in.TimesheetID)
	if err != nil {
		return Timesheet{}, nil, err
	}
	if !ok {
		return Timesheet{}, nil, apperr.NotFound("timesheet not found")
	}
	if sheet.ManagerID != who.SubjectID {
		return Timesheet{}, nil, apperr.Forbidden("not the assigned manager for this timesheet")
	}
	if sheet.Status != StatusSubmitted {
		return Timesheet{}, nil, apperr.InvalidState("timesheet already decided")
	}

	now := s.now().UTC()
	comment := strings.TrimSpace(in.ManagerComment)
	sheet.Status = decision
	sheet.ManagerComment = comment
	sheet.History = append(sheet.History, HistoryItem{Status: decision, At: now, Comment: comment})
	sheet.UpdatedAt = now
	if err := s.store.Update(ctx, sheet); err != nil {
		return Timesheet{}, nil, err
	}

	action := "timesheet.approved"
	title := "Timesheet approved"
	if decision == DecisionReject {
		action = "timesheet.rejected"
		title = "Timesheet rejected"
	}
	fx := []effects.Effect{
		effects.Notify(sheet.EmployeeID, effects.NotificationTimesheet, title,
			fmt.Sprintf("Your timesheet for week %s was %s", sheet.WeekStart.Format("2006-01-02"), decision)),
		effects.Record(who.SubjectID, action, "timesheet", sheet.ID, map[string]any{
			"employeeId": sheet.EmployeeID, "weekStartDate": sheet.WeekStart.Format("2006-01-02"),
		}),
	}
	return sheet, fx, nil
}

// PendingCount returns the number of Submitted timesheets, optionally
// scoped to one manager. Consumed by dashboard aggregation.
func (s *Service) PendingCount(ctx context.Context, managerID string) (int, error) {
	return s.store.CountByStatus(ctx, StatusSubmitted, strings.TrimSpace(managerID))
}
