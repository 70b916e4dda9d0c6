package timesheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/domain/org"
	"github.com/datainventdev-eng/hr-management/internal/domain/timesheet"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

var week = time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*timesheet.Service, *org.Service) {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC) }
	directory := org.NewService(org.NewMemoryStore()).WithClock(clock)
	service := timesheet.NewService(timesheet.NewMemoryStore(), directory, ids.NewSequence("ts")).WithClock(clock)

	_, err := directory.Set(context.Background(), actor.HRAdmin("hr1"), "e1", "m1")
	require.NoError(t, err)
	return service, directory
}

func workWeek(hours float64) []timesheet.Entry {
	return []timesheet.Entry{
		{Day: "2026-02-16", Hours: hours},
		{Day: "2026-02-17", Hours: hours},
	}
}

func TestSubmitCreatesTimesheet(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()

	sheet, fx, err := service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusSubmitted, sheet.Status)
	assert.Equal(t, 16.0, sheet.TotalHours)
	assert.Equal(t, "m1", sheet.ManagerID)
	require.Len(t, sheet.History, 1)
	require.Len(t, fx, 2)
	assert.Equal(t, "timesheet.submitted", fx[1].Audit.Action)
	assert.Equal(t, "m1", fx[0].Notification.UserID)
}

func TestSubmitValidation(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()

	_, _, err := service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput, "empty entries")

	_, _, err = service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{
		WeekStart: week,
		Entries:   []timesheet.Entry{{Day: "2026-02-16", Hours: 25}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput, "hours above 24")

	_, _, err = service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{
		WeekStart: week,
		Entries:   []timesheet.Entry{{Day: "2026-02-16", Hours: -1}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput, "negative hours")

	_, _, err = service.Submit(ctx, actor.Manager("m1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = service.Submit(ctx, actor.Employee("e9"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput, "no manager mapping")
}

func TestResubmissionAfterRejectionKeepsHistory(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	employee := actor.Employee("e1")

	sheet, _, err := service.Submit(ctx, employee, timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)

	_, _, err = service.Decide(ctx, actor.Manager("m1"), timesheet.DecideInput{
		TimesheetID: sheet.ID, Decision: "rejected", ManagerComment: "missing Friday",
	})
	require.NoError(t, err)

	resubmitted, fx, err := service.Submit(ctx, employee, timesheet.SubmitInput{WeekStart: week, Entries: workWeek(7.5)})
	require.NoError(t, err)
	assert.Equal(t, sheet.ID, resubmitted.ID, "resubmission reuses the week's timesheet")
	assert.Equal(t, timesheet.StatusSubmitted, resubmitted.Status)
	assert.Equal(t, 15.0, resubmitted.TotalHours)
	require.Len(t, fx, 2)
	assert.Equal(t, "timesheet.resubmitted", fx[1].Audit.Action)

	// submitted, rejected, submitted — nothing truncated.
	require.Len(t, resubmitted.History, 3)
	assert.Equal(t, timesheet.StatusSubmitted, resubmitted.History[0].Status)
	assert.Equal(t, timesheet.StatusRejected, resubmitted.History[1].Status)
	assert.Equal(t, "missing Friday", resubmitted.History[1].Comment)
	assert.Equal(t, timesheet.StatusSubmitted, resubmitted.History[2].Status)
}

func TestApprovedTimesheetLocked(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()

	sheet, _, err := service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)
	_, _, err = service.Decide(ctx, actor.Manager("m1"), timesheet.DecideInput{TimesheetID: sheet.ID, Decision: "approved"})
	require.NoError(t, err)

	_, _, err = service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(6)})
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestDuplicateDecisionRejected(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()

	sheet, _, err := service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)

	decided, fx, err := service.Decide(ctx, actor.Manager("m1"), timesheet.DecideInput{TimesheetID: sheet.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, decided.Status)
	require.Len(t, fx, 2)
	assert.Equal(t, "e1", fx[0].Notification.UserID)

	_, _, err = service.Decide(ctx, actor.Manager("m1"), timesheet.DecideInput{TimesheetID: sheet.ID, Decision: "rejected"})
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestDecisionOwnershipFrozen(t *testing.T) {
	service, directory := newFixture(t)
	ctx := context.Background()

	sheet, _, err := service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)

	_, err = directory.Set(ctx, actor.HRAdmin("hr1"), "e1", "m2")
	require.NoError(t, err)

	_, _, err = service.Decide(ctx, actor.Manager("m2"), timesheet.DecideInput{TimesheetID: sheet.ID, Decision: "approved"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = service.Decide(ctx, actor.Manager("m1"), timesheet.DecideInput{TimesheetID: sheet.ID, Decision: "approved"})
	require.NoError(t, err)
}

func TestDecideMissingTimesheet(t *testing.T) {
	service, _ := newFixture(t)
	_, _, err := service.Decide(context.Background(), actor.Manager("m1"), timesheet.DecideInput{TimesheetID: "nope", Decision: "approved"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListScopedByRole(t *testing.T) {
	service, directory := newFixture(t)
	ctx := context.Background()
	_, err := directory.Set(ctx, actor.HRAdmin("hr1"), "e2", "m2")
	require.NoError(t, err)

	_, _, err = service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)
	_, _, err = service.Submit(ctx, actor.Employee("e2"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(4)})
	require.NoError(t, err)

	own, err := service.List(ctx, actor.Employee("e1"), timesheet.Filter{EmployeeID: "e2"})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "e1", own[0].EmployeeID)

	managed, err := service.List(ctx, actor.Manager("m2"), timesheet.Filter{})
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, "e2", managed[0].EmployeeID)

	all, err := service.List(ctx, actor.HRAdmin("hr1"), timesheet.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byWeek, err := service.List(ctx, actor.HRAdmin("hr1"), timesheet.Filter{WeekStart: week})
	require.NoError(t, err)
	assert.Len(t, byWeek, 2)

	otherWeek, err := service.List(ctx, actor.HRAdmin("hr1"), timesheet.Filter{WeekStart: week.AddDate(0, 0, 7)})
	require.NoError(t, err)
	assert.Empty(t, otherWeek)
}

func TestPendingCount(t *testing.T) {
	service, directory := newFixture(t)
	ctx := context.Background()
	_, err := directory.Set(ctx, actor.HRAdmin("hr1"), "e2", "m2")
	require.NoError(t, err)

	sheet, _, err := service.Submit(ctx, actor.Employee("e1"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)
	_, _, err = service.Submit(ctx, actor.Employee("e2"), timesheet.SubmitInput{WeekStart: week, Entries: workWeek(8)})
	require.NoError(t, err)

	count, err := service.PendingCount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = service.PendingCount(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, _, err = service.Decide(ctx, actor.Manager("m1"), timesheet.DecideInput{TimesheetID: sheet.ID, Decision: "approved"})
	require.NoError(t, err)

	count, err = service.PendingCount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
