package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/domain/payroll"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

func newFixture(t *testing.T) (*payroll.Service, *payroll.MemoryStore) {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 3, 31, 17, 0, 0, 0, time.UTC) }
	store := payroll.NewMemoryStore()
	service := payroll.NewService(store, ids.NewSequence("pr")).WithClock(clock)
	return service, store
}

func addComponent(t *testing.T, service *payroll.Service, employeeID, ctype, name string, amount float64) {
	t.Helper()
	_, _, err := service.AddComponent(context.Background(), actor.HRAdmin("hr1"), payroll.AddComponentInput{
		EmployeeID: employeeID, Type: ctype, Name: name, Amount: amount,
	})
	require.NoError(t, err)
}

func TestAddComponentValidation(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	_, _, err := service.AddComponent(ctx, actor.Employee("e1"), payroll.AddComponentInput{EmployeeID: "e1", Type: "earning", Name: "Base", Amount: 100})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = service.AddComponent(ctx, hr, payroll.AddComponentInput{EmployeeID: "e1", Type: "bonus", Name: "Base", Amount: 100})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, _, err = service.AddComponent(ctx, hr, payroll.AddComponentInput{EmployeeID: "e1", Type: "earning", Name: "Base", Amount: -1})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, _, err = service.AddComponent(ctx, hr, payroll.AddComponentInput{EmployeeID: "", Type: "earning", Name: "Base", Amount: 100})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	component, fx, err := service.AddComponent(ctx, hr, payroll.AddComponentInput{EmployeeID: "e1", Type: "Earning", Name: " Base ", Amount: 3000})
	require.NoError(t, err)
	assert.Equal(t, "earning", component.Type)
	assert.Equal(t, "Base", component.Name)
	require.Len(t, fx, 1)
	assert.Equal(t, "payroll.component.added", fx[0].Audit.Action)
}

func TestRunDraftComputesTotals(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()

	addComponent(t, service, "e1", "earning", "Base", 3000)
	addComponent(t, service, "e1", "earning", "Bonus", 500)
	addComponent(t, service, "e1", "deduction", "Tax", 700)

	entries, fx, err := service.RunDraft(ctx, actor.HRAdmin("hr1"), payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3500.0, entries[0].Gross)
	assert.Equal(t, 700.0, entries[0].Deductions)
	assert.Equal(t, 2800.0, entries[0].Net)
	assert.Equal(t, payroll.StatusDraft, entries[0].Status)
	require.Len(t, fx, 1)
	assert.Equal(t, "payroll.draft.saved", fx[0].Audit.Action)
}

func TestRunDraftIdempotentRecompute(t *testing.T) {
	service, store := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	addComponent(t, service, "e1", "earning", "Base", 3000)
	_, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)

	addComponent(t, service, "e1", "deduction", "Tax", 400)
	entries, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)
	assert.Equal(t, 2600.0, entries[0].Net)

	all, err := store.ListEntries(ctx, payroll.EntryFilter{EmployeeID: "e1", Month: "2026-03"})
	require.NoError(t, err)
	assert.Len(t, all, 1, "rerun must overwrite the draft, not add a second entry")
}

func TestRunDraftValidation(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	_, _, err := service.RunDraft(ctx, actor.Manager("m1"), payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = service.RunDraft(ctx, hr, payroll.RunInput{Month: "03-2026", EmployeeIDs: []string{"e1"}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, _, err = service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestFinalizeIsTerminal(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")
	run := payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}}

	addComponent(t, service, "e1", "earning", "Base", 3000)
	_, _, err := service.RunDraft(ctx, hr, run)
	require.NoError(t, err)

	entries, fx, err := service.FinalizeMonth(ctx, hr, run)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, payroll.StatusFinalized, entries[0].Status)
	require.Len(t, fx, 2)
	assert.Equal(t, effects.NotificationPayroll, fx[0].Notification.Type)
	assert.Equal(t, "payroll.finalized", fx[1].Audit.Action)

	_, _, err = service.RunDraft(ctx, hr, run)
	assert.ErrorIs(t, err, apperr.ErrInvalidState, "draft run after finalize must fail")

	_, _, err = service.FinalizeMonth(ctx, hr, run)
	assert.ErrorIs(t, err, apperr.ErrInvalidState, "second finalize must fail")
}

func TestFinalizeRequiresDraft(t *testing.T) {
	service, _ := newFixture(t)

	_, _, err := service.FinalizeMonth(context.Background(), actor.HRAdmin("hr1"), payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestFinalizeBatchFailsFastAndKeepsPriorWork(t *testing.T) {
	service, store := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	addComponent(t, service, "e1", "earning", "Base", 3000)
	// no draft for e2
	_, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)

	entries, fx, err := service.FinalizeMonth(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1", "e2"}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.Len(t, entries, 1, "e1 must already be finalized when e2 fails")
	assert.Len(t, fx, 2, "effects for the committed employee are still returned")

	_, ok, err := store.GetEntry(ctx, "e1", "2026-03", payroll.StatusFinalized)
	require.NoError(t, err)
	assert.True(t, ok, "partial commit is preserved")
}

func TestFinalizeCreatesPayslipOnce(t *testing.T) {
	service, store := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	addComponent(t, service, "e1", "earning", "Base", 3000)
	_, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)
	_, _, err = service.FinalizeMonth(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)

	payslips, err := store.ListPayslips(ctx, payroll.PayslipFilter{EmployeeID: "e1"})
	require.NoError(t, err)
	require.Len(t, payslips, 1)
	assert.Equal(t, "2026-03", payslips[0].Month)
	assert.Equal(t, 3000.0, payslips[0].Gross)
}

func TestPayslipOwnership(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	addComponent(t, service, "e1", "earning", "Base", 3000)
	_, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)
	_, _, err = service.FinalizeMonth(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)

	payslips, err := service.ListPayslips(ctx, actor.Employee("e1"), payroll.PayslipFilter{})
	require.NoError(t, err)
	require.Len(t, payslips, 1)

	_, err = service.GetPayslip(ctx, actor.Employee("e2"), payslips[0].ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = service.GetPayslip(ctx, hr, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := service.GetPayslip(ctx, actor.Employee("e1"), payslips[0].ID)
	require.NoError(t, err)
	assert.Equal(t, payslips[0].ID, got.ID)
}

func TestListEntriesScopedForEmployees(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	addComponent(t, service, "e1", "earning", "Base", 3000)
	addComponent(t, service, "e2", "earning", "Base", 2000)
	_, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1", "e2"}})
	require.NoError(t, err)

	mine, err := service.ListEntries(ctx, actor.Employee("e1"), payroll.EntryFilter{EmployeeID: "e2"})
	require.NoError(t, err)
	require.Len(t, mine, 1, "employee filter is overridden to self")
	assert.Equal(t, "e1", mine[0].EmployeeID)

	all, err := service.ListEntries(ctx, hr, payroll.EntryFilter{Month: "2026-03"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMonthlySummaryFinalizedOnly(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")

	addComponent(t, service, "e1", "earning", "Base", 3000)
	addComponent(t, service, "e1", "deduction", "Tax", 500)
	addComponent(t, service, "e2", "earning", "Base", 2000)

	_, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1", "e2"}})
	require.NoError(t, err)
	// only e1 gets finalized; e2 stays a draft
	_, _, err = service.FinalizeMonth(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)

	summary, err := service.MonthlySummary(ctx, hr, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.EmployeeCount)
	assert.Equal(t, 3000.0, summary.TotalGross)
	assert.Equal(t, 500.0, summary.TotalDeductions)
	assert.Equal(t, 2500.0, summary.TotalNet)

	_, err = service.MonthlySummary(ctx, actor.Manager("m1"), "2026-03")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestPayslipPDFWritesFile(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	hr := actor.HRAdmin("hr1")
	service.WithPayslipDir(t.TempDir())

	addComponent(t, service, "e1", "earning", "Base", 3000)
	_, _, err := service.RunDraft(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)
	_, _, err = service.FinalizeMonth(ctx, hr, payroll.RunInput{Month: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)

	payslips, err := service.ListPayslips(ctx, hr, payroll.PayslipFilter{EmployeeID: "e1"})
	require.NoError(t, err)
	require.Len(t, payslips, 1)

	path, err := service.PayslipPDF(ctx, actor.Employee("e1"), payslips[0].ID)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
