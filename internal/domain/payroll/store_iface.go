package payroll

import (
	"context"
	"time"
)

type EntryFilter struct {
	EmployeeID string
	Month      string
	Status     string
}

type PayslipFilter struct {
	EmployeeID string
	Month      string
}

type StoreAPI interface {
	CreateComponent(ctx context.Context, component Component) error
	ListComponents(ctx context.Context, employeeID string) ([]Component, error)

	GetEntry(ctx context.Context, employeeID, month, status string) (Entry, bool, error)
	SaveDraft(ctx context.Context, entry Entry) error
	MarkFinalized(ctx context.Context, employeeID, month string, at time.Time) error
	ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)

	CreatePayslip(ctx context.Context, payslip Payslip) error
	GetPayslip(ctx context.Context, id string) (Payslip, bool, error)
	GetPayslipForMonth(ctx context.Context, employeeID, month string) (Payslip, bool, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) ([]Payslip, error)
}
