package payroll

import "time"

const (
	StatusDraft     = "draft"
	StatusFinalized = "finalized"

	ComponentEarning   = "earning"
	ComponentDeduction = "deduction"
)

// Component is one salary line for an employee. Components accumulate and
// are never edited in place.
type Component struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
	EffectiveFrom time.Time `json:"effectiveFrom"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Entry is the payroll result for one (employee, month). A Draft is
// recomputed in place on every run; a Finalized entry is terminal.
type Entry struct {
	EmployeeID string    `json:"employeeId"`
	Month      string    `json:"month"` // YYYY-MM
	Gross      float64   `json:"gross"`
	Deductions float64   `json:"deductions"`
	Net        float64   `json:"net"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Payslip freezes the finalized values; at most one per (employee, month).
type Payslip struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Month      string    `json:"month"`
	Gross      float64   `json:"gross"`
	Deductions float64   `json:"deductions"`
	Net        float64   `json:"net"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Summary aggregates the finalized entries of one month.
type Summary struct {
	Month           string  `json:"month"`
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
	EmployeeCount   int     `json:"employeeCount"`
}
