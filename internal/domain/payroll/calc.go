package payroll

// ComputeTotals folds components into gross, deductions and net. Every
// component ever recorded participates; effectiveFrom is informational and
// does not gate aggregation.
func ComputeTotals(components []Component) (gross, deductions, net float64) {
	for _, component := range components {
		switch component.Type {
		case ComponentEarning:
			gross += component.Amount
		case ComponentDeduction:
			deductions += component.Amount
		}
	}
	net = gross - deductions
	return gross, deductions, net
}
