package payroll

import (
	"testing"
	"time"
)

func TestComputeTotals(t *testing.T) {
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

	components := []Component{
		{Type: ComponentEarning, Amount: 5000, EffectiveFrom: past},
		{Type: ComponentEarning, Amount: 500, EffectiveFrom: future},
		{Type: ComponentDeduction, Amount: 750, EffectiveFrom: past},
	}

	gross, deductions, net := ComputeTotals(components)
	if gross != 5500 {
		t.Fatalf("expected gross 5500 including future-dated component, got %v", gross)
	}
	if deductions != 750 {
		t.Fatalf("expected deductions 750, got %v", deductions)
	}
	if net != 4750 {
		t.Fatalf("expected net 4750, got %v", net)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	gross, deductions, net := ComputeTotals(nil)
	if gross != 0 || deductions != 0 || net != 0 {
		t.Fatalf("expected zero totals, got %v/%v/%v", gross, deductions, net)
	}
}
