package pricing

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestComputeScenario(t *testing.T) {
	subtotal := LineTotal(24.99, 2.99, 1) + LineTotal(5.99, 0, 2)
	got := DefaultSchedule().Compute(subtotal, 2)

	if !near(got.Subtotal, 39.96) {
		t.Fatalf("expected subtotal 39.96, got %v", got.Subtotal)
	}
	if got.DeliveryFee != 4.99 {
		t.Fatalf("expected delivery fee 4.99, got %v", got.DeliveryFee)
	}
	if !near(got.Taxes, 3.1968) {
		t.Fatalf("expected taxes 3.1968, got %v", got.Taxes)
	}
	if !near(got.Total, 48.1468) {
		t.Fatalf("expected total 48.1468, got %v", got.Total)
	}
	if f := got.Formatted(); f.Total != "48.15" || f.Taxes != "3.20" || f.Subtotal != "39.96" {
		t.Fatalf("unexpected display values %+v", f)
	}
	if got.Currency != "zar" {
		t.Fatalf("expected currency zar, got %s", got.Currency)
	}
}

func TestComputeEmpty(t *testing.T) {
	got := DefaultSchedule().Compute(0, 0)
	if got.Subtotal != 0 || got.DeliveryFee != 0 || got.Taxes != 0 || got.Total != 0 {
		t.Fatalf("expected all zero totals, got %+v", got)
	}
	if got.Formatted().Total != "0.00" {
		t.Fatalf("expected 0.00, got %s", got.Formatted().Total)
	}
}

func TestComputeInvariants(t *testing.T) {
	s := DefaultSchedule()
	for _, sub := range []float64{0.01, 1, 9.99, 123.456, 1000} {
		got := s.Compute(sub, 1)
		if !near(got.Taxes, sub*s.TaxRate) {
			t.Fatalf("taxes for %v: expected %v, got %v", sub, sub*s.TaxRate, got.Taxes)
		}
		if !near(got.Total, got.Subtotal+got.DeliveryFee+got.Taxes) {
			t.Fatalf("total for %v does not add up: %+v", sub, got)
		}
		if again := s.Compute(sub, 1); again != got {
			t.Fatalf("compute is not idempotent: %+v vs %+v", got, again)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := map[float64]string{
		0:       "0.00",
		1.005:   "1.01",
		2.5:     "2.50",
		48.1468: "48.15",
		0.125:   "0.13",
		10:      "10.00",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Fatalf("Format(%v): expected %s, got %s", in, want, got)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	tests := map[float64]int64{
		48.1468: 4815,
		4.99:    499,
		0.1 + 0.2: 30,
		19.999:  2000,
	}
	for in, want := range tests {
		if got := MinorUnits(in); got != want {
			t.Fatalf("MinorUnits(%v): expected %d, got %d", in, want, got)
		}
	}
}
