package order

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"storefront-api/cart"
	"storefront-api/models"
	"storefront-api/payment"
	"storefront-api/pricing"
)

func sampleInput() Input {
	c := cart.New(
		cart.Line{ItemID: "salmon", Name: "Grilled Salmon", Price: 24.99, Quantity: 1, Sides: []string{"Fries"}, Drink: "Juice", AddOnTotal: 2.99},
		cart.Line{ItemID: "fries", Name: "Fries", Price: 5.99, Quantity: 2},
	)
	return Input{
		UserID:      "u1",
		Address:     "123 Market Street, San Francisco CA 94103",
		Lines:       c.Lines(),
		Totals:      c.Totals(pricing.DefaultSchedule()),
		ContactName: "Sam",
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStatusFromGateway(t *testing.T) {
	tests := map[string]models.OrderStatus{
		"succeeded":               models.StatusPaid,
		"requires_capture":        models.StatusPaid,
		"requires_payment_method": models.StatusPending,
		"processing":              models.StatusPending,
		"":                        models.StatusPending,
	}
	for in, want := range tests {
		if got := StatusFromGateway(in); got != want {
			t.Fatalf("StatusFromGateway(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := sampleInput()
	rec := Normalize(in, &payment.Intent{ID: "pi_1", Status: "succeeded", Last4: "4242", MethodType: "card"})

	if rec.Status != models.StatusPaid {
		t.Fatalf("expected paid, got %s", rec.Status)
	}
	if rec.UserID == nil || *rec.UserID != "u1" {
		t.Fatalf("expected user id u1, got %v", rec.UserID)
	}
	if len(rec.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(rec.Items))
	}
	if got := rec.Items[0]; !near(got.LineTotal, 24.99+2.99) || got.BasePrice != 24.99 || got.AddOnTotal != 2.99 {
		t.Fatalf("unexpected first item %+v", got)
	}
	p := rec.Payment
	if p.Provider != "stripe" || p.IntentID != "pi_1" || p.Amount != 4815 || p.Currency != "zar" || p.Last4 != "4242" {
		t.Fatalf("unexpected payment %+v", p)
	}
}

func TestNormalizeSparseSelections(t *testing.T) {
	rec := Normalize(sampleInput(), &payment.Intent{ID: "pi_1", Status: "requires_payment_method"})
	if rec.Status != models.StatusPending {
		t.Fatalf("expected pending, got %s", rec.Status)
	}

	raw, err := json.Marshal(rec.Items[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"selections":{}`) {
		t.Fatalf("expected empty selections object, got %s", raw)
	}

	raw, _ = json.Marshal(rec.Items[0].Selections)
	if strings.Contains(string(raw), "extras") || strings.Contains(string(raw), "ingredients") {
		t.Fatalf("empty categories must be omitted, got %s", raw)
	}
}

func TestItemsReproduceTotals(t *testing.T) {
	in := sampleInput()
	rec := Normalize(in, &payment.Intent{Status: "succeeded"})

	subtotal := Subtotal(rec.Items)
	if !near(subtotal, in.Totals.Subtotal) || !near(rec.Totals.Subtotal, subtotal) {
		t.Fatalf("item subtotal %v does not match cart %v", subtotal, in.Totals.Subtotal)
	}

	// rounding each line first must land on the same cent as rounding the aggregate
	var rounded float64
	for _, it := range rec.Items {
		rounded += pricing.Round2(it.LineTotal)
	}
	itemLevel := pricing.DefaultSchedule().Compute(rounded, len(rec.Items))
	if pricing.Format(itemLevel.Total) != pricing.Format(rec.Totals.Total) {
		t.Fatalf("item-level total %s differs from aggregate %s", pricing.Format(itemLevel.Total), pricing.Format(rec.Totals.Total))
	}
}

func TestFailed(t *testing.T) {
	rec := Failed(sampleInput(), &payment.GatewayError{Message: "Your card was declined."})
	if rec.Status != models.StatusFailed || rec.Payment.Status != "failed" {
		t.Fatalf("expected failed record, got %s / %s", rec.Status, rec.Payment.Status)
	}
	if rec.Payment.Error != "Your card was declined." {
		t.Fatalf("expected gateway message, got %q", rec.Payment.Error)
	}

	rec = Failed(sampleInput(), errors.New("dial tcp: timeout"))
	if rec.Payment.Error != "dial tcp: timeout" {
		t.Fatalf("expected raw error text, got %q", rec.Payment.Error)
	}
}

func TestAnonymousOrderOmitsUserID(t *testing.T) {
	in := sampleInput()
	in.UserID = ""
	doc, err := Document(Normalize(in, &payment.Intent{Status: "succeeded"}))
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if _, ok := doc["userId"]; ok {
		t.Fatal("expected userId to be absent")
	}
}
