package pricing

import (
	"encoding/json"
	"testing"
)

func TestParseOption(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		label string
		price float64
	}{
		{"priced", "Juice(2.99)", "Juice", 2.99},
		{"space before paren", "Large Fries (3.50)", "Large Fries", 3.5},
		{"integer price", "Cheese(1)", "Cheese", 1},
		{"leading dot", "Sauce(.75)", "Sauce", 0.75},
		{"no price", "No Lemon", "No Lemon", 0},
		{"padded no price", "  Extra Napkins  ", "Extra Napkins", 0},
		{"non numeric", "Soda(large)", "Soda(large)", 0},
		{"two dots", "Soda(1.2.3)", "Soda(1.2.3)", 0},
		{"trailing text", "Soda(1.50) cold", "Soda(1.50) cold", 0},
		{"only parens", "(2.99)", "(2.99)", 0},
		{"empty", "", "", 0},
		{"nested parens", "Wrap (spicy)(1.25)", "Wrap (spicy)", 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOption(tt.raw)
			if got.Label != tt.label {
				t.Fatalf("expected label %q, got %q", tt.label, got.Label)
			}
			if got.Price != tt.price {
				t.Fatalf("expected price %v, got %v", tt.price, got.Price)
			}
		})
	}
}

func TestParseOptionReparsesOwnLabel(t *testing.T) {
	first := ParseOption("Lemonade(2.49)")
	second := ParseOption(first.Label)
	if second.Label != first.Label || second.Price != 0 {
		t.Fatalf("expected %q at price 0, got %+v", first.Label, second)
	}
}

func TestOptionUnmarshalAcceptsBothForms(t *testing.T) {
	var opts []Option
	raw := `["Coke(1.99)", {"label": " Water ", "price": 0.5}, "Plain"]`
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Option{{"Coke", 1.99}, {"Water", 0.5}, {"Plain", 0}}
	if len(opts) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(opts))
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Fatalf("option %d: expected %+v, got %+v", i, want[i], opts[i])
		}
	}
}

func TestPriceIndexLastWins(t *testing.T) {
	idx := PriceIndex([]Option{{"Cola", 1}, {"Cola", 2}, {"Tea", 0.5}})
	if idx["Cola"] != 2 || idx["Tea"] != 0.5 {
		t.Fatalf("unexpected index %v", idx)
	}
}
