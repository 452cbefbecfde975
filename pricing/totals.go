package pricing

import "github.com/shopspring/decimal"

const (
	DefaultDeliveryFee = 4.99
	DefaultTaxRate     = 0.08
	DefaultCurrency    = "zar"
)

// FeeSchedule is the per-deployment fee and tax configuration
type FeeSchedule struct {
	DeliveryFee float64 `json:"deliveryFee"`
	TaxRate     float64 `json:"taxRate"`
	Currency    string  `json:"currency"`
}

func DefaultSchedule() FeeSchedule {
	return FeeSchedule{
		DeliveryFee: DefaultDeliveryFee,
		TaxRate:     DefaultTaxRate,
		Currency:    DefaultCurrency,
	}
}

// Totals keeps full float precision; use Formatted for display.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Taxes       float64 `json:"taxes"`
	Total       float64 `json:"total"`
	Currency    string  `json:"currency"`
}

type FormattedTotals struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	Taxes       string `json:"taxes"`
	Total       string `json:"total"`
}

// Compute derives the breakdown for a cart with the given subtotal and line count.
// The delivery fee only applies to a non-empty cart and is never taxed.
func (s FeeSchedule) Compute(subtotal float64, lines int) Totals {
	t := Totals{Subtotal: subtotal, Currency: s.Currency}
	if lines > 0 {
		t.DeliveryFee = s.DeliveryFee
	}
	t.Taxes = subtotal * s.TaxRate
	t.Total = t.Subtotal + t.DeliveryFee + t.Taxes
	return t
}

func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		Subtotal:    Format(t.Subtotal),
		DeliveryFee: Format(t.DeliveryFee),
		Taxes:       Format(t.Taxes),
		Total:       Format(t.Total),
	}
}

// LineTotal is (base + addOn) * quantity
func LineTotal(base, addOn float64, quantity int) float64 {
	return (base + addOn) * float64(quantity)
}

// Format renders an amount with exactly two decimals, rounding half away from zero.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Round2 rounds to the cent
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// MinorUnits converts a major-unit amount to cents for the payment gateway
func MinorUnits(v float64) int64 {
	return decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
}
