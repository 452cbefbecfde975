package order

import (
	"storefront-api/cart"
	"storefront-api/models"
	"storefront-api/payment"
	"storefront-api/pricing"
)

// Input is everything checkout knows when it writes an order
type Input struct {
	UserID       string
	Address      string
	Lines        []cart.Line
	Totals       pricing.Totals
	ContactName  string
	ContactPhone string
	Note         string
}

// StatusFromGateway maps a payment intent status onto an order status
func StatusFromGateway(status string) models.OrderStatus {
	switch status {
	case "succeeded", "requires_capture":
		return models.StatusPaid
	default:
		return models.StatusPending
	}
}

// Normalize turns a checkout into the record that is stored
func Normalize(in Input, intent *payment.Intent) models.OrderRecord {
	rec := base(in)
	rec.Status = StatusFromGateway(intent.Status)
	rec.Payment.Status = intent.Status
	rec.Payment.IntentID = intent.ID
	rec.Payment.Last4 = intent.Last4
	rec.Payment.MethodType = intent.MethodType
	return rec
}

// Failed records a checkout whose payment call errored
func Failed(in Input, cause error) models.OrderRecord {
	rec := base(in)
	rec.Status = models.StatusFailed
	rec.Payment.Status = string(models.StatusFailed)
	if cause != nil {
		rec.Payment.Error = payment.Message(cause, cause.Error())
	}
	return rec
}

// base stores the subtotal as the sum of its own items so a record always adds up
func base(in Input) models.OrderRecord {
	items := Items(in.Lines)
	rec := models.OrderRecord{
		Address: in.Address,
		Items:   items,
		Totals: models.OrderTotals{
			Subtotal:    Subtotal(items),
			DeliveryFee: in.Totals.DeliveryFee,
			Taxes:       in.Totals.Taxes,
			Total:       in.Totals.Total,
			Currency:    in.Totals.Currency,
		},
		Payment: models.OrderPayment{
			Provider: models.PaymentProviderStripe,
			Amount:   pricing.MinorUnits(in.Totals.Total),
			Currency: in.Totals.Currency,
		},
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		Note:         in.Note,
	}
	if in.UserID != "" {
		uid := in.UserID
		rec.UserID = &uid
	}
	return rec
}

// Items snapshots cart lines as order items with sparse selections
func Items(lines []cart.Line) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ItemID:     l.ItemID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			BasePrice:  l.Price,
			AddOnTotal: l.AddOnTotal,
			LineTotal:  l.Total(),
			Selections: selections(l),
			ImageURL:   l.ImageURL,
		})
	}
	return items
}

func selections(l cart.Line) models.Selections {
	var s models.Selections
	if len(l.Sides) > 0 {
		s.Sides = append([]string(nil), l.Sides...)
	}
	s.Drink = l.Drink
	if len(l.Extras) > 0 {
		s.Extras = append([]string(nil), l.Extras...)
	}
	if len(l.Ingredients) > 0 {
		s.Ingredients = append([]string(nil), l.Ingredients...)
	}
	return s
}

// Subtotal sums the line totals of a stored order
func Subtotal(items []models.OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.LineTotal
	}
	return sum
}
