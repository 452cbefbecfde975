package events

import (
	"context"
	"errors"
	"time"

	"storefront-api/models"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// Event announces a change to an order
type Event struct {
	Type     string                 `json:"type"`
	OrderID  string                 `json:"orderId"`
	Status   models.OrderStatus     `json:"status"`
	Total    float64                `json:"total"`
	Currency string                 `json:"currency"`
	Order    map[string]interface{} `json:"order,omitempty"`
	At       time.Time              `json:"at"`
}

// OrderEvent builds an event for rec; doc is its cleaned document
func OrderEvent(typ string, rec models.OrderRecord, doc map[string]interface{}) Event {
	return Event{
		Type:     typ,
		OrderID:  rec.ID,
		Status:   rec.Status,
		Total:    rec.Totals.Total,
		Currency: rec.Totals.Currency,
		Order:    doc,
		At:       time.Now().UTC(),
	}
}

// RoutingKey is the topic an event is published under, e.g. order.paid
func RoutingKey(ev Event) string {
	return "order." + string(ev.Status)
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Multi fans an event out to every publisher and joins their errors
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
