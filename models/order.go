package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the payment outcome of a checkout attempt
type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusPaid    OrderStatus = "paid"
	StatusFailed  OrderStatus = "failed"
)

func (s OrderStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusFailed
}

const PaymentProviderStripe = "stripe"

// Selections only carries the categories the customer actually chose
type Selections struct {
	Sides       []string `json:"sides,omitempty"`
	Drink       string   `json:"drink,omitempty"`
	Extras      []string `json:"extras,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

type OrderItem struct {
	ItemID     string     `json:"itemId"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	BasePrice  float64    `json:"basePrice"`
	AddOnTotal float64    `json:"addOnTotal"`
	LineTotal  float64    `json:"lineTotal"`
	Selections Selections `json:"selections"`
	ImageURL   string     `json:"imageUrl,omitempty"`
}

type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Taxes       float64 `json:"taxes"`
	Total       float64 `json:"total"`
	Currency    string  `json:"currency"`
}

// OrderPayment is the gateway result; Amount is in minor units
type OrderPayment struct {
	Provider   string `json:"provider"`
	Status     string `json:"status"`
	IntentID   string `json:"intentId,omitempty"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Last4      string `json:"last4,omitempty"`
	MethodType string `json:"methodType,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OrderRecord is written once per checkout attempt. Only Status may change
// afterwards, through reconciliation.
type OrderRecord struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	UserID       *string      `json:"userId,omitempty" gorm:"index"`
	Status       OrderStatus  `json:"status" gorm:"index;not null;default:'pending'"`
	Address      string       `json:"address" gorm:"not null"`
	Items        []OrderItem  `json:"items" gorm:"serializer:json"`
	Totals       OrderTotals  `json:"totals" gorm:"embedded;embeddedPrefix:totals_"`
	Payment      OrderPayment `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	ContactName  string       `json:"contactName,omitempty"`
	ContactPhone string       `json:"contactPhone,omitempty"`
	Note         string       `json:"note,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time    `json:"-"`
}

func (OrderRecord) TableName() string { return "orders" }

func (o *OrderRecord) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderStatusHistory tracks every reconciliation change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    string      `json:"orderId" gorm:"index;not null"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  string      `json:"changedBy"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"createdAt"`
}
