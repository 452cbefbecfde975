package payment

import (
	"context"
	"errors"
)

const (
	DefaultCurrency    = "zar"
	DefaultDescription = "Restaurant order"
)

var ErrInvalidAmount = errors.New("invalid amount")

// IntentRequest asks the gateway to charge Amount minor currency units
type IntentRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r IntentRequest) withDefaults() IntentRequest {
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if r.Description == "" {
		r.Description = DefaultDescription
	}
	return r
}

// Intent is the gateway's answer for one payment attempt
type Intent struct {
	ID           string `json:"paymentIntentId"`
	Status       string `json:"status"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Last4        string `json:"last4,omitempty"`
	MethodType   string `json:"methodType,omitempty"`
}

// Gateway creates payment intents. Calls are not retried.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// GatewayError carries a message that is safe to show to the customer
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string { return e.Message }
func (e *GatewayError) Unwrap() error { return e.Err }

// Message returns the customer-facing text for err, or fallback
func Message(err error, fallback string) string {
	var gerr *GatewayError
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return fallback
}
