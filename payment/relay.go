package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RelayClient talks to a payment relay that exposes POST /pay
type RelayClient struct {
	baseURL string
	http    *http.Client
}

func NewRelayClient(baseURL string, client *http.Client) *RelayClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RelayClient{baseURL: strings.TrimRight(baseURL, "/"), http: client}
}

type relayResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
	ClientSecret    string `json:"clientSecret"`
	Error           string `json:"error"`
}

func (c *RelayClient) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	body, err := json.Marshal(req.withDefaults())
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pay", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment relay: %w", err)
	}
	defer resp.Body.Close()

	var out relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &GatewayError{Message: resp.Status, Err: err}
		}
		return nil, fmt.Errorf("payment relay: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &GatewayError{Message: msg}
	}
	return &Intent{
		ID:           out.PaymentIntentID,
		Status:       out.Status,
		ClientSecret: out.ClientSecret,
	}, nil
}
