package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRelayClientSuccess(t *testing.T) {
	var got IntentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pay" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{
			"paymentIntentId": "pi_123",
			"status":          "requires_payment_method",
			"clientSecret":    "pi_123_secret",
		})
	}))
	defer srv.Close()

	intent, err := NewRelayClient(srv.URL+"/", srv.Client()).CreateIntent(context.Background(), IntentRequest{Amount: 4815})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.ID != "pi_123" || intent.Status != "requires_payment_method" || intent.ClientSecret != "pi_123_secret" {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if got.Amount != 4815 || got.Currency != "zar" || got.Description != "Restaurant order" {
		t.Fatalf("expected defaults to be sent, got %+v", got)
	}
}

func TestRelayClientGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Your card was declined."})
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL, srv.Client()).CreateIntent(context.Background(), IntentRequest{Amount: 100})
	var gerr *GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if Message(err, "fallback") != "Your card was declined." {
		t.Fatalf("unexpected message %q", Message(err, "fallback"))
	}
}

func TestRelayClientNonJSONErrorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL, srv.Client()).CreateIntent(context.Background(), IntentRequest{Amount: 100})
	var gerr *GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gerr.Message != "502 Bad Gateway" {
		t.Fatalf("expected the HTTP status as message, got %q", gerr.Message)
	}
}

func TestRelayClientRejectsNonPositiveAmount(t *testing.T) {
	c := NewRelayClient("http://unused.invalid", nil)
	for _, amount := range []int64{0, -5} {
		if _, err := c.CreateIntent(context.Background(), IntentRequest{Amount: amount}); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message(errors.New("socket closed"), "Payment failed"); got != "Payment failed" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
