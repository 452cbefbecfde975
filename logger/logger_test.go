package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", &buf, slog.LevelDebug)

	l.Error("checkout_failed", "req-1", "payment declined", errors.New("card_declined"), slog.String("owner", "u1"))

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	for key, want := range map[string]string{
		"service":    "storefront",
		"action":     "checkout_failed",
		"request_id": "req-1",
		"msg":        "payment declined",
		"owner":      "u1",
		"level":      "ERROR",
	} {
		if rec[key] != want {
			t.Fatalf("expected %s=%q, got %v", key, want, rec[key])
		}
	}
	errGroup, ok := rec["error"].(map[string]interface{})
	if !ok || errGroup["msg"] != "card_declined" {
		t.Fatalf("expected error group, got %v", rec["error"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", &buf, slog.LevelInfo)
	l.Debug("noise", "", "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug line to be filtered, got %s", buf.String())
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "abc")
	if got := RequestID(ctx); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
