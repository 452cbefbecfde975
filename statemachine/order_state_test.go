package statemachine

import (
	"strings"
	"testing"

	"storefront-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		actor    string
		ok       bool
	}{
		{models.StatusPending, models.StatusPaid, ActorSystem, true},
		{models.StatusPending, models.StatusPaid, ActorAdmin, true},
		{models.StatusPending, models.StatusFailed, ActorAdmin, true},
		{models.StatusFailed, models.StatusPending, ActorAdmin, true},
		{models.StatusFailed, models.StatusPending, ActorSystem, false},
		{models.StatusPaid, models.StatusPending, ActorAdmin, false},
		{models.StatusPaid, models.StatusFailed, ActorSystem, false},
		{models.StatusPending, models.StatusPaid, "customer", false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to, tt.actor)
		if (err == nil) != tt.ok {
			t.Fatalf("%s -> %s by %s: expected ok=%v, got %v", tt.from, tt.to, tt.actor, tt.ok, err)
		}
	}
}

func TestPaidIsTerminal(t *testing.T) {
	if nexts := ValidTransitionsFrom(models.StatusPaid); len(nexts) != 0 {
		t.Fatalf("expected no transitions out of paid, got %v", nexts)
	}
	err := CanTransition(models.StatusPaid, models.StatusFailed, ActorAdmin)
	if err == nil || !strings.Contains(err.Error(), "terminal state") {
		t.Fatalf("expected terminal state message, got %v", err)
	}
}

func TestValidTransitionsFromDeduplicates(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	if len(nexts) != 2 {
		t.Fatalf("expected paid and failed, got %v", nexts)
	}
}
