package usecase_test

import (
	. "github.com/sxtvrno/storefront/internal/usecase"

	"strings"
	"testing"
)

func TestNewBuyOrderWithinLimit(t *testing.T) {
	for _, id := range []int64{1, 42, 999999999} {
		buyOrder := NewBuyOrder(id)
		if len(buyOrder) > BuyOrderMaxLen {
			t.Fatalf("buy order %q exceeds %d bytes", buyOrder, BuyOrderMaxLen)
		}
		if !strings.HasPrefix(buyOrder, "O") {
			t.Fatalf("buy order %q missing prefix", buyOrder)
		}
	}
}

func TestNewBuyOrderUniquePerAttempt(t *testing.T) {
	first := NewBuyOrder(7)
	second := NewBuyOrder(7)
	if first == second {
		t.Fatalf("expected distinct buy orders for repeated attempts, got %q twice", first)
	}
}

func TestParseBuyOrderRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 42, 123456} {
		got, ok := ParseBuyOrder(NewBuyOrder(id))
		if !ok {
			t.Fatalf("parse failed for order %d", id)
		}
		if got != id {
			t.Fatalf("parsed %d, want %d", got, id)
		}
	}
}

func TestParseBuyOrderRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "O", "O-abc", "X42-deadbeef", "Oabc-1", "O-5", "O0-ff"} {
		if _, ok := ParseBuyOrder(in); ok {
			t.Fatalf("expected parse failure for %q", in)
		}
	}
}
