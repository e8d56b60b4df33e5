package domain

import "testing"

func TestOrderStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderNew, OrderConfirmed, true},
		{OrderNew, OrderCompleted, true}, // skipping steps is fine
		{OrderConfirmed, OrderShipped, true},
		{OrderShipped, OrderConfirmed, false}, // no going back
		{OrderNew, OrderNew, false},
		{OrderNew, OrderCancelled, true},
		{OrderCompleted, OrderCancelled, true},
		{OrderCancelled, OrderNew, false}, // cancelled is terminal
		{OrderCancelled, OrderCancelled, false},
		{OrderNew, OrderStatus("BOGUS"), false},
		{OrderStatus("BOGUS"), OrderConfirmed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestOrderStatusFinalized(t *testing.T) {
	finalized := []OrderStatus{OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCompleted}
	for _, s := range finalized {
		if !s.Finalized() {
			t.Errorf("%s should be finalized", s)
		}
	}
	for _, s := range []OrderStatus{OrderNew, OrderCancelled, OrderStatus("BOGUS")} {
		if s.Finalized() {
			t.Errorf("%s should not be finalized", s)
		}
	}
}

func TestPaymentStatusCanTransition(t *testing.T) {
	for _, to := range []PaymentStatus{PaymentCompleted, PaymentFailed, PaymentCancelled} {
		if !PaymentPending.CanTransition(to) {
			t.Errorf("PENDING -> %s should be legal", to)
		}
		if to.CanTransition(PaymentPending) || to.CanTransition(PaymentCompleted) {
			t.Errorf("%s must be terminal", to)
		}
	}
	if PaymentPending.CanTransition(PaymentPending) {
		t.Error("PENDING -> PENDING should be illegal")
	}
	if PaymentPending.CanTransition(PaymentStatus("BOGUS")) {
		t.Error("unknown status must be rejected")
	}
}
