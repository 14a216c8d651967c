package models

import (
	"testing"
)

func TestCanCancelMatrix(t *testing.T) {
	cases := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingStatusPending, true},
		{BookingStatusConfirmed, true},
		{BookingStatusInProgress, true},
		{BookingStatusCompleted, false},
		{BookingStatusCancelled, false},
	}

	for _, tc := range cases {
		b := &Booking{Status: tc.status}
		if got := b.CanCancel(); got != tc.want {
			t.Errorf("CanCancel from %s: got %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestCancelLeavesPaymentStatusUntouched(t *testing.T) {
	b := &Booking{Status: BookingStatusConfirmed, PaymentStatus: PaymentStatusPaid}
	if err := b.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", b.Status)
	}
	if b.PaymentStatus != PaymentStatusPaid {
		t.Errorf("paymentStatus = %s, want paid (no auto-refund)", b.PaymentStatus)
	}
}

func TestCancelCompletedFails(t *testing.T) {
	b := &Booking{Status: BookingStatusCompleted}
	if err := b.Cancel(); err == nil {
		t.Fatal("expected error cancelling a completed booking")
	}
	if b.Status != BookingStatusCompleted {
		t.Errorf("status changed to %s on failed cancel", b.Status)
	}
}

func TestCancelTwice(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}
	if err := b.Cancel(); err != nil {
		t.Fatalf("first Cancel: %v", err)
	}
	if err := b.Cancel(); err == nil {
		t.Fatal("expected error cancelling an already cancelled booking")
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusPending, BookingStatusInProgress, false},
		{BookingStatusConfirmed, BookingStatusInProgress, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusInProgress, BookingStatusCompleted, true},
		{BookingStatusInProgress, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		b := &Booking{Status: tc.from}
		if got := b.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestClientUpdateOnlyWhilePending(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusConfirmed,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled,
	} {
		b := &Booking{Status: status}
		if b.CanClientUpdate() {
			t.Errorf("client update allowed on %s booking", status)
		}
	}

	b := &Booking{Status: BookingStatusPending}
	if !b.CanClientUpdate() {
		t.Error("client update refused on pending booking")
	}
}

func TestMarkPaid(t *testing.T) {
	b := &Booking{Status: BookingStatusPending, PaymentStatus: PaymentStatusPending}

	if changed := b.MarkPaid("pi_123"); !changed {
		t.Fatal("first MarkPaid reported no change")
	}
	if b.Status != BookingStatusConfirmed || b.PaymentStatus != PaymentStatusPaid || b.PaymentID != "pi_123" {
		t.Errorf("after MarkPaid: status=%s paymentStatus=%s paymentId=%s", b.Status, b.PaymentStatus, b.PaymentID)
	}
}

func TestMarkPaidIdempotent(t *testing.T) {
	b := &Booking{Status: BookingStatusPending, PaymentStatus: PaymentStatusPending}
	b.MarkPaid("pi_123")

	if changed := b.MarkPaid("pi_123"); changed {
		t.Error("second MarkPaid reported a change")
	}
	if b.Status != BookingStatusConfirmed || b.PaymentStatus != PaymentStatusPaid || b.PaymentID != "pi_123" {
		t.Errorf("state drifted on repeated MarkPaid: status=%s paymentStatus=%s paymentId=%s", b.Status, b.PaymentStatus, b.PaymentID)
	}
}

func TestValidBookingType(t *testing.T) {
	for _, valid := range []BookingType{BookingTypeMoving, BookingTypeDelivery, BookingTypeTransport} {
		if !ValidBookingType(valid) {
			t.Errorf("%s rejected", valid)
		}
	}
	if ValidBookingType("freight") {
		t.Error("unknown booking type accepted")
	}
}
