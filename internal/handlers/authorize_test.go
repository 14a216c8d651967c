package handlers

import (
	"testing"

	"github.com/beintransports/booking-api/internal/models"
)

func TestCanAccessBooking(t *testing.T) {
	booking := &models.Booking{UserID: 1}

	cases := []struct {
		name   string
		userID uint
		role   string
		want   bool
	}{
		{"owner", 1, "client", true},
		{"other client", 2, "client", false},
		{"admin non-owner", 3, "admin", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canAccessBooking(booking, tc.userID, tc.role); got != tc.want {
				t.Errorf("canAccessBooking(%d, %s) = %v, want %v", tc.userID, tc.role, got, tc.want)
			}
		})
	}
}

func TestCanPayBooking(t *testing.T) {
	booking := &models.Booking{UserID: 1}

	if !canPayBooking(booking, 1) {
		t.Error("owner cannot pay own booking")
	}
	if canPayBooking(booking, 2) {
		t.Error("non-owner can pay booking")
	}
	// Admins get no special treatment on the payment path
	if canPayBooking(booking, 3) {
		t.Error("payment check ignores ownership")
	}
}
