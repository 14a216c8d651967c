package handlers

import (
	"github.com/beintransports/booking-api/internal/models"
)

// Authorization decisions live here so individual handlers never compare
// roles inline.

func isAdmin(role string) bool {
	return role == string(models.RoleAdmin)
}

// canAccessBooking allows the owner and admins to read or mutate a booking.
func canAccessBooking(b *models.Booking, userID uint, role string) bool {
	return b.UserID == userID || isAdmin(role)
}

// canPayBooking allows only the owner to create or confirm a payment.
// Admins pay their own bookings like anyone else.
func canPayBooking(b *models.Booking, userID uint) bool {
	return b.UserID == userID
}
