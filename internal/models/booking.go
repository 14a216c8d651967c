package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type BookingType string

const (
	BookingTypeMoving    BookingType = "moving"
	BookingTypeDelivery  BookingType = "delivery"
	BookingTypeTransport BookingType = "transport"
)

// Address is embedded twice on Booking, once per leg of the trip.
type Address struct {
	Street     string   `json:"street" gorm:"not null"`
	City       string   `json:"city" gorm:"not null"`
	PostalCode string   `json:"postalCode" gorm:"not null"`
	Country    string   `json:"country" gorm:"default:'France'"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

type Booking struct {
	gorm.Model
	UserID          uint          `json:"userId" gorm:"not null"`
	User            User          `json:"user"`
	VehicleID       uint          `json:"vehicleId" gorm:"not null"`
	Vehicle         Vehicle       `json:"vehicle"`
	Status          BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" gorm:"not null;default:'pending'"`
	BookingType     BookingType   `json:"bookingType" gorm:"not null"`
	PickupAddress   Address       `json:"pickupAddress" gorm:"embedded;embeddedPrefix:pickup_"`
	DeliveryAddress Address       `json:"deliveryAddress" gorm:"embedded;embeddedPrefix:delivery_"`
	Distance        float64       `json:"distance"` // in km
	Date            time.Time     `json:"date" gorm:"not null"`
	TimeSlot        string        `json:"timeSlot" gorm:"not null"`
	Duration        float64       `json:"duration"` // estimated, in hours
	Handlers        int           `json:"handlers" gorm:"default:0"`
	TotalPrice      float64       `json:"totalPrice" gorm:"not null"`
	PaymentID       string        `json:"paymentId,omitempty"`
	Notes           string        `json:"notes,omitempty"`
}

// statusTransitions is the only place booking status changes are defined.
// Confirmation happens exclusively through the payment path, cancellation
// from pending or confirmed, and operational progress runs
// confirmed -> in-progress -> completed. Completed and cancelled are final.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

// CanTransitionTo reports whether moving the booking to the given status is legal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanCancel reports whether the booking may still be cancelled.
func (b *Booking) CanCancel() bool {
	return b.Status != BookingStatusCompleted && b.Status != BookingStatusCancelled
}

// Cancel moves the booking to cancelled. The payment status is deliberately
// left untouched: cancelling a paid booking does not trigger a refund.
func (b *Booking) Cancel() error {
	if !b.CanCancel() {
		return fmt.Errorf("cannot cancel a %s booking", b.Status)
	}
	b.Status = BookingStatusCancelled
	return nil
}

// CanClientUpdate reports whether a non-admin owner may still modify the
// booking. Once a booking leaves pending it is immutable to clients.
func (b *Booking) CanClientUpdate() bool {
	return b.Status == BookingStatusPending
}

// MarkPaid applies a successful payment to the booking: paymentStatus becomes
// paid, status becomes confirmed and the gateway intent id is recorded. It is
// idempotent, so the confirm endpoint and the webhook can both apply the same
// event without a second effect. It returns true when the booking changed.
func (b *Booking) MarkPaid(paymentIntentID string) bool {
	if b.PaymentStatus == PaymentStatusPaid {
		return false
	}
	b.PaymentStatus = PaymentStatusPaid
	b.Status = BookingStatusConfirmed
	b.PaymentID = paymentIntentID
	return true
}

// ValidBookingType reports whether the given type is one of the fixed set.
func ValidBookingType(t BookingType) bool {
	switch t {
	case BookingTypeMoving, BookingTypeDelivery, BookingTypeTransport:
		return true
	}
	return false
}
