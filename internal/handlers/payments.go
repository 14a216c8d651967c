package handlers

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/beintransports/booking-api/internal/models"
	"github.com/beintransports/booking-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const paymentCurrency = "eur"

// canCreateIntent guards against paying the same booking twice. Pending and
// refunded bookings may (re)start a payment; a paid one may not.
func canCreateIntent(b *models.Booking) bool {
	return b.PaymentStatus != models.PaymentStatusPaid
}

// paymentCompleted reports whether the gateway considers the intent settled.
// Anything else (processing, requires_payment_method, canceled) must not move
// the booking.
func paymentCompleted(intent *services.PaymentIntent) bool {
	return intent != nil && intent.Status == services.IntentStatusSucceeded
}

// CreatePaymentIntent requests a payment intent from the gateway for the
// booking's total price, in minor units. The booking itself is not touched,
// so a failed client flow can simply retry.
func CreatePaymentIntent(db *gorm.DB, gateway services.PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Booking not found"})
			return
		}

		if !canPayBooking(&booking, userId) {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized to pay for this booking"})
			return
		}

		if !canCreateIntent(&booking) {
			c.JSON(400, gin.H{"success": false, "message": "This booking has already been paid"})
			return
		}

		amount := int64(math.Round(booking.TotalPrice * 100))
		description := fmt.Sprintf("Booking #%d - %s", booking.ID, booking.BookingType)
		metadata := map[string]string{
			"bookingId": fmt.Sprintf("%d", booking.ID),
			"userId":    fmt.Sprintf("%d", booking.UserID),
			"vehicleId": fmt.Sprintf("%d", booking.VehicleID),
		}

		intent, err := gateway.CreateIntent(c.Request.Context(), amount, paymentCurrency, description, metadata)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create payment intent"})
			return
		}

		c.JSON(200, gin.H{"success": true, "clientSecret": intent.ClientSecret})
	}
}

// ConfirmPayment is the client-driven half of payment reconciliation: it
// queries the gateway for the intent's status and, only when the gateway
// reports success, moves the booking to confirmed/paid.
func ConfirmPayment(db *gorm.DB, gateway services.PaymentGateway, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			PaymentIntentID string `json:"paymentIntentId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.PaymentIntentID == "" {
			c.JSON(400, gin.H{"success": false, "message": "Payment intent id missing"})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Booking not found"})
			return
		}

		if !canPayBooking(&booking, userId) {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized to confirm this payment"})
			return
		}

		intent, err := gateway.RetrieveIntent(c.Request.Context(), input.PaymentIntentID)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve payment intent"})
			return
		}

		if !paymentCompleted(intent) {
			c.JSON(400, gin.H{"success": false, "message": "The payment has not been completed"})
			return
		}

		if err := applyPaymentSuccess(c, db, hub, &booking, intent.ID); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update booking"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": booking})
	}
}

// PaymentWebhook receives signed gateway events. A bad signature is rejected
// with 400; once the signature verifies the event is always acknowledged,
// whether or not a matching booking exists, since the gateway retries
// anything else.
func PaymentWebhook(db *gorm.DB, gateway services.PaymentGateway, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Failed to read payload"})
			return
		}

		event, err := gateway.ConstructWebhookEvent(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Webhook signature verification failed"})
			return
		}

		if event.Type == services.EventPaymentSucceeded && event.BookingID != "" {
			var booking models.Booking
			if err := db.First(&booking, event.BookingID).Error; err != nil {
				// Unknown booking: acknowledge and move on
				log.Printf("Webhook for unknown booking %s ignored", event.BookingID)
			} else if err := applyPaymentSuccess(c, db, hub, &booking, event.PaymentIntentID); err != nil {
				log.Printf("Failed to apply webhook payment for booking %d: %v", booking.ID, err)
			}
		}

		c.JSON(200, gin.H{"received": true})
	}
}

// applyPaymentSuccess moves a booking to confirmed/paid and fans the change
// out to websocket clients and Redis. Applying the same payment twice is a
// no-op, which keeps both reconciliation paths idempotent.
func applyPaymentSuccess(c *gin.Context, db *gorm.DB, hub *services.Hub, booking *models.Booking, paymentIntentID string) error {
	if !booking.MarkPaid(paymentIntentID) {
		return nil
	}

	if err := db.Save(booking).Error; err != nil {
		return err
	}

	hub.SendBookingUpdate(booking.UserID, "payment_received", services.BookingUpdate{
		BookingID:     booking.ID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		TotalPrice:    booking.TotalPrice,
	})

	if err := services.PublishBookingUpdate(c.Request.Context(), booking.ID, string(booking.Status), string(booking.PaymentStatus)); err != nil {
		log.Printf("Failed to publish booking update: %v", err)
	}

	return nil
}
