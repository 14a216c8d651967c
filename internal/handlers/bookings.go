package handlers

import (
	"log"
	"time"

	"github.com/beintransports/booking-api/internal/models"
	"github.com/beintransports/booking-api/internal/services"
	"github.com/beintransports/booking-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddressInput struct {
	Street     string   `json:"street" binding:"required"`
	City       string   `json:"city" binding:"required"`
	PostalCode string   `json:"postalCode" binding:"required"`
	Country    string   `json:"country"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

func (a AddressInput) toAddress() models.Address {
	addr := models.Address{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Lat:        a.Lat,
		Lng:        a.Lng,
	}
	if addr.Country == "" {
		addr.Country = "France"
	}
	return addr
}

type CreateBookingInput struct {
	VehicleID       uint               `json:"vehicleId" binding:"required"`
	BookingType     models.BookingType `json:"bookingType" binding:"required"`
	PickupAddress   AddressInput       `json:"pickupAddress" binding:"required"`
	DeliveryAddress AddressInput       `json:"deliveryAddress" binding:"required"`
	Date            time.Time          `json:"date" binding:"required"`
	TimeSlot        string             `json:"timeSlot" binding:"required"`
	Duration        float64            `json:"duration"`
	Handlers        int                `json:"handlers"`
	Distance        float64            `json:"distance"`
	Notes           string             `json:"notes"`
}

// CreateBooking handles the creation of a new booking. The total price is
// always computed server-side from the vehicle's rates; a client-supplied
// price is never trusted.
func CreateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if !models.ValidBookingType(input.BookingType) {
			c.JSON(400, gin.H{"success": false, "message": "Invalid booking type"})
			return
		}

		// Negative formula inputs would pull the total price down
		if input.Handlers < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Handlers cannot be negative"})
			return
		}
		if input.Distance < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Distance cannot be negative"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, input.VehicleID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		price := utils.CalculateBookingPrice(vehicle.BasePrice, vehicle.PricePerKm, input.Handlers, input.Distance)

		booking := models.Booking{
			UserID:          userId,
			VehicleID:       input.VehicleID,
			Status:          models.BookingStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			BookingType:     input.BookingType,
			PickupAddress:   input.PickupAddress.toAddress(),
			DeliveryAddress: input.DeliveryAddress.toAddress(),
			Distance:        price.Distance,
			Date:            input.Date,
			TimeSlot:        input.TimeSlot,
			Duration:        input.Duration,
			Handlers:        input.Handlers,
			TotalPrice:      price.TotalPrice,
			Notes:           input.Notes,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create booking"})
			return
		}

		booking.Vehicle = vehicle
		c.JSON(201, gin.H{"success": true, "data": booking})
	}
}

// GetBookings lists bookings: all of them for admins, own only for clients
func GetBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		role := c.GetString("role")

		query := db.Preload("Vehicle").Preload("User")
		if !isAdmin(role) {
			query = query.Where("user_id = ?", userId)
		}

		var bookings []models.Booking
		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"success": true, "count": len(bookings), "data": bookings})
	}
}

// GetBooking retrieves a single booking for its owner or an admin
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		role := c.GetString("role")

		var booking models.Booking
		if err := db.Preload("Vehicle").Preload("User").First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Booking not found"})
			return
		}

		if !canAccessBooking(&booking, userId, role) {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized to access this booking"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": booking})
	}
}

type UpdateBookingInput struct {
	BookingType     *models.BookingType   `json:"bookingType"`
	PickupAddress   *AddressInput         `json:"pickupAddress"`
	DeliveryAddress *AddressInput         `json:"deliveryAddress"`
	Date            *time.Time            `json:"date"`
	TimeSlot        *string               `json:"timeSlot"`
	Duration        *float64              `json:"duration"`
	Handlers        *int                  `json:"handlers"`
	Distance        *float64              `json:"distance"`
	Notes           *string               `json:"notes"`
	Status          *models.BookingStatus `json:"status"`
}

// UpdateBooking mutates a booking. Clients may only touch pending bookings;
// admins may also move the status forward through the transition table.
// The owning user, the vehicle and the payment status are immutable here:
// paid/confirmed is only ever set by the payment reconciliation path.
func UpdateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		role := c.GetString("role")

		var input UpdateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.Handlers != nil && *input.Handlers < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Handlers cannot be negative"})
			return
		}
		if input.Distance != nil && *input.Distance < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Distance cannot be negative"})
			return
		}

		var booking models.Booking
		if err := db.Preload("Vehicle").First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Booking not found"})
			return
		}

		if !canAccessBooking(&booking, userId, role) {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized to modify this booking"})
			return
		}

		if !booking.CanClientUpdate() && !isAdmin(role) {
			c.JSON(400, gin.H{"success": false, "message": "Cannot modify a " + string(booking.Status) + " booking"})
			return
		}

		if input.Status != nil {
			if !isAdmin(role) {
				c.JSON(403, gin.H{"success": false, "message": "Only admins can change the booking status"})
				return
			}
			if *input.Status == models.BookingStatusConfirmed {
				c.JSON(400, gin.H{"success": false, "message": "Bookings are confirmed through payment only"})
				return
			}
			if !booking.CanTransitionTo(*input.Status) {
				c.JSON(400, gin.H{"success": false, "message": "Illegal status transition from " + string(booking.Status)})
				return
			}
			booking.Status = *input.Status
		}

		if input.BookingType != nil {
			if !models.ValidBookingType(*input.BookingType) {
				c.JSON(400, gin.H{"success": false, "message": "Invalid booking type"})
				return
			}
			booking.BookingType = *input.BookingType
		}
		if input.PickupAddress != nil {
			booking.PickupAddress = input.PickupAddress.toAddress()
		}
		if input.DeliveryAddress != nil {
			booking.DeliveryAddress = input.DeliveryAddress.toAddress()
		}
		if input.Date != nil {
			booking.Date = *input.Date
		}
		if input.TimeSlot != nil {
			booking.TimeSlot = *input.TimeSlot
		}
		if input.Duration != nil {
			booking.Duration = *input.Duration
		}
		if input.Notes != nil {
			booking.Notes = *input.Notes
		}

		// Recompute the price when an input of the formula changed
		if input.Handlers != nil || input.Distance != nil {
			if input.Handlers != nil {
				booking.Handlers = *input.Handlers
			}
			if input.Distance != nil {
				booking.Distance = *input.Distance
			}
			price := utils.CalculateBookingPrice(booking.Vehicle.BasePrice, booking.Vehicle.PricePerKm, booking.Handlers, booking.Distance)
			booking.Distance = price.Distance
			booking.TotalPrice = price.TotalPrice
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update booking"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": booking})
	}
}

// CancelBooking moves a booking to cancelled. Completed and already
// cancelled bookings cannot be cancelled. The payment status is left as-is:
// refunds are a manual, out-of-band operation.
func CancelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		role := c.GetString("role")

		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Booking not found"})
			return
		}

		if !canAccessBooking(&booking, userId, role) {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized to cancel this booking"})
			return
		}

		if err := booking.Cancel(); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to cancel booking"})
			return
		}

		hub.SendBookingUpdate(booking.UserID, "booking_cancelled", services.BookingUpdate{
			BookingID:     booking.ID,
			Status:        string(booking.Status),
			PaymentStatus: string(booking.PaymentStatus),
			TotalPrice:    booking.TotalPrice,
		})

		if err := services.PublishBookingUpdate(c.Request.Context(), booking.ID, string(booking.Status), string(booking.PaymentStatus)); err != nil {
			log.Printf("Failed to publish booking update: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": booking})
	}
}
