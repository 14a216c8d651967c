package handlers

import (
	"strconv"

	"github.com/beintransports/booking-api/internal/models"
	"github.com/beintransports/booking-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPriceEstimate quotes a booking before it is created, using the same
// formula the create path applies server-side. Public, since it only derives
// from the catalog.
func GetPriceEstimate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleID := c.Query("vehicleId")
		if vehicleID == "" {
			c.JSON(400, gin.H{"success": false, "message": "vehicleId query parameter required"})
			return
		}

		handlers, err := strconv.Atoi(c.DefaultQuery("handlers", "0"))
		if err != nil || handlers < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Invalid handlers parameter"})
			return
		}

		distance, err := strconv.ParseFloat(c.DefaultQuery("distance", "0"), 64)
		if err != nil || distance < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Invalid distance parameter"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		estimate := utils.CalculateBookingPrice(vehicle.BasePrice, vehicle.PricePerKm, handlers, distance)
		c.JSON(200, gin.H{"success": true, "data": estimate})
	}
}
