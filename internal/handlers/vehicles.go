package handlers

import (
	"log"

	"github.com/beintransports/booking-api/internal/models"
	"github.com/beintransports/booking-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetVehicles lists the vehicle catalog. Public. The listing is served from
// the Redis cache when warm; a miss falls through to the database and warms it.
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if cached, err := services.GetCachedVehicleCatalog(ctx); err == nil {
			c.JSON(200, gin.H{"success": true, "count": len(cached), "data": cached})
			return
		}

		var vehicles []models.Vehicle
		if err := db.Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch vehicles"})
			return
		}

		if err := services.CacheVehicleCatalog(ctx, vehicles); err != nil {
			log.Printf("Failed to cache vehicle catalog: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "count": len(vehicles), "data": vehicles})
	}
}

// GetVehicle retrieves a single vehicle. Public.
func GetVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": vehicle})
	}
}

type VehicleInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Capacity    float64 `json:"capacity" binding:"required"`
	BasePrice   float64 `json:"basePrice" binding:"required"`
	PricePerKm  float64 `json:"pricePerKm" binding:"required"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Available   *bool   `json:"available"`
}

// CreateVehicle adds a catalog entry. Admin only, enforced by middleware.
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		vehicle := models.Vehicle{
			Name:        input.Name,
			Description: input.Description,
			Capacity:    input.Capacity,
			BasePrice:   input.BasePrice,
			PricePerKm:  input.PricePerKm,
			Length:      input.Length,
			Width:       input.Width,
			Height:      input.Height,
			Available:   true,
		}
		if input.Available != nil {
			vehicle.Available = *input.Available
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create vehicle"})
			return
		}

		if err := services.InvalidateVehicleCatalog(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate vehicle catalog: %v", err)
		}

		c.JSON(201, gin.H{"success": true, "data": vehicle})
	}
}

// UpdateVehicle edits a catalog entry. Admin only.
func UpdateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        *string  `json:"name"`
			Description *string  `json:"description"`
			Capacity    *float64 `json:"capacity"`
			BasePrice   *float64 `json:"basePrice"`
			PricePerKm  *float64 `json:"pricePerKm"`
			Length      *float64 `json:"length"`
			Width       *float64 `json:"width"`
			Height      *float64 `json:"height"`
			Available   *bool    `json:"available"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		if input.Name != nil {
			vehicle.Name = *input.Name
		}
		if input.Description != nil {
			vehicle.Description = *input.Description
		}
		if input.Capacity != nil {
			vehicle.Capacity = *input.Capacity
		}
		if input.BasePrice != nil {
			vehicle.BasePrice = *input.BasePrice
		}
		if input.PricePerKm != nil {
			vehicle.PricePerKm = *input.PricePerKm
		}
		if input.Length != nil {
			vehicle.Length = *input.Length
		}
		if input.Width != nil {
			vehicle.Width = *input.Width
		}
		if input.Height != nil {
			vehicle.Height = *input.Height
		}
		if input.Available != nil {
			vehicle.Available = *input.Available
		}

		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update vehicle"})
			return
		}

		if err := services.InvalidateVehicleCatalog(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate vehicle catalog: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": vehicle})
	}
}

// DeleteVehicle removes a catalog entry. Admin only.
func DeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		if err := db.Delete(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to delete vehicle"})
			return
		}

		if err := services.InvalidateVehicleCatalog(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate vehicle catalog: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{}})
	}
}

// UploadVehicleImage stores a vehicle image in S3 (or local fallback) and
// records its URL on the vehicle. Admin only.
func UploadVehicleImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Image file required"})
			return
		}

		url, err := services.UploadImage(file, "vehicles")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to upload image"})
			return
		}

		vehicle.ImageURL = url
		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update vehicle"})
			return
		}

		if err := services.InvalidateVehicleCatalog(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate vehicle catalog: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": vehicle})
	}
}
