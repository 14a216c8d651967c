package handlers

import (
	"github.com/beintransports/booking-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUsers lists all users. Admin only, enforced by middleware.
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}

		c.JSON(200, gin.H{"success": true, "count": len(users), "data": users})
	}
}

// GetUser retrieves a single user by id
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// UpdateUser updates a user's details. Password changes are rejected on this
// route; they go through the user's own profile flow.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FirstName  *string `json:"firstName"`
			LastName   *string `json:"lastName"`
			Phone      *string `json:"phone"`
			Street     *string `json:"street"`
			City       *string `json:"city"`
			PostalCode *string `json:"postalCode"`
			Country    *string `json:"country"`
			Role       *string `json:"role"`
			Password   *string `json:"password"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.Password != nil {
			c.JSON(400, gin.H{"success": false, "message": "Password cannot be updated through this route"})
			return
		}

		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Street != nil {
			user.Street = *input.Street
		}
		if input.City != nil {
			user.City = *input.City
		}
		if input.PostalCode != nil {
			user.PostalCode = *input.PostalCode
		}
		if input.Country != nil {
			user.Country = *input.Country
		}
		if input.Role != nil {
			if *input.Role != string(models.RoleClient) && *input.Role != string(models.RoleAdmin) {
				c.JSON(400, gin.H{"success": false, "message": "Invalid role"})
				return
			}
			user.Role = *input.Role
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// DeleteUser removes a user account
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if err := db.Delete(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to delete user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{}})
	}
}
