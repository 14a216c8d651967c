package database

import (
	"log"
	"os"

	"github.com/beintransports/booking-api/internal/models"
	"gorm.io/gorm"
)

// defaultVehicles is the initial catalog, from the smallest van to the
// largest truck.
var defaultVehicles = []models.Vehicle{
	{
		Name:        "Petit utilitaire",
		Capacity:    3,
		ImageURL:    "/images/vehicles/3m3.jpg",
		Description: "Idéal pour les petits déménagements ou le transport de quelques cartons.",
		BasePrice:   29,
		PricePerKm:  0.5,
		Length:      200,
		Width:       150,
		Height:      100,
		Available:   true,
	},
	{
		Name:        "Utilitaire moyen",
		Capacity:    6,
		ImageURL:    "/images/vehicles/6m3.jpg",
		Description: "Parfait pour un déménagement de studio ou le transport de meubles.",
		BasePrice:   39,
		PricePerKm:  0.7,
		Length:      250,
		Width:       180,
		Height:      130,
		Available:   true,
	},
	{
		Name:        "Grand utilitaire",
		Capacity:    10,
		ImageURL:    "/images/vehicles/10m3.jpg",
		Description: "Adapté pour le déménagement d'un appartement 2 pièces.",
		BasePrice:   49,
		PricePerKm:  0.9,
		Length:      300,
		Width:       200,
		Height:      170,
		Available:   true,
	},
	{
		Name:        "Camion",
		Capacity:    15,
		ImageURL:    "/images/vehicles/15m3.jpg",
		Description: "Idéal pour le déménagement d'un appartement 3 pièces.",
		BasePrice:   69,
		PricePerKm:  1.1,
		Length:      350,
		Width:       210,
		Height:      200,
		Available:   true,
	},
	{
		Name:        "Grand camion",
		Capacity:    20,
		ImageURL:    "/images/vehicles/20m3.jpg",
		Description: "Parfait pour le déménagement d'une maison ou grand appartement.",
		BasePrice:   89,
		PricePerKm:  1.3,
		Length:      400,
		Width:       220,
		Height:      220,
		Available:   true,
	},
}

// Seed loads the default vehicle catalog and the admin account when the
// database is empty. Existing data is never overwritten.
func Seed(db *gorm.DB) error {
	var vehicleCount int64
	if err := db.Model(&models.Vehicle{}).Count(&vehicleCount).Error; err != nil {
		return err
	}

	if vehicleCount == 0 {
		if err := db.Create(&defaultVehicles).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d vehicles", len(defaultVehicles))
	}

	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}

	if adminCount == 0 {
		admin := models.User{
			FirstName:  "Admin",
			LastName:   "System",
			Email:      os.Getenv("ADMIN_EMAIL"),
			Password:   os.Getenv("ADMIN_PASSWORD"),
			Phone:      "0641903254",
			Street:     "123 Rue de l'Administration",
			City:       "Paris",
			PostalCode: "75001",
			Role:       string(models.RoleAdmin),
		}
		if admin.Email == "" || admin.Password == "" {
			log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
			return nil
		}
		if err := admin.HashPassword(); err != nil {
			return err
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Seeded admin account %s", admin.Email)
	}

	return nil
}
