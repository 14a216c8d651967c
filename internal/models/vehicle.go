package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Capacity    float64 `json:"capacity" gorm:"not null"` // volume in m3
	ImageURL    string  `json:"imageUrl" gorm:"default:'/images/default-vehicle.jpg'"`
	BasePrice   float64 `json:"basePrice" gorm:"not null"`
	PricePerKm  float64 `json:"pricePerKm" gorm:"not null"`
	Length      float64 `json:"length"` // dimensions in cm
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Available   bool    `json:"available" gorm:"default:true"`
}
