package utils

import (
	"math"
)

// PriceCalculationResult contains the calculated price and breakdown
type PriceCalculationResult struct {
	TotalPrice float64        `json:"totalPrice"`
	Distance   float64        `json:"distance"`
	Breakdown  PriceBreakdown `json:"breakdown"`
}

// PriceBreakdown provides detailed price breakdown
type PriceBreakdown struct {
	BasePrice     float64 `json:"basePrice"`
	DistancePrice float64 `json:"distancePrice"`
	HandlerPrice  float64 `json:"handlerPrice"`
	Total         float64 `json:"total"`
}

const (
	// HandlerRate is the flat rate per handler in EUR
	HandlerRate = 25.0
	// DefaultEstimatedDistanceKm stands in for a routing API call
	DefaultEstimatedDistanceKm = 10.0
)

// CalculateBookingPrice derives the total price from the vehicle's base price,
// its per-km rate and the number of handlers. A distance of zero or less falls
// back to the default estimate. Amounts are rounded to cents.
func CalculateBookingPrice(basePrice, pricePerKm float64, handlers int, distanceKm float64) PriceCalculationResult {
	if distanceKm <= 0 {
		distanceKm = DefaultEstimatedDistanceKm
	}

	distancePrice := distanceKm * pricePerKm
	handlerPrice := float64(handlers) * HandlerRate
	total := basePrice + distancePrice + handlerPrice

	// Round to 2 decimal places
	total = math.Round(total*100) / 100
	distancePrice = math.Round(distancePrice*100) / 100

	return PriceCalculationResult{
		TotalPrice: total,
		Distance:   distanceKm,
		Breakdown: PriceBreakdown{
			BasePrice:     basePrice,
			DistancePrice: distancePrice,
			HandlerPrice:  handlerPrice,
			Total:         total,
		},
	}
}
