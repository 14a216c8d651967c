package utils

import (
	"testing"
)

func TestCalculateBookingPrice(t *testing.T) {
	// Medium van with one handler over the default distance:
	// 39 + 1*25 + 10*0.7 = 71
	result := CalculateBookingPrice(39, 0.7, 1, 0)

	if result.TotalPrice != 71 {
		t.Errorf("total = %v, want 71", result.TotalPrice)
	}
	if result.Distance != DefaultEstimatedDistanceKm {
		t.Errorf("distance = %v, want default %v", result.Distance, DefaultEstimatedDistanceKm)
	}
	if result.Breakdown.HandlerPrice != 25 {
		t.Errorf("handler price = %v, want 25", result.Breakdown.HandlerPrice)
	}
	if result.Breakdown.DistancePrice != 7 {
		t.Errorf("distance price = %v, want 7", result.Breakdown.DistancePrice)
	}
}

func TestCalculateBookingPriceNoHandlers(t *testing.T) {
	result := CalculateBookingPrice(29, 0.5, 0, 20)

	if result.TotalPrice != 39 {
		t.Errorf("total = %v, want 39", result.TotalPrice)
	}
	if result.Breakdown.HandlerPrice != 0 {
		t.Errorf("handler price = %v, want 0", result.Breakdown.HandlerPrice)
	}
}

func TestCalculateBookingPriceRounding(t *testing.T) {
	// 49 + 0 + 3*0.9 = 51.7, which is not representable exactly in binary
	result := CalculateBookingPrice(49, 0.9, 0, 3)

	if result.TotalPrice != 51.7 {
		t.Errorf("total = %v, want 51.7", result.TotalPrice)
	}
}

func TestCalculateBookingPriceDeterministic(t *testing.T) {
	a := CalculateBookingPrice(89, 1.3, 3, 42)
	b := CalculateBookingPrice(89, 1.3, 3, 42)

	if a != b {
		t.Errorf("same inputs gave %v and %v", a, b)
	}
}
