package service

import (
	"math"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
)

// FareStrategy computes a fare from trip distance and duration.
type FareStrategy string

const (
	// FareStrategyFlatRate charges a base amount plus a per-kilometre rate.
	FareStrategyFlatRate FareStrategy = "FLAT_RATE"

	// FareStrategyMetered charges for both distance and time.
	FareStrategyMetered FareStrategy = "METERED"
)

// Fare constants for the flat-rate strategy.
const (
	flatBaseFare  = 5.0
	flatPerKmRate = 2.5
)

// Fare constants for the metered strategy.
const (
	meteredBaseFare   = 2.50
	meteredPerKmRate  = 1.25
	meteredPerMinRate = 0.35
)

// ComputeFare calculates the fare for a trip of the given distance and
// duration under the selected strategy. Unknown strategies fall back to
// the flat rate.
func ComputeFare(strategy FareStrategy, distanceKm, durationMin float64) float64 {
	switch strategy {
	case FareStrategyMetered:
		return meteredBaseFare + distanceKm*meteredPerKmRate + durationMin*meteredPerMinRate
	default:
		return flatBaseFare + distanceKm*flatPerKmRate
	}
}

// ApplyDiscount computes the discount amount and final amount for a fare.
// The stored values are not rounded; rounding to two decimal places happens
// at presentation time only.
func ApplyDiscount(amount float64, percent int) (discountAmount, finalAmount float64, err error) {
	if amount < 0 {
		return 0, 0, ErrInvalidFareAmount
	}
	if percent < 0 || percent > 100 {
		return 0, 0, ErrInvalidDiscountPercent
	}

	discountAmount = amount * float64(percent) / 100
	return discountAmount, amount - discountAmount, nil
}

// Round2 rounds a monetary value to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RouteDistance sums the great-circle distance between consecutive points,
// in kilometres. Points are taken in the order given; no smoothing and no
// outlier rejection.
func RouteDistance(points []domain.TelemetryPoint) float64 {
	if len(points) < 2 {
		return 0
	}

	var distance float64
	for i := 1; i < len(points); i++ {
		prev := points[i-1]
		curr := points[i]
		distance += haversine(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)
	}

	return distance
}

// haversine returns the great-circle distance between two coordinates in kilometres.
func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
