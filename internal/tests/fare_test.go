package tests

import (
	"errors"
	"math"
	"testing"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
)

// ──────────────────────────────────────────────
// FARE CALCULATION
// ──────────────────────────────────────────────

func TestFare_FlatRate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		distanceKm float64
		want       float64
	}{
		{"zero distance still charges base", 0, 5.0},
		{"one kilometre", 1, 7.5},
		{"ten kilometres", 10, 30.0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := service.ComputeFare(service.FareStrategyFlatRate, tc.distanceKm, 999)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFare_Metered(t *testing.T) {
	t.Parallel()

	// 2.50 base + 8 km * 1.25 + 20 min * 0.35 = 19.50
	got := service.ComputeFare(service.FareStrategyMetered, 8, 20)
	if math.Abs(got-19.50) > 1e-9 {
		t.Errorf("expected 19.50, got %v", got)
	}
}

func TestFare_UnknownStrategyFallsBackToFlatRate(t *testing.T) {
	t.Parallel()

	got := service.ComputeFare(service.FareStrategy("SURGE"), 4, 10)
	want := service.ComputeFare(service.FareStrategyFlatRate, 4, 10)
	if got != want {
		t.Errorf("expected flat-rate fallback %v, got %v", want, got)
	}
}

func TestFare_ApplyDiscount(t *testing.T) {
	t.Parallel()

	discount, final, err := service.ApplyDiscount(45.75, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(discount-4.575) > 1e-9 {
		t.Errorf("expected discount 4.575, got %v", discount)
	}
	if math.Abs(final-41.175) > 1e-9 {
		t.Errorf("expected final 41.175, got %v", final)
	}
}

func TestFare_ApplyDiscountBounds(t *testing.T) {
	t.Parallel()

	if _, _, err := service.ApplyDiscount(10, -1); !errors.Is(err, service.ErrInvalidDiscountPercent) {
		t.Errorf("expected ErrInvalidDiscountPercent for -1, got %v", err)
	}
	if _, _, err := service.ApplyDiscount(10, 101); !errors.Is(err, service.ErrInvalidDiscountPercent) {
		t.Errorf("expected ErrInvalidDiscountPercent for 101, got %v", err)
	}
	if _, _, err := service.ApplyDiscount(-0.01, 10); !errors.Is(err, service.ErrInvalidFareAmount) {
		t.Errorf("expected ErrInvalidFareAmount, got %v", err)
	}

	// Full discount zeroes the fare.
	_, final, err := service.ApplyDiscount(30, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final != 0 {
		t.Errorf("expected 0 after 100%% discount, got %v", final)
	}
}

func TestFare_RouteDistance(t *testing.T) {
	t.Parallel()

	if d := service.RouteDistance(nil); d != 0 {
		t.Errorf("expected 0 for empty route, got %v", d)
	}
	if d := service.RouteDistance([]domain.TelemetryPoint{{Latitude: 1, Longitude: 1}}); d != 0 {
		t.Errorf("expected 0 for single point, got %v", d)
	}

	// One degree of latitude is about 111.19 km on a 6371 km sphere.
	route := []domain.TelemetryPoint{
		{Latitude: 40.0, Longitude: -74.0},
		{Latitude: 41.0, Longitude: -74.0},
	}
	d := service.RouteDistance(route)
	if math.Abs(d-111.19) > 0.1 {
		t.Errorf("expected ~111.19 km, got %v", d)
	}

	// Distance accumulates over intermediate points.
	route = append(route, domain.TelemetryPoint{Latitude: 42.0, Longitude: -74.0})
	if d2 := service.RouteDistance(route); math.Abs(d2-2*d) > 0.1 {
		t.Errorf("expected ~%v km, got %v", 2*d, d2)
	}
}

func TestFare_Round2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{41.174, 41.17},
		{41.176, 41.18},
		{7.5, 7.5},
		{0, 0},
	}
	for _, tc := range cases {
		if got := service.Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
