package handler

import (
	"testing"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
)

func TestTripResponse_FareFieldsReconcile(t *testing.T) {
	t.Parallel()

	// A $45.75 fare with a 10% discount stores unrounded amounts; the
	// response must show $4.58 off and a $41.17 final, not $41.18.
	discount, final, err := service.ApplyDiscount(45.75, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trip := &domain.Trip{
		ID:              "trip-1",
		CustomerID:      "cust-1",
		VehicleID:       "veh-1",
		Status:          domain.TripStatusCompleted,
		ActualFare:      45.75,
		DiscountPercent: 10,
		DiscountAmount:  discount,
		FinalFare:       final,
	}

	resp := tripResponse(trip)

	if resp.ActualFare != 45.75 {
		t.Errorf("expected actual fare 45.75, got %v", resp.ActualFare)
	}
	if resp.DiscountAmount != 4.58 {
		t.Errorf("expected discount 4.58, got %v", resp.DiscountAmount)
	}
	if resp.FinalFare != 41.17 {
		t.Errorf("expected final fare 41.17, got %v", resp.FinalFare)
	}
	if got := service.Round2(resp.ActualFare - resp.DiscountAmount); got != resp.FinalFare {
		t.Errorf("fare fields do not reconcile: %v - %v != %v",
			resp.ActualFare, resp.DiscountAmount, resp.FinalFare)
	}
}

func TestTripResponse_NoDiscount(t *testing.T) {
	t.Parallel()

	trip := &domain.Trip{
		ID:         "trip-2",
		Status:     domain.TripStatusCompleted,
		ActualFare: 19.5,
		FinalFare:  19.5,
	}

	resp := tripResponse(trip)

	if resp.DiscountAmount != 0 {
		t.Errorf("expected zero discount, got %v", resp.DiscountAmount)
	}
	if resp.FinalFare != 19.5 {
		t.Errorf("expected final fare 19.5, got %v", resp.FinalFare)
	}
}
