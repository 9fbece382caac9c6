package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
)

// ReceiptService generates receipts for completed trips.
type ReceiptService struct{}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// Generate creates the receipt record for a trip being completed.
func (s *ReceiptService) Generate(trip *domain.Trip) *domain.Receipt {
	return &domain.Receipt{
		ID:        uuid.New().String(),
		Generated: true,
		URL:       "/v1/trips/" + trip.ID + "/receipt",
	}
}

// Format renders the receipt as plain text (for email/print).
// The total is derived from the cent-rounded fare and discount so the
// printed numbers reconcile.
func (s *ReceiptService) Format(trip *domain.Trip) string {
	pickup := formatCoordinates(trip.StartLocation)
	dropoff := formatCoordinates(trip.EndLocation)

	fare := Round2(trip.ActualFare)
	discount := Round2(trip.DiscountAmount)
	total := Round2(fare - discount)

	text := `
=====================================
        RIDE RECEIPT
=====================================
Receipt ID: ` + trip.Receipt.ID + `
Trip ID: ` + trip.ID + `
Date: ` + trip.EndTime.Format("Jan 02, 2006 3:04 PM") + `

TRIP DETAILS
-------------------------------------
Pickup:      ` + pickup + `
Drop-off:    ` + dropoff + `
Duration:    ` + formatDuration(trip.EndTime.Sub(trip.StartTime)) + `

FARE BREAKDOWN
-------------------------------------
Fare:             $` + formatMoney(fare)

	if trip.DiscountPercent > 0 {
		text += fmt.Sprintf("\nDiscount (%d%%):   -$%s", trip.DiscountPercent, formatMoney(discount))
	}

	text += `
-------------------------------------
TOTAL:            $` + formatMoney(total) + `

PAYMENT
-------------------------------------
Method: ` + trip.PaymentMethod + `

=====================================
     Thank you for riding with us!
=====================================
`
	return text
}

func formatCoordinates(l domain.Location) string {
	if !l.HasCoordinates() {
		if l.Address != "" {
			return l.Address
		}
		return "unknown"
	}
	coords := fmt.Sprintf("(%.4f, %.4f)", *l.Latitude, *l.Longitude)
	if l.Address != "" {
		return l.Address + " " + coords
	}
	return coords
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", Round2(v))
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%d min", int(d.Minutes()))
}
