package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

// CanTransition reports whether an administrator may move a booking from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is a visitor's request for a guided tour. PricePerPerson is the package price copied at
// submission time and is never rewritten afterwards.
type Booking struct {
	ID             uuid.UUID       `json:"id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	TourPackage    string          `json:"tour_package"`
	NumGuests      int             `json:"num_guests"`
	StartDate      Date            `json:"start_date"`
	EndDate        Date            `json:"end_date"`
	PhotoURL       *string         `json:"photo_url,omitempty"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	Status         BookingStatus   `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (b *Booking) TotalPrice() decimal.Decimal {
	return b.PricePerPerson.Mul(decimal.NewFromInt(int64(b.NumGuests)))
}
