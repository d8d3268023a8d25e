package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/domain"
)

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error
	DeleteBooking(ctx context.Context, bookingID uuid.UUID) error
}

type PackageRepository interface {
	ListActive(ctx context.Context) ([]domain.TourPackage, error)
	ListAll(ctx context.Context) ([]domain.TourPackage, error)
	GetByID(ctx context.Context, packageID uuid.UUID) (*domain.TourPackage, error)
	Create(ctx context.Context, pkg *domain.TourPackage) error
	Update(ctx context.Context, pkg *domain.TourPackage) error
	SetActive(ctx context.Context, packageID uuid.UUID, active bool) error
	Delete(ctx context.Context, packageID uuid.UUID) error
}

type ContentRepository interface {
	GetSection(ctx context.Context, section string) (*domain.SiteContent, error)
	UpsertSection(ctx context.Context, content *domain.SiteContent) error
	ListAttractions(ctx context.Context) ([]domain.Attraction, error)
	GetAttraction(ctx context.Context, attractionID uuid.UUID) (*domain.Attraction, error)
	SaveAttraction(ctx context.Context, attraction *domain.Attraction) error
	DeleteAttraction(ctx context.Context, attractionID uuid.UUID) error
}
