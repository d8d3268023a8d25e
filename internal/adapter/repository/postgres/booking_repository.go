package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/domain"
)

const bookingColumns = `id, user_id, full_name, email, phone, tour_package, num_guests, start_date, end_date, photo_url, price_per_person, status, created_at`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO tour_bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var userID uuid.NullUUID
	if booking.UserID != nil {
		userID = uuid.NullUUID{UUID: *booking.UserID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		userID,
		booking.FullName,
		booking.Email,
		booking.Phone,
		booking.TourPackage,
		booking.NumGuests,
		booking.StartDate,
		booking.EndDate,
		booking.PhotoURL,
		booking.PricePerPerson,
		booking.Status,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM tour_bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM tour_bookings ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// UpdateStatus only ever touches the status column; the price snapshot stays as inserted.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	query := `
	UPDATE tour_bookings
	SET status = $1
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, bookingID)
	if err != nil {
		return err
	}

	return expectOneRow(result, "booking", bookingID)
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tour_bookings WHERE id = $1`, bookingID)
	if err != nil {
		return err
	}

	return expectOneRow(result, "booking", bookingID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var userID uuid.NullUUID
	var photoURL sql.NullString

	err := row.Scan(
		&booking.ID,
		&userID,
		&booking.FullName,
		&booking.Email,
		&booking.Phone,
		&booking.TourPackage,
		&booking.NumGuests,
		&booking.StartDate,
		&booking.EndDate,
		&photoURL,
		&booking.PricePerPerson,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		id := userID.UUID
		booking.UserID = &id
	}

	if photoURL.Valid && photoURL.String != "" {
		booking.PhotoURL = &photoURL.String
	}

	return &booking, nil
}

func expectOneRow(result sql.Result, entity string, id uuid.UUID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	return nil
}
