package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/crop"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/ports"
	"github.com/srgjo27/park_booking/internal/core/validation"
	"github.com/srgjo27/park_booking/internal/platform/monitoring"
	"go.uber.org/zap"
)

type BookingConfig struct {
	PhotoMaxBytes  int64
	UploadTimeout  time.Duration
	PersistTimeout time.Duration
	SignedURLTTL   time.Duration
}

// PhotoUpload is an optional image attached to a booking, with the crop the visitor chose.
type PhotoUpload struct {
	Data []byte
	Crop crop.Params
}

type SubmitResult struct {
	Submitted bool                     `json:"submitted"`
	Booking   *domain.Booking          `json:"booking"`
	History   []domain.SubmissionState `json:"-"`
}

// SubmissionError reports the step a submission failed at. Nothing was stored when it is returned.
type SubmissionError struct {
	Step domain.SubmissionState
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("booking submission failed at %s: %v", e.Step, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

type BookingService struct {
	bookingRepo ports.BookingRepository
	packageRepo ports.PackageRepository
	storage     ports.ObjectStorage
	cropper     *crop.Cropper
	validator   *validation.Validator
	dispatcher  *NotificationDispatcher
	cfg         BookingConfig
	log         *zap.Logger
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	packageRepo ports.PackageRepository,
	storage ports.ObjectStorage,
	cropper *crop.Cropper,
	validator *validation.Validator,
	dispatcher *NotificationDispatcher,
	cfg BookingConfig,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		storage:     storage,
		cropper:     cropper,
		validator:   validator,
		dispatcher:  dispatcher,
		cfg:         cfg,
		log:         log,
	}
}

// Submit validates a booking form, uploads the optional photo, stores the booking as pending and
// hands the notification to the dispatcher. Once the booking is stored Submit always succeeds.
func (s *BookingService) Submit(ctx context.Context, form domain.BookingForm, photo *PhotoUpload) (*SubmitResult, error) {
	sub := domain.NewSubmission()

	started := time.Now()
	packages, err := s.packageRepo.ListActive(ctx)
	if err != nil {
		return nil, s.fail(sub, fmt.Errorf("load tour packages: %w", err))
	}

	active := validation.NewPackageSet(packages)
	req, err := s.validator.Booking(form, active)
	if err != nil {
		return nil, s.fail(sub, err)
	}
	pkg, _ := active.Lookup(req.TourPackage)
	monitoring.ObserveStep(string(domain.StateValidating), time.Since(started))

	bookingID := uuid.New()

	var photoURL *string
	if photo != nil {
		if err := sub.Advance(domain.StateUploading); err != nil {
			return nil, err
		}

		started = time.Now()
		url, err := s.uploadPhoto(ctx, bookingID, photo)
		if err != nil {
			return nil, s.fail(sub, err)
		}
		monitoring.ObserveStep(string(domain.StateUploading), time.Since(started))
		photoURL = &url
	}

	if err := sub.Advance(domain.StatePersisting); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:             bookingID,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		TourPackage:    req.TourPackage,
		NumGuests:      req.NumGuests,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		PhotoURL:       photoURL,
		PricePerPerson: pkg.PricePerPerson,
		Status:         domain.BookingPending,
		CreatedAt:      time.Now().UTC(),
	}

	started = time.Now()
	persistCtx, cancel := context.WithTimeout(ctx, s.cfg.PersistTimeout)
	err = s.bookingRepo.CreateBooking(persistCtx, booking)
	cancel()
	if err != nil {
		return nil, s.fail(sub, err)
	}
	monitoring.ObserveStep(string(domain.StatePersisting), time.Since(started))

	if err := sub.Advance(domain.StateNotifying); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, booking.ID, domain.NotificationRequest{
		BookingRequest: *req,
		PricePerPerson: booking.PricePerPerson,
	})

	if err := sub.Advance(domain.StateDone); err != nil {
		return nil, err
	}

	monitoring.TrackSubmission("success", string(domain.StateDone))
	s.log.Info("booking submitted",
		zap.String("booking_id", booking.ID.String()),
		zap.String("tour_package", booking.TourPackage),
		zap.Int("num_guests", booking.NumGuests),
		zap.Bool("photo", photoURL != nil),
	)

	return &SubmitResult{Submitted: true, Booking: booking, History: sub.History}, nil
}

func (s *BookingService) uploadPhoto(ctx context.Context, bookingID uuid.UUID, photo *PhotoUpload) (string, error) {
	if int64(len(photo.Data)) > s.cfg.PhotoMaxBytes {
		return "", fmt.Errorf("%w: %d bytes", domain.ErrPhotoTooLarge, len(photo.Data))
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	cropped, err := s.cropper.Crop(uploadCtx, photo.Data, photo.Crop)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("bookings/%s.jpg", bookingID)
	url, err := s.storage.Put(uploadCtx, key, cropped.ContentType, cropped.Data)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return url, nil
}

func (s *BookingService) fail(sub *domain.Submission, err error) error {
	step := sub.State
	if ferr := sub.Fail(err); ferr != nil {
		return ferr
	}

	monitoring.TrackSubmission("failure", string(step))

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.log.Info("booking rejected", zap.String("field", verr.First().Field), zap.String("reason", verr.First().Message))
	} else {
		s.log.Error("booking submission failed", zap.String("step", string(step)), zap.Error(err))
	}

	return &SubmissionError{Step: step, Err: err}
}

// ListBookings returns every booking, newest first, with photo references resolved to
// time-limited URLs.
func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	for i := range bookings {
		if bookings[i].PhotoURL == nil {
			continue
		}

		signed, err := s.storage.SignedURL(ctx, *bookings[i].PhotoURL, s.cfg.SignedURLTTL)
		if err != nil {
			s.log.Warn("could not sign photo url", zap.String("booking_id", bookings[i].ID.String()), zap.Error(err))
			continue
		}
		bookings[i].PhotoURL = &signed
	}

	return bookings, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.IsValid() {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "status", Message: "Status must be pending, confirmed or cancelled"},
		}}
	}

	booking, err := s.bookingRepo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	s.log.Info("booking status changed",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(status)),
	)

	booking.Status = status
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	if err := s.bookingRepo.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	s.log.Info("booking deleted", zap.String("booking_id", bookingID.String()))
	return nil
}
