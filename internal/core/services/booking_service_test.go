package services_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/park_booking/internal/core/crop"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/ports/mocks"
	"github.com/srgjo27/park_booking/internal/core/services"
	"github.com/srgjo27/park_booking/internal/core/validation"
)

type bookingFixture struct {
	bookingRepo *mocks.BookingRepository
	packageRepo *mocks.PackageRepository
	storage     *mocks.ObjectStorage
	notifier    *mocks.Notifier
	dispatcher  *services.NotificationDispatcher
	service     *services.BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	f := &bookingFixture{
		bookingRepo: mocks.NewBookingRepository(t),
		packageRepo: mocks.NewPackageRepository(t),
		storage:     mocks.NewObjectStorage(t),
		notifier:    mocks.NewNotifier(t),
	}

	f.dispatcher = services.NewNotificationDispatcher(f.notifier, time.Second, zap.NewNop())
	f.service = services.NewBookingService(
		f.bookingRepo,
		f.packageRepo,
		f.storage,
		crop.New(1200),
		validation.New(),
		f.dispatcher,
		services.BookingConfig{
			PhotoMaxBytes:  1 << 20,
			UploadTimeout:  time.Second,
			PersistTimeout: time.Second,
			SignedURLTTL:   time.Hour,
		},
		zap.NewNop(),
	)
	return f
}

func (f *bookingFixture) wait(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.dispatcher.Wait(ctx))
}

func gameDrive() []domain.TourPackage {
	return []domain.TourPackage{
		{ID: uuid.New(), Name: "Game Drive", PricePerPerson: decimal.NewFromInt(100), IsActive: true},
	}
}

func janeForm() domain.BookingForm {
	return domain.BookingForm{
		FullName:    "Jane Doe",
		Email:       "jane@x.co",
		Phone:       "0123456789",
		TourPackage: "Game Drive",
		NumGuests:   "2",
		StartDate:   "2025-01-10",
		EndDate:     "2025-01-12",
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSubmit_Success(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)
	f.bookingRepo.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PricePerPerson.Equal(decimal.NewFromInt(100)) &&
			b.Status == domain.BookingPending &&
			b.NumGuests == 2 &&
			b.PhotoURL == nil
	})).Return(nil)
	f.notifier.On("NotifyBooking", mock.Anything, mock.MatchedBy(func(req domain.NotificationRequest) bool {
		return req.FullName == "Jane Doe" && req.TotalPrice().StringFixed(2) == "200.00"
	})).Return(nil)

	res, err := f.service.Submit(ctx, janeForm(), nil)
	f.wait(t)

	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, domain.BookingPending, res.Booking.Status)
	assert.Equal(t, domain.NewDate(2025, time.January, 10), res.Booking.StartDate)
	assert.Equal(t, []domain.SubmissionState{
		domain.StateValidating,
		domain.StatePersisting,
		domain.StateNotifying,
		domain.StateDone,
	}, res.History)
}

func TestSubmit_EndBeforeStart(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	form := janeForm()
	form.StartDate = "2025-01-12"
	form.EndDate = "2025-01-10"

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)

	res, err := f.service.Submit(ctx, form, &services.PhotoUpload{Data: testPNG(t, 40, 40)})

	assert.Nil(t, res)

	var subErr *services.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, domain.StateValidating, subErr.Step)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "endDate", verr.First().Field)

	f.bookingRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	f.storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_InactivePackage(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	form := janeForm()
	form.TourPackage = "Boat Safari"

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)

	_, err := f.service.Submit(ctx, form, nil)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tourPackage", verr.First().Field)
}

func TestSubmit_PackageLookupFails(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(nil, errors.New("connection refused"))

	_, err := f.service.Submit(ctx, janeForm(), nil)

	var subErr *services.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, domain.StateValidating, subErr.Step)
}

func TestSubmit_NotificationFailureStillSucceeds(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)
	f.bookingRepo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.notifier.On("NotifyBooking", mock.Anything, mock.Anything).Return(errors.New("endpoint unreachable"))

	res, err := f.service.Submit(ctx, janeForm(), nil)
	f.wait(t)

	require.NoError(t, err)
	assert.True(t, res.Submitted)
	f.bookingRepo.AssertNotCalled(t, "DeleteBooking", mock.Anything, mock.Anything)
}

func TestSubmit_NotificationTimeoutStillSucceeds(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)
	f.bookingRepo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	notified := make(chan error, 1)
	f.notifier.On("NotifyBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			notifyCtx := args.Get(0).(context.Context)
			<-notifyCtx.Done()
			notified <- notifyCtx.Err()
		}).
		Return(context.DeadlineExceeded)

	res, err := f.service.Submit(ctx, janeForm(), nil)

	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, domain.BookingPending, res.Booking.Status)

	f.wait(t)
	assert.ErrorIs(t, <-notified, context.DeadlineExceeded)
	f.bookingRepo.AssertNotCalled(t, "DeleteBooking", mock.Anything, mock.Anything)
}

func TestSubmit_NotificationIsNotCancelledWithRequest(t *testing.T) {
	f := newBookingFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)
	f.bookingRepo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	notified := make(chan error, 1)
	f.notifier.On("NotifyBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			notified <- args.Get(0).(context.Context).Err()
		}).
		Return(nil)

	_, err := f.service.Submit(ctx, janeForm(), nil)
	require.NoError(t, err)
	cancel()

	f.wait(t)
	assert.NoError(t, <-notified)
}

func TestSubmit_WithPhoto(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)
	f.storage.On("Put",
		mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "bookings/") && strings.HasSuffix(key, ".jpg")
		}),
		"image/jpeg",
		mock.AnythingOfType("[]uint8"),
	).Return("https://cdn.example.com/bookings/photo.jpg", nil)
	f.bookingRepo.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PhotoURL != nil && *b.PhotoURL == "https://cdn.example.com/bookings/photo.jpg"
	})).Return(nil)
	f.notifier.On("NotifyBooking", mock.Anything, mock.Anything).Return(nil)

	res, err := f.service.Submit(ctx, janeForm(), &services.PhotoUpload{
		Data: testPNG(t, 120, 80),
		Crop: crop.Params{Zoom: 1.5},
	})
	f.wait(t)

	require.NoError(t, err)
	assert.Contains(t, res.History, domain.StateUploading)
}

func TestSubmit_UploadFailureCreatesNothing(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)
	f.storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable"))

	res, err := f.service.Submit(ctx, janeForm(), &services.PhotoUpload{Data: testPNG(t, 40, 40)})

	assert.Nil(t, res)

	var subErr *services.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, domain.StateUploading, subErr.Step)
	f.bookingRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyBooking", mock.Anything, mock.Anything)
}

func TestSubmit_PhotoTooLarge(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)

	_, err := f.service.Submit(ctx, janeForm(), &services.PhotoUpload{Data: make([]byte, (1<<20)+1)})

	assert.ErrorIs(t, err, domain.ErrPhotoTooLarge)
	f.storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_UndecodablePhoto(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)

	_, err := f.service.Submit(ctx, janeForm(), &services.PhotoUpload{Data: []byte("not an image at all")})

	assert.ErrorIs(t, err, crop.ErrUnsupportedImage)
	f.bookingRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestSubmit_PersistFailure(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.packageRepo.On("ListActive", ctx).Return(gameDrive(), nil)
	f.bookingRepo.On("CreateBooking", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := f.service.Submit(ctx, janeForm(), nil)

	var subErr *services.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, domain.StatePersisting, subErr.Step)
	f.notifier.AssertNotCalled(t, "NotifyBooking", mock.Anything, mock.Anything)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("pending to confirmed", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookingRepo.On("GetBooking", ctx, id).Return(&domain.Booking{ID: id, Status: domain.BookingPending}, nil)
		f.bookingRepo.On("UpdateStatus", ctx, id, domain.BookingConfirmed).Return(nil)

		booking, err := f.service.UpdateStatus(ctx, id, domain.BookingConfirmed)

		require.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, booking.Status)
	})

	t.Run("cancelled cannot be reopened", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookingRepo.On("GetBooking", ctx, id).Return(&domain.Booking{ID: id, Status: domain.BookingCancelled}, nil)

		_, err := f.service.UpdateStatus(ctx, id, domain.BookingPending)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.service.UpdateStatus(ctx, id, domain.BookingStatus("archived"))

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookingRepo.On("GetBooking", ctx, id).Return(nil, domain.ErrNotFound)

		_, err := f.service.UpdateStatus(ctx, id, domain.BookingConfirmed)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListBookings_SignsPhotos(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	photo := "https://cdn.example.com/bookings/a.jpg"
	f.bookingRepo.On("ListBookings", ctx).Return([]domain.Booking{
		{ID: uuid.New(), PhotoURL: &photo},
		{ID: uuid.New()},
	}, nil)
	f.storage.On("SignedURL", ctx, photo, time.Hour).Return(photo+"?sig=abc", nil)

	bookings, err := f.service.ListBookings(ctx)

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, photo+"?sig=abc", *bookings[0].PhotoURL)
	assert.Nil(t, bookings[1].PhotoURL)
}

func TestDeleteBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.bookingRepo.On("DeleteBooking", ctx, id).Return(nil)

	assert.NoError(t, f.service.DeleteBooking(ctx, id))
}
