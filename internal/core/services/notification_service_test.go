package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/ports/mocks"
	"github.com/srgjo27/park_booking/internal/core/services"
	"github.com/srgjo27/park_booking/internal/core/validation"
)

const operatorEmail = "bookings@park.example"

func newNotificationService(t *testing.T) (*services.NotificationService, *mocks.Mailer) {
	mailer := mocks.NewMailer(t)
	svc := services.NewNotificationService(mailer, validation.New(), services.NotificationConfig{
		OperatorEmail: operatorEmail,
		OperatorPhone: "+256 785393756",
		ParkName:      "Murchison Falls National Park",
	}, zap.NewNop())
	return svc, mailer
}

func notificationPayload(price int64, guests string) domain.NotificationPayload {
	p := decimal.NewFromInt(price)
	return domain.NotificationPayload{
		FullName:       "Jane Doe",
		Email:          "jane@x.co",
		Phone:          "0123456789",
		TourPackage:    "Game Drive",
		NumGuests:      json.Number(guests),
		StartDate:      "2025-01-10",
		EndDate:        "2025-01-12",
		PricePerPerson: &p,
	}
}

func toOperator(e domain.Email) bool { return e.To == operatorEmail }
func toCustomer(e domain.Email) bool { return e.To == "jane@x.co" }

func TestNotificationSend_Success(t *testing.T) {
	svc, mailer := newNotificationService(t)
	ctx := context.Background()

	var admin, customer domain.Email
	mailer.On("Send", ctx, mock.MatchedBy(toOperator)).
		Run(func(args mock.Arguments) { admin = args.Get(1).(domain.Email) }).
		Return("admin-1", nil)
	mailer.On("Send", ctx, mock.MatchedBy(toCustomer)).
		Run(func(args mock.Arguments) { customer = args.Get(1).(domain.Email) }).
		Return("customer-1", nil)

	res, err := svc.Send(ctx, notificationPayload(150, "3"))

	require.NoError(t, err)
	assert.Equal(t, domain.Delivery{ID: "admin-1", Status: domain.DeliverySent}, res.AdminEmail)
	assert.Equal(t, domain.Delivery{ID: "customer-1", Status: domain.DeliverySent}, res.CustomerEmail)

	assert.Equal(t, "New Booking: Game Drive", admin.Subject)
	assert.Contains(t, admin.HTMLBody, "$450.00")
	assert.Contains(t, admin.HTMLBody, "$150.00")
	assert.Contains(t, admin.HTMLBody, "January 10, 2025")
	assert.Contains(t, admin.HTMLBody, "January 12, 2025")

	assert.Equal(t, "Booking Confirmation - Murchison Falls National Park", customer.Subject)
	assert.Equal(t, "Jane Doe", customer.ToName)
	assert.Contains(t, customer.HTMLBody, "within 24 hours")
	assert.Contains(t, customer.HTMLBody, "Payment instructions will be sent upon confirmation")
	assert.Contains(t, customer.TextBody, "Total Price: $450.00")
}

func TestNotificationSend_EscapesUserInput(t *testing.T) {
	svc, mailer := newNotificationService(t)
	ctx := context.Background()

	var customer domain.Email
	mailer.On("Send", ctx, mock.MatchedBy(toOperator)).Return("admin-1", nil)
	mailer.On("Send", ctx, mock.MatchedBy(toCustomer)).
		Run(func(args mock.Arguments) { customer = args.Get(1).(domain.Email) }).
		Return("customer-1", nil)

	payload := notificationPayload(100, "1")
	payload.FullName = `<script>alert("x")</script>`

	_, err := svc.Send(ctx, payload)

	require.NoError(t, err)
	assert.NotContains(t, customer.HTMLBody, "<script>")
	assert.Contains(t, customer.HTMLBody, "&lt;script&gt;")
	assert.NotContains(t, customer.HTMLBody, `"x"`)
}

func TestNotificationSend_SubjectHasNoLineBreaks(t *testing.T) {
	svc, mailer := newNotificationService(t)
	ctx := context.Background()

	var admin domain.Email
	mailer.On("Send", ctx, mock.MatchedBy(toOperator)).
		Run(func(args mock.Arguments) { admin = args.Get(1).(domain.Email) }).
		Return("admin-1", nil)
	mailer.On("Send", ctx, mock.MatchedBy(toCustomer)).Return("customer-1", nil)

	payload := notificationPayload(100, "1")
	payload.TourPackage = "Game\r\nBcc: someone@example.com"

	_, err := svc.Send(ctx, payload)

	require.NoError(t, err)
	assert.Equal(t, "New Booking: Game Bcc: someone@example.com", admin.Subject)
}

func TestNotificationSend_MissingPrice(t *testing.T) {
	svc, mailer := newNotificationService(t)

	payload := notificationPayload(100, "2")
	payload.PricePerPerson = nil

	res, err := svc.Send(context.Background(), payload)

	assert.Nil(t, res)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	_, ok := verr.For("pricePerPerson")
	assert.True(t, ok)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotificationSend_OneFailureStillAttemptsBoth(t *testing.T) {
	svc, mailer := newNotificationService(t)
	ctx := context.Background()

	mailer.On("Send", ctx, mock.MatchedBy(toOperator)).Return("", errors.New("rate limited"))
	mailer.On("Send", ctx, mock.MatchedBy(toCustomer)).Return("customer-1", nil)

	res, err := svc.Send(ctx, notificationPayload(100, "2"))

	var sendErr *services.SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Contains(t, err.Error(), "admin: rate limited")
	require.NotNil(t, res)
	assert.Equal(t, domain.DeliveryFailed, res.AdminEmail.Status)
	assert.Equal(t, domain.DeliverySent, res.CustomerEmail.Status)
	mailer.AssertNumberOfCalls(t, "Send", 2)
}

func TestNotifyBooking_InProcess(t *testing.T) {
	svc, mailer := newNotificationService(t)
	ctx := context.Background()

	mailer.On("Send", ctx, mock.Anything).Return("id", nil).Twice()

	req, err := validation.New().Notification(notificationPayload(80, "4"))
	require.NoError(t, err)

	assert.NoError(t, svc.NotifyBooking(ctx, *req))
}
