package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/validation"
)

func activePackages() validation.PackageSet {
	return validation.NewPackageSet([]domain.TourPackage{
		{Name: "Game Drive", PricePerPerson: decimal.NewFromInt(100), IsActive: true},
		{Name: "Boat Safari", PricePerPerson: decimal.NewFromInt(80), IsActive: false},
	})
}

func validForm() domain.BookingForm {
	return domain.BookingForm{
		FullName:    "  Jane Doe ",
		Email:       " jane@example.com",
		Phone:       "1234567890",
		TourPackage: "Game Drive",
		NumGuests:   "2",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
	}
}

func TestBooking_Valid(t *testing.T) {
	v := validation.New()

	req, err := v.Booking(validForm(), activePackages())

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", req.FullName)
	assert.Equal(t, "jane@example.com", req.Email)
	assert.Equal(t, 2, req.NumGuests)
	assert.Equal(t, domain.NewDate(2025, time.June, 1), req.StartDate)
	assert.Equal(t, domain.NewDate(2025, time.June, 3), req.EndDate)
}

func TestBooking_SameDayIsValid(t *testing.T) {
	form := validForm()
	form.EndDate = form.StartDate

	_, err := validation.New().Booking(form, activePackages())

	assert.NoError(t, err)
}

func TestBooking_Revalidation(t *testing.T) {
	v := validation.New()

	first, err := v.Booking(validForm(), activePackages())
	require.NoError(t, err)

	second, err := v.Booking(first.Form(), activePackages())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBooking_SingleViolation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *domain.BookingForm)
		field   string
		message string
	}{
		{"short name", func(f *domain.BookingForm) { f.FullName = " J " }, "fullName", "Name must be at least 2 characters"},
		{"long name", func(f *domain.BookingForm) { f.FullName = strings.Repeat("a", 101) }, "fullName", "Name too long"},
		{"bad email", func(f *domain.BookingForm) { f.Email = "jane@example" }, "email", "Invalid email address"},
		{"empty email", func(f *domain.BookingForm) { f.Email = "  " }, "email", "Invalid email address"},
		{"long email", func(f *domain.BookingForm) { f.Email = strings.Repeat("a", 250) + "@example.com" }, "email", "Email too long"},
		{"short phone", func(f *domain.BookingForm) { f.Phone = "12345" }, "phone", "Phone number must be at least 10 digits"},
		{"long phone", func(f *domain.BookingForm) { f.Phone = strings.Repeat("1", 21) }, "phone", "Phone number too long"},
		{"no package", func(f *domain.BookingForm) { f.TourPackage = "" }, "tourPackage", "Please select a tour package"},
		{"inactive package", func(f *domain.BookingForm) { f.TourPackage = "Boat Safari" }, "tourPackage", "Please select an available tour package"},
		{"unknown package", func(f *domain.BookingForm) { f.TourPackage = "Hot Air Balloon" }, "tourPackage", "Please select an available tour package"},
		{"zero guests", func(f *domain.BookingForm) { f.NumGuests = "0" }, "numGuests", "At least 1 guest required"},
		{"too many guests", func(f *domain.BookingForm) { f.NumGuests = "51" }, "numGuests", "Maximum 50 guests"},
		{"guests beyond int64", func(f *domain.BookingForm) { f.NumGuests = "18446744073709551621" }, "numGuests", "Maximum 50 guests"},
		{"guests below int64", func(f *domain.BookingForm) { f.NumGuests = "-18446744073709551615" }, "numGuests", "At least 1 guest required"},
		{"large integral decimal guests", func(f *domain.BookingForm) { f.NumGuests = "18446744073709551621.0" }, "numGuests", "Maximum 50 guests"},
		{"fractional guests", func(f *domain.BookingForm) { f.NumGuests = "2.5" }, "numGuests", "Number of guests must be a whole number"},
		{"missing guests", func(f *domain.BookingForm) { f.NumGuests = "" }, "numGuests", "Number of guests is required"},
		{"missing start", func(f *domain.BookingForm) { f.StartDate = "" }, "startDate", "Please select a start date"},
		{"bad start", func(f *domain.BookingForm) { f.StartDate = "2025-13-01" }, "startDate", "Start date must be a valid date"},
		{"missing end", func(f *domain.BookingForm) { f.EndDate = "" }, "endDate", "Please select an end date"},
		{"end before start", func(f *domain.BookingForm) { f.EndDate = "2025-05-30" }, "endDate", "End date must be on or after the start date"},
	}

	v := validation.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			req, err := v.Booking(form, activePackages())

			assert.Nil(t, req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.First().Field)
			assert.Equal(t, tt.message, verr.First().Message)
		})
	}
}

func TestBooking_CollectsAllViolationsInOrder(t *testing.T) {
	form := domain.BookingForm{
		FullName:  "J",
		Email:     "nope",
		Phone:     "1",
		NumGuests: "99",
		StartDate: "2025-06-03",
		EndDate:   "2025-06-01",
	}

	_, err := validation.New().Booking(form, activePackages())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"fullName", "email", "phone", "tourPackage", "numGuests", "endDate"}, fields)
}

func TestBooking_NilLookupOnlyRequiresPackageName(t *testing.T) {
	form := validForm()
	form.TourPackage = "Anything"

	req, err := validation.New().Booking(form, nil)

	require.NoError(t, err)
	assert.Equal(t, "Anything", req.TourPackage)
}

func TestNotification_MissingPrice(t *testing.T) {
	payload := domain.NotificationPayload{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "1234567890",
		TourPackage: "Game Drive",
		NumGuests:   "2",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
	}

	_, err := validation.New().Notification(payload)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	f, ok := verr.For("pricePerPerson")
	assert.True(t, ok)
	assert.Equal(t, "Price per person is required", f.Message)
}

func TestNotification_NegativePriceAndBadEmail(t *testing.T) {
	price := decimal.NewFromInt(-1)
	payload := domain.NotificationPayload{
		FullName:       "Jane Doe",
		Email:          "jane",
		Phone:          "1234567890",
		TourPackage:    "Game Drive",
		NumGuests:      "2",
		StartDate:      "2025-06-01",
		EndDate:        "2025-06-03",
		PricePerPerson: &price,
	}

	_, err := validation.New().Notification(payload)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "email", verr.Fields[0].Field)
	assert.Equal(t, "pricePerPerson", verr.Fields[1].Field)
}

func TestNotification_HugeGuestCount(t *testing.T) {
	price := decimal.NewFromInt(150)
	payload := domain.NotificationPayload{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "1234567890",
		TourPackage:    "Game Drive",
		NumGuests:      "18446744073709551621",
		StartDate:      "2025-06-01",
		EndDate:        "2025-06-03",
		PricePerPerson: &price,
	}

	req, err := validation.New().Notification(payload)

	assert.Nil(t, req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "numGuests", verr.First().Field)
	assert.Equal(t, "Maximum 50 guests", verr.First().Message)
}

func TestNotification_Valid(t *testing.T) {
	price := decimal.NewFromInt(150)
	payload := domain.NotificationPayload{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "1234567890",
		TourPackage:    "Game Drive",
		NumGuests:      "3",
		StartDate:      "2025-06-01",
		EndDate:        "2025-06-03",
		PricePerPerson: &price,
	}

	req, err := validation.New().Notification(payload)

	require.NoError(t, err)
	assert.Equal(t, "450.00", req.TotalPrice().StringFixed(2))
}

func TestPackage(t *testing.T) {
	v := validation.New()

	in, err := v.Package(domain.PackageInput{Name: " Game Drive ", PricePerPerson: decimal.RequireFromString("99.999")})
	require.NoError(t, err)
	assert.Equal(t, "Game Drive", in.Name)
	assert.Equal(t, "100.00", in.PricePerPerson.StringFixed(2))

	_, err = v.Package(domain.PackageInput{Name: "", PricePerPerson: decimal.NewFromInt(-5)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}
