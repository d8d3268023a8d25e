package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/park_booking/internal/core/domain"
)

var mailboxPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PackageLookup resolves a tour package name to a currently active package.
type PackageLookup interface {
	Lookup(name string) (domain.TourPackage, bool)
}

type PackageSet map[string]domain.TourPackage

func NewPackageSet(packages []domain.TourPackage) PackageSet {
	set := make(PackageSet, len(packages))
	for _, p := range packages {
		if p.IsActive {
			set[p.Name] = p
		}
	}
	return set
}

func (s PackageSet) Lookup(name string) (domain.TourPackage, bool) {
	p, ok := s[name]
	return p, ok
}

type bookingFields struct {
	FullName    string `json:"fullName" validate:"min=2,max=100"`
	Email       string `json:"email" validate:"required,max=255,email,mailbox"`
	Phone       string `json:"phone" validate:"min=10,max=20"`
	TourPackage string `json:"tourPackage" validate:"required"`
	NumGuests   int    `json:"numGuests" validate:"min=1,max=50"`
}

type packageFields struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

type attractionFields struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

var bookingFieldOrder = []string{"fullName", "email", "phone", "tourPackage", "numGuests", "startDate", "endDate"}

var messages = map[string]string{
	"fullName.min":         "Name must be at least 2 characters",
	"fullName.max":         "Name too long",
	"email.required":       "Invalid email address",
	"email.email":          "Invalid email address",
	"email.mailbox":        "Invalid email address",
	"email.max":            "Email too long",
	"phone.min":            "Phone number must be at least 10 digits",
	"phone.max":            "Phone number too long",
	"tourPackage.required": "Please select a tour package",
	"numGuests.min":        "At least 1 guest required",
	"numGuests.max":        "Maximum 50 guests",
	"name.required":        "Package name is required",
	"name.max":             "Package name too long",
	"title.required":       "Title is required",
	"title.max":            "Title too long",
	"description.max":      "Description too long",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return mailboxPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Booking checks a raw booking form. When packages is nil the tour package only has to be
// non-empty. Bad input is reported as *domain.ValidationError; any other error is a bug.
func (v *Validator) Booking(form domain.BookingForm, packages PackageLookup) (*domain.BookingRequest, error) {
	fields := bookingFields{
		FullName:    strings.TrimSpace(form.FullName),
		Email:       strings.TrimSpace(form.Email),
		Phone:       strings.TrimSpace(form.Phone),
		TourPackage: strings.TrimSpace(form.TourPackage),
	}

	guests, guestsMsg := parseGuests(form.NumGuests)
	fields.NumGuests = guests

	errs, err := v.structErrors(fields)
	if err != nil {
		return nil, err
	}

	if guestsMsg != "" {
		errs["numGuests"] = guestsMsg
	}

	if _, bad := errs["tourPackage"]; !bad && packages != nil {
		if _, ok := packages.Lookup(fields.TourPackage); !ok {
			errs["tourPackage"] = "Please select an available tour package"
		}
	}

	start, startErr := domain.ParseDate(form.StartDate)
	end, endErr := domain.ParseDate(form.EndDate)
	switch {
	case strings.TrimSpace(form.StartDate) == "":
		errs["startDate"] = "Please select a start date"
	case startErr != nil:
		errs["startDate"] = "Start date must be a valid date"
	}
	switch {
	case strings.TrimSpace(form.EndDate) == "":
		errs["endDate"] = "Please select an end date"
	case endErr != nil:
		errs["endDate"] = "End date must be a valid date"
	case startErr == nil && end.Before(start.Time):
		errs["endDate"] = "End date must be on or after the start date"
	}

	if len(errs) > 0 {
		return nil, ordered(errs, bookingFieldOrder)
	}

	return &domain.BookingRequest{
		FullName:    fields.FullName,
		Email:       fields.Email,
		Phone:       fields.Phone,
		TourPackage: fields.TourPackage,
		NumGuests:   fields.NumGuests,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// Notification applies the booking rules to a notification payload, without the active package
// check, and additionally requires a non-negative price per person.
func (v *Validator) Notification(payload domain.NotificationPayload) (*domain.NotificationRequest, error) {
	req, err := v.Booking(payload.Form(), nil)

	var verr *domain.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return nil, err
	}

	var priceMsg string
	switch {
	case payload.PricePerPerson == nil:
		priceMsg = "Price per person is required"
	case payload.PricePerPerson.IsNegative():
		priceMsg = "Price per person must not be negative"
	}

	if priceMsg != "" {
		if verr == nil {
			verr = &domain.ValidationError{}
		}
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "pricePerPerson", Message: priceMsg})
	}
	if verr != nil {
		return nil, verr
	}

	return &domain.NotificationRequest{
		BookingRequest: *req,
		PricePerPerson: *payload.PricePerPerson,
	}, nil
}

func (v *Validator) Package(in domain.PackageInput) (domain.PackageInput, error) {
	fields := packageFields{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	errs, err := v.structErrors(fields)
	if err != nil {
		return in, err
	}
	if in.PricePerPerson.IsNegative() {
		errs["price_per_person"] = "Price per person must not be negative"
	}
	if len(errs) > 0 {
		return in, ordered(errs, []string{"name", "description", "price_per_person"})
	}

	in.Name = fields.Name
	in.Description = fields.Description
	in.PricePerPerson = in.PricePerPerson.Round(2)
	return in, nil
}

func (v *Validator) Attraction(in domain.AttractionInput) (domain.AttractionInput, error) {
	fields := attractionFields{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
	errs, err := v.structErrors(fields)
	if err != nil {
		return in, err
	}
	if len(errs) > 0 {
		return in, ordered(errs, []string{"title", "description"})
	}

	in.Title = fields.Title
	in.Description = fields.Description
	return in, nil
}

func (v *Validator) structErrors(s any) (map[string]string, error) {
	errs := map[string]string{}

	err := v.validate.Struct(s)
	if err == nil {
		return errs, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate %T: %w", s, err)
	}

	for _, fe := range verrs {
		key := fe.Field() + "." + fe.Tag()
		msg, ok := messages[key]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		errs[fe.Field()] = msg
	}
	return errs, nil
}

func parseGuests(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Number of guests is required"
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, ""
	}

	// Accept integral JSON numbers such as "2.0". The range is checked before converting so
	// values beyond int64 cannot wrap into range.
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return 0, "Number of guests must be a whole number"
	}
	switch {
	case d.LessThan(decimal.NewFromInt(1)):
		return 0, messages["numGuests.min"]
	case d.GreaterThan(decimal.NewFromInt(50)):
		return 0, messages["numGuests.max"]
	}
	return int(d.IntPart()), ""
}

func ordered(errs map[string]string, order []string) *domain.ValidationError {
	out := &domain.ValidationError{}
	for _, field := range order {
		if msg, ok := errs[field]; ok {
			out.Fields = append(out.Fields, domain.FieldError{Field: field, Message: msg})
		}
	}
	return out
}
