package domain

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// BookingForm is the raw field set submitted from the booking form.
type BookingForm struct {
	FullName    string `json:"fullName" form:"fullName"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	TourPackage string `json:"tourPackage" form:"tourPackage"`
	NumGuests   string `json:"numGuests" form:"numGuests"`
	StartDate   string `json:"startDate" form:"startDate"`
	EndDate     string `json:"endDate" form:"endDate"`
}

// BookingRequest is a validated and normalized booking form.
type BookingRequest struct {
	FullName    string
	Email       string
	Phone       string
	TourPackage string
	NumGuests   int
	StartDate   Date
	EndDate     Date
}

func (r BookingRequest) Form() BookingForm {
	return BookingForm{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		TourPackage: r.TourPackage,
		NumGuests:   strconv.Itoa(r.NumGuests),
		StartDate:   r.StartDate.String(),
		EndDate:     r.EndDate.String(),
	}
}

// NotificationPayload is the JSON body accepted by the notification endpoint.
type NotificationPayload struct {
	FullName       string           `json:"fullName"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	TourPackage    string           `json:"tourPackage"`
	NumGuests      json.Number      `json:"numGuests"`
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
	PricePerPerson *decimal.Decimal `json:"pricePerPerson"`
}

func (p NotificationPayload) Form() BookingForm {
	return BookingForm{
		FullName:    p.FullName,
		Email:       p.Email,
		Phone:       p.Phone,
		TourPackage: p.TourPackage,
		NumGuests:   p.NumGuests.String(),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
}

// NotificationRequest is a validated notification payload.
type NotificationRequest struct {
	BookingRequest
	PricePerPerson decimal.Decimal
}

func (n NotificationRequest) TotalPrice() decimal.Decimal {
	return n.PricePerPerson.Mul(decimal.NewFromInt(int64(n.NumGuests)))
}

func (n NotificationRequest) Payload() NotificationPayload {
	price := n.PricePerPerson
	return NotificationPayload{
		FullName:       n.FullName,
		Email:          n.Email,
		Phone:          n.Phone,
		TourPackage:    n.TourPackage,
		NumGuests:      json.Number(strconv.Itoa(n.NumGuests)),
		StartDate:      n.StartDate.String(),
		EndDate:        n.EndDate.String(),
		PricePerPerson: &price,
	}
}
