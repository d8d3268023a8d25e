package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TourPackage struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	IsActive       bool            `json:"is_active"`
	DisplayOrder   int             `json:"display_order"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PackageInput is the administrator-editable part of a tour package.
type PackageInput struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	DisplayOrder   int             `json:"display_order"`
}
