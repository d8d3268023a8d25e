package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	SectionHero    = "hero"
	SectionContact = "contact"

	// HeroImageKey holds the hero image URL inside the hero section map.
	HeroImageKey = "heroImage"
)

func IsKnownSection(section string) bool {
	return section == SectionHero || section == SectionContact
}

type SiteContent struct {
	Section   string         `json:"section"`
	Content   map[string]any `json:"content"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Attraction struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AttractionInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}
