package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type siteContentRow struct {
	Section   string            `gorm:"primaryKey;size:50"`
	Content   datatypes.JSONMap `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (siteContentRow) TableName() string { return "site_content" }

type attractionRow struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"size:200;not null"`
	Description  string    `gorm:"type:text;not null;default:''"`
	ImageURL     string    `gorm:"type:text"`
	DisplayOrder int       `gorm:"not null;default:0;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (attractionRow) TableName() string { return "attractions" }

// ContentRepository keeps the free-form site sections and attractions through gorm.
type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&siteContentRow{}, &attractionRow{})
}

func (r *ContentRepository) GetSection(ctx context.Context, section string) (*domain.SiteContent, error) {
	var row siteContentRow
	err := r.db.WithContext(ctx).Where("section = ?", section).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section %q: %w", section, domain.ErrNotFound)
		}
		return nil, err
	}

	return &domain.SiteContent{
		Section:   row.Section,
		Content:   map[string]any(row.Content),
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// UpsertSection replaces the whole section map. Concurrent writers resolve to last write wins.
func (r *ContentRepository) UpsertSection(ctx context.Context, content *domain.SiteContent) error {
	row := siteContentRow{
		Section:   content.Section,
		Content:   datatypes.JSONMap(content.Content),
		UpdatedAt: content.UpdatedAt,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&row).Error
}

func (r *ContentRepository) ListAttractions(ctx context.Context) ([]domain.Attraction, error) {
	var rows []attractionRow
	if err := r.db.WithContext(ctx).Order("display_order, title").Find(&rows).Error; err != nil {
		return nil, err
	}

	attractions := make([]domain.Attraction, 0, len(rows))
	for _, row := range rows {
		attractions = append(attractions, row.toDomain())
	}
	return attractions, nil
}

func (r *ContentRepository) GetAttraction(ctx context.Context, attractionID uuid.UUID) (*domain.Attraction, error) {
	var row attractionRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", attractionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attraction %s: %w", attractionID, domain.ErrNotFound)
		}
		return nil, err
	}

	attraction := row.toDomain()
	return &attraction, nil
}

func (r *ContentRepository) SaveAttraction(ctx context.Context, attraction *domain.Attraction) error {
	row := attractionRow{
		ID:           attraction.ID,
		Title:        attraction.Title,
		Description:  attraction.Description,
		ImageURL:     attraction.ImageURL,
		DisplayOrder: attraction.DisplayOrder,
		CreatedAt:    attraction.CreatedAt,
		UpdatedAt:    attraction.UpdatedAt,
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *ContentRepository) DeleteAttraction(ctx context.Context, attractionID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&attractionRow{}, "id = ?", attractionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("attraction %s: %w", attractionID, domain.ErrNotFound)
	}
	return nil
}

func (row attractionRow) toDomain() domain.Attraction {
	return domain.Attraction{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		ImageURL:     row.ImageURL,
		DisplayOrder: row.DisplayOrder,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
