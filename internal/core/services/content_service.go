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
	"go.uber.org/zap"
)

type ContentService struct {
	repo          ports.ContentRepository
	storage       ports.ObjectStorage
	validator     *validation.Validator
	imageMaxBytes int64
	log           *zap.Logger
}

func NewContentService(repo ports.ContentRepository, storage ports.ObjectStorage, validator *validation.Validator, imageMaxBytes int64, log *zap.Logger) *ContentService {
	return &ContentService{
		repo:          repo,
		storage:       storage,
		validator:     validator,
		imageMaxBytes: imageMaxBytes,
		log:           log,
	}
}

func (s *ContentService) Section(ctx context.Context, section string) (*domain.SiteContent, error) {
	if !domain.IsKnownSection(section) {
		return nil, fmt.Errorf("section %q: %w", section, domain.ErrNotFound)
	}
	return s.repo.GetSection(ctx, section)
}

// SaveSection replaces a section map.
func (s *ContentService) SaveSection(ctx context.Context, section string, content map[string]any) (*domain.SiteContent, error) {
	if !domain.IsKnownSection(section) {
		return nil, fmt.Errorf("section %q: %w", section, domain.ErrNotFound)
	}
	if content == nil {
		content = map[string]any{}
	}

	sc := &domain.SiteContent{
		Section:   section,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertSection(ctx, sc); err != nil {
		return nil, fmt.Errorf("save section %s: %w", section, err)
	}
	return sc, nil
}

// UploadHeroImage stores a new hero image and records its URL in the hero section, keeping the
// other hero fields.
func (s *ContentService) UploadHeroImage(ctx context.Context, data []byte) (*domain.SiteContent, error) {
	contentType, ext, err := s.checkImage(data)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Put(ctx, fmt.Sprintf("hero/hero-%s%s", uuid.New(), ext), contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload hero image: %w", err)
	}

	content := map[string]any{}
	current, err := s.repo.GetSection(ctx, domain.SectionHero)
	switch {
	case err == nil:
		for k, v := range current.Content {
			content[k] = v
		}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	content[domain.HeroImageKey] = url
	s.log.Info("hero image replaced", zap.String("url", url))

	return s.SaveSection(ctx, domain.SectionHero, content)
}

func (s *ContentService) Attractions(ctx context.Context) ([]domain.Attraction, error) {
	attractions, err := s.repo.ListAttractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attractions: %w", err)
	}
	return attractions, nil
}

func (s *ContentService) CreateAttraction(ctx context.Context, in domain.AttractionInput) (*domain.Attraction, error) {
	in, err := s.validator.Attraction(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	attraction := &domain.Attraction{
		ID:           uuid.New(),
		Title:        in.Title,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.SaveAttraction(ctx, attraction); err != nil {
		return nil, err
	}
	return attraction, nil
}

func (s *ContentService) UpdateAttraction(ctx context.Context, attractionID uuid.UUID, in domain.AttractionInput) (*domain.Attraction, error) {
	in, err := s.validator.Attraction(in)
	if err != nil {
		return nil, err
	}

	attraction, err := s.repo.GetAttraction(ctx, attractionID)
	if err != nil {
		return nil, err
	}

	attraction.Title = in.Title
	attraction.Description = in.Description
	attraction.DisplayOrder = in.DisplayOrder
	attraction.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveAttraction(ctx, attraction); err != nil {
		return nil, err
	}
	return attraction, nil
}

func (s *ContentService) UploadAttractionImage(ctx context.Context, attractionID uuid.UUID, data []byte) (*domain.Attraction, error) {
	attraction, err := s.repo.GetAttraction(ctx, attractionID)
	if err != nil {
		return nil, err
	}

	contentType, ext, err := s.checkImage(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("attractions/%s-%s%s", attractionID, uuid.New(), ext)
	url, err := s.storage.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload attraction image: %w", err)
	}

	attraction.ImageURL = url
	attraction.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveAttraction(ctx, attraction); err != nil {
		s.log.Warn("attraction image stored but not recorded", zap.String("attraction_id", attractionID.String()), zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return attraction, nil
}

func (s *ContentService) DeleteAttraction(ctx context.Context, attractionID uuid.UUID) error {
	return s.repo.DeleteAttraction(ctx, attractionID)
}

func (s *ContentService) checkImage(data []byte) (string, string, error) {
	if int64(len(data)) > s.imageMaxBytes {
		return "", "", fmt.Errorf("%w: %d bytes", domain.ErrPhotoTooLarge, len(data))
	}
	return crop.DetectImageType(data)
}
