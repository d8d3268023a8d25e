package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/ports"
	"github.com/srgjo27/park_booking/internal/core/validation"
	"github.com/srgjo27/park_booking/internal/platform/monitoring"
	"go.uber.org/zap"
)

const activePackagesKey = "packages:active"

// CatalogService serves tour packages. The active list is cached in redis; a nil client or a
// cache error falls through to the repository.
type CatalogService struct {
	packageRepo ports.PackageRepository
	redis       *redis.Client
	validator   *validation.Validator
	ttl         time.Duration
	log         *zap.Logger
}

func NewCatalogService(packageRepo ports.PackageRepository, redisClient *redis.Client, validator *validation.Validator, ttl time.Duration, log *zap.Logger) *CatalogService {
	return &CatalogService{
		packageRepo: packageRepo,
		redis:       redisClient,
		validator:   validator,
		ttl:         ttl,
		log:         log,
	}
}

func (s *CatalogService) ActivePackages(ctx context.Context) ([]domain.TourPackage, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, activePackagesKey).Bytes()
		switch {
		case err == nil:
			var packages []domain.TourPackage
			if err := json.Unmarshal(cached, &packages); err == nil {
				monitoring.TrackCatalogCache("hit")
				return packages, nil
			}
			s.log.Warn("discarding unreadable package cache")
		case errors.Is(err, redis.Nil):
			monitoring.TrackCatalogCache("miss")
		default:
			monitoring.TrackCatalogCache("error")
			s.log.Warn("package cache unavailable", zap.Error(err))
		}
	}

	packages, err := s.packageRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active packages: %w", err)
	}
	if packages == nil {
		packages = []domain.TourPackage{}
	}

	if s.redis != nil {
		if data, err := json.Marshal(packages); err == nil {
			if err := s.redis.Set(ctx, activePackagesKey, data, s.ttl).Err(); err != nil {
				s.log.Warn("could not cache packages", zap.Error(err))
			}
		}
	}

	return packages, nil
}

func (s *CatalogService) AllPackages(ctx context.Context) ([]domain.TourPackage, error) {
	packages, err := s.packageRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}

func (s *CatalogService) CreatePackage(ctx context.Context, in domain.PackageInput) (*domain.TourPackage, error) {
	in, err := s.validator.Package(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pkg := &domain.TourPackage{
		ID:             uuid.New(),
		Name:           in.Name,
		Description:    in.Description,
		PricePerPerson: in.PricePerPerson,
		IsActive:       true,
		DisplayOrder:   in.DisplayOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return pkg, nil
}

// UpdatePackage edits a package. Existing bookings keep the price they were submitted with.
func (s *CatalogService) UpdatePackage(ctx context.Context, packageID uuid.UUID, in domain.PackageInput) (*domain.TourPackage, error) {
	in, err := s.validator.Package(in)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	pkg.Name = in.Name
	pkg.Description = in.Description
	pkg.PricePerPerson = in.PricePerPerson
	pkg.DisplayOrder = in.DisplayOrder
	pkg.UpdatedAt = time.Now().UTC()

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return pkg, nil
}

func (s *CatalogService) SetPackageActive(ctx context.Context, packageID uuid.UUID, active bool) error {
	if err := s.packageRepo.SetActive(ctx, packageID, active); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) DeletePackage(ctx context.Context, packageID uuid.UUID) error {
	if err := s.packageRepo.Delete(ctx, packageID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, activePackagesKey).Err(); err != nil {
		s.log.Warn("failed to invalidate package cache", zap.Error(err))
	}
}
