package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/park_booking/internal/core/domain"
)

const packageColumns = `id, name, description, price_per_person, is_active, display_order, created_at, updated_at`

type PackageRepository struct {
	db *sql.DB
}

func NewPackageRepository(db *sql.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) ListActive(ctx context.Context) ([]domain.TourPackage, error) {
	query := `
	SELECT ` + packageColumns + `
	FROM tour_packages
	WHERE is_active = TRUE
	ORDER BY display_order, name
	`
	return r.list(ctx, query)
}

func (r *PackageRepository) ListAll(ctx context.Context) ([]domain.TourPackage, error) {
	query := `
	SELECT ` + packageColumns + `
	FROM tour_packages
	ORDER BY display_order, name
	`
	return r.list(ctx, query)
}

func (r *PackageRepository) GetByID(ctx context.Context, packageID uuid.UUID) (*domain.TourPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM tour_packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRowContext(ctx, query, packageID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tour package %s: %w", packageID, domain.ErrNotFound)
		}
		return nil, err
	}

	return pkg, nil
}

func (r *PackageRepository) Create(ctx context.Context, pkg *domain.TourPackage) error {
	query := `
	INSERT INTO tour_packages (` + packageColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		pkg.ID, pkg.Name, pkg.Description, pkg.PricePerPerson, pkg.IsActive, pkg.DisplayOrder, pkg.CreatedAt, pkg.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err, pkg.Name)
	}

	return nil
}

func (r *PackageRepository) Update(ctx context.Context, pkg *domain.TourPackage) error {
	query := `
	UPDATE tour_packages
	SET name = $1,
		description = $2,
		price_per_person = $3,
		display_order = $4,
		updated_at = $5
	WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		pkg.Name, pkg.Description, pkg.PricePerPerson, pkg.DisplayOrder, pkg.UpdatedAt, pkg.ID)
	if err != nil {
		return mapUniqueViolation(err, pkg.Name)
	}

	return expectOneRow(result, "tour package", pkg.ID)
}

func (r *PackageRepository) SetActive(ctx context.Context, packageID uuid.UUID, active bool) error {
	query := `
	UPDATE tour_packages
	SET is_active = $1, updated_at = NOW()
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, active, packageID)
	if err != nil {
		return err
	}

	return expectOneRow(result, "tour package", packageID)
}

func (r *PackageRepository) Delete(ctx context.Context, packageID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tour_packages WHERE id = $1`, packageID)
	if err != nil {
		return err
	}

	return expectOneRow(result, "tour package", packageID)
}

func (r *PackageRepository) list(ctx context.Context, query string) ([]domain.TourPackage, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var packages []domain.TourPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}

		packages = append(packages, *pkg)
	}

	return packages, rows.Err()
}

func scanPackage(row rowScanner) (*domain.TourPackage, error) {
	var pkg domain.TourPackage

	err := row.Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.PricePerPerson,
		&pkg.IsActive,
		&pkg.DisplayOrder,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &pkg, nil
}

func mapUniqueViolation(err error, name string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("tour package %q already exists: %w", name, domain.ErrConflict)
	}
	return err
}
