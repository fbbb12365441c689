package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"quote-intake-service/internal/domain"
)

// Postgres-backed implementation of the GalleryRepository port.
type PostgresGalleryRepository struct{ DB *sql.DB }

func NewPostgresGalleryRepository(db *sql.DB) *PostgresGalleryRepository {
	return &PostgresGalleryRepository{DB: db}
}

const galleryColumns = `
		id,
		title,
		description,
		image_key,
		display_order,
		is_featured,
		created_at,
		updated_at`

func scanImage(row rowScanner) (*domain.GalleryImage, error) {
	var (
		img                domain.GalleryImage
		title, description sql.NullString
	)
	err := row.Scan(
		&img.ID,
		&title,
		&description,
		&img.ImageKey,
		&img.DisplayOrder,
		&img.IsFeatured,
		&img.CreatedAt,
		&img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	img.Title = nullString(title)
	img.Description = nullString(description)
	return &img, nil
}

func (r *PostgresGalleryRepository) ListImages(ctx context.Context) ([]*domain.GalleryImage, error) {
	if r.DB == nil {
		return nil, errors.New("postgres gallery repository: DB is nil")
	}

	query := `SELECT` + galleryColumns + `
	FROM gallery_images
	ORDER BY display_order ASC, created_at DESC;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list images: query gallery_images table: %w", err)
	}
	defer rows.Close()

	images := make([]*domain.GalleryImage, 0, 32)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("list images: scan row: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list images: row iteration: %w", err)
	}

	return images, nil
}

func (r *PostgresGalleryRepository) CreateImage(
	ctx context.Context,
	img *domain.GalleryImage,
) (*domain.GalleryImage, error) {
	if r.DB == nil {
		return nil, errors.New("postgres gallery repository: DB is nil")
	}
	if img == nil || img.ImageKey == "" {
		return nil, errors.New("create image: image key is required")
	}

	query := `
	INSERT INTO gallery_images (
		title,
		description,
		image_key,
		display_order,
		is_featured
	)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING` + galleryColumns + `;
	`
	created, err := scanImage(r.DB.QueryRowContext(ctx, query,
		img.Title,
		img.Description,
		img.ImageKey,
		img.DisplayOrder,
		img.IsFeatured,
	))
	if err != nil {
		return nil, fmt.Errorf("create image key=%s: %w", img.ImageKey, err)
	}
	return created, nil
}

// Return the image with the given id, or nil if it does not exist.
func (r *PostgresGalleryRepository) GetImage(ctx context.Context, id int64) (*domain.GalleryImage, error) {
	if r.DB == nil {
		return nil, errors.New("postgres gallery repository: DB is nil")
	}

	query := `SELECT` + galleryColumns + `
	FROM gallery_images
	WHERE id = $1;
	`
	img, err := scanImage(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get image id=%d: %w", id, err)
	}
	return img, nil
}

func (r *PostgresGalleryRepository) DeleteImage(ctx context.Context, id int64) error {
	if r.DB == nil {
		return errors.New("postgres gallery repository: DB is nil")
	}

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete image id=%d: %w", id, err)
	}
	return nil
}
