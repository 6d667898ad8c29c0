package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/lib/pq"
)

type VariantRepository interface {
	Resolve(ctx context.Context, productID, colorID, sizeID int64) (*models.VariantLine, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.VariantLine, error)
}

type variantRepository struct {
	DB DBTX
}

func NewVariantRepo(db DBTX) VariantRepository {
	return &variantRepository{DB: db}
}

const variantColumns = `
	pc.id, pc.product_id, col.id, col.name, col.hex, s.id, s.name, pc.quantity,
	ARRAY(SELECT i.image_url FROM product_color_images i
	      WHERE i.product_color_id = pc.id ORDER BY i.position, i.id)`

// Resolve returns ErrVariantNotFound when the product has no stock line for
// the color and size pair.
func (r *variantRepository) Resolve(ctx context.Context, productID, colorID, sizeID int64) (*models.VariantLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + variantColumns + `
		FROM product_colors pc
		JOIN colors col ON col.id = pc.color_id
		JOIN sizes s ON s.id = pc.size_id
		WHERE pc.product_id = $1 AND pc.color_id = $2 AND pc.size_id = $3`

	line, err := scanVariant(r.DB.QueryRowContext(dbCtx, query, productID, colorID, sizeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to resolve variant: %w", err)
	}

	return line, nil
}

// ListByProduct returns every stock line of a product ordered by color, then
// by size. Lines without a size sort last within their color.
func (r *variantRepository) ListByProduct(ctx context.Context, productID int64) ([]models.VariantLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + variantColumns + `
		FROM product_colors pc
		JOIN colors col ON col.id = pc.color_id
		LEFT JOIN sizes s ON s.id = pc.size_id
		WHERE pc.product_id = $1
		ORDER BY col.id, s.position NULLS LAST, pc.id`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	lines := []models.VariantLine{}

	for rows.Next() {
		line, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}

		lines = append(lines, *line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return lines, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariant(row rowScanner) (*models.VariantLine, error) {
	var (
		line     models.VariantLine
		sizeID   sql.NullInt64
		sizeName sql.NullString
		quantity sql.NullInt64
	)

	err := row.Scan(&line.ID, &line.ProductID, &line.Color.ID, &line.Color.Name, &line.Color.Hex,
		&sizeID, &sizeName, &quantity, pq.Array(&line.Images))
	if err != nil {
		return nil, err
	}

	if sizeID.Valid {
		line.Size = &models.Size{ID: sizeID.Int64, Name: sizeName.String}
	}

	if quantity.Valid {
		line.Quantity = &quantity.Int64
	}

	if line.Images == nil {
		line.Images = []string{}
	}

	return &line, nil
}
