package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
)

type CartRepository interface {
	ListByProfile(ctx context.Context, profileID int64) ([]models.CartLine, error)
	Upsert(ctx context.Context, profileID int64, req models.CartLineRequest, mode models.CartMode) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, profileID, lineID, quantity int64) (*models.CartLine, error)
	Delete(ctx context.Context, profileID, lineID int64) error
}

type cartRepository struct {
	DB DBTX
}

func NewCartRepo(db DBTX) CartRepository {
	return &cartRepository{DB: db}
}

const (
	upsertCartLineIncrement = `
		INSERT INTO cart_lines (profile_id, product_id, color_id, size_id, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id, product_id, size_id, color_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, quantity, created_at, updated_at`

	upsertCartLineSet = `
		INSERT INTO cart_lines (profile_id, product_id, color_id, size_id, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id, product_id, size_id, color_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, quantity, created_at, updated_at`
)

func (r *cartRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT cl.id, cl.profile_id, cl.product_id, p.name, p.price,
		       col.id, col.name, col.hex, s.id, s.name,
		       cl.quantity, cl.created_at, cl.updated_at
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		JOIN colors col ON col.id = cl.color_id
		JOIN sizes s ON s.id = cl.size_id
		WHERE cl.profile_id = $1
		ORDER BY cl.created_at, cl.id`

	rows, err := r.DB.QueryContext(dbCtx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}

	for rows.Next() {
		var l models.CartLine

		err := rows.Scan(&l.ID, &l.ProfileID, &l.ProductID, &l.ProductName, &l.UnitPrice,
			&l.Color.ID, &l.Color.Name, &l.Color.Hex, &l.Size.ID, &l.Size.Name,
			&l.Quantity, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return lines, nil
}

// Upsert writes a line in one statement. The unique key on profile, product,
// size and color makes concurrent writers merge instead of duplicating rows.
func (r *cartRepository) Upsert(ctx context.Context, profileID int64, req models.CartLineRequest, mode models.CartMode) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := upsertCartLineIncrement
	if mode == models.CartModeSet {
		query = upsertCartLineSet
	}

	line := &models.CartLine{
		ProfileID: profileID,
		ProductID: req.ProductID,
		Color:     models.Color{ID: req.ColorID},
		Size:      models.Size{ID: req.SizeID},
	}

	err := r.DB.QueryRowContext(dbCtx, query, profileID, req.ProductID, req.ColorID, req.SizeID, req.Quantity).
		Scan(&line.ID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart line: %w", MapPQError(err))
	}

	return line, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, profileID, lineID, quantity int64) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_lines SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND profile_id = $3
		RETURNING id, profile_id, product_id, color_id, size_id, quantity, created_at, updated_at`

	var l models.CartLine

	err := r.DB.QueryRowContext(dbCtx, query, quantity, lineID, profileID).Scan(&l.ID, &l.ProfileID, &l.ProductID,
		&l.Color.ID, &l.Size.ID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart line %d: %w", lineID, MapPQError(err))
	}

	return &l, nil
}

// Delete removes exactly one line owned by profileID. Lines of other profiles
// are reported as ErrNotFound.
func (r *cartRepository) Delete(ctx context.Context, profileID, lineID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_lines WHERE id = $1 AND profile_id = $2`, lineID, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("cart line %d: %w", lineID, ErrNotFound)
	}

	return nil
}
