package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
)

type FavoriteRepository interface {
	ListByProfile(ctx context.Context, profileID int64) ([]models.Favorite, error)
	// Add reports whether a new row was inserted.
	Add(ctx context.Context, profileID, productID int64) (bool, error)
	Remove(ctx context.Context, profileID, productID int64) error
	Exists(ctx context.Context, profileID, productID int64) (bool, error)
}

type favoriteRepository struct {
	DB DBTX
}

func NewFavoriteRepo(db DBTX) FavoriteRepository {
	return &favoriteRepository{DB: db}
}

func (r *favoriteRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.Favorite, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT f.id, f.profile_id, f.created_at,` + summaryColumns + `
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		LEFT JOIN collections c ON c.id = p.collection_id
		WHERE f.profile_id = $1
		ORDER BY f.created_at DESC, f.id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []models.Favorite{}

	for rows.Next() {
		var f models.Favorite

		err := rows.Scan(&f.ID, &f.ProfileID, &f.CreatedAt, &f.Product.ID, &f.Product.Name, &f.Product.Price,
			&f.Product.CollectionName, &f.Product.Image, &f.Product.Views, &f.Product.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return favorites, nil
}

func (r *favoriteRepository) Add(ctx context.Context, profileID, productID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO favorites (profile_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (profile_id, product_id) DO NOTHING`

	result, err := r.DB.ExecContext(dbCtx, query, profileID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", MapPQError(err))
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get inserted rows: %w", err)
	}

	return inserted == 1, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, profileID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM favorites WHERE profile_id = $1 AND product_id = $2`, profileID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("favorite for product %d: %w", productID, ErrNotFound)
	}

	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, profileID, productID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM favorites WHERE profile_id = $1 AND product_id = $2)`
	if err := r.DB.QueryRowContext(dbCtx, query, profileID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return exists, nil
}
