package service

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
)

type FavoriteService interface {
	List(ctx context.Context, profileID int64) ([]models.Favorite, error)
	Add(ctx context.Context, profileID, productID int64) error
	Remove(ctx context.Context, profileID, productID int64) error
	Toggle(ctx context.Context, profileID, productID int64) (*models.ToggleFavoriteResponse, error)
	Status(ctx context.Context, profileID, productID int64) (*models.ToggleFavoriteResponse, error)
}

type favoriteService struct {
	repo repository.FavoriteRepository
}

func NewFavoriteService(repo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{repo: repo}
}

// List implements FavoriteService.
func (s *favoriteService) List(ctx context.Context, profileID int64) ([]models.Favorite, error) {
	favorites, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch favorites").WithError(err)
	}

	return favorites, nil
}

// Add implements FavoriteService. Adding a product twice is not an error.
func (s *favoriteService) Add(ctx context.Context, profileID, productID int64) error {
	if _, err := s.repo.Add(ctx, profileID, productID); err != nil {
		if stdErrors.Is(err, repository.ErrForeignKey) {
			return errors.NotFoundError(fmt.Sprintf("Product not found: %d", productID)).WithError(err)
		}

		return errors.DatabaseError("Failed to add favorite").WithError(err)
	}

	return nil
}

// Remove implements FavoriteService.
func (s *favoriteService) Remove(ctx context.Context, profileID, productID int64) error {
	if err := s.repo.Remove(ctx, profileID, productID); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Product is not in favorites").WithError(err)
		}

		return errors.DatabaseError("Failed to remove favorite").WithError(err)
	}

	return nil
}

// Toggle implements FavoriteService. The delete is tried first so two quick
// toggles never leave a duplicate behind.
func (s *favoriteService) Toggle(ctx context.Context, profileID, productID int64) (*models.ToggleFavoriteResponse, error) {
	err := s.repo.Remove(ctx, profileID, productID)
	if err == nil {
		return &models.ToggleFavoriteResponse{ProductID: productID, Favorited: false}, nil
	}

	if !stdErrors.Is(err, repository.ErrNotFound) {
		return nil, errors.DatabaseError("Failed to toggle favorite").WithError(err)
	}

	if err := s.Add(ctx, profileID, productID); err != nil {
		return nil, err
	}

	return &models.ToggleFavoriteResponse{ProductID: productID, Favorited: true}, nil
}

// Status reports whether the product is in the profile's favorites.
func (s *favoriteService) Status(ctx context.Context, profileID, productID int64) (*models.ToggleFavoriteResponse, error) {
	exists, err := s.repo.Exists(ctx, profileID, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check favorite").WithError(err)
	}

	return &models.ToggleFavoriteResponse{ProductID: productID, Favorited: exists}, nil
}
