package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/shopspring/decimal"
)

type CartService interface {
	List(ctx context.Context, profileID int64) (*models.Cart, error)
	// Add increments the quantity of an existing line.
	Add(ctx context.Context, profileID int64, req models.CartLineRequest) (*models.CartLine, error)
	// Set replaces the quantity of an existing line.
	Set(ctx context.Context, profileID int64, req models.CartLineRequest) (*models.CartLine, error)
	BulkAdd(ctx context.Context, profileID int64, items []models.CartLineRequest) (*models.BulkAddResult, error)
	UpdateQuantity(ctx context.Context, profileID, lineID, quantity int64) (*models.CartLine, error)
	Remove(ctx context.Context, profileID, lineID int64) error
}

type cartService struct {
	repo       repository.CartRepository
	variants   repository.VariantRepository
	tx         repository.TransactionManager
	bulkAtomic bool
}

func NewCartService(repo repository.CartRepository, variants repository.VariantRepository, tx repository.TransactionManager, bulkAtomic bool) CartService {
	return &cartService{repo: repo, variants: variants, tx: tx, bulkAtomic: bulkAtomic}
}

// List implements CartService.
func (s *cartService) List(ctx context.Context, profileID int64) (*models.Cart, error) {
	lines, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	return &models.Cart{Lines: lines, Total: total}, nil
}

// Add implements CartService.
func (s *cartService) Add(ctx context.Context, profileID int64, req models.CartLineRequest) (*models.CartLine, error) {
	return writeCartLine(ctx, s.variants, s.repo, profileID, req, models.CartModeIncrement)
}

// Set implements CartService.
func (s *cartService) Set(ctx context.Context, profileID int64, req models.CartLineRequest) (*models.CartLine, error) {
	return writeCartLine(ctx, s.variants, s.repo, profileID, req, models.CartModeSet)
}

// BulkAdd implements CartService. In atomic mode the first rejected line rolls
// back the whole batch and is returned as an error. Otherwise each line
// commits on its own and the result tells how far the batch got.
func (s *cartService) BulkAdd(ctx context.Context, profileID int64, items []models.CartLineRequest) (*models.BulkAddResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	if s.bulkAtomic {
		failed := -1

		err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
			for i, item := range items {
				if _, err := writeCartLine(ctx, r.Variants(), r.Cart(), profileID, item, models.CartModeIncrement); err != nil {
					failed = i
					return err
				}
			}

			return nil
		})
		if err != nil {
			logger.Warn("Bulk cart add rolled back", slog.Int("failedIndex", failed), slog.Any("error", err))

			if appErr, ok := errors.IsAppError(err); ok {
				return nil, appErr.WithDetail(fmt.Sprintf("items[%d]", failed))
			}

			return nil, errors.DatabaseError("Failed to add items to cart").WithError(err)
		}

		return &models.BulkAddResult{Applied: len(items), Atomic: true}, nil
	}

	result := &models.BulkAddResult{}

	for i, item := range items {
		err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
			_, err := writeCartLine(ctx, r.Variants(), r.Cart(), profileID, item, models.CartModeIncrement)
			return err
		})
		if err != nil {
			logger.Warn("Bulk cart add stopped", slog.Int("failedIndex", i), slog.Int("applied", result.Applied), slog.Any("error", err))

			failed := i
			result.FailedIndex = &failed
			result.Error = err.Error()

			if appErr, ok := errors.IsAppError(err); ok {
				result.Error = appErr.Message
			}

			return result, nil
		}

		result.Applied++
	}

	return result, nil
}

// UpdateQuantity implements CartService.
func (s *cartService) UpdateQuantity(ctx context.Context, profileID, lineID, quantity int64) (*models.CartLine, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}

	line, err := s.repo.UpdateQuantity(ctx, profileID, lineID, quantity)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Cart item not found").WithError(err)
		}

		if stdErrors.Is(err, repository.ErrOutOfRange) {
			return nil, quantityOutOfRange().WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return line, nil
}

// Remove implements CartService.
func (s *cartService) Remove(ctx context.Context, profileID, lineID int64) error {
	if err := s.repo.Delete(ctx, profileID, lineID); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Cart item not found").WithError(err)
		}

		return errors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return nil
}

// writeCartLine checks that the color and size pair exists for the product
// before touching the cart.
func writeCartLine(ctx context.Context, variants repository.VariantRepository, cart repository.CartRepository,
	profileID int64, req models.CartLineRequest, mode models.CartMode,
) (*models.CartLine, error) {
	if err := checkQuantity(req.Quantity); err != nil {
		return nil, err
	}

	if _, err := variants.Resolve(ctx, req.ProductID, req.ColorID, req.SizeID); err != nil {
		if stdErrors.Is(err, repository.ErrVariantNotFound) {
			return nil, errors.NotFoundError("Variant is not available").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to resolve variant").WithError(err)
	}

	line, err := cart.Upsert(ctx, profileID, req, mode)
	if err != nil {
		if stdErrors.Is(err, repository.ErrForeignKey) {
			return nil, errors.NotFoundError(fmt.Sprintf("Product not found: %d", req.ProductID)).WithError(err)
		}

		// increments can push a stored line past the limit
		if stdErrors.Is(err, repository.ErrOutOfRange) {
			return nil, quantityOutOfRange().WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return line, nil
}

func quantityOutOfRange() *errors.AppError {
	return errors.AddValidationError("quantity", fmt.Sprintf("must be between 1 and %d", models.MaxLineQuantity))
}

func checkQuantity(quantity int64) error {
	if quantity < 1 || quantity > models.MaxLineQuantity {
		return quantityOutOfRange()
	}

	return nil
}
