package service

import (
	"context"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
)

type VariantService interface {
	Resolve(ctx context.Context, productID, colorID, sizeID int64) (*models.VariantLine, error)
	ListColorVariants(ctx context.Context, productID int64) ([]models.ColorVariant, error)
}

type variantService struct {
	repo repository.VariantRepository
}

func NewVariantService(repo repository.VariantRepository) VariantService {
	return &variantService{repo: repo}
}

// Resolve implements VariantService.
func (s *variantService) Resolve(ctx context.Context, productID, colorID, sizeID int64) (*models.VariantLine, error) {
	line, err := s.repo.Resolve(ctx, productID, colorID, sizeID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrVariantNotFound) {
			return nil, errors.NotFoundError("Variant is not available").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to resolve variant").WithError(err)
	}

	return line, nil
}

// ListColorVariants implements VariantService.
func (s *variantService) ListColorVariants(ctx context.Context, productID int64) ([]models.ColorVariant, error) {
	lines, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch product variants").WithError(err)
	}

	return GroupColorVariants(lines), nil
}

// GroupColorVariants folds stock lines into one entry per color, keeping the
// order colors first appear in. Sizes with zero stock stay in the list and a
// line without a size only contributes its images.
func GroupColorVariants(lines []models.VariantLine) []models.ColorVariant {
	variants := []models.ColorVariant{}
	index := map[int64]int{}
	seenImages := map[int64]map[string]struct{}{}

	for _, line := range lines {
		i, ok := index[line.Color.ID]
		if !ok {
			i = len(variants)
			index[line.Color.ID] = i
			seenImages[line.Color.ID] = map[string]struct{}{}

			variants = append(variants, models.ColorVariant{
				Color:  line.Color,
				Images: []string{},
				Sizes:  []models.SizeStock{},
			})
		}

		v := &variants[i]

		for _, img := range line.Images {
			if _, dup := seenImages[line.Color.ID][img]; dup {
				continue
			}

			seenImages[line.Color.ID][img] = struct{}{}
			v.Images = append(v.Images, img)
		}

		if line.Size != nil {
			v.Sizes = append(v.Sizes, models.SizeStock{Size: *line.Size, Quantity: line.Quantity})
		}
	}

	return variants
}
