package service_test

import (
	stdErrors "errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront-api/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestGroupColorVariants(t *testing.T) {
	black := models.Color{ID: 1, Name: "Black", Hex: "#000000"}
	sand := models.Color{ID: 2, Name: "Sand", Hex: "#c2b280"}
	s := models.Size{ID: 1, Name: "S"}
	m := models.Size{ID: 2, Name: "M"}

	lines := []models.VariantLine{
		{ID: 1, Color: black, Size: &s, Quantity: ptr(int64(3)), Images: []string{"b1.jpg", "b2.jpg"}},
		{ID: 2, Color: black, Size: &m, Quantity: ptr(int64(0)), Images: []string{"b2.jpg", "b3.jpg"}},
		{ID: 3, Color: sand, Images: []string{"s1.jpg"}},
		{ID: 4, Color: sand, Size: &m, Quantity: nil},
	}

	variants := service.GroupColorVariants(lines)

	require.Len(t, variants, 2)

	assert.Equal(t, black, variants[0].Color)
	assert.Equal(t, []string{"b1.jpg", "b2.jpg", "b3.jpg"}, variants[0].Images)
	require.Len(t, variants[0].Sizes, 2)
	assert.Equal(t, "M", variants[0].Sizes[1].Size.Name)
	assert.Equal(t, int64(0), *variants[0].Sizes[1].Quantity, "zero stock sizes are kept")

	assert.Equal(t, sand, variants[1].Color)
	assert.Equal(t, []string{"s1.jpg"}, variants[1].Images)
	require.Len(t, variants[1].Sizes, 1)
	assert.Nil(t, variants[1].Sizes[0].Quantity)

	assert.Empty(t, service.GroupColorVariants(nil))
}

func TestVariantResolve(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := repoMocks.NewVariantRepository(t)
		variantService := service.NewVariantService(repo)

		expected := &models.VariantLine{ID: 9, ProductID: 1, Quantity: ptr(int64(2))}
		repo.On("Resolve", mock.Anything, int64(1), int64(2), int64(3)).Return(expected, nil).Once()

		line, err := variantService.Resolve(t.Context(), 1, 2, 3)

		require.NoError(t, err)
		assert.Equal(t, expected, line)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := repoMocks.NewVariantRepository(t)
		variantService := service.NewVariantService(repo)

		repo.On("Resolve", mock.Anything, int64(1), int64(2), int64(3)).Return(nil, repository.ErrVariantNotFound).Once()

		_, err := variantService.Resolve(t.Context(), 1, 2, 3)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
		assert.ErrorIs(t, err, repository.ErrVariantNotFound)
	})

	t.Run("Database error", func(t *testing.T) {
		repo := repoMocks.NewVariantRepository(t)
		variantService := service.NewVariantService(repo)

		repo.On("ListByProduct", mock.Anything, int64(1)).Return(nil, stdErrors.New("boom")).Once()

		_, err := variantService.ListColorVariants(t.Context(), 1)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
	})
}
