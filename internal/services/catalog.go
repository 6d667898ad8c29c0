package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/cache"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"golang.org/x/crypto/blake2b"
)

type CatalogService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error)
	GetProduct(ctx context.Context, id int64, viewerIP string) (*models.Product, error)
	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetMenu(ctx context.Context) ([]models.Menu, error)
	ListFacets(ctx context.Context) (*models.Facets, error)
	GetHome(ctx context.Context) (*models.HomePage, error)
}

type CatalogConfig struct {
	PageSize        int
	HomeCollections int
	CacheTTL        time.Duration
	// ViewHashKey keys the viewer digest; blake2b accepts at most 64 bytes.
	ViewHashKey []byte
}

type catalogService struct {
	repo     repository.CatalogRepository
	variants VariantService
	cache    cache.Cache
	cfg      CatalogConfig
}

// NewCatalogService wires the catalog reads. A nil cache sends every read to
// the database.
func NewCatalogService(repo repository.CatalogRepository, variants VariantService, c cache.Cache, cfg CatalogConfig) CatalogService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 12
	}

	if cfg.HomeCollections <= 0 {
		cfg.HomeCollections = 3
	}

	if len(cfg.ViewHashKey) > blake2b.Size {
		cfg.ViewHashKey = cfg.ViewHashKey[:blake2b.Size]
	}

	return &catalogService{repo: repo, variants: variants, cache: c, cfg: cfg}
}

// ListProducts implements CatalogService.
func (s *catalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error) {
	if filter.Ordering == "" {
		filter.Ordering = models.OrderingDateDesc
	}

	if !repository.ValidOrdering(filter.Ordering) {
		return nil, errors.AddValidationError("ordering", "must be one of price, -price, date, -date, views, -views")
	}

	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, errors.AddValidationError("min_price", "must not exceed max_price")
	}

	filter.Page = min(max(filter.Page, 1), utils.MaxPage)
	filter.PageSize = s.cfg.PageSize

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return models.NewPaginatedResponse(products, total, filter.Page, filter.PageSize), nil
}

// GetProduct implements CatalogService. The view is recorded after the read
// and a failure to record it never fails the request.
func (s *catalogService) GetProduct(ctx context.Context, id int64, viewerIP string) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	product, err := cache.Fetch(ctx, s.cache, logger, key, s.cfg.CacheTTL, func(ctx context.Context) (*models.Product, error) {
		return s.loadProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	if viewerIP != "" {
		if err := s.recordView(ctx, id, viewerIP); err != nil {
			logger.Warn("Failed to record product view", slog.Int64("productId", id), slog.Any("error", err))
		}
	}

	return product, nil
}

func (s *catalogService) loadProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.Colors, err = s.variants.ListColorVariants(ctx, id); err != nil {
		return nil, err
	}

	if product.Related, err = s.repo.ListRelated(ctx, id); err != nil {
		return nil, errors.DatabaseError("Failed to fetch related products").WithError(err)
	}

	return product, nil
}

func (s *catalogService) recordView(ctx context.Context, productID int64, ip string) error {
	h, err := blake2b.New256(s.cfg.ViewHashKey)
	if err != nil {
		return err
	}

	h.Write([]byte(ip))

	return s.repo.RecordView(ctx, productID, h.Sum(nil))
}

// ListCollections implements CatalogService.
func (s *catalogService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	collections, err := s.repo.ListCollections(ctx, 0)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch collections").WithError(err)
	}

	return collections, nil
}

// GetCollection implements CatalogService.
func (s *catalogService) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	key := cache.Key(cache.CollectionKeyPrefix, strconv.FormatInt(id, 10))

	return cache.Fetch(ctx, s.cache, middleware.LoggerFromContext(ctx), key, s.cfg.CacheTTL,
		func(ctx context.Context) (*models.Collection, error) {
			collection, err := s.repo.GetCollectionByID(ctx, id)
			if err != nil {
				if stdErrors.Is(err, repository.ErrNotFound) {
					return nil, errors.NotFoundError("Collection not found").WithError(err)
				}

				return nil, errors.DatabaseError("Failed to fetch collection").WithError(err)
			}

			return collection, nil
		})
}

// ListCategories implements CatalogService.
func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return cache.Fetch(ctx, s.cache, middleware.LoggerFromContext(ctx), cache.CategoriesKey, s.cfg.CacheTTL,
		func(ctx context.Context) ([]models.Category, error) {
			categories, err := s.repo.ListCategories(ctx)
			if err != nil {
				return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
			}

			return categories, nil
		})
}

// GetMenu implements CatalogService. Only menus flagged for display are returned.
func (s *catalogService) GetMenu(ctx context.Context) ([]models.Menu, error) {
	return cache.Fetch(ctx, s.cache, middleware.LoggerFromContext(ctx), cache.MenuKey, s.cfg.CacheTTL,
		func(ctx context.Context) ([]models.Menu, error) {
			menus, err := s.repo.ListMenus(ctx)
			if err != nil {
				return nil, errors.DatabaseError("Failed to fetch menu").WithError(err)
			}

			visible := make([]models.Menu, 0, len(menus))

			for _, m := range menus {
				if !m.ShowInMenu {
					continue
				}

				if m.Title == "" {
					m.Title = m.Code.Title()
				}

				visible = append(visible, m)
			}

			return visible, nil
		})
}

// ListFacets implements CatalogService.
func (s *catalogService) ListFacets(ctx context.Context) (*models.Facets, error) {
	return cache.Fetch(ctx, s.cache, middleware.LoggerFromContext(ctx), cache.FacetsKey, s.cfg.CacheTTL,
		func(ctx context.Context) (*models.Facets, error) {
			colors, err := s.repo.ListColors(ctx)
			if err != nil {
				return nil, errors.DatabaseError("Failed to fetch colors").WithError(err)
			}

			sizes, err := s.repo.ListSizes(ctx)
			if err != nil {
				return nil, errors.DatabaseError("Failed to fetch sizes").WithError(err)
			}

			return &models.Facets{Colors: colors, Sizes: sizes}, nil
		})
}

// GetHome implements CatalogService.
func (s *catalogService) GetHome(ctx context.Context) (*models.HomePage, error) {
	key := cache.Key(cache.HomeKeyPrefix, strconv.Itoa(s.cfg.HomeCollections))

	return cache.Fetch(ctx, s.cache, middleware.LoggerFromContext(ctx), key, s.cfg.CacheTTL,
		func(ctx context.Context) (*models.HomePage, error) {
			collections, err := s.repo.ListCollections(ctx, s.cfg.HomeCollections)
			if err != nil {
				return nil, errors.DatabaseError("Failed to fetch collections").WithError(err)
			}

			categories, err := s.repo.ListCategories(ctx)
			if err != nil {
				return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
			}

			return &models.HomePage{LatestCollections: collections, Categories: categories}, nil
		})
}
