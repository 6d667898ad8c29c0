package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	variantService service.VariantService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService, variantService service.VariantService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, variantService: variantService, validator: validator.New()}
}

// GetHome godoc
//
//	@Summary		Home page content
//	@Description	Latest collections and all categories.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	models.HomePage
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/home [get]
func (h *CatalogHandler) GetHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		home, err := h.catalogService.GetHome(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load home page", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, home)
	}
}

// GetMenu godoc
//
//	@Summary	Navigation menu
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		models.Menu
//	@Failure	500	{object}	response.ErrorResponse
//	@Router		/menu [get]
func (h *CatalogHandler) GetMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menus, err := h.catalogService.GetMenu(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load menu", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, menus)
	}
}

// ListCategories godoc
//
//	@Summary	List categories
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		models.Category
//	@Failure	500	{object}	response.ErrorResponse
//	@Router		/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// ListCollections godoc
//
//	@Summary	List collections
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		models.Collection
//	@Failure	500	{object}	response.ErrorResponse
//	@Router		/collections [get]
func (h *CatalogHandler) ListCollections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collections, err := h.catalogService.ListCollections(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list collections", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, collections)
	}
}

// GetCollection godoc
//
//	@Summary	Get a collection
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		int	true	"Collection ID"
//	@Success	200	{object}	models.Collection
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/collections/{id} [get]
func (h *CatalogHandler) GetCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid collection id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		collection, err := h.catalogService.GetCollection(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get collection", slog.Int64("collectionId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, collection)
	}
}

// ListFacets godoc
//
//	@Summary	Colors and sizes available for filtering
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	models.Facets
//	@Router		/facets [get]
func (h *CatalogHandler) ListFacets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facets, err := h.catalogService.ListFacets(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list facets", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, facets)
	}
}

// ListProducts godoc
//
//	@Summary		List products
//	@Description	Filtered, ordered and paginated product listing.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	query		int		false	"Category ID"
//	@Param			collection	query		int		false	"Collection ID"
//	@Param			color		query		int		false	"Color ID"
//	@Param			size		query		int		false	"Size ID"
//	@Param			min_price	query		string	false	"Lower price bound"
//	@Param			max_price	query		string	false	"Upper price bound"
//	@Param			name		query		string	false	"Name substring"
//	@Param			ordering	query		string	false	"price, -price, date, -date, views, -views"
//	@Param			page		query		int		false	"Page number"	minimum(1)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.ProductSummary}
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseProductFilter(r)
		if err != nil {
			logger.Warn("Invalid product filter", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		page, err := h.catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

func parseProductFilter(r *http.Request) (models.ProductFilter, error) {
	q := r.URL.Query()

	filter := models.ProductFilter{
		Name:     q.Get("name"),
		Ordering: q.Get("ordering"),
	}

	var err error

	for name, dest := range map[string]**int64{
		"category":   &filter.CategoryID,
		"collection": &filter.CollectionID,
		"color":      &filter.ColorID,
		"size":       &filter.SizeID,
	} {
		if *dest, err = utils.ParseOptionalID(r, name); err != nil {
			return filter, err
		}
	}

	for name, dest := range map[string]**decimal.Decimal{
		"min_price": &filter.MinPrice,
		"max_price": &filter.MaxPrice,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}

		price, perr := decimal.NewFromString(raw)
		if perr != nil || price.IsNegative() {
			return filter, errors.AddValidationError(name, "must be a non-negative amount")
		}

		*dest = &price
	}

	if raw := q.Get("page"); raw != "" {
		page, perr := strconv.Atoi(raw)
		if perr != nil || page < 1 {
			return filter, errors.AddValidationError("page", "must be a positive integer")
		}

		filter.Page = page
	}

	return filter, nil
}

// GetProduct godoc
//
//	@Summary		Get a product
//	@Description	Product detail with color variants and related products. Counts one view per client IP.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		int	true	"Product ID"
//	@Success		200	{object}	models.Product
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/products/{id} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id, middleware.ClientIP(r))
		if err != nil {
			logger.Error("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListColorVariants godoc
//
//	@Summary	Color variants of a product
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{array}		models.ColorVariant
//	@Failure	400	{object}	response.ErrorResponse
//	@Router		/products/{id}/colors [get]
func (h *CatalogHandler) ListColorVariants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		colors, err := h.variantService.ListColorVariants(r.Context(), id)
		if err != nil {
			logger.Error("Failed to list color variants", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, colors)
	}
}

// ResolveVariant godoc
//
//	@Summary	Resolve a color and size pair to a variant line
//	@Tags		Catalog
//	@Produce	json
//	@Param		id			path		int	true	"Product ID"
//	@Param		color_id	query		int	true	"Color ID"
//	@Param		size_id		query		int	true	"Size ID"
//	@Success	200			{object}	models.VariantLine
//	@Failure	400			{object}	response.ErrorResponse
//	@Failure	404			{object}	response.ErrorResponse	"Variant is not available"
//	@Router		/products/{id}/variant [get]
func (h *CatalogHandler) ResolveVariant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		var req models.ResolveVariantRequest

		colorID, err := utils.ParseOptionalID(r, "color_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		sizeID, err := utils.ParseOptionalID(r, "size_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if colorID != nil {
			req.ColorID = *colorID
		}

		if sizeID != nil {
			req.SizeID = *sizeID
		}

		if err := h.validator.Struct(req); err != nil {
			logger.Warn("Incomplete variant reference", slog.String("error", err.Error()))
			response.Error(w, errors.ValidationError("color_id and size_id are required").WithError(err))

			return
		}

		line, err := h.variantService.Resolve(r.Context(), productID, req.ColorID, req.SizeID)
		if err != nil {
			logger.Warn("Failed to resolve variant", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, line)
	}
}
