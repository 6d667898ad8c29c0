package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService    service.CartService
	profileService service.ProfileService
	validator      *validator.Validate
}

func NewCartHandler(cartService service.CartService, profileService service.ProfileService) *CartHandler {
	return &CartHandler{cartService: cartService, profileService: profileService, validator: validator.New()}
}

// GetCart godoc
//
//	@Summary	Get the cart
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.Cart
//	@Failure	401	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		cart, err := h.cartService.List(r.Context(), profile.ID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// SetItem godoc
//
//	@Summary		Put a variant in the cart
//	@Description	Sets the quantity of the (product, color, size) line, creating it when absent.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.CartLineRequest	true	"Cart line"
//	@Success		200		{object}	models.CartLine
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse	"Product or variant not found"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) SetItem() http.HandlerFunc {
	return h.writeLine(h.cartService.Set, "Cart line set")
}

// IncrementItem godoc
//
//	@Summary		Add quantity to a cart line
//	@Description	Adds the quantity to the (product, color, size) line, creating it when absent.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.CartLineRequest	true	"Cart line"
//	@Success		200		{object}	models.CartLine
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse	"Product or variant not found"
//	@Security		BearerAuth
//	@Router			/cart/items/increment [post]
func (h *CartHandler) IncrementItem() http.HandlerFunc {
	return h.writeLine(h.cartService.Add, "Cart line incremented")
}

type lineWriter func(ctx context.Context, profileID int64, req models.CartLineRequest) (*models.CartLine, error)

func (h *CartHandler) writeLine(write lineWriter, done string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		var req models.CartLineRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart line input")
			return
		}

		line, err := write(r.Context(), profile.ID, req)
		if err != nil {
			logger.Warn("Failed to write cart line", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info(done, slog.Int64("lineId", line.ID), slog.Int64("quantity", line.Quantity))
		response.Success(w, http.StatusOK, line)
	}
}

// BulkAdd godoc
//
//	@Summary		Add several variants to the cart
//	@Description	Adds every line in order. In atomic mode a failing line rejects the whole request; otherwise lines before it stay applied and the response is 207.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			items	body		models.BulkAddRequest	true	"Cart lines"
//	@Success		200		{object}	models.BulkAddResult
//	@Success		207		{object}	models.BulkAddResult	"Partially applied"
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cart/items/bulk [post]
func (h *CartHandler) BulkAdd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		var req models.BulkAddRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid bulk cart input")
			return
		}

		result, err := h.cartService.BulkAdd(r.Context(), profile.ID, req.Items)
		if err != nil {
			logger.Warn("Bulk cart add rejected", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		status := http.StatusOK
		if result.FailedIndex != nil {
			status = http.StatusMultiStatus

			logger.Warn("Bulk cart add partially applied", slog.Int("applied", result.Applied), slog.Int("failedIndex", *result.FailedIndex))
		}

		response.Success(w, status, result)
	}
}

// UpdateQuantity godoc
//
//	@Summary	Change the quantity of a cart line
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		id			path		int								true	"Cart line ID"
//	@Param		quantity	body		models.UpdateCartQuantityRequest	true	"New quantity"
//	@Success	200			{object}	models.CartLine
//	@Failure	400			{object}	response.ErrorResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		lineID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart line id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		var req models.UpdateCartQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity input")
			return
		}

		line, err := h.cartService.UpdateQuantity(r.Context(), profile.ID, lineID, req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart line", slog.Int64("lineId", lineID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, line)
	}
}

// RemoveItem godoc
//
//	@Summary	Remove a cart line
//	@Tags		Cart
//	@Param		id	path	int	true	"Cart line ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		lineID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart line id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if err := h.cartService.Remove(r.Context(), profile.ID, lineID); err != nil {
			logger.Warn("Failed to remove cart line", slog.Int64("lineId", lineID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
