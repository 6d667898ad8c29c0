package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
	profileService  service.ProfileService
	validator       *validator.Validate
}

func NewFavoriteHandler(favoriteService service.FavoriteService, profileService service.ProfileService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, profileService: profileService, validator: validator.New()}
}

// ListFavorites godoc
//
//	@Summary	List favorite products
//	@Tags		Favorites
//	@Produce	json
//	@Success	200	{array}		models.Favorite
//	@Failure	401	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/favorites [get]
func (h *FavoriteHandler) ListFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		favorites, err := h.favoriteService.List(r.Context(), profile.ID)
		if err != nil {
			logger.Error("Failed to list favorites", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, favorites)
	}
}

// AddFavorite godoc
//
//	@Summary		Add a product to favorites
//	@Description	Adding a product twice keeps a single favorite.
//	@Tags			Favorites
//	@Accept			json
//	@Param			favorite	body	models.FavoriteRequest	true	"Product"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/favorites [post]
func (h *FavoriteHandler) AddFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		var req models.FavoriteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid favorite input")
			return
		}

		if err := h.favoriteService.Add(r.Context(), profile.ID, req.ProductID); err != nil {
			logger.Warn("Failed to add favorite", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveFavorite godoc
//
//	@Summary	Remove a product from favorites
//	@Tags		Favorites
//	@Param		productId	path	int	true	"Product ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/favorites/{productId} [delete]
func (h *FavoriteHandler) RemoveFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.favoriteService.Remove(r.Context(), profile.ID, productID); err != nil {
			logger.Warn("Failed to remove favorite", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleFavorite godoc
//
//	@Summary	Toggle a favorite
//	@Tags		Favorites
//	@Accept		json
//	@Produce	json
//	@Param		favorite	body		models.FavoriteRequest	true	"Product"
//	@Success	200			{object}	models.ToggleFavoriteResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/favorites/toggle [post]
func (h *FavoriteHandler) ToggleFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		var req models.FavoriteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid favorite input")
			return
		}

		result, err := h.favoriteService.Toggle(r.Context(), profile.ID, req.ProductID)
		if err != nil {
			logger.Warn("Failed to toggle favorite", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// FavoriteStatus godoc
//
//	@Summary	Whether a product is a favorite
//	@Tags		Favorites
//	@Produce	json
//	@Param		productId	path		int	true	"Product ID"
//	@Success	200			{object}	models.ToggleFavoriteResponse
//	@Failure	400			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/favorites/{productId} [get]
func (h *FavoriteHandler) FavoriteStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		status, err := h.favoriteService.Status(r.Context(), profile.ID, productID)
		if err != nil {
			logger.Error("Failed to check favorite", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, status)
	}
}
