package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProfileHandler struct {
	profileService service.ProfileService
	validator      *validator.Validate
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, validator: validator.New()}
}

// GetProfile godoc
//
//	@Summary		Get the buyer profile
//	@Description	Returns the profile of the authenticated user, creating an empty one on first access.
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	models.Profile
//	@Failure		401	{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/profile [get]
func (h *ProfileHandler) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, _, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}

// UpdateProfile godoc
//
//	@Summary		Update the buyer profile
//	@Description	Only the fields present in the body change. An empty birthday clears it.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		models.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	models.Profile
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/profile [put]
func (h *ProfileHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized profile update attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid profile update input")
			return
		}

		profile, err := h.profileService.Update(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update profile", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Profile updated", slog.Int64("profileId", profile.ID))
		response.Success(w, http.StatusOK, profile)
	}
}
