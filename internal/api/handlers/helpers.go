package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
)

// currentProfile resolves the authenticated user to their profile, creating
// it on first use. On failure the error response is already written.
func currentProfile(w http.ResponseWriter, r *http.Request, profiles service.ProfileService) (*models.Profile, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized access attempt: missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, logger, false
	}

	profile, err := profiles.GetOrCreate(r.Context(), claims.UserID)
	if err != nil {
		logger.Error("Failed to resolve profile", slog.Any("error", err))
		response.Error(w, err)

		return nil, logger, false
	}

	return profile, logger.With(slog.Int64("profileId", profile.ID)), true
}
