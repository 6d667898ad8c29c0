package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	profileService  service.ProfileService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService, profileService service.ProfileService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, profileService: profileService, validator: validator.New()}
}

// Checkout godoc
//
//	@Summary		Place an order
//	@Description	Prices the submitted lines from the catalog, stores the order with its payment record and opens a payment session. Works for guests; a bearer token links the order to the buyer profile.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CheckoutRequest	true	"Lines and contact details"
//	@Success		201		{object}	models.CheckoutResult
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Product or variant not found"
//	@Failure		429		{object}	response.ErrorResponse	"Too many checkout attempts"
//	@Failure		502		{object}	response.ErrorResponse	"Payment gateway failure, the order is kept"
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		buyer := service.Buyer{ClientIP: middleware.ClientIP(r)}

		if _, ok := middleware.ClaimsFromContext(r.Context()); ok {
			profile, profileLogger, ok := currentProfile(w, r, h.profileService)
			if !ok {
				return
			}

			buyer.ProfileID = &profile.ID
			logger = profileLogger
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), &req, buyer)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed", slog.String("orderNumber", result.Order.Number))
		response.Success(w, http.StatusCreated, result)
	}
}
