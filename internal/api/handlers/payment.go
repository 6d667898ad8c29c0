package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
)

// Stripe caps event payloads well below this.
const maxWebhookBytes = 64 << 10

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// HandleStripeWebhook godoc
//
//	@Summary		Payment gateway webhook
//	@Description	Settles the payment of a completed or expired checkout session. Other events are acknowledged.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Webhook signature"
//	@Success		200					{object}	response.APIResponse
//	@Failure		400					{object}	response.ErrorResponse	"Missing or invalid signature"
//	@Failure		404					{object}	response.ErrorResponse	"Unknown payment"
//	@Router			/payments/webhook [post]
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body").WithError(err))

			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe Signature is required"))

			return
		}

		event, err := h.paymentService.ProcessWebhook(r.Context(), payload, signature)
		if err != nil {
			logger.Error("Failed to process payment webhook",
				slog.String("eventId", event.ID),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Payment webhook processed", slog.String("eventId", event.ID), slog.String("eventType", string(event.Type)))
		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
