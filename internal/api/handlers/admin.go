package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AdminHandler serves the staff back office. Every route sits behind
// AuthMiddleware.RequireStaff.
type AdminHandler struct {
	orderService        service.OrderService
	paymentService      service.PaymentService
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewAdminHandler(orderService service.OrderService, paymentService service.PaymentService, notificationService service.NotificationService) *AdminHandler {
	return &AdminHandler{
		orderService:        orderService,
		paymentService:      paymentService,
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// UpdateOrderStatus godoc
//
//	@Summary		Move an order to another status
//	@Description	Forward moves along the fulfilment chain, cancelling an open order and failing an unpaid one are allowed.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Order ID"
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse	"Transition not allowed"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger = logger.With(slog.Int64("orderId", id))

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update order status input")
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Warn("Failed to update order status", slog.String("newStatus", string(req.Status)), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// UpdateDeliveryDate godoc
//
//	@Summary		Set the delivery date of an order
//	@Description	The buyer is emailed when the date changes.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int									true	"Order ID"
//	@Param			date	body		models.UpdateDeliveryDateRequest	true	"Delivery date (YYYY-MM-DD)"
//	@Success		200		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/admin/orders/{id}/delivery-date [patch]
func (h *AdminHandler) UpdateDeliveryDate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		var req models.UpdateDeliveryDateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid delivery date input")
			return
		}

		date, err := time.Parse(time.DateOnly, req.DeliveryDate)
		if err != nil {
			response.Error(w, errors.AddValidationError("delivery_date", "must be formatted as YYYY-MM-DD"))
			return
		}

		order, err := h.orderService.UpdateDeliveryDate(r.Context(), id, date)
		if err != nil {
			logger.Warn("Failed to update delivery date", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ApplyPaymentAction godoc
//
//	@Summary		Confirm or cancel a pending payment
//	@Tags			Admin
//	@Produce		json
//	@Param			id		path		int		true	"Payment ID"
//	@Param			action	path		string	true	"confirm or cancel"
//	@Success		200		{object}	models.PaymentRecord
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse	"Payment already settled"
//	@Security		BearerAuth
//	@Router			/admin/payments/{id}/{action} [post]
func (h *AdminHandler) ApplyPaymentAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid payment id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		action := models.PaymentAction(r.PathValue("action"))

		payment, err := h.paymentService.ApplyAction(r.Context(), id, action)
		if err != nil {
			logger.Warn("Failed to apply payment action",
				slog.Int64("paymentId", id), slog.String("action", string(action)), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, payment)
	}
}

// ListOrderNotifications godoc
//
//	@Summary	Emails sent for an order
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{array}		models.Notification
//	@Security	BearerAuth
//	@Router		/admin/orders/{id}/notifications [get]
func (h *AdminHandler) ListOrderNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		notifications, err := h.notificationService.ListByOrder(r.Context(), id)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, notifications)
	}
}
