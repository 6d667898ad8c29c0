package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
)

const (
	defaultOrderPageSize = 10
	maxOrderPageSize     = 50
)

type OrderHandler struct {
	orderService   service.OrderService
	profileService service.ProfileService
}

func NewOrderHandler(orderService service.OrderService, profileService service.ProfileService) *OrderHandler {
	return &OrderHandler{orderService: orderService, profileService: profileService}
}

// ListOrders godoc
//
//	@Summary	List the buyer's orders
//	@Tags		Orders
//	@Produce	json
//	@Param		page	query		int	false	"Page number"		minimum(1)
//	@Param		size	query		int	false	"Items per page"	minimum(1)	maximum(50)
//	@Success	200		{object}	models.PaginatedResponse{Data=[]models.Order}
//	@Failure	401		{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		page, size := utils.ParsePagination(r, defaultOrderPageSize, maxOrderPageSize)

		orders, err := h.orderService.ListForProfile(r.Context(), profile.ID, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// GetOrder godoc
//
//	@Summary		Get an order by number
//	@Description	Buyers see their own orders only; staff see every order.
//	@Tags			Orders
//	@Produce		json
//	@Param			number	path		string	true	"Order number"
//	@Success		200		{object}	models.Order
//	@Failure		401		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{number} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, logger, ok := currentProfile(w, r, h.profileService)
		if !ok {
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())
		number := r.PathValue("number")

		order, err := h.orderService.GetByNumber(r.Context(), number, service.Viewer{ProfileID: profile.ID, IsStaff: claims.IsStaff})
		if err != nil {
			logger.Warn("Failed to get order", slog.String("orderNumber", number), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
