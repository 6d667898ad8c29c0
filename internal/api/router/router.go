package router

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups everything the route table needs.
type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Profile  *handlers.ProfileHandler
	Cart     *handlers.CartHandler
	Favorite *handlers.FavoriteHandler
	Checkout *handlers.CheckoutHandler
	Order    *handlers.OrderHandler
	Payment  *handlers.PaymentHandler
	Admin    *handlers.AdminHandler

	Auth    *middleware.AuthMiddleware
	Limiter *middleware.RateLimiter
	// Health is mounted on /health when set.
	Health http.Handler
}

// New registers the route table and wraps it in the middleware chain.
// Metrics sits innermost so the matched pattern is visible to it.
func New(h *Handlers) http.Handler {
	mux := http.NewServeMux()

	auth := h.Auth.Authenticate
	staff := h.Auth.RequireStaff

	// Catalog
	mux.HandleFunc("GET /api/v1/home", h.Catalog.GetHome())
	mux.HandleFunc("GET /api/v1/menu", h.Catalog.GetMenu())
	mux.HandleFunc("GET /api/v1/categories", h.Catalog.ListCategories())
	mux.HandleFunc("GET /api/v1/collections", h.Catalog.ListCollections())
	mux.HandleFunc("GET /api/v1/collections/{id}", h.Catalog.GetCollection())
	mux.HandleFunc("GET /api/v1/facets", h.Catalog.ListFacets())
	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts())
	mux.HandleFunc("GET /api/v1/products/{id}", h.Catalog.GetProduct())
	mux.HandleFunc("GET /api/v1/products/{id}/colors", h.Catalog.ListColorVariants())
	mux.HandleFunc("GET /api/v1/products/{id}/variant", h.Catalog.ResolveVariant())

	// Profile
	mux.HandleFunc("GET /api/v1/profile", auth(h.Profile.GetProfile()))
	mux.HandleFunc("PUT /api/v1/profile", auth(h.Profile.UpdateProfile()))

	// Cart
	mux.HandleFunc("GET /api/v1/cart", auth(h.Cart.GetCart()))
	mux.HandleFunc("POST /api/v1/cart/items", auth(h.Cart.SetItem()))
	mux.HandleFunc("POST /api/v1/cart/items/increment", auth(h.Cart.IncrementItem()))
	mux.HandleFunc("POST /api/v1/cart/items/bulk", auth(h.Cart.BulkAdd()))
	mux.HandleFunc("PATCH /api/v1/cart/items/{id}", auth(h.Cart.UpdateQuantity()))
	mux.HandleFunc("DELETE /api/v1/cart/items/{id}", auth(h.Cart.RemoveItem()))

	// Favorites
	mux.HandleFunc("GET /api/v1/favorites", auth(h.Favorite.ListFavorites()))
	mux.HandleFunc("POST /api/v1/favorites", auth(h.Favorite.AddFavorite()))
	mux.HandleFunc("POST /api/v1/favorites/toggle", auth(h.Favorite.ToggleFavorite()))
	mux.HandleFunc("GET /api/v1/favorites/{productId}", auth(h.Favorite.FavoriteStatus()))
	mux.HandleFunc("DELETE /api/v1/favorites/{productId}", auth(h.Favorite.RemoveFavorite()))

	// Checkout and orders
	mux.HandleFunc("POST /api/v1/checkout", h.Auth.Optional(h.Checkout.Checkout()))
	mux.HandleFunc("GET /api/v1/orders", auth(h.Order.ListOrders()))
	mux.HandleFunc("GET /api/v1/orders/{number}", auth(h.Order.GetOrder()))

	// Payments
	mux.HandleFunc("POST /api/v1/payments/webhook", h.Payment.HandleStripeWebhook())

	// Back office
	mux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", staff(h.Admin.UpdateOrderStatus()))
	mux.HandleFunc("PATCH /api/v1/admin/orders/{id}/delivery-date", staff(h.Admin.UpdateDeliveryDate()))
	mux.HandleFunc("GET /api/v1/admin/orders/{id}/notifications", staff(h.Admin.ListOrderNotifications()))
	mux.HandleFunc("POST /api/v1/admin/payments/{id}/{action}", staff(h.Admin.ApplyPaymentAction()))

	// Ops
	if h.Health != nil {
		mux.Handle("GET /health", h.Health)
	}

	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = metrics.Middleware(mux)

	if h.Limiter != nil {
		handler = h.Limiter.Limit(handler)
	}

	handler = middleware.Logging(handler)

	return otelhttp.NewHandler(handler, "storefront-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
