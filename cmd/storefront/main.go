package main

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/storefront-api/docs"
	"github.com/aaravmahajanofficial/storefront-api/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/api/router"
	"github.com/aaravmahajanofficial/storefront-api/internal/cache"
	"github.com/aaravmahajanofficial/storefront-api/internal/config"
	"github.com/aaravmahajanofficial/storefront-api/internal/health"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	"github.com/aaravmahajanofficial/storefront-api/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront-api/pkg/sendgrid"
	stripeClient "github.com/aaravmahajanofficial/storefront-api/pkg/stripe"
)

const limiterCleanupInterval = time.Minute

//	@title						Storefront API
//	@version					1.0
//	@description				Catalog, cart, checkout and order tracking for the clothing storefront.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer catalogCache.Close()

	stripe := stripeClient.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Services
	notificationService := service.NewNotificationService(repos.Notifications, emailService, service.NotifierConfig{
		QueueSize:   cfg.Checkout.NotificationQueueSize,
		AdminEmails: cfg.SendGrid.AdminEmails,
		SendTimeout: cfg.SendGrid.Timeout,
	})

	variantService := service.NewVariantService(repos.Variants)
	catalogService := service.NewCatalogService(repos.Catalog, variantService, catalogCache, service.CatalogConfig{
		PageSize:        cfg.Catalog.PageSize,
		HomeCollections: cfg.Catalog.HomeCollections,
		CacheTTL:        cfg.Cache.DefaultTTL,
		ViewHashKey:     []byte(cfg.Security.ViewHashKey),
	})
	profileService := service.NewProfileService(repos.Profiles)
	cartService := service.NewCartService(repos.Cart, repos.Variants, repos.Tx, cfg.Cart.BulkAtomic)
	favoriteService := service.NewFavoriteService(repos.Favorites)
	orderService := service.NewOrderService(repos.Orders, repos.Payments, repos.Tx, notificationService)
	paymentService := service.NewPaymentService(repos.Payments, repos.Orders, repos.Tx, stripe)
	checkoutService := service.NewCheckoutService(repos.Tx, repos.Payments, stripe,
		service.CheckoutConfig{
			Currency:            cfg.Stripe.Currency,
			SuccessURL:          cfg.Stripe.SuccessURL,
			CancelURL:           cfg.Stripe.CancelURL,
			GatewayTimeout:      cfg.Stripe.Timeout,
			OrderNumberAttempts: cfg.Checkout.OrderNumberAttempts,
		},
		service.WithRateLimiter(repository.NewRateLimitRepo(redisClient, cfg.RateConfig)),
		service.WithHooks(service.MetricsHook, service.NotifyHook(notificationService)),
	)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{StripeClient: stripe})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiter := middleware.NewRateLimiter(cfg.RateConfig.RequestsPerSecond, cfg.RateConfig.Burst)
	go limiter.Cleanup(ctx, limiterCleanupInterval)

	// detached from ctx so queued emails still go out after the signal
	go notificationService.Run(context.WithoutCancel(ctx))

	handler := router.New(&router.Handlers{
		Catalog:  handlers.NewCatalogHandler(catalogService, variantService),
		Profile:  handlers.NewProfileHandler(profileService),
		Cart:     handlers.NewCartHandler(cartService, profileService),
		Favorite: handlers.NewFavoriteHandler(favoriteService, profileService),
		Checkout: handlers.NewCheckoutHandler(checkoutService, profileService),
		Order:    handlers.NewOrderHandler(orderService, profileService),
		Payment:  handlers.NewPaymentHandler(paymentService),
		Admin:    handlers.NewAdminHandler(orderService, paymentService, notificationService),
		Auth:     middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey)),
		Limiter:  limiter,
		Health:   healthHandler.Handler(),
	})

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); !stdErrors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	// in-flight checkouts are done, so the queue can be drained
	if err := notificationService.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Notification queue was not drained", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
