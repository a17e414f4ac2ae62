package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/assistant"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cart"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/health"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/session"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/storage"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry, cfg.Env, logger)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := storage.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}
	kv := storage.NewRedisStorage(redisClient, cfg.RedisConnect.Timeout)

	// Record store setup
	validate := utils.NewValidator()
	repos, err := repository.New(&cfg.TableStore, validate)
	if err != nil {
		slog.Error("❌ Error creating the table store client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	carts := cart.NewManager(kv, cfg.Cart, logger)
	sessions := session.NewStore(kv)
	limiter := session.NewLoginLimiter(redisClient, cfg.RateLimit)
	engine := checkout.NewEngine(repos.Orders, cfg.Checkout, logger)

	// Assistant stays disabled without an API key
	var generator assistant.Generator
	if cfg.Assistant.APIKey != "" {
		client, err := assistant.NewClient(cfg.Assistant)
		if err != nil {
			slog.Error("❌ Error creating the assistant client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		generator = client
	} else {
		slog.Warn("⚠️ Assistant API key not set, chat is disabled")
	}

	userService := service.NewUserService(repos.Users, sessions, limiter, logger)
	userHandler := handlers.NewUserHandler(userService, validate)
	productService := service.NewProductService(repos.Products)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(carts, productService)
	cartHandler := handlers.NewCartHandler(cartService, validate)
	checkoutService := service.NewCheckoutService(carts, sessions, repos.Addresses, repos.Vouchers, engine, cfg.Checkout, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, validate)
	orderService := service.NewOrderService(repos.Orders, logger)
	orderHandler := handlers.NewOrderHandler(orderService, validate)
	assistantService := assistant.NewService(productService, generator, logger)
	assistantHandler := handlers.NewAssistantHandler(assistantService, validate)
	authMiddleware := middleware.NewAuthMiddleware(sessions, cfg.Staff.APIKey)

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{TableStore: repos.Client})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	device := middleware.RequireDevice
	signedIn := func(next http.HandlerFunc) http.HandlerFunc {
		return device(authMiddleware.Authenticate(next))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/session", device(userHandler.Login()))
	routerMux.HandleFunc("GET /api/v1/session", device(userHandler.CurrentSession()))
	routerMux.HandleFunc("DELETE /api/v1/session", device(userHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/cart", device(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", device(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{productId}", device(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", device(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", device(cartHandler.ClearCart()))
	routerMux.HandleFunc("GET /api/v1/checkout/quote", device(checkoutHandler.Quote()))
	routerMux.HandleFunc("POST /api/v1/checkout", device(checkoutHandler.PlaceOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", signedIn(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", signedIn(orderHandler.GetOrder()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/cancel", signedIn(orderHandler.CancelOrder()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.RequireStaff(orderHandler.UpdateStatus()))
	routerMux.HandleFunc("POST /api/v1/assistant/chat", assistantHandler.Chat())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthChecker.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(logger)(handler)
	handler = otelhttp.NewHandler(handler, cfg.Telemetry.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	// Pending cart writes must land before redis goes away
	if err := carts.Close(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing carts", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Carts flushed")
	}

	if err := kv.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Redis connection closed")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
