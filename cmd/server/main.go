package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	identityapp "github.com/storefront/backend/internal/application/identity"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/payment"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Storefront Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs cart persistence and the token blacklist. When it is
	// unreachable at startup the server falls back to in-memory stores,
	// which is acceptable for development but loses carts on restart.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	var cartStore cart.Store
	var blacklist auth.TokenBlacklist
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory cart store and token blacklist", zap.Error(err))
		redisClient = nil
		cartStore = cache.NewInMemoryCartStore()
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		log.Info("Redis connected successfully")
		cartStore = cache.NewRedisCartStore(redisClient, cfg.Cart.TTL, log)
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	// Payment gateway (hosted redirect or Stripe Checkout)
	gateway, err := payment.NewGateway(&cfg.Checkout, log)
	if err != nil {
		log.Fatal("Failed to configure payment gateway", zap.Error(err))
	}
	log.Info("Payment gateway configured", zap.String("gateway", cfg.Checkout.Gateway))

	// Product image storage
	var imageStorage storage.ImageStorage
	switch cfg.Storage.Provider {
	case "s3":
		imageStorage, err = storage.NewS3ImageStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to configure image storage", zap.Error(err))
		}
	default:
		imageStorage = storage.NewStubImageStorage()
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	cartService := cartapp.NewCartService(cartStore, productRepo, categoryRepo, log)
	checkoutService := checkoutapp.NewCheckoutService(cartStore, gateway, orderRepo, log)
	orderService := orderapp.NewOrderService(orderRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, imageStorage)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	systemHandler := handler.NewSystemHandler(db, redisClient)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication applies to every versioned route. Public and
	// cookie-identified routes are listed as skips; the cart and checkout
	// groups re-attach the optional variant below so a logged-in shopper
	// is still recognized there.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/products",
			"/api/v1/categories",
			"/api/v1/cart",
			"/api/v1/checkout",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	cartIdentity := middleware.CartID(cfg.Cookie)
	optionalJWT := middleware.OptionalJWTAuthMiddleware(jwtService)

	// Storefront catalog (public)
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/featured", productHandler.ListFeatured)
	catalogRoutes.GET("/products/:id", productHandler.Get)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/:slug", categoryHandler.GetBySlug)

	// Shopping cart (cookie-identified, works for guests)
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.Use(cartIdentity, optionalJWT)
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:productId", cartHandler.UpdateItem)
	cartRoutes.DELETE("/items/:productId", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)

	// Checkout handoff to the hosted payment gateway
	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.Use(cartIdentity, optionalJWT)
	checkoutRoutes.POST("/session", checkoutHandler.CreateSession)
	checkoutRoutes.POST("/success", checkoutHandler.Complete)
	checkoutRoutes.POST("/cancel", checkoutHandler.Cancel)

	// Authentication
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Customer order history
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("", orderHandler.ListMine)
	orderRoutes.GET("/:id", orderHandler.GetMine)

	// Admin panel (inventory, orders, customers)
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.AdminRequired())
	adminRoutes.GET("/products", productHandler.ListAll)
	adminRoutes.POST("/products", productHandler.Create)
	adminRoutes.PUT("/products/:id", productHandler.Update)
	adminRoutes.DELETE("/products/:id", productHandler.Delete)
	adminRoutes.POST("/products/:id/activate", productHandler.Activate)
	adminRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)
	adminRoutes.POST("/products/upload-url", productHandler.CreateUploadURL)
	adminRoutes.POST("/categories", categoryHandler.Create)
	adminRoutes.PUT("/categories/:id", categoryHandler.Update)
	adminRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	adminRoutes.GET("/orders", orderHandler.ListAll)
	adminRoutes.GET("/orders/:id", orderHandler.Get)
	adminRoutes.POST("/orders/:id/ship", orderHandler.MarkShipped)
	adminRoutes.POST("/orders/:id/cancel", orderHandler.Cancel)
	adminRoutes.GET("/users", userHandler.List)
	adminRoutes.GET("/users/:id", userHandler.Get)
	adminRoutes.POST("/users/:id/promote", userHandler.Promote)
	adminRoutes.POST("/users/:id/deactivate", userHandler.Deactivate)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(cartRoutes).
		Register(checkoutRoutes).
		Register(authRoutes).
		Register(orderRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
