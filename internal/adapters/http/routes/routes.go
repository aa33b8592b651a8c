package routes

import (
	"time"

	"shoplocal-api/internal/adapters/http/handlers"
	"shoplocal-api/internal/adapters/http/middleware"
	"shoplocal-api/internal/adapters/persistence/repositories"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *config.Database, cfg *config.Config) {
	// Initialize repositories
	adminRepo := repositories.NewAdminUserRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	operatorRepo := repositories.NewOperatorRepository(db)
	shopRepo := repositories.NewShopRepository(db)
	pageRepo := repositories.NewPageRepository(db)
	otpRepo := repositories.NewOTPRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminRepo, agentRepo, operatorRepo, cfg)
	agentService := services.NewAgentService(agentRepo, shopRepo)
	operatorService := services.NewOperatorService(operatorRepo)
	shopService := services.NewShopService(shopRepo, agentRepo)
	pageService := services.NewPageService(pageRepo)
	otpService := services.NewOTPService(otpRepo, agentRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	shopHandler := handlers.NewShopHandler(shopService)
	pageHandler := handlers.NewPageHandler(pageService)
	adminAgentHandler := handlers.NewAdminAgentHandler(agentService)
	adminOperatorHandler := handlers.NewAdminOperatorHandler(operatorService)
	agentHandler := handlers.NewAgentHandler(authService, agentService, shopService, otpService, cfg)
	operatorHandler := handlers.NewOperatorHandler(authService, shopService, cfg)
	publicHandler := handlers.NewPublicHandler(shopService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupPublicRoutes(apiV1, publicHandler, pageHandler)
	setupAdminRoutes(apiV1.Group("/admin"), authService, authHandler, shopHandler, pageHandler, adminAgentHandler, adminOperatorHandler)
	setupAgentRoutes(apiV1.Group("/agent"), authService, agentHandler)
	setupOperatorRoutes(apiV1.Group("/operator"), authService, operatorHandler)
}

// setupPublicRoutes configures the unauthenticated directory routes
func setupPublicRoutes(router fiber.Router, publicHandler *handlers.PublicHandler, pageHandler *handlers.PageHandler) {
	shops := router.Group("/shops", middleware.CacheControl(5*time.Minute))
	shops.Get("/", publicHandler.Shops)
	shops.Get("/:id", publicHandler.Shop)

	// Visit counter must not be cached
	router.Post("/shops/:id/visit", publicHandler.Visit)

	router.Get("/pages/:slug", middleware.CacheControl(5*time.Minute), pageHandler.GetBySlug)
}

// setupAdminRoutes configures the back-office routes
func setupAdminRoutes(
	router fiber.Router,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	shopHandler *handlers.ShopHandler,
	pageHandler *handlers.PageHandler,
	adminAgentHandler *handlers.AdminAgentHandler,
	adminOperatorHandler *handlers.AdminOperatorHandler,
) {
	// Auth routes
	auth := router.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AdminAuth(authService), authHandler.Me)

	// Everything below requires an authenticated admin user
	protected := router.Group("", middleware.AdminAuth(authService))

	// Shops: viewing needs any staff role, writes need edit, removal needs delete
	shops := protected.Group("/shops")
	shops.Get("/", middleware.Privileged(), shopHandler.List)
	shops.Get("/:id", middleware.Privileged(), shopHandler.Get)
	shops.Post("/", middleware.CanEdit(), shopHandler.Create)
	shops.Put("/:id", middleware.CanEdit(), shopHandler.Update)
	shops.Put("/:id/payment", middleware.CanEdit(), shopHandler.ConfirmPayment)
	shops.Delete("/:id", middleware.CanDelete(), shopHandler.Delete)

	// Pages
	pages := protected.Group("/pages")
	pages.Get("/", middleware.CanEdit(), pageHandler.List)
	pages.Get("/:id", middleware.CanEdit(), pageHandler.Get)
	pages.Post("/", middleware.CanEdit(), pageHandler.Create)
	pages.Put("/:id", middleware.CanEdit(), pageHandler.Update)
	pages.Post("/:id/duplicate", middleware.CanEdit(), pageHandler.Duplicate)
	pages.Delete("/:id", middleware.CanDelete(), pageHandler.Delete)

	// Agent management (admin only)
	agents := protected.Group("/agents", middleware.AdminOnly())
	agents.Get("/", adminAgentHandler.List)
	agents.Post("/", adminAgentHandler.Create)
	agents.Put("/:id/active", adminAgentHandler.SetActive)
	agents.Put("/:id/recalculate", adminAgentHandler.Recalculate)

	// Operator management (admin only)
	operators := protected.Group("/operators", middleware.AdminOnly())
	operators.Get("/", adminOperatorHandler.List)
	operators.Post("/", adminOperatorHandler.Create)
	operators.Put("/:id/active", adminOperatorHandler.SetActive)

	// Back-office user listing (admin only)
	protected.Get("/users", middleware.AdminOnly(), authHandler.Users)
}

// setupAgentRoutes configures the agent portal routes
func setupAgentRoutes(router fiber.Router, authService *services.AuthService, agentHandler *handlers.AgentHandler) {
	auth := router.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/login", middleware.AuthRateLimiter(), agentHandler.Login)
	auth.Post("/logout", agentHandler.Logout)
	auth.Get("/me", middleware.AgentAuth(authService), agentHandler.Me)

	// OTP password reset (strict rate limit against code brute force)
	auth.Post("/otp/request", middleware.StrictRateLimiter(), agentHandler.RequestOTP)
	auth.Post("/otp/verify", middleware.StrictRateLimiter(), agentHandler.VerifyOTP)

	protected := router.Group("", middleware.AgentAuth(authService))
	protected.Post("/shops", agentHandler.RegisterShop)
	protected.Get("/shops", agentHandler.MyShops)
	protected.Get("/earnings", agentHandler.Earnings)
}

// setupOperatorRoutes configures the operator portal routes
func setupOperatorRoutes(router fiber.Router, authService *services.AuthService, operatorHandler *handlers.OperatorHandler) {
	auth := router.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/login", middleware.AuthRateLimiter(), operatorHandler.Login)
	auth.Post("/logout", operatorHandler.Logout)
	auth.Get("/me", middleware.OperatorAuth(authService), operatorHandler.Me)

	protected := router.Group("", middleware.OperatorAuth(authService), middleware.Privileged())
	protected.Get("/shops", operatorHandler.Shops)
	protected.Put("/shops/:id/visibility", operatorHandler.SetVisibility)
}
