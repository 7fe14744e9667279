// Package routes defines the API routing configuration and service wiring.
package routes

import (
	"aurum/internal/config"
	"aurum/internal/handlers"
	"aurum/internal/ledger"
	"aurum/internal/middleware"
	"aurum/internal/repositories"
	"aurum/internal/services/auth"
	"aurum/internal/services/holdersync"
	"aurum/internal/services/prices"
	"aurum/internal/services/verification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Services bundles the wired-up service layer so main can hand the background
// pieces to the scheduler.
type Services struct {
	Verification verification.Service
	HolderSync   holdersync.Service
}

// SetupRoutes wires repositories, services, and handlers onto the app and
// returns the services the scheduler drives.
func SetupRoutes(app *fiber.App, db *gorm.DB) *Services {
	walletRepo := repositories.NewWalletRepository(db)
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	balanceRepo := repositories.NewBalanceRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	ledgerClient := ledger.NewClient(config.GetEnv("LEDGER_URL", "https://horizon.stellar.org"))

	authService := auth.NewService(userRepo)
	verificationService := verification.NewService(walletRepo, settingsRepo, ledgerClient)
	holderSyncService := holdersync.NewService(
		holdersync.NewLedgerSource(ledgerClient),
		tokenRepo,
		walletRepo,
		balanceRepo,
	)
	priceService := prices.NewService(
		repositories.CacheService,
		config.GetEnv("PRICE_FEED_URL", "https://api.metals.live/v1/spot"),
	)

	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(verificationService, balanceRepo)
	adminHandler := handlers.NewAdminHandler(tokenRepo, settingsRepo)
	priceHandler := handlers.NewPriceHandler(priceService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api", middleware.RequestID)

	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	authed := api.Group("", authMiddleware.Handler)
	authed.Post("/logout", authHandler.Logout)

	authed.Get("/wallets", walletHandler.ListWallets)
	authed.Post("/wallets", walletHandler.RegisterWallet)
	authed.Post("/wallets/:id/check", walletHandler.CheckWallet)
	authed.Put("/wallets/:id/activate", walletHandler.ActivateWallet)
	authed.Put("/wallets/:id/restore", walletHandler.RestoreWallet)
	authed.Delete("/wallets/:id", walletHandler.DeleteWallet)
	authed.Get("/balances", walletHandler.Balances)
	authed.Get("/price", priceHandler.Spot)

	admin := authed.Group("/admin", middleware.AdminOnly)
	admin.Get("/tokens", adminHandler.ListTokens)
	admin.Post("/tokens", adminHandler.CreateToken)
	admin.Patch("/tokens/:id", adminHandler.UpdateToken)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)

	return &Services{
		Verification: verificationService,
		HolderSync:   holderSyncService,
	}
}
