package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mahedios/estore-backend/api/routes"
	"github.com/mahedios/estore-backend/internal/adminauth"
	"github.com/mahedios/estore-backend/internal/banners"
	"github.com/mahedios/estore-backend/internal/cart"
	"github.com/mahedios/estore-backend/internal/categories"
	checkoutsvc "github.com/mahedios/estore-backend/internal/checkout"
	"github.com/mahedios/estore-backend/internal/delivery"
	"github.com/mahedios/estore-backend/internal/orders"
	"github.com/mahedios/estore-backend/internal/products"
	"github.com/mahedios/estore-backend/internal/settings"
	"github.com/mahedios/estore-backend/pkg/auth/session"
	"github.com/mahedios/estore-backend/pkg/config"
	"github.com/mahedios/estore-backend/pkg/db"
	"github.com/mahedios/estore-backend/pkg/logger"
	"github.com/mahedios/estore-backend/pkg/migrate"
	"github.com/mahedios/estore-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	categoriesRepo := categories.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	bannersRepo := banners.NewRepository(dbClient.DB())
	deliveryRepo := delivery.NewRepository(dbClient.DB())
	settingsRepo := settings.NewRepository(dbClient.DB())
	adminRepo := adminauth.NewRepository(dbClient.DB())

	categoriesSvc, err := categories.NewService(categoriesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create categories service", err)
		os.Exit(1)
	}
	productsSvc, err := products.NewService(productsRepo, categoriesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}
	cartSvc, err := cart.NewService(cartRepo, productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	checkoutSvc, err := checkoutsvc.NewService(cartRepo, ordersRepo, productsRepo, deliveryRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	ordersSvc, err := orders.NewService(ordersRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	bannersSvc, err := banners.NewService(bannersRepo, productsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create banners service", err)
		os.Exit(1)
	}
	deliverySvc, err := delivery.NewService(deliveryRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}
	settingsSvc, err := settings.NewService(settingsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}
	adminAuthSvc, err := adminauth.NewService(adminRepo, sessionManager, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin auth service", err)
		os.Exit(1)
	}

	if err := settingsSvc.Ensure(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to ensure site settings", err)
		os.Exit(1)
	}
	if err := adminAuthSvc.EnsureSeedAdmin(context.Background(), cfg.Admin); err != nil {
		logg.Error(context.Background(), "failed to seed admin account", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			categoriesSvc,
			productsSvc,
			cartSvc,
			checkoutSvc,
			ordersSvc,
			bannersSvc,
			deliverySvc,
			settingsSvc,
			adminAuthSvc,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
