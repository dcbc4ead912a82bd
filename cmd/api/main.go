package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sathwikreddyb/aqua-farms-backend/api/routes"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/address"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/cart"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/catalog"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/identity"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/orders"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/settings"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/migrate"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/redis"
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

	userRepo := identity.NewRepository(dbClient.DB())
	productRepo := catalog.NewRepository(dbClient.DB())
	addressRepo := address.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	settingRepo := settings.NewRepository(dbClient.DB())

	identityService, err := identity.NewService(userRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	addressService, err := address.NewService(addressRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(productRepo, cfg.Delivery)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orderRepo, dbClient, productRepo, addressRepo, cfg.Delivery)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settingRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	if err := settingsService.Seed(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed site settings", err)
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
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DBPinger:  dbClient,
			RedisP:    redisClient,
			Limiter:   redisClient,
			Users:     userRepo,
			Identity:  identityService,
			Catalog:   catalogService,
			Addresses: addressService,
			Cart:      cartService,
			Orders:    orderService,
			Settings:  settingsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
