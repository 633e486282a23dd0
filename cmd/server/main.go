package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/favorites"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/kvstore"
	"storefront-be/internal/logger"
	"storefront-be/internal/notify"
)

// Swappable seams for testing.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router, err := newServer(cfg, database)
	if err != nil {
		return err
	}

	log.Printf("🚀 Storefront API running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, database *sql.DB) (*mux.Router, error) {
	var snapshots kvstore.Store
	switch cfg.StorageBackend {
	case "postgres":
		snapshots = kvstore.NewPostgres(database)
	default:
		fileStore, err := kvstore.NewFile(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		snapshots = fileStore
	}

	catalogRepo := catalog.NewRepository(database)
	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewLog()
	ctx := context.Background()

	cartStore, err := cart.NewStore(ctx, snapshots, notifier)
	if err != nil {
		return nil, err
	}
	favStore, err := favorites.NewStore(ctx, snapshots, notifier, catalogSvc)
	if err != nil {
		return nil, err
	}

	var rates checkout.RateProvider
	if cfg.ShippingProvider != "" {
		rates = checkout.NewFlatRateProvider(cfg.ShippingProvider)
	}
	var payments checkout.PaymentGateway
	if cfg.PaymentCheckoutURL != "" {
		payments = checkout.NewRedirectGateway("hosted", cfg.PaymentCheckoutURL)
	}
	checkoutSvc := checkout.NewService(catalogSvc, rates, payments)

	server := httpapi.NewServer(cartStore, favStore, checkoutSvc, cfg.AppConfigPath)
	return server.Router, nil
}
