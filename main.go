package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"marketgo/internal/auction"
	"marketgo/internal/auth"
	"marketgo/internal/cart"
	"marketgo/internal/checkout"
	"marketgo/internal/config"
	"marketgo/internal/dataservice"
	"marketgo/internal/listing"
	"marketgo/internal/messaging"
	"marketgo/internal/models"
	"marketgo/internal/notify"
	"marketgo/internal/server"
	"marketgo/internal/storage"
	"marketgo/services/market/handler"
	"marketgo/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("Failed to load configuration", map[string]any{"error": err.Error()})
	}

	ctx := context.Background()

	kvStore, err := buildKVStore(cfg)
	if err != nil {
		utils.Fatal("Failed to set up cart storage", map[string]any{"error": err.Error()})
	}

	db, err := buildDataService(ctx, cfg)
	if err != nil {
		utils.Fatal("Failed to set up data service", map[string]any{"error": err.Error()})
	}

	notifier := notify.NewLogNotifier()

	authSvc := auth.NewService(db)
	listingSvc := listing.NewService(db)
	auctionSvc := auction.NewService(db, notifier)
	cartManager := cart.NewManager(kvStore, notifier)
	checkoutSvc := checkout.NewService(db, notifier)
	messagingSvc := messaging.NewService(db)

	if cfg.DataBackend == config.BackendMemory {
		seedSampleListings(ctx, listingSvc, auctionSvc)
	}

	marketHandler := handler.NewMarketHandler(authSvc, listingSvc, auctionSvc, cartManager, checkoutSvc, messagingSvc)
	router := server.SetupRouter(marketHandler)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Starting marketplace server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

func buildKVStore(cfg *config.Config) (storage.KeyValueStore, error) {
	switch cfg.CartBackend {
	case config.BackendRedis:
		client, err := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(client, cfg.CartKeyPrefix), nil
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
	}
}

func buildDataService(ctx context.Context, cfg *config.Config) (dataservice.Store, error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		pool, err := dataservice.NewPostgresPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return dataservice.NewPostgresStore(pool), nil
	case config.BackendMemory:
		return dataservice.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// seedSampleListings adds a few listings so a dev instance has something
// to browse and bid on
func seedSampleListings(ctx context.Context, listings *listing.Service, auctions *auction.Service) {
	products := []models.Product{
		{Title: "Vintage Film Camera", Price: 149.00, Category: "Electronics", Seller: "camera_collector"},
		{Title: "Mid-Century Desk Lamp", Price: 62.50, Category: "Home", Seller: "retro_decor"},
		{Title: "Trail Running Shoes", Price: 88.00, Category: "Sports", Seller: "gear_garage"},
	}
	for _, product := range products {
		if _, err := listings.CreateProduct(ctx, product); err != nil {
			utils.Warn("failed to seed product", map[string]any{"title": product.Title, "error": err.Error()})
		}
	}

	sample := models.AuctionState{
		Title:         "Vintage Leather Jacket",
		Seller:        "vintage_collector",
		StartingPrice: 50,
		MinIncrement:  10,
		EndTime:       time.Now().UTC().Add(48 * time.Hour),
	}
	if _, err := auctions.CreateAuction(ctx, sample); err != nil {
		utils.Warn("failed to seed auction", map[string]any{"title": sample.Title, "error": err.Error()})
	}
}
