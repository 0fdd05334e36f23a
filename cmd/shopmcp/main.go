// Command shopmcp exposes a shop's catalog and order data as MCP tools
// over stdio, fronted by a two-level (memory + file) cache.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/storefront-tools/shopmcp/pkg/cache"
	"github.com/storefront-tools/shopmcp/pkg/client"
	"github.com/storefront-tools/shopmcp/pkg/config"
	"github.com/storefront-tools/shopmcp/pkg/features"
	"github.com/storefront-tools/shopmcp/pkg/logging"
	"github.com/storefront-tools/shopmcp/pkg/orders"
	"github.com/storefront-tools/shopmcp/pkg/products"
	"github.com/storefront-tools/shopmcp/pkg/shop"
	"github.com/storefront-tools/shopmcp/pkg/tools"
)

const version = "1.0.0"

func main() {
	// Optional .env file; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shopmcp: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := logging.Setup(logging.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "shopmcp: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	apiClient, err := client.New(client.Config{
		BaseURL: cfg.BaseURL,
		Email:   cfg.Email,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Client setup failed")
	}

	productStore := cache.NewStore[[]shop.Product](filepath.Join(cfg.CacheDir, "products.json"))
	productStore.Load()
	featureStore := cache.NewStore[[]shop.Feature](filepath.Join(cfg.CacheDir, "features.json"))
	featureStore.Load()

	resolver := features.NewResolver(apiClient, filepath.Join(cfg.CacheDir, "variants"))
	featureCatalog := features.NewCatalog(apiClient, resolver, featureStore, cfg.CacheTTL)
	productCatalog := products.NewCatalog(apiClient, productStore, cfg.CacheTTL)
	enricher := products.NewEnricher(apiClient, featureCatalog)
	orderService := orders.NewService(apiClient, orders.Config{
		AdminBaseURL:   cfg.AdminBaseURL,
		LinkTemplate:   cfg.ProductLinkTemplate,
		ContactFieldID: cfg.ContactFieldID,
	})

	mcpServer := server.NewMCPServer("shopmcp", version)
	tools.Register(mcpServer, tools.Deps{
		Products: productCatalog,
		Features: featureCatalog,
		Enricher: enricher,
		Orders:   orderService,
	})

	logger.Info().
		Str("shop", cfg.BaseURL).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Serving MCP tools on stdio")

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
