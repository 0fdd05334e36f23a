// Package config loads the process configuration from environment
// variables. A missing required setting is a startup error: the process
// cannot do anything useful without a reachable, authenticated backend.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LinkIDPlaceholder is the token in the product link template that gets
// replaced with a product's external identifier.
const LinkIDPlaceholder = "{id}"

// Config holds the complete process configuration.
type Config struct {
	// BaseURL is the shop API base URL (SHOP_BASE_URL).
	BaseURL string

	// Email and APIKey form the static API credential
	// (SHOP_API_EMAIL, SHOP_API_KEY).
	Email  string
	APIKey string

	// AdminBaseURL is the shop admin panel base URL used to build order
	// detail links (SHOP_ADMIN_BASE_URL).
	AdminBaseURL string

	// ProductLinkTemplate is a URL template containing {id}, filled with
	// a product's external identifier (SHOP_PRODUCT_LINK_TEMPLATE).
	ProductLinkTemplate string

	// CacheTTL is how long cached catalogs stay fresh
	// (SHOP_CACHE_TTL_SECONDS, default 0 = caching disabled).
	CacheTTL time.Duration

	// ContactFieldID selects the order custom field holding the
	// customer's contact channel (SHOP_CONTACT_FIELD_ID, optional).
	ContactFieldID string

	// CacheDir is where cache files live (SHOP_CACHE_DIR, default ./cache).
	CacheDir string

	// LogFile is the log destination; empty means stderr (SHOP_LOG_FILE).
	LogFile string

	// LogLevel is the minimum log level (SHOP_LOG_LEVEL, default info).
	LogLevel string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:             os.Getenv("SHOP_BASE_URL"),
		Email:               os.Getenv("SHOP_API_EMAIL"),
		APIKey:              os.Getenv("SHOP_API_KEY"),
		AdminBaseURL:        os.Getenv("SHOP_ADMIN_BASE_URL"),
		ProductLinkTemplate: os.Getenv("SHOP_PRODUCT_LINK_TEMPLATE"),
		ContactFieldID:      os.Getenv("SHOP_CONTACT_FIELD_ID"),
		CacheDir:            os.Getenv("SHOP_CACHE_DIR"),
		LogFile:             os.Getenv("SHOP_LOG_FILE"),
		LogLevel:            os.Getenv("SHOP_LOG_LEVEL"),
	}

	var missing []string
	for _, req := range []struct{ name, value string }{
		{"SHOP_BASE_URL", cfg.BaseURL},
		{"SHOP_API_EMAIL", cfg.Email},
		{"SHOP_API_KEY", cfg.APIKey},
		{"SHOP_ADMIN_BASE_URL", cfg.AdminBaseURL},
		{"SHOP_PRODUCT_LINK_TEMPLATE", cfg.ProductLinkTemplate},
	} {
		if req.value == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if !strings.Contains(cfg.ProductLinkTemplate, LinkIDPlaceholder) {
		return nil, fmt.Errorf("SHOP_PRODUCT_LINK_TEMPLATE must contain the %s placeholder", LinkIDPlaceholder)
	}

	if v := os.Getenv("SHOP_CACHE_TTL_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 0 {
			return nil, fmt.Errorf("SHOP_CACHE_TTL_SECONDS must be a non-negative integer, got %q", v)
		}
		cfg.CacheTTL = time.Duration(seconds) * time.Second
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = "cache"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
