// Package products serves the product catalog, product search, and
// single-product feature enrichment.
package products

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront-tools/shopmcp/pkg/cache"
	"github.com/storefront-tools/shopmcp/pkg/logging"
	"github.com/storefront-tools/shopmcp/pkg/pagination"
	"github.com/storefront-tools/shopmcp/pkg/shop"
)

const (
	productsPath  = "/api/products"
	productsField = "products"
)

// Getter is the backend client surface the package needs.
type Getter interface {
	GetJSON(ctx context.Context, resource, path string, query url.Values, out any) error
}

// Catalog serves full product records and the trimmed summary
// projection used by search. The full set is cached durably; the
// summary slice is recomputed in memory from whatever full set the
// last All call returned, so search always filters current data.
type Catalog struct {
	api    Getter
	store  *cache.Store[[]shop.Product]
	ttl    time.Duration
	logger zerolog.Logger

	mu        sync.RWMutex
	summaries []shop.ProductSummary
}

// NewCatalog creates the product catalog service. The store should
// already be loaded.
func NewCatalog(api Getter, store *cache.Store[[]shop.Product], ttl time.Duration) *Catalog {
	return &Catalog{
		api:    api,
		store:  store,
		ttl:    ttl,
		logger: logging.NewLogger("product-catalog"),
	}
}

// All returns every product as its full backend record, refreshing the
// cache when stale. An empty shop is a valid cached value.
func (c *Catalog) All(ctx context.Context) ([]shop.Product, error) {
	if c.store.IsFresh(c.ttl) {
		if cached, ok := c.store.Get(); ok {
			c.logger.Debug().Int("products", len(cached)).Msg("Serving cached product catalog")
			c.project(cached)
			return cached, nil
		}
	}

	fetched, err := pagination.DrainAll[shop.Product](ctx, c.api, "products", productsPath, productsField, pagination.DefaultPageSize)
	if err != nil {
		return nil, err
	}
	if fetched == nil {
		fetched = []shop.Product{}
	}

	c.store.Put(fetched)
	c.project(fetched)
	c.logger.Info().Int("products", len(fetched)).Msg("Product catalog refreshed")

	return fetched, nil
}

// Search returns the summaries matching the given filters:
// case-insensitive substring match on name, on product code, or both
// (both supplied means both must match). Empty filters match everything;
// a product missing a field never matches a non-empty filter on it.
func (c *Catalog) Search(ctx context.Context, name, code string) ([]shop.ProductSummary, error) {
	if _, err := c.All(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	summaries := c.summaries
	c.mu.RUnlock()

	name = strings.ToLower(name)
	code = strings.ToLower(code)

	matches := []shop.ProductSummary{}
	for _, s := range summaries {
		if name != "" && !contains(s.Name, name) {
			continue
		}
		if code != "" && !contains(s.Code, code) {
			continue
		}
		matches = append(matches, s)
	}

	return matches, nil
}

// project recomputes the in-memory summary projection from a full set.
func (c *Catalog) project(products []shop.Product) {
	summaries := make([]shop.ProductSummary, len(products))
	for i, p := range products {
		summaries[i] = p.Summary()
	}

	c.mu.Lock()
	c.summaries = summaries
	c.mu.Unlock()
}

func contains(field, filter string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), filter)
}
