package features

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront-tools/shopmcp/pkg/cache"
	"github.com/storefront-tools/shopmcp/pkg/logging"
	"github.com/storefront-tools/shopmcp/pkg/pagination"
	"github.com/storefront-tools/shopmcp/pkg/shop"
)

const (
	featuresPath  = "/api/features"
	featuresField = "features"
)

// Catalog serves the full enriched feature catalog, cached as one blob
// with a single TTL.
type Catalog struct {
	api      Getter
	resolver *Resolver
	store    *cache.Store[[]shop.Feature]
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewCatalog creates the feature catalog service. The store should
// already be loaded.
func NewCatalog(api Getter, resolver *Resolver, store *cache.Store[[]shop.Feature], ttl time.Duration) *Catalog {
	return &Catalog{
		api:      api,
		resolver: resolver,
		store:    store,
		ttl:      ttl,
		logger:   logging.NewLogger("feature-catalog"),
	}
}

// All returns every feature with its variants resolved. A fresh cached
// catalog is returned verbatim; otherwise all features are drained from
// the backend, enriched, and cached with a fresh timestamp. An empty
// result set is a valid cached value: it is stored too, so a shop with
// no features does not re-fetch on every call within the TTL window.
func (c *Catalog) All(ctx context.Context) ([]shop.Feature, error) {
	if c.store.IsFresh(c.ttl) {
		if cached, ok := c.store.Get(); ok {
			c.logger.Debug().Int("features", len(cached)).Msg("Serving cached feature catalog")
			return cached, nil
		}
	}

	fetched, err := pagination.DrainAll[shop.Feature](ctx, c.api, "features", featuresPath, featuresField, pagination.DefaultPageSize)
	if err != nil {
		return nil, err
	}

	enriched := c.resolver.ResolveAll(ctx, fetched)
	if enriched == nil {
		enriched = []shop.Feature{}
	}

	c.store.Put(enriched)
	c.logger.Info().Int("features", len(enriched)).Msg("Feature catalog refreshed")

	return enriched, nil
}
