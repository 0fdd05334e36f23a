// Package features resolves feature variant sets and maintains the
// enriched feature catalog.
package features

import (
	"context"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storefront-tools/shopmcp/pkg/cache"
	"github.com/storefront-tools/shopmcp/pkg/logging"
	"github.com/storefront-tools/shopmcp/pkg/shop"
)

// Getter is the backend client surface the package needs.
type Getter interface {
	GetJSON(ctx context.Context, resource, path string, query url.Values, out any) error
}

// variantFile is the per-feature durable cache unit.
type variantFile struct {
	Variants shop.VariantList `json:"variants"`
}

// Resolver resolves a feature's variant set through a three-tier
// lookup: in-process map, per-feature cache file, backend call. A miss
// populates every tier above the one that answered. A backend failure
// is not cached, so the next resolution of the same feature retries.
type Resolver struct {
	api    Getter
	files  *cache.KeyedStore[variantFile]
	logger zerolog.Logger

	mu     sync.RWMutex
	memory map[shop.ID]shop.VariantList
}

// NewResolver creates a resolver persisting variant sets under dir.
func NewResolver(api Getter, dir string) *Resolver {
	return &Resolver{
		api:    api,
		files:  cache.NewKeyedStore[variantFile](dir),
		logger: logging.NewLogger("variant-resolver"),
		memory: make(map[shop.ID]shop.VariantList),
	}
}

// Resolve returns the feature with its Variants populated. Variants is
// always non-nil afterwards; VariantsError marks a failed backend
// lookup so callers can tell it apart from "no variants".
func (r *Resolver) Resolve(ctx context.Context, f shop.Feature) shop.Feature {
	f.Variants = shop.VariantList{}
	f.VariantsError = false

	if f.ID == "" {
		return f
	}

	// Tier 1: in-process map.
	r.mu.RLock()
	vs, ok := r.memory[f.ID]
	r.mu.RUnlock()
	if ok {
		f.Variants = vs
		return f
	}

	// Tier 2: durable per-feature file.
	if file, ok := r.files.Get(string(f.ID)); ok {
		vs := file.Variants
		if vs == nil {
			vs = shop.VariantList{}
		}
		r.remember(f.ID, vs)
		f.Variants = vs
		return f
	}

	// Tier 3: backend call for this single feature's variant set.
	var resp struct {
		Values shop.VariantList `json:"values"`
	}
	path := "/api/features/" + url.PathEscape(string(f.ID)) + "/values"
	if err := r.api.GetJSON(ctx, "feature values", path, nil, &resp); err != nil {
		r.logger.Warn().
			Err(err).
			Str("feature_id", string(f.ID)).
			Msg("Variant resolution failed")
		f.VariantsError = true
		return f
	}

	vs = resp.Values
	if vs == nil {
		vs = shop.VariantList{}
	}

	r.remember(f.ID, vs)
	r.files.Put(string(f.ID), variantFile{Variants: vs})

	f.Variants = vs
	return f
}

// ResolveAll resolves every feature in parallel. Results are mapped
// positionally, so the returned sequence preserves the input order no
// matter which resolution finishes first.
func (r *Resolver) ResolveAll(ctx context.Context, fs []shop.Feature) []shop.Feature {
	out := make([]shop.Feature, len(fs))

	var wg sync.WaitGroup
	for i, f := range fs {
		wg.Add(1)
		go func(i int, f shop.Feature) {
			defer wg.Done()
			out[i] = r.Resolve(ctx, f)
		}(i, f)
	}
	wg.Wait()

	return out
}

func (r *Resolver) remember(id shop.ID, vs shop.VariantList) {
	r.mu.Lock()
	r.memory[id] = vs
	r.mu.Unlock()
}
