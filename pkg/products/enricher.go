package products

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/storefront-tools/shopmcp/pkg/logging"
	"github.com/storefront-tools/shopmcp/pkg/shop"
)

// FeatureSource provides the resolved feature catalog used to join
// assignment values against variant labels.
type FeatureSource interface {
	All(ctx context.Context) ([]shop.Feature, error)
}

// Enricher joins one product's feature assignments against the feature
// catalog and attaches the resolved values to the product record.
type Enricher struct {
	api      Getter
	features FeatureSource
	logger   zerolog.Logger
}

// NewEnricher creates a single-product enricher.
func NewEnricher(api Getter, features FeatureSource) *Enricher {
	return &Enricher{
		api:      api,
		features: features,
		logger:   logging.NewLogger("product-enricher"),
	}
}

// Enrich fetches the product record and its feature assignments
// concurrently; either fetch failing fails the whole operation. Feature
// catalog resolution happens once up front and degrades to an empty
// catalog on error, so a transient catalog failure never blocks the
// product fetch itself.
func (e *Enricher) Enrich(ctx context.Context, productID int) (shop.EnrichedProduct, error) {
	var (
		product     shop.Product
		assignments []shop.FeatureAssignment
	)

	id := strconv.Itoa(productID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.api.GetJSON(gctx, "product", productsPath+"/"+id, nil, &product)
	})
	g.Go(func() error {
		var resp struct {
			Parameters []shop.FeatureAssignment `json:"parameters"`
		}
		err := e.api.GetJSON(gctx, "product parameters", productsPath+"/"+id+"/parameters", nil, &resp)
		assignments = resp.Parameters
		return err
	})
	if err := g.Wait(); err != nil {
		return shop.EnrichedProduct{}, err
	}

	catalog, err := e.features.All(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Feature catalog unavailable, enriching without variant labels")
		catalog = nil
	}

	byID := make(map[shop.ID]shop.Feature, len(catalog))
	for _, f := range catalog {
		byID[f.ID] = f
	}

	entries := make([]shop.FeatureEntry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, shop.FeatureEntry{
			a.Description: resolveValue(a, byID),
		})
	}

	return shop.EnrichedProduct{Product: product, Features: entries}, nil
}

// resolveValue applies the assignment value rules in order:
// multi-select variant lists, numeric coercion, catalog variant label
// lookup, then the raw value unmodified.
func resolveValue(a shop.FeatureAssignment, catalog map[shop.ID]shop.Feature) shop.Value {
	if a.Type == shop.FeatureTypeMultiSelect && bool(a.VariantPicker) && len(a.Variants) > 0 {
		return shop.ListValue(a.VariantLabels())
	}

	if a.Type == shop.FeatureTypeNumber {
		return shop.NumberValue(a.ValueInt.Float64())
	}

	if a.VariantID != "" {
		if f, ok := catalog[a.FeatureID]; ok {
			for _, v := range f.Variants {
				if v.ID == a.VariantID {
					return shop.TextValue(v.Label)
				}
			}
		}
	}

	return shop.TextValue(a.Value)
}
