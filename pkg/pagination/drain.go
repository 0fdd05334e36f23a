package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the page size requested from the backend.
const DefaultPageSize = 250

// Getter is the single-request client interface DrainAll fetches pages
// through.
type Getter interface {
	GetJSON(ctx context.Context, resource, path string, query url.Values, out any) error
}

// DrainAll fetches every page of a collection endpoint and concatenates
// the decoded items. The collection field names the key under which the
// backend returns each page's items.
func DrainAll[T any](ctx context.Context, g Getter, resource, path, field string, pageSize int) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	start := time.Now()
	var all []T

	for page := 1; ; page++ {
		query := url.Values{
			"page":         {strconv.Itoa(page)},
			"itemsPerPage": {strconv.Itoa(pageSize)},
		}

		var body map[string]json.RawMessage
		if err := g.GetJSON(ctx, resource, path, query, &body); err != nil {
			return nil, fmt.Errorf("drain %s page %d: %w", resource, page, err)
		}

		var items []T
		if raw, ok := body[field]; ok && len(raw) > 0 {
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("drain %s page %d: decode %q field: %w", resource, page, field, err)
			}
		}

		all = append(all, items...)

		// An empty page or a short page is the last one.
		if len(items) < pageSize {
			break
		}
	}

	log.Debug().
		Str("resource", resource).
		Int("items", len(all)).
		Dur("duration", time.Since(start)).
		Msg("Collection drain complete")

	return all, nil
}
