package shop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productJSON = `{
	"id": 12,
	"product": "Test Product",
	"product_code": "ABC123",
	"date": "2026-01-02 10:00:00",
	"date_upd": "2026-02-03 11:00:00",
	"price": "499.00",
	"seo_name": "test-product",
	"description": "A field the typed model does not know about"
}`

func TestProduct_RoundTripsFullRecord(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(productJSON), &p))

	assert.Equal(t, ID("12"), p.ID)
	assert.Equal(t, "Test Product", p.Name)
	assert.Equal(t, "ABC123", p.Code)

	out, err := json.Marshal(p)
	require.NoError(t, err)

	// Unknown backend fields survive the round trip.
	var full map[string]any
	require.NoError(t, json.Unmarshal(out, &full))
	assert.Equal(t, "A field the typed model does not know about", full["description"])
}

func TestProduct_SummaryIsDerivable(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(productJSON), &p))

	s := p.Summary()
	assert.Equal(t, p.ID, s.ID)
	assert.Equal(t, p.Name, s.Name)
	assert.Equal(t, p.Code, s.Code)
	assert.Equal(t, p.Date, s.Date)
	assert.Equal(t, p.DateUpd, s.DateUpd)
	assert.Equal(t, p.Price, s.Price)
	assert.Equal(t, p.SEOName, s.SEOName)
}

func TestEnrichedProduct_MergesFeaturesIntoRecord(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(productJSON), &p))

	e := EnrichedProduct{
		Product: p,
		Features: []FeatureEntry{
			{"Color": TextValue("Red")},
			{"Weight": NumberValue(42)},
			{"Sizes": ListValue([]string{"S", "M"})},
		},
	}

	out, err := json.Marshal(e)
	require.NoError(t, err)

	var full map[string]any
	require.NoError(t, json.Unmarshal(out, &full))

	assert.Equal(t, "Test Product", full["product"])
	features, ok := full["product_features"].([]any)
	require.True(t, ok)
	require.Len(t, features, 3)

	first := features[0].(map[string]any)
	assert.Equal(t, "Red", first["Color"])
	second := features[1].(map[string]any)
	assert.Equal(t, float64(42), second["Weight"])
	third := features[2].(map[string]any)
	assert.Equal(t, []any{"S", "M"}, third["Sizes"])
}

func TestEnrichedProduct_NilFeaturesMarshalAsEmptyList(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &p))

	out, err := json.Marshal(EnrichedProduct{Product: p})
	require.NoError(t, err)

	var full map[string]any
	require.NoError(t, json.Unmarshal(out, &full))
	assert.Equal(t, []any{}, full["product_features"])
}
