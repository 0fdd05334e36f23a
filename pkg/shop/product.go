package shop

import "encoding/json"

// Product is one backend product record. The fields needed for the
// summary projection and for search are decoded; the verbatim backend
// record is retained so "list all products" returns the complete object
// and the persistent cache round-trips it without loss.
type Product struct {
	ID      ID      `json:"id"`
	Name    string  `json:"product"`
	Code    string  `json:"product_code"`
	Date    string  `json:"date"`
	DateUpd string  `json:"date_upd"`
	Price   Decimal `json:"price"`
	SEOName string  `json:"seo_name"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the known fields and keeps the raw record.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Product(a)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the verbatim backend record when one was decoded,
// so nothing the backend sent is dropped on the way out.
func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type alias Product
	return json.Marshal(alias(p))
}

// Raw returns the verbatim backend record, or nil if the product was
// constructed locally.
func (p Product) Raw() json.RawMessage {
	return p.raw
}

// Summary returns the trimmed projection used by the search cache.
func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:      p.ID,
		Name:    p.Name,
		Code:    p.Code,
		Date:    p.Date,
		DateUpd: p.DateUpd,
		Price:   p.Price,
		SEOName: p.SEOName,
	}
}

// ProductSummary is the trimmed product projection for list/search use.
// Every field is derivable from the full record.
type ProductSummary struct {
	ID      ID      `json:"id"`
	Name    string  `json:"product"`
	Code    string  `json:"product_code"`
	Date    string  `json:"date"`
	DateUpd string  `json:"date_upd"`
	Price   Decimal `json:"price"`
	SEOName string  `json:"seo_name"`
}

// FeatureEntry is one resolved feature of an enriched product: a single
// display-name -> value pair.
type FeatureEntry map[string]Value

// EnrichedProduct is a full product record augmented with its resolved
// feature values. It is built per request and never cached.
type EnrichedProduct struct {
	Product  Product
	Features []FeatureEntry
}

// MarshalJSON merges product_features into the verbatim product record.
func (e EnrichedProduct) MarshalJSON() ([]byte, error) {
	var record map[string]json.RawMessage
	raw, err := e.Product.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}

	features := e.Features
	if features == nil {
		features = []FeatureEntry{}
	}
	fs, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	record["product_features"] = fs

	return json.Marshal(record)
}
