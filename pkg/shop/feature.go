// Package shop defines the shop backend data model and the tolerant
// JSON types that normalize its loosely-shaped responses at the decode
// boundary.
package shop

import (
	"bytes"
	"encoding/json"
	"sort"
)

// FeatureType is the backend's single-letter feature type tag.
type FeatureType string

const (
	// FeatureTypeText is a free-text feature value.
	FeatureTypeText FeatureType = "T"

	// FeatureTypeNumber is an integer-valued feature.
	FeatureTypeNumber FeatureType = "N"

	// FeatureTypeMultiSelect is a multi-select feature that may carry a
	// variant picker.
	FeatureTypeMultiSelect FeatureType = "M"

	// FeatureTypeVariant references a single variant of the feature.
	FeatureTypeVariant FeatureType = "S"
)

// Variant is one permitted value of a feature.
type Variant struct {
	ID    ID     `json:"variant_id"`
	Label string `json:"label"`
}

// VariantList decodes a backend variant collection. The backend
// occasionally returns a non-array shape here (an empty object, null,
// or a bare string); those all normalize to an empty list.
type VariantList []Variant

// UnmarshalJSON implements json.Unmarshaler.
func (vl *VariantList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*vl = VariantList{}
		return nil
	}
	var vs []Variant
	if err := json.Unmarshal(data, &vs); err != nil {
		*vl = VariantList{}
		return nil
	}
	*vl = VariantList(vs)
	return nil
}

// Feature is a product attribute definition, independent of any product.
// Variants is populated during catalog enrichment and is always non-nil
// afterwards; VariantsError marks a failed resolution so it is
// distinguishable from a feature that genuinely has no variants.
type Feature struct {
	ID            ID          `json:"feature_id"`
	Description   string      `json:"description"`
	Type          FeatureType `json:"feature_type"`
	VariantPicker Flag        `json:"variant_picker"`
	Variants      VariantList `json:"variants"`
	VariantsError bool        `json:"variants_error,omitempty"`
}

// FeatureAssignment is the association of a feature and a value (or
// variant) to one product.
type FeatureAssignment struct {
	FeatureID     ID            `json:"feature_id"`
	Description   string        `json:"description"`
	Type          FeatureType   `json:"feature_type"`
	VariantPicker Flag          `json:"variant_picker"`
	Variants      map[ID]string `json:"variants"`
	Value         string        `json:"value"`
	ValueInt      Decimal       `json:"value_int"`
	VariantID     ID            `json:"variant_id"`
}

// VariantLabels returns the assignment's own variant labels ordered by
// variant identifier. JSON objects carry no order, so sorting keeps the
// rendered list deterministic.
func (a FeatureAssignment) VariantLabels() []string {
	ids := make([]string, 0, len(a.Variants))
	for id := range a.Variants {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, a.Variants[ID(id)])
	}
	return labels
}
