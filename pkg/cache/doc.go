// Package cache provides the two-level persistent cache: an in-memory
// value mirrored to a JSON file on disk.
//
// Store holds one {payload, epoch_timestamp} value per resource type
// (product catalog, feature catalog) with load-on-start / save-on-write
// semantics and an explicit freshness predicate (age < TTL). Cache
// durability is an optimization, not a correctness requirement: a
// missing or corrupt file loads as empty state, and write failures are
// logged and ignored.
//
// VariantStore holds one small JSON file per feature identifier with
// that feature's resolved variant set. Variant files carry no TTL;
// variants are assumed stable for a feature's lifetime and only
// explicit deletion invalidates them.
package cache
