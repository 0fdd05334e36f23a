// Package pagination drains paginated shop API collection endpoints
// into a single in-memory sequence.
//
// The backend pages collections via page-number/page-size query
// parameters and keys each page's items under a named collection field.
// DrainAll issues sequential page requests and concatenates the items,
// stopping when a page comes back empty or shorter than the requested
// page size (a short page is the last page, so no trailing request is
// made). Any page failure aborts the whole drain and discards partial
// results: callers populate caches from the result and need a complete
// collection or nothing.
package pagination
