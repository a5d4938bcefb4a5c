// Package specindex provides a read-only index over a parsed spec document:
// ordered endpoint iteration, endpoint lookup, schema-name iteration, and
// $ref resolution.
//
// Endpoint and schema records are views into the document, not copies; the
// underlying document is never mutated. Listings follow document order so
// repeated calls return identical results.
package specindex
