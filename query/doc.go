// Package query implements the five spec query operations: search
// endpoints, get endpoint, list all endpoints, search schemas, get schema.
//
// Every operation is a pure function of the index and its arguments. Absence
// is never an error: lookups that find nothing return a result with
// Found=false echoing the requested identity, so the calling model can
// reason about what was missing.
package query
