// Package httputil provides HTTP method constants and validation shared by
// the spec index.
package httputil

import "strings"

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// methods is the set of keys under a path item that denote operations.
// Everything else at the path level (parameters, summary, servers, x-*
// extensions) is not an endpoint.
var methods = map[string]bool{
	MethodGet:     true,
	MethodPut:     true,
	MethodPost:    true,
	MethodDelete:  true,
	MethodOptions: true,
	MethodHead:    true,
	MethodPatch:   true,
	MethodTrace:   true,
}

// IsMethod reports whether name is an HTTP method key, case-insensitively.
func IsMethod(name string) bool {
	return methods[strings.ToLower(name)]
}

// Canonical returns the uppercase form used for endpoint identity and
// client-facing output.
func Canonical(method string) string {
	return strings.ToUpper(method)
}
