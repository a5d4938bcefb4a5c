package specindex

import (
	"strings"

	"github.com/oasdocs/oasdocs/internal/httputil"
	"github.com/oasdocs/oasdocs/specdoc"
)

// Endpoint is a view of one (path, method) operation: a borrowed reference
// into the document plus its identity. Attribute accessors read the
// operation mapping on demand; nothing is copied or cached.
type Endpoint struct {
	// Path is the literal path template, e.g. "/users/{id}".
	Path string
	// Method is the uppercase HTTP method, e.g. "GET".
	Method string

	op specdoc.Value
}

// Operation returns the raw operation mapping.
func (e Endpoint) Operation() specdoc.Value { return e.op }

// Summary returns the operation's summary, or "".
func (e Endpoint) Summary() string { return e.op.GetString("summary") }

// Description returns the operation's description, or "".
func (e Endpoint) Description() string { return e.op.GetString("description") }

// Tags returns the operation's tags, or nil.
func (e Endpoint) Tags() []string {
	tags, ok := e.op.Get("tags")
	if !ok {
		return nil
	}
	return tags.Strings()
}

// Index wraps a loaded document for querying. It is read-only and safe for
// concurrent use.
type Index struct {
	doc *specdoc.Document
}

// New creates an Index over doc.
func New(doc *specdoc.Document) *Index {
	return &Index{doc: doc}
}

// Document returns the underlying document.
func (ix *Index) Document() *specdoc.Document { return ix.doc }

// Endpoints returns every (path, method) operation in document order. Path
// values that are not mappings, path-level keys that are not HTTP methods,
// and method keys whose body is not a mapping are all skipped. Case-variant
// duplicate method keys keep the first occurrence.
func (ix *Index) Endpoints() []Endpoint {
	paths, ok := ix.doc.Root().Get("paths")
	if !ok || !paths.IsMapping() {
		return nil
	}

	var endpoints []Endpoint
	for _, pathEntry := range paths.Pairs() {
		if !pathEntry.Value.IsMapping() {
			continue
		}
		seen := make(map[string]bool)
		for _, opEntry := range pathEntry.Value.Pairs() {
			if !httputil.IsMethod(opEntry.Key) || !opEntry.Value.IsMapping() {
				continue
			}
			method := httputil.Canonical(opEntry.Key)
			if seen[method] {
				continue
			}
			seen[method] = true
			endpoints = append(endpoints, Endpoint{
				Path:   pathEntry.Key,
				Method: method,
				op:     opEntry.Value,
			})
		}
	}
	return endpoints
}

// Endpoint looks up one operation by exact path string and case-insensitive
// method. Path templates are matched literally: "/users/{id}" must be
// queried as "/users/{id}".
func (ix *Index) Endpoint(path, method string) (Endpoint, bool) {
	paths, ok := ix.doc.Root().Get("paths")
	if !ok || !paths.IsMapping() {
		return Endpoint{}, false
	}
	item, ok := paths.Get(path)
	if !ok || !item.IsMapping() {
		return Endpoint{}, false
	}
	for _, opEntry := range item.Pairs() {
		if !strings.EqualFold(opEntry.Key, method) {
			continue
		}
		if !httputil.IsMethod(opEntry.Key) || !opEntry.Value.IsMapping() {
			continue
		}
		return Endpoint{
			Path:   path,
			Method: httputil.Canonical(method),
			op:     opEntry.Value,
		}, true
	}
	return Endpoint{}, false
}

// schemaSection returns the named-schema mapping and its $ref prefix:
// components.schemas for OAS 3.x, definitions for Swagger 2.0. When both
// exist, components.schemas wins.
func (ix *Index) schemaSection() (specdoc.Value, string, bool) {
	root := ix.doc.Root()
	if components, ok := root.Get("components"); ok {
		if schemas, ok := components.Get("schemas"); ok && schemas.IsMapping() {
			return schemas, "#/components/schemas/", true
		}
	}
	if definitions, ok := root.Get("definitions"); ok && definitions.IsMapping() {
		return definitions, "#/definitions/", true
	}
	return specdoc.Value{}, "", false
}

// SchemaNames returns all named schema keys in document order. A spec with
// no schema section yields an empty result, not an error.
func (ix *Index) SchemaNames() []string {
	section, _, ok := ix.schemaSection()
	if !ok {
		return nil
	}
	names := make([]string, 0, section.Len())
	for _, entry := range section.Pairs() {
		names = append(names, entry.Key)
	}
	return names
}

// SchemaRef returns the local $ref string for a named schema, or "" when no
// schema section exists.
func (ix *Index) SchemaRef(name string) string {
	_, prefix, ok := ix.schemaSection()
	if !ok {
		return ""
	}
	return prefix + name
}

// RawSchema returns the unresolved schema definition by exact name.
func (ix *Index) RawSchema(name string) (specdoc.Value, bool) {
	section, _, ok := ix.schemaSection()
	if !ok {
		return specdoc.Value{}, false
	}
	return section.Get(name)
}

// Schema returns a named schema with every reachable $ref resolved against
// the document root. Reference cycles are replaced by a stub mapping rather
// than recursing; unresolvable refs become an annotated placeholder. The
// second result is false when the name is absent.
func (ix *Index) Schema(name string) (specdoc.Value, bool) {
	raw, ok := ix.RawSchema(name)
	if !ok {
		return specdoc.Value{}, false
	}
	return resolveRefs(ix.doc.Root(), raw), true
}
