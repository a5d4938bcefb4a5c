package specindex

import (
	"strconv"
	"strings"

	"github.com/oasdocs/oasdocs/specdoc"
)

// maxResolveDepth is the maximum depth allowed for nested $ref resolution.
// This prevents stack overflow from deeply nested (but non-circular)
// references.
const maxResolveDepth = 100

// resolver expands $ref pointers within a subtree against the document root.
// A bad reference never fails the query: cycles and missing targets are
// replaced with annotated stub mappings.
type resolver struct {
	root specdoc.Value
	// resolving tracks refs on the active resolution stack. A ref must stay
	// marked until its resolved content has been fully expanded, so a schema
	// that references itself through any chain is caught as a cycle.
	resolving map[string]bool
}

// resolveRefs returns a copy of v with every reachable $ref expanded.
func resolveRefs(root, v specdoc.Value) specdoc.Value {
	r := &resolver{root: root, resolving: make(map[string]bool)}
	return r.resolve(v, 0)
}

func (r *resolver) resolve(v specdoc.Value, depth int) specdoc.Value {
	if depth > maxResolveDepth {
		return specdoc.MappingValue(
			specdoc.Pair{Key: "error", Value: specdoc.StringValue("maximum $ref resolution depth exceeded")},
		)
	}

	switch v.Kind() {
	case specdoc.KindMapping:
		if refValue, ok := v.Get("$ref"); ok && refValue.Kind() == specdoc.KindString {
			return r.resolveRef(v, refValue.Str(), depth)
		}
		pairs := make([]specdoc.Pair, 0, v.Len())
		for _, entry := range v.Pairs() {
			pairs = append(pairs, specdoc.Pair{Key: entry.Key, Value: r.resolve(entry.Value, depth+1)})
		}
		return specdoc.MappingValue(pairs...)
	case specdoc.KindSequence:
		items := make([]specdoc.Value, 0, v.Len())
		for _, item := range v.Items() {
			items = append(items, r.resolve(item, depth+1))
		}
		return specdoc.SequenceValue(items...)
	default:
		return v
	}
}

// resolveRef expands one $ref mapping. Keys alongside $ref are preserved
// when the resolved target does not define them.
func (r *resolver) resolveRef(v specdoc.Value, ref string, depth int) specdoc.Value {
	if r.resolving[ref] {
		return circularStub(ref)
	}

	target, ok := lookupRef(r.root, ref)
	if !ok {
		return unresolvedStub(ref)
	}

	r.resolving[ref] = true
	resolved := r.resolve(target, depth+1)
	delete(r.resolving, ref)

	if !resolved.IsMapping() {
		return resolved
	}

	pairs := make([]specdoc.Pair, 0, resolved.Len()+v.Len())
	pairs = append(pairs, resolved.Pairs()...)
	for _, entry := range v.Pairs() {
		if entry.Key == "$ref" || resolved.Has(entry.Key) {
			continue
		}
		pairs = append(pairs, specdoc.Pair{Key: entry.Key, Value: r.resolve(entry.Value, depth+1)})
	}
	return specdoc.MappingValue(pairs...)
}

// lookupRef walks the document root following a local reference of the form
// "#/segment/segment/...". External and malformed refs report failure.
func lookupRef(root specdoc.Value, ref string) (specdoc.Value, bool) {
	if !strings.HasPrefix(ref, "#/") {
		return specdoc.Value{}, false
	}

	current := root
	for _, segment := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		segment = unescapeJSONPointer(segment)
		switch current.Kind() {
		case specdoc.KindMapping:
			next, ok := current.Get(segment)
			if !ok {
				return specdoc.Value{}, false
			}
			current = next
		case specdoc.KindSequence:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= current.Len() {
				return specdoc.Value{}, false
			}
			current = current.Items()[index]
		default:
			return specdoc.Value{}, false
		}
	}
	return current, true
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

func circularStub(ref string) specdoc.Value {
	return specdoc.MappingValue(
		specdoc.Pair{Key: "$ref", Value: specdoc.StringValue(ref)},
		specdoc.Pair{Key: "circular", Value: specdoc.BoolValue(true)},
	)
}

func unresolvedStub(ref string) specdoc.Value {
	return specdoc.MappingValue(
		specdoc.Pair{Key: "$ref", Value: specdoc.StringValue(ref)},
		specdoc.Pair{Key: "error", Value: specdoc.StringValue("reference not found")},
	)
}
