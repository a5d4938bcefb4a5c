package query

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/oasdocs/oasdocs/internal/httputil"
	"github.com/oasdocs/oasdocs/specindex"
)

// EndpointMatch is one search_endpoints result.
type EndpointMatch struct {
	Path    string   `json:"path"`
	Method  string   `json:"method"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// EndpointSummary is one list_all_endpoints result.
type EndpointSummary struct {
	Path    string `json:"path"`
	Method  string `json:"method"`
	Summary string `json:"summary,omitempty"`
}

// EndpointDetail is the get_endpoint result. Found=false echoes the
// requested path and uppercased method with no details.
type EndpointDetail struct {
	Path    string `json:"path"`
	Method  string `json:"method"`
	Found   bool   `json:"found"`
	Details any    `json:"details,omitempty"`
}

// SchemaMatch is one search_schemas result. Matching is by name only;
// description and type are read from the raw definition for orientation.
type SchemaMatch struct {
	Name        string `json:"name"`
	Ref         string `json:"ref"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// SchemaDetail is the get_schema result. Found=false echoes the requested
// name with no schema.
type SchemaDetail struct {
	Name   string `json:"name"`
	Ref    string `json:"ref,omitempty"`
	Found  bool   `json:"found"`
	Schema any    `json:"schema,omitempty"`
}

// Engine answers queries against a spec index. It holds no state beyond the
// index reference, so a single Engine serves concurrent callers.
type Engine struct {
	idx *specindex.Index
}

// NewEngine creates an Engine over idx.
func NewEngine(idx *specindex.Index) *Engine {
	return &Engine{idx: idx}
}

// SearchEndpoints returns every endpoint whose path, method, summary,
// description, or any tag contains q, case-insensitively. The empty query
// matches everything. Results follow document order.
func (e *Engine) SearchEndpoints(q string) []EndpointMatch {
	caser := cases.Fold()
	needle := caser.String(q)

	var matches []EndpointMatch
	for _, ep := range e.idx.Endpoints() {
		if !endpointMatches(caser, ep, needle) {
			continue
		}
		matches = append(matches, EndpointMatch{
			Path:    ep.Path,
			Method:  ep.Method,
			Summary: ep.Summary(),
			Tags:    ep.Tags(),
		})
	}
	return matches
}

func endpointMatches(caser cases.Caser, ep specindex.Endpoint, needle string) bool {
	if containsFold(caser, ep.Path, needle) ||
		containsFold(caser, ep.Method, needle) ||
		containsFold(caser, ep.Summary(), needle) ||
		containsFold(caser, ep.Description(), needle) {
		return true
	}
	for _, tag := range ep.Tags() {
		if containsFold(caser, tag, needle) {
			return true
		}
	}
	return false
}

// containsFold reports whether s contains the already-folded needle under
// Unicode case folding.
func containsFold(caser cases.Caser, s, needle string) bool {
	return strings.Contains(caser.String(s), needle)
}

// GetEndpoint returns full details for one endpoint. The method is
// normalized to uppercase both for lookup and for echoing back.
func (e *Engine) GetEndpoint(path, method string) EndpointDetail {
	ep, ok := e.idx.Endpoint(path, method)
	if !ok {
		return EndpointDetail{Path: path, Method: httputil.Canonical(method), Found: false}
	}
	return EndpointDetail{
		Path:    ep.Path,
		Method:  ep.Method,
		Found:   true,
		Details: ep.Operation().Interface(),
	}
}

// ListEndpoints returns every endpoint, unfiltered, in document order.
func (e *Engine) ListEndpoints() []EndpointSummary {
	endpoints := e.idx.Endpoints()
	if len(endpoints) == 0 {
		return nil
	}
	summaries := make([]EndpointSummary, 0, len(endpoints))
	for _, ep := range endpoints {
		summaries = append(summaries, EndpointSummary{
			Path:    ep.Path,
			Method:  ep.Method,
			Summary: ep.Summary(),
		})
	}
	return summaries
}

// SearchSchemas returns every named schema whose name contains q,
// case-insensitively. Schema contents are deliberately not searched.
func (e *Engine) SearchSchemas(q string) []SchemaMatch {
	caser := cases.Fold()
	needle := caser.String(q)

	var matches []SchemaMatch
	for _, name := range e.idx.SchemaNames() {
		if !containsFold(caser, name, needle) {
			continue
		}
		match := SchemaMatch{Name: name, Ref: e.idx.SchemaRef(name), Type: "unknown"}
		if raw, ok := e.idx.RawSchema(name); ok && raw.IsMapping() {
			match.Description = raw.GetString("description")
			if match.Description == "" {
				match.Description = raw.GetString("title")
			}
			match.Type = "object"
			if t := raw.GetString("type"); t != "" {
				match.Type = t
			}
		}
		matches = append(matches, match)
	}
	return matches
}

// GetSchema returns one named schema with all reachable $ref pointers
// resolved against the document root.
func (e *Engine) GetSchema(name string) SchemaDetail {
	resolved, ok := e.idx.Schema(name)
	if !ok {
		return SchemaDetail{Name: name, Found: false}
	}
	return SchemaDetail{
		Name:   name,
		Ref:    e.idx.SchemaRef(name),
		Found:  true,
		Schema: resolved.Interface(),
	}
}
