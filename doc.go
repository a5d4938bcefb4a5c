// Package oasdocs exposes a parsed OpenAPI Specification (OAS) document as a
// small set of query tools over the Model Context Protocol (MCP), so an LLM
// client can search endpoints and schema definitions without loading the
// entire document into its context window.
//
// The library consists of three packages:
//
//   - specdoc: load an OAS document from a file or URL (YAML or JSON) into an
//     immutable, order-preserving document tree
//   - specindex: iterate endpoints and schemas, resolve $ref pointers
//   - query: the five query operations served as MCP tools
//
// The document is loaded exactly once at startup. All query operations are
// pure functions of the loaded document, so concurrent tool calls need no
// coordination.
//
// # Quick Start
//
// Load a spec and query it:
//
//	doc, err := specdoc.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine := query.NewEngine(specindex.New(doc))
//	for _, ep := range engine.SearchEndpoints("user") {
//		fmt.Printf("%s %s  %s\n", ep.Method, ep.Path, ep.Summary)
//	}
//
// # Command-Line Interface
//
// The oasdocs binary serves the query tools over stdio:
//
//	oasdocs openapi.yaml
//	oasdocs --log-level DEBUG https://example.com/api/openapi.json
//
// Install the CLI:
//
//	go install github.com/oasdocs/oasdocs/cmd/oasdocs@latest
package oasdocs
