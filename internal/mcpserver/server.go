// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes spec query operations as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs"
	"github.com/oasdocs/oasdocs/query"
)

const serverInstructions = `oasdocs MCP server — query tools over one OpenAPI/Swagger document loaded at startup.

Workflow: use search_endpoints or list_all_endpoints to find operations, then get_endpoint for full details. Use search_schemas to find data shapes by name, then get_schema for the definition with every $ref resolved inline (circular references are marked with "circular": true instead of expanding forever).

Lookups that find nothing return found:false echoing what was requested; they are not errors. Paths are matched literally: query "/users/{id}", not "/users/123".

Key settings (environment variables set in your MCP client config):
- OASDOCS_RESULT_LIMIT (default: 100) — default page size for list results
- OASDOCS_MAX_LIMIT (default: 1000) — cap on any requested limit`

// Server serves the query tools for one loaded spec document. The document
// is read-only, so concurrent tool calls need no coordination.
type Server struct {
	engine *query.Engine
}

// New creates a Server around engine.
func New(engine *query.Engine) *Server {
	return &Server{engine: engine}
}

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdocs", Version: oasdocs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	s.register(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_endpoints",
		Description: "Search API endpoints by keyword. Case-insensitive substring match against path, method, summary, description, and tags. An empty query returns every endpoint. Use offset/limit to paginate through results.",
	}, s.handleSearchEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_endpoint",
		Description: "Get full details for a specific endpoint by literal path and HTTP method (case-insensitive). Returns found:false when the endpoint does not exist.",
	}, s.handleGetEndpoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_all_endpoints",
		Description: "List every API endpoint (path, method, summary) in document order. Use offset/limit to paginate through large APIs.",
	}, s.handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_schemas",
		Description: "Search named schema definitions by keyword. Case-insensitive substring match against schema names only. An empty query returns every schema name.",
	}, s.handleSearchSchemas)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_schema",
		Description: "Get a named schema definition with all $ref references resolved inline. Circular references are replaced with a stub marked circular:true. Returns found:false when the schema does not exist.",
	}, s.handleGetSchema)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}
