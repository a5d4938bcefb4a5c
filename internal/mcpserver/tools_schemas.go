package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs/query"
)

type searchSchemasInput struct {
	Query  string `json:"query"            jsonschema:"Search term to match against schema names\\, case-insensitively. Empty matches everything."`
	Limit  int    `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type searchSchemasOutput struct {
	Matched  int                 `json:"matched"`
	Returned int                 `json:"returned"`
	Results  []query.SchemaMatch `json:"results,omitempty"`
}

func (s *Server) handleSearchSchemas(_ context.Context, _ *mcp.CallToolRequest, input searchSchemasInput) (*mcp.CallToolResult, searchSchemasOutput, error) {
	matched := s.engine.SearchSchemas(input.Query)
	returned := paginate(matched, input.Offset, input.Limit)
	return nil, searchSchemasOutput{
		Matched:  len(matched),
		Returned: len(returned),
		Results:  returned,
	}, nil
}

type getSchemaInput struct {
	Name string `json:"name" jsonschema:"Exact name of the schema to retrieve\\, e.g. Pet"`
}

func (s *Server) handleGetSchema(_ context.Context, _ *mcp.CallToolRequest, input getSchemaInput) (*mcp.CallToolResult, query.SchemaDetail, error) {
	return nil, s.engine.GetSchema(input.Name), nil
}
