package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs/query"
)

type searchEndpointsInput struct {
	Query  string `json:"query"            jsonschema:"Search term. Matched case-insensitively against path\\, method\\, summary\\, description\\, and tags. Empty matches everything."`
	Limit  int    `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type searchEndpointsOutput struct {
	Total    int                   `json:"total"`
	Matched  int                   `json:"matched"`
	Returned int                   `json:"returned"`
	Results  []query.EndpointMatch `json:"results,omitempty"`
}

func (s *Server) handleSearchEndpoints(_ context.Context, _ *mcp.CallToolRequest, input searchEndpointsInput) (*mcp.CallToolResult, searchEndpointsOutput, error) {
	matched := s.engine.SearchEndpoints(input.Query)
	returned := paginate(matched, input.Offset, input.Limit)
	return nil, searchEndpointsOutput{
		Total:    len(s.engine.ListEndpoints()),
		Matched:  len(matched),
		Returned: len(returned),
		Results:  returned,
	}, nil
}

type getEndpointInput struct {
	Path   string `json:"path"   jsonschema:"Literal path template\\, e.g. /users/{id}"`
	Method string `json:"method" jsonschema:"HTTP method\\, case-insensitive\\, e.g. GET or get"`
}

func (s *Server) handleGetEndpoint(_ context.Context, _ *mcp.CallToolRequest, input getEndpointInput) (*mcp.CallToolResult, query.EndpointDetail, error) {
	return nil, s.engine.GetEndpoint(input.Path, input.Method), nil
}

type listEndpointsInput struct {
	Limit  int `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type listEndpointsOutput struct {
	Total     int                     `json:"total"`
	Returned  int                     `json:"returned"`
	Endpoints []query.EndpointSummary `json:"endpoints,omitempty"`
}

func (s *Server) handleListEndpoints(_ context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	all := s.engine.ListEndpoints()
	returned := paginate(all, input.Offset, input.Limit)
	return nil, listEndpointsOutput{
		Total:     len(all),
		Returned:  len(returned),
		Endpoints: returned,
	}, nil
}
