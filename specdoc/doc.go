// Package specdoc loads OpenAPI Specification documents from local files or
// remote URLs and parses them into an immutable, order-preserving document
// tree.
//
// The document is modeled as a tagged-union Value (mapping, sequence, string,
// int, float, bool, null) rather than map[string]any, so traversal and $ref
// resolution are type-safe and mapping keys keep their document order. The
// order matters: endpoint and schema listings must be reproducible across
// calls.
//
// Format is detected from the file extension, the URL path suffix, the
// Content-Type header, or by sniffing the content. Both OAS 3.x ("openapi"
// root key) and Swagger 2.0 ("swagger" root key) documents are accepted;
// anything else fails with ErrInvalidSpec.
package specdoc
