package specindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasdocs/oasdocs/specdoc"
)

func resolveSchema(t *testing.T, text, name string) specdoc.Value {
	t.Helper()
	ix := loadIndex(t, text)
	resolved, ok := ix.Schema(name)
	require.True(t, ok, "schema %q not found", name)
	return resolved
}

func TestResolveNestedRefs(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Pet:
      type: object
      properties:
        owner:
          $ref: '#/components/schemas/Owner'
    Owner:
      type: object
      properties:
        address:
          $ref: '#/components/schemas/Address'
    Address:
      type: object
      properties:
        city:
          type: string
`, "Pet")

	owner, ok := mustGet(resolved, "properties").Get("owner")
	require.True(t, ok)
	assert.False(t, owner.Has("$ref"), "ref should be expanded")
	assert.Equal(t, "object", owner.GetString("type"))

	address, ok := mustGet(owner, "properties").Get("address")
	require.True(t, ok)
	city, ok := mustGet(address, "properties").Get("city")
	require.True(t, ok)
	assert.Equal(t, "string", city.GetString("type"))
}

func mustGet(v specdoc.Value, key string) specdoc.Value {
	child, _ := v.Get(key)
	return child
}

func TestResolveRefsInSequences(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Mixed:
      allOf:
        - $ref: '#/components/schemas/Base'
        - type: object
    Base:
      type: object
      description: base type
`, "Mixed")

	allOf, ok := resolved.Get("allOf")
	require.True(t, ok)
	require.Equal(t, 2, allOf.Len())
	assert.Equal(t, "base type", allOf.Items()[0].GetString("description"))
}

func TestResolveDirectCycle(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Node:
      type: object
      properties:
        next:
          $ref: '#/components/schemas/Node'
`, "Node")

	// The self-reference expands once, then repeats and is stubbed.
	next, ok := mustGet(resolved, "properties").Get("next")
	require.True(t, ok)
	assert.Equal(t, "object", next.GetString("type"))

	inner, ok := mustGet(next, "properties").Get("next")
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Node", inner.GetString("$ref"))
	assert.Equal(t, specdoc.BoolValue(true), mustGet(inner, "circular"))
}

func TestResolveIndirectCycle(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    A:
      type: object
      properties:
        b:
          $ref: '#/components/schemas/B'
    B:
      type: object
      properties:
        a:
          $ref: '#/components/schemas/A'
`, "A")

	b, ok := mustGet(resolved, "properties").Get("b")
	require.True(t, ok)
	assert.Equal(t, "object", b.GetString("type"))

	// A expands once more through B, then the chain is cut where B repeats.
	backToA, ok := mustGet(b, "properties").Get("a")
	require.True(t, ok)
	assert.Equal(t, "object", backToA.GetString("type"))

	cut, ok := mustGet(backToA, "properties").Get("b")
	require.True(t, ok)
	assert.True(t, mustGet(cut, "circular").Bool())
	assert.Equal(t, "#/components/schemas/B", cut.GetString("$ref"))
}

func TestResolveSharedRefIsNotACycle(t *testing.T) {
	// The same target referenced twice from sibling branches must expand both
	// times; only an active resolution stack entry marks a cycle.
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Pair:
      type: object
      properties:
        first:
          $ref: '#/components/schemas/Item'
        second:
          $ref: '#/components/schemas/Item'
    Item:
      type: string
`, "Pair")

	props := mustGet(resolved, "properties")
	assert.Equal(t, "string", mustGet(props, "first").GetString("type"))
	assert.Equal(t, "string", mustGet(props, "second").GetString("type"))
}

func TestResolveUnknownRef(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Pet:
      type: object
      properties:
        ghost:
          $ref: '#/components/schemas/Missing'
`, "Pet")

	ghost, ok := mustGet(resolved, "properties").Get("ghost")
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Missing", ghost.GetString("$ref"))
	assert.Equal(t, "reference not found", ghost.GetString("error"))
}

func TestResolveExternalRefUnsupported(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Pet:
      type: object
      properties:
        ext:
          $ref: 'other.yaml#/Pet'
`, "Pet")

	ext, ok := mustGet(resolved, "properties").Get("ext")
	require.True(t, ok)
	assert.Equal(t, "reference not found", ext.GetString("error"))
}

func TestResolveSiblingKeysPreserved(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Named:
      $ref: '#/components/schemas/Base'
      description: overridden locally
    Base:
      type: object
      title: Base title
`, "Named")

	assert.Equal(t, "object", resolved.GetString("type"))
	assert.Equal(t, "Base title", resolved.GetString("title"))
	assert.Equal(t, "overridden locally", resolved.GetString("description"))
	assert.False(t, resolved.Has("$ref"))
}

func TestResolveSiblingKeysTargetWins(t *testing.T) {
	resolved := resolveSchema(t, `openapi: 3.0.0
components:
  schemas:
    Named:
      $ref: '#/components/schemas/Base'
      title: local title
    Base:
      type: object
      title: Base title
`, "Named")

	assert.Equal(t, "Base title", resolved.GetString("title"))
}

func TestLookupRefEscapedTokens(t *testing.T) {
	doc := loadIndex(t, `openapi: 3.0.0
components:
  schemas:
    Odd~Name:
      type: object
    With/Slash:
      type: integer
`)
	root := doc.Document().Root()

	v, ok := lookupRef(root, "#/components/schemas/Odd~0Name")
	require.True(t, ok)
	assert.Equal(t, "object", v.GetString("type"))

	v, ok = lookupRef(root, "#/components/schemas/With~1Slash")
	require.True(t, ok)
	assert.Equal(t, "integer", v.GetString("type"))
}

func TestLookupRefSequenceIndex(t *testing.T) {
	doc := loadIndex(t, `openapi: 3.0.0
x-servers:
  - url: first
  - url: second
`)
	root := doc.Document().Root()

	v, ok := lookupRef(root, "#/x-servers/1/url")
	require.True(t, ok)
	assert.Equal(t, "second", v.Str())

	_, ok = lookupRef(root, "#/x-servers/5")
	assert.False(t, ok)
	_, ok = lookupRef(root, "#/x-servers/nope")
	assert.False(t, ok)
}
