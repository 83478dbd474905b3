package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNodeKinds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want NodeKind
	}{
		{name: "object by type", raw: `{"type": "object"}`, want: KindObject},
		{name: "object by properties", raw: `{"properties": {"a": {"type": "string"}}}`, want: KindObject},
		{name: "array", raw: `{"type": "array", "items": {"type": "string"}}`, want: KindArray},
		{name: "primitive", raw: `{"type": "string", "format": "email"}`, want: KindPrimitive},
		{name: "ref wins", raw: `{"$ref": "Address.json", "type": "object"}`, want: KindRef},
		{name: "combinator", raw: `{"oneOf": [{"type": "string"}, {"type": "integer"}]}`, want: KindCombinator},
		{name: "typed combinator", raw: `{"type": "string", "anyOf": [{"format": "email"}]}`, want: KindPrimitive},
		{name: "boolean schema", raw: `true`, want: KindOpaque},
		{name: "array document", raw: `[1, 2]`, want: KindOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ParseNode(decodeJSON(t, tt.raw), 0)
			assert.Equal(t, tt.want, n.Kind)
		})
	}
}

func TestParseNodeFields(t *testing.T) {
	n := ParseNode(decodeJSON(t, `{
		"type": ["string", "null"],
		"format": "date-time",
		"enum": ["a", "b"],
		"description": "when",
		"required": ["x"],
		"additionalProperties": false
	}`), 0)

	assert.Equal(t, []string{"null", "string"}, n.Types)
	assert.True(t, n.TypeIsArray)
	assert.Equal(t, "null|string", n.TypeLabel())
	assert.Equal(t, "date-time", n.Format)
	assert.True(t, n.HasEnum)
	assert.Len(t, n.Enum, 2)
	assert.Equal(t, "when", n.Description)
	assert.True(t, n.IsRequired("x"))
	assert.False(t, n.IsRequired("y"))
	require.NotNil(t, n.AdditionalProperties)
	assert.Equal(t, KindOpaque, n.AdditionalProperties.Kind)
	assert.Equal(t, false, n.AdditionalProperties.Value)
}

func TestParseNodeDepthCap(t *testing.T) {
	content := decodeJSON(t, `{"properties": {"a": {"properties": {"b": {"properties": {"c": {"type": "string"}}}}}}}`)

	n := ParseNode(content, 2)
	a := n.Properties["a"]
	require.NotNil(t, a)
	assert.Equal(t, KindObject, a.Kind)
	b := a.Properties["b"]
	require.NotNil(t, b)
	assert.Equal(t, KindOpaque, b.Kind)
	assert.True(t, b.Truncated)
}

func TestParseNodeSelfReferentialValue(t *testing.T) {
	// decoded JSON cannot form cycles, but in-memory content can
	self := map[string]any{"type": "object"}
	self["properties"] = map[string]any{"self": self}

	n := ParseNode(self, 8)
	depth := 0
	for cur := n; cur.Kind == KindObject; cur = cur.Properties["self"] {
		depth++
	}
	assert.Equal(t, 8, depth)
}

func TestNodeChildrenOrder(t *testing.T) {
	n := ParseNode(decodeJSON(t, `{
		"properties": {"b": {"type": "string"}, "a": {"type": "integer"}},
		"items": {"type": "boolean"},
		"allOf": [{"type": "number"}],
		"$defs": {"Z": {"type": "null"}}
	}`), 0)

	var labels []string
	for _, child := range n.Children() {
		labels = append(labels, child.TypeLabel())
	}
	assert.Equal(t, []string{"integer", "string", "boolean", "number", "null"}, labels)
	assert.Equal(t, []string{"a", "b"}, n.PropertyNames())
}

func TestTupleItems(t *testing.T) {
	n := ParseNode(decodeJSON(t, `{"type": "array", "items": [{"type": "string"}, {"type": "integer"}]}`), 0)
	assert.True(t, n.TupleItems)
	assert.Len(t, n.Items, 2)
	assert.True(t, n.HasStructure())
}
