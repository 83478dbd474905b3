package schemalens

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceGraphLookup(t *testing.T) {
	g := &ReferenceGraph{Nodes: []GraphNode{
		{ID: "a/Money.json", Name: "Money", InDegree: 2},
		{ID: "b/Money.json", Name: "Money"},
		{ID: "Order.json", Name: "Order"},
	}}

	node, ok := g.Node("b/Money.json")
	require.True(t, ok)
	assert.Equal(t, 0, node.InDegree)

	byName, ok := g.NodeByName("Money")
	require.True(t, ok)
	assert.Equal(t, "a/Money.json", byName.ID)

	_, ok = g.Node("missing")
	assert.False(t, ok)

	var nilGraph *ReferenceGraph
	_, ok = nilGraph.NodeByName("Money")
	assert.False(t, ok)
}

func TestFieldConflictsAny(t *testing.T) {
	assert.False(t, FieldConflicts{}.Any())
	assert.True(t, FieldConflicts{Description: true}.Any())
	assert.True(t, FieldConflicts{Required: true}.Any())
}

func TestFieldAnalysisField(t *testing.T) {
	a := FieldAnalysis{Fields: []FieldInsight{{Name: "id", Occurrences: 3}, {Name: "status"}}}

	f, ok := a.Field("id")
	require.True(t, ok)
	assert.Equal(t, 3, f.Occurrences)

	_, ok = a.Field("email")
	assert.False(t, ok)
}

func TestSchemaReferenceJSONUsesRefKeyword(t *testing.T) {
	raw, err := json.Marshal(SchemaReference{Ref: "#/$defs/Tag", SchemaName: "Tag"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$ref": "#/$defs/Tag", "schemaName": "Tag"}`, string(raw))
}
