package internal

import (
	"testing"

	"github.com/lychee-technology/schemalens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCircularReferencesDirect(t *testing.T) {
	c := testCorpus(refSchema(t, "B", "A"), refSchema(t, "A", "B"))

	cycles := detectCircularReferences(c)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"A", "B"}, cycles[0].Path)
	assert.Equal(t, 1, cycles[0].Depth)
	assert.Equal(t, schemalens.CircularReferenceDirect, cycles[0].Type)
	assert.Equal(t, schemalens.SeverityLow, cycles[0].Severity)
}

func TestDetectCircularReferencesSelfLoop(t *testing.T) {
	cycles := detectCircularReferences(testCorpus(refSchema(t, "Node", "Node")))
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"Node"}, cycles[0].Path)
	assert.Equal(t, 0, cycles[0].Depth)
	assert.Equal(t, schemalens.CircularReferenceIndirect, cycles[0].Type)
}

func TestDetectCircularReferencesIndirect(t *testing.T) {
	c := testCorpus(
		refSchema(t, "C", "A"),
		refSchema(t, "A", "B"),
		refSchema(t, "B", "C"),
		refSchema(t, "Entry", "B"),
	)

	cycles := detectCircularReferences(c)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"A", "B", "C"}, cycles[0].Path)
	assert.Equal(t, 2, cycles[0].Depth)
	assert.Equal(t, schemalens.CircularReferenceIndirect, cycles[0].Type)
}

func TestDetectCircularReferencesSeverity(t *testing.T) {
	ring := func(names ...string) []schemalens.Schema {
		out := make([]schemalens.Schema, len(names))
		for i, name := range names {
			out[i] = refSchema(t, name, names[(i+1)%len(names)])
		}
		return out
	}

	tests := []struct {
		name  string
		nodes []string
		depth int
		want  schemalens.Severity
	}{
		{name: "three", nodes: []string{"A", "B", "C"}, depth: 2, want: schemalens.SeverityLow},
		{name: "four", nodes: []string{"A", "B", "C", "D"}, depth: 3, want: schemalens.SeverityMedium},
		{name: "six", nodes: []string{"A", "B", "C", "D", "E", "F"}, depth: 5, want: schemalens.SeverityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cycles := detectCircularReferences(testCorpus(ring(tt.nodes...)...))
			require.Len(t, cycles, 1)
			assert.Equal(t, tt.depth, cycles[0].Depth)
			assert.Equal(t, tt.want, cycles[0].Severity)
		})
	}
}

func TestDetectCircularReferencesIgnoresDanglingAndAcyclic(t *testing.T) {
	c := testCorpus(append(shopSchemas(t), refSchema(t, "Orphan", "Missing"))...)
	cycles := detectCircularReferences(c)
	assert.NotNil(t, cycles)
	assert.Empty(t, cycles)
}

func TestDetectCircularReferencesDistinctCyclesShareNode(t *testing.T) {
	c := testCorpus(
		refSchema(t, "A", "B", "C"),
		refSchema(t, "B", "A"),
		refSchema(t, "C", "A"),
	)

	cycles := detectCircularReferences(c)
	require.Len(t, cycles, 2)
	assert.Equal(t, []string{"A", "B"}, cycles[0].Path)
	assert.Equal(t, []string{"A", "C"}, cycles[1].Path)
	assert.Equal(t, []string{"A", "B", "C"}, circularSchemaNames(cycles))
}
