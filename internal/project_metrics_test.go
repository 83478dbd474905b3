package internal

import (
	"testing"

	"github.com/lychee-technology/schemalens"
	"github.com/stretchr/testify/assert"
)

func TestCalculateProjectMetrics(t *testing.T) {
	broken := stringFields("Legacy", "code")
	broken.ValidationStatus = schemalens.ValidationStatusInvalid
	schemas := append(shopSchemas(t), broken, refSchema(t, "Tree", "Tree"))

	c := testCorpus(schemas...)
	complexity := calculateComplexityMetrics(c, schemalens.DefaultConfig().Complexity)
	graph := buildReferenceGraph(c)
	cycles := detectCircularReferences(c)

	pm := calculateProjectMetrics(c, complexity, graph, cycles, 2)

	assert.Equal(t, 5, pm.TotalSchemas)
	assert.Equal(t, 4, pm.ValidSchemas)
	assert.Equal(t, 1, pm.InvalidSchemas)
	assert.Equal(t, 3, pm.TotalReferences)
	assert.Equal(t, 3+3+3+1+1, pm.TotalProperties)
	assert.InDelta(t, 11.0/5.0, pm.AveragePropertyCount, 1e-9)
	assert.Len(t, pm.MostComplexSchemas, 2)
	assert.Equal(t, []string{"Address", "Customer"}, pm.MostReferencedSchemas)
	assert.Equal(t, []string{"Legacy"}, pm.OrphanedSchemas)
	assert.Equal(t, []string{"Tree"}, pm.CircularSchemas)

	total := 0
	for _, m := range complexity {
		total += m.SizeBytes
	}
	assert.Equal(t, total, pm.TotalSizeBytes)
}

func TestOrphanedSchemasHonoursReferencedBy(t *testing.T) {
	lone := stringFields("Lone", "x")
	linked := stringFields("Linked", "y")
	linked.ReferencedBy = []string{"elsewhere.json"}

	assert.Equal(t, []string{"Lone"}, orphanedSchemas(testCorpus(lone, linked)))
}

func TestMostComplexTieBreak(t *testing.T) {
	top := mostComplex(map[string]schemalens.ComplexityMetrics{
		"b": {SchemaID: "b", SchemaName: "B", ComplexityScore: 10},
		"a": {SchemaID: "a", SchemaName: "A", ComplexityScore: 10},
		"c": {SchemaID: "c", SchemaName: "C", ComplexityScore: 20},
	}, 5)
	assert.Equal(t, "C", top[0].SchemaName)
	assert.Equal(t, "A", top[1].SchemaName)
	assert.Equal(t, "B", top[2].SchemaName)
}
