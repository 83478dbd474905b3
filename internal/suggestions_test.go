package internal

import (
	"testing"

	"github.com/lychee-technology/schemalens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionConfig() schemalens.SuggestionConfig {
	return schemalens.DefaultConfig().Suggestions
}

func TestGenerateSuggestionsEmpty(t *testing.T) {
	out := generateSuggestions(suggestionInputs{}, suggestionConfig())
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, 100, maturityScore(out, suggestionConfig().SeverityWeights))
}

func TestGenerateSuggestionsOrderedByImpact(t *testing.T) {
	in := suggestionInputs{
		duplicates: []schemalens.DuplicateGroup{{
			Signature: `{"type":"object"}`,
			Schemas:   []schemalens.SchemaRef{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}},
		}},
		cycles: []schemalens.CircularReference{{
			Path: []string{"Node", "Tree"}, Depth: 1,
			Type: schemalens.CircularReferenceDirect, Severity: schemalens.SeverityLow,
		}},
		fields: schemalens.FieldAnalysis{Fields: []schemalens.FieldInsight{
			{
				Name:        "status",
				Types:       []string{"integer", "string"},
				RequiredIn:  []string{"Order"},
				OptionalIn:  []string{"Invoice"},
				Occurrences: 2,
				Conflicts:   schemalens.FieldConflicts{Type: true, Required: true},
			},
			{Name: "note", Types: []string{"string"}, Occurrences: 4},
		}},
	}

	out := generateSuggestions(in, suggestionConfig())
	require.Len(t, out, 3)

	assert.Equal(t, schemalens.SuggestionCategoryReuse, out[0].Category)
	assert.Equal(t, 60, out[0].ImpactScore)
	assert.Equal(t, []string{"A", "B", "C"}, out[0].AffectedSchemas)

	assert.Equal(t, schemalens.SuggestionCategoryFieldConsistency, out[1].Category)
	assert.Equal(t, 16, out[1].ImpactScore)
	assert.Equal(t, schemalens.SeverityHigh, out[1].Severity)
	assert.Equal(t, []string{"Invoice", "Order"}, out[1].AffectedSchemas)
	assert.Contains(t, out[1].Description, "type, required")

	assert.Equal(t, schemalens.SuggestionCategoryReferences, out[2].Category)
	assert.Equal(t, 10, out[2].ImpactScore)
	assert.Equal(t, []string{"Node", "Tree"}, out[2].AffectedSchemas)

	// all three are high severity
	assert.Equal(t, 100-3*8, maturityScore(out, suggestionConfig().SeverityWeights))
}

func TestSuggestionIDsAreStable(t *testing.T) {
	in := suggestionInputs{nameGroups: []schemalens.NameSimilarGroup{{
		Token:         "address",
		SuggestedName: "Address",
		Schemas:       []schemalens.SchemaRef{{ID: "a", Name: "BillingAddress"}, {ID: "b", Name: "ShippingAddress"}},
	}}}

	first := generateSuggestions(in, suggestionConfig())
	second := generateSuggestions(in, suggestionConfig())
	require.Len(t, first, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, suggestionID(schemalens.SuggestionCategoryNaming, "address"),
		suggestionID(schemalens.SuggestionCategoryNaming, "invoice"))
	assert.Equal(t, schemalens.SeverityLow, first[0].Severity)
	assert.Equal(t, 40, first[0].ImpactScore)
}

func TestNearDuplicateSuggestionPrefersCentralSchema(t *testing.T) {
	pair := schemalens.NearDuplicatePair{
		SchemaA:    schemalens.SchemaRef{ID: "s", Name: "ShippingAddress"},
		SchemaB:    schemalens.SchemaRef{ID: "a", Name: "Address"},
		Similarity: 0.9,
	}
	graph := schemalens.ReferenceGraph{Nodes: []schemalens.GraphNode{
		{ID: "a", Name: "Address", InDegree: 5},
		{ID: "s", Name: "ShippingAddress"},
	}}

	out := generateSuggestions(suggestionInputs{nearPairs: []schemalens.NearDuplicatePair{pair}, graph: graph}, suggestionConfig())
	require.Len(t, out, 1)
	assert.Equal(t, []string{"Address", "ShippingAddress"}, out[0].AffectedSchemas)
	assert.Equal(t, schemalens.SeverityHigh, out[0].Severity)
	assert.Equal(t, 90, out[0].ImpactScore)
	assert.Contains(t, out[0].Description, "Align ShippingAddress to Address")

	// at the threshold neither side counts as central
	graph.Nodes[0].InDegree = 3
	out = generateSuggestions(suggestionInputs{nearPairs: []schemalens.NearDuplicatePair{pair}, graph: graph}, suggestionConfig())
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Description, "shared base schema")
}

func TestComplexitySuggestion(t *testing.T) {
	_, ok := complexitySuggestion(map[string]schemalens.ComplexityMetrics{
		"a": {SchemaID: "a", SchemaName: "A"},
	}, 5)
	assert.False(t, ok)

	s, ok := complexitySuggestion(map[string]schemalens.ComplexityMetrics{
		"a": {SchemaID: "a", SchemaName: "A", ComplexityScore: 80},
		"b": {SchemaID: "b", SchemaName: "B", ComplexityScore: 30},
		"c": {SchemaID: "c", SchemaName: "C", ComplexityScore: 55},
	}, 2)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "C"}, s.AffectedSchemas)
	assert.Equal(t, 80, s.ImpactScore)
	assert.Equal(t, schemalens.SeverityHigh, s.Severity)
}

func TestMaturityScoreClamps(t *testing.T) {
	weights := schemalens.SeverityWeights{High: 8, Medium: 4, Low: 2}
	many := make([]schemalens.Suggestion, 20)
	for i := range many {
		many[i].Severity = schemalens.SeverityHigh
	}
	assert.Equal(t, 0, maturityScore(many, weights))

	mixed := []schemalens.Suggestion{
		{Severity: schemalens.SeverityHigh},
		{Severity: schemalens.SeverityMedium},
		{Severity: schemalens.SeverityLow},
	}
	assert.Equal(t, 86, maturityScore(mixed, weights))
}
