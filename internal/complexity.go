package internal

import (
	"github.com/lychee-technology/schemalens"
)

const maxComplexityScore = 100

type structureStats struct {
	properties int
	required   int
	depth      int
}

// measureStructure counts properties and required entries at every level
// reachable via properties, items and additionalProperties, and returns the
// deepest nesting. The parsed tree is already depth-capped, so no visited set is needed.
func measureStructure(n *Node) structureStats {
	var st structureStats
	if n == nil || n.Kind == KindOpaque {
		return st
	}
	st.properties = len(n.Properties)
	st.required = len(n.Required)

	visit := func(child *Node) {
		sub := measureStructure(child)
		st.properties += sub.properties
		st.required += sub.required
		st.depth = maxInt(st.depth, sub.depth+1)
	}
	for _, name := range n.PropertyNames() {
		visit(n.Properties[name])
	}
	for _, item := range n.Items {
		visit(item)
	}
	if n.AdditionalProperties != nil && n.AdditionalProperties.Kind != KindOpaque {
		visit(n.AdditionalProperties)
	}
	return st
}

func complexityFor(e *schemaEntry, weights schemalens.ComplexityConfig) schemalens.ComplexityMetrics {
	st := measureStructure(e.root)
	size := serializedSize(e.schema.Content)
	refs := len(e.schema.References)

	raw := float64(st.properties)*weights.PropertyWeight +
		float64(st.depth)*weights.DepthWeight +
		float64(refs)*weights.ReferenceWeight +
		float64(size)/1000*weights.SizeWeight

	return schemalens.ComplexityMetrics{
		SchemaID:           e.schema.ID,
		SchemaName:         e.schema.Name,
		PropertyCount:      st.properties,
		MaxDepth:           st.depth,
		RequiredProperties: st.required,
		OptionalProperties: maxInt(0, st.properties-st.required),
		ReferenceCount:     refs,
		SizeBytes:          size,
		ComplexityScore:    clampInt(roundInt(raw), 0, maxComplexityScore),
	}
}

func calculateComplexityMetrics(c *corpus, weights schemalens.ComplexityConfig) map[string]schemalens.ComplexityMetrics {
	out := make(map[string]schemalens.ComplexityMetrics, c.size())
	for _, e := range c.entries {
		out[e.schema.ID] = complexityFor(e, weights)
	}
	return out
}
