package internal

import (
	"sort"

	"github.com/lychee-technology/schemalens"
)

func calculateProjectMetrics(
	c *corpus,
	complexity map[string]schemalens.ComplexityMetrics,
	graph schemalens.ReferenceGraph,
	cycles []schemalens.CircularReference,
	topN int,
) schemalens.ProjectMetrics {
	pm := schemalens.ProjectMetrics{
		TotalSchemas:          c.size(),
		MostComplexSchemas:    []string{},
		MostReferencedSchemas: []string{},
		OrphanedSchemas:       orphanedSchemas(c),
		CircularSchemas:       circularSchemaNames(cycles),
	}

	var totalScore, totalDepth int
	for _, e := range c.entries {
		switch e.schema.ValidationStatus {
		case schemalens.ValidationStatusValid:
			pm.ValidSchemas++
		case schemalens.ValidationStatusInvalid:
			pm.InvalidSchemas++
		}
		m := complexity[e.schema.ID]
		pm.TotalProperties += m.PropertyCount
		pm.TotalSizeBytes += m.SizeBytes
		pm.TotalReferences += len(e.schema.References)
		totalScore += m.ComplexityScore
		totalDepth += m.MaxDepth
	}
	if n := c.size(); n > 0 {
		pm.AverageComplexity = float64(totalScore) / float64(n)
		pm.AverageDepth = float64(totalDepth) / float64(n)
		pm.AveragePropertyCount = float64(pm.TotalProperties) / float64(n)
	}

	for _, m := range mostComplex(complexity, topN) {
		pm.MostComplexSchemas = append(pm.MostComplexSchemas, m.SchemaName)
	}

	nodes := append([]schemalens.GraphNode(nil), graph.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].InDegree != nodes[j].InDegree {
			return nodes[i].InDegree > nodes[j].InDegree
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, node := range nodes {
		if len(pm.MostReferencedSchemas) == topN || node.InDegree == 0 {
			break
		}
		pm.MostReferencedSchemas = append(pm.MostReferencedSchemas, node.Name)
	}
	return pm
}

// mostComplex returns up to n metrics ordered by score, highest first.
func mostComplex(complexity map[string]schemalens.ComplexityMetrics, n int) []schemalens.ComplexityMetrics {
	all := make([]schemalens.ComplexityMetrics, 0, len(complexity))
	for _, m := range complexity {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ComplexityScore != all[j].ComplexityScore {
			return all[i].ComplexityScore > all[j].ComplexityScore
		}
		if all[i].SchemaName != all[j].SchemaName {
			return all[i].SchemaName < all[j].SchemaName
		}
		return all[i].SchemaID < all[j].SchemaID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// orphanedSchemas lists schemas with no outgoing references that no other
// schema references either by name or through referencedBy.
func orphanedSchemas(c *corpus) []string {
	referenced := NewSet[string]()
	for _, e := range c.entries {
		for _, ref := range e.schema.References {
			referenced.Add(ref.SchemaName)
		}
	}
	out := []string{}
	for _, e := range c.entries {
		if len(e.schema.References) > 0 || len(e.schema.ReferencedBy) > 0 || referenced.Contains(e.schema.Name) {
			continue
		}
		out = append(out, e.schema.Name)
	}
	return out
}
