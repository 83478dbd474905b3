package internal

import (
	"strings"

	"github.com/lychee-technology/schemalens"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

func edgeTypeFor(ref string) schemalens.EdgeType {
	if strings.HasPrefix(ref, "#/") {
		return schemalens.EdgeTypeNested
	}
	return schemalens.EdgeTypeDirect
}

// buildReferenceGraph builds the directed graph of resolved references. Parallel
// edges between the same pair of schemas are kept, one per reference.
func buildReferenceGraph(c *corpus) schemalens.ReferenceGraph {
	n := c.size()
	inDeg := make(map[string]int, n)
	outDeg := make(map[string]int, n)
	edges := []schemalens.GraphEdge{}

	for _, e := range c.entries {
		for _, edge := range e.edges {
			edges = append(edges, schemalens.GraphEdge{
				Source: e.schema.ID,
				Target: edge.target.schema.ID,
				Path:   edge.ref.Ref,
				Type:   edgeTypeFor(edge.ref.Ref),
			})
			outDeg[e.schema.ID]++
			inDeg[edge.target.schema.ID]++
		}
	}

	nodes := make([]schemalens.GraphNode, 0, n)
	for _, e := range c.entries {
		id := e.schema.ID
		centrality := 0.0
		if n > 1 {
			centrality = float64(inDeg[id]+outDeg[id]) / float64((n-1)*2)
		}
		nodes = append(nodes, schemalens.GraphNode{
			ID:         id,
			Name:       e.schema.Name,
			InDegree:   inDeg[id],
			OutDegree:  outDeg[id],
			Centrality: centrality,
		})
	}

	metrics := schemalens.GraphMetrics{
		NodeCount:           n,
		EdgeCount:           len(edges),
		ConnectedComponents: countComponents(c),
	}
	if n > 1 {
		metrics.Density = float64(len(edges)) / float64(n*(n-1))
	}
	if n > 0 {
		metrics.AverageDegree = float64(len(edges)*2) / float64(n)
	}

	return schemalens.ReferenceGraph{Nodes: nodes, Edges: edges, Metrics: metrics}
}

// countComponents counts connected components treating every edge as undirected.
// Isolated schemas are components of their own.
func countComponents(c *corpus) int {
	g := simple.NewUndirectedGraph()
	index := make(map[*schemaEntry]int64, c.size())
	for i, e := range c.entries {
		index[e] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, e := range c.entries {
		for _, edge := range e.edges {
			from, to := index[e], index[edge.target]
			if from == to {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}
	return len(topo.ConnectedComponents(g))
}

// inDegreeByName indexes graph in-degree by schema name.
func inDegreeByName(g schemalens.ReferenceGraph) map[string]int {
	out := make(map[string]int, len(g.Nodes))
	for _, node := range g.Nodes {
		if _, exists := out[node.Name]; !exists {
			out[node.Name] = node.InDegree
		}
	}
	return out
}
