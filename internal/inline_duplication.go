package internal

import (
	"sort"

	"github.com/lychee-technology/schemalens"
)

// mineInlineDuplicates finds inline sub-structures repeated across at least
// MinParentCount schemas. A structure whose signature equals the root of a
// schema already referenced by at least CentralityThreshold others is skipped:
// the shared shape is reused properly there.
func mineInlineDuplicates(c *corpus, graph schemalens.ReferenceGraph, opts schemalens.InlineDuplicationConfig) []schemalens.InlineDuplicate {
	parents := make(map[string]*Set[string])

	var walk func(schemaName string, n *Node)
	walk = func(schemaName string, n *Node) {
		if n == nil || n.Kind == KindOpaque || n.Kind == KindRef {
			return
		}
		if n.HasStructure() {
			sig := StructuralSignature(n)
			set, ok := parents[sig]
			if !ok {
				set = NewSet[string]()
				parents[sig] = set
			}
			set.Add(schemaName)
		}
		for _, child := range n.Children() {
			walk(schemaName, child)
		}
	}
	for _, e := range c.entries {
		if e.root == nil || e.root.Kind == KindOpaque || e.root.Kind == KindRef {
			continue
		}
		// the root itself is the schema, not an inline copy
		for _, child := range e.root.Children() {
			walk(e.schema.Name, child)
		}
	}

	central := NewSet[string]()
	inDegree := make(map[string]int, len(graph.Nodes))
	for _, node := range graph.Nodes {
		inDegree[node.ID] = node.InDegree
	}
	for _, e := range c.entries {
		if inDegree[e.schema.ID] >= opts.CentralityThreshold {
			central.Add(StructuralSignature(e.root))
		}
	}

	out := []schemalens.InlineDuplicate{}
	for sig, set := range parents {
		if set.Size() < opts.MinParentCount || central.Contains(sig) {
			continue
		}
		out = append(out, schemalens.InlineDuplicate{
			Signature:     sig,
			ParentSchemas: SortedSlice(set),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].ParentSchemas) != len(out[j].ParentSchemas) {
			return len(out[i].ParentSchemas) > len(out[j].ParentSchemas)
		}
		return out[i].Signature < out[j].Signature
	})
	return out
}
