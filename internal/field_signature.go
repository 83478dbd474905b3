package internal

// FieldSignatures flattens the property surface of n into "name:type" tokens,
// descending through properties, items and additionalProperties.
func FieldSignatures(n *Node) *Set[string] {
	out := NewSet[string]()
	collectFieldSignatures(n, out)
	return out
}

func collectFieldSignatures(n *Node, out *Set[string]) {
	if n == nil || n.Kind == KindOpaque {
		return
	}
	for _, name := range n.PropertyNames() {
		child := n.Properties[name]
		out.Add(name + ":" + child.TypeLabel())
		collectFieldSignatures(child, out)
	}
	for _, item := range n.Items {
		collectFieldSignatures(item, out)
	}
	collectFieldSignatures(n.AdditionalProperties, out)
}

// Jaccard returns |a∩b| / |a∪b| together with the intersection and union sizes.
// Two empty sets have similarity 0.
func Jaccard(a, b *Set[string]) (similarity float64, overlap, union int) {
	if a.Size() > b.Size() {
		a, b = b, a
	}
	for item := range a.items {
		if b.Contains(item) {
			overlap++
		}
	}
	union = a.Size() + b.Size() - overlap
	if union == 0 {
		return 0, 0, 0
	}
	return float64(overlap) / float64(union), overlap, union
}
