package internal

import (
	"sort"
	"strings"

	"github.com/lychee-technology/schemalens"
)

// cycleDetector runs a DFS from every schema, sharing one globalVisited set so
// a schema fully explored from an earlier source is not walked again.
type cycleDetector struct {
	corpus        *corpus
	globalVisited map[string]bool
	seen          map[string]bool
	cycles        []schemalens.CircularReference
}

func detectCircularReferences(c *corpus) []schemalens.CircularReference {
	d := &cycleDetector{
		corpus:        c,
		globalVisited: make(map[string]bool, c.size()),
		seen:          make(map[string]bool),
		cycles:        []schemalens.CircularReference{},
	}
	for _, e := range c.entries {
		if d.globalVisited[e.schema.ID] {
			continue
		}
		visited := make(map[string]bool)
		onStack := make(map[string]bool)
		d.walk(e, visited, onStack, nil)
	}
	return d.cycles
}

func (d *cycleDetector) walk(e *schemaEntry, visited, onStack map[string]bool, stack []*schemaEntry) {
	id := e.schema.ID
	if onStack[id] {
		d.record(stack, id)
		return
	}
	if visited[id] || d.globalVisited[id] {
		return
	}

	visited[id] = true
	onStack[id] = true
	stack = append(stack, e)

	for _, edge := range e.edges {
		d.walk(edge.target, visited, onStack, stack)
	}

	onStack[id] = false
	d.globalVisited[id] = true
}

// record extracts the cycle closing at repeatID from the recursion stack.
func (d *cycleDetector) record(stack []*schemaEntry, repeatID string) {
	start := -1
	for i, e := range stack {
		if e.schema.ID == repeatID {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}
	segment := rotateToSmallest(stack[start:])

	ids := make([]string, len(segment))
	names := make([]string, len(segment))
	for i, e := range segment {
		ids[i] = e.schema.ID
		names[i] = e.schema.Name
	}
	key := strings.Join(ids, "\x00")
	if d.seen[key] {
		return
	}
	d.seen[key] = true

	depth := len(segment) - 1
	cycleType := schemalens.CircularReferenceIndirect
	if len(segment) == 2 {
		cycleType = schemalens.CircularReferenceDirect
	}
	d.cycles = append(d.cycles, schemalens.CircularReference{
		Path:     names,
		Depth:    depth,
		Type:     cycleType,
		Severity: cycleSeverity(depth),
	})
}

// rotateToSmallest rotates a cycle so it starts at its lexicographically smallest schema id.
func rotateToSmallest(segment []*schemaEntry) []*schemaEntry {
	minIdx := 0
	for i, e := range segment {
		if e.schema.ID < segment[minIdx].schema.ID {
			minIdx = i
		}
	}
	out := make([]*schemaEntry, 0, len(segment))
	out = append(out, segment[minIdx:]...)
	return append(out, segment[:minIdx]...)
}

func cycleSeverity(depth int) schemalens.Severity {
	switch {
	case depth <= 2:
		return schemalens.SeverityLow
	case depth <= 4:
		return schemalens.SeverityMedium
	default:
		return schemalens.SeverityHigh
	}
}

// circularSchemaNames returns the sorted names of every schema on any cycle.
func circularSchemaNames(cycles []schemalens.CircularReference) []string {
	names := NewSet[string]()
	for _, cycle := range cycles {
		for _, name := range cycle.Path {
			names.Add(name)
		}
	}
	out := names.ToSlice()
	sort.Strings(out)
	return out
}
