package internal

import (
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/lychee-technology/schemalens"
)

type fieldAccumulator struct {
	name         string
	types        *Set[string]
	formats      *Set[string]
	enumSets     *Set[string]
	enumValues   *Set[string]
	requiredIn   *Set[string]
	optionalIn   *Set[string]
	descriptions *Set[string]
	occurrences  int
}

func newFieldAccumulator(name string) *fieldAccumulator {
	return &fieldAccumulator{
		name:         name,
		types:        NewSet[string](),
		formats:      NewSet[string](),
		enumSets:     NewSet[string](),
		enumValues:   NewSet[string](),
		requiredIn:   NewSet[string](),
		optionalIn:   NewSet[string](),
		descriptions: NewSet[string](),
	}
}

func (a *fieldAccumulator) observe(schemaName string, prop *Node, required bool) {
	a.occurrences++
	if required {
		a.requiredIn.Add(schemaName)
	} else {
		a.optionalIn.Add(schemaName)
	}
	if prop == nil || prop.Kind == KindOpaque {
		return
	}
	if label := prop.TypeLabel(); label != "" {
		a.types.Add(label)
	}
	if prop.Format != "" {
		a.formats.Add(prop.Format)
	}
	if prop.HasEnum {
		values := enumStrings(prop.Enum)
		for _, v := range values {
			a.enumValues.Add(v)
		}
		a.enumSets.Add(canonicalEnumSet(values))
	}
	if d := normalizeText(prop.Description); d != "" {
		a.descriptions.Add(d)
	}
}

func (a *fieldAccumulator) insight() schemalens.FieldInsight {
	return schemalens.FieldInsight{
		Name:         a.name,
		Types:        SortedSlice(a.types),
		Formats:      SortedSlice(a.formats),
		EnumSets:     SortedSlice(a.enumSets),
		EnumValues:   SortedSlice(a.enumValues),
		RequiredIn:   SortedSlice(a.requiredIn),
		OptionalIn:   SortedSlice(a.optionalIn),
		Descriptions: SortedSlice(a.descriptions),
		Occurrences:  a.occurrences,
		Conflicts: schemalens.FieldConflicts{
			Type:        a.types.Size() > 1,
			Format:      a.formats.Size() > 1,
			Enum:        a.enumSets.Size() > 1,
			Required:    a.requiredConflict(),
			Description: a.descriptions.Size() > 1,
		},
	}
}

// requiredConflict reports a field required in one schema and optional in a different one.
func (a *fieldAccumulator) requiredConflict() bool {
	for req := range a.requiredIn.items {
		for opt := range a.optionalIn.items {
			if req != opt {
				return true
			}
		}
	}
	return false
}

// enumStrings coerces enum values to strings, sorted and deduplicated.
func enumStrings(values []any) []string {
	set := NewSet[string]()
	for _, v := range values {
		set.Add(coerceString(v))
	}
	return SortedSlice(set)
}

func canonicalEnumSet(sorted []string) string {
	raw, err := json.Marshal(sorted)
	if err != nil {
		return ""
	}
	return string(raw)
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

func analyzeFields(c *corpus) schemalens.FieldAnalysis {
	acc := make(map[string]*fieldAccumulator)
	var walk func(schemaName string, n *Node)
	walk = func(schemaName string, n *Node) {
		if n == nil || n.Kind == KindOpaque {
			return
		}
		for _, name := range n.PropertyNames() {
			a, ok := acc[name]
			if !ok {
				a = newFieldAccumulator(name)
				acc[name] = a
			}
			a.observe(schemaName, n.Properties[name], n.IsRequired(name))
		}
		for _, child := range n.Children() {
			walk(schemaName, child)
		}
	}
	for _, e := range c.entries {
		walk(e.schema.Name, e.root)
	}

	analysis := schemalens.FieldAnalysis{Fields: make([]schemalens.FieldInsight, 0, len(acc))}
	for _, a := range acc {
		insight := a.insight()
		analysis.Fields = append(analysis.Fields, insight)
		s := &analysis.Summary
		s.TotalFields++
		if insight.Conflicts.Any() {
			s.FieldsWithConflicts++
		}
		if insight.Conflicts.Type {
			s.TypeConflicts++
		}
		if insight.Conflicts.Format {
			s.FormatConflicts++
		}
		if insight.Conflicts.Enum {
			s.EnumConflicts++
		}
		if insight.Conflicts.Required {
			s.RequiredConflicts++
		}
		if insight.Conflicts.Description {
			s.DescriptionDivergence++
		}
	}

	sort.Slice(analysis.Fields, func(i, j int) bool {
		a, b := analysis.Fields[i], analysis.Fields[j]
		if a.Conflicts.Any() != b.Conflicts.Any() {
			return a.Conflicts.Any()
		}
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		return a.Name < b.Name
	})
	return analysis
}
