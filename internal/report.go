package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/lychee-technology/schemalens"
)

// WriteText writes a human-readable summary of an analysis result.
func WriteText(w io.Writer, r *schemalens.AnalyticsResult) {
	pm := r.ProjectMetrics
	fmt.Fprintf(w, "Schema Analytics Report\n")
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 60))

	fmt.Fprintf(w, "OVERVIEW\n")
	fmt.Fprintf(w, "  Schemas:            %d (%d valid, %d invalid)\n", pm.TotalSchemas, pm.ValidSchemas, pm.InvalidSchemas)
	fmt.Fprintf(w, "  Properties:         %d (avg %.1f per schema)\n", pm.TotalProperties, pm.AveragePropertyCount)
	fmt.Fprintf(w, "  References:         %d\n", pm.TotalReferences)
	fmt.Fprintf(w, "  Average complexity: %.1f\n", pm.AverageComplexity)
	fmt.Fprintf(w, "  Average depth:      %.1f\n", pm.AverageDepth)
	fmt.Fprintf(w, "  Maturity score:     %d/100\n", r.MaturityScore)
	fmt.Fprintf(w, "  Analysis time:      %s\n\n", r.Performance.AnalysisDuration)

	writeGraphSummary(w, r.ReferenceGraph)
	WriteCyclesText(w, r.CircularReferences)

	if len(pm.MostComplexSchemas) > 0 {
		fmt.Fprintf(w, "MOST COMPLEX\n")
		for _, name := range pm.MostComplexSchemas {
			score := 0
			for _, m := range r.ComplexityMetrics {
				if m.SchemaName == name {
					score = m.ComplexityScore
					break
				}
			}
			fmt.Fprintf(w, "  %-40s score=%d\n", name, score)
		}
		fmt.Fprintln(w)
	}
	if len(pm.OrphanedSchemas) > 0 {
		fmt.Fprintf(w, "ORPHANED SCHEMAS\n  %s\n\n", strings.Join(pm.OrphanedSchemas, ", "))
	}

	fmt.Fprintf(w, "DUPLICATION\n")
	fmt.Fprintf(w, "  Exact duplicate groups: %d\n", len(r.DuplicateGroups))
	fmt.Fprintf(w, "  Near-duplicate pairs:   %d\n", len(r.NearDuplicates))
	fmt.Fprintf(w, "  Name-similar groups:    %d\n", len(r.NameSimilarGroups))
	fmt.Fprintf(w, "  Inline duplicates:      %d\n\n", len(r.InlineDuplicates))

	s := r.FieldAnalysis.Summary
	fmt.Fprintf(w, "FIELDS\n")
	fmt.Fprintf(w, "  %d distinct fields, %d with conflicts (type %d, format %d, enum %d, required %d, description %d)\n\n",
		s.TotalFields, s.FieldsWithConflicts, s.TypeConflicts, s.FormatConflicts,
		s.EnumConflicts, s.RequiredConflicts, s.DescriptionDivergence)

	fmt.Fprintf(w, "SUGGESTIONS (%d)\n", len(r.Suggestions))
	for i, sg := range r.Suggestions {
		fmt.Fprintf(w, "  %2d. [%s|%s|impact %d] %s\n", i+1, sg.Severity, sg.Category, sg.ImpactScore, sg.Title)
		fmt.Fprintf(w, "      %s\n", sg.Description)
	}
}

func writeGraphSummary(w io.Writer, g schemalens.ReferenceGraph) {
	m := g.Metrics
	fmt.Fprintf(w, "REFERENCE GRAPH\n")
	fmt.Fprintf(w, "  Nodes: %d  Edges: %d  Components: %d\n", m.NodeCount, m.EdgeCount, m.ConnectedComponents)
	fmt.Fprintf(w, "  Density: %.3f  Average degree: %.2f\n\n", m.Density, m.AverageDegree)
}

// WriteCyclesText lists circular references, one per line.
func WriteCyclesText(w io.Writer, cycles []schemalens.CircularReference) {
	fmt.Fprintf(w, "CIRCULAR REFERENCES (%d)\n", len(cycles))
	for _, c := range cycles {
		path := append(append([]string(nil), c.Path...), c.Path[0])
		fmt.Fprintf(w, "  [%s|%s] %s\n", c.Severity, c.Type, strings.Join(path, " -> "))
	}
	fmt.Fprintln(w)
}

// WriteDOT writes the reference graph in Graphviz DOT format.
func WriteDOT(w io.Writer, g schemalens.ReferenceGraph) {
	fmt.Fprintf(w, "digraph schemas {\n")
	fmt.Fprintf(w, "  rankdir=LR;\n")
	fmt.Fprintf(w, "  node [shape=box, fontname=\"Helvetica\"];\n\n")
	for _, n := range g.Nodes {
		label := fmt.Sprintf("%s\\nin=%d out=%d", n.Name, n.InDegree, n.OutDegree)
		fmt.Fprintf(w, "  %q [label=%q];\n", n.ID, label)
	}
	fmt.Fprintln(w)
	for _, e := range g.Edges {
		style := "solid"
		if e.Type == schemalens.EdgeTypeNested {
			style = "dashed"
		}
		fmt.Fprintf(w, "  %q -> %q [label=%q, style=%s];\n", e.Source, e.Target, e.Path, style)
	}
	fmt.Fprintf(w, "}\n")
}

// WriteFieldsText lists field insights, conflicting fields first.
func WriteFieldsText(w io.Writer, a schemalens.FieldAnalysis, conflictsOnly bool) {
	for _, f := range a.Fields {
		if conflictsOnly && !f.Conflicts.Any() {
			continue
		}
		fmt.Fprintf(w, "%s (%d occurrences)\n", f.Name, f.Occurrences)
		if labels := conflictLabels(f.Conflicts); len(labels) > 0 {
			fmt.Fprintf(w, "  conflicts: %s\n", strings.Join(labels, ", "))
			fmt.Fprintf(w, "  proposal:  %s\n", describeProposal(CanonicalProposalFor(f)))
		}
		if len(f.Types) > 0 {
			fmt.Fprintf(w, "  types:     %s\n", strings.Join(f.Types, ", "))
		}
		if len(f.Formats) > 0 {
			fmt.Fprintf(w, "  formats:   %s\n", strings.Join(f.Formats, ", "))
		}
		if len(f.EnumValues) > 0 {
			fmt.Fprintf(w, "  enum:      %s\n", strings.Join(f.EnumValues, ", "))
		}
		if len(f.RequiredIn) > 0 {
			fmt.Fprintf(w, "  required:  %s\n", strings.Join(f.RequiredIn, ", "))
		}
		if len(f.OptionalIn) > 0 {
			fmt.Fprintf(w, "  optional:  %s\n", strings.Join(f.OptionalIn, ", "))
		}
	}
}
