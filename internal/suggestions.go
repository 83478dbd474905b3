package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lychee-technology/schemalens"
)

var suggestionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/lychee-technology/schemalens/suggestions"))

// suggestionID is stable for the same category and subject across runs.
func suggestionID(category schemalens.SuggestionCategory, key string) string {
	return uuid.NewSHA1(suggestionNamespace, []byte(string(category)+"|"+key)).String()
}

// suggestionInputs are the pass outputs the generator ranks.
type suggestionInputs struct {
	nameGroups []schemalens.NameSimilarGroup
	duplicates []schemalens.DuplicateGroup
	nearPairs  []schemalens.NearDuplicatePair
	inline     []schemalens.InlineDuplicate
	fields     schemalens.FieldAnalysis
	cycles     []schemalens.CircularReference
	complexity map[string]schemalens.ComplexityMetrics
	graph      schemalens.ReferenceGraph
}

func generateSuggestions(in suggestionInputs, cfg schemalens.SuggestionConfig) []schemalens.Suggestion {
	var out []schemalens.Suggestion
	out = append(out, namingSuggestions(in.nameGroups)...)
	out = append(out, duplicateSuggestions(in.duplicates)...)
	out = append(out, nearDuplicateSuggestions(in.nearPairs, inDegreeByName(in.graph), cfg.CentralityThreshold)...)
	out = append(out, inlineSuggestions(in.inline)...)
	out = append(out, fieldSuggestions(in.fields)...)
	if s, ok := referenceSuggestion(in.cycles); ok {
		out = append(out, s)
	}
	if s, ok := complexitySuggestion(in.complexity, cfg.TopComplexSchemas); ok {
		out = append(out, s)
	}
	if out == nil {
		out = []schemalens.Suggestion{}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ImpactScore > out[j].ImpactScore })
	return out
}

func refNames(refs []schemalens.SchemaRef) []string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}

func namingSuggestions(groups []schemalens.NameSimilarGroup) []schemalens.Suggestion {
	var out []schemalens.Suggestion
	for _, g := range groups {
		if len(g.Schemas) < 2 {
			continue
		}
		severity := schemalens.SeverityLow
		switch {
		case g.AverageSimilarity >= 0.5:
			severity = schemalens.SeverityHigh
		case g.AverageSimilarity >= 0.25:
			severity = schemalens.SeverityMedium
		}
		names := refNames(g.Schemas)
		out = append(out, schemalens.Suggestion{
			ID:       suggestionID(schemalens.SuggestionCategoryNaming, g.Token),
			Category: schemalens.SuggestionCategoryNaming,
			Title:    fmt.Sprintf("Review %d schemas sharing the name %q", len(names), g.Token),
			Description: fmt.Sprintf("%s share the name token %q with %.0f%% average field similarity. "+
				"Consider a canonical %s schema and deriving the variants from it.",
				strings.Join(names, ", "), g.Token, g.AverageSimilarity*100, g.SuggestedName),
			Severity:        severity,
			ImpactScore:     min(100, roundInt(float64(len(names))*(g.AverageSimilarity*60+20))),
			AffectedSchemas: names,
			Data: map[string]any{
				"token":             g.Token,
				"suggestedName":     g.SuggestedName,
				"averageSimilarity": g.AverageSimilarity,
			},
		})
	}
	return out
}

func duplicateSuggestions(groups []schemalens.DuplicateGroup) []schemalens.Suggestion {
	var out []schemalens.Suggestion
	for _, g := range groups {
		names := refNames(g.Schemas)
		out = append(out, schemalens.Suggestion{
			ID:       suggestionID(schemalens.SuggestionCategoryReuse, "exact|"+g.Signature),
			Category: schemalens.SuggestionCategoryReuse,
			Title:    fmt.Sprintf("Merge %d structurally identical schemas", len(names)),
			Description: fmt.Sprintf("%s have the same structure. Keep one and reference it from the others.",
				strings.Join(names, ", ")),
			Severity:        schemalens.SeverityHigh,
			ImpactScore:     min(100, len(names)*20),
			AffectedSchemas: names,
			Data:            map[string]any{"signature": g.Signature},
		})
	}
	return out
}

type nearDuplicateBucket struct {
	a, b  string
	sims  []float64
	pairs []schemalens.NearDuplicatePair
}

func nearDuplicateSuggestions(pairs []schemalens.NearDuplicatePair, inDegree map[string]int, centralityThreshold int) []schemalens.Suggestion {
	buckets := make(map[string]*nearDuplicateBucket)
	var order []string
	for _, p := range pairs {
		a, b := p.SchemaA.Name, p.SchemaB.Name
		if b < a {
			a, b = b, a
		}
		key := a + "\x00" + b
		bucket, ok := buckets[key]
		if !ok {
			bucket = &nearDuplicateBucket{a: a, b: b}
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.sims = append(bucket.sims, p.Similarity)
		bucket.pairs = append(bucket.pairs, p)
	}

	var out []schemalens.Suggestion
	for _, key := range order {
		bucket := buckets[key]
		var total float64
		for _, s := range bucket.sims {
			total += s
		}
		avg := total / float64(len(bucket.sims))

		severity := schemalens.SeverityLow
		switch {
		case avg >= 0.85:
			severity = schemalens.SeverityHigh
		case avg >= 0.7:
			severity = schemalens.SeverityMedium
		}

		aCentral := inDegree[bucket.a] > centralityThreshold
		bCentral := inDegree[bucket.b] > centralityThreshold
		var description string
		switch {
		case aCentral && !bCentral:
			description = alignDescription(bucket.b, bucket.a, avg)
		case bCentral && !aCentral:
			description = alignDescription(bucket.a, bucket.b, avg)
		default:
			description = fmt.Sprintf("%s and %s share %.0f%% of their fields. "+
				"Introduce a shared base schema and compose both from it.", bucket.a, bucket.b, avg*100)
		}

		out = append(out, schemalens.Suggestion{
			ID:              suggestionID(schemalens.SuggestionCategoryReuse, "near|"+key),
			Category:        schemalens.SuggestionCategoryReuse,
			Title:           fmt.Sprintf("Consolidate near-duplicate schemas %s and %s", bucket.a, bucket.b),
			Description:     description,
			Severity:        severity,
			ImpactScore:     min(100, roundInt(avg*100)),
			AffectedSchemas: []string{bucket.a, bucket.b},
			Data: map[string]any{
				"averageSimilarity": avg,
				"pairs":             bucket.pairs,
			},
		})
	}
	return out
}

func alignDescription(peripheral, central string, avg float64) string {
	return fmt.Sprintf("%s shares %.0f%% of its fields with %s, which is already widely referenced. "+
		"Align %s to %s or replace it with a reference.", peripheral, avg*100, central, peripheral, central)
}

func inlineSuggestions(dups []schemalens.InlineDuplicate) []schemalens.Suggestion {
	var out []schemalens.Suggestion
	for _, d := range dups {
		out = append(out, schemalens.Suggestion{
			ID:       suggestionID(schemalens.SuggestionCategoryReuse, "inline|"+d.Signature),
			Category: schemalens.SuggestionCategoryReuse,
			Title:    fmt.Sprintf("Extract an inline structure repeated in %d schemas", len(d.ParentSchemas)),
			Description: fmt.Sprintf("The same inline structure appears in %s. "+
				"Extract it into its own schema and reference it.", strings.Join(d.ParentSchemas, ", ")),
			Severity:        schemalens.SeverityMedium,
			ImpactScore:     min(100, len(d.ParentSchemas)*15),
			AffectedSchemas: append([]string(nil), d.ParentSchemas...),
			Data:            map[string]any{"signature": d.Signature},
		})
	}
	return out
}

func fieldSeverity(c schemalens.FieldConflicts) (schemalens.Severity, int) {
	switch {
	case c.Type || c.Enum:
		return schemalens.SeverityHigh, 8
	case c.Format || c.Required:
		return schemalens.SeverityMedium, 5
	default:
		return schemalens.SeverityLow, 3
	}
}

func conflictLabels(c schemalens.FieldConflicts) []string {
	var labels []string
	if c.Type {
		labels = append(labels, "type")
	}
	if c.Format {
		labels = append(labels, "format")
	}
	if c.Enum {
		labels = append(labels, "enum")
	}
	if c.Required {
		labels = append(labels, "required")
	}
	if c.Description {
		labels = append(labels, "description")
	}
	return labels
}

func fieldSuggestions(analysis schemalens.FieldAnalysis) []schemalens.Suggestion {
	var out []schemalens.Suggestion
	for _, f := range analysis.Fields {
		if !f.Conflicts.Any() {
			continue
		}
		severity, weight := fieldSeverity(f.Conflicts)
		affected := NewSet[string]()
		for _, n := range f.RequiredIn {
			affected.Add(n)
		}
		for _, n := range f.OptionalIn {
			affected.Add(n)
		}
		proposal := CanonicalProposalFor(f)
		labels := conflictLabels(f.Conflicts)
		out = append(out, schemalens.Suggestion{
			ID:       suggestionID(schemalens.SuggestionCategoryFieldConsistency, f.Name),
			Category: schemalens.SuggestionCategoryFieldConsistency,
			Title:    fmt.Sprintf("Align declarations of field %q", f.Name),
			Description: fmt.Sprintf("Field %q is declared inconsistently (%s) across %d occurrences. %s.",
				f.Name, strings.Join(labels, ", "), f.Occurrences, describeProposal(proposal)),
			Severity:        severity,
			ImpactScore:     min(100, f.Occurrences*weight),
			AffectedSchemas: SortedSlice(affected),
			Data: map[string]any{
				"field":     f.Name,
				"conflicts": labels,
				"proposal":  proposal,
			},
		})
	}
	return out
}

func describeProposal(p CanonicalProposal) string {
	parts := []string{}
	if p.Type != "" {
		parts = append(parts, "type "+p.Type)
	}
	if p.Format != "" {
		parts = append(parts, "format "+p.Format)
	}
	if p.Pattern != "" {
		parts = append(parts, "pattern "+p.Pattern)
	}
	if len(p.Enum) > 0 {
		parts = append(parts, "enum ["+strings.Join(p.Enum, ", ")+"]")
	}
	if len(parts) == 0 {
		return "Suggested: " + p.Note
	}
	return "Suggested: " + strings.Join(parts, ", ") + " (" + p.Note + ")"
}

func referenceSuggestion(cycles []schemalens.CircularReference) (schemalens.Suggestion, bool) {
	if len(cycles) == 0 {
		return schemalens.Suggestion{}, false
	}
	return schemalens.Suggestion{
		ID:       suggestionID(schemalens.SuggestionCategoryReferences, "cycles"),
		Category: schemalens.SuggestionCategoryReferences,
		Title:    fmt.Sprintf("Break %d circular reference chains", len(cycles)),
		Description: "Schemas reference each other in cycles, which complicates code generation and validation. " +
			"Introduce an id reference or a shared leaf schema to break each cycle.",
		Severity:        schemalens.SeverityHigh,
		ImpactScore:     min(100, len(cycles)*10),
		AffectedSchemas: circularSchemaNames(cycles),
		Data:            map[string]any{"cycles": cycles},
	}, true
}

func complexitySuggestion(complexity map[string]schemalens.ComplexityMetrics, topN int) (schemalens.Suggestion, bool) {
	top := mostComplex(complexity, topN)
	if len(top) == 0 || top[0].ComplexityScore <= 0 {
		return schemalens.Suggestion{}, false
	}
	worst := top[0].ComplexityScore
	severity := schemalens.SeverityLow
	switch {
	case worst >= 75:
		severity = schemalens.SeverityHigh
	case worst >= 50:
		severity = schemalens.SeverityMedium
	}
	names := make([]string, len(top))
	scores := make(map[string]int, len(top))
	for i, m := range top {
		names[i] = m.SchemaName
		scores[m.SchemaName] = m.ComplexityScore
	}
	return schemalens.Suggestion{
		ID:       suggestionID(schemalens.SuggestionCategoryComplexity, "top"),
		Category: schemalens.SuggestionCategoryComplexity,
		Title:    "Simplify the most complex schemas",
		Description: fmt.Sprintf("%s are the most complex schemas (worst score %d). "+
			"Split deep or wide schemas into referenced parts.", strings.Join(names, ", "), worst),
		Severity:        severity,
		ImpactScore:     worst,
		AffectedSchemas: names,
		Data:            map[string]any{"scores": scores},
	}, true
}
