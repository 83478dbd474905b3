package internal

import (
	"sort"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
	"github.com/lychee-technology/schemalens"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const minNameTokenLength = 3

// nameQualifiers are stripped from tokens to expose the underlying concept
// ("customerAddress" also yields "address").
var nameQualifiers = []string{"client", "customer", "user", "internal", "external", "api"}

// nameStopwords would otherwise create meaningless mega-groups.
var nameStopwords = func() *Set[string] {
	s := NewSet[string]()
	for _, w := range []string{
		"model", "response", "request", "id", "status", "data", "info", "type",
		"dto", "entity", "schema", "object", "item", "list", "base", "common",
		"api", "internal", "external", "the", "and", "for", "with",
	} {
		s.Add(w)
	}
	return s
}()

// splitIdentifier breaks a name on separators and camelCase boundaries,
// keeping acronyms together ("HTTPServerConfig" -> HTTP, Server, Config).
func splitIdentifier(name string) []string {
	var words []string
	for _, part := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words = append(words, camelcase.Split(part)...)
	}
	return words
}

// NameTokens returns the distinct, filtered grouping tokens of a schema name in
// first-seen order.
func NameTokens(name string) []string {
	var candidates []string
	for _, w := range splitIdentifier(name) {
		w = strings.ToLower(w)
		candidates = append(candidates, w)
		for _, q := range nameQualifiers {
			if w == q {
				continue
			}
			if rest, ok := strings.CutPrefix(w, q); ok {
				candidates = append(candidates, rest)
			}
			if rest, ok := strings.CutSuffix(w, q); ok {
				candidates = append(candidates, rest)
			}
		}
	}

	seen := NewSet[string]()
	var tokens []string
	for _, t := range candidates {
		if len(t) < minNameTokenLength || isNumeric(t) || nameStopwords.Contains(t) || seen.Contains(t) {
			continue
		}
		seen.Add(t)
		tokens = append(tokens, t)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// pascalCase derives a canonical schema name from a lowercase token.
// A Caser is stateful, so one is created per call.
func pascalCase(token string) string {
	return cases.Title(language.English).String(token)
}

func detectNameSimilarGroups(c *corpus, opts schemalens.NameSimilarityConfig) []schemalens.NameSimilarGroup {
	minSize := maxInt(2, opts.MinGroupSize)
	byToken := make(map[string][]int)
	for i, e := range c.entries {
		for _, token := range NameTokens(e.schema.Name) {
			byToken[token] = append(byToken[token], i)
		}
	}

	sigs := c.fieldSignatures()
	groups := []schemalens.NameSimilarGroup{}
	for token, members := range byToken {
		if len(members) < minSize {
			continue
		}
		avg := averagePairwiseSimilarity(sigs, members)
		if avg+similarityEpsilon < opts.MinAverageSimilarity {
			continue
		}
		refs := make([]schemalens.SchemaRef, 0, len(members))
		for _, idx := range members {
			refs = append(refs, c.entries[idx].ref())
		}
		sort.SliceStable(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
		groups = append(groups, schemalens.NameSimilarGroup{
			Token:             token,
			SuggestedName:     pascalCase(token),
			Schemas:           refs,
			AverageSimilarity: avg,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if len(a.Schemas) != len(b.Schemas) {
			return len(a.Schemas) > len(b.Schemas)
		}
		if a.AverageSimilarity != b.AverageSimilarity {
			return a.AverageSimilarity > b.AverageSimilarity
		}
		return a.Token < b.Token
	})
	return groups
}

func averagePairwiseSimilarity(sigs []*Set[string], members []int) float64 {
	var total float64
	pairs := 0
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			sim, _, _ := Jaccard(sigs[members[i]], sigs[members[j]])
			total += sim
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}
