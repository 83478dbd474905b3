package internal

import (
	"slices"
	"strings"

	"github.com/lychee-technology/schemalens"
)

// CanonicalProposal is an advisory canonical declaration for a conflicting field.
type CanonicalProposal struct {
	Rule    string   `json:"rule"`
	Type    string   `json:"type,omitempty"`
	Format  string   `json:"format,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Enum    []string `json:"enum,omitempty"`
	Note    string   `json:"note"`
}

// fieldRule is one entry of the field-name heuristic table. Matches receives
// the lowercased words of the field name.
type fieldRule struct {
	Name    string
	Matches func(words []string) bool
	Propose func(insight schemalens.FieldInsight) CanonicalProposal
}

func firstWordIn(set ...string) func([]string) bool {
	return func(words []string) bool {
		return len(words) > 1 && slices.Contains(set, words[0])
	}
}

func lastWordIn(set ...string) func([]string) bool {
	return func(words []string) bool {
		return len(words) > 0 && slices.Contains(set, words[len(words)-1])
	}
}

func anyWordIn(set ...string) func([]string) bool {
	return func(words []string) bool {
		for _, w := range words {
			if slices.Contains(set, w) {
				return true
			}
		}
		return false
	}
}

func fixed(rule, typ, format, note string) func(schemalens.FieldInsight) CanonicalProposal {
	return func(schemalens.FieldInsight) CanonicalProposal {
		return CanonicalProposal{Rule: rule, Type: typ, Format: format, Note: note}
	}
}

// fieldRules is evaluated in order; the first match wins.
var fieldRules = []fieldRule{
	{
		Name:    "boolean-prefix",
		Matches: firstWordIn("is", "has", "can", "should"),
		Propose: fixed("boolean-prefix", "boolean", "", "predicate-style names read as booleans"),
	},
	{
		Name:    "identifier",
		Matches: lastWordIn("id", "uuid", "guid"),
		Propose: fixed("identifier", "string", "uuid", "identifiers are UUID strings"),
	},
	{
		Name:    "timestamp",
		Matches: func(words []string) bool { return lastWordIn("at", "time")(words) || anyWordIn("timestamp", "datetime")(words) },
		Propose: fixed("timestamp", "string", "date-time", "timestamps use RFC 3339 date-time"),
	},
	{
		Name:    "date",
		Matches: func(words []string) bool { return anyWordIn("date", "birthday", "dob")(words) || lastWordIn("on")(words) },
		Propose: fixed("date", "string", "date", "calendar dates use the date format"),
	},
	{
		Name:    "email",
		Matches: anyWordIn("email"),
		Propose: fixed("email", "string", "email", "email addresses use the email format"),
	},
	{
		Name:    "url",
		Matches: anyWordIn("url", "uri", "link", "href", "website", "homepage"),
		Propose: fixed("url", "string", "uri", "links use the uri format"),
	},
	{
		Name:    "phone",
		Matches: anyWordIn("phone", "mobile", "tel", "telephone", "fax"),
		Propose: func(schemalens.FieldInsight) CanonicalProposal {
			return CanonicalProposal{Rule: "phone", Type: "string", Pattern: `^\+[1-9]\d{1,14}$`, Note: "phone numbers as E.164 strings"}
		},
	},
	{
		Name:    "counter",
		Matches: lastWordIn("count", "index", "idx", "qty", "quantity", "number", "num", "age"),
		Propose: fixed("counter", "integer", "", "counts and indexes are integers"),
	},
	{
		Name:    "classifier",
		Matches: lastWordIn("status", "type", "category", "kind", "state", "level", "role"),
		Propose: func(insight schemalens.FieldInsight) CanonicalProposal {
			if len(insight.EnumValues) > 0 {
				return CanonicalProposal{
					Rule: "classifier", Type: "string", Enum: append([]string(nil), insight.EnumValues...),
					Note: "share one enum covering every observed value",
				}
			}
			return CanonicalProposal{Rule: "classifier", Type: "string", Note: "classifiers are strings; consider an enum"}
		},
	},
}

// CanonicalProposalFor returns the advisory canonical declaration for a field:
// the first matching heuristic, or the observed declaration when one type and
// at most one format were seen.
func CanonicalProposalFor(insight schemalens.FieldInsight) CanonicalProposal {
	words := make([]string, 0, 4)
	for _, w := range splitIdentifier(insight.Name) {
		words = append(words, strings.ToLower(w))
	}
	for _, rule := range fieldRules {
		if rule.Matches(words) {
			return rule.Propose(insight)
		}
	}

	p := CanonicalProposal{Rule: "observed", Note: "align every occurrence on a single declaration"}
	if len(insight.Types) > 0 {
		p.Type = insight.Types[0]
	}
	if len(insight.Formats) == 1 {
		p.Format = insight.Formats[0]
	}
	return p
}
