package internal

import (
	"path"
	"strings"

	"github.com/lychee-technology/schemalens"
)

// RelationIndex records the named references between loaded schemas.
// Outgoing references are keyed by schema id, incoming ones by target schema name.
type RelationIndex struct {
	outgoing map[string][]schemalens.SchemaReference
	incoming map[string]*Set[string]
}

// NewRelationIndex extracts every $ref of each schema's content, keyed by
// schema id, and inverts the relation.
func NewRelationIndex(contentByID map[string]any) *RelationIndex {
	idx := &RelationIndex{
		outgoing: make(map[string][]schemalens.SchemaReference, len(contentByID)),
		incoming: make(map[string]*Set[string]),
	}
	for id, content := range contentByID {
		refs := ExtractReferences(content)
		idx.outgoing[id] = refs
		for _, ref := range refs {
			set, ok := idx.incoming[ref.SchemaName]
			if !ok {
				set = NewSet[string]()
				idx.incoming[ref.SchemaName] = set
			}
			set.Add(id)
		}
	}
	return idx
}

// References returns the outgoing references of the schema with the given id.
func (idx *RelationIndex) References(schemaID string) []schemalens.SchemaReference {
	if idx == nil {
		return []schemalens.SchemaReference{}
	}
	return idx.outgoing[schemaID]
}

// ReferencedBy returns the sorted ids of schemas referencing schemaName.
func (idx *RelationIndex) ReferencedBy(schemaName string) []string {
	if idx == nil {
		return []string{}
	}
	set, ok := idx.incoming[schemaName]
	if !ok {
		return []string{}
	}
	return SortedSlice(set)
}

// ExtractReferences walks decoded content and returns one reference per
// distinct $ref string that names a schema, in lexical order of the $ref.
func ExtractReferences(content any) []schemalens.SchemaReference {
	seen := NewSet[string]()
	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case map[string]any:
			if ref, ok := t["$ref"].(string); ok {
				seen.Add(ref)
			}
			for _, child := range t {
				walk(child)
			}
		case []any:
			for _, child := range t {
				walk(child)
			}
		}
	}
	walk(content)

	refs := []schemalens.SchemaReference{}
	for _, ref := range SortedSlice(seen) {
		if name := RefTargetName(ref); name != "" {
			refs = append(refs, schemalens.SchemaReference{Ref: ref, SchemaName: name})
		}
	}
	return refs
}

// RefTargetName returns the schema name a $ref points at.
// Examples:
//
//	"address.json"                -> "address"
//	"./common/Money.yaml#/$defs/x" -> "Money"
//	"#/$defs/Contact"              -> "Contact"
//	"#/definitions/Contact"        -> "Contact"
//	"#/properties/id"              -> ""
func RefTargetName(ref string) string {
	base, fragment, _ := strings.Cut(ref, "#")
	if base != "" {
		if i := strings.IndexAny(base, "?"); i >= 0 {
			base = base[:i]
		}
		file := path.Base(strings.TrimRight(base, "/"))
		if file == "." || file == "/" {
			return ""
		}
		return strings.TrimSuffix(file, path.Ext(file))
	}
	parts := strings.Split(strings.TrimPrefix(fragment, "/"), "/")
	if len(parts) == 2 && (parts[0] == "$defs" || parts[0] == "definitions") {
		return parts[1]
	}
	return ""
}
