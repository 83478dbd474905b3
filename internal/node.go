package internal

import (
	"sort"
	"strings"
)

// NodeKind tags the variant of a parsed schema node.
type NodeKind int

const (
	// KindOpaque is any value that is not a JSON object, or an object past the depth cap.
	KindOpaque NodeKind = iota
	KindObject
	KindArray
	KindPrimitive
	KindRef
	KindCombinator
)

func (k NodeKind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindPrimitive:
		return "primitive"
	case KindRef:
		return "ref"
	case KindCombinator:
		return "combinator"
	default:
		return "opaque"
	}
}

// DefaultMaxParseDepth bounds ParseNode when the caller passes a non-positive depth.
const DefaultMaxParseDepth = 64

var combinatorKeywords = []string{"allOf", "anyOf", "oneOf", "not"}

// Node is a JSON Schema node parsed once ahead of analysis. Walkers match on
// Kind instead of probing the raw map.
type Node struct {
	Kind NodeKind

	// Types holds the declared "type" values in lexical order.
	// TypeIsArray records whether "type" was written as an array.
	Types       []string
	TypeIsArray bool
	Format      string
	Enum        []any
	HasEnum     bool
	Required    []string
	Description string
	Ref         string

	Properties map[string]*Node
	// Items is a single schema unless TupleItems is set.
	Items      []*Node
	TupleItems bool

	// AdditionalProperties is either a schema node or an Opaque node carrying a boolean.
	AdditionalProperties *Node

	Combinators map[string][]*Node
	Defs        map[string]*Node

	// Value is the raw value for Opaque nodes.
	Value     any
	Truncated bool
}

// ParseNode converts decoded JSON into a Node tree. Anything that is not a JSON
// object becomes an Opaque leaf and nesting beyond maxDepth is cut off.
func ParseNode(content any, maxDepth int) *Node {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxParseDepth
	}
	return parseNode(content, 0, maxDepth)
}

func parseNode(v any, depth, maxDepth int) *Node {
	obj, ok := v.(map[string]any)
	if !ok {
		return &Node{Kind: KindOpaque, Value: v}
	}
	if depth >= maxDepth {
		return &Node{Kind: KindOpaque, Truncated: true}
	}

	n := &Node{}
	n.Types, n.TypeIsArray = parseTypes(obj["type"])
	n.Format, _ = obj["format"].(string)
	n.Description, _ = obj["description"].(string)
	n.Ref, _ = obj["$ref"].(string)
	if enum, ok := obj["enum"].([]any); ok {
		n.Enum = enum
		n.HasEnum = true
	}
	n.Required = toStringSlice(obj["required"])

	if props, ok := obj["properties"].(map[string]any); ok {
		n.Properties = make(map[string]*Node, len(props))
		for name, raw := range props {
			n.Properties[name] = parseNode(raw, depth+1, maxDepth)
		}
	}

	switch items := obj["items"].(type) {
	case []any:
		n.TupleItems = true
		n.Items = make([]*Node, 0, len(items))
		for _, raw := range items {
			n.Items = append(n.Items, parseNode(raw, depth+1, maxDepth))
		}
	case nil:
	default:
		n.Items = []*Node{parseNode(items, depth+1, maxDepth)}
	}

	if ap, ok := obj["additionalProperties"]; ok {
		n.AdditionalProperties = parseNode(ap, depth+1, maxDepth)
	}

	for _, kw := range combinatorKeywords {
		raw, ok := obj[kw]
		if !ok {
			continue
		}
		if n.Combinators == nil {
			n.Combinators = make(map[string][]*Node)
		}
		switch branches := raw.(type) {
		case []any:
			for _, b := range branches {
				n.Combinators[kw] = append(n.Combinators[kw], parseNode(b, depth+1, maxDepth))
			}
		default:
			n.Combinators[kw] = []*Node{parseNode(branches, depth+1, maxDepth)}
		}
	}

	for _, kw := range []string{"$defs", "definitions"} {
		defs, ok := obj[kw].(map[string]any)
		if !ok {
			continue
		}
		if n.Defs == nil {
			n.Defs = make(map[string]*Node, len(defs))
		}
		for name, raw := range defs {
			n.Defs[name] = parseNode(raw, depth+1, maxDepth)
		}
	}

	n.Kind = classify(n)
	return n
}

func classify(n *Node) NodeKind {
	switch {
	case n.Ref != "":
		return KindRef
	case n.Properties != nil || n.hasType("object"):
		return KindObject
	case n.Items != nil || n.hasType("array"):
		return KindArray
	case len(n.Combinators) > 0 && len(n.Types) == 0:
		return KindCombinator
	default:
		return KindPrimitive
	}
}

func (n *Node) hasType(t string) bool {
	for _, typ := range n.Types {
		if typ == t {
			return true
		}
	}
	return false
}

// TypeLabel joins the declared types in lexical order with "|", or returns "" when no type is declared.
func (n *Node) TypeLabel() string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Types, "|")
}

// PropertyNames returns the property names in lexical order.
func (n *Node) PropertyNames() []string {
	if n == nil || len(n.Properties) == 0 {
		return nil
	}
	names := MapKeys(n.Properties)
	sort.Strings(names)
	return names
}

// IsRequired reports whether name is listed in the node's required array.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// HasStructure reports whether the node declares properties or items.
func (n *Node) HasStructure() bool {
	return n != nil && (len(n.Properties) > 0 || len(n.Items) > 0)
}

// Children returns every direct sub-schema: properties, items,
// additionalProperties, combinator branches and definitions, in a stable order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, name := range n.PropertyNames() {
		out = append(out, n.Properties[name])
	}
	out = append(out, n.Items...)
	if n.AdditionalProperties != nil {
		out = append(out, n.AdditionalProperties)
	}
	for _, kw := range combinatorKeywords {
		out = append(out, n.Combinators[kw]...)
	}
	defNames := MapKeys(n.Defs)
	sort.Strings(defNames)
	for _, name := range defNames {
		out = append(out, n.Defs[name])
	}
	return out
}

func parseTypes(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, false
	case []any:
		types := toStringSlice(t)
		sort.Strings(types)
		return types, true
	default:
		return nil, false
	}
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
