package internal

import (
	"sort"

	"github.com/goccy/go-json"
)

// StructuralSignature returns an order-independent encoding of the structural
// keywords of n: type, properties, required, items, enum, format,
// additionalProperties and $ref. Cosmetic keywords such as title, description,
// $id and examples never contribute, so schemas that differ only in those
// produce the same string.
func StructuralSignature(n *Node) string {
	raw, err := json.Marshal(canonicalForm(n))
	if err != nil {
		// canonicalForm only produces JSON-native values
		return ""
	}
	return string(raw)
}

func canonicalForm(n *Node) any {
	if n == nil {
		return nil
	}
	if n.Kind == KindOpaque {
		if n.Truncated {
			return nil
		}
		return n.Value
	}

	m := make(map[string]any)
	if n.TypeIsArray {
		types := append([]string(nil), n.Types...)
		sort.Strings(types)
		m["type"] = types
	} else if len(n.Types) == 1 {
		m["type"] = n.Types[0]
	}
	if n.Properties != nil {
		props := make(map[string]any, len(n.Properties))
		for name, child := range n.Properties {
			props[name] = canonicalForm(child)
		}
		m["properties"] = props
	}
	if len(n.Required) > 0 {
		required := append([]string(nil), n.Required...)
		sort.Strings(required)
		m["required"] = required
	}
	if len(n.Items) > 0 {
		if n.TupleItems {
			items := make([]any, 0, len(n.Items))
			for _, item := range n.Items {
				items = append(items, canonicalForm(item))
			}
			m["items"] = items
		} else {
			m["items"] = canonicalForm(n.Items[0])
		}
	}
	if n.HasEnum {
		m["enum"] = sortedEnum(n.Enum)
	}
	if n.Format != "" {
		m["format"] = n.Format
	}
	if n.AdditionalProperties != nil {
		m["additionalProperties"] = canonicalForm(n.AdditionalProperties)
	}
	if n.Ref != "" {
		m["$ref"] = n.Ref
	}
	return m
}

func sortedEnum(values []any) []json.RawMessage {
	encoded := make([]string, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			continue
		}
		encoded = append(encoded, string(raw))
	}
	sort.Strings(encoded)
	out := make([]json.RawMessage, len(encoded))
	for i, e := range encoded {
		out[i] = json.RawMessage(e)
	}
	return out
}
