package internal

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/lychee-technology/schemalens"
	"github.com/stretchr/testify/require"
)

// testSchema builds a schema whose id is name + ".json" and whose references
// are extracted from the $ref values of content.
func testSchema(name string, content any) schemalens.Schema {
	return schemalens.Schema{
		ID:               name + ".json",
		Name:             name,
		Content:          content,
		References:       ExtractReferences(content),
		ValidationStatus: schemalens.ValidationStatusValid,
	}
}

// decodeJSON decodes a JSON literal the way the file loader does.
func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func schemaFromJSON(t *testing.T, name, raw string) schemalens.Schema {
	t.Helper()
	return testSchema(name, decodeJSON(t, raw))
}

func testCorpus(schemas ...schemalens.Schema) *corpus {
	return newCorpus(schemas, DefaultMaxParseDepth)
}

const (
	orderJSON = `{
		"type": "object",
		"required": ["id", "customer"],
		"properties": {
			"id": {"type": "string", "format": "uuid"},
			"customer": {"$ref": "Customer.json"},
			"total": {"type": "number"}
		}
	}`
	customerJSON = `{
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "string", "format": "uuid"},
			"email": {"type": "string", "format": "email"},
			"address": {"$ref": "Address.json"}
		}
	}`
	addressJSON = `{
		"type": "object",
		"properties": {
			"street": {"type": "string"},
			"city": {"type": "string"},
			"zip": {"type": "string"}
		}
	}`
)

// shopSchemas returns Order -> Customer -> Address.
func shopSchemas(t *testing.T) []schemalens.Schema {
	t.Helper()
	return []schemalens.Schema{
		schemaFromJSON(t, "Order", orderJSON),
		schemaFromJSON(t, "Customer", customerJSON),
		schemaFromJSON(t, "Address", addressJSON),
	}
}

func refSchema(t *testing.T, name string, targets ...string) schemalens.Schema {
	t.Helper()
	props := map[string]any{}
	for _, target := range targets {
		props["to"+target] = map[string]any{"$ref": target + ".json"}
	}
	return testSchema(name, map[string]any{"type": "object", "properties": props})
}
