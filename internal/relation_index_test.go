package internal

import (
	"testing"

	"github.com/lychee-technology/schemalens"
	"github.com/stretchr/testify/assert"
)

func TestRefTargetName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "address.json", want: "address"},
		{ref: "./common/Money.yaml#/$defs/x", want: "Money"},
		{ref: "https://example.com/schemas/Order.json?v=2", want: "Order"},
		{ref: "#/$defs/Contact", want: "Contact"},
		{ref: "#/definitions/Contact", want: "Contact"},
		{ref: "#/properties/id", want: ""},
		{ref: "#", want: ""},
		{ref: "./", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, RefTargetName(tt.ref))
		})
	}
}

func TestExtractReferences(t *testing.T) {
	content := decodeJSON(t, `{
		"properties": {
			"billing": {"$ref": "Address.json"},
			"shipping": {"$ref": "Address.json"},
			"tags": {"type": "array", "items": {"$ref": "#/$defs/Tag"}},
			"self": {"$ref": "#/properties/billing"}
		},
		"$defs": {"Tag": {"type": "string"}}
	}`)

	assert.Equal(t, []schemalens.SchemaReference{
		{Ref: "#/$defs/Tag", SchemaName: "Tag"},
		{Ref: "Address.json", SchemaName: "Address"},
	}, ExtractReferences(content))

	assert.Equal(t, []schemalens.SchemaReference{}, ExtractReferences("not a schema"))
}

func TestRelationIndex(t *testing.T) {
	idx := NewRelationIndex(map[string]any{
		"orders/Order.json":       decodeJSON(t, `{"properties": {"customer": {"$ref": "../customers/Customer.json"}}}`),
		"Invoice.json":            decodeJSON(t, `{"properties": {"customer": {"$ref": "customers/Customer.json"}}}`),
		"customers/Customer.json": decodeJSON(t, `{"type": "object"}`),
	})

	assert.Equal(t, []string{"Invoice.json", "orders/Order.json"}, idx.ReferencedBy("Customer"))
	assert.Equal(t, []string{}, idx.ReferencedBy("Order"))
	assert.Len(t, idx.References("orders/Order.json"), 1)
	assert.Empty(t, idx.References("customers/Customer.json"))

	var nilIndex *RelationIndex
	assert.Equal(t, []string{}, nilIndex.ReferencedBy("x"))
}
