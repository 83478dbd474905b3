package internal

import (
	"github.com/lychee-technology/schemalens"
	"go.uber.org/zap"
)

// schemaEntry is one input schema together with its parsed content and its
// outgoing references that resolve inside the collection.
type schemaEntry struct {
	schema schemalens.Schema
	root   *Node
	index  int
	edges  []resolvedRef
}

type resolvedRef struct {
	ref    schemalens.SchemaReference
	target *schemaEntry
}

func (e *schemaEntry) ref() schemalens.SchemaRef {
	return schemalens.SchemaRef{ID: e.schema.ID, Name: e.schema.Name}
}

// corpus is the parsed form of one schema collection, built once per analysis
// and shared read-only by every pass.
type corpus struct {
	entries []*schemaEntry
	byName  map[string]*schemaEntry
	byID    map[string]*schemaEntry

	fieldSigs []*Set[string]
}

func newCorpus(schemas []schemalens.Schema, maxDepth int) *corpus {
	c := &corpus{
		entries: make([]*schemaEntry, 0, len(schemas)),
		byName:  make(map[string]*schemaEntry, len(schemas)),
		byID:    make(map[string]*schemaEntry, len(schemas)),
	}
	for i, s := range schemas {
		e := &schemaEntry{schema: s, root: ParseNode(s.Content, maxDepth), index: i}
		c.entries = append(c.entries, e)
		// first schema wins on duplicate names
		if _, exists := c.byName[s.Name]; !exists {
			c.byName[s.Name] = e
		}
		c.byID[s.ID] = e
	}
	for _, e := range c.entries {
		for _, ref := range e.schema.References {
			target := c.resolve(ref)
			if target == nil {
				zap.S().Debugw("skipping dangling schema reference",
					"schema", e.schema.Name, "ref", ref.Ref, "target", ref.SchemaName)
				continue
			}
			e.edges = append(e.edges, resolvedRef{ref: ref, target: target})
		}
	}
	c.fieldSigs = make([]*Set[string], len(c.entries))
	for i, e := range c.entries {
		c.fieldSigs[i] = FieldSignatures(e.root)
	}
	return c
}

// resolve maps a reference to the schema it names, or nil for a dangling reference.
func (c *corpus) resolve(ref schemalens.SchemaReference) *schemaEntry {
	return c.byName[ref.SchemaName]
}

// fieldSignatures returns the field signature set of every entry, indexed like entries.
func (c *corpus) fieldSignatures() []*Set[string] {
	return c.fieldSigs
}

func (c *corpus) size() int {
	return len(c.entries)
}
