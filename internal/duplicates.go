package internal

import (
	"sort"

	"github.com/lychee-technology/schemalens"
)

// similarityEpsilon absorbs float error so a ratio equal to the threshold qualifies.
const similarityEpsilon = 1e-9

func detectDuplicateSchemas(c *corpus) []schemalens.DuplicateGroup {
	bySig := make(map[string][]*schemaEntry)
	var order []string
	for _, e := range c.entries {
		sig := StructuralSignature(e.root)
		if _, ok := bySig[sig]; !ok {
			order = append(order, sig)
		}
		bySig[sig] = append(bySig[sig], e)
	}

	groups := []schemalens.DuplicateGroup{}
	for _, sig := range order {
		members := bySig[sig]
		if len(members) < 2 {
			continue
		}
		refs := make([]schemalens.SchemaRef, 0, len(members))
		for _, m := range members {
			refs = append(refs, m.ref())
		}
		sort.SliceStable(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
		groups = append(groups, schemalens.DuplicateGroup{Signature: sig, Schemas: refs})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Schemas) != len(groups[j].Schemas) {
			return len(groups[i].Schemas) > len(groups[j].Schemas)
		}
		return groups[i].Signature < groups[j].Signature
	})
	return groups
}

// detectNearDuplicateSchemas compares every unordered pair of schemas. This is
// O(n²) in the number of schemas and is the scaling limit for projects with
// thousands of schemas. Pairs that are exact structural duplicates are
// reported by detectDuplicateSchemas instead.
func detectNearDuplicateSchemas(c *corpus, opts schemalens.NearDuplicateConfig) []schemalens.NearDuplicatePair {
	sigs := c.fieldSignatures()
	structural := make([]string, c.size())
	for i, e := range c.entries {
		structural[i] = StructuralSignature(e.root)
	}

	pairs := []schemalens.NearDuplicatePair{}
	for i := 0; i < c.size(); i++ {
		for j := i + 1; j < c.size(); j++ {
			if structural[i] == structural[j] {
				continue
			}
			sim, overlap, union := Jaccard(sigs[i], sigs[j])
			if sim+similarityEpsilon < opts.Threshold || overlap < opts.MinOverlap {
				continue
			}
			pairs = append(pairs, schemalens.NearDuplicatePair{
				SchemaA:       c.entries[i].ref(),
				SchemaB:       c.entries[j].ref(),
				Similarity:    sim,
				OverlapFields: overlap,
				UnionFields:   union,
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Similarity > pairs[j].Similarity })
	return pairs
}
