package books

import "sort"

// Catalogue is the set of all candidates sharing one identity. Members are
// ordered by raw name (byte order), which establishes each member's
// lexical rank.
type Catalogue struct {
	Identity Identity
	Members  []Candidate
}

// Ambiguous reports whether more than one candidate claims this slot.
func (c *Catalogue) Ambiguous() bool { return len(c.Members) > 1 }

// Number returns the leading identity component when present.
func (c *Catalogue) Number() (uint64, bool) { return c.Identity.Leading() }

// Group partitions candidates into catalogues. Catalogues appear in the
// order their identity was first encountered, so listing output is stable
// across runs with the same scan order. Candidates without an identity are
// never grouped; each forms its own singleton catalogue. Members within a
// catalogue are sorted by raw name, ties broken by path.
func Group(candidates []Candidate) []*Catalogue {
	var out []*Catalogue
	byKey := make(map[string]*Catalogue)

	for _, cand := range candidates {
		if cand.Identity.Empty() {
			out = append(out, &Catalogue{Members: []Candidate{cand}})
			continue
		}
		key := cand.Identity.Key()
		cat, ok := byKey[key]
		if !ok {
			cat = &Catalogue{Identity: cand.Identity}
			byKey[key] = cat
			out = append(out, cat)
		}
		cat.Members = append(cat.Members, cand)
	}

	for _, cat := range out {
		sort.Slice(cat.Members, func(i, j int) bool {
			a, b := cat.Members[i], cat.Members[j]
			if a.RawName != b.RawName {
				return a.RawName < b.RawName
			}
			return a.Path < b.Path
		})
	}
	return out
}
