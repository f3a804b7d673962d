package pantone

import (
	"slices"
	"strings"
)

// ResolverPolicy holds the tunable parts of name resolution.
type ResolverPolicy struct {
	// FinishPreference is tried in order when a code query names no finish.
	FinishPreference []Finish
	// MinOverlap is the share of tokens two names must have in common for a
	// match found only by token overlap.
	MinOverlap float64
}

// DefaultResolverPolicy prefers Coated, then Uncoated, then Matte, and keeps
// overlap-only matches sharing at least half their tokens.
func DefaultResolverPolicy() ResolverPolicy {
	return ResolverPolicy{
		FinishPreference: []Finish{Coated, Uncoated, Matte},
		MinOverlap:       0.5,
	}
}

// Resolver maps free-form Pantone references to catalog entries.
type Resolver struct {
	catalog *Catalog
	policy  ResolverPolicy
}

func NewResolver(catalog *Catalog, policy ResolverPolicy) *Resolver {
	if len(policy.FinishPreference) == 0 {
		policy.FinishPreference = DefaultResolverPolicy().FinishPreference
	}
	return &Resolver{catalog: catalog, policy: policy}
}

const (
	tierNone = iota
	tierOverlap
	tierSubstring
	tierExact
)

type candidate struct {
	entry   *Entry
	index   int
	tier    int
	overlap int
}

// Resolve returns matching entries, best first. A code query that hits the
// catalog exactly returns that single entry. Otherwise names are ranked by
// exact equality, then substring containment, then shared tokens, with ties
// kept in catalog order. An empty result means nothing matched.
func (r *Resolver) Resolve(query string) []*Entry {
	q := ParseQuery(query)
	if q.Core == "" {
		return nil
	}
	if q.Code != "" {
		if e, ok := r.exact(q); ok {
			return []*Entry{e}
		}
	}
	return r.byName(q)
}

func (r *Resolver) exact(q Query) (*Entry, bool) {
	if q.Finish != "" {
		return r.catalog.Lookup(q.Code, q.Finish)
	}
	for _, f := range r.policy.FinishPreference {
		if e, ok := r.catalog.Lookup(q.Code, f); ok {
			return e, true
		}
	}
	return nil, false
}

func (r *Resolver) byName(q Query) []*Entry {
	queryWords := strings.Fields(q.Core)
	var found []candidate

	i := 0
	for e := range r.catalog.All() {
		c := candidate{entry: e, index: i}
		i++

		entryText := e.BaseCode + " " + strings.ToLower(e.Finish.Letter())
		switch {
		case q.Text == entryText:
			c.tier = tierExact
		case containsWords(e.BaseCode, q.Core) || containsWords(q.Core, e.BaseCode):
			c.tier = tierSubstring
		}

		entryWords := strings.Fields(e.BaseCode)
		c.overlap = overlap(queryWords, entryWords)
		if c.tier == tierNone && c.overlap > 0 {
			ratio := float64(c.overlap) / float64(max(len(queryWords), len(entryWords)))
			if ratio >= r.policy.MinOverlap {
				c.tier = tierOverlap
			}
		}
		if c.tier != tierNone {
			found = append(found, c)
		}
	}

	slices.SortStableFunc(found, func(a, b candidate) int {
		if a.tier != b.tier {
			return b.tier - a.tier
		}
		if a.overlap != b.overlap {
			return b.overlap - a.overlap
		}
		return a.index - b.index
	})

	out := make([]*Entry, len(found))
	for i, c := range found {
		out[i] = c.entry
	}
	return out
}

// containsWords reports whether needle occurs in haystack on word boundaries.
func containsWords(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

func overlap(a, b []string) int {
	n := 0
	for _, w := range a {
		if slices.Contains(b, w) {
			n++
		}
	}
	return n
}
