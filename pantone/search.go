package pantone

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/printcolor/api/colormath"
)

// Target is the color a search measures against, given either as CMYK or as
// a hex string. Hex targets are converted to CMYK so every distance is taken
// from the same space.
type Target struct {
	cmyk    colormath.CMYK
	hex     string
	fromHex bool
}

func CMYKTarget(c colormath.CMYK) Target {
	return Target{cmyk: c}
}

func HexTarget(hex string) Target {
	return Target{hex: hex, fromHex: true}
}

// CMYK validates the target and returns it in CMYK.
func (t Target) CMYK() (colormath.CMYK, error) {
	if t.fromHex {
		return colormath.HexToCMYK(t.hex)
	}
	if err := t.cmyk.Validate(); err != nil {
		return colormath.CMYK{}, err
	}
	return t.cmyk, nil
}

// String describes the target the way search results label it.
func (t Target) String() string {
	if t.fromHex {
		return "hex " + strings.TrimSpace(t.hex)
	}
	return t.cmyk.String()
}

// Match is a catalog entry and its distance from a search target. Entry
// points into the catalog and must not be modified.
type Match struct {
	Entry  *Entry
	DeltaE float64
}

// Searcher ranks catalog entries by distance from a target with a full scan.
type Searcher struct {
	catalog *Catalog
	metric  colormath.Metric
}

func NewSearcher(catalog *Catalog, metric colormath.Metric) *Searcher {
	return &Searcher{catalog: catalog, metric: metric}
}

// Search returns the topN closest entries in ascending distance, ties in
// catalog order. A topN above the catalog size returns the whole catalog.
func (s *Searcher) Search(target Target, topN int) ([]Match, error) {
	if topN <= 0 {
		return nil, &colormath.ValidationError{Field: "limit", Reason: fmt.Sprintf("must be at least 1, got %d", topN)}
	}
	want, err := target.CMYK()
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, s.catalog.Len())
	for e := range s.catalog.All() {
		matches = append(matches, Match{Entry: e, DeltaE: s.metric.Distance(want, e.CMYK)})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.DeltaE, b.DeltaE)
	})
	return matches[:min(topN, len(matches))], nil
}

// Nearest returns the single closest entry to c. The second result is false
// only for an empty catalog.
func (s *Searcher) Nearest(c colormath.CMYK) (Match, bool, error) {
	if err := c.Validate(); err != nil {
		return Match{}, false, err
	}
	var best Match
	found := false
	for e := range s.catalog.All() {
		d := s.metric.Distance(c, e.CMYK)
		if !found || d < best.DeltaE {
			best = Match{Entry: e, DeltaE: d}
			found = true
		}
	}
	return best, found, nil
}
