// Package pantone holds the Pantone reference catalog and the engine built on
// it: name resolution, nearest-color search and spot/process classification.
//
// A Catalog is immutable once constructed and may be shared by any number of
// goroutines without locking. Resolver, Searcher and Classifier take the
// catalog they operate on at construction time.
package pantone

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"strings"
	"sync"

	"github.com/printcolor/api/colormath"
)

//go:embed pantone_colors.json
var embeddedColors []byte

// Finish is the substrate variant of a Pantone color.
type Finish string

const (
	Coated   Finish = "Coated"
	Uncoated Finish = "Uncoated"
	Matte    Finish = "Matte"
)

// Letter returns the single-letter suffix used in Pantone names.
func (f Finish) Letter() string {
	switch f {
	case Coated:
		return "C"
	case Uncoated:
		return "U"
	case Matte:
		return "M"
	}
	return ""
}

// ParseFinish accepts a suffix letter or the full word, in any case.
func ParseFinish(s string) (Finish, bool) {
	switch strings.ToLower(s) {
	case "c", "coated":
		return Coated, true
	case "u", "uncoated":
		return Uncoated, true
	case "m", "matte":
		return Matte, true
	}
	return "", false
}

// Record is one row of the reference table as stored on disk.
type Record struct {
	Name string  `json:"name"`
	C    float64 `json:"c"`
	M    float64 `json:"m"`
	Y    float64 `json:"y"`
	K    float64 `json:"k"`
}

// Entry is a catalog color. RGB and Hex are always computed from CMYK when
// the catalog is built.
type Entry struct {
	Name     string
	BaseCode string
	Finish   Finish
	CMYK     colormath.CMYK
	RGB      colormath.RGB
	Hex      string
}

type catalogKey struct {
	code   string
	finish Finish
}

// Catalog is the read-only set of reference colors.
type Catalog struct {
	entries []Entry
	byKey   map[catalogKey]int
}

// NewCatalog builds a catalog from records, preserving their order. It fails
// with a *DataIntegrityError on a malformed row or a duplicate (code, finish).
func NewCatalog(records []Record) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(records)),
		byKey:   make(map[catalogKey]int, len(records)),
	}
	for i, rec := range records {
		entry, err := newEntry(rec)
		if err != nil {
			return nil, &DataIntegrityError{Row: i, Name: rec.Name, Reason: err.Error()}
		}
		key := catalogKey{entry.BaseCode, entry.Finish}
		if prev, ok := c.byKey[key]; ok {
			return nil, &DataIntegrityError{
				Row:    i,
				Name:   rec.Name,
				Reason: fmt.Sprintf("duplicate of row %d (%s)", prev, c.entries[prev].Name),
			}
		}
		c.byKey[key] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
	return c, nil
}

func newEntry(rec Record) (Entry, error) {
	tokens := queryTokens(rec.Name)
	if len(tokens) < 2 {
		return Entry{}, fmt.Errorf("name must carry a code and a finish letter")
	}
	finish, ok := ParseFinish(tokens[len(tokens)-1])
	if !ok || len(tokens[len(tokens)-1]) != 1 {
		return Entry{}, fmt.Errorf("name must end in C, U or M")
	}

	cmyk := colormath.CMYK{C: rec.C, M: rec.M, Y: rec.Y, K: rec.K}
	for _, v := range []float64{rec.C, rec.M, rec.Y, rec.K} {
		if v != math.Trunc(v) {
			return Entry{}, fmt.Errorf("cmyk values must be whole percentages")
		}
	}
	rgb, err := colormath.CMYKToRGB(cmyk)
	if err != nil {
		return Entry{}, err
	}
	hex, err := colormath.RGBToHex(rgb)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:     strings.TrimSpace(rec.Name),
		BaseCode: strings.Join(tokens[:len(tokens)-1], " "),
		Finish:   finish,
		CMYK:     cmyk,
		RGB:      rgb,
		Hex:      hex,
	}, nil
}

// LoadCatalog decodes a JSON array of records and builds a catalog from it.
func LoadCatalog(data []byte) (*Catalog, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DataIntegrityError{Row: -1, Reason: fmt.Sprintf("decoding reference table: %v", err)}
	}
	return NewCatalog(records)
}

var loadEmbedded = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(embeddedColors)
})

// Embedded returns the catalog compiled into the binary. It is built on the
// first call; later calls return the same value.
//
// The embedded table is a 624-row subset of the Pantone guides: 306 Coated
// swatches, their Uncoated counterparts and 12 Matte rows. Only CMYK is stored.
// RGB and hex come from CMYKToRGB, so Pantone 485 C (0, 95, 100, 0) previews
// as #FF0D00.
func Embedded() (*Catalog, error) {
	return loadEmbedded()
}

// Len is the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// All yields every entry in insertion order. The sequence may be iterated
// any number of times.
func (c *Catalog) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for i := range c.entries {
			if !yield(&c.entries[i]) {
				return
			}
		}
	}
}

// Lookup finds the entry with the given normalized base code and finish.
func (c *Catalog) Lookup(code string, finish Finish) (*Entry, bool) {
	i, ok := c.byKey[catalogKey{code, finish}]
	if !ok {
		return nil, false
	}
	return &c.entries[i], true
}
