package pantone

import (
	"fmt"
	"strconv"

	"github.com/alitto/pond"

	"github.com/printcolor/api/colormath"
)

// DefaultSpotThreshold is the largest Delta E to a catalog swatch at which a
// color is still recommended as a spot ink.
const DefaultSpotThreshold = 5.0

// Policy configures a Classifier.
type Policy struct {
	SpotThreshold float64
	// Workers bounds how many colors of one batch are matched concurrently.
	Workers int
}

func DefaultPolicy() Policy {
	return Policy{SpotThreshold: DefaultSpotThreshold, Workers: 4}
}

// Classified is one input color with its nearest swatch.
type Classified struct {
	Color          colormath.CMYK
	Hex            string
	NearestPantone string
	DeltaE         float64
	Reason         string
}

// Classification partitions a batch into spot and process candidates, each
// in input order.
type Classification struct {
	Spot      []Classified
	Process   []Classified
	Reasoning string
}

// Classifier labels colors as spot or process by their distance to the
// closest catalog swatch.
type Classifier struct {
	searcher *Searcher
	policy   Policy
}

func NewClassifier(searcher *Searcher, policy Policy) *Classifier {
	if policy.SpotThreshold <= 0 {
		policy.SpotThreshold = DefaultSpotThreshold
	}
	if policy.Workers <= 0 {
		policy.Workers = 1
	}
	return &Classifier{searcher: searcher, policy: policy}
}

// Threshold is the configured spot threshold.
func (c *Classifier) Threshold() float64 {
	return c.policy.SpotThreshold
}

// Classify uses the configured threshold.
func (c *Classifier) Classify(colors []colormath.CMYK) (Classification, error) {
	return c.ClassifyWithThreshold(colors, c.policy.SpotThreshold)
}

// ClassifyWithThreshold places every color whose rounded Delta E to its
// nearest swatch is at most threshold in Spot, the rest in Process.
func (c *Classifier) ClassifyWithThreshold(colors []colormath.CMYK, threshold float64) (Classification, error) {
	if len(colors) == 0 {
		return Classification{}, &colormath.ValidationError{Field: "colors", Reason: "list must not be empty"}
	}
	if threshold <= 0 {
		return Classification{}, &colormath.ValidationError{
			Field:  "threshold",
			Reason: fmt.Sprintf("must be positive, got %v", threshold),
		}
	}
	for i, col := range colors {
		if err := col.Validate(); err != nil {
			return Classification{}, fmt.Errorf("color %d: %w", i, err)
		}
	}

	results := make([]Classified, len(colors))
	pool := pond.New(min(c.policy.Workers, len(colors)), len(colors))
	for i, col := range colors {
		pool.Submit(func() {
			results[i] = c.classifyOne(col, threshold)
		})
	}
	pool.StopAndWait()

	var out Classification
	for _, r := range results {
		if r.DeltaE <= threshold && r.NearestPantone != "" {
			out.Spot = append(out.Spot, r)
		} else {
			out.Process = append(out.Process, r)
		}
	}
	out.Reasoning = fmt.Sprintf(
		"Analyzed %d colors with Delta E threshold %s. %d recommended as spot colors, %d as process colors. "+
			"Spot colors have a close Pantone match and will be more consistent across print runs. "+
			"Process colors are better served by standard CMYK mixing.",
		len(colors), formatDeltaE(threshold), len(out.Spot), len(out.Process))
	return out, nil
}

func (c *Classifier) classifyOne(col colormath.CMYK, threshold float64) Classified {
	hex, _ := colormath.CMYKToHex(col)
	r := Classified{Color: col, Hex: hex}

	m, found, _ := c.searcher.Nearest(col)
	if !found {
		r.Reason = "No Pantone reference colors available. Reproduce as process (CMYK) color."
		return r
	}
	r.NearestPantone = m.Entry.Name
	r.DeltaE = colormath.Round2(m.DeltaE)

	if r.DeltaE <= threshold {
		r.Reason = fmt.Sprintf("Close match to %s (Delta E = %s). Use as spot color for best accuracy.",
			r.NearestPantone, formatDeltaE(r.DeltaE))
	} else {
		r.Reason = fmt.Sprintf("No close Pantone match (nearest: %s, Delta E = %s). Reproduce as process (CMYK) color.",
			r.NearestPantone, formatDeltaE(r.DeltaE))
	}
	return r
}

func formatDeltaE(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
