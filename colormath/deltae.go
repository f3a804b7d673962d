package colormath

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric selects how the distance between two colors is measured.
type Metric int

const (
	// CIE76 converts both colors to sRGB, then to CIELAB (D65) and takes the
	// Euclidean distance there.
	CIE76 Metric = iota
	// RGBEuclidean is the plain Euclidean distance over the 8-bit R, G, B channels.
	RGBEuclidean
)

func (m Metric) String() string {
	switch m {
	case CIE76:
		return "cie76"
	case RGBEuclidean:
		return "rgb"
	default:
		return "unknown"
	}
}

// ParseMetric maps "cie76" and "rgb" to their Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "cie76":
		return CIE76, nil
	case "rgb":
		return RGBEuclidean, nil
	}
	return CIE76, &ValidationError{Field: "metric", Reason: "must be one of cie76, rgb, got " + s}
}

// Distance measures two already-validated colors. Identical RGB values give 0.
func (m Metric) Distance(a, b CMYK) float64 {
	ra, rb := cmykToRGB(a), cmykToRGB(b)
	if m == RGBEuclidean {
		dr, dg, db := float64(ra.R-rb.R), float64(ra.G-rb.G), float64(ra.B-rb.B)
		return math.Sqrt(dr*dr + dg*dg + db*db)
	}
	if ra == rb {
		return 0
	}
	return toColorful(ra).DistanceCIE76(toColorful(rb))
}

func toColorful(rgb RGB) colorful.Color {
	return colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
}

// DeltaE returns the CIE76 color difference between two CMYK colors.
func DeltaE(a, b CMYK) (float64, error) {
	return CIE76.DeltaE(a, b)
}

// DeltaE validates both colors and measures them with m. Channels of the
// first color are reported as c1..k1, of the second as c2..k2.
func (m Metric) DeltaE(a, b CMYK) (float64, error) {
	if err := a.validate("1"); err != nil {
		return 0, err
	}
	if err := b.validate("2"); err != nil {
		return 0, err
	}
	return m.Distance(a, b), nil
}

// Interpret describes a Delta E value in press-check terms.
func Interpret(deltaE float64) string {
	switch {
	case deltaE < 1:
		return "excellent — imperceptible difference"
	case deltaE < 3:
		return "good — barely perceptible"
	case deltaE < 6:
		return "fair — noticeable difference"
	default:
		return "poor — obvious difference"
	}
}
