package printcalc

import (
	"fmt"
	"math"

	"github.com/printcolor/api/colormath"
)

func positive(field string, v float64) error {
	if !(v > 0) {
		return &colormath.ValidationError{Field: field, Reason: fmt.Sprintf("must be positive, got %v", v)}
	}
	return nil
}

func areaM2(widthMM, heightMM float64) float64 {
	return (widthMM / 1000) * (heightMM / 1000)
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
