// Package printcalc estimates press-side quantities for a print job: ink,
// cost, paper weight, barcode coverage, substrate color shift and preflight.
// All figures come from fixed industry rule-of-thumb tables.
package printcalc

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/printcolor/api/colormath"
)

// Method is a printing process.
type Method string

const (
	Offset  Method = "offset"
	Flexo   Method = "flexo"
	Gravure Method = "gravure"
	Screen  Method = "screen"
	Digital Method = "digital"
)

type inkRate struct {
	gramsPerM2 float64 // at 100% coverage
	usdPerKg   float64
}

var inkRates = map[Method]inkRate{
	Offset:  {1.5, 25},
	Flexo:   {1.0, 20},
	Gravure: {2.5, 22},
	Screen:  {10, 18},
	Digital: {0.65, 80},
}

// ParseMethod accepts any of the known methods, case-insensitively.
func ParseMethod(s string) (Method, error) {
	return parseMethod("print_method", s)
}

func parseMethod(field, s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := inkRates[m]; ok {
		return m, nil
	}
	return "", &colormath.ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("unknown value %q, choose from: %s", s, choices(inkRates)),
	}
}

func choices[V any](m map[Method]V) string {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return strings.Join(out, ", ")
}

// InkResult is the estimated ink usage of a job.
type InkResult struct {
	InkGrams        float64 `json:"ink_grams"`
	InkKg           float64 `json:"ink_kg"`
	CostEstimateUSD float64 `json:"cost_estimate_usd"`
}

// InkConsumption estimates ink for quantity copies of a widthMM × heightMM
// area printed at coveragePercent.
func InkConsumption(widthMM, heightMM, coveragePercent float64, method string, quantity int) (InkResult, error) {
	if err := positive("width_mm", widthMM); err != nil {
		return InkResult{}, err
	}
	if err := positive("height_mm", heightMM); err != nil {
		return InkResult{}, err
	}
	if coveragePercent < 0 || coveragePercent > 100 {
		return InkResult{}, &colormath.ValidationError{
			Field:  "coverage_percent",
			Reason: fmt.Sprintf("must be 0-100, got %v", coveragePercent),
		}
	}
	if quantity <= 0 {
		return InkResult{}, &colormath.ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be positive, got %d", quantity)}
	}
	m, err := ParseMethod(method)
	if err != nil {
		return InkResult{}, err
	}

	rate := inkRates[m]
	grams := areaM2(widthMM, heightMM) * rate.gramsPerM2 * coveragePercent / 100 * float64(quantity)
	kg := grams / 1000
	return InkResult{
		InkGrams:        colormath.Round2(grams),
		InkKg:           round(kg, 4),
		CostEstimateUSD: colormath.Round2(kg * rate.usdPerKg),
	}, nil
}
