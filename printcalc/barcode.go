package printcalc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/printcolor/api/colormath"
)

type symbology struct {
	coverageRatio  float64 // dark share of the symbol area at baseline density
	minModuleMM    float64
	recommendedInk string
}

var symbologies = map[string]symbology{
	"code128":    {0.50, 0.25, "Process Black (K: 100)"},
	"ean13":      {0.52, 0.264, "Process Black (K: 100)"},
	"qr":         {0.45, 0.33, "Process Black (K: 100)"},
	"datamatrix": {0.48, 0.30, "Process Black (K: 100)"},
}

// BarcodeResult is the ink coverage of one printed barcode.
type BarcodeResult struct {
	CoveragePercent       float64 `json:"coverage_percent"`
	RecommendedInk        string  `json:"recommended_ink"`
	PrintMethodSuggestion string  `json:"print_method_suggestion"`
	BarAreaMM2            float64 `json:"bar_area_mm2"`
	TotalAreaMM2          float64 `json:"total_area_mm2"`
}

// BarcodeCoverage estimates the inked share of a barcode. density scales the
// baseline ratio, with 0.5 as the baseline.
func BarcodeCoverage(kind string, widthMM, heightMM, density float64) (BarcodeResult, error) {
	if err := positive("width_mm", widthMM); err != nil {
		return BarcodeResult{}, err
	}
	if err := positive("height_mm", heightMM); err != nil {
		return BarcodeResult{}, err
	}
	if !(density > 0 && density <= 1) {
		return BarcodeResult{}, &colormath.ValidationError{
			Field:  "bar_density",
			Reason: fmt.Sprintf("must be between 0 (exclusive) and 1.0, got %v", density),
		}
	}
	sym, ok := symbologies[strings.ToLower(kind)]
	if !ok {
		names := make([]string, 0, len(symbologies))
		for n := range symbologies {
			names = append(names, n)
		}
		sort.Strings(names)
		return BarcodeResult{}, &colormath.ValidationError{
			Field:  "barcode_type",
			Reason: fmt.Sprintf("unknown value %q, choose from: %s", kind, strings.Join(names, ", ")),
		}
	}

	total := widthMM * heightMM
	coverage := min(sym.coverageRatio*density/0.5, 1)
	return BarcodeResult{
		CoveragePercent:       colormath.Round1(coverage * 100),
		RecommendedInk:        sym.recommendedInk,
		PrintMethodSuggestion: suggestBarcodeMethod(sym.minModuleMM, density),
		BarAreaMM2:            colormath.Round2(total * coverage),
		TotalAreaMM2:          colormath.Round2(total),
	}, nil
}

func suggestBarcodeMethod(minModuleMM, density float64) string {
	switch {
	case minModuleMM < 0.3 || density > 0.7:
		return "digital — finest resolution, best for small modules and high density"
	case minModuleMM < 0.5:
		return "offset — good resolution for medium modules, cost-effective at volume"
	default:
		return "flexo — suitable for larger modules, common in packaging"
	}
}
