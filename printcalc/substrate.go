package printcalc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/printcolor/api/colormath"
)

type substrateProfile struct {
	dotGain    map[Method]float64
	absorption float64 // share of remaining K headroom the stock darkens by
	whiteness  float64
	tint       colormath.CMYK
}

var substrates = map[string]substrateProfile{
	"glossy_coated": {map[Method]float64{Offset: 12, Digital: 5, Flexo: 15}, 0.02, 95, colormath.CMYK{}},
	"matte_coated":  {map[Method]float64{Offset: 18, Digital: 8, Flexo: 20}, 0.05, 92, colormath.CMYK{Y: 1}},
	"uncoated":      {map[Method]float64{Offset: 22, Digital: 12, Flexo: 25}, 0.10, 88, colormath.CMYK{M: 1, Y: 2}},
	"newsprint":     {map[Method]float64{Offset: 30, Digital: 18, Flexo: 35}, 0.18, 72, colormath.CMYK{M: 2, Y: 5, K: 3}},
	"kraft":         {map[Method]float64{Offset: 25, Digital: 15, Flexo: 30}, 0.15, 55, colormath.CMYK{M: 6, Y: 15, K: 8}},
	"recycled":      {map[Method]float64{Offset: 25, Digital: 14, Flexo: 28}, 0.12, 78, colormath.CMYK{M: 1, Y: 3, K: 2}},
}

var substrateMethods = []Method{Digital, Flexo, Offset}

// SwatchValue is a CMYK color with its screen preview.
type SwatchValue struct {
	C   float64 `json:"c"`
	M   float64 `json:"m"`
	Y   float64 `json:"y"`
	K   float64 `json:"k"`
	Hex string  `json:"hex"`
}

// SubstrateAdjustments lists what the simulation applied.
type SubstrateAdjustments struct {
	DotGainApplied   float64        `json:"dot_gain_applied"`
	AbsorptionKAdded float64        `json:"absorption_k_added"`
	TintOffsets      colormath.CMYK `json:"tint_offsets"`
	PaperWhiteness   float64        `json:"paper_whiteness"`
}

// SubstrateResult compares a color before and after printing on a stock.
type SubstrateResult struct {
	Original           SwatchValue          `json:"original"`
	Simulated          SwatchValue          `json:"simulated"`
	Substrate          string               `json:"substrate"`
	PrintMethod        string               `json:"print_method"`
	Adjustments        SubstrateAdjustments `json:"adjustments"`
	DeltaEFromOriginal float64              `json:"delta_e_from_original"`
	Warning            string               `json:"warning"`
}

// SimulateSubstrate applies midtone dot gain, K absorption and paper tint to
// c for the given stock and press. The shift is measured with metric.
func SimulateSubstrate(c colormath.CMYK, substrate, method string, metric colormath.Metric) (SubstrateResult, error) {
	if err := c.Validate(); err != nil {
		return SubstrateResult{}, err
	}
	name := strings.ToLower(strings.TrimSpace(substrate))
	profile, ok := substrates[name]
	if !ok {
		return SubstrateResult{}, &colormath.ValidationError{
			Field:  "substrate",
			Reason: fmt.Sprintf("unknown value %q, choose from: glossy_coated, kraft, matte_coated, newsprint, recycled, uncoated", substrate),
		}
	}
	m := Method(strings.ToLower(strings.TrimSpace(method)))
	if !slices.Contains(substrateMethods, m) {
		return SubstrateResult{}, &colormath.ValidationError{
			Field:  "print_method",
			Reason: fmt.Sprintf("unknown value %q, choose from: digital, flexo, offset", method),
		}
	}

	gain := profile.dotGain[m]
	absorbK := profile.absorption * (100 - c.K)
	sim := colormath.CMYK{
		C: settle(dotGain(c.C, gain) + profile.tint.C),
		M: settle(dotGain(c.M, gain) + profile.tint.M),
		Y: settle(dotGain(c.Y, gain) + profile.tint.Y),
		K: settle(dotGain(c.K, gain) + absorbK + profile.tint.K),
	}

	de, err := metric.DeltaE(c, sim)
	if err != nil {
		return SubstrateResult{}, err
	}
	de = colormath.Round2(de)

	return SubstrateResult{
		Original:    swatch(c),
		Simulated:   swatch(sim),
		Substrate:   name,
		PrintMethod: string(m),
		Adjustments: SubstrateAdjustments{
			DotGainApplied:   gain,
			AbsorptionKAdded: colormath.Round2(absorbK),
			TintOffsets:      profile.tint,
			PaperWhiteness:   profile.whiteness,
		},
		DeltaEFromOriginal: de,
		Warning:            shiftWarning(de),
	}, nil
}

// dotGain is strongest at 50% and vanishes at 0% and 100%.
func dotGain(v, gainPercent float64) float64 {
	return v + gainPercent/100*v*(1-v/100)
}

func settle(v float64) float64 {
	return colormath.Round1(clamp(v, 0, 100))
}

func swatch(c colormath.CMYK) SwatchValue {
	hex, _ := colormath.CMYKToHex(c)
	return SwatchValue{C: c.C, M: c.M, Y: c.Y, K: c.K, Hex: hex}
}

func shiftWarning(de float64) string {
	switch {
	case de < 3:
		return "Minimal color shift — output should closely match proof."
	case de < 6:
		return "Noticeable color shift — consider adjusting ink density or substrate."
	case de < 10:
		return "Significant color shift — substrate compensation curves recommended."
	default:
		return "Severe color shift — this substrate may not be suitable for color-critical work."
	}
}
