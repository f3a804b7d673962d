package printcalc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/printcolor/api/colormath"
)

// Status is the outcome of a preflight check, ordered pass < warning < fail.
type Status string

const (
	Pass    Status = "pass"
	Warning Status = "warning"
	Fail    Status = "fail"
)

func (s Status) severity() int {
	switch s {
	case Warning:
		return 1
	case Fail:
		return 2
	}
	return 0
}

var minDPI = map[Method]float64{Offset: 300, Digital: 150, Flexo: 300, Gravure: 300, Screen: 200}

var minBleedMM = map[Method]float64{Offset: 3, Digital: 2, Flexo: 3, Gravure: 3, Screen: 2}

var colorModes = []string{"cmyk", "rgb", "grayscale", "spot"}

// Ink limits on total area coverage, in percent.
const (
	inkCoverageSafe = 300
	inkCoverageMax  = 340
)

// Document is the declared properties of a print-ready file.
type Document struct {
	ColorMode               string
	ResolutionDPI           float64
	HasBleed                bool
	BleedMM                 float64
	WidthMM                 float64
	HeightMM                float64
	FontsEmbedded           bool
	TotalInkCoveragePercent float64
	HasTransparency         bool
	TargetMethod            string
}

// Check is one preflight rule's verdict.
type Check struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// PreflightResult is the overall verdict: the worst of all checks.
type PreflightResult struct {
	Status         Status  `json:"status"`
	Checks         []Check `json:"checks"`
	Summary        string  `json:"summary"`
	Recommendation string  `json:"recommendation"`
}

// Preflight validates doc against the requirements of its target method.
func Preflight(doc Document) (PreflightResult, error) {
	if doc.TargetMethod == "" {
		doc.TargetMethod = string(Offset)
	}
	method, err := parseMethod("target_method", doc.TargetMethod)
	if err != nil {
		return PreflightResult{}, err
	}
	mode := strings.ToLower(strings.TrimSpace(doc.ColorMode))
	if !slices.Contains(colorModes, mode) {
		return PreflightResult{}, &colormath.ValidationError{
			Field:  "color_mode",
			Reason: fmt.Sprintf("unknown value %q, choose from: %s", doc.ColorMode, strings.Join(colorModes, ", ")),
		}
	}
	if err := positive("resolution_dpi", doc.ResolutionDPI); err != nil {
		return PreflightResult{}, err
	}
	if err := positive("width_mm", doc.WidthMM); err != nil {
		return PreflightResult{}, err
	}
	if err := positive("height_mm", doc.HeightMM); err != nil {
		return PreflightResult{}, err
	}
	if doc.BleedMM < 0 {
		return PreflightResult{}, &colormath.ValidationError{Field: "bleed_mm", Reason: fmt.Sprintf("must be non-negative, got %v", doc.BleedMM)}
	}
	if doc.TotalInkCoveragePercent < 0 {
		return PreflightResult{}, &colormath.ValidationError{
			Field:  "total_ink_coverage_percent",
			Reason: fmt.Sprintf("must be non-negative, got %v", doc.TotalInkCoveragePercent),
		}
	}

	checks := []Check{
		checkColorMode(mode, method),
		checkResolution(doc.ResolutionDPI, method),
		checkBleed(doc.HasBleed, doc.BleedMM, method),
		checkFonts(doc.FontsEmbedded),
		checkInkCoverage(doc.TotalInkCoveragePercent),
		checkTransparency(doc.HasTransparency),
	}

	res := PreflightResult{Status: Pass, Checks: checks}
	counts := map[Status]int{}
	var failed []string
	for _, ch := range checks {
		counts[ch.Status]++
		if ch.Status.severity() > res.Status.severity() {
			res.Status = ch.Status
		}
		if ch.Status == Fail {
			failed = append(failed, ch.Name)
		}
	}
	res.Summary = fmt.Sprintf("%d passed, %d warnings, %d failed out of %d checks.",
		counts[Pass], counts[Warning], counts[Fail], len(checks))
	switch res.Status {
	case Pass:
		res.Recommendation = "File is ready for production."
	case Warning:
		res.Recommendation = "Review warnings before sending to press."
	default:
		res.Recommendation = "Fix failed checks before production: " + strings.Join(failed, ", ") + "."
	}
	return res, nil
}

func checkColorMode(mode string, m Method) Check {
	ch := Check{Name: "color_mode", Status: Pass}
	switch {
	case mode == "grayscale":
		ch.Message = "Grayscale is acceptable for all methods."
	case m != Digital && mode == "rgb":
		ch.Status = Fail
		ch.Message = fmt.Sprintf("%s is not suitable for %s; convert to CMYK.", strings.ToUpper(mode), m)
	case m == Digital && mode == "rgb":
		ch.Status = Warning
		ch.Message = "RGB can work for digital but CMYK is preferred for color accuracy."
	default:
		ch.Message = fmt.Sprintf("%s is correct for %s.", strings.ToUpper(mode), m)
	}
	return ch
}

func checkResolution(dpi float64, m Method) Check {
	want := minDPI[m]
	switch {
	case dpi >= want:
		return Check{"resolution", Pass, fmt.Sprintf("%v DPI meets the minimum of %v DPI for %s.", dpi, want, m)}
	case dpi >= want*0.75:
		return Check{"resolution", Warning, fmt.Sprintf("%v DPI is below the recommended %v DPI for %s; may appear soft.", dpi, want, m)}
	default:
		return Check{"resolution", Fail, fmt.Sprintf("%v DPI is too low for %s (minimum %v DPI).", dpi, m, want)}
	}
}

func checkBleed(hasBleed bool, bleedMM float64, m Method) Check {
	want := minBleedMM[m]
	switch {
	case !hasBleed:
		return Check{"bleed", Fail, fmt.Sprintf("No bleed detected; %s requires at least %v mm bleed.", m, want)}
	case bleedMM >= want:
		return Check{"bleed", Pass, fmt.Sprintf("%v mm bleed meets the %v mm minimum for %s.", bleedMM, want, m)}
	default:
		return Check{"bleed", Warning, fmt.Sprintf("%v mm bleed is below the recommended %v mm for %s.", bleedMM, want, m)}
	}
}

func checkFonts(embedded bool) Check {
	if embedded {
		return Check{"fonts", Pass, "All fonts are embedded."}
	}
	return Check{"fonts", Fail, "Fonts are not embedded; this will cause text rendering issues."}
}

func checkInkCoverage(tac float64) Check {
	switch {
	case tac <= inkCoverageSafe:
		return Check{"ink_coverage", Pass, fmt.Sprintf("Total ink coverage %v%% is within safe limits.", tac)}
	case tac <= inkCoverageMax:
		return Check{"ink_coverage", Warning, fmt.Sprintf("Total ink coverage %v%% exceeds %d%%; may cause drying issues.", tac, inkCoverageSafe)}
	default:
		return Check{"ink_coverage", Fail, fmt.Sprintf("Total ink coverage %v%% exceeds %d%%; risk of smearing and set-off.", tac, inkCoverageMax)}
	}
}

func checkTransparency(has bool) Check {
	if !has {
		return Check{"transparency", Pass, "No transparency detected."}
	}
	return Check{"transparency", Warning, "File contains transparency; flatten before sending to press to avoid rendering issues."}
}
