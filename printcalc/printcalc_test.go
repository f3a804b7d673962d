package printcalc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/printcolor/api/colormath"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func wantField(t *testing.T, err error, field string) {
	t.Helper()
	var ve *colormath.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on %s, got %v", field, err)
	}
	if ve.Field != field {
		t.Errorf("error field = %q, want %q", ve.Field, field)
	}
}

func TestInkConsumption(t *testing.T) {
	cases := []struct {
		name     string
		w, h     float64
		coverage float64
		method   string
		qty      int
		want     InkResult
	}{
		{"offset square metre", 1000, 1000, 40, "offset", 100, InkResult{InkGrams: 60, InkKg: 0.06, CostEstimateUSD: 1.5}},
		{"digital", 1000, 1000, 100, "Digital", 10, InkResult{InkGrams: 6.5, InkKg: 0.0065, CostEstimateUSD: 0.52}},
		{"zero coverage", 210, 297, 0, "flexo", 500, InkResult{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := InkConsumption(tc.w, tc.h, tc.coverage, tc.method, tc.qty)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tc.want, got, approx); d != "" {
				t.Errorf("mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestInkConsumptionScreenUsesMostInk(t *testing.T) {
	screen, err := InkConsumption(500, 500, 50, "screen", 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"offset", "flexo", "gravure", "digital"} {
		other, err := InkConsumption(500, 500, 50, m, 10)
		if err != nil {
			t.Fatal(err)
		}
		if other.InkGrams >= screen.InkGrams {
			t.Errorf("%s uses %v g, screen %v g", m, other.InkGrams, screen.InkGrams)
		}
	}
}

func TestInkConsumptionValidation(t *testing.T) {
	_, err := InkConsumption(0, 100, 50, "offset", 1)
	wantField(t, err, "width_mm")
	_, err = InkConsumption(100, 100, 101, "offset", 1)
	wantField(t, err, "coverage_percent")
	_, err = InkConsumption(100, 100, 50, "offset", 0)
	wantField(t, err, "quantity")
	_, err = InkConsumption(100, 100, 50, "letterpress", 1)
	wantField(t, err, "print_method")
	if !strings.Contains(err.Error(), "digital, flexo, gravure, offset, screen") {
		t.Errorf("choices missing from %q", err)
	}
}

func TestEstimateCost(t *testing.T) {
	base := CostJob{WidthMM: 1000, HeightMM: 1000, Quantity: 1000, NumColors: 4, PaperGSM: 100, Method: "offset"}

	got, err := EstimateCost(base)
	if err != nil {
		t.Fatal(err)
	}
	want := CostResult{
		InkCostUSD:     45,
		SetupCostUSD:   240,
		TotalCostUSD:   297,
		CostPerUnitUSD: 0.297,
		Breakdown:      CostBreakdown{Ink: 45, Plates: 140, Makeready: 100, RunCost: 12},
	}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("single-sided mismatch (-want +got):\n%s", d)
	}

	duplex := base
	duplex.Sides = 2
	got, err = EstimateCost(duplex)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(594.0, got.TotalCostUSD, approx); d != "" {
		t.Errorf("duplex total (-want +got):\n%s", d)
	}

	heavy := base
	heavy.PaperGSM = 350
	got, err = EstimateCost(heavy)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(18.0, got.Breakdown.RunCost, approx); d != "" {
		t.Errorf("heavy stock run cost (-want +got):\n%s", d)
	}
}

func TestEstimateCostDigitalHasNoSetup(t *testing.T) {
	got, err := EstimateCost(CostJob{WidthMM: 210, HeightMM: 297, Quantity: 50, NumColors: 4, PaperGSM: 90, Method: "digital"})
	if err != nil {
		t.Fatal(err)
	}
	if got.SetupCostUSD != 0 {
		t.Errorf("setup = %v", got.SetupCostUSD)
	}
}

func TestEstimateCostValidation(t *testing.T) {
	job := CostJob{WidthMM: 100, HeightMM: 100, Quantity: 10, NumColors: 4, PaperGSM: 100, Method: "offset", Sides: 3}
	_, err := EstimateCost(job)
	wantField(t, err, "sides")

	job.Sides = 1
	job.NumColors = 0
	_, err = EstimateCost(job)
	wantField(t, err, "num_colors")
}

func TestConvertPaperWeight(t *testing.T) {
	cases := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{100, "gsm", "lb_text", 67.56},
		{100, "lb_cover", "gsm", 270.8},
		{120, "GSM", "gsm", 120},
	}
	for _, tc := range cases {
		got, err := ConvertPaperWeight(tc.value, tc.from, tc.to)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(tc.want, got, approx); d != "" {
			t.Errorf("%v %s -> %s (-want +got):\n%s", tc.value, tc.from, tc.to, d)
		}
	}

	_, err := ConvertPaperWeight(100, "ream", "gsm")
	wantField(t, err, "from_unit")
	_, err = ConvertPaperWeight(-1, "gsm", "gsm")
	wantField(t, err, "value")
}

func TestBarcodeCoverage(t *testing.T) {
	got, err := BarcodeCoverage("EAN13", 50, 30, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	want := BarcodeResult{
		CoveragePercent:       52,
		RecommendedInk:        "Process Black (K: 100)",
		PrintMethodSuggestion: got.PrintMethodSuggestion,
		BarAreaMM2:            780,
		TotalAreaMM2:          1500,
	}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
	if !strings.HasPrefix(got.PrintMethodSuggestion, "digital") {
		t.Errorf("small modules should suggest digital, got %q", got.PrintMethodSuggestion)
	}

	qr, err := BarcodeCoverage("qr", 20, 20, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(qr.PrintMethodSuggestion, "offset") {
		t.Errorf("qr suggestion %q", qr.PrintMethodSuggestion)
	}

	full, err := BarcodeCoverage("code128", 40, 15, 1)
	if err != nil {
		t.Fatal(err)
	}
	if full.CoveragePercent != 100 {
		t.Errorf("coverage should cap at 100, got %v", full.CoveragePercent)
	}
}

func TestBarcodeCoverageValidation(t *testing.T) {
	_, err := BarcodeCoverage("qr", 20, 20, 0)
	wantField(t, err, "bar_density")
	_, err = BarcodeCoverage("pdf417", 20, 20, 0.5)
	wantField(t, err, "barcode_type")
}

func TestDotGainPeaksAtMidtone(t *testing.T) {
	if got := dotGain(50, 20); got != 55 {
		t.Errorf("dotGain(50, 20) = %v", got)
	}
	for _, v := range []float64{0, 100} {
		if got := dotGain(v, 20); got != v {
			t.Errorf("dotGain(%v, 20) = %v", v, got)
		}
	}
}

func TestSimulateSubstrate(t *testing.T) {
	in := colormath.CMYK{C: 50, M: 40, Y: 30, K: 10}

	glossy, err := SimulateSubstrate(in, "glossy_coated", "offset", colormath.CIE76)
	if err != nil {
		t.Fatal(err)
	}
	kraft, err := SimulateSubstrate(in, "Kraft", "flexo", colormath.CIE76)
	if err != nil {
		t.Fatal(err)
	}
	if kraft.DeltaEFromOriginal <= glossy.DeltaEFromOriginal {
		t.Errorf("kraft shift %v should exceed glossy %v", kraft.DeltaEFromOriginal, glossy.DeltaEFromOriginal)
	}
	if kraft.Substrate != "kraft" || kraft.PrintMethod != "flexo" {
		t.Errorf("labels %q %q", kraft.Substrate, kraft.PrintMethod)
	}
	if glossy.Original.Hex == "" || glossy.Simulated.Hex == "" {
		t.Errorf("missing preview hex: %+v", glossy)
	}
	if glossy.Simulated.C < in.C || glossy.Simulated.K < in.K {
		t.Errorf("simulation should not lighten: %+v", glossy.Simulated)
	}
	if d := cmp.Diff(SubstrateAdjustments{
		DotGainApplied:   12,
		AbsorptionKAdded: 1.8,
		PaperWhiteness:   95,
	}, glossy.Adjustments, approx); d != "" {
		t.Errorf("adjustments (-want +got):\n%s", d)
	}
}

func TestSimulateSubstrateWhitePaper(t *testing.T) {
	got, err := SimulateSubstrate(colormath.CMYK{}, "glossy_coated", "digital", colormath.CIE76)
	if err != nil {
		t.Fatal(err)
	}
	if got.Simulated.K != 2 {
		t.Errorf("absorption on blank paper: K = %v", got.Simulated.K)
	}
	if !strings.HasPrefix(got.Warning, "Minimal") {
		t.Errorf("warning %q", got.Warning)
	}
}

func TestSimulateSubstrateValidation(t *testing.T) {
	_, err := SimulateSubstrate(colormath.CMYK{}, "vinyl", "offset", colormath.CIE76)
	wantField(t, err, "substrate")
	_, err = SimulateSubstrate(colormath.CMYK{}, "uncoated", "gravure", colormath.CIE76)
	wantField(t, err, "print_method")
	_, err = SimulateSubstrate(colormath.CMYK{C: 120}, "uncoated", "offset", colormath.CIE76)
	wantField(t, err, "c")
}

func readyDocument() Document {
	return Document{
		ColorMode:               "CMYK",
		ResolutionDPI:           300,
		HasBleed:                true,
		BleedMM:                 3,
		WidthMM:                 210,
		HeightMM:                297,
		FontsEmbedded:           true,
		TotalInkCoveragePercent: 280,
		TargetMethod:            "offset",
	}
}

func TestPreflightReady(t *testing.T) {
	got, err := Preflight(readyDocument())
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != Pass {
		t.Errorf("status %s: %+v", got.Status, got.Checks)
	}
	if got.Summary != "6 passed, 0 warnings, 0 failed out of 6 checks." {
		t.Errorf("summary %q", got.Summary)
	}
	if got.Recommendation != "File is ready for production." {
		t.Errorf("recommendation %q", got.Recommendation)
	}
	var names []string
	for _, c := range got.Checks {
		names = append(names, c.Name)
	}
	want := []string{"color_mode", "resolution", "bleed", "fonts", "ink_coverage", "transparency"}
	if d := cmp.Diff(want, names); d != "" {
		t.Errorf("check order (-want +got):\n%s", d)
	}
}

func TestPreflightStatuses(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Document)
		check  string
		want   Status
	}{
		{"rgb for offset", func(d *Document) { d.ColorMode = "rgb" }, "color_mode", Fail},
		{"rgb for digital", func(d *Document) { d.ColorMode = "rgb"; d.TargetMethod = "digital" }, "color_mode", Warning},
		{"grayscale", func(d *Document) { d.ColorMode = "grayscale" }, "color_mode", Pass},
		{"soft resolution", func(d *Document) { d.ResolutionDPI = 240 }, "resolution", Warning},
		{"low resolution", func(d *Document) { d.ResolutionDPI = 150 }, "resolution", Fail},
		{"digital resolution", func(d *Document) { d.ResolutionDPI = 150; d.TargetMethod = "digital" }, "resolution", Pass},
		{"no bleed", func(d *Document) { d.HasBleed = false }, "bleed", Fail},
		{"thin bleed", func(d *Document) { d.BleedMM = 1 }, "bleed", Warning},
		{"fonts", func(d *Document) { d.FontsEmbedded = false }, "fonts", Fail},
		{"heavy ink", func(d *Document) { d.TotalInkCoveragePercent = 320 }, "ink_coverage", Warning},
		{"excess ink", func(d *Document) { d.TotalInkCoveragePercent = 360 }, "ink_coverage", Fail},
		{"transparency", func(d *Document) { d.HasTransparency = true }, "transparency", Warning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := readyDocument()
			tc.mutate(&doc)
			got, err := Preflight(doc)
			if err != nil {
				t.Fatal(err)
			}
			for _, c := range got.Checks {
				if c.Name == tc.check && c.Status != tc.want {
					t.Errorf("%s = %s (%s)", c.Name, c.Status, c.Message)
				}
			}
			if got.Status != tc.want {
				t.Errorf("overall status %s, want %s", got.Status, tc.want)
			}
		})
	}
}

func TestPreflightWorstWins(t *testing.T) {
	doc := readyDocument()
	doc.ColorMode = "rgb"
	doc.FontsEmbedded = false
	doc.HasTransparency = true
	got, err := Preflight(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != Fail {
		t.Errorf("status %s", got.Status)
	}
	if got.Summary != "3 passed, 1 warnings, 2 failed out of 6 checks." {
		t.Errorf("summary %q", got.Summary)
	}
	if got.Recommendation != "Fix failed checks before production: color_mode, fonts." {
		t.Errorf("recommendation %q", got.Recommendation)
	}
}

func TestPreflightValidation(t *testing.T) {
	doc := readyDocument()
	doc.TargetMethod = "inkjet"
	_, err := Preflight(doc)
	wantField(t, err, "target_method")

	doc = readyDocument()
	doc.ColorMode = "hsl"
	_, err = Preflight(doc)
	wantField(t, err, "color_mode")

	doc = readyDocument()
	doc.ResolutionDPI = 0
	_, err = Preflight(doc)
	wantField(t, err, "resolution_dpi")
}
