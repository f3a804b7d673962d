package printcalc

import (
	"fmt"

	"github.com/printcolor/api/colormath"
)

// averageCoverage is the assumed ink coverage per color for cost estimates.
const averageCoverage = 0.30

type pressCosts struct {
	platePerColor float64
	makeready     float64
	runPer1000    float64
}

var pressCostTable = map[Method]pressCosts{
	Offset:  {35, 100, 12},
	Flexo:   {30, 80, 10},
	Gravure: {45, 150, 14},
	Screen:  {25, 50, 25},
	Digital: {0, 0, 60},
}

// CostBreakdown itemizes a job estimate in USD.
type CostBreakdown struct {
	Ink       float64 `json:"ink"`
	Plates    float64 `json:"plates"`
	Makeready float64 `json:"makeready"`
	RunCost   float64 `json:"run_cost"`
}

// CostResult is a full job estimate in USD.
type CostResult struct {
	InkCostUSD     float64       `json:"ink_cost_usd"`
	SetupCostUSD   float64       `json:"setup_cost_usd"`
	TotalCostUSD   float64       `json:"total_cost_usd"`
	CostPerUnitUSD float64       `json:"cost_per_unit_usd"`
	Breakdown      CostBreakdown `json:"breakdown"`
}

// CostJob describes the job to price.
type CostJob struct {
	WidthMM   float64
	HeightMM  float64
	Quantity  int
	NumColors int
	PaperGSM  float64
	Method    string
	Sides     int
}

// EstimateCost prices ink, plates, makeready and press time for a job.
// Paper heavier than 100 gsm runs slower and raises the run cost.
func EstimateCost(job CostJob) (CostResult, error) {
	if err := positive("width_mm", job.WidthMM); err != nil {
		return CostResult{}, err
	}
	if err := positive("height_mm", job.HeightMM); err != nil {
		return CostResult{}, err
	}
	if job.Quantity <= 0 {
		return CostResult{}, &colormath.ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be positive, got %d", job.Quantity)}
	}
	if job.NumColors <= 0 {
		return CostResult{}, &colormath.ValidationError{Field: "num_colors", Reason: fmt.Sprintf("must be positive, got %d", job.NumColors)}
	}
	if err := positive("paper_gsm", job.PaperGSM); err != nil {
		return CostResult{}, err
	}
	if job.Sides == 0 {
		job.Sides = 1
	}
	if job.Sides != 1 && job.Sides != 2 {
		return CostResult{}, &colormath.ValidationError{Field: "sides", Reason: fmt.Sprintf("must be 1 or 2, got %d", job.Sides)}
	}
	m, err := ParseMethod(job.Method)
	if err != nil {
		return CostResult{}, err
	}

	rate, press := inkRates[m], pressCostTable[m]
	qty, colors, sides := float64(job.Quantity), float64(job.NumColors), float64(job.Sides)

	inkGrams := areaM2(job.WidthMM, job.HeightMM) * rate.gramsPerM2 * averageCoverage * qty * colors * sides
	ink := inkGrams / 1000 * rate.usdPerKg
	plates := press.platePerColor * colors * sides
	makeready := press.makeready * sides
	paperFactor := 1 + max(0, job.PaperGSM-100)/500
	run := press.runPer1000 * (qty / 1000) * paperFactor * sides
	total := ink + plates + makeready + run

	return CostResult{
		InkCostUSD:     colormath.Round2(ink),
		SetupCostUSD:   colormath.Round2(plates + makeready),
		TotalCostUSD:   colormath.Round2(total),
		CostPerUnitUSD: round(total/qty, 4),
		Breakdown: CostBreakdown{
			Ink:       colormath.Round2(ink),
			Plates:    colormath.Round2(plates),
			Makeready: colormath.Round2(makeready),
			RunCost:   colormath.Round2(run),
		},
	}, nil
}
