package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/printcolor/api/colormath"
	"github.com/printcolor/api/iccinfo"
	"github.com/printcolor/api/models"
	"github.com/printcolor/api/pantone"
	"github.com/printcolor/api/printcalc"
)

const (
	maxAlternatives    = 4
	defaultSearchLimit = 5
)

var errBadJSON = errors.New("malformed tool arguments")

type tool struct {
	models.Tool
	run func(app *Application, body []byte) (any, error)
}

var tools = []tool{
	{models.Tool{Name: "pantone_to_cmyk", Description: "Convert a Pantone color name to CMYK and HEX. Accepts 485C, pantone 485, 485 coated, Warm Red."}, (*Application).pantoneToCMYK},
	{models.Tool{Name: "pantone_search", Description: "Find the closest Pantone colors to a HEX or CMYK value, ranked by Delta E."}, (*Application).pantoneSearch},
	{models.Tool{Name: "cmyk_to_rgb", Description: "Convert CMYK (0-100) to RGB and HEX."}, (*Application).cmykToRGB},
	{models.Tool{Name: "rgb_to_hex", Description: "Format RGB (0-255) as an uppercase #RRGGBB string."}, (*Application).rgbToHex},
	{models.Tool{Name: "color_delta_e", Description: "Delta E difference between two CMYK colors, with interpretation. Uses the same metric as pantone_search."}, (*Application).colorDeltaE},
	{models.Tool{Name: "spot_color_separator", Description: "Split CMYK colors into spot and process candidates by distance to the nearest Pantone swatch."}, (*Application).spotColorSeparator},
	{models.Tool{Name: "ink_consumption", Description: "Estimate ink grams, kilograms and cost for a print job."}, (*Application).inkConsumption},
	{models.Tool{Name: "print_cost_estimate", Description: "Estimate ink, plate, makeready and run cost of a print job."}, (*Application).printCostEstimate},
	{models.Tool{Name: "paper_weight_convert", Description: "Convert paper weight between gsm, lb_text and lb_cover."}, (*Application).paperWeightConvert},
	{models.Tool{Name: "barcode_ink_coverage", Description: "Ink coverage and press suggestion for code128, ean13, qr and datamatrix barcodes."}, (*Application).barcodeInkCoverage},
	{models.Tool{Name: "substrate_simulator", Description: "Simulate dot gain, absorption and paper tint of a CMYK color on a substrate."}, (*Application).substrateSimulator},
	{models.Tool{Name: "preflight_check", Description: "Check a document's color mode, resolution, bleed, fonts, ink coverage and transparency."}, (*Application).preflightCheck},
	{models.Tool{Name: "icc_profile_info", Description: "Read header metadata and description from an ICC profile in the server's profile directory."}, (*Application).iccProfileInfo},
}

func findTool(name string) (tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return tool{}, false
}

// decodeArgs fills dst from a JSON object, leaving preset defaults in place
// for absent fields. An empty body decodes to no changes.
func decodeArgs(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}

// isInputError reports whether err was caused by the caller's arguments.
func isInputError(err error) bool {
	return colormath.IsValidation(err) ||
		errors.Is(err, errBadJSON) ||
		errors.Is(err, iccinfo.ErrNotFound) ||
		errors.Is(err, iccinfo.ErrTooSmall) ||
		errors.Is(err, iccinfo.ErrBadSignature) ||
		errors.Is(err, iccinfo.ErrNoLibrary) ||
		errors.Is(err, iccinfo.ErrOutsideLibrary) ||
		errors.Is(err, iccinfo.ErrNotRegular) ||
		errors.Is(err, iccinfo.ErrTooLarge)
}

func (app *Application) searchLimit() int {
	if app.Config.DefaultSearchLimit > 0 {
		return app.Config.DefaultSearchLimit
	}
	return defaultSearchLimit
}

func (app *Application) pantoneToCMYK(body []byte) (any, error) {
	var req models.PantoneLookupRequest
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PantoneName) == "" {
		return nil, &colormath.ValidationError{Field: "pantone_name", Reason: "must not be empty"}
	}

	resp := models.PantoneLookupResponse{Query: req.PantoneName}
	entries := app.Resolver.Resolve(req.PantoneName)
	if len(entries) == 0 {
		resp.Message = fmt.Sprintf("Unknown Pantone color: %q. Try a format like 'Pantone 485 C', '485C', or '485 coated'.", req.PantoneName)
		return resp, nil
	}

	best := entries[0]
	resp.Found = true
	resp.Name = best.Name
	resp.Finish = string(best.Finish)
	resp.C, resp.M, resp.Y, resp.K = best.CMYK.C, best.CMYK.M, best.CMYK.Y, best.CMYK.K
	resp.Hex = best.Hex
	for _, e := range entries[1:min(len(entries), maxAlternatives+1)] {
		resp.Alternatives = append(resp.Alternatives, e.Name)
	}
	return resp, nil
}

func (app *Application) pantoneSearch(body []byte) (any, error) {
	req := models.PantoneSearchRequest{Limit: app.searchLimit()}
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}

	var target pantone.Target
	switch {
	case strings.TrimSpace(req.HexColor) != "":
		target = pantone.HexTarget(req.HexColor)
	case req.C != nil && req.M != nil && req.Y != nil && req.K != nil:
		target = pantone.CMYKTarget(colormath.CMYK{C: *req.C, M: *req.M, Y: *req.Y, K: *req.K})
	default:
		return nil, &colormath.ValidationError{Reason: "provide either hex_color or all four CMYK values (c, m, y, k)"}
	}

	matches, err := app.Searcher.Search(target, req.Limit)
	if err != nil {
		return nil, err
	}
	resp := models.PantoneSearchResponse{
		SearchType: target.String(),
		Matches:    make([]models.PantoneMatch, 0, len(matches)),
	}
	for _, m := range matches {
		e := m.Entry
		resp.Matches = append(resp.Matches, models.PantoneMatch{
			Name:   e.Name,
			C:      e.CMYK.C,
			M:      e.CMYK.M,
			Y:      e.CMYK.Y,
			K:      e.CMYK.K,
			Hex:    e.Hex,
			DeltaE: colormath.Round2(m.DeltaE),
		})
	}
	return resp, nil
}

func (app *Application) cmykToRGB(body []byte) (any, error) {
	var c colormath.CMYK
	if err := decodeArgs(body, &c); err != nil {
		return nil, err
	}
	rgb, err := colormath.CMYKToRGB(c)
	if err != nil {
		return nil, err
	}
	hex, err := colormath.RGBToHex(rgb)
	if err != nil {
		return nil, err
	}
	return models.CMYKToRGBResponse{R: rgb.R, G: rgb.G, B: rgb.B, Hex: hex}, nil
}

func (app *Application) rgbToHex(body []byte) (any, error) {
	var rgb colormath.RGB
	if err := decodeArgs(body, &rgb); err != nil {
		return nil, err
	}
	hex, err := colormath.RGBToHex(rgb)
	if err != nil {
		return nil, err
	}
	return models.RGBToHexResponse{Hex: hex}, nil
}

func (app *Application) colorDeltaE(body []byte) (any, error) {
	var req models.DeltaERequest
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	de, err := app.Metric.DeltaE(
		colormath.CMYK{C: req.C1, M: req.M1, Y: req.Y1, K: req.K1},
		colormath.CMYK{C: req.C2, M: req.M2, Y: req.Y2, K: req.K2},
	)
	if err != nil {
		return nil, err
	}
	de = colormath.Round2(de)
	return models.DeltaEResponse{DeltaE: de, Interpretation: colormath.Interpret(de)}, nil
}

func (app *Application) spotColorSeparator(body []byte) (any, error) {
	req := models.SpotSeparatorRequest{Threshold: app.Classifier.Threshold()}
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	result, err := app.Classifier.ClassifyWithThreshold(req.Colors, req.Threshold)
	if err != nil {
		return nil, err
	}
	return models.SpotSeparatorResponse{
		SpotColors:    spotColors(result.Spot),
		ProcessColors: spotColors(result.Process),
		Reasoning:     result.Reasoning,
	}, nil
}

func spotColors(in []pantone.Classified) []models.SpotColor {
	out := make([]models.SpotColor, 0, len(in))
	for _, c := range in {
		out = append(out, models.SpotColor{
			C:              c.Color.C,
			M:              c.Color.M,
			Y:              c.Color.Y,
			K:              c.Color.K,
			Hex:            c.Hex,
			NearestPantone: c.NearestPantone,
			DeltaE:         c.DeltaE,
			Reason:         c.Reason,
		})
	}
	return out
}

func (app *Application) inkConsumption(body []byte) (any, error) {
	var req models.InkConsumptionRequest
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	return printcalc.InkConsumption(req.WidthMM, req.HeightMM, req.CoveragePercent, req.PrintMethod, req.Quantity)
}

func (app *Application) printCostEstimate(body []byte) (any, error) {
	req := models.PrintCostRequest{Sides: 1}
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	return printcalc.EstimateCost(printcalc.CostJob{
		WidthMM:   req.WidthMM,
		HeightMM:  req.HeightMM,
		Quantity:  req.Quantity,
		NumColors: req.NumColors,
		PaperGSM:  req.PaperGSM,
		Method:    req.PrintMethod,
		Sides:     req.Sides,
	})
}

func (app *Application) paperWeightConvert(body []byte) (any, error) {
	var req models.PaperWeightRequest
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	v, err := printcalc.ConvertPaperWeight(req.Value, req.FromUnit, req.ToUnit)
	if err != nil {
		return nil, err
	}
	return models.PaperWeightResponse{Value: v, FromUnit: req.FromUnit, ToUnit: req.ToUnit}, nil
}

func (app *Application) barcodeInkCoverage(body []byte) (any, error) {
	req := models.BarcodeCoverageRequest{BarDensity: 0.5}
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	return printcalc.BarcodeCoverage(req.BarcodeType, req.WidthMM, req.HeightMM, req.BarDensity)
}

func (app *Application) substrateSimulator(body []byte) (any, error) {
	req := models.SubstrateRequest{Substrate: "uncoated", PrintMethod: string(printcalc.Offset)}
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	c := colormath.CMYK{C: req.C, M: req.M, Y: req.Y, K: req.K}
	return printcalc.SimulateSubstrate(c, req.Substrate, req.PrintMethod, app.Metric)
}

func (app *Application) preflightCheck(body []byte) (any, error) {
	req := models.PreflightRequest{TotalInkCoveragePercent: 280, TargetMethod: string(printcalc.Offset)}
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	return printcalc.Preflight(printcalc.Document{
		ColorMode:               req.ColorMode,
		ResolutionDPI:           req.ResolutionDPI,
		HasBleed:                req.HasBleed,
		BleedMM:                 req.BleedMM,
		WidthMM:                 req.WidthMM,
		HeightMM:                req.HeightMM,
		FontsEmbedded:           req.FontsEmbedded,
		TotalInkCoveragePercent: req.TotalInkCoveragePercent,
		HasTransparency:         req.HasTransparency,
		TargetMethod:            req.TargetMethod,
	})
}

func (app *Application) iccProfileInfo(body []byte) (any, error) {
	var req models.ICCProfileRequest
	if err := decodeArgs(body, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FilePath) == "" {
		return nil, &colormath.ValidationError{Field: "file_path", Reason: "must not be empty"}
	}
	return app.Profiles.Read(req.FilePath)
}
