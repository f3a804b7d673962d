package models

import "github.com/printcolor/api/colormath"

// Tool is an entry of the tool catalogue served at /v1/tools.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PantoneLookupRequest struct {
	PantoneName string `json:"pantone_name"`
}

// PantoneLookupResponse is the best catalog entry for a name query. When
// Found is false only Query and Message are set.
type PantoneLookupResponse struct {
	Query        string   `json:"query"`
	Found        bool     `json:"found"`
	Name         string   `json:"name,omitempty"`
	Finish       string   `json:"finish,omitempty"`
	C            float64  `json:"c"`
	M            float64  `json:"m"`
	Y            float64  `json:"y"`
	K            float64  `json:"k"`
	Hex          string   `json:"hex,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// PantoneSearchRequest takes either HexColor or all four channels.
type PantoneSearchRequest struct {
	HexColor string   `json:"hex_color"`
	C        *float64 `json:"c"`
	M        *float64 `json:"m"`
	Y        *float64 `json:"y"`
	K        *float64 `json:"k"`
	Limit    int      `json:"limit"`
}

type PantoneMatch struct {
	Name   string  `json:"name"`
	C      float64 `json:"c"`
	M      float64 `json:"m"`
	Y      float64 `json:"y"`
	K      float64 `json:"k"`
	Hex    string  `json:"hex"`
	DeltaE float64 `json:"delta_e"`
}

type PantoneSearchResponse struct {
	Matches    []PantoneMatch `json:"matches"`
	SearchType string         `json:"search_type"`
}

type CMYKToRGBResponse struct {
	R   int    `json:"r"`
	G   int    `json:"g"`
	B   int    `json:"b"`
	Hex string `json:"hex"`
}

type RGBToHexResponse struct {
	Hex string `json:"hex"`
}

type DeltaERequest struct {
	C1 float64 `json:"c1"`
	M1 float64 `json:"m1"`
	Y1 float64 `json:"y1"`
	K1 float64 `json:"k1"`
	C2 float64 `json:"c2"`
	M2 float64 `json:"m2"`
	Y2 float64 `json:"y2"`
	K2 float64 `json:"k2"`
}

type DeltaEResponse struct {
	DeltaE         float64 `json:"delta_e"`
	Interpretation string  `json:"interpretation"`
}

type SpotSeparatorRequest struct {
	Colors    []colormath.CMYK `json:"colors"`
	Threshold float64          `json:"threshold"`
}

type SpotColor struct {
	C              float64 `json:"c"`
	M              float64 `json:"m"`
	Y              float64 `json:"y"`
	K              float64 `json:"k"`
	Hex            string  `json:"hex"`
	NearestPantone string  `json:"nearest_pantone"`
	DeltaE         float64 `json:"delta_e"`
	Reason         string  `json:"reason"`
}

type SpotSeparatorResponse struct {
	SpotColors    []SpotColor `json:"spot_colors"`
	ProcessColors []SpotColor `json:"process_colors"`
	Reasoning     string      `json:"reasoning"`
}

type InkConsumptionRequest struct {
	WidthMM         float64 `json:"width_mm"`
	HeightMM        float64 `json:"height_mm"`
	CoveragePercent float64 `json:"coverage_percent"`
	PrintMethod     string  `json:"print_method"`
	Quantity        int     `json:"quantity"`
}

type PrintCostRequest struct {
	WidthMM     float64 `json:"width_mm"`
	HeightMM    float64 `json:"height_mm"`
	Quantity    int     `json:"quantity"`
	NumColors   int     `json:"num_colors"`
	PaperGSM    float64 `json:"paper_gsm"`
	PrintMethod string  `json:"print_method"`
	Sides       int     `json:"sides"`
}

type PaperWeightRequest struct {
	Value    float64 `json:"value"`
	FromUnit string  `json:"from_unit"`
	ToUnit   string  `json:"to_unit"`
}

type PaperWeightResponse struct {
	Value    float64 `json:"value"`
	FromUnit string  `json:"from_unit"`
	ToUnit   string  `json:"to_unit"`
}

type BarcodeCoverageRequest struct {
	BarcodeType string  `json:"barcode_type"`
	WidthMM     float64 `json:"width_mm"`
	HeightMM    float64 `json:"height_mm"`
	BarDensity  float64 `json:"bar_density"`
}

type SubstrateRequest struct {
	C           float64 `json:"c"`
	M           float64 `json:"m"`
	Y           float64 `json:"y"`
	K           float64 `json:"k"`
	Substrate   string  `json:"substrate"`
	PrintMethod string  `json:"print_method"`
}

type PreflightRequest struct {
	ColorMode               string  `json:"color_mode"`
	ResolutionDPI           float64 `json:"resolution_dpi"`
	HasBleed                bool    `json:"has_bleed"`
	WidthMM                 float64 `json:"width_mm"`
	HeightMM                float64 `json:"height_mm"`
	FontsEmbedded           bool    `json:"fonts_embedded"`
	BleedMM                 float64 `json:"bleed_mm"`
	TotalInkCoveragePercent float64 `json:"total_ink_coverage_percent"`
	HasTransparency         bool    `json:"has_transparency"`
	TargetMethod            string  `json:"target_method"`
}

type ICCProfileRequest struct {
	FilePath string `json:"file_path"`
}
