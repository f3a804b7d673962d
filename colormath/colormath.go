// Package colormath converts between the CMYK, RGB and HEX color models used
// in print work and measures the perceptual distance between two colors.
//
// CMYK channels are percentages in [0,100]; RGB channels are 8-bit values in
// [0,255]. Every function is pure and safe for concurrent use.
package colormath

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// CMYK is a subtractive color, each channel a percentage in [0,100].
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// RGB is an 8-bit additive color.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var hexPattern = regexp.MustCompile(`^#?([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// Validate reports a ValidationError for the first channel outside [0,100].
func (c CMYK) Validate() error {
	return c.validate("")
}

func (c CMYK) validate(suffix string) error {
	for _, ch := range []struct {
		name  string
		value float64
	}{{"c", c.C}, {"m", c.M}, {"y", c.Y}, {"k", c.K}} {
		if math.IsNaN(ch.value) || ch.value < 0 || ch.value > 100 {
			return &ValidationError{
				Field:  ch.name + suffix,
				Reason: fmt.Sprintf("must be between 0 and 100, got %v", ch.value),
			}
		}
	}
	return nil
}

// String formats the color as cmyk(c,m,y,k).
func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%v,%v,%v,%v)", c.C, c.M, c.Y, c.K)
}

// Validate reports a ValidationError for the first channel outside [0,255].
func (rgb RGB) Validate() error {
	for _, ch := range []struct {
		name  string
		value int
	}{{"r", rgb.R}, {"g", rgb.G}, {"b", rgb.B}} {
		if ch.value < 0 || ch.value > 255 {
			return &ValidationError{
				Field:  ch.name,
				Reason: fmt.Sprintf("must be between 0 and 255, got %d", ch.value),
			}
		}
	}
	return nil
}

// CMYKToRGB converts with r = 255·(1-c)·(1-k) and likewise for g (m) and b (y),
// rounded to the nearest integer.
func CMYKToRGB(c CMYK) (RGB, error) {
	if err := c.Validate(); err != nil {
		return RGB{}, err
	}
	return cmykToRGB(c), nil
}

func cmykToRGB(c CMYK) RGB {
	k := 1 - c.K/100
	return RGB{
		R: channel255((1 - c.C/100) * k),
		G: channel255((1 - c.M/100) * k),
		B: channel255((1 - c.Y/100) * k),
	}
}

func channel255(f float64) int {
	v := int(math.Round(255 * f))
	return min(max(v, 0), 255)
}

// RGBToHex formats rgb as #RRGGBB, uppercase.
func RGBToHex(rgb RGB) (string, error) {
	if err := rgb.Validate(); err != nil {
		return "", err
	}
	return rgbToHex(rgb), nil
}

func rgbToHex(rgb RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// CMYKToHex is RGBToHex(CMYKToRGB(c)).
func CMYKToHex(c CMYK) (string, error) {
	rgb, err := CMYKToRGB(c)
	if err != nil {
		return "", err
	}
	return rgbToHex(rgb), nil
}

// HexToRGB parses #RRGGBB, RRGGBB or the #RGB shorthand.
func HexToRGB(s string) (RGB, error) {
	h := strings.TrimSpace(s)
	if !hexPattern.MatchString(h) {
		return RGB{}, &ValidationError{Field: "hex_color", Reason: fmt.Sprintf("invalid hex color: %q", s)}
	}
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	col, err := colorful.Hex(strings.ToLower(h))
	if err != nil {
		return RGB{}, &ValidationError{Field: "hex_color", Reason: fmt.Sprintf("invalid hex color: %q", s)}
	}
	r, g, b := col.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// RGBToCMYK is the naive inverse of CMYKToRGB: k = 1 - max(r,g,b)/255.
func RGBToCMYK(rgb RGB) (CMYK, error) {
	if err := rgb.Validate(); err != nil {
		return CMYK{}, err
	}
	r, g, b := float64(rgb.R)/255, float64(rgb.G)/255, float64(rgb.B)/255
	k := 1 - max(r, g, b)
	if k >= 1 {
		return CMYK{K: 100}, nil
	}
	return CMYK{
		C: 100 * (1 - r - k) / (1 - k),
		M: 100 * (1 - g - k) / (1 - k),
		Y: 100 * (1 - b - k) / (1 - k),
		K: 100 * k,
	}, nil
}

// HexToCMYK parses a hex color and converts it to CMYK.
func HexToCMYK(s string) (CMYK, error) {
	rgb, err := HexToRGB(s)
	if err != nil {
		return CMYK{}, err
	}
	return RGBToCMYK(rgb)
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round1 rounds x to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
