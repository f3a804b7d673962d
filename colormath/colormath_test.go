package colormath

import (
	"math"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCMYKToRGB(t *testing.T) {
	cases := []struct {
		name string
		in   CMYK
		want RGB
	}{
		{"white", CMYK{}, RGB{255, 255, 255}},
		{"black", CMYK{K: 100}, RGB{0, 0, 0}},
		{"cyan", CMYK{C: 100}, RGB{0, 255, 255}},
		{"485", CMYK{0, 95, 100, 0}, RGB{255, 13, 0}},
		{"rich black", CMYK{60, 40, 40, 100}, RGB{0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CMYKToRGB(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("CMYKToRGB(%v) mismatch (-want +got):\n%s", tc.in, d)
			}
		})
	}
}

func TestCMYKToRGBMidGray(t *testing.T) {
	got, err := CMYKToRGB(CMYK{K: 50})
	if err != nil {
		t.Fatal(err)
	}
	if got.R != got.G || got.G != got.B {
		t.Errorf("expected neutral gray, got %v", got)
	}
	if got.R < 127 || got.R > 128 {
		t.Errorf("expected 127 or 128, got %d", got.R)
	}
}

func TestCMYKToRGBRejectsOutOfRange(t *testing.T) {
	for _, in := range []CMYK{
		{C: -1},
		{M: 101},
		{Y: 100.5},
		{K: math.NaN()},
	} {
		_, err := CMYKToRGB(in)
		if !IsValidation(err) {
			t.Errorf("CMYKToRGB(%v): expected ValidationError, got %v", in, err)
		}
	}
}

func TestRangeSweep(t *testing.T) {
	hexRe := regexp.MustCompile(`^#[0-9A-F]{6}$`)
	for c := 0.0; c <= 100; c += 12.5 {
		for k := 0.0; k <= 100; k += 25 {
			in := CMYK{C: c, M: 100 - c, Y: c / 2, K: k}
			rgb, err := CMYKToRGB(in)
			if err != nil {
				t.Fatal(err)
			}
			for _, v := range []int{rgb.R, rgb.G, rgb.B} {
				if v < 0 || v > 255 {
					t.Fatalf("%v: channel %d out of range", in, v)
				}
			}
			hex, err := RGBToHex(rgb)
			if err != nil {
				t.Fatal(err)
			}
			if !hexRe.MatchString(hex) {
				t.Errorf("%v: bad hex %q", in, hex)
			}
		}
	}
}

func TestRGBToHex(t *testing.T) {
	got, err := RGBToHex(RGB{218, 41, 28})
	if err != nil {
		t.Fatal(err)
	}
	if got != "#DA291C" {
		t.Errorf("got %q", got)
	}
	if _, err := RGBToHex(RGB{256, 0, 0}); !IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if _, err := RGBToHex(RGB{0, -1, 0}); !IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestHexToRGB(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{"#DA291C", RGB{218, 41, 28}},
		{"da291c", RGB{218, 41, 28}},
		{"#F00", RGB{255, 0, 0}},
		{" #ffffff ", RGB{255, 255, 255}},
	}
	for _, tc := range cases {
		got, err := HexToRGB(tc.in)
		if err != nil {
			t.Errorf("HexToRGB(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("HexToRGB(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "#ZZZZZZ", "#12345", "#1234567", "red"} {
		if _, err := HexToRGB(bad); !IsValidation(err) {
			t.Errorf("HexToRGB(%q): expected ValidationError, got %v", bad, err)
		}
	}
}

func TestHexToCMYKRoundTrip(t *testing.T) {
	for _, hex := range []string{"#DA291C", "#000000", "#FFFFFF", "#336699", "#FF0D00"} {
		cmyk, err := HexToCMYK(hex)
		if err != nil {
			t.Fatal(err)
		}
		back, err := CMYKToHex(cmyk)
		if err != nil {
			t.Fatal(err)
		}
		if back != hex {
			t.Errorf("%s -> %v -> %s", hex, cmyk, back)
		}
	}
}

func TestDeltaE(t *testing.T) {
	a := CMYK{50, 30, 20, 10}
	b := CMYK{0, 95, 100, 0}

	same, err := DeltaE(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if same != 0 {
		t.Errorf("DeltaE(a, a) = %v, want 0", same)
	}

	ab, _ := DeltaE(a, b)
	ba, _ := DeltaE(b, a)
	if ab != ba {
		t.Errorf("not symmetric: %v != %v", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("expected positive distance, got %v", ab)
	}

	far, _ := DeltaE(CMYK{}, CMYK{100, 100, 100, 100})
	if far <= 6 || Interpret(far) != "poor — obvious difference" {
		t.Errorf("white vs black: %v (%s)", far, Interpret(far))
	}

	_, err = DeltaE(CMYK{}, CMYK{K: 101})
	var ve *ValidationError
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	ve = err.(*ValidationError)
	if ve.Field != "k2" {
		t.Errorf("field = %q, want k2", ve.Field)
	}
}

func TestMetricRGBEuclidean(t *testing.T) {
	d := RGBEuclidean.Distance(CMYK{}, CMYK{K: 100})
	want := math.Sqrt(3 * 255 * 255)
	if math.Abs(d-want) > 1e-9 {
		t.Errorf("got %v, want %v", d, want)
	}
	if m, err := ParseMetric("rgb"); err != nil || m != RGBEuclidean {
		t.Errorf("ParseMetric(rgb) = %v, %v", m, err)
	}
	if _, err := ParseMetric("cie2000"); !IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}

	de, err := RGBEuclidean.DeltaE(CMYK{}, CMYK{K: 100})
	if err != nil || de != d {
		t.Errorf("RGBEuclidean.DeltaE = %v, %v, want %v", de, err, d)
	}
	if _, err := RGBEuclidean.DeltaE(CMYK{C: -1}, CMYK{}); !IsValidation(err) || err.(*ValidationError).Field != "c1" {
		t.Errorf("expected c1 ValidationError, got %v", err)
	}
}

func TestInterpret(t *testing.T) {
	cases := map[float64]string{
		0:    "excellent — imperceptible difference",
		2.99: "good — barely perceptible",
		3:    "fair — noticeable difference",
		6:    "poor — obvious difference",
	}
	for in, want := range cases {
		if got := Interpret(in); got != want {
			t.Errorf("Interpret(%v) = %q, want %q", in, got, want)
		}
	}
}
