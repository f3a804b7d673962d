package pantone

import (
	"strings"
	"testing"

	"github.com/printcolor/api/colormath"
)

func TestClassifyExactMatchIsSpot(t *testing.T) {
	cl := NewClassifier(NewSearcher(mustEmbedded(t), colormath.CIE76), DefaultPolicy())
	got, err := cl.Classify([]colormath.CMYK{{M: 95, Y: 100}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Spot) != 1 || len(got.Process) != 0 {
		t.Fatalf("spot %d, process %d", len(got.Spot), len(got.Process))
	}
	s := got.Spot[0]
	if s.NearestPantone != "Pantone 485 C" || s.DeltaE != 0 {
		t.Errorf("nearest %s at %v", s.NearestPantone, s.DeltaE)
	}
	if s.Hex != "#FF0D00" {
		t.Errorf("hex %s", s.Hex)
	}
	if !strings.HasPrefix(s.Reason, "Close match to Pantone 485 C (Delta E = 0)") {
		t.Errorf("reason %q", s.Reason)
	}
}

func sparseClassifier(t *testing.T, workers int) *Classifier {
	t.Helper()
	c, err := NewCatalog([]Record{
		{Name: "Pantone 485 C", M: 95, Y: 100},
		{Name: "Pantone Process Cyan C", C: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewClassifier(NewSearcher(c, colormath.CIE76), Policy{SpotThreshold: 5, Workers: workers})
}

func TestClassifyFarColorIsProcess(t *testing.T) {
	cl := sparseClassifier(t, 2)
	got, err := cl.Classify([]colormath.CMYK{{K: 100}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Process) != 1 || len(got.Spot) != 0 {
		t.Fatalf("spot %d, process %d", len(got.Spot), len(got.Process))
	}
	p := got.Process[0]
	if p.DeltaE <= 5 {
		t.Errorf("delta e %v", p.DeltaE)
	}
	if !strings.HasPrefix(p.Reason, "No close Pantone match (nearest: ") {
		t.Errorf("reason %q", p.Reason)
	}
}

func TestClassifyKeepsInputOrder(t *testing.T) {
	cl := sparseClassifier(t, 8)
	in := []colormath.CMYK{
		{M: 95, Y: 100},
		{K: 100},
		{C: 100},
		{K: 90},
		{C: 99},
	}
	got, err := cl.Classify(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Spot) != 3 || len(got.Process) != 2 {
		t.Fatalf("spot %d, process %d", len(got.Spot), len(got.Process))
	}
	wantSpot := []colormath.CMYK{in[0], in[2], in[4]}
	for i, s := range got.Spot {
		if s.Color != wantSpot[i] {
			t.Errorf("spot[%d] = %v, want %v", i, s.Color, wantSpot[i])
		}
	}
	if got.Process[0].Color != in[1] || got.Process[1].Color != in[3] {
		t.Errorf("process order %v, %v", got.Process[0].Color, got.Process[1].Color)
	}
	if !strings.Contains(got.Reasoning, "Analyzed 5 colors with Delta E threshold 5. 3 recommended as spot colors, 2 as process colors.") {
		t.Errorf("reasoning %q", got.Reasoning)
	}
}

func TestClassifyThresholdOverride(t *testing.T) {
	cl := sparseClassifier(t, 1)
	got, err := cl.ClassifyWithThreshold([]colormath.CMYK{{K: 100}}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Spot) != 1 {
		t.Errorf("expected the color to become spot with a huge threshold")
	}
}

func TestClassifyValidation(t *testing.T) {
	cl := sparseClassifier(t, 1)
	if _, err := cl.Classify(nil); !colormath.IsValidation(err) {
		t.Errorf("empty: expected ValidationError, got %v", err)
	}
	if _, err := cl.ClassifyWithThreshold([]colormath.CMYK{{}}, -1); !colormath.IsValidation(err) {
		t.Errorf("threshold: expected ValidationError, got %v", err)
	}
	_, err := cl.Classify([]colormath.CMYK{{}, {C: 200}})
	if !colormath.IsValidation(err) || !strings.HasPrefix(err.Error(), "color 1: ") {
		t.Errorf("bad color: got %v", err)
	}
}

func TestClassifyEmptyCatalog(t *testing.T) {
	c, err := NewCatalog(nil)
	if err != nil {
		t.Fatal(err)
	}
	cl := NewClassifier(NewSearcher(c, colormath.CIE76), DefaultPolicy())
	got, err := cl.Classify([]colormath.CMYK{{M: 95, Y: 100}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Process) != 1 || got.Process[0].NearestPantone != "" {
		t.Errorf("expected a process color with no swatch, got %+v", got)
	}
}
