package printcalc

import (
	"fmt"
	"strings"

	"github.com/printcolor/api/colormath"
)

// gsm per unit of each paper weight scale.
var toGSM = map[string]float64{
	"gsm":      1.0,
	"lb_text":  1.4802,
	"lb_cover": 2.7080,
}

// ConvertPaperWeight converts between gsm, lb_text and lb_cover, rounded to
// two decimals.
func ConvertPaperWeight(value float64, from, to string) (float64, error) {
	if err := positive("value", value); err != nil {
		return 0, err
	}
	f, ok := toGSM[strings.ToLower(from)]
	if !ok {
		return 0, &colormath.ValidationError{Field: "from_unit", Reason: fmt.Sprintf("unknown unit %q, choose from: gsm, lb_text, lb_cover", from)}
	}
	t, ok := toGSM[strings.ToLower(to)]
	if !ok {
		return 0, &colormath.ValidationError{Field: "to_unit", Reason: fmt.Sprintf("unknown unit %q, choose from: gsm, lb_text, lb_cover", to)}
	}
	return colormath.Round2(value * f / t), nil
}
