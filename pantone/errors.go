package pantone

import "fmt"

// DataIntegrityError means the reference table cannot be trusted. It is fatal
// at startup.
type DataIntegrityError struct {
	Row    int
	Name   string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.Row < 0 {
		return "pantone catalog: " + e.Reason
	}
	return fmt.Sprintf("pantone catalog: row %d (%q): %s", e.Row, e.Name, e.Reason)
}
