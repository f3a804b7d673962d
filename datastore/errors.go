package datastore

import (
	"errors"
	"fmt"
)

type NoRowsError struct {
	NoRows bool
	Err    error
}

func (nr NoRowsError) Error() string {
	return fmt.Sprintf("%v: no rows returned for scan: %v", nr.NoRows, nr.Err)
}

func (nr NoRowsError) Unwrap() error {
	return nr.Err
}

// IsNoRows reports whether err came from a lookup that matched nothing.
func IsNoRows(err error) bool {
	var nr NoRowsError
	return errors.As(err, &nr) && nr.NoRows
}
