package workbook

import (
	"errors"
	"fmt"
)

// DataLoadError is the pipeline's only fatal failure: the incident sheet is
// missing or the workbook itself cannot be read. Everything else degrades to
// an empty or partially-shaped table instead of erroring.
type DataLoadError struct {
	Reason string
	Cause  error
}

func (e *DataLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("workbook: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("workbook: %s", e.Reason)
}

func (e *DataLoadError) Unwrap() error {
	return e.Cause
}

// IsDataLoadError reports whether err is (or wraps) a DataLoadError.
func IsDataLoadError(err error) bool {
	var dle *DataLoadError
	return errors.As(err, &dle)
}
