package noaa

import (
	"errors"
	"fmt"
)

// NetworkError reports a failed round trip to NOAA: the transport failed, the
// request timed out or was canceled, or the service answered with a
// non-success status.
type NetworkError struct {
	URL string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("noaa: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("noaa: request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataFormatError reports a response that could not be turned into
// predictions.
type DataFormatError struct {
	// Field is the offending record field, or empty when the problem is the
	// body as a whole.
	Field string
	// Index of the offending record.
	Index int
	Err   error
}

func (e *DataFormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("noaa: malformed response: %v", e.Err)
	}
	return fmt.Sprintf("noaa: malformed prediction %d field %q: %v", e.Index, e.Field, e.Err)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

var errNoPredictions = errors.New("response has no predictions field")

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsDataFormatError reports whether err is or wraps a *DataFormatError.
func IsDataFormatError(err error) bool {
	var de *DataFormatError
	return errors.As(err, &de)
}
