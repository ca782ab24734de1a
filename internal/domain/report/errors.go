package report

import "errors"

// ErrInvalidRange means the caller supplied a start date after the end date.
// Not retryable without correcting the input.
var ErrInvalidRange = errors.New("report range start date is after end date")
