package shared

import (
	"fmt"
	"time"
)

// ISODate is the only date layout the API accepts. Report ranges and task
// due dates are day-granular throughout, so timestamp inputs are rejected
// instead of being silently truncated to midnight.
const ISODate = "2006-01-02"

// ParseDate parses an ISODate value at UTC midnight. Empty input yields the
// zero time so optional fields can be skipped by the caller.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation(ISODate, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD form", value)
	}
	return parsed, nil
}
