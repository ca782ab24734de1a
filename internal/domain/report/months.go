package report

import (
	"fmt"
	"time"
)

// MonthKey identifies one calendar month of roll-up data.
type MonthKey struct {
	Year  int
	Month int
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// MonthsInRange expands an inclusive date range into every (year, month) pair
// it touches, in order. A range that starts or ends mid-month still includes
// that month; interior years contribute all twelve.
func MonthsInRange(start, end time.Time) ([]MonthKey, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	year, month := start.Year(), int(start.Month())
	endYear, endMonth := end.Year(), int(end.Month())

	var out []MonthKey
	for year < endYear || (year == endYear && month <= endMonth) {
		out = append(out, MonthKey{Year: year, Month: month})
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return out, nil
}
