package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsInRangeSpansYearBoundary(t *testing.T) {
	months, err := MonthsInRange(date(2023, time.November, 15), date(2024, time.February, 3))
	require.NoError(t, err)

	assert.Equal(t, []MonthKey{
		{2023, 11},
		{2023, 12},
		{2024, 1},
		{2024, 2},
	}, months)
}

func TestMonthsInRangeSingleMonth(t *testing.T) {
	months, err := MonthsInRange(date(2024, time.June, 1), date(2024, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, []MonthKey{{2024, 6}}, months)
}

func TestMonthsInRangeFullInteriorYear(t *testing.T) {
	months, err := MonthsInRange(date(2022, time.December, 31), date(2024, time.January, 1))
	require.NoError(t, err)
	require.Len(t, months, 14)
	assert.Equal(t, MonthKey{2022, 12}, months[0])
	assert.Equal(t, MonthKey{2023, 12}, months[12])
	assert.Equal(t, MonthKey{2024, 1}, months[13])
}

func TestMonthsInRangeRejectsInvertedRange(t *testing.T) {
	_, err := MonthsInRange(date(2024, time.March, 1), date(2024, time.February, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}
