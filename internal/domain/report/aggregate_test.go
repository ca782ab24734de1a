package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"workdesk/internal/domain/performance"
)

func TestAggregateRecordsSumsAcrossMonths(t *testing.T) {
	records := []performance.MonthlyRecord{
		{EmployeeID: "e1", Year: 2023, Month: 11, TotalAssigned: 5, CompletedOnTime: 3, CompletedLate: 1, Overdue: 1},
		{EmployeeID: "e1", Year: 2023, Month: 12, TotalAssigned: 5, CompletedOnTime: 5},
		{EmployeeID: "e2", Year: 2024, Month: 1, TotalAssigned: 4, CompletedOnTime: 1, CompletedLate: 1, Overdue: 2},
	}

	aggs := AggregateRecords([]string{"e1", "e2", "e3"}, records)

	assert.Equal(t, Aggregate{
		EmployeeID: "e1", Total: 10, CompletedOnTime: 8, CompletedLate: 1,
		Completed: 9, Pending: 1, Overdue: 1,
	}, aggs[0])
	assert.Equal(t, Aggregate{
		EmployeeID: "e2", Total: 4, CompletedOnTime: 1, CompletedLate: 1,
		Completed: 2, Pending: 2, Overdue: 2,
	}, aggs[1])
	assert.Equal(t, Aggregate{EmployeeID: "e3"}, aggs[2],
		"employee without records gets an all-zero aggregate")
}

func TestAggregateRecordsIgnoresOutOfScopeRows(t *testing.T) {
	records := []performance.MonthlyRecord{
		{EmployeeID: "stranger", Year: 2024, Month: 1, TotalAssigned: 99, CompletedOnTime: 99},
	}
	aggs := AggregateRecords([]string{"e1"}, records)
	assert.Equal(t, Aggregate{EmployeeID: "e1"}, aggs[0])
}

func TestAggregateRecordsPendingNeverNegative(t *testing.T) {
	// Defect upstream: completed above total. Pending clamps at zero.
	records := []performance.MonthlyRecord{
		{EmployeeID: "e1", Year: 2024, Month: 1, TotalAssigned: 2, CompletedOnTime: 2, CompletedLate: 1},
	}
	aggs := AggregateRecords([]string{"e1"}, records)
	assert.Equal(t, 0, aggs[0].Pending)
	assert.Equal(t, 3, aggs[0].Completed)
}
