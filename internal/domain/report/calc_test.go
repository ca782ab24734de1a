package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workdesk/internal/domain/org"
)

func employee(id, name string, salary int64) org.User {
	return org.User{ID: id, Name: name, BaseSalary: decimal.NewFromInt(salary), Active: true}
}

func TestBuildRowWeightedScenario(t *testing.T) {
	// 8 on time + 1 late of 10 assigned, 1 overdue.
	agg := AggregateRecords([]string{"e1"}, nil)
	agg[0].Total = 10
	agg[0].CompletedOnTime = 8
	agg[0].CompletedLate = 1
	agg[0].Completed = 9
	agg[0].Pending = 1
	agg[0].Overdue = 1

	row := BuildRow(employee("e1", "Ada", 1000), "Engineering", agg[0])

	assert.Equal(t, 9, row.Completed)
	assert.Equal(t, 1, row.Pending)
	assert.InDelta(t, 90.0, row.Efficiency, 0.001)
	assert.InDelta(t, 88.89, row.Punctuality, 0.001)
	assert.InDelta(t, 89.56, row.Score, 0.001)
	assert.Equal(t, TierGood, row.Tier)
	assert.InDelta(t, 0.9, row.CompletionRatio, 0.001)
	assert.True(t, row.FinalSalary.Equal(decimal.NewFromInt(900)),
		"expected final salary 900, got %s", row.FinalSalary)
	assert.Contains(t, row.Explanation, "9 of 10")
}

func TestBuildRowZeroTasksIsFullyCompliant(t *testing.T) {
	row := BuildRow(employee("e1", "Bea", 2500), "", Aggregate{EmployeeID: "e1"})

	assert.Equal(t, 100.0, row.Score)
	assert.Equal(t, TierOutstanding, row.Tier)
	assert.Equal(t, 0.0, row.Efficiency)
	assert.Equal(t, 100.0, row.Punctuality)
	assert.True(t, row.FinalSalary.Equal(decimal.NewFromInt(2500)),
		"zero-task employee keeps full base salary, got %s", row.FinalSalary)
}

func TestBuildRowInvariants(t *testing.T) {
	cases := []Aggregate{
		{Total: 0},
		{Total: 5, CompletedOnTime: 0, CompletedLate: 0, Completed: 0, Pending: 5},
		{Total: 5, CompletedOnTime: 2, CompletedLate: 3, Completed: 5},
		{Total: 20, CompletedOnTime: 7, CompletedLate: 4, Completed: 11, Pending: 9, Overdue: 3},
		{Total: 1, CompletedOnTime: 1, Completed: 1},
	}

	base := decimal.NewFromInt(3333)
	for _, agg := range cases {
		emp := org.User{ID: "x", Name: "X", BaseSalary: base, Active: true}
		row := BuildRow(emp, "", agg)

		assert.True(t, row.FinalSalary.GreaterThanOrEqual(decimal.Zero),
			"final salary negative for %+v", agg)
		assert.True(t, row.FinalSalary.LessThanOrEqual(base),
			"final salary above base for %+v", agg)
		assert.Equal(t, row.CompletedOnTime+row.CompletedLate, row.Completed)
		assert.GreaterOrEqual(t, row.Pending, 0)
		assert.GreaterOrEqual(t, row.Efficiency, 0.0)
		assert.LessOrEqual(t, row.Efficiency, 100.0)
		assert.GreaterOrEqual(t, row.Punctuality, 0.0)
		assert.LessOrEqual(t, row.Punctuality, 100.0)
	}
}

func TestScoreMonotonicInOnTimeCount(t *testing.T) {
	// Fixed total and completed; shifting late -> on time never lowers the score.
	prev := -1.0
	for onTime := 0; onTime <= 8; onTime++ {
		agg := Aggregate{
			Total:           10,
			CompletedOnTime: onTime,
			CompletedLate:   8 - onTime,
			Completed:       8,
			Pending:         2,
		}
		row := BuildRow(employee("e1", "Cid", 1000), "", agg)
		require.GreaterOrEqual(t, row.Score, prev, "score dropped at onTime=%d", onTime)
		prev = row.Score
	}
}

func TestTierBandsAreContiguous(t *testing.T) {
	cases := []struct {
		score float64
		tier  string
	}{
		{100, TierOutstanding},
		{90, TierOutstanding},
		{89.99, TierGood},
		{75, TierGood},
		{74.99, TierFair},
		{60, TierFair},
		{59.99, TierInsufficient},
		{0, TierInsufficient},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, tierFor(tc.score), "score %v", tc.score)
	}
}

func TestTierDecidedBeforeDisplayRounding(t *testing.T) {
	// 14999 of 20000 completions on time: the exact score is 89.998, which
	// displays as 90.00 but sits below the top band's cutoff.
	agg := Aggregate{Total: 20000, Completed: 20000, CompletedOnTime: 14999, CompletedLate: 5001}
	row := BuildRow(employee("e1", "Dot", 1000), "", agg)

	assert.Equal(t, 90.0, row.Score)
	assert.Equal(t, TierGood, row.Tier)
}

func TestSortRowsDescendingFinalPayStableTies(t *testing.T) {
	rows := []Row{
		{EmployeeID: "a", FinalSalary: decimal.NewFromInt(500)},
		{EmployeeID: "b", FinalSalary: decimal.NewFromInt(900)},
		{EmployeeID: "c", FinalSalary: decimal.NewFromInt(500)},
		{EmployeeID: "d", FinalSalary: decimal.NewFromInt(1200)},
	}
	SortRows(rows)

	got := []string{rows[0].EmployeeID, rows[1].EmployeeID, rows[2].EmployeeID, rows[3].EmployeeID}
	assert.Equal(t, []string{"d", "b", "a", "c"}, got, "ties must keep input order")
}
