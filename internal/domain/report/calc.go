package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"workdesk/internal/domain/org"
)

const (
	TierOutstanding  = "Outstanding"
	TierGood         = "Good"
	TierFair         = "Fair"
	TierInsufficient = "Insufficient"
)

// Score weights: efficiency dominates punctuality 60/40.
const (
	efficiencyWeight  = 0.6
	punctualityWeight = 0.4
)

// Row is the computed, ephemeral result for one employee. Never persisted.
type Row struct {
	EmployeeID      string          `json:"employeeId"`
	Name            string          `json:"name"`
	Department      string          `json:"department"`
	Total           int             `json:"total"`
	Completed       int             `json:"completed"`
	CompletedOnTime int             `json:"completedOnTime"`
	CompletedLate   int             `json:"completedLate"`
	Pending         int             `json:"pending"`
	Overdue         int             `json:"overdue"`
	Efficiency      float64         `json:"efficiency"`
	Punctuality     float64         `json:"punctuality"`
	CompletionRatio float64         `json:"completionRatio"`
	Score           float64         `json:"score"`
	Tier            string          `json:"tier"`
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	FinalSalary     decimal.Decimal `json:"finalSalary"`
	Explanation     string          `json:"explanation"`
}

// BuildRow converts one employee aggregate into a report row.
//
// An employee with zero assigned tasks is fully compliant by policy: score 100,
// Outstanding, full base salary. There is nothing to penalize.
func BuildRow(emp org.User, departmentName string, agg Aggregate) Row {
	row := Row{
		EmployeeID:      emp.ID,
		Name:            emp.Name,
		Department:      departmentName,
		Total:           agg.Total,
		Completed:       agg.Completed,
		CompletedOnTime: agg.CompletedOnTime,
		CompletedLate:   agg.CompletedLate,
		Pending:         agg.Pending,
		Overdue:         agg.Overdue,
		BaseSalary:      emp.BaseSalary,
	}

	var efficiency, punctuality float64
	if agg.Total > 0 {
		efficiency = float64(agg.Completed) / float64(agg.Total) * 100
	}
	if agg.Completed > 0 {
		punctuality = float64(agg.CompletedOnTime) / float64(agg.Completed) * 100
	} else {
		// No completed tasks means nothing was late.
		punctuality = 100
	}

	score := efficiency*efficiencyWeight + punctuality*punctualityWeight
	if agg.Total == 0 {
		score = 100
	}

	row.Efficiency = round2(efficiency)
	row.Punctuality = round2(punctuality)
	row.Score = round2(score)
	// The band is decided by the exact score; rounding is presentation only.
	// A true 89.998 displays as 90.00 but has not earned the top band.
	row.Tier = tierFor(score)

	ratio := decimal.NewFromInt(1)
	if agg.Total > 0 {
		ratio = decimal.NewFromInt(int64(agg.Completed)).Div(decimal.NewFromInt(int64(agg.Total)))
	}
	row.CompletionRatio = round2(ratioFloat(ratio))
	row.FinalSalary = emp.BaseSalary.Mul(ratio).Round(2)
	row.Explanation = fmt.Sprintf("final pay = base salary x %s (%d of %d assigned tasks completed)",
		ratio.Round(4).String(), agg.Completed, agg.Total)
	return row
}

// tierFor bands are contiguous and exhaustive over [0,100], inclusive on the
// lower bound of each band.
func tierFor(score float64) string {
	switch {
	case score >= 90:
		return TierOutstanding
	case score >= 75:
		return TierGood
	case score >= 60:
		return TierFair
	default:
		return TierInsufficient
	}
}

// SortRows orders by final salary descending; ties keep input order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalSalary.Cmp(rows[j].FinalSalary) > 0
	})
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func ratioFloat(ratio decimal.Decimal) float64 {
	f, _ := ratio.Float64()
	return f
}
