package report

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultLabel = "PerformanceReport"

// Summary aggregates a single report run.
type Summary struct {
	EmployeeCount  int             `json:"employeeCount"`
	TotalTasks     int             `json:"totalTasks"`
	TotalCompleted int             `json:"totalCompleted"`
	TotalPayroll   decimal.Decimal `json:"totalPayroll"`
}

// Report is the full computed result: rows in final-pay-descending order plus
// the executive summary. Built fresh on every run, never persisted.
type Report struct {
	Label     string    `json:"label"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Rows      []Row     `json:"rows"`
	Summary   Summary   `json:"summary"`
}

func Summarize(rows []Row) Summary {
	summary := Summary{EmployeeCount: len(rows), TotalPayroll: decimal.Zero}
	for _, row := range rows {
		summary.TotalTasks += row.Total
		summary.TotalCompleted += row.Completed
		summary.TotalPayroll = summary.TotalPayroll.Add(row.FinalSalary)
	}
	return summary
}
