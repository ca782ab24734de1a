package report

import "workdesk/internal/domain/performance"

// Aggregate holds the summed task counts for one employee over the report
// range. Employees without any records get an all-zero aggregate.
type Aggregate struct {
	EmployeeID      string
	Total           int
	CompletedOnTime int
	CompletedLate   int
	Completed       int
	Pending         int
	Overdue         int
}

// AggregateRecords groups records by employee and sums the counters, returning
// one aggregate per requested employee in the given order.
func AggregateRecords(employeeIDs []string, records []performance.MonthlyRecord) []Aggregate {
	byEmployee := make(map[string]*Aggregate, len(employeeIDs))
	out := make([]Aggregate, len(employeeIDs))
	for i, id := range employeeIDs {
		out[i] = Aggregate{EmployeeID: id}
		byEmployee[id] = &out[i]
	}

	for _, rec := range records {
		agg, ok := byEmployee[rec.EmployeeID]
		if !ok {
			// Record for someone outside the scope; the bulk fetch should not
			// produce these, but a stray row must not widen the report.
			continue
		}
		agg.Total += rec.TotalAssigned
		agg.CompletedOnTime += rec.CompletedOnTime
		agg.CompletedLate += rec.CompletedLate
		agg.Overdue += rec.Overdue
	}

	for i := range out {
		out[i].Completed = out[i].CompletedOnTime + out[i].CompletedLate
		out[i].Pending = out[i].Total - out[i].Completed
		if out[i].Pending < 0 {
			out[i].Pending = 0
		}
	}
	return out
}
