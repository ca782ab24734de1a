package performance

// MonthlyRecord is one immutable roll-up row per (employee, year, month),
// produced upstream. The report engine only ever reads these.
//
// Invariant: CompletedOnTime + CompletedLate <= TotalAssigned. Overdue counts
// tasks from TotalAssigned that are uncompleted and past their due date.
type MonthlyRecord struct {
	EmployeeID      string `json:"employeeId"`
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	TotalAssigned   int    `json:"totalAssigned"`
	CompletedOnTime int    `json:"completedOnTime"`
	CompletedLate   int    `json:"completedLate"`
	Overdue         int    `json:"overdue"`
}
