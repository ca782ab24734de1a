package report

import (
	"context"
	"fmt"
	"time"

	"workdesk/internal/domain/org"
	"workdesk/internal/domain/performance"
)

// Directory supplies the org inputs the scope resolver needs.
type Directory interface {
	ListDepartments(ctx context.Context) ([]org.Department, error)
	ListUsers(ctx context.Context) ([]org.User, error)
}

// RecordSource supplies the roll-up rows in one bulk fetch per run.
type RecordSource interface {
	ListRange(ctx context.Context, employeeIDs []string, fromYear, fromMonth, toYear, toMonth int) ([]performance.MonthlyRecord, error)
}

type Service struct {
	Directory Directory
	Records   RecordSource
}

func NewService(directory Directory, records RecordSource) *Service {
	return &Service{Directory: directory, Records: records}
}

// Generate runs the whole pipeline: resolve scope, aggregate, score, sort.
// All-or-nothing: any fetch failure aborts the run so a missing roll-up can
// never masquerade as a zero-task month. An empty scope is not an error; it
// yields an empty report with an all-zero summary.
func (s *Service) Generate(ctx context.Context, principal Principal, start, end time.Time) (*Report, error) {
	months, err := MonthsInRange(start, end)
	if err != nil {
		return nil, err
	}

	departments, err := s.Directory.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch departments: %w", err)
	}
	employees, err := s.Directory.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch employees: %w", err)
	}

	scope := ResolveScope(principal, departments, employees)

	out := &Report{Label: DefaultLabel, StartDate: start, EndDate: end}
	if len(scope.Employees) == 0 {
		out.Summary = Summarize(nil)
		return out, nil
	}

	ids := make([]string, len(scope.Employees))
	for i, emp := range scope.Employees {
		ids[i] = emp.ID
	}

	first, last := months[0], months[len(months)-1]
	records, err := s.Records.ListRange(ctx, ids, first.Year, first.Month, last.Year, last.Month)
	if err != nil {
		return nil, fmt.Errorf("fetch performance records: %w", err)
	}

	aggregates := AggregateRecords(ids, records)

	departmentNames := make(map[string]string, len(departments))
	for _, dep := range departments {
		departmentNames[dep.ID] = dep.Name
	}

	rows := make([]Row, len(scope.Employees))
	for i, emp := range scope.Employees {
		rows[i] = BuildRow(emp, departmentNames[emp.DepartmentID], aggregates[i])
	}
	SortRows(rows)

	out.Rows = rows
	out.Summary = Summarize(rows)
	return out, nil
}
