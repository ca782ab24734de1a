package performance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListRange fetches records for all given employees in one query. Month bounds
// are compared on year*12+month so a range spanning a year boundary stays a
// single BETWEEN.
func (s *Store) ListRange(ctx context.Context, employeeIDs []string, fromYear, fromMonth, toYear, toMonth int) ([]MonthlyRecord, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT user_id, year, month, total_assigned, completed_on_time, completed_late, overdue
    FROM monthly_performance
    WHERE user_id = ANY($1)
      AND (year * 12 + month) BETWEEN $2 AND $3
    ORDER BY user_id, year, month
  `, employeeIDs, fromYear*12+fromMonth, toYear*12+toMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRecord
	for rows.Next() {
		var rec MonthlyRecord
		if err := rows.Scan(&rec.EmployeeID, &rec.Year, &rec.Month,
			&rec.TotalAssigned, &rec.CompletedOnTime, &rec.CompletedLate, &rec.Overdue); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string, limit int) ([]MonthlyRecord, error) {
	if limit <= 0 {
		limit = 24
	}
	rows, err := s.DB.Query(ctx, `
    SELECT user_id, year, month, total_assigned, completed_on_time, completed_late, overdue
    FROM monthly_performance
    WHERE user_id = $1
    ORDER BY year DESC, month DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRecord
	for rows.Next() {
		var rec MonthlyRecord
		if err := rows.Scan(&rec.EmployeeID, &rec.Year, &rec.Month,
			&rec.TotalAssigned, &rec.CompletedOnTime, &rec.CompletedLate, &rec.Overdue); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
