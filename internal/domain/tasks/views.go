package tasks

import (
	"strings"
	"time"

	"workdesk/internal/listing"
)

// Query is the declarative list-view request: predicates and sort key parsed
// from URL parameters once, applied through the shared listing utility.
type Query struct {
	Status     string
	Priority   string
	AssigneeID string
	Search     string
	SortBy     string
	Desc       bool
	Limit      int
	Offset     int
}

func (q Query) Predicates() []listing.Predicate[Task] {
	var preds []listing.Predicate[Task]
	if q.Status != "" {
		status := q.Status
		preds = append(preds, func(t Task) bool { return t.Status == status })
	}
	if q.Priority != "" {
		priority := q.Priority
		preds = append(preds, func(t Task) bool { return t.Priority == priority })
	}
	if q.AssigneeID != "" {
		assignee := q.AssigneeID
		preds = append(preds, func(t Task) bool { return t.AssigneeID == assignee })
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		preds = append(preds, func(t Task) bool {
			return strings.Contains(strings.ToLower(t.Title), needle) ||
				strings.Contains(strings.ToLower(t.Description), needle)
		})
	}
	return preds
}

func (q Query) Comparator() listing.Comparator[Task] {
	var less listing.Comparator[Task]
	switch q.SortBy {
	case "dueDate":
		less = func(a, b Task) bool {
			// Tasks without a due date sort last.
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		}
	case "priority":
		less = func(a, b Task) bool { return priorityRank(a.Priority) < priorityRank(b.Priority) }
	case "title":
		less = func(a, b Task) bool { return a.Title < b.Title }
	default:
		less = func(a, b Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	if q.Desc {
		return listing.Descending(less)
	}
	return less
}

func (q Query) Apply(items []Task) []Task {
	return listing.Apply(items, q.Comparator(), q.Limit, q.Offset, q.Predicates()...)
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// GroupBoard buckets tasks into kanban columns, keeping input order per column.
func GroupBoard(items []Task) Board {
	buckets := map[string][]Task{}
	for _, task := range items {
		buckets[task.Status] = append(buckets[task.Status], task)
	}
	board := Board{Columns: make([]BoardColumn, 0, len(BoardColumns))}
	for _, status := range BoardColumns {
		board.Columns = append(board.Columns, BoardColumn{Status: status, Tasks: buckets[status]})
	}
	return board
}

// ComputeAnalytics counts tasks per status and priority plus overdue tasks
// (uncompleted and past due as of now).
func ComputeAnalytics(items []Task, now time.Time) Analytics {
	analytics := Analytics{
		Total:      len(items),
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}
	for _, task := range items {
		analytics.ByStatus[task.Status]++
		analytics.ByPriority[task.Priority]++
		if task.Status != StatusDone && task.DueDate != nil && task.DueDate.Before(now) {
			analytics.Overdue++
		}
	}
	return analytics
}

// SortTimeline orders by due date ascending, undated tasks last.
func SortTimeline(items []Task) []Task {
	out := append([]Task(nil), items...)
	listing.Sort(out, Query{SortBy: "dueDate"}.Comparator())
	return out
}
