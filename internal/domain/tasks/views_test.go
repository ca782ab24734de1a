package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func tsPtr(day int) *time.Time {
	value := ts(day)
	return &value
}

func taskFixture() []Task {
	return []Task{
		{ID: "t1", Title: "Fix login", Status: StatusTodo, Priority: PriorityHigh, AssigneeID: "u1", DueDate: tsPtr(5), CreatedAt: ts(1)},
		{ID: "t2", Title: "Ship report", Status: StatusInProgress, Priority: PriorityUrgent, AssigneeID: "u2", DueDate: tsPtr(3), CreatedAt: ts(2)},
		{ID: "t3", Title: "Update docs", Status: StatusDone, Priority: PriorityLow, AssigneeID: "u1", CompletedAt: tsPtr(4), CreatedAt: ts(3)},
		{ID: "t4", Title: "Review design", Status: StatusTodo, Priority: PriorityMedium, AssigneeID: "u2", CreatedAt: ts(4)},
	}
}

func TestQueryFiltersCombine(t *testing.T) {
	q := Query{Status: StatusTodo, AssigneeID: "u2"}
	got := q.Apply(taskFixture())
	assert.Len(t, got, 1)
	assert.Equal(t, "t4", got[0].ID)
}

func TestQuerySearchMatchesTitleAndDescription(t *testing.T) {
	items := taskFixture()
	items[0].Description = "OAuth callback loops forever"

	got := Query{Search: "oauth"}.Apply(items)
	assert.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestQuerySortDueDateUndatedLast(t *testing.T) {
	got := Query{SortBy: "dueDate"}.Apply(taskFixture())
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t1", got[1].ID)
	assert.Equal(t, "t3", got[2].ID, "undated keep relative order at the end")
	assert.Equal(t, "t4", got[3].ID)
}

func TestQuerySortPriorityDescending(t *testing.T) {
	got := Query{SortBy: "priority", Desc: true}.Apply(taskFixture())
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t1", got[1].ID)
}

func TestGroupBoardBucketsAllColumns(t *testing.T) {
	board := GroupBoard(taskFixture())
	assert.Len(t, board.Columns, 4)
	assert.Equal(t, StatusTodo, board.Columns[0].Status)
	assert.Len(t, board.Columns[0].Tasks, 2)
	assert.Len(t, board.Columns[1].Tasks, 1)
	assert.Empty(t, board.Columns[2].Tasks)
	assert.Len(t, board.Columns[3].Tasks, 1)
}

func TestComputeAnalytics(t *testing.T) {
	got := ComputeAnalytics(taskFixture(), ts(10))
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 2, got.ByStatus[StatusTodo])
	assert.Equal(t, 1, got.ByPriority[PriorityUrgent])
	assert.Equal(t, 2, got.Overdue, "t1 and t2 are past due and not done")
}

func TestSortTimelineDoesNotMutateInput(t *testing.T) {
	items := taskFixture()
	got := SortTimeline(items)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t1", items[0].ID)
}
