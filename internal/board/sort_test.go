package board_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/task"
)

func TestRankOrder(t *testing.T) {
	due := func(d time.Duration) string { return now.Add(d).Format(time.RFC3339) }
	created := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }

	tasks := []task.Task{
		{ID: "upcoming", DueDate: due(48 * time.Hour), CreatedAt: created(time.Hour)},
		{ID: "none-old", CreatedAt: created(48 * time.Hour)},
		{ID: "overdue-late", DueDate: due(-time.Hour), CreatedAt: created(time.Hour)},
		{ID: "none-new", CreatedAt: created(time.Hour)},
		{ID: "soon", DueDate: due(6 * time.Hour), CreatedAt: created(time.Hour)},
		{ID: "overdue-early", DueDate: due(-10 * time.Hour), CreatedAt: created(time.Hour)},
		{ID: "far", DueDate: due(200 * time.Hour), CreatedAt: created(time.Hour)},
	}

	board.Rank(tasks, now)

	// Buckets first (overdue < due_soon < upcoming < none); within a bucket
	// earlier due dates first; a due date beats none; newest created last tie.
	assert.Equal(t, []string{
		"overdue-early", "overdue-late",
		"soon",
		"upcoming",
		"far",
		"none-new", "none-old",
	}, ids(tasks))
}

func TestRankDueBeatsNoDue(t *testing.T) {
	tasks := []task.Task{
		{ID: "no-due", CreatedAt: now.Add(-time.Minute).Format(time.RFC3339)},
		{ID: "due", DueDate: now.Add(500 * time.Hour).Format(time.RFC3339)},
	}

	board.Rank(tasks, now)
	assert.Equal(t, []string{"due", "no-due"}, ids(tasks))
}

func TestRankIsIdempotentAndStable(t *testing.T) {
	due := now.Add(6 * time.Hour).Format(time.RFC3339)
	created := now.Add(-time.Hour).Format(time.RFC3339)

	// Fully tied tasks keep their input order.
	tasks := []task.Task{
		{ID: "a", DueDate: due, CreatedAt: created},
		{ID: "b", DueDate: due, CreatedAt: created},
		{ID: "c", DueDate: due, CreatedAt: created},
	}

	board.Rank(tasks, now)
	first := ids(tasks)
	assert.Equal(t, []string{"a", "b", "c"}, first)

	board.Rank(tasks, now)
	assert.Equal(t, first, ids(tasks))
}

func TestRankUnparseableCreatedSortsLast(t *testing.T) {
	tasks := []task.Task{
		{ID: "garbage", CreatedAt: "not-a-date"},
		{ID: "real", CreatedAt: now.Format(time.RFC3339)},
	}

	board.Rank(tasks, now)
	assert.Equal(t, []string{"real", "garbage"}, ids(tasks))
}
