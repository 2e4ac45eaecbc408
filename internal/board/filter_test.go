package board_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/task"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeArchive map[string]bool

func (f fakeArchive) Has(id string) bool { return f[id] }

func ids(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestVisible(t *testing.T) {
	fresh := now.Add(-time.Hour).Format(time.RFC3339)
	stale := now.Add(-8 * 24 * time.Hour).Format(time.RFC3339)

	tests := map[string]struct {
		tasks   []task.Task
		archive fakeArchive
		show    bool
		expIDs  []string
	}{
		"Archived ids are dropped regardless of age or status": {
			tasks: []task.Task{
				{ID: "t1", Status: task.StatusDone, UpdatedAt: fresh},
				{ID: "t2", Status: task.StatusDone, UpdatedAt: fresh},
			},
			archive: fakeArchive{"t1": true},
			expIDs:  []string{"t2"},
		},

		"Test-marked tasks hide unless the toggle is on": {
			tasks: []task.Task{
				{ID: "t1", Text: "CORS test ping", Status: task.StatusPending, CreatedAt: fresh},
				{ID: "t2", Text: "(Fallback) seeded", Status: task.StatusPending, CreatedAt: fresh},
				{ID: "t3", Text: "ship release", Status: task.StatusPending, CreatedAt: fresh},
			},
			expIDs: []string{"t3"},
		},

		"Toggle on keeps test-marked tasks": {
			tasks: []task.Task{
				{ID: "t1", Text: "CORS test ping", Status: task.StatusPending, CreatedAt: fresh},
			},
			show:   true,
			expIDs: []string{"t1"},
		},

		"Done tasks older than seven days age out": {
			tasks: []task.Task{
				{ID: "t1", Status: task.StatusDone, UpdatedAt: stale},
				{ID: "t2", Status: task.StatusDone, UpdatedAt: fresh},
				{ID: "t3", Status: task.StatusApproved, UpdatedAt: stale},
			},
			expIDs: []string{"t2", "t3"},
		},

		"Aging falls back to created_at then due_date": {
			tasks: []task.Task{
				{ID: "t1", Status: task.StatusDone, CreatedAt: stale},
				{ID: "t2", Status: task.StatusDone, DueDate: stale},
				{ID: "t3", Status: task.StatusDone}, // nothing parseable: kept
			},
			expIDs: []string{"t3"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := board.Visible(test.tasks, board.VisibilityOptions{
				Archive:  test.archive,
				ShowTest: test.show,
				Now:      now,
			})
			assert.Equal(t, test.expIDs, ids(got))
		})
	}
}

func TestVisibleArchiveWinsOverEverything(t *testing.T) {
	// Spec example: archive set {"t1"}, both tasks done and fresh.
	fresh := now.Add(-time.Hour).Format(time.RFC3339)
	tasks := []task.Task{
		{ID: "t1", Status: task.StatusDone, UpdatedAt: fresh},
		{ID: "t2", Status: task.StatusDone, UpdatedAt: fresh},
	}

	got := board.Visible(tasks, board.VisibilityOptions{Archive: fakeArchive{"t1": true}, Now: now})
	assert.Equal(t, []string{"t2"}, ids(got))
}

func TestArchivedView(t *testing.T) {
	fresh := now.Add(-time.Hour).Format(time.RFC3339)
	stale := now.Add(-8 * 24 * time.Hour).Format(time.RFC3339)

	tasks := []task.Task{
		{ID: "t1", Status: task.StatusPending, CreatedAt: fresh}, // manually archived
		{ID: "t2", Status: task.StatusDone, UpdatedAt: stale},    // auto-aged
		{ID: "t3", Status: task.StatusApproved, CreatedAt: fresh},
	}

	got := board.ArchivedView(tasks, fakeArchive{"t1": true}, now)
	assert.Equal(t, []string{"t1", "t2"}, ids(got))
}

func TestIsTestTask(t *testing.T) {
	assert.True(t, board.IsTestTask("automated CORS test run"))
	assert.True(t, board.IsTestTask("(Fallback) placeholder"))
	assert.True(t, board.IsTestTask("uses Fallback path"))
	assert.False(t, board.IsTestTask("deploy fallback docs")) // marker is case-sensitive
	assert.False(t, board.IsTestTask("ship release"))
}
