// Package board turns a flat task list into the working set the client
// renders: filtered for visibility, ranked by urgency, and grouped into
// parent/child trees per status column.
package board

import (
	"strings"
	"time"

	"github.com/aximo-works/boardwatch/internal/task"
)

// autoArchiveAge is how old a done task's reference timestamp must be before
// the task is hidden without being added to the archive set.
const autoArchiveAge = 7 * 24 * time.Hour

// Test-marker heuristics. Tasks matching these are hidden unless the
// show-test-tasks toggle is on.
const (
	testMarker     = "CORS test"
	fallbackMarker = "Fallback"
	fallbackPrefix = "(Fallback)"
)

// ArchiveSet answers whether a task id has been manually archived.
type ArchiveSet interface {
	Has(id string) bool
}

// VisibilityOptions controls which tasks survive filtering.
type VisibilityOptions struct {
	Archive  ArchiveSet // nil means nothing is archived
	ShowTest bool
	Now      time.Time
}

// Visible returns the working subset: archived, test-marked (unless shown),
// and auto-aged-out tasks are dropped. Each rule applies independently; the
// filter has no memory beyond the archive set and the flag.
func Visible(tasks []task.Task, opts VisibilityOptions) []task.Task {
	result := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if opts.Archive != nil && opts.Archive.Has(t.ID) {
			continue
		}
		if !opts.ShowTest && IsTestTask(t.Text) {
			continue
		}
		if AutoArchived(t, opts.Now) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// IsTestTask reports whether the task text matches the test-task heuristic.
func IsTestTask(text string) bool {
	return strings.Contains(text, testMarker) ||
		strings.HasPrefix(text, fallbackPrefix) ||
		strings.Contains(text, fallbackMarker)
}

// AutoArchived reports whether a done task has aged past the auto-archive
// threshold. This is a display-time rule, never persisted: the task is
// hidden but not added to the archive set.
func AutoArchived(t task.Task, now time.Time) bool {
	if t.Status != task.StatusDone {
		return false
	}
	ref, ok := t.RefTime()
	if !ok {
		return false
	}
	return ref.Before(now.Add(-autoArchiveAge))
}

// ArchivedView returns the tasks shown in the archived panel: everything
// explicitly archived plus anything auto-aged-out.
func ArchivedView(tasks []task.Task, archive ArchiveSet, now time.Time) []task.Task {
	var result []task.Task
	for _, t := range tasks {
		if (archive != nil && archive.Has(t.ID)) || AutoArchived(t, now) {
			result = append(result, t)
		}
	}
	return result
}
