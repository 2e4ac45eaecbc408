package board

import (
	"sort"
	"time"

	"github.com/aximo-works/boardwatch/internal/pressure"
	"github.com/aximo-works/boardwatch/internal/task"
)

// Rank sorts tasks in place for display within one status column.
//
// Ordering key, lexicographic: bucket rank (overdue first), then earlier
// resolved due instant — a task with a resolved due instant sorts before one
// without — then more recently created first. The sort is stable, so two
// tasks that compare equal (both without a due date and sharing a creation
// timestamp) keep their original relative order.
func Rank(tasks []task.Task, now time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return rankLess(tasks[i], tasks[j], now)
	})
}

func rankLess(a, b task.Task, now time.Time) bool {
	pa := pressure.Compute(a, now)
	pb := pressure.Compute(b, now)

	if ra, rb := pa.Bucket.Rank(), pb.Bucket.Rank(); ra != rb {
		return ra < rb
	}

	switch {
	case pa.DueAt != nil && pb.DueAt != nil:
		if !pa.DueAt.Equal(*pb.DueAt) {
			return pa.DueAt.Before(*pb.DueAt)
		}
	case pa.DueAt != nil:
		return true
	case pb.DueAt != nil:
		return false
	}

	// Unparseable created_at counts as the epoch, sorting last.
	return a.CreatedTime().After(b.CreatedTime())
}
