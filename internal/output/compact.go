package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/pressure"
	"github.com/aximo-works/boardwatch/internal/sanitize"
	"github.com/aximo-works/boardwatch/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for i := range tasks {
		fmt.Fprintln(w, formatTaskLine(&tasks[i], now))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t task.Task, now time.Time) {
	fmt.Fprintln(w, formatTaskLine(&t, now))

	ts := "  created:" + stringOr(t.CreatedAt, "?")
	if t.UpdatedAt != "" {
		ts += " updated:" + t.UpdatedAt
	}
	if t.ApprovedAt != "" {
		ts += " approved:" + t.ApprovedAt
	}
	if t.RejectedAt != "" {
		ts += " rejected:" + t.RejectedAt
	}
	fmt.Fprintln(w, ts)

	if t.RejectReason != "" {
		fmt.Fprintln(w, "  reason: "+sanitize.Text(t.RejectReason))
	}
}

// OverviewCompact renders a board summary in compact format.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "board (%d tasks)\n", s.TotalTasks)

	for _, ss := range s.Statuses {
		line := "  " + ss.Title + ": " + strconv.Itoa(ss.Count) +
			" p2=" + strconv.Itoa(ss.Pressure)
		if ss.Overdue > 0 {
			line += " (" + strconv.Itoa(ss.Overdue) + " overdue)"
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task, now time.Time) string {
	res := pressure.Compute(*t, now)

	line := ShortID(t.ID) + " [" + t.Status + "/" + priorityDisplay(t) + "] " +
		sanitize.Truncate(sanitize.Text(t.Text), 60) //nolint:mnd // compact line text cap

	if res.Bucket != pressure.BucketNone {
		line += " " + res.Bucket.Label()
	}
	line += " p2:" + strconv.Itoa(res.P2)
	if t.Owner != "" {
		line += " @" + t.Owner
	}
	if res.DueAt != nil {
		line += " due:" + res.DueAt.Format("2006-01-02")
	}

	return line
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
