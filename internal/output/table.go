package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/pressure"
	"github.com/aximo-works/boardwatch/internal/sanitize"
	"github.com/aximo-works/boardwatch/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Status colors aligned with TUI column-header palette.
	statusStyles = map[string]lipgloss.Style{
		task.StatusPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		task.StatusApproved: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		task.StatusDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	// Priority colors matching TUI priority palette.
	priorityStyles = map[string]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	// Urgency bucket colors, hottest first.
	bucketStyles = map[pressure.Bucket]lipgloss.Style{
		pressure.BucketOverdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		pressure.BucketDueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		pressure.BucketUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		pressure.BucketNone:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	statusStyles = map[string]lipgloss.Style{}
	priorityStyles = map[string]lipgloss.Style{}
	bucketStyles = map[pressure.Bucket]lipgloss.Style{}
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, statusW, prioW, urgW, textW := 4, 8, 10, 10, 5
	for i := range tasks {
		t := &tasks[i]
		idW = max(idW, len(ShortID(t.ID))+pad)
		statusW = max(statusW, len(t.Status)+pad)
		prioW = max(prioW, len(priorityDisplay(t))+pad)
		textW = max(textW, min(len(sanitize.Text(t.Text))+pad, 50)) //nolint:mnd // max text column width
	}

	// Print header.
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %5s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		urgW, "URGENCY", "P2", textW, "TEXT", "DUE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	// Print rows.
	for i := range tasks {
		t := &tasks[i]
		res := pressure.Compute(*t, now)

		text := sanitize.Text(t.Text)
		const maxText = 48
		if len(text) > maxText {
			text = text[:maxText-3] + "..."
		}

		due := dimStyle.Render("--")
		if res.DueAt != nil {
			due = res.DueAt.Format("2006-01-02 15:04")
		}

		row := fmt.Sprintf("%-*s %s %s %s %5d %s %s",
			idW, ShortID(t.ID),
			padRight(styledValue(t.Status, statusStyles), statusW),
			padRight(styledValue(priorityDisplay(t), priorityStyles), prioW),
			padRight(bucketDisplay(res.Bucket), urgW),
			res.P2,
			padRight(text, textW),
			due)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t task.Task, archived bool, now time.Time) {
	res := pressure.Compute(t, now)

	titleLine := fmt.Sprintf("Task %s: %s", ShortID(t.ID), sanitize.Text(t.Text))
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "ID", t.ID)
	printField(w, "Status", styledValue(t.Status, statusStyles))
	printField(w, "Priority", styledValue(priorityDisplay(&t), priorityStyles))
	printField(w, "Urgency", bucketDisplay(res.Bucket))
	printField(w, "Pressure", strconv.Itoa(res.P2))
	printField(w, "Owner", stringOrDash(t.Owner))
	if t.HasParent() {
		printField(w, "Parent", t.Parent())
	}
	if res.DueAt != nil {
		printField(w, "Due", res.DueAt.Format("2006-01-02 15:04"))
	} else {
		printField(w, "Due", dimStyle.Render("--"))
	}
	printField(w, "Created", stringOrDash(t.CreatedAt))
	printField(w, "Updated", stringOrDash(t.UpdatedAt))
	if t.ApprovedAt != "" {
		approved := t.ApprovedAt
		if t.ApprovedBy != "" {
			approved += " by " + t.ApprovedBy
		}
		printField(w, "Approved", approved)
	}
	if t.RejectedAt != "" {
		rejected := t.RejectedAt
		if t.RejectedBy != "" {
			rejected += " by " + t.RejectedBy
		}
		printField(w, "Rejected", rejected)
		if t.RejectReason != "" {
			printField(w, "Reason", sanitize.Text(t.RejectReason))
		}
	}
	if archived {
		printField(w, "Archived", "yes")
	}
}

// OverviewTable renders a board summary as a formatted dashboard.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "Total: %d tasks\n\n", s.TotalTasks)

	header := fmt.Sprintf("%-16s %6s %10s %8s", "COLUMN", "COUNT", "PRESSURE", "OVERDUE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, ss := range s.Statuses {
		title := ss.Title
		if st, ok := statusStyles[ss.Status]; ok {
			title = st.Render(title)
		}
		const statusColW = 16
		fmt.Fprintf(w, "%s %6d %10d %8d\n",
			padRight(title, statusColW), ss.Count, ss.Pressure, ss.Overdue)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// priorityDisplay normalizes a missing priority to medium for display.
func priorityDisplay(t *task.Task) string {
	if t.Priority == "" {
		return task.PriorityMedium
	}
	return t.Priority
}

// bucketDisplay renders an urgency bucket label with its color.
func bucketDisplay(b pressure.Bucket) string {
	label := b.Label()
	if st, ok := bucketStyles[b]; ok {
		return st.Render(label)
	}
	return label
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
