package board

import (
	"time"

	"github.com/aximo-works/boardwatch/internal/pressure"
	"github.com/aximo-works/boardwatch/internal/task"
)

// Column is one status column of the board, ranked and ready to group.
type Column struct {
	Status   string
	Title    string
	Tasks    []task.Task
	Pressure int // sum of p2 across the column
}

// Columns splits the visible working set into the three board columns,
// ranking each and computing its aggregate pressure total.
func Columns(visible []task.Task, now time.Time) []Column {
	statuses := task.ColumnStatuses()
	cols := make([]Column, 0, len(statuses))
	for _, status := range statuses {
		tasks := columnOf(visible, status)
		Rank(tasks, now)

		total := 0
		for _, t := range tasks {
			total += pressure.Compute(t, now).P2
		}

		cols = append(cols, Column{
			Status:   status,
			Title:    task.StatusTitle(status),
			Tasks:    tasks,
			Pressure: total,
		})
	}
	return cols
}

// StatusSummary holds metrics for a single status column.
type StatusSummary struct {
	Status   string `json:"status"`
	Title    string `json:"title"`
	Count    int    `json:"count"`
	Pressure int    `json:"pressure"`
	Overdue  int    `json:"overdue"`
}

// Overview is the aggregate board summary.
type Overview struct {
	TotalTasks int             `json:"total_tasks"`
	Statuses   []StatusSummary `json:"statuses"`
}

// Summarize computes a board overview from a visible working set.
func Summarize(visible []task.Task, now time.Time) Overview {
	summary := Overview{TotalTasks: len(visible)}
	for _, col := range Columns(visible, now) {
		ss := StatusSummary{
			Status:   col.Status,
			Title:    col.Title,
			Count:    len(col.Tasks),
			Pressure: col.Pressure,
		}
		for _, t := range col.Tasks {
			if pressure.Compute(t, now).Bucket == pressure.BucketOverdue {
				ss.Overdue++
			}
		}
		summary.Statuses = append(summary.Statuses, ss)
	}
	return summary
}
