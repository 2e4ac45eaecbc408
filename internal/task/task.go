// Package task defines the wire model for tasks served by the backend.
package task

import "time"

// Status values a task can hold. Exactly one at a time; transitions happen
// only through explicit user action or backend side effects.
const (
	StatusPending  = "pending_approval"
	StatusApproved = "approved"
	StatusDone     = "done"
)

// Priority values. Missing or unknown priorities are treated as medium.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is the backend's task record. The client holds a read-mostly copy per
// fetch cycle; every field except Status is immutable from its point of view.
// Timestamps stay raw strings on the wire because the backend is not strict
// about formats; parsing happens lazily at the point of use.
type Task struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Status       string   `json:"status"`
	ParentID     *string  `json:"parent_id"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	DueDate      string   `json:"due_date,omitempty"`
	Owner        string   `json:"owner,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	ApprovedAt   string   `json:"approved_at,omitempty"`
	ApprovedBy   string   `json:"approved_by,omitempty"`
	RejectedAt   string   `json:"rejected_at,omitempty"`
	RejectedBy   string   `json:"rejected_by,omitempty"`
	RejectReason string   `json:"reject_reason,omitempty"`
}

// HasParent reports whether the task carries a parent reference. The
// reference is not guaranteed to resolve; see the board grouping rules.
func (t Task) HasParent() bool {
	return t.ParentID != nil && *t.ParentID != ""
}

// Parent returns the parent id, or "" when there is none.
func (t Task) Parent() string {
	if t.ParentID == nil {
		return ""
	}
	return *t.ParentID
}

// RefTime resolves the task's reference timestamp: updated_at, falling back
// to created_at, falling back to due_date. Returns false when none parse.
func (t Task) RefTime() (time.Time, bool) {
	for _, raw := range []string{t.UpdatedAt, t.CreatedAt, t.DueDate} {
		if ts, ok := ParseWhen(raw); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

// CreatedTime returns the parsed creation timestamp, or the Unix epoch when
// created_at is missing or unparseable. Used as the final ranking tie-break.
func (t Task) CreatedTime() time.Time {
	if ts, ok := ParseWhen(t.CreatedAt); ok {
		return ts
	}
	return time.Unix(0, 0)
}

// ColumnStatuses returns the board column statuses in display order.
func ColumnStatuses() []string {
	return []string{StatusPending, StatusApproved, StatusDone}
}

// StatusTitle returns the display name of a status column.
func StatusTitle(status string) string {
	switch status {
	case StatusPending:
		return "Open"
	case StatusApproved:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return status
	}
}

// ValidStatus reports whether s is a status the backend accepts.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDone:
		return true
	}
	return false
}
