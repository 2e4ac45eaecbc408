// Package pressure derives an urgency score and due-severity bucket from a
// task's due date, priority, and weight. Everything here is pure; callers
// pass the reference instant.
package pressure

import (
	"math"
	"time"

	"github.com/aximo-works/boardwatch/internal/task"
)

// Bucket is the coarse due-date severity classification.
type Bucket string

// Bucket values, ordered from most to least urgent.
const (
	BucketOverdue  Bucket = "overdue"
	BucketDueSoon  Bucket = "due_soon"
	BucketUpcoming Bucket = "upcoming"
	BucketNone     Bucket = "no_due"
)

// maxScore caps both the time score and the final urgency score.
const maxScore = 999

// Weight clamp bounds. Stored weights are unrestricted; the model is not.
const (
	minWeight     = 0.1
	maxWeight     = 10.0
	defaultWeight = 1.0
)

// Rank returns the bucket's sort rank: overdue=0 < due_soon=1 < upcoming=2 < no_due=3.
func (b Bucket) Rank() int {
	switch b {
	case BucketOverdue:
		return 0
	case BucketDueSoon:
		return 1
	case BucketUpcoming:
		return 2
	default:
		return 3
	}
}

// Label returns the badge text for a bucket, or "" for no_due.
func (b Bucket) Label() string {
	switch b {
	case BucketOverdue:
		return "Overdue"
	case BucketDueSoon:
		return "Due Soon"
	case BucketUpcoming:
		return "Upcoming"
	default:
		return ""
	}
}

// Result is the derived pressure view of one task at one instant. It is
// never persisted; recompute it on every render.
type Result struct {
	TimeScore int
	Base      float64
	P2        int
	Bucket    Bucket
	DueAt     *time.Time
}

// Classify maps a raw due_date field and a reference instant to a time
// score, bucket, and resolved due instant.
//
// Missing or unparseable due dates score 0 in the no_due bucket. Past due
// dates score 100 plus the hours late; due dates inside the next 24 h score
// 50 and climb as the window shrinks; 24-72 h out scores 10 and climbs the
// same way. Anything 72 h or further out deliberately scores 0: far-future
// due dates do not inflate urgency.
func Classify(dueRaw string, now time.Time) (timeScore int, bucket Bucket, dueAt *time.Time) {
	due, ok := task.ParseDueRaw(dueRaw)
	if !ok {
		return 0, BucketNone, nil
	}

	const (
		h24 = 24 * time.Hour
		h72 = 72 * time.Hour
	)

	switch delta := due.Sub(now); {
	case delta < 0:
		return capScore(100 + ceilHours(-delta)), BucketOverdue, &due
	case delta < h24:
		return capScore(50 + ceilHours(h24-delta)), BucketDueSoon, &due
	case delta < h72:
		return capScore(10 + ceilHours(h72-delta)), BucketUpcoming, &due
	default:
		return 0, BucketNone, &due
	}
}

// Factor maps a priority value to its multiplier. Unknown or missing
// priorities count as medium.
func Factor(priority string) float64 {
	switch priority {
	case task.PriorityHigh:
		return 2.0
	case task.PriorityLow:
		return 0.5
	default:
		return 1.0
	}
}

// ClampWeight normalizes a stored weight into [0.1, 10.0], defaulting to 1.0
// when the field is missing or not finite.
func ClampWeight(weight *float64) float64 {
	if weight == nil || math.IsNaN(*weight) || math.IsInf(*weight, 0) {
		return defaultWeight
	}
	w := *weight
	if w < minWeight {
		return minWeight
	}
	if w > maxWeight {
		return maxWeight
	}
	return w
}

// Compute derives the full pressure result for a task at the given instant.
func Compute(t task.Task, now time.Time) Result {
	timeScore, bucket, dueAt := Classify(t.DueDate, now)
	base := ClampWeight(t.Weight) * Factor(t.Priority)

	p2 := int(math.Ceil(base * float64(timeScore)))
	if p2 < 0 {
		p2 = 0
	}
	if p2 > maxScore {
		p2 = maxScore
	}

	return Result{
		TimeScore: timeScore,
		Base:      base,
		P2:        p2,
		Bucket:    bucket,
		DueAt:     dueAt,
	}
}

func ceilHours(d time.Duration) int {
	return int(math.Ceil(d.Hours()))
}

func capScore(score int) int {
	if score > maxScore {
		return maxScore
	}
	return score
}
