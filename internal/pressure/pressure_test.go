package pressure_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aximo-works/boardwatch/internal/pressure"
	"github.com/aximo-works/boardwatch/internal/task"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		due       string
		expBucket pressure.Bucket
		expScore  int
		expDueNil bool
	}{
		"Missing due date scores zero in no_due": {
			due:       "",
			expBucket: pressure.BucketNone,
			expScore:  0,
			expDueNil: true,
		},

		"Unparseable due date scores zero in no_due": {
			due:       "next tuesday",
			expBucket: pressure.BucketNone,
			expScore:  0,
			expDueNil: true,
		},

		"Past due date is overdue with 100 plus hours late": {
			due:       now.Add(-5 * time.Hour).Format(time.RFC3339),
			expBucket: pressure.BucketOverdue,
			expScore:  105,
		},

		"Very old due date caps at 999": {
			due:       now.Add(-10000 * time.Hour).Format(time.RFC3339),
			expBucket: pressure.BucketOverdue,
			expScore:  999,
		},

		"Due in 2h lands in due_soon with the window nearly consumed": {
			due:       now.Add(2 * time.Hour).Format(time.RFC3339),
			expBucket: pressure.BucketDueSoon,
			expScore:  72, // 50 + ceil(24-2)
		},

		"Due in 30h lands in upcoming": {
			due:       now.Add(30 * time.Hour).Format(time.RFC3339),
			expBucket: pressure.BucketUpcoming,
			expScore:  52, // 10 + ceil(72-30)
		},

		"Due in 72h or more scores zero but keeps the resolved instant": {
			due:       now.Add(100 * time.Hour).Format(time.RFC3339),
			expBucket: pressure.BucketNone,
			expScore:  0,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			score, bucket, dueAt := pressure.Classify(test.due, now)
			assert.Equal(t, test.expBucket, bucket)
			assert.Equal(t, test.expScore, score)
			if test.expDueNil {
				assert.Nil(t, dueAt)
			} else {
				assert.NotNil(t, dueAt)
			}
		})
	}
}

func TestOverdueAlwaysScoresAtLeast100(t *testing.T) {
	for _, hrs := range []int{1, 2, 12, 100, 5000} {
		due := now.Add(-time.Duration(hrs) * time.Hour).Format(time.RFC3339)
		score, bucket, _ := pressure.Classify(due, now)
		require.Equal(t, pressure.BucketOverdue, bucket)
		require.GreaterOrEqual(t, score, 100)
		require.LessOrEqual(t, score, 999)
	}
}

func TestDueSoonScoreRisesAsSlackShrinks(t *testing.T) {
	prev := -1
	// Walk from 23h of slack down to a few minutes.
	for slack := 23 * time.Hour; slack > 10*time.Minute; slack -= time.Hour {
		due := now.Add(slack).Format(time.RFC3339)
		score, bucket, _ := pressure.Classify(due, now)
		require.Equal(t, pressure.BucketDueSoon, bucket)
		require.GreaterOrEqual(t, score, 50)
		require.LessOrEqual(t, score, 999)
		require.GreaterOrEqual(t, score, prev, "score must not decrease as slack shrinks")
		prev = score
	}
}

func TestFactor(t *testing.T) {
	assert.Equal(t, 2.0, pressure.Factor(task.PriorityHigh))
	assert.Equal(t, 1.0, pressure.Factor(task.PriorityMedium))
	assert.Equal(t, 0.5, pressure.Factor(task.PriorityLow))
	assert.Equal(t, 1.0, pressure.Factor(""))
	assert.Equal(t, 1.0, pressure.Factor("urgent"))
}

func TestClampWeight(t *testing.T) {
	tests := map[string]struct {
		weight *float64
		exp    float64
	}{
		"Missing weight defaults to 1":   {weight: nil, exp: 1.0},
		"NaN defaults to 1":              {weight: floatPtr(math.NaN()), exp: 1.0},
		"Positive infinity defaults":     {weight: floatPtr(math.Inf(1)), exp: 1.0},
		"Below range clamps to 0.1":      {weight: floatPtr(0.0001), exp: 0.1},
		"Negative clamps to 0.1":         {weight: floatPtr(-3), exp: 0.1},
		"Above range clamps to 10":       {weight: floatPtr(250), exp: 10.0},
		"In-range weight passes through": {weight: floatPtr(2.5), exp: 2.5},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, pressure.ClampWeight(test.weight))
		})
	}
}

func TestComputeBoundsForHostileInputs(t *testing.T) {
	hostile := []task.Task{
		{DueDate: "", Priority: "??", Weight: floatPtr(math.Inf(-1))},
		{DueDate: now.Add(-999999 * time.Hour).Format(time.RFC3339), Priority: task.PriorityHigh, Weight: floatPtr(1e12)},
		{DueDate: now.Add(time.Minute).Format(time.RFC3339), Priority: task.PriorityLow, Weight: floatPtr(math.NaN())},
		{DueDate: "1970-01-01", Weight: nil},
	}

	for _, tk := range hostile {
		r := pressure.Compute(tk, now)
		require.GreaterOrEqual(t, r.P2, 0)
		require.LessOrEqual(t, r.P2, 999)
	}
}

func TestComputeWorkedExample(t *testing.T) {
	// due_date = now+2h, priority=high, weight=2.0.
	tk := task.Task{
		DueDate:  now.Add(2 * time.Hour).Format(time.RFC3339),
		Priority: task.PriorityHigh,
		Weight:   floatPtr(2.0),
	}

	r := pressure.Compute(tk, now)
	assert.Equal(t, pressure.BucketDueSoon, r.Bucket)
	assert.Equal(t, 4.0, r.Base)
	assert.GreaterOrEqual(t, r.TimeScore, 50)
	assert.LessOrEqual(t, r.TimeScore, 99)
	assert.Equal(t, int(math.Ceil(4.0*float64(r.TimeScore))), r.P2)
	assert.LessOrEqual(t, r.P2, 999)
}
