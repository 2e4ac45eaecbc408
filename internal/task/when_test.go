package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aximo-works/boardwatch/internal/task"
)

func TestParseWhen(t *testing.T) {
	tests := map[string]struct {
		input string
		expOK bool
		check func(t *testing.T, ts time.Time)
	}{
		"RFC3339 should parse": {
			input: "2026-03-10T14:30:00Z",
			expOK: true,
			check: func(t *testing.T, ts time.Time) {
				assert.Equal(t, 14, ts.UTC().Hour())
			},
		},

		"RFC3339 with fraction should parse": {
			input: "2026-03-10T14:30:00.250Z",
			expOK: true,
		},

		"Timestamp without zone should parse as local": {
			input: "2026-03-10T14:30:00",
			expOK: true,
			check: func(t *testing.T, ts time.Time) {
				assert.Equal(t, time.Local, ts.Location())
			},
		},

		"Date-only should resolve to local end of day": {
			input: "2026-03-10",
			expOK: true,
			check: func(t *testing.T, ts time.Time) {
				assert.Equal(t, 23, ts.Hour())
				assert.Equal(t, 59, ts.Minute())
				assert.Equal(t, 59, ts.Second())
			},
		},

		"Empty input should not parse": {
			input: "",
			expOK: false,
		},

		"Garbage should not parse": {
			input: "not-a-date",
			expOK: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ts, ok := task.ParseWhen(test.input)
			require.Equal(t, test.expOK, ok)
			if test.check != nil {
				test.check(t, ts)
			}
		})
	}
}

func TestParseDueRawDateOnlyIsMidnightUTC(t *testing.T) {
	ts, ok := task.ParseDueRaw("2026-03-10")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), ts)
}

func TestRefTimeFallbackChain(t *testing.T) {
	tests := map[string]struct {
		task  task.Task
		expOK bool
		exp   string
	}{
		"updated_at wins when present": {
			task:  task.Task{UpdatedAt: "2026-01-02T00:00:00Z", CreatedAt: "2026-01-01T00:00:00Z"},
			expOK: true,
			exp:   "2026-01-02T00:00:00Z",
		},

		"created_at is used when updated_at is missing": {
			task:  task.Task{CreatedAt: "2026-01-01T00:00:00Z", DueDate: "2026-01-03T00:00:00Z"},
			expOK: true,
			exp:   "2026-01-01T00:00:00Z",
		},

		"due_date is the last resort": {
			task:  task.Task{UpdatedAt: "bogus", CreatedAt: "", DueDate: "2026-01-03T00:00:00Z"},
			expOK: true,
			exp:   "2026-01-03T00:00:00Z",
		},

		"nothing parseable yields false": {
			task:  task.Task{UpdatedAt: "x", CreatedAt: "y", DueDate: "z"},
			expOK: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ts, ok := test.task.RefTime()
			require.Equal(t, test.expOK, ok)
			if test.expOK {
				exp, err := time.Parse(time.RFC3339, test.exp)
				require.NoError(t, err)
				assert.True(t, ts.Equal(exp))
			}
		})
	}
}

func TestCreatedTimeDefaultsToEpoch(t *testing.T) {
	assert.Equal(t, time.Unix(0, 0), task.Task{CreatedAt: "bogus"}.CreatedTime())
}
