package task

import (
	"regexp"
	"time"
)

// dateOnlyRe matches a bare calendar date (YYYY-MM-DD) with no time part.
var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// whenLayouts are the timestamp layouts the backend has been observed to
// emit, tried in order.
var whenLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const dateOnlyLayout = "2006-01-02"

// ParseWhen parses a timestamp leniently for display ordering. A date-only
// string resolves to local end-of-day (23:59:59.999), so a task due "today"
// does not count as overdue all day. Returns false instead of an error on
// anything unparseable.
func ParseWhen(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	if dateOnlyRe.MatchString(raw) {
		d, err := time.ParseInLocation(dateOnlyLayout, raw, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return d.Add(24*time.Hour - time.Millisecond), true
	}

	for _, layout := range whenLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// ParseDueRaw parses the raw due_date field the way the pressure model needs
// it: direct timestamp parsing, with a date-only string read as midnight UTC.
// Display ordering uses ParseWhen instead; the two deliberately differ.
func ParseDueRaw(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	if dateOnlyRe.MatchString(raw) {
		d, err := time.Parse(dateOnlyLayout, raw)
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}

	for _, layout := range whenLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}
