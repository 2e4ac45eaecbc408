// Package output renders CLI results as a table, JSON, or compact one-line
// records.
package output

import "os"

// Format names an output format.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCompact Format = "compact"
)

// Detect picks the output format. Explicit flags win, then the
// BOARDWATCH_OUTPUT environment variable; the default is table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	switch os.Getenv("BOARDWATCH_OUTPUT") {
	case "json":
		return FormatJSON
	case "compact", "oneline":
		return FormatCompact
	}
	return FormatTable
}

// ShortID truncates a backend task id for display.
func ShortID(id string) string {
	const short = 8
	if len(id) <= short {
		return id
	}
	return id[:short]
}
