// Package sanitize cleans upstream-controlled text before it reaches the
// terminal, logs, or the alert webhook.
package sanitize

import "strings"

const (
	// HintLimit bounds health hints forwarded to alerts and the UI.
	HintLimit = 120
	// SnippetLimit bounds HTTP error body snippets shown to the user.
	SnippetLimit = 200
)

// Text collapses runs of newlines and tabs into single spaces, strips
// non-printable and non-ASCII bytes, and trims surrounding whitespace.
// The result is safe to embed in a single log or markup line.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
			lastSpace = r == ' '
		default:
			// Control characters and non-ASCII bytes are dropped.
		}
	}

	return strings.TrimSpace(b.String())
}

// Truncate cuts s to at most max bytes. Text output is ASCII-only, so a
// byte cut never splits a rune.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Hint sanitizes and bounds a health hint string.
func Hint(s string) string {
	return Truncate(Text(s), HintLimit)
}

// Snippet sanitizes and bounds an HTTP body snippet.
func Snippet(s string) string {
	return Truncate(Text(s), SnippetLimit)
}
