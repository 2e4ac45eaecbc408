package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aximo-works/boardwatch/internal/sanitize"
)

func TestText(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   string
	}{
		"Plain text should pass through": {
			input: "upstream returned HTTP 502",
			exp:   "upstream returned HTTP 502",
		},

		"Newlines and tabs should collapse to single spaces": {
			input: "line one\r\n\tline two",
			exp:   "line one line two",
		},

		"Control characters should be stripped": {
			input: "bad\x00\x1b[31mdata\x07",
			exp:   "bad[31mdata",
		},

		"Non-ASCII bytes should be stripped": {
			input: "café ☃ ok",
			exp:   "caf  ok",
		},

		"Surrounding whitespace should be trimmed": {
			input: "\n\n  hello  \r\n",
			exp:   "hello",
		},

		"Empty input should stay empty": {
			input: "",
			exp:   "",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, sanitize.Text(test.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", sanitize.Truncate("abcdef", 3))
	assert.Equal(t, "abc", sanitize.Truncate("abc", 10))
	assert.Equal(t, "", sanitize.Truncate("abc", 0))
	assert.Equal(t, "", sanitize.Truncate("abc", -5))
}

func TestHintBounded(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := sanitize.Hint(long)
	assert.Len(t, got, sanitize.HintLimit)
}

func TestSnippetBounded(t *testing.T) {
	long := strings.Repeat("y\n", 500)
	got := sanitize.Snippet(long)
	assert.LessOrEqual(t, len(got), sanitize.SnippetLimit)
	assert.NotContains(t, got, "\n")
}
