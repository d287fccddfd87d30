package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Austin, TX", CleanText("  Austin,  TX \n"))
	assert.Equal(t, "", CleanText(" \t "))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Build   services.\n\n Ship  often. ", "Build services.\nShip often."},
		{"paragraphs", "<p>About us</p><p>We build <b>things</b>.</p>", "About us\nWe build things."},
		{"list", "<ul><li>Go</li><li>SQL</li></ul>", "- Go\n- SQL"},
		{"breaks", "Line one<br>Line two", "Line one\nLine two"},
		{"script", "<div>Hi<script>alert(1)</script></div>", "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 2))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0))
}
