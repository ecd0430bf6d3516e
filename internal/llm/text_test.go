package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipText(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 0, "hello"},
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClipText(tt.in, tt.max), "ClipText(%q, %d)", tt.in, tt.max)
	}
}
