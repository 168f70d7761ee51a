package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYear(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"117501010", "1750"}, // 10 Oct 1750
		{"118020000", "1802"}, // year-only exact date
		{"0(ABT 1802)", "1802"},
		{"0(BEF 1840 ?)", "1840"},
		{"0(no year here)", ""},
		{"0(12)", ""},
		{"1abc", ""},
		{"", ""},
		{"2whatever", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractYear(tt.raw), "raw %q", tt.raw)
	}
}
