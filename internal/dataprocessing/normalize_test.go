package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "hello", CleanText("  hello \n"))
	assert.Equal(t, "ab", CleanText(`a\nb`))
	assert.Equal(t, "ab", CleanText("a\nb"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jan 5, 2024", "2024-01-05"},
		{"Dec 31 2023", "2023-12-31"},
		{"3/9/24", "2024-03-09"},
		{"12/25/2023", "2023-12-25"},
		{"2024-07-01T00:00", "2024-07-01"},
		{"2024-07-01", "2024-07-01"},
		{"", ""},
		{"garbage", "garbage"},      // lexical fallback, not dropped
		{"n/a", "n/a"},              // slash form with non-numeric parts
		{" 2024-02-03 \n", "2024-02-03"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.in))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"€1,234.56", 1234.56},
		{"$99", 99},
		{"-12.5", -12.5},
		{"nan", 0},
		{"", 0},
		{"abc", 0},
		{"3.5 hrs", 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 1000, ParseCount("1,000"))
	assert.Equal(t, 0, ParseCount("n/a"))
}

func TestIsCanonicalDate(t *testing.T) {
	assert.True(t, IsCanonicalDate("2024-01-05"))
	assert.False(t, IsCanonicalDate("2024-01-05T00:00"))
	assert.False(t, IsCanonicalDate("garbage"))
	assert.False(t, IsCanonicalDate(""))
}
