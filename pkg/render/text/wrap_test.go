package text

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// one unit per rune keeps expectations readable
var runes = MeasureFunc(func(s string) float64 {
	return float64(utf8.RuneCountInString(s))
})

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		expected []string
	}{
		{
			name:     "empty string yields one empty line",
			input:    "",
			maxWidth: 10,
			expected: []string{""},
		},
		{
			name:     "fitting text is returned unchanged",
			input:    "• Hb:  low",
			maxWidth: 10,
			expected: []string{"• Hb:  low"},
		},
		{
			name:     "breaks at whitespace",
			input:    "the quick brown fox jumps",
			maxWidth: 10,
			expected: []string{"the quick", "brown fox", "jumps"},
		},
		{
			name:     "long word is never split",
			input:    "see thrombocytopenia now",
			maxWidth: 8,
			expected: []string{"see", "thrombocytopenia", "now"},
		},
		{
			name:     "newline forces a break",
			input:    "first\nsecond line here",
			maxWidth: 11,
			expected: []string{"first", "second line", "here"},
		},
		{
			name:     "exact width fits",
			input:    "abcde fghij",
			maxWidth: 11,
			expected: []string{"abcde fghij"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Wrap(tt.input, tt.maxWidth, runes))
		})
	}
}

func TestWrap_LinesFitWidth(t *testing.T) {
	input := strings.Repeat("haemoglobin is within the reference interval ", 12)
	for _, line := range Wrap(input, 40, runes) {
		assert.LessOrEqual(t, runes.TextWidth(line), 40.0, line)
	}
}

func TestWrap_Idempotent(t *testing.T) {
	inputs := []string{
		"Mild microcytic hypochromic anaemia suggestive of iron deficiency; correlate with ferritin",
		"• Platelets: thrombocytopenia-associated-bleeding-risk may require urgent review",
		"short",
		"",
	}

	for _, input := range inputs {
		wrapped := Wrap(input, 24, runes)

		var rewrapped []string
		for _, line := range wrapped {
			rewrapped = append(rewrapped, Wrap(line, 24, runes)...)
		}

		assert.Equal(t, wrapped, rewrapped, input)
	}
}
