// Package text holds the line-breaking primitives used by the report layout.
package text

import "strings"

// Measurer reports the rendered width of a string in layout units
// for whatever font configuration is current.
type Measurer interface {
	TextWidth(s string) float64
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(s string) float64

func (f MeasureFunc) TextWidth(s string) float64 {
	return f(s)
}

// Wrap breaks s into the fewest lines whose measured width does not exceed
// maxWidth. Lines break only at whitespace; a word wider than maxWidth is kept
// whole on its own line. Explicit newlines always break.
func Wrap(s string, maxWidth float64, m Measurer) []string {
	if s == "" {
		return []string{""}
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxWidth, m)...)
	}
	return lines
}

func wrapParagraph(p string, maxWidth float64, m Measurer) []string {
	if m.TextWidth(p) <= maxWidth {
		return []string{p}
	}

	words := strings.Fields(p)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.TextWidth(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
