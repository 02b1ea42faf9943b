package render

import "io"

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

type FontStyle string

const (
	FontNormal FontStyle = ""
	FontBold   FontStyle = "B"
)

// Sink receives the drawing instructions of a render. Coordinates are page
// millimetres, y is the text baseline. Implementations are used by a single
// render and are not safe for concurrent use.
type Sink interface {
	AddPage()
	PageCount() int

	SetFont(style FontStyle, size float64)
	SetTextColor(c Color)
	SetDrawColor(c Color)
	SetFillColor(c Color)

	// Text draws one or more lines starting at (x, y); consecutive lines are
	// spaced by the line height of the current font.
	Text(x, y float64, align Align, lines ...string)
	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, fill, stroke bool)

	// TextWidth measures s in the current font.
	TextWidth(s string) float64
	// LineHeight is the baseline-to-baseline distance of the current font.
	LineHeight() float64

	Output(w io.Writer) error
}
