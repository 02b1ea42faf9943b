package render

import "github.com/mediai/report-dashboard/pkg/render/text"

type TableTheme int

const (
	ThemeStriped TableTheme = iota
	ThemeGrid
)

// Table describes a simple equal-width table spanning the content band.
type Table struct {
	StartY   float64
	Head     []string
	Body     [][]string
	Theme    TableTheme
	HeadFill Color
	FontSize float64
}

// DrawTable draws t starting at t.StartY and returns the y just below the
// last row. Rows are never split: a row that would cross the bottom margin
// moves to a new page, where the head row is repeated.
func DrawTable(s Sink, l Layout, t Table) float64 {
	if len(t.Head) == 0 {
		return t.StartY
	}

	tl := tableLayout{sink: s, layout: l, table: t, colWidth: l.ContentWidth() / float64(len(t.Head))}

	y := t.StartY
	headHeight := tl.rowHeight(t.Head, FontBold)
	if y+headHeight > l.PageBottom() {
		s.AddPage()
		y = l.TopMargin
	}
	y = tl.drawRow(y, t.Head, -1)

	for i, row := range t.Body {
		height := tl.rowHeight(row, FontNormal)
		if y+height > l.PageBottom() {
			s.AddPage()
			y = tl.drawRow(l.TopMargin, t.Head, -1)
		}
		y = tl.drawRow(y, row, i)
	}

	return y
}

type tableLayout struct {
	sink     Sink
	layout   Layout
	table    Table
	colWidth float64
}

func (tl tableLayout) cellLines(cells []string, style FontStyle) [][]string {
	tl.sink.SetFont(style, tl.table.FontSize)
	width := tl.colWidth - 2*tl.layout.TableCellPadding

	out := make([][]string, len(tl.table.Head))
	for j := range out {
		var cell string
		if j < len(cells) {
			cell = cells[j]
		}
		out[j] = text.Wrap(cell, width, tl.sink)
	}
	return out
}

func (tl tableLayout) rowHeight(cells []string, style FontStyle) float64 {
	lines := tl.cellLines(cells, style)
	maxLines := 1
	for _, l := range lines {
		if len(l) > maxLines {
			maxLines = len(l)
		}
	}
	return float64(maxLines)*tl.sink.LineHeight() + 2*tl.layout.TableCellPadding
}

// drawRow draws a row at y; index -1 marks the head row. It returns the y
// below the row.
func (tl tableLayout) drawRow(y float64, cells []string, index int) float64 {
	s := tl.sink
	head := index < 0

	style := FontNormal
	if head {
		style = FontBold
	}
	height := tl.rowHeight(cells, style)
	lines := tl.cellLines(cells, style)

	fill, textColor := tl.rowColors(index)
	stroke := tl.table.Theme == ThemeGrid
	s.SetFillColor(fill)
	s.SetDrawColor(ColorGridLine)
	s.SetTextColor(textColor)

	pad := tl.layout.TableCellPadding
	baseline := y + pad + s.LineHeight()*0.75
	for j := range lines {
		x := tl.layout.MarginLeft + float64(j)*tl.colWidth
		s.Rect(x, y, tl.colWidth, height, true, stroke)
		s.Text(x+pad, baseline, AlignLeft, lines[j]...)
	}

	return y + height
}

func (tl tableLayout) rowColors(index int) (fill Color, textColor Color) {
	switch {
	case index < 0:
		return tl.table.HeadFill, ColorWhite
	case tl.table.Theme == ThemeStriped && index%2 == 1:
		return ColorStripe, ColorLabel
	default:
		return ColorWhite, ColorLabel
	}
}
