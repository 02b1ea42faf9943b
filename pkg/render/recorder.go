package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type OpKind string

const (
	OpPage      OpKind = "page"
	OpFont      OpKind = "font"
	OpTextColor OpKind = "text-color"
	OpDrawColor OpKind = "draw-color"
	OpFillColor OpKind = "fill-color"
	OpText      OpKind = "text"
	OpLine      OpKind = "line"
	OpRect      OpKind = "rect"
)

// Op is one recorded drawing instruction.
type Op struct {
	Kind   OpKind
	Page   int
	X, Y   float64
	X2, Y2 float64 // line end, or width and height of a rect
	Lines  []string
	Align  Align
	Style  FontStyle
	Size   float64
	Color  Color
	Fill   bool
	Stroke bool
}

// Recorder is a Sink that keeps the instructions instead of drawing them.
// Text is measured with a fixed average glyph width so layouts are
// reproducible without font metrics.
type Recorder struct {
	ops   []Op
	page  int
	style FontStyle
	size  float64
}

const recorderGlyphWidth = 0.18 // mm per rune per point of font size

func NewRecorder() *Recorder {
	return &Recorder{page: 1, size: 12}
}

func (r *Recorder) Ops() []Op {
	return r.ops
}

// Texts returns the recorded text instructions in drawing order.
func (r *Recorder) Texts() []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

// FindText returns the first text instruction whose first line equals s.
func (r *Recorder) FindText(s string) (Op, bool) {
	for _, op := range r.Texts() {
		if len(op.Lines) > 0 && op.Lines[0] == s {
			return op, true
		}
	}
	return Op{}, false
}

func (r *Recorder) AddPage() {
	r.page++
	r.ops = append(r.ops, Op{Kind: OpPage, Page: r.page})
}

func (r *Recorder) PageCount() int {
	return r.page
}

func (r *Recorder) SetFont(style FontStyle, size float64) {
	r.style, r.size = style, size
	r.ops = append(r.ops, Op{Kind: OpFont, Page: r.page, Style: style, Size: size})
}

func (r *Recorder) SetTextColor(c Color) {
	r.ops = append(r.ops, Op{Kind: OpTextColor, Page: r.page, Color: c})
}

func (r *Recorder) SetDrawColor(c Color) {
	r.ops = append(r.ops, Op{Kind: OpDrawColor, Page: r.page, Color: c})
}

func (r *Recorder) SetFillColor(c Color) {
	r.ops = append(r.ops, Op{Kind: OpFillColor, Page: r.page, Color: c})
}

func (r *Recorder) Text(x, y float64, align Align, lines ...string) {
	r.ops = append(r.ops, Op{
		Kind:  OpText,
		Page:  r.page,
		X:     x,
		Y:     y,
		Lines: append([]string(nil), lines...),
		Align: align,
		Style: r.style,
		Size:  r.size,
	})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, Op{Kind: OpLine, Page: r.page, X: x1, Y: y1, X2: x2, Y2: y2})
}

func (r *Recorder) Rect(x, y, w, h float64, fill, stroke bool) {
	r.ops = append(r.ops, Op{Kind: OpRect, Page: r.page, X: x, Y: y, X2: w, Y2: h, Fill: fill, Stroke: stroke})
}

func (r *Recorder) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * recorderGlyphWidth
}

func (r *Recorder) LineHeight() float64 {
	return r.size * 1.15 * 25.4 / 72
}

// Output writes a plain-text listing of the text, line and page instructions.
func (r *Recorder) Output(w io.Writer) error {
	for _, op := range r.ops {
		var line string
		switch op.Kind {
		case OpPage:
			line = fmt.Sprintf("--- page %d ---", op.Page)
		case OpText:
			line = fmt.Sprintf("p%d text  (%6.1f,%6.1f) %4.1f%s %s",
				op.Page, op.X, op.Y, op.Size, op.Style, strings.Join(op.Lines, " / "))
		case OpLine:
			line = fmt.Sprintf("p%d line  (%6.1f,%6.1f) -> (%6.1f,%6.1f)", op.Page, op.X, op.Y, op.X2, op.Y2)
		default:
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
