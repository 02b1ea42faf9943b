// Package pdf implements render.Sink on top of go-pdf/fpdf.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/mediai/report-dashboard/pkg/render"
)

const (
	fontFamily       = "Helvetica"
	lineHeightFactor = 1.15
	ptToMM           = 25.4 / 72
)

type Options struct {
	Title   string
	Author  string
	Creator string
}

// Sink draws onto an A4 portrait document measured in millimetres.
// Page breaks are driven by the caller, so automatic breaking is off.
type Sink struct {
	doc       *fpdf.Fpdf
	translate func(string) string
	size      float64
}

func NewSink(opts Options) *Sink {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		doc.SetAuthor(opts.Author, true)
	}
	if opts.Creator != "" {
		doc.SetCreator(opts.Creator, true)
	}

	s := &Sink{
		doc: doc,
		// Core fonts are cp1252; this maps bullets and accented names.
		translate: doc.UnicodeTranslatorFromDescriptor(""),
		size:      12,
	}
	doc.SetFont(fontFamily, "", s.size)
	doc.AddPage()
	return s
}

func (s *Sink) AddPage() {
	s.doc.AddPage()
}

func (s *Sink) PageCount() int {
	return s.doc.PageCount()
}

func (s *Sink) SetFont(style render.FontStyle, size float64) {
	s.size = size
	s.doc.SetFont(fontFamily, string(style), size)
}

func (s *Sink) SetTextColor(c render.Color) {
	s.doc.SetTextColor(c.R, c.G, c.B)
}

func (s *Sink) SetDrawColor(c render.Color) {
	s.doc.SetDrawColor(c.R, c.G, c.B)
}

func (s *Sink) SetFillColor(c render.Color) {
	s.doc.SetFillColor(c.R, c.G, c.B)
}

func (s *Sink) Text(x, y float64, align render.Align, lines ...string) {
	for i, line := range lines {
		encoded := s.translate(line)
		lx := x
		if align == render.AlignCenter {
			lx = x - s.doc.GetStringWidth(encoded)/2
		}
		s.doc.Text(lx, y+float64(i)*s.LineHeight(), encoded)
	}
}

func (s *Sink) Line(x1, y1, x2, y2 float64) {
	s.doc.Line(x1, y1, x2, y2)
}

func (s *Sink) Rect(x, y, w, h float64, fill, stroke bool) {
	var style string
	switch {
	case fill && stroke:
		style = "FD"
	case fill:
		style = "F"
	case stroke:
		style = "D"
	default:
		return
	}
	s.doc.Rect(x, y, w, h, style)
}

func (s *Sink) TextWidth(str string) float64 {
	return s.doc.GetStringWidth(s.translate(str))
}

func (s *Sink) LineHeight() float64 {
	return s.size * lineHeightFactor * ptToMM
}

// Output writes the finished document. It reports any error fpdf
// accumulated while drawing.
func (s *Sink) Output(w io.Writer) error {
	if err := s.doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
