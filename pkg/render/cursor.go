package render

// PageBreaker starts a new page.
type PageBreaker interface {
	AddPage()
}

// Cursor tracks the vertical write position on the current page.
type Cursor struct {
	y     float64
	top   float64
	pages PageBreaker
}

func NewCursor(start, top float64, pages PageBreaker) *Cursor {
	return &Cursor{y: start, top: top, pages: pages}
}

func (c *Cursor) Position() float64 {
	return c.y
}

func (c *Cursor) Advance(amount float64) {
	c.y += amount
}

// MoveTo places the cursor at y, typically where a table finished drawing.
func (c *Cursor) MoveTo(y float64) {
	c.y = y
}

// EnsureRoom starts a new page when the cursor is past threshold and reports
// whether it did.
func (c *Cursor) EnsureRoom(threshold float64) bool {
	if c.y <= threshold {
		return false
	}
	c.pages.AddPage()
	c.y = c.top
	return true
}
