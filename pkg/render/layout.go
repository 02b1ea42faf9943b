package render

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

func Gray(level int) Color {
	return Color{R: level, G: level, B: level}
}

var (
	ColorBrand      = Color{R: 30, G: 64, B: 175}
	ColorInk        = Gray(0)
	ColorMuted      = Gray(100)
	ColorLabel      = Gray(80)
	ColorRule       = Gray(200)
	ColorAlert      = Color{R: 220, G: 38, B: 38}
	ColorResultHead = Color{R: 37, G: 99, B: 235}
	ColorMedicine   = Color{R: 16, G: 185, B: 129}
	ColorWhite      = Gray(255)
	ColorStripe     = Gray(245)
	ColorGridLine   = Gray(200)
)

// Layout holds the page geometry and spacing of the exported report.
// All values are in millimetres on an A4 portrait page.
type Layout struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginRight  float64 // x of the right edge of the content band
	CenterX      float64
	ColumnX      float64 // x of the right-hand info block
	TopMargin    float64 // y a fresh page starts at
	BottomMargin float64

	TitleY        float64
	SubtitleY     float64
	RuleY         float64
	InfoY         float64
	InfoLineGaps  [3]float64
	InfoBandDepth float64

	TitleFontSize    float64
	SubtitleFontSize float64
	HeadingFontSize  float64
	InfoFontSize     float64
	StatusFontSize   float64
	BodyFontSize     float64
	TableFontSize    float64

	HeadingGap       float64
	TableGap         float64 // between a section heading and its table
	TableTrailing    float64
	TableCellPadding float64

	InterpretationThreshold float64
	StatusGap               float64
	FindingsLabelGap        float64
	FindingIndent           float64
	FindingWidth            float64
	FindingLineHeight       float64
	FindingsTrailing        float64

	PathologistThreshold float64
	SubsectionTitleGap   float64
	BulletIndent         float64
	BulletWidth          float64
	BulletLineHeight     float64
	BulletGap            float64
	SubsectionTrailing   float64

	MedicineThreshold float64
}

func DefaultLayout() Layout {
	return Layout{
		PageWidth:    210,
		PageHeight:   297,
		MarginLeft:   15,
		MarginRight:  195,
		CenterX:      105,
		ColumnX:      110,
		TopMargin:    20,
		BottomMargin: 15,

		TitleY:        20,
		SubtitleY:     28,
		RuleY:         35,
		InfoY:         45,
		InfoLineGaps:  [3]float64{6, 11, 16},
		InfoBandDepth: 25,

		TitleFontSize:    20,
		SubtitleFontSize: 10,
		HeadingFontSize:  12,
		InfoFontSize:     9,
		StatusFontSize:   10,
		BodyFontSize:     9,
		TableFontSize:    8,

		HeadingGap:       8,
		TableGap:         5,
		TableTrailing:    15,
		TableCellPadding: 1.76,

		InterpretationThreshold: 250,
		StatusGap:               8,
		FindingsLabelGap:        5,
		FindingIndent:           20,
		FindingWidth:            180,
		FindingLineHeight:       5,
		FindingsTrailing:        5,

		PathologistThreshold: 240,
		SubsectionTitleGap:   5,
		BulletIndent:         20,
		BulletWidth:          175,
		BulletLineHeight:     4,
		BulletGap:            2,
		SubsectionTrailing:   3,

		MedicineThreshold: 240,
	}
}

// ContentWidth is the width of the band tables are laid out in.
func (l Layout) ContentWidth() float64 {
	return l.MarginRight - l.MarginLeft
}

// PageBottom is the lowest y a table row may reach.
func (l Layout) PageBottom() float64 {
	return l.PageHeight - l.BottomMargin
}
