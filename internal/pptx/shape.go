package pptx

// Shape is an element of a slide's shape tree.
type Shape interface {
	Name() string
	Bounds() Rect
}

type baseShape struct {
	name string
	rect Rect
}

// Name returns the shape name shown in the selection pane.
func (b *baseShape) Name() string { return b.name }

// Bounds returns the shape frame.
func (b *baseShape) Bounds() Rect { return b.rect }

// SetName sets the shape name.
func (b *baseShape) SetName(name string) { b.name = name }

// SetBounds moves and resizes the shape.
func (b *baseShape) SetBounds(r Rect) { b.rect = r }

// Alignment is the horizontal paragraph alignment.
type Alignment string

// Paragraph alignments.
const (
	AlignInherit Alignment = ""
	AlignLeft    Alignment = "l"
	AlignCenter  Alignment = "ctr"
	AlignRight   Alignment = "r"
)

// Anchor is the vertical text anchor of a text body.
type Anchor string

// Text anchors.
const (
	AnchorInherit Anchor = ""
	AnchorTop     Anchor = "t"
	AnchorMiddle  Anchor = "ctr"
	AnchorBottom  Anchor = "b"
)

// Run is a span of uniformly formatted text.
// Zero values inherit from the layout and master.
type Run struct {
	Text   string
	Size   float64 // points
	Bold   bool
	Italic bool
	Color  Color
	Font   string // latin typeface
	FontEA string // east asian typeface
}

// Paragraph is a block of runs.
type Paragraph struct {
	Runs       []Run
	Align      Alignment
	Level      int
	SpaceAfter float64 // points
	NoBullet   bool
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// TextFrame holds the paragraphs of a text-bearing shape.
type TextFrame struct {
	Paragraphs []Paragraph
	Anchor     Anchor
}

// Clear removes all paragraphs.
func (t *TextFrame) Clear() {
	t.Paragraphs = nil
}

// AddParagraph appends a paragraph.
func (t *TextFrame) AddParagraph(p Paragraph) {
	t.Paragraphs = append(t.Paragraphs, p)
}

// SetText replaces the content with a single paragraph holding one run.
func (t *TextFrame) SetText(text string) {
	t.Paragraphs = []Paragraph{{Runs: []Run{{Text: text}}}}
}

// Text returns the paragraphs joined by newlines.
func (t *TextFrame) Text() string {
	var s string
	for i, p := range t.Paragraphs {
		if i > 0 {
			s += "\n"
		}
		s += p.Text()
	}
	return s
}

// Placeholder is a layout-inherited region on a slide.
type Placeholder struct {
	baseShape
	TextFrame
	Idx  int
	Type PlaceholderType
}

// TextBox is a free-standing text shape.
type TextBox struct {
	baseShape
	TextFrame
}

// Picture is an embedded raster image.
type Picture struct {
	baseShape
	Data        []byte
	Format      string // png, jpeg or gif
	Description string
}

// TableCell is one cell of a table.
type TableCell struct {
	Text  string
	Size  float64
	Bold  bool
	Color Color
	Fill  Color
}

// Table is a graphic frame holding a grid of cells.
type Table struct {
	baseShape
	rows [][]TableCell
	cols int
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return t.cols }

// Cell returns the cell at (row, col), or nil when out of range.
func (t *Table) Cell(row, col int) *TableCell {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= t.cols {
		return nil
	}
	return &t.rows[row][col]
}

// ChartKind is a supported chart family.
type ChartKind string

// Chart kinds.
const (
	ChartColumn ChartKind = "column" // clustered vertical bars
	ChartBar    ChartKind = "bar"    // clustered horizontal bars
	ChartLine   ChartKind = "line"
	ChartPie    ChartKind = "pie"
)

// Valid reports whether the writer supports the kind.
func (k ChartKind) Valid() bool {
	switch k {
	case ChartColumn, ChartBar, ChartLine, ChartPie:
		return true
	}
	return false
}

// Series is one data series of a chart. Values align with the chart
// categories by position.
type Series struct {
	Name   string
	Values []float64
	Color  Color
}

// Chart is a graphic frame referencing a chart part.
type Chart struct {
	baseShape
	Kind       ChartKind
	Title      string
	Categories []string
	Series     []Series
	Legend     bool
}

// PointCount returns the number of data points of the first series.
func (c *Chart) PointCount() int {
	if len(c.Series) == 0 {
		return 0
	}
	return len(c.Series[0].Values)
}
