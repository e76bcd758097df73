package pptx

import "fmt"

// Slide is one slide of a presentation. A Slide is not safe for concurrent
// mutation.
type Slide struct {
	layout int
	shapes []Shape
	nextID int
}

// LayoutIndex returns the index of the layout the slide was created from.
func (s *Slide) LayoutIndex() int {
	return s.layout
}

// Shapes returns the shape tree in z-order.
func (s *Slide) Shapes() []Shape {
	return s.shapes
}

// Placeholder returns the placeholder with the given idx.
func (s *Slide) Placeholder(idx int) (*Placeholder, bool) {
	for _, shape := range s.shapes {
		if ph, ok := shape.(*Placeholder); ok && ph.Idx == idx {
			return ph, true
		}
	}
	return nil, false
}

// TitlePlaceholder returns the first title or centered-title placeholder.
func (s *Slide) TitlePlaceholder() (*Placeholder, bool) {
	for _, shape := range s.shapes {
		if ph, ok := shape.(*Placeholder); ok && ph.Type.IsTitle() {
			return ph, true
		}
	}
	return nil, false
}

// Remove deletes a shape from the slide. It reports whether the shape was
// present.
func (s *Slide) Remove(target Shape) bool {
	for i, shape := range s.shapes {
		if shape == target {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// AddTextBox appends an empty text box.
func (s *Slide) AddTextBox(r Rect) *TextBox {
	tb := &TextBox{baseShape: baseShape{name: s.autoName("TextBox"), rect: r}}
	s.shapes = append(s.shapes, tb)
	return tb
}

// AddPicture appends a picture. format is png, jpeg or gif.
func (s *Slide) AddPicture(r Rect, data []byte, format string) *Picture {
	pic := &Picture{
		baseShape: baseShape{name: s.autoName("Picture"), rect: r},
		Data:      data,
		Format:    format,
	}
	s.shapes = append(s.shapes, pic)
	return pic
}

// AddTable appends a rows x cols table with empty cells.
func (s *Slide) AddTable(r Rect, rows, cols int) *Table {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	grid := make([][]TableCell, rows)
	for i := range grid {
		grid[i] = make([]TableCell, cols)
	}
	t := &Table{
		baseShape: baseShape{name: s.autoName("Table"), rect: r},
		rows:      grid,
		cols:      cols,
	}
	s.shapes = append(s.shapes, t)
	return t
}

// AddChart appends an empty chart of the given kind.
func (s *Slide) AddChart(r Rect, kind ChartKind) *Chart {
	c := &Chart{
		baseShape: baseShape{name: s.autoName("Chart"), rect: r},
		Kind:      kind,
		Legend:    true,
	}
	s.shapes = append(s.shapes, c)
	return c
}

func (s *Slide) autoName(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s %d", prefix, s.nextID)
}
