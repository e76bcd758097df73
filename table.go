package deckgen

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/alnah/go-deckgen/internal/pptx"
)

// Table sizes in points.
const (
	tableHeaderSize = 14
	tableBodySize   = 12
)

// TableStyle holds the colors of a rendered table.
type TableStyle struct {
	HeaderFill pptx.Color
	HeaderText pptx.Color
	BodyText   pptx.Color
	BandFill   pptx.Color
}

// tableStyleFrom derives the table colors from a template palette.
func tableStyleFrom(p pptx.Palette) TableStyle {
	return TableStyle{
		HeaderFill: p.Accent,
		HeaderText: p.AccentText,
		BodyText:   p.Text,
		BandFill:   p.Band,
	}
}

// DefaultTableGeometry places a table of rows rows (header included) half an
// inch from the sides and 1.5in from the top. Height grows 0.4in per row
// from a 0.4in base and is capped at 70% of the slide height.
func DefaultTableGeometry(size pptx.SlideSize, rows int) pptx.Rect {
	h := pptx.Inch(0.4) + pptx.Inch(0.4)*int64(rows)
	if limit := int64(float64(size.Height) * 0.7); h > limit {
		h = limit
	}
	return pptx.Rect{
		X: pptx.Inch(0.5),
		Y: pptx.Inch(1.5),
		W: size.Width - pptx.Inch(1),
		H: h,
	}
}

// renderTable draws data as a header row plus one row per data row.
// Cells past the header width are ignored and short rows leave trailing
// cells empty.
func renderTable(slide *pptx.Slide, data *TableData, geometry pptx.Rect, style TableStyle) *pptx.Table {
	cols := len(data.Headers)
	tbl := slide.AddTable(geometry, len(data.Rows)+1, cols)

	for c, h := range data.Headers {
		cell := tbl.Cell(0, c)
		cell.Text = h
		cell.Bold = true
		cell.Size = tableHeaderSize
		cell.Color = style.HeaderText
		cell.Fill = style.HeaderFill
	}

	for r, row := range data.Rows {
		for c := 0; c < cols; c++ {
			cell := tbl.Cell(r+1, c)
			cell.Size = tableBodySize
			cell.Color = style.BodyText
			if r%2 == 1 {
				cell.Fill = style.BandFill
			}
			if c < len(row) {
				cell.Text = formatCell(row[c])
			}
		}
	}
	return tbl
}

// formatCell converts a decoded cell value to its display string.
// Integral floats print without decimals and nil prints as empty.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
