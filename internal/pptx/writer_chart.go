package pptx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Axis ids shared by the category and value axes of bar and line charts.
const (
	catAxisID = 111111111
	valAxisID = 222222222
)

func (w *packageWriter) writeChartPart(part chartPart) error {
	c := part.chart
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<c:chartSpace xmlns:c="%s" xmlns:a="%s" xmlns:r="%s">`, nsChart, nsDrawingML, nsOfficeDocRels)
	b.WriteString(`<c:roundedCorners val="0"/><c:chart>`)

	if c.Title != "" {
		fmt.Fprintf(&b, `<c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>%s</a:t></a:r></a:p></c:rich></c:tx><c:overlay val="0"/></c:title>`,
			xmlEscape(c.Title))
		b.WriteString(`<c:autoTitleDeleted val="0"/>`)
	} else {
		b.WriteString(`<c:autoTitleDeleted val="1"/>`)
	}

	catPos, valPos := axisPositions(c.Kind)
	b.WriteString(`<c:plotArea><c:layout/>`)
	switch c.Kind {
	case ChartPie:
		b.WriteString(`<c:pieChart><c:varyColors val="1"/>`)
		writeSeries(&b, c)
		b.WriteString(`<c:firstSliceAng val="0"/></c:pieChart>`)
	case ChartLine:
		b.WriteString(`<c:lineChart><c:grouping val="standard"/><c:varyColors val="0"/>`)
		writeSeries(&b, c)
		fmt.Fprintf(&b, `<c:marker val="1"/><c:axId val="%d"/><c:axId val="%d"/></c:lineChart>`, catAxisID, valAxisID)
		writeAxes(&b, catPos, valPos)
	default:
		dir := "col"
		if c.Kind == ChartBar {
			dir = "bar"
		}
		fmt.Fprintf(&b, `<c:barChart><c:barDir val="%s"/><c:grouping val="clustered"/><c:varyColors val="0"/>`, dir)
		writeSeries(&b, c)
		fmt.Fprintf(&b, `<c:gapWidth val="150"/><c:axId val="%d"/><c:axId val="%d"/></c:barChart>`, catAxisID, valAxisID)
		writeAxes(&b, catPos, valPos)
	}
	b.WriteString(`</c:plotArea>`)

	if c.Legend {
		pos := "b"
		if c.Kind == ChartPie {
			pos = "r"
		}
		fmt.Fprintf(&b, `<c:legend><c:legendPos val="%s"/><c:overlay val="0"/></c:legend>`, pos)
	}
	b.WriteString(`<c:plotVisOnly val="1"/><c:dispBlanksAs val="gap"/></c:chart></c:chartSpace>`)

	return w.writePart("ppt/charts/"+part.name, b.String())
}

func writeSeries(b *strings.Builder, c *Chart) {
	for i, s := range c.Series {
		fmt.Fprintf(b, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`, i, i)
		fmt.Fprintf(b, `<c:tx><c:strRef><c:f>Sheet1!$%s$1</c:f><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>%s</c:v></c:pt></c:strCache></c:strRef></c:tx>`,
			columnName(i+1), xmlEscape(s.Name))

		if !s.Color.IsZero() && c.Kind != ChartPie {
			fill := fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, s.Color.hex())
			if c.Kind == ChartLine {
				fmt.Fprintf(b, `<c:spPr><a:ln w="28575">%s</a:ln></c:spPr>`, fill)
			} else {
				fmt.Fprintf(b, `<c:spPr>%s</c:spPr>`, fill)
			}
		}

		switch c.Kind {
		case ChartLine:
			b.WriteString(`<c:marker><c:symbol val="circle"/></c:marker>`)
		case ChartColumn, ChartBar:
			b.WriteString(`<c:invertIfNegative val="0"/>`)
		}

		n := len(s.Values)
		fmt.Fprintf(b, `<c:cat><c:strRef><c:f>Sheet1!$A$2:$A$%d</c:f><c:strCache><c:ptCount val="%d"/>`, n+1, n)
		for j := 0; j < n; j++ {
			label := ""
			if j < len(c.Categories) {
				label = c.Categories[j]
			}
			fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, j, xmlEscape(label))
		}
		b.WriteString(`</c:strCache></c:strRef></c:cat>`)

		col := columnName(i + 2)
		fmt.Fprintf(b, `<c:val><c:numRef><c:f>Sheet1!$%s$2:$%s$%d</c:f><c:numCache><c:formatCode>General</c:formatCode><c:ptCount val="%d"/>`, col, col, n+1, n)
		for j, v := range s.Values {
			fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, j, strconv.FormatFloat(v, 'f', -1, 64))
		}
		b.WriteString(`</c:numCache></c:numRef></c:val>`)

		if c.Kind == ChartLine {
			b.WriteString(`<c:smooth val="0"/>`)
		}
		b.WriteString(`</c:ser>`)
	}
}

// axisPositions returns the category and value axis positions.
func axisPositions(kind ChartKind) (string, string) {
	if kind == ChartBar {
		return "l", "b"
	}
	return "b", "l"
}

func writeAxes(b *strings.Builder, catPos, valPos string) {
	fmt.Fprintf(b, `<c:catAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="%s"/><c:numFmt formatCode="General" sourceLinked="1"/><c:tickLblPos val="nextTo"/><c:crossAx val="%d"/><c:crosses val="autoZero"/><c:auto val="1"/><c:lblAlgn val="ctr"/><c:lblOffset val="100"/></c:catAx>`,
		catAxisID, catPos, valAxisID)
	fmt.Fprintf(b, `<c:valAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="%s"/><c:majorGridlines/><c:numFmt formatCode="General" sourceLinked="1"/><c:tickLblPos val="nextTo"/><c:crossAx val="%d"/><c:crosses val="autoZero"/><c:crossBetween val="between"/></c:valAx>`,
		valAxisID, valPos, catAxisID)
}

// columnName converts a 1-based column number to a spreadsheet column name.
func columnName(n int) string {
	var s string
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
