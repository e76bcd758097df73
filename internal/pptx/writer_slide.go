package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

func (w *packageWriter) writeSlide(slide *Slide, index int) error {
	rels := w.rels[index]

	var shapes strings.Builder
	id := 2 // 1 is the group shape
	for _, shape := range slide.shapes {
		switch s := shape.(type) {
		case *Placeholder:
			shapes.WriteString(placeholderXML(id, s.name, s.Type, s.Idx, s.rect, anchorAttr(s.Anchor), "", paragraphsXML(s.Paragraphs)))
		case *TextBox:
			shapes.WriteString(textBoxXML(id, s))
		case *Picture:
			relID, ok := rels.byShape[shape]
			if !ok {
				continue
			}
			shapes.WriteString(pictureXML(id, s, relID))
		case *Table:
			shapes.WriteString(tableXML(id, s))
		case *Chart:
			shapes.WriteString(chartFrameXML(id, s, rels.byShape[shape]))
		default:
			continue
		}
		id++
	}

	content := fmt.Sprintf(`%s<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, xml.Header, nsDrawingML, nsOfficeDocRels, nsPresentationML, spTreeHeader, shapes.String())

	return w.writePart(fmt.Sprintf("ppt/slides/slide%d.xml", index+1), content)
}

func anchorAttr(a Anchor) string {
	if a == AnchorInherit {
		return ""
	}
	return fmt.Sprintf(`anchor="%s"`, a)
}

func paragraphsXML(paras []Paragraph) string {
	if len(paras) == 0 {
		return emptyParagraphXML
	}
	var b strings.Builder
	for _, p := range paras {
		b.WriteString(paragraphXML(p))
	}
	return b.String()
}

func paragraphXML(p Paragraph) string {
	var attrs string
	if p.NoBullet {
		attrs += ` marL="0" indent="0"`
	}
	if p.Level > 0 {
		attrs += fmt.Sprintf(` lvl="%d"`, p.Level)
	}
	if p.Align != AlignInherit {
		attrs += fmt.Sprintf(` algn="%s"`, p.Align)
	}

	var props string
	if p.SpaceAfter > 0 {
		props += fmt.Sprintf(`<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, hundredths(p.SpaceAfter))
	}
	if p.NoBullet {
		props += "<a:buNone/>"
	}

	var runs strings.Builder
	for _, r := range p.Runs {
		// A line feed inside a run is a line break within the paragraph.
		for i, segment := range strings.Split(r.Text, "\n") {
			if i > 0 {
				runs.WriteString("            <a:br/>\n")
			}
			seg := r
			seg.Text = strings.TrimSuffix(segment, "\r")
			runs.WriteString(runXML(seg))
		}
	}

	return fmt.Sprintf("          <a:p>\n            <a:pPr%s>%s</a:pPr>\n%s          </a:p>\n", attrs, props, runs.String())
}

func runXML(r Run) string {
	attrs := ` lang="en-US" dirty="0"`
	if r.Size > 0 {
		attrs += fmt.Sprintf(` sz="%d"`, hundredths(r.Size))
	}
	if r.Bold {
		attrs += ` b="1"`
	}
	if r.Italic {
		attrs += ` i="1"`
	}

	var children string
	if !r.Color.IsZero() {
		children += fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, r.Color.hex())
	}
	if r.Font != "" {
		children += fmt.Sprintf(`<a:latin typeface="%s"/>`, xmlEscape(r.Font))
	}
	if r.FontEA != "" {
		children += fmt.Sprintf(`<a:ea typeface="%s"/>`, xmlEscape(r.FontEA))
	}

	return fmt.Sprintf("            <a:r>\n              <a:rPr%s>%s</a:rPr>\n              <a:t>%s</a:t>\n            </a:r>\n",
		attrs, children, xmlEscape(r.Text))
}

func textBoxXML(id int, tb *TextBox) string {
	anchor := ""
	if tb.Anchor != AnchorInherit {
		anchor = " " + anchorAttr(tb.Anchor)
	}
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
          <a:noFill/>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square" rtlCol="0"%s><a:noAutofit/></a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(tb.name), tb.rect.X, tb.rect.Y, tb.rect.W, tb.rect.H, anchor, paragraphsXML(tb.Paragraphs))
}

func pictureXML(id int, pic *Picture, relID string) string {
	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch><a:fillRect/></a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
        </p:spPr>
      </p:pic>
`, id, xmlEscape(pic.name), xmlEscape(pic.Description), relID, pic.rect.X, pic.rect.Y, pic.rect.W, pic.rect.H)
}

func tableXML(id int, t *Table) string {
	var grid strings.Builder
	if t.cols > 0 {
		colWidth := t.rect.W / int64(t.cols)
		for i := 0; i < t.cols; i++ {
			fmt.Fprintf(&grid, "                <a:gridCol w=\"%d\"/>\n", colWidth)
		}
	}

	var rows strings.Builder
	if len(t.rows) > 0 {
		rowHeight := t.rect.H / int64(len(t.rows))
		for _, row := range t.rows {
			fmt.Fprintf(&rows, "              <a:tr h=\"%d\">\n", rowHeight)
			for _, cell := range row {
				rows.WriteString(tableCellXML(cell))
			}
			rows.WriteString("              </a:tr>\n")
		}
	}

	return fmt.Sprintf(`      <p:graphicFrame>
        <p:nvGraphicFramePr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvGraphicFramePr>
            <a:graphicFrameLocks noGrp="1"/>
          </p:cNvGraphicFramePr>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblPr firstRow="1" bandRow="1"/>
              <a:tblGrid>
%s              </a:tblGrid>
%s            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, id, xmlEscape(t.name), t.rect.X, t.rect.Y, t.rect.W, t.rect.H, grid.String(), rows.String())
}

func tableCellXML(c TableCell) string {
	var para string
	if c.Text == "" {
		para = "<a:p><a:endParaRPr lang=\"en-US\" dirty=\"0\"/></a:p>"
	} else {
		attrs := ` lang="en-US" dirty="0"`
		if c.Size > 0 {
			attrs += fmt.Sprintf(` sz="%d"`, hundredths(c.Size))
		}
		if c.Bold {
			attrs += ` b="1"`
		}
		var fill string
		if !c.Color.IsZero() {
			fill = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, c.Color.hex())
		}
		para = fmt.Sprintf(`<a:p><a:r><a:rPr%s>%s</a:rPr><a:t>%s</a:t></a:r></a:p>`, attrs, fill, xmlEscape(c.Text))
	}

	var cellFill string
	if !c.Fill.IsZero() {
		cellFill = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, c.Fill.hex())
	}

	return fmt.Sprintf(`                <a:tc>
                  <a:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>
                    %s
                  </a:txBody>
                  <a:tcPr anchor="ctr">%s</a:tcPr>
                </a:tc>
`, para, cellFill)
}

func chartFrameXML(id int, c *Chart, relID string) string {
	return fmt.Sprintf(`      <p:graphicFrame>
        <p:nvGraphicFramePr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvGraphicFramePr/>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="%s">
            <c:chart xmlns:c="%s" r:id="%s"/>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, id, xmlEscape(c.name), c.rect.X, c.rect.Y, c.rect.W, c.rect.H, nsChart, nsChart, relID)
}
