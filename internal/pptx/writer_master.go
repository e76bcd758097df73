package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Default body insets in EMU (0.1in left/right, 0.05in top/bottom).
const (
	InsetX int64 = 91440
	InsetY int64 = 45720
)

// spTreeHeader opens a shape tree with the mandatory group properties.
const spTreeHeader = `    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
`

func (w *packageWriter) writeTheme() error {
	tpl := w.p.tpl
	if tpl.pkg != nil {
		return nil
	}
	pal := tpl.Palette
	ea := tpl.Fonts.EastAsian

	content := fmt.Sprintf(`%s<a:theme xmlns:a="%s" name="%s">
  <a:themeElements>
    <a:clrScheme name="%s">
      <a:dk1><a:srgbClr val="%s"/></a:dk1>
      <a:lt1><a:srgbClr val="%s"/></a:lt1>
      <a:dk2><a:srgbClr val="%s"/></a:dk2>
      <a:lt2><a:srgbClr val="%s"/></a:lt2>
      <a:accent1><a:srgbClr val="%s"/></a:accent1>
      <a:accent2><a:srgbClr val="ED7D31"/></a:accent2>
      <a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>
      <a:accent4><a:srgbClr val="FFC000"/></a:accent4>
      <a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>
      <a:accent6><a:srgbClr val="70AD47"/></a:accent6>
      <a:hlink><a:srgbClr val="0563C1"/></a:hlink>
      <a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
    </a:clrScheme>
    <a:fontScheme name="%s">
      <a:majorFont>
        <a:latin typeface="%s"/>
        <a:ea typeface="%s"/>
        <a:cs typeface=""/>
      </a:majorFont>
      <a:minorFont>
        <a:latin typeface="%s"/>
        <a:ea typeface="%s"/>
        <a:cs typeface=""/>
      </a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Office">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
  <a:objectDefaults/>
  <a:extraClrSchemeLst/>
</a:theme>`,
		xml.Header, nsDrawingML, xmlEscape(tpl.Name),
		xmlEscape(tpl.Name),
		pal.Text.hex(), pal.Background.hex(), pal.Title.hex(), pal.Band.hex(), pal.Accent.hex(),
		xmlEscape(tpl.Name),
		xmlEscape(tpl.Fonts.Latin), xmlEscape(ea),
		xmlEscape(tpl.Fonts.Latin), xmlEscape(ea))
	return w.writePart(generatedThemePart, content)
}

func (w *packageWriter) writeSlideMaster() error {
	tpl := w.p.tpl
	if tpl.pkg != nil {
		return nil
	}
	pal := tpl.Palette

	titleRect := Rect{X: 838200, Y: 365125, W: tpl.SlideSize.Width - 2*838200, H: 1325563}
	bodyRect := Rect{X: 838200, Y: 1825625, W: tpl.SlideSize.Width - 2*838200, H: tpl.SlideSize.Height - 1825625 - 681037}

	var shapes strings.Builder
	shapes.WriteString(placeholderXML(2, "Title Placeholder 1", PlaceholderTitle, 0, titleRect, `anchor="ctr"`, "", emptyParagraphXML))
	shapes.WriteString(placeholderXML(3, "Text Placeholder 2", PlaceholderBody, 1, bodyRect, "", "", emptyParagraphXML))

	var layoutIDs strings.Builder
	for i := range tpl.Layouts {
		fmt.Fprintf(&layoutIDs, "\n    "+`<p:sldLayoutId id="%d" r:id="rId%d"/>`, masterID+1+int64(i), i+1)
	}

	content := fmt.Sprintf(`%s<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:bg>
      <p:bgPr>
        <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>%s
  </p:sldLayoutIdLst>
  <p:txStyles>
    <p:titleStyle>
      <a:lvl1pPr algn="l">
        <a:defRPr sz="4000" b="0">
          <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
          <a:latin typeface="+mj-lt"/>
          <a:ea typeface="+mj-ea"/>
        </a:defRPr>
      </a:lvl1pPr>
    </p:titleStyle>
    <p:bodyStyle>
      <a:lvl1pPr marL="228600" indent="-228600">
        <a:spcBef><a:spcPts val="1000"/></a:spcBef>
        <a:buFont typeface="Arial"/>
        <a:buChar char="&#8226;"/>
        <a:defRPr sz="2400">
          <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
          <a:latin typeface="+mn-lt"/>
          <a:ea typeface="+mn-ea"/>
        </a:defRPr>
      </a:lvl1pPr>
      <a:lvl2pPr marL="685800" indent="-228600">
        <a:spcBef><a:spcPts val="500"/></a:spcBef>
        <a:buFont typeface="Arial"/>
        <a:buChar char="&#8226;"/>
        <a:defRPr sz="2000">
          <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
          <a:latin typeface="+mn-lt"/>
          <a:ea typeface="+mn-ea"/>
        </a:defRPr>
      </a:lvl2pPr>
    </p:bodyStyle>
    <p:otherStyle>
      <a:lvl1pPr>
        <a:defRPr sz="1800">
          <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
          <a:latin typeface="+mn-lt"/>
          <a:ea typeface="+mn-ea"/>
        </a:defRPr>
      </a:lvl1pPr>
    </p:otherStyle>
  </p:txStyles>
</p:sldMaster>`,
		xml.Header, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		pal.Background.hex(),
		spTreeHeader, shapes.String(),
		layoutIDs.String(),
		pal.Title.hex(), pal.Text.hex(), pal.Text.hex(), pal.Text.hex())

	if err := w.writePart(generatedMasterPart, content); err != nil {
		return err
	}

	entries := make([]relEntry, 0, len(tpl.Layouts)+1)
	for i := range tpl.Layouts {
		entries = append(entries, relEntry{
			id:     fmt.Sprintf("rId%d", i+1),
			typ:    relTypeSlideLayout,
			target: fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i+1),
		})
	}
	entries = append(entries, relEntry{
		id:     fmt.Sprintf("rId%d", len(tpl.Layouts)+1),
		typ:    relTypeTheme,
		target: "../theme/theme1.xml",
	})
	return w.writeRels("ppt/slideMasters/_rels/slideMaster1.xml.rels", entries)
}

func (w *packageWriter) writeSlideLayouts() error {
	if w.p.tpl.pkg != nil {
		return nil
	}
	for i, layout := range w.p.tpl.Layouts {
		var shapes strings.Builder
		for j, ph := range layout.Placeholders {
			name := ph.Name
			if name == "" {
				name = fmt.Sprintf("Placeholder %d", j+1)
			}
			shapes.WriteString(placeholderXML(j+2, name, ph.Type, ph.Idx, ph.Rect, layoutBodyAttrs(ph.Type), layoutListStyle(ph), emptyParagraphXML))
		}

		content := fmt.Sprintf(`%s<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" preserve="1">
  <p:cSld name="%s">
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sldLayout>`,
			xml.Header, nsDrawingML, nsOfficeDocRels, nsPresentationML,
			xmlEscape(layout.Name), spTreeHeader, shapes.String())

		if err := w.writePart(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), content); err != nil {
			return err
		}
		if err := w.writeRels(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), []relEntry{
			{id: "rId1", typ: relTypeSlideMaster, target: "../slideMasters/slideMaster1.xml"},
		}); err != nil {
			return err
		}
	}
	return nil
}

func layoutBodyAttrs(t PlaceholderType) string {
	switch t {
	case PlaceholderCenterTitle:
		return `anchor="b"`
	case PlaceholderTitle:
		return `anchor="ctr"`
	}
	return ""
}

// layoutListStyle centers cover text, drops bullets on subtitles and pins
// the layout font size when the template sets one.
func layoutListStyle(ph PlaceholderSpec) string {
	var attrs, children string
	switch ph.Type {
	case PlaceholderCenterTitle:
		attrs = ` algn="ctr"`
	case PlaceholderSubtitle:
		attrs = ` marL="0" indent="0" algn="ctr"`
		children = "<a:buNone/>"
	}
	if ph.FontSize > 0 {
		children += fmt.Sprintf(`<a:defRPr sz="%d"/>`, hundredths(ph.FontSize))
	}
	if attrs == "" && children == "" {
		return ""
	}
	return fmt.Sprintf("<a:lvl1pPr%s>%s</a:lvl1pPr>", attrs, children)
}

const emptyParagraphXML = "          <a:p><a:endParaRPr lang=\"en-US\" dirty=\"0\"/></a:p>\n"

// phXML renders the <p:ph> element. Title-type placeholders omit idx 0 and
// body placeholders omit the default type.
func phXML(t PlaceholderType, idx int) string {
	var attrs string
	if t != PlaceholderBody {
		attrs += fmt.Sprintf(` type="%s"`, t)
	}
	if idx != 0 {
		attrs += fmt.Sprintf(` idx="%d"`, idx)
	}
	return "<p:ph" + attrs + "/>"
}

// placeholderXML renders a placeholder shape shared by masters, layouts and
// slides.
func placeholderXML(id int, name string, t PlaceholderType, idx int, r Rect, bodyAttrs, lstStyle, paragraphs string) string {
	if bodyAttrs != "" {
		bodyAttrs = " " + bodyAttrs
	}
	lst := "<a:lstStyle/>"
	if lstStyle != "" {
		lst = "<a:lstStyle>" + lstStyle + "</a:lstStyle>"
	}
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1"/>
          </p:cNvSpPr>
          <p:nvPr>%s</p:nvPr>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
        </p:spPr>
        <p:txBody>
          <a:bodyPr%s/>
          %s
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(name), phXML(t, idx), r.X, r.Y, r.W, r.H, bodyAttrs, lst, paragraphs)
}

// hundredths converts points to the 1/100 pt units used by sz and spcPts.
func hundredths(pt float64) int {
	return int(pt*100 + 0.5)
}
