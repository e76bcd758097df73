package pptx

import (
	"encoding/xml"
	"fmt"
	"slices"
	"strings"
)

// Namespaces.
const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsChart          = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDocPropsVTypes = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"
)

// Relationship types.
const (
	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypePresProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relTypeViewProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTypeTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeChart       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
)

// Content types.
const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
	ctChart        = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
)

// MediaType is the MIME type of a .pptx package.
const MediaType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Master and layout ids share one id space that must start above 2^31.
const masterID int64 = 2147483648

func (w *packageWriter) writeContentTypes() error {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<Types xmlns="%s">`, nsContentTypes)
	fmt.Fprintf(&b, "\n  "+`<Default Extension="rels" ContentType="%s"/>`, ctRels)
	b.WriteString("\n  " + `<Default Extension="xml" ContentType="application/xml"/>`)

	seen := make(map[string]bool)
	if pkg := w.p.tpl.pkg; pkg != nil {
		exts := make([]string, 0, len(pkg.defaults))
		for ext := range pkg.defaults {
			exts = append(exts, ext)
		}
		slices.Sort(exts)
		for _, ext := range exts {
			seen[ext] = true
			fmt.Fprintf(&b, "\n  "+`<Default Extension="%s" ContentType="%s"/>`, ext, pkg.defaults[ext])
		}
	}
	for _, m := range w.media {
		ext := m.name[strings.LastIndexByte(m.name, '.')+1:]
		if seen[ext] {
			continue
		}
		seen[ext] = true
		fmt.Fprintf(&b, "\n  "+`<Default Extension="%s" ContentType="%s"/>`, ext, pictureContentType(ext))
	}

	override := func(part, ct string) {
		fmt.Fprintf(&b, "\n  "+`<Override PartName="%s" ContentType="%s"/>`, part, ct)
	}
	override("/ppt/presentation.xml", ctPresentation)
	override("/ppt/presProps.xml", ctPresProps)
	override("/ppt/viewProps.xml", ctViewProps)
	override("/ppt/tableStyles.xml", ctTableStyles)
	if pkg := w.p.tpl.pkg; pkg != nil {
		for _, part := range pkg.parts {
			if part.contentType != "" {
				override("/"+part.name, part.contentType)
			}
		}
	} else {
		override("/"+generatedMasterPart, ctSlideMaster)
		for i := range w.p.tpl.Layouts {
			override("/"+w.layoutPart(i), ctSlideLayout)
		}
		override("/"+generatedThemePart, ctTheme)
	}
	for i := range w.p.slides {
		override(fmt.Sprintf("/ppt/slides/slide%d.xml", i+1), ctSlide)
	}
	for _, c := range w.charts {
		override("/ppt/charts/"+c.name, ctChart)
	}
	override("/docProps/core.xml", ctCoreProps)
	override("/docProps/app.xml", ctExtProps)
	b.WriteString("\n</Types>")

	return w.writePart("[Content_Types].xml", b.String())
}

func (w *packageWriter) writeRootRels() error {
	return w.writeRels("_rels/.rels", []relEntry{
		{id: "rId1", typ: relTypeOfficeDoc, target: "ppt/presentation.xml"},
		{id: "rId2", typ: relTypeCoreProps, target: "docProps/core.xml"},
		{id: "rId3", typ: relTypeExtProps, target: "docProps/app.xml"},
	})
}

// presentationRels lays out presentation.xml.rels: master first, then one
// entry per slide, then the fixed document parts.
func (w *packageWriter) presentationRels() []relEntry {
	entries := []relEntry{{id: "rId1", typ: relTypeSlideMaster, target: relTarget("ppt", w.masterPart())}}
	for i := range w.p.slides {
		entries = append(entries, relEntry{
			id:     fmt.Sprintf("rId%d", len(entries)+1),
			typ:    relTypeSlide,
			target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	for _, fixed := range []struct{ typ, target string }{
		{relTypePresProps, "presProps.xml"},
		{relTypeViewProps, "viewProps.xml"},
		{relTypeTableStyles, "tableStyles.xml"},
		{relTypeTheme, relTarget("ppt", w.themePart())},
	} {
		entries = append(entries, relEntry{id: fmt.Sprintf("rId%d", len(entries)+1), typ: fixed.typ, target: fixed.target})
	}
	return entries
}

func (w *packageWriter) writePresentationRels() error {
	return w.writeRels("ppt/_rels/presentation.xml.rels", w.presentationRels())
}

func (w *packageWriter) writePresentation() error {
	var slides strings.Builder
	if len(w.p.slides) > 0 {
		slides.WriteString("\n  <p:sldIdLst>")
		for i := range w.p.slides {
			// rId1 is the master; slides follow in order.
			fmt.Fprintf(&slides, "\n    "+`<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		}
		slides.WriteString("\n  </p:sldIdLst>")
	}

	size := w.p.tpl.SlideSize
	content := fmt.Sprintf(`%s<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">
  <p:sldMasterIdLst>
    <p:sldMasterId id="%d" r:id="rId1"/>
  </p:sldMasterIdLst>%s
  <p:sldSz cx="%d" cy="%d"/>
  <p:notesSz cx="%d" cy="%d"/>
</p:presentation>`,
		xml.Header, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		w.masterID(), slides.String(),
		size.Width, size.Height,
		DefaultSlideHeight, DefaultSlideWidth)
	return w.writePart("ppt/presentation.xml", content)
}

func (w *packageWriter) writePresProps() error {
	return w.writePart("ppt/presProps.xml", fmt.Sprintf(
		`%s<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`,
		xml.Header, nsDrawingML, nsOfficeDocRels, nsPresentationML))
}

func (w *packageWriter) writeViewProps() error {
	return w.writePart("ppt/viewProps.xml", fmt.Sprintf(`%s<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:gridSpacing cx="76200" cy="76200"/>
</p:viewPr>`, xml.Header, nsDrawingML, nsOfficeDocRels, nsPresentationML))
}

func (w *packageWriter) writeTableStyles() error {
	return w.writePart("ppt/tableStyles.xml", fmt.Sprintf(
		`%s<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`,
		xml.Header, nsDrawingML))
}

func (w *packageWriter) writeAppProperties() error {
	content := fmt.Sprintf(`%s<Properties xmlns="%s" xmlns:vt="%s">
  <Application>go-deckgen</Application>
  <PresentationFormat>On-screen Show (16:9)</PresentationFormat>
  <Slides>%d</Slides>
</Properties>`, xml.Header, nsExtProperties, nsDocPropsVTypes, len(w.p.slides))
	return w.writePart("docProps/app.xml", content)
}

func (w *packageWriter) writeCoreProperties() error {
	props := w.p.props
	created := props.Created.UTC().Format("2006-01-02T15:04:05Z")
	content := fmt.Sprintf(`%s<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">
  <dc:title>%s</dc:title>
  <dc:subject>%s</dc:subject>
  <dc:creator>%s</dc:creator>
  <cp:lastModifiedBy>%s</cp:lastModifiedBy>
  <cp:revision>1</cp:revision>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`,
		xml.Header, nsCoreProperties, nsDC, nsDCTerms, nsXSI,
		xmlEscape(props.Title),
		xmlEscape(props.Subject),
		xmlEscape(props.Creator),
		xmlEscape(props.Creator),
		created, created)
	return w.writePart("docProps/core.xml", content)
}
