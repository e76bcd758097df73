package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Write streams the presentation to w as a .pptx package.
func (p *Presentation) Write(w io.Writer) error {
	if p == nil {
		return ErrNilPresentation
	}
	if err := p.tpl.Validate(); err != nil {
		return err
	}

	pw := &packageWriter{p: p, zw: zip.NewWriter(w)}
	pw.plan()
	if err := pw.write(); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePackage, err)
	}
	return nil
}

// packageWriter holds the per-write relationship plan. Relationship ids and
// part names are assigned once in plan so slide XML and slide rels agree.
type packageWriter struct {
	p        *Presentation
	zw       *zip.Writer
	rels     []slideRels
	media    []mediaPart
	charts   []chartPart
	mediaSeq int
	chartSeq int
}

type relEntry struct {
	id     string
	typ    string
	target string
}

type slideRels struct {
	entries []relEntry
	byShape map[Shape]string
}

type mediaPart struct {
	name string // e.g. image3.png
	data []byte
}

type chartPart struct {
	name  string // e.g. chart2.xml
	chart *Chart
}

func (w *packageWriter) plan() {
	w.rels = make([]slideRels, len(w.p.slides))
	for i, slide := range w.p.slides {
		sr := slideRels{byShape: make(map[Shape]string)}
		sr.entries = append(sr.entries, relEntry{
			id:     "rId1",
			typ:    relTypeSlideLayout,
			target: relTarget("ppt/slides", w.layoutPart(slide.layout)),
		})

		for _, shape := range slide.shapes {
			id := fmt.Sprintf("rId%d", len(sr.entries)+1)
			switch s := shape.(type) {
			case *Picture:
				if len(s.Data) == 0 {
					continue
				}
				name := w.nextName("ppt/media/", "image", pictureExt(s.Format), &w.mediaSeq)
				w.media = append(w.media, mediaPart{name: name, data: s.Data})
				sr.entries = append(sr.entries, relEntry{id: id, typ: relTypeImage, target: "../media/" + name})
				sr.byShape[shape] = id
			case *Chart:
				name := w.nextName("ppt/charts/", "chart", "xml", &w.chartSeq)
				w.charts = append(w.charts, chartPart{name: name, chart: s})
				sr.entries = append(sr.entries, relEntry{id: id, typ: relTypeChart, target: "../charts/" + name})
				sr.byShape[shape] = id
			}
		}
		w.rels[i] = sr
	}
}

func (w *packageWriter) write() error {
	steps := []func() error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayouts,
		w.writeTheme,
		w.writeTemplateParts,
		w.writeSlides,
		w.writeMedia,
		w.writeCharts,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return w.zw.Close()
}

func (w *packageWriter) writeSlides() error {
	for i, slide := range w.p.slides {
		if err := w.writeSlide(slide, i); err != nil {
			return err
		}
		if err := w.writeRels(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), w.rels[i].entries); err != nil {
			return err
		}
	}
	return nil
}

func (w *packageWriter) writeMedia() error {
	for _, m := range w.media {
		fw, err := w.zw.Create("ppt/media/" + m.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", m.name, err)
		}
		if _, err := fw.Write(m.data); err != nil {
			return fmt.Errorf("writing %s: %w", m.name, err)
		}
	}
	return nil
}

func (w *packageWriter) writeCharts() error {
	for _, c := range w.charts {
		if err := w.writeChartPart(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *packageWriter) writeRels(path string, entries []relEntry) error {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsRelationships)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n  "+`<Relationship Id="%s" Type="%s" Target="%s"/>`, e.id, e.typ, xmlEscape(e.target))
	}
	b.WriteString("\n</Relationships>")
	return w.writePart(path, b.String())
}

func (w *packageWriter) writePart(path, content string) error {
	fw, err := w.zw.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// pictureExt maps a picture format to its part extension.
func pictureExt(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "jpeg"
	case "gif":
		return "gif"
	default:
		return "png"
	}
}

func pictureContentType(ext string) string {
	switch ext {
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// xmlEscape escapes text for element content and attribute values.
func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
