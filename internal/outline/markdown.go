package outline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	deckgen "github.com/alnah/go-deckgen"
)

// md parses outlines. Heading attributes carry explicit slide options:
//
//	# Growth {kind="chart" chart="line"}
var md = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(parser.WithAttribute()),
)

// slideDraft collects the blocks of one slide before its kind is decided.
type slideDraft struct {
	spec      deckgen.SlideSpec
	kind      string
	chartType string
	lists     [][]string
	paras     []string
	tables    []rawTable
	image     *deckgen.Visual
}

// parseMarkdown maps a Markdown document to an outline. Every level-one
// heading starts a slide; level-two headings become subtitles; lists,
// tables, paragraphs and images fill the slide. The first heading names
// the topic.
func parseMarkdown(src []byte) (*deckgen.Outline, error) {
	doc := md.Parser().Parse(text.NewReader(src))

	o := &deckgen.Outline{}
	var cur *slideDraft
	flush := func() {
		if cur != nil {
			o.Slides = append(o.Slides, cur.build(len(o.Slides)))
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			flush()
			cur = &slideDraft{spec: deckgen.SlideSpec{ID: len(o.Slides) + 1, Title: plainText(h, src)}}
			cur.kind = attr(h, "kind")
			cur.chartType = attr(h, "chart")
			if o.Topic == "" {
				o.Topic = cur.spec.Title
			}
			continue
		}
		if cur == nil {
			continue // preamble
		}

		switch n := n.(type) {
		case *ast.Heading:
			if cur.spec.Subtitle == "" {
				cur.spec.Subtitle = plainText(n, src)
			} else {
				cur.paras = append(cur.paras, plainText(n, src))
			}
		case *ast.List:
			cur.lists = append(cur.lists, listItems(n, src))
		case *east.Table:
			cur.tables = append(cur.tables, readTable(n, src))
		case *ast.Paragraph:
			if img := firstImage(n); img != nil && cur.image == nil {
				cur.image = &deckgen.Visual{
					NeedImage:   true,
					ImagePrompt: plainText(img, src),
					Caption:     string(img.Title),
				}
			}
			if s := plainText(n, src); s != "" {
				cur.paras = append(cur.paras, s)
			}
		}
	}
	flush()

	if len(o.Slides) == 0 {
		return nil, fmt.Errorf("%w: no level-one headings", ErrEmptyOutline)
	}
	return o, nil
}

// build decides the slide kind and fills the kind-specific fields. An
// explicit kind attribute wins over inference.
func (d *slideDraft) build(index int) deckgen.SlideSpec {
	s := d.spec
	s.Visual = d.image

	kind := d.kind
	if kind == "" {
		kind = string(d.infer(index))
	}
	s.Kind = kind

	switch deckgen.ParseKind(kind) {
	case deckgen.KindCover:
		if s.Subtitle == "" && len(d.paras) > 0 {
			s.Subtitle = d.paras[0]
		}
	case deckgen.KindTwoColumn:
		c := &deckgen.Content{}
		if len(d.lists) > 0 {
			c.LeftColumn = d.lists[0]
		}
		if len(d.lists) > 1 {
			c.RightColumn = d.lists[1]
		}
		s.Content = c
	case deckgen.KindTable:
		if len(d.tables) > 0 {
			s.Table = d.tables[0].data()
		}
	case deckgen.KindChart:
		if len(d.tables) > 0 {
			s.Chart = d.tables[0].chart(d.chartType)
		}
	default:
		s.Content = d.content()
	}
	return s
}

// infer guesses the kind from the blocks present.
func (d *slideDraft) infer(index int) deckgen.Kind {
	switch {
	case len(d.tables) > 0:
		return deckgen.KindTable
	case len(d.lists) >= 2:
		return deckgen.KindTwoColumn
	case len(d.lists) == 1:
		return deckgen.KindBulletedList
	case d.image != nil:
		return deckgen.KindImageFeature
	case index == 0:
		return deckgen.KindCover
	}
	return deckgen.KindBulletedList
}

func (d *slideDraft) content() *deckgen.Content {
	var bullets []string
	for _, l := range d.lists {
		bullets = append(bullets, l...)
	}
	c := &deckgen.Content{BulletPoints: bullets, TextBody: strings.Join(d.paras, " ")}
	if len(c.BulletPoints) == 0 && c.TextBody == "" {
		return nil
	}
	return c
}

// attr returns a heading attribute as a string.
func attr(n ast.Node, name string) string {
	v, ok := n.AttributeString(name)
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case []byte:
		return strings.TrimSpace(string(v))
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

// plainText concatenates the text under n, images excluded unless n is
// the image itself.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				b.Write(c.Segment.Value(src))
				if c.SoftLineBreak() || c.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(c.Value)
			case *ast.Image:
				// alt text is the image prompt, not slide text
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// listItems flattens a list, nested items included, to one line per item.
func listItems(l *ast.List, src []byte) []string {
	var items []string
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var line strings.Builder
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				if s := strings.TrimSpace(line.String()); s != "" {
					items = append(items, s)
				}
				line.Reset()
				items = append(items, listItems(sub, src)...)
				continue
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(plainText(c, src))
		}
		if s := strings.TrimSpace(line.String()); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// rawTable is a GFM table with cells as written.
type rawTable struct {
	headers []string
	rows    [][]string
}

func readTable(t *east.Table, src []byte) rawTable {
	var rt rawTable
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, plainText(cell, src))
		}
		if _, ok := row.(*east.TableHeader); ok {
			rt.headers = cells
			continue
		}
		rt.rows = append(rt.rows, cells)
	}
	return rt
}

// data converts the table. Numeric cells become numbers.
func (rt rawTable) data() *deckgen.TableData {
	data := &deckgen.TableData{Headers: rt.headers}
	for _, cells := range rt.rows {
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = cellValue(c)
		}
		data.Rows = append(data.Rows, values)
	}
	return data
}

func cellValue(s string) any {
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return f
	}
	return s
}

// chart reads the first column as labels, kept verbatim, and the second
// as values. Rows whose value is not numeric are skipped.
func (rt rawTable) chart(chartType string) *deckgen.ChartData {
	c := &deckgen.ChartData{Type: chartType}
	if len(rt.headers) > 1 {
		c.Title = rt.headers[1]
	}
	for _, row := range rt.rows {
		if len(row) < 2 {
			continue
		}
		v, ok := cellValue(row[1]).(float64)
		if !ok {
			continue
		}
		c.Labels = append(c.Labels, row[0])
		c.Values = append(c.Values, v)
	}
	return c
}

// firstImage returns the first image inside a paragraph.
func firstImage(p *ast.Paragraph) *ast.Image {
	var found *ast.Image
	_ = ast.Walk(p, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			found = img
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
