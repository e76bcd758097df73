package deckgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alnah/go-deckgen/internal/pptx"
)

// Picture geometry.
const (
	captionGap     = 0.1 // inches between picture and caption
	captionHeight  = 0.4 // inches
	captionSize    = 14  // points
	decorationSide = 2.0   // inches, largest decoration
	decorationMin  = 0.5   // inches, smallest decoration
	decorationStep = 0.125 // inches
	decorationEdge = 0.3   // inches from the slide edges
)

// compositor fills the slides of one document. It carries everything that
// is fixed for the duration of a render.
type compositor struct {
	size       pptx.SlideSize
	style      TextStyle
	table      TableStyle
	chartKinds []pptx.ChartKind
	images     ImageSource
	skipImages bool
	logger     *slog.Logger
}

// composite fills slide from spec. A panic while composing marks the slide
// failed and leaves it in the deck partially filled: shapes set before the
// panic stay.
func (c *compositor) composite(ctx context.Context, index int, spec SlideSpec, slide *pptx.Slide, placement Placement) (out SlideOutcome) {
	kind, body := spec.Body()
	out = SlideOutcome{Index: index, ID: spec.ID, Kind: kind, Status: StatusRendered}

	defer func() {
		if r := recover(); r != nil {
			out.Status = StatusFailed
			out.Err = fmt.Errorf("%w: %v", ErrSlideComposition, r)
			c.logger.Error("slide failed", "slide", index, "kind", kind, "error", out.Err)
			return
		}
		if len(out.Warnings) > 0 {
			out.Status = StatusDegraded
			for _, w := range out.Warnings {
				c.logger.Warn(w, "slide", index, "kind", kind)
			}
		}
	}()

	if spec.Title != "" {
		if ph := c.region(slide, placement, RoleTitle); ph != nil {
			ph.SetText(spec.Title)
		} else {
			out.warn("layout has no title region")
		}
	}

	var image *Image
	if spec.Visual.wantsImage() && !c.skipImages {
		image = c.fetch(ctx, spec.Visual.ImagePrompt)
		if image == nil {
			out.warn(WarnImageUnavailable)
		}
	}

	switch b := body.(type) {
	case CoverBody:
		c.fillCover(&out, slide, placement, b)
	case BulletBody:
		c.fillLines(&out, slide, placement, RoleBody, b.Lines)
	case TwoColumnBody:
		c.fillLines(&out, slide, placement, RoleLeft, b.Left)
		c.fillLines(&out, slide, placement, RoleRight, b.Right)
	case TableBody:
		c.fillTable(slide, placement, b)
	case ChartBody:
		c.fillChart(slide, placement, b)
	case ImageFeatureBody:
		c.fillFeature(&out, slide, placement, b, image)
		image = nil
	}

	if image != nil {
		c.decorate(slide, image)
	}
	return out
}

// region returns the placeholder bound to role, or nil.
func (c *compositor) region(slide *pptx.Slide, placement Placement, role Role) *pptx.Placeholder {
	idx, ok := placement.Region(role)
	if !ok {
		return nil
	}
	ph, ok := slide.Placeholder(idx)
	if !ok {
		return nil
	}
	return ph
}

func (c *compositor) fillCover(out *SlideOutcome, slide *pptx.Slide, placement Placement, b CoverBody) {
	if b.Subtitle == "" {
		return
	}
	ph := c.region(slide, placement, RoleSubtitle)
	if ph == nil {
		out.warn("layout has no subtitle region")
		return
	}
	ph.SetText(b.Subtitle)
}

func (c *compositor) fillLines(out *SlideOutcome, slide *pptx.Slide, placement Placement, role Role, lines []string) {
	if len(lines) == 0 {
		return
	}
	ph := c.region(slide, placement, role)
	if ph == nil {
		out.warn(fmt.Sprintf("layout has no %s region", role))
		return
	}
	FitText(ph, lines, c.style)
}

func (c *compositor) fillTable(slide *pptx.Slide, placement Placement, b TableBody) {
	if b.Data == nil || len(b.Data.Headers) == 0 {
		return
	}
	if ph := c.region(slide, placement, RoleBody); ph != nil {
		slide.Remove(ph)
	}
	geometry := DefaultTableGeometry(c.size, len(b.Data.Rows)+1)
	renderTable(slide, b.Data, geometry, c.table)
}

func (c *compositor) fillChart(slide *pptx.Slide, placement Placement, b ChartBody) {
	if b.Data == nil {
		return
	}
	geometry := DefaultChartGeometry(c.size)
	if ph := c.region(slide, placement, RoleBody); ph != nil {
		if r := ph.Bounds(); !r.Empty() {
			geometry = r
		}
		slide.Remove(ph)
	}
	renderChart(slide, b.Data, geometry, c.chartKinds)
}

// fillFeature places a large centered picture in the body area with an
// optional caption beneath. Without a picture the text goes to the body.
func (c *compositor) fillFeature(out *SlideOutcome, slide *pptx.Slide, placement Placement, b ImageFeatureBody, image *Image) {
	if image == nil {
		c.fillLines(out, slide, placement, RoleBody, b.Lines)
		return
	}

	area := pptx.Rect{
		X: pptx.Inch(1),
		Y: pptx.Inch(1.5),
		W: c.size.Width - pptx.Inch(2),
		H: c.size.Height - pptx.Inch(2),
	}
	if ph := c.region(slide, placement, RoleBody); ph != nil {
		if r := ph.Bounds(); !r.Empty() {
			area = r
		}
		slide.Remove(ph)
	}
	if b.Caption != "" {
		area.H -= pptx.Inch(captionGap + captionHeight)
	}

	frame := area.FitWithin(image.Width, image.Height)
	pic := slide.AddPicture(frame, image.Data, image.Format)
	pic.Description = b.Caption

	if b.Caption == "" {
		return
	}
	tb := slide.AddTextBox(pptx.Rect{
		X: area.X,
		Y: frame.Y + frame.H + pptx.Inch(captionGap),
		W: area.W,
		H: pptx.Inch(captionHeight),
	})
	tb.AddParagraph(pptx.Paragraph{
		Align:    pptx.AlignCenter,
		NoBullet: true,
		Runs: []pptx.Run{{
			Text:   b.Caption,
			Size:   captionSize,
			Italic: true,
			Font:   c.style.Font,
			FontEA: c.style.FontEA,
		}},
	})
}

// decorate adds a small picture in a free corner of the slide.
func (c *compositor) decorate(slide *pptx.Slide, image *Image) {
	box := c.decorationBox(slide.Shapes())
	slide.AddPicture(box.FitWithin(image.Width, image.Height), image.Data, image.Format)
}

// decorationBox returns the largest corner square, tried top-right,
// bottom-right, bottom-left then top-left, that overlaps none of shapes.
// When no size fits, the smallest top-right square is used.
func (c *compositor) decorationBox(shapes []pptx.Shape) pptx.Rect {
	edge := pptx.Inch(decorationEdge)
	corner := func(side int64, right, bottom bool) pptx.Rect {
		r := pptx.Rect{X: edge, Y: edge, W: side, H: side}
		if right {
			r.X = c.size.Width - side - edge
		}
		if bottom {
			r.Y = c.size.Height - side - edge
		}
		return r
	}
	free := func(r pptx.Rect) bool {
		for _, s := range shapes {
			if r.Overlaps(s.Bounds()) {
				return false
			}
		}
		return true
	}

	for inches := decorationSide; inches >= decorationMin; inches -= decorationStep {
		side := pptx.Inch(inches)
		for _, at := range [][2]bool{{true, false}, {true, true}, {false, true}, {false, false}} {
			if box := corner(side, at[0], at[1]); free(box) {
				return box
			}
		}
	}
	return corner(pptx.Inch(decorationMin), true, false)
}

// fetch asks the image source for a picture. Unusable results count as no
// image.
func (c *compositor) fetch(ctx context.Context, prompt string) *Image {
	if ctx.Err() != nil {
		return nil
	}
	img, ok := c.images.Fetch(ctx, prompt)
	if !ok || !img.usable() {
		return nil
	}
	return img
}
