package pptx

import "time"

// Properties are the document metadata written to docProps.
type Properties struct {
	Title   string
	Subject string
	Creator string
	Created time.Time
}

// Presentation is an in-memory document built from a Template.
// A Presentation is owned by a single goroutine; templates may be shared.
type Presentation struct {
	tpl    *Template
	props  Properties
	slides []*Slide
}

// New creates an empty presentation. A nil template selects BlankTemplate.
func New(tpl *Template) *Presentation {
	if tpl == nil {
		tpl = BlankTemplate()
	}
	return &Presentation{
		tpl:   tpl,
		props: Properties{Created: time.Now()},
	}
}

// Template returns the template the presentation was built from.
func (p *Presentation) Template() *Template {
	return p.tpl
}

// Properties returns the document metadata.
func (p *Presentation) Properties() Properties {
	return p.props
}

// SetProperties replaces the document metadata.
func (p *Presentation) SetProperties(props Properties) {
	if props.Created.IsZero() {
		props.Created = p.props.Created
	}
	p.props = props
}

// Slides returns the slides in order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// AddSlide appends a slide built from the layout at index layout. An out of
// range index is clamped to the nearest valid layout. Layout placeholders
// are copied onto the slide as empty placeholders.
func (p *Presentation) AddSlide(layout int) *Slide {
	if layout >= len(p.tpl.Layouts) {
		layout = len(p.tpl.Layouts) - 1
	}
	if layout < 0 {
		layout = 0
	}

	s := &Slide{layout: layout}
	if spec, ok := p.tpl.Layout(layout); ok {
		for _, ph := range spec.Placeholders {
			shape := &Placeholder{
				baseShape: baseShape{name: ph.Name, rect: ph.Rect},
				Idx:       ph.Idx,
				Type:      ph.Type,
			}
			if shape.name == "" {
				shape.name = s.autoName("Placeholder")
			}
			s.shapes = append(s.shapes, shape)
		}
	}
	p.slides = append(p.slides, s)
	return s
}
