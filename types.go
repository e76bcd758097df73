package deckgen

import (
	"strings"
)

// Outline is the input of a render: a topic and the ordered slides.
type Outline struct {
	Topic  string      `json:"topic" yaml:"topic"`
	Slides []SlideSpec `json:"slides" yaml:"slides"`
}

// SlideSpec describes one slide. Only the fields relevant to the slide kind
// are read; the rest are ignored.
type SlideSpec struct {
	ID       int        `json:"id" yaml:"id"` // diagnostics only
	Kind     string     `json:"kind,omitempty" yaml:"kind"`
	Layout   string     `json:"layout,omitempty" yaml:"layout"` // legacy alias of Kind
	Title    string     `json:"title,omitempty" yaml:"title"`
	Subtitle string     `json:"subtitle,omitempty" yaml:"subtitle"`
	Content  *Content   `json:"content,omitempty" yaml:"content"`
	Table    *TableData `json:"table_data,omitempty" yaml:"table_data"`
	Chart    *ChartData `json:"chart_data,omitempty" yaml:"chart_data"`
	Visual   *Visual    `json:"visual,omitempty" yaml:"visual"`
}

// Content holds the text of list and column slides.
type Content struct {
	TextBody     string   `json:"text_body,omitempty" yaml:"text_body"`
	BulletPoints []string `json:"bullet_points,omitempty" yaml:"bullet_points"`
	LeftColumn   []string `json:"left_column,omitempty" yaml:"left_column"`
	RightColumn  []string `json:"right_column,omitempty" yaml:"right_column"`
}

// TableData is a header row plus body rows. Cell values may be any scalar;
// they are converted to display strings when rendered.
type TableData struct {
	Headers []string `json:"headers" yaml:"headers"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// ChartData is one categorical series. Labels and Values have equal length.
type ChartData struct {
	Labels []string  `json:"labels" yaml:"labels"`
	Values []float64 `json:"values" yaml:"values"`
	Title  string    `json:"title,omitempty" yaml:"title"`
	Type   string    `json:"type,omitempty" yaml:"type"`
}

// Visual requests an image for the slide.
type Visual struct {
	NeedImage   bool   `json:"need_image" yaml:"need_image"`
	ImagePrompt string `json:"image_prompt,omitempty" yaml:"image_prompt"`
	Caption     string `json:"caption,omitempty" yaml:"caption"`
}

// wantsImage reports whether an image should be fetched for the slide.
func (v *Visual) wantsImage() bool {
	return v != nil && v.NeedImage && strings.TrimSpace(v.ImagePrompt) != ""
}

// Kind is a slide archetype.
type Kind string

// Slide kinds.
const (
	KindCover        Kind = "cover"
	KindBulletedList Kind = "bulleted-list"
	KindTwoColumn    Kind = "two-column"
	KindTable        Kind = "table"
	KindChart        Kind = "chart"
	KindImageFeature Kind = "image-feature"
)

// Kinds lists every slide kind in catalogue order.
var Kinds = []Kind{KindCover, KindBulletedList, KindTwoColumn, KindTable, KindChart, KindImageFeature}

// kindAliases maps normalized legacy tags to kinds.
var kindAliases = map[string]Kind{
	"title-cover":   KindCover,
	"title":         KindCover,
	"content-list":  KindBulletedList,
	"content":       KindBulletedList,
	"bullets":       KindBulletedList,
	"list":          KindBulletedList,
	"two-columns":   KindTwoColumn,
	"image":         KindImageFeature,
	"image-caption": KindImageFeature,
}

// ParseKind normalizes a kind tag. Case, surrounding space and the choice
// of '_' or '-' are ignored. Legacy tags are accepted; anything unknown maps
// to KindBulletedList.
func ParseKind(s string) Kind {
	k, _ := lookupKind(s)
	return k
}

// lookupKind is ParseKind that also reports whether s named a known kind.
func lookupKind(s string) (Kind, bool) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, k := range Kinds {
		if norm == string(k) {
			return k, true
		}
	}
	if k, ok := kindAliases[norm]; ok {
		return k, true
	}
	return KindBulletedList, false
}

// kindTag returns Kind, or the legacy Layout tag when Kind is empty.
func (s SlideSpec) kindTag() string {
	if s.Kind != "" {
		return s.Kind
	}
	return s.Layout
}

// SlideBody is the kind-specific content of a slide. It is one of
// CoverBody, BulletBody, TwoColumnBody, TableBody, ChartBody or
// ImageFeatureBody.
type SlideBody interface {
	slideBody()
}

// CoverBody is a title slide with an optional subtitle.
type CoverBody struct {
	Subtitle string
}

// BulletBody is a list of lines fitted into the body region.
type BulletBody struct {
	Lines []string
}

// TwoColumnBody holds independent left and right lists.
type TwoColumnBody struct {
	Left  []string
	Right []string
}

// TableBody holds the table to draw. Data may be nil.
type TableBody struct {
	Data *TableData
}

// ChartBody holds the series to chart. Data may be nil.
type ChartBody struct {
	Data *ChartData
}

// ImageFeatureBody is a large picture with a caption. Lines are used as
// body text when no picture is placed.
type ImageFeatureBody struct {
	Lines   []string
	Caption string
}

func (CoverBody) slideBody()        {}
func (BulletBody) slideBody()       {}
func (TwoColumnBody) slideBody()    {}
func (TableBody) slideBody()        {}
func (ChartBody) slideBody()        {}
func (ImageFeatureBody) slideBody() {}

// Body resolves the slide kind and its kind-specific content.
func (s SlideSpec) Body() (Kind, SlideBody) {
	kind := ParseKind(s.kindTag())
	switch kind {
	case KindCover:
		return kind, CoverBody{Subtitle: s.Subtitle}
	case KindTwoColumn:
		var b TwoColumnBody
		if s.Content != nil {
			b.Left = s.Content.LeftColumn
			b.Right = s.Content.RightColumn
		}
		return kind, b
	case KindTable:
		return kind, TableBody{Data: s.Table}
	case KindChart:
		return kind, ChartBody{Data: s.Chart}
	case KindImageFeature:
		b := ImageFeatureBody{Lines: bodyLines(s.Content)}
		if s.Visual != nil {
			b.Caption = s.Visual.Caption
		}
		return kind, b
	default:
		return KindBulletedList, BulletBody{Lines: bodyLines(s.Content)}
	}
}

// bodyLines returns the bullet points, or the text body with one line per
// paragraph. Bullet points win when both are set.
func bodyLines(c *Content) []string {
	if c == nil {
		return nil
	}
	if len(c.BulletPoints) > 0 {
		return c.BulletPoints
	}
	if strings.TrimSpace(c.TextBody) == "" {
		return nil
	}
	text := strings.ReplaceAll(c.TextBody, "\r\n", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
