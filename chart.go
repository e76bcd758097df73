package deckgen

import (
	"slices"
	"strings"

	"github.com/alnah/go-deckgen/internal/pptx"
)

// DefaultSeriesName names the series of an untitled chart.
const DefaultSeriesName = "Series 1"

// DefaultChartGeometry is used when the layout has no body region.
func DefaultChartGeometry(size pptx.SlideSize) pptx.Rect {
	return pptx.Rect{
		X: pptx.Inch(1),
		Y: pptx.Inch(1.5),
		W: size.Width - pptx.Inch(2),
		H: size.Height - pptx.Inch(2),
	}
}

// renderChart draws data as a single series with one point per value.
// Repeated labels are kept as distinct points.
func renderChart(slide *pptx.Slide, data *ChartData, geometry pptx.Rect, kinds []pptx.ChartKind) *pptx.Chart {
	ch := slide.AddChart(geometry, chooseChartKind(data.Type, kinds))
	ch.Title = data.Title
	ch.Categories = slices.Clone(data.Labels)

	name := data.Title
	if name == "" {
		name = DefaultSeriesName
	}
	ch.Series = []pptx.Series{{Name: name, Values: slices.Clone(data.Values)}}
	return ch
}

// chooseChartKind returns the requested kind when the theme supports it,
// otherwise the theme's first kind. Requests are matched loosely so that
// tags like "COLUMN_CLUSTERED" or "bar_clustered" work.
func chooseChartKind(requested string, kinds []pptx.ChartKind) pptx.ChartKind {
	if len(kinds) == 0 {
		kinds = []pptx.ChartKind{pptx.ChartColumn}
	}
	if k, ok := parseChartKind(requested); ok && slices.Contains(kinds, k) {
		return k
	}
	return kinds[0]
}

func parseChartKind(s string) (pptx.ChartKind, bool) {
	s = strings.ToLower(s)
	switch {
	case s == "":
		return "", false
	case strings.Contains(s, "column"), s == "col":
		return pptx.ChartColumn, true
	case strings.Contains(s, "bar"):
		return pptx.ChartBar, true
	case strings.Contains(s, "line"):
		return pptx.ChartLine, true
	case strings.Contains(s, "pie"), strings.Contains(s, "doughnut"):
		return pptx.ChartPie, true
	}
	return "", false
}
