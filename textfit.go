package deckgen

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/alnah/go-deckgen/internal/pptx"
)

// FontCandidates are the body font sizes tried by the text fit, in points,
// largest first.
var FontCandidates = []float64{28, 24, 20, 18, 16, 14, 12}

// Text fit constants. The line height factor also absorbs the uniform
// paragraph spacing.
const (
	charWidthFactor  = 0.5
	lineHeightFactor = 1.3
	paragraphSpacing = 6 // points after each paragraph

	minBodyHeight     = 914400  // 1in
	defaultBodyHeight = 4351338 // standard content placeholder
	defaultBodyWidth  = 10515600
)

// TextStyle carries run-level font overrides. Zero values inherit from the
// template.
type TextStyle struct {
	Font   string
	FontEA string
}

func (s TextStyle) run(text string, size float64) pptx.Run {
	return pptx.Run{Text: text, Size: size, Font: s.Font, FontEA: s.FontEA}
}

// EstimateFontSize picks the largest candidate size at which lines
// plausibly fit in a width x height box (EMU). It is a heuristic: every
// character is assumed to be half the font size wide, except East Asian
// wide and fullwidth characters which count double. Boxes shorter than one
// inch are treated as a standard body box.
func EstimateFontSize(boxWidth, boxHeight int64, lines []string) float64 {
	if boxWidth <= 0 {
		boxWidth = defaultBodyWidth
	}
	if boxHeight < minBodyHeight {
		boxHeight = defaultBodyHeight
	}
	usableW := float64(boxWidth - 2*pptx.InsetX)
	usableH := float64(boxHeight - 2*pptx.InsetY)

	for _, size := range FontCandidates {
		charW := charWidthFactor * size * float64(pptx.EMUPerPoint)
		perLine := int(usableW / charW)
		if perLine < 1 {
			perLine = 1
		}
		lineH := lineHeightFactor * size * float64(pptx.EMUPerPoint)
		if float64(wrappedLines(lines, perLine))*lineH <= usableH {
			return size
		}
	}
	return FontCandidates[len(FontCandidates)-1]
}

// wrappedLines sums the estimated rendered lines of each input line. A line
// feed inside a line starts a new rendered line; an empty segment still
// takes one line.
func wrappedLines(lines []string, perLine int) int {
	total := 0
	for _, line := range lines {
		for _, segment := range strings.Split(line, "\n") {
			units := textUnits(segment)
			if units == 0 {
				total++
				continue
			}
			total += (units + perLine - 1) / perLine
		}
	}
	return total
}

// textUnits measures s in average character widths.
func textUnits(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// FitText replaces the placeholder text with one bullet paragraph per line
// at the estimated size and returns that size.
func FitText(ph *pptx.Placeholder, lines []string, style TextStyle) float64 {
	if ph == nil {
		return 0
	}
	ph.Clear()
	r := ph.Bounds()
	size := EstimateFontSize(r.W, r.H, lines)
	for _, line := range lines {
		ph.AddParagraph(pptx.Paragraph{
			Runs:       []pptx.Run{style.run(line, size)},
			SpaceAfter: paragraphSpacing,
		})
	}
	return size
}
