package deckgen

import (
	"strings"
	"testing"

	"github.com/alnah/go-deckgen/internal/pptx"
)

// Standard content placeholder of the blank template.
const (
	bodyW int64 = 10515600
	bodyH int64 = 4351338
)

func repeatLines(n int, line string) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return lines
}

// ---------------------------------------------------------------------------
// TestEstimateFontSize - Candidate selection
// ---------------------------------------------------------------------------

func TestEstimateFontSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		w, h  int64
		lines []string
		want  float64
	}{
		{name: "few short lines use largest", w: bodyW, h: bodyH, lines: repeatLines(3, "short"), want: 28},
		{name: "nine lines still fit at 28", w: bodyW, h: bodyH, lines: repeatLines(9, "short"), want: 28},
		{name: "ten lines step down", w: bodyW, h: bodyH, lines: repeatLines(10, "short"), want: 24},
		{name: "line feeds count as lines", w: bodyW, h: bodyH, lines: []string{strings.Repeat("short\n", 9) + "short"}, want: 24},
		{name: "overflow uses smallest", w: bodyW, h: bodyH, lines: repeatLines(60, "short"), want: 12},
		{name: "no lines", w: bodyW, h: bodyH, lines: nil, want: 28},
		{name: "long line wraps", w: bodyW, h: bodyH, lines: []string{strings.Repeat("x", 58*10)}, want: 24},
		{name: "zero width uses default body width", w: 0, h: bodyH, lines: repeatLines(3, "short"), want: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EstimateFontSize(tt.w, tt.h, tt.lines); got != tt.want {
				t.Errorf("EstimateFontSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateFontSize_ShortBoxUsesStandardHeight(t *testing.T) {
	t.Parallel()

	lines := repeatLines(10, "short")
	want := EstimateFontSize(bodyW, bodyH, lines)
	for _, h := range []int64{0, 1000, pptx.EMUPerInch - 1} {
		if got := EstimateFontSize(bodyW, h, lines); got != want {
			t.Errorf("EstimateFontSize(h=%d) = %v, want %v", h, got, want)
		}
	}
}

func TestEstimateFontSize_Monotonic(t *testing.T) {
	t.Parallel()

	line := "Quarterly revenue grew across every region we operate in"
	prev := EstimateFontSize(bodyW, bodyH, nil)
	for n := 1; n <= 40; n++ {
		got := EstimateFontSize(bodyW, bodyH, repeatLines(n, line))
		if got > prev {
			t.Fatalf("size grew from %v to %v at %d lines", prev, got, n)
		}
		prev = got
	}

	// Longer lines never get a larger size either.
	prev = EstimateFontSize(bodyW, bodyH, []string{""})
	for n := 10; n <= 2000; n += 10 {
		got := EstimateFontSize(bodyW, bodyH, []string{strings.Repeat("w", n)})
		if got > prev {
			t.Fatalf("size grew from %v to %v at %d chars", prev, got, n)
		}
		prev = got
	}
}

func TestEstimateFontSize_ResultIsCandidate(t *testing.T) {
	t.Parallel()

	for n := 0; n < 50; n += 7 {
		got := EstimateFontSize(bodyW/3, bodyH/2, repeatLines(n, "some words here"))
		found := false
		for _, c := range FontCandidates {
			if c == got {
				found = true
			}
		}
		if !found {
			t.Errorf("EstimateFontSize() = %v, not a candidate", got)
		}
	}
}

func TestWrappedLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{name: "one per line", lines: []string{"a", "b"}, want: 2},
		{name: "empty line", lines: []string{""}, want: 1},
		{name: "line feed", lines: []string{"first\nsecond"}, want: 2},
		{name: "blank segment", lines: []string{"a\n\nb"}, want: 3},
		{name: "wrap per segment", lines: []string{strings.Repeat("x", 15) + "\n" + "y"}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := wrappedLines(tt.lines, 10); got != tt.want {
				t.Errorf("wrappedLines() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTextUnits - Width classes
// ---------------------------------------------------------------------------

func TestTextUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"日本", 4},
		{"Ａ", 2},
		{"ｱ", 1},
		{"a日", 3},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := textUnits(tt.in); got != tt.want {
				t.Errorf("textUnits(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEstimateFontSize_WideRunesNeedMoreRoom(t *testing.T) {
	t.Parallel()

	// 300 narrow runes wrap to 6 lines at 28pt; the same count of wide
	// runes wraps to 11 and no longer fits.
	narrow := []string{strings.Repeat("a", 300)}
	wide := []string{strings.Repeat("字", 300)}

	n := EstimateFontSize(bodyW, bodyH, narrow)
	w := EstimateFontSize(bodyW, bodyH, wide)
	if w >= n {
		t.Errorf("wide size %v, narrow size %v, want wide smaller", w, n)
	}
}

// ---------------------------------------------------------------------------
// TestFitText - Placeholder filling
// ---------------------------------------------------------------------------

func TestFitText(t *testing.T) {
	t.Parallel()

	doc := pptx.New(nil)
	slide := doc.AddSlide(1)
	ph, ok := slide.Placeholder(1)
	if !ok {
		t.Fatal("body placeholder missing")
	}
	ph.SetText("stale")

	size := FitText(ph, []string{"one", "two"}, TextStyle{Font: "Arial", FontEA: "Arial"})
	if size != 28 {
		t.Errorf("FitText() = %v, want 28", size)
	}
	if len(ph.Paragraphs) != 2 {
		t.Fatalf("paragraphs = %d, want 2", len(ph.Paragraphs))
	}
	for i, p := range ph.Paragraphs {
		if p.SpaceAfter != paragraphSpacing {
			t.Errorf("paragraph %d SpaceAfter = %v", i, p.SpaceAfter)
		}
		r := p.Runs[0]
		if r.Size != 28 || r.Font != "Arial" || r.FontEA != "Arial" {
			t.Errorf("paragraph %d run = %+v", i, r)
		}
	}
	if got := ph.Text(); got != "one\ntwo" {
		t.Errorf("Text() = %q", got)
	}
}

func TestFitText_NilPlaceholder(t *testing.T) {
	t.Parallel()

	if got := FitText(nil, []string{"x"}, TextStyle{}); got != 0 {
		t.Errorf("FitText(nil) = %v, want 0", got)
	}
}
