package pptx

import "math"

// EMU conversion factors.
const (
	EMUPerInch  int64 = 914400
	EMUPerPoint int64 = 12700
)

// Default slide size (16:9, 13.333in x 7.5in).
const (
	DefaultSlideWidth  int64 = 12192000
	DefaultSlideHeight int64 = 6858000
)

// Inch converts inches to EMU.
func Inch(v float64) int64 {
	return clampEMU(v * float64(EMUPerInch))
}

// Point converts points to EMU.
func Point(v float64) int64 {
	return clampEMU(v * float64(EMUPerPoint))
}

// Points converts EMU to points.
func Points(emu int64) float64 {
	return float64(emu) / float64(EMUPerPoint)
}

func clampEMU(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	if v < math.MinInt64/2 {
		return math.MinInt64 / 2
	}
	return int64(math.Round(v))
}

// Rect is a shape frame in EMU.
type Rect struct {
	X int64 `yaml:"x"`
	Y int64 `yaml:"y"`
	W int64 `yaml:"w"`
	H int64 `yaml:"h"`
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether r and o share any area. Empty rects overlap
// nothing.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// FitWithin scales a w x h box to fit inside r, preserving the aspect ratio,
// and centers it.
func (r Rect) FitWithin(w, h int) Rect {
	if w <= 0 || h <= 0 || r.Empty() {
		return r
	}
	scale := math.Min(float64(r.W)/float64(w), float64(r.H)/float64(h))
	fw := int64(float64(w) * scale)
	fh := int64(float64(h) * scale)
	return Rect{
		X: r.X + (r.W-fw)/2,
		Y: r.Y + (r.H-fh)/2,
		W: fw,
		H: fh,
	}
}
