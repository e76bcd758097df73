package pptx

import "testing"

func TestInchAndPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"one inch", Inch(1), 914400},
		{"half inch", Inch(0.5), 457200},
		{"negative inch", Inch(-1), -914400},
		{"one point", Point(1), 12700},
		{"twelve points", Point(12), 152400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	t.Parallel()

	if got := Points(EMUPerInch); got != 72 {
		t.Errorf("Points(1in) = %v, want 72", got)
	}
}

func TestRectFitWithin(t *testing.T) {
	t.Parallel()

	box := Rect{X: 100, Y: 200, W: 1000, H: 500}

	tests := []struct {
		name string
		w, h int
		want Rect
	}{
		{
			name: "wide image fills width",
			w:    400, h: 100,
			want: Rect{X: 100, Y: 325, W: 1000, H: 250},
		},
		{
			name: "tall image fills height",
			w:    100, h: 200,
			want: Rect{X: 475, Y: 200, W: 250, H: 500},
		},
		{
			name: "same aspect fills box",
			w:    2, h: 1,
			want: box,
		},
		{
			name: "zero size keeps box",
			w:    0, h: 10,
			want: box,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := box.FitWithin(tt.w, tt.h); got != tt.want {
				t.Errorf("FitWithin(%d, %d) = %+v, want %+v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	t.Parallel()

	if !(Rect{W: 0, H: 10}).Empty() {
		t.Error("zero width should be empty")
	}
	if (Rect{W: 1, H: 1}).Empty() {
		t.Error("1x1 should not be empty")
	}
}

func TestRectOverlaps(t *testing.T) {
	t.Parallel()

	base := Rect{X: 10, Y: 10, W: 10, H: 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"same", base, true},
		{"inside", Rect{X: 12, Y: 12, W: 2, H: 2}, true},
		{"partial", Rect{X: 15, Y: 15, W: 10, H: 10}, true},
		{"touching edge", Rect{X: 20, Y: 10, W: 5, H: 5}, false},
		{"left of", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"below", Rect{X: 10, Y: 25, W: 5, H: 5}, false},
		{"empty", Rect{X: 12, Y: 12}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}
