package pptx

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr error
	}{
		{name: "with hash", input: "#1f3864", want: "1F3864"},
		{name: "without hash", input: "ffffff", want: White},
		{name: "surrounding space", input: " #000000 ", want: Black},
		{name: "too short", input: "#fff", wantErr: ErrInvalidColor},
		{name: "not hex", input: "#GGGGGG", wantErr: ErrInvalidColor},
		{name: "empty", input: "", wantErr: ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseColor(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseColor(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
