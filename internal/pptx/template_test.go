package pptx

import (
	"errors"
	"testing"
)

func TestBlankTemplateValid(t *testing.T) {
	t.Parallel()

	tpl := BlankTemplate()
	if err := tpl.Validate(); err != nil {
		t.Fatalf("BlankTemplate().Validate() = %v", err)
	}
	if len(tpl.Layouts) != 7 {
		t.Errorf("layouts = %d, want 7", len(tpl.Layouts))
	}

	content, ok := tpl.Layout(1)
	if !ok {
		t.Fatal("layout 1 missing")
	}
	body, ok := content.Placeholder(1)
	if !ok {
		t.Fatal("layout 1 has no body placeholder")
	}
	if body.H != 4351338 {
		t.Errorf("body height = %d, want 4351338", body.H)
	}
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
		check   func(t *testing.T, tpl *Template)
	}{
		{
			name: "minimal template gets defaults",
			data: `
name: minimal
layouts:
  - name: Only
    placeholders:
      - {idx: 0, type: title, x: 0, y: 0, w: 100, h: 100}
`,
			check: func(t *testing.T, tpl *Template) {
				if tpl.SlideSize.Width != DefaultSlideWidth {
					t.Errorf("width = %d, want %d", tpl.SlideSize.Width, DefaultSlideWidth)
				}
				if tpl.Palette.Accent != "4472C4" {
					t.Errorf("accent = %q, want default", tpl.Palette.Accent)
				}
				if tpl.Fonts.Latin != "Calibri" {
					t.Errorf("latin font = %q, want Calibri", tpl.Fonts.Latin)
				}
			},
		},
		{
			name: "colors are normalized",
			data: `
name: dark
palette:
  background: "#1e1e2e"
layouts:
  - name: Only
`,
			check: func(t *testing.T, tpl *Template) {
				if tpl.Palette.Background != "1E1E2E" {
					t.Errorf("background = %q, want 1E1E2E", tpl.Palette.Background)
				}
			},
		},
		{
			name: "placeholder font size",
			data: `
name: sized
layouts:
  - name: Only
    placeholders:
      - {idx: 0, type: ctrTitle, x: 1, y: 2, w: 3, h: 4, fontSize: 40}
`,
			check: func(t *testing.T, tpl *Template) {
				ph, ok := tpl.Layouts[0].Placeholder(0)
				if !ok {
					t.Fatal("placeholder 0 missing")
				}
				if ph.FontSize != 40 || ph.X != 1 || ph.H != 4 {
					t.Errorf("placeholder = %+v", ph)
				}
			},
		},
		{
			name:    "unknown field",
			data:    "name: x\nbogus: 1\nlayouts: [{name: a}]\n",
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "no layouts inherits generic set",
			data: "name: x\n",
			check: func(t *testing.T, tpl *Template) {
				if len(tpl.Layouts) != 7 {
					t.Errorf("layouts = %d, want 7", len(tpl.Layouts))
				}
			},
		},
		{
			name:    "bad color",
			data:    "name: x\npalette: {accent: nope}\nlayouts: [{name: a}]\n",
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "duplicate idx",
			data: `
name: x
layouts:
  - name: a
    placeholders:
      - {idx: 1, type: body}
      - {idx: 1, type: body}
`,
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "unknown placeholder type",
			data: `
name: x
layouts:
  - name: a
    placeholders:
      - {idx: 1, type: chart}
`,
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "empty input",
			data:    "",
			wantErr: ErrInvalidTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tpl, err := ParseTemplate([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseTemplate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTemplate() unexpected error: %v", err)
			}
			tt.check(t, tpl)
		})
	}
}

func TestTemplateLayoutOutOfRange(t *testing.T) {
	t.Parallel()

	tpl := BlankTemplate()
	if _, ok := tpl.Layout(-1); ok {
		t.Error("Layout(-1) should not exist")
	}
	if _, ok := tpl.Layout(len(tpl.Layouts)); ok {
		t.Error("Layout(len) should not exist")
	}
}
