package deckgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestReport_Counters - Status tallies
// ---------------------------------------------------------------------------

func TestReport_Counters(t *testing.T) {
	t.Parallel()

	r := &Report{Slides: []SlideOutcome{
		{Status: StatusRendered},
		{Status: StatusDegraded},
		{Status: StatusRendered},
		{Status: StatusFailed},
	}}

	if r.Rendered() != 2 || r.Degraded() != 1 || r.Failed() != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/1/1", r.Rendered(), r.Degraded(), r.Failed())
	}

	var nilReport *Report
	if nilReport.Failed() != 0 {
		t.Error("nil report counted slides")
	}
}

// ---------------------------------------------------------------------------
// TestSlideOutcome_MarshalJSON - Error rendering
// ---------------------------------------------------------------------------

func TestSlideOutcome_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome SlideOutcome
		want    []string
		notWant []string
	}{
		{
			name:    "rendered",
			outcome: SlideOutcome{Index: 1, ID: 2, Kind: KindChart, Status: StatusRendered},
			want:    []string{`"index":1`, `"id":2`, `"kind":"chart"`, `"status":"rendered"`},
			notWant: []string{`"error"`, `"warnings"`},
		},
		{
			name: "failed with error",
			outcome: SlideOutcome{
				Status:   StatusFailed,
				Warnings: []string{"image unavailable"},
				Err:      fmt.Errorf("%w: boom", ErrSlideComposition),
			},
			want: []string{`"status":"failed"`, `"error":"slide composition failed: boom"`, `"warnings":["image unavailable"]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.outcome)
			if err != nil {
				t.Fatalf("json.Marshal() unexpected error: %v", err)
			}
			got := string(data)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("JSON %s missing %s", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("JSON %s contains %s", got, w)
				}
			}
		})
	}
}
