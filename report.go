package deckgen

import (
	"encoding/json"
	"time"
)

// SlideStatus is the outcome class of one slide.
type SlideStatus string

// Slide statuses.
const (
	StatusRendered SlideStatus = "rendered" // composed as requested
	StatusDegraded SlideStatus = "degraded" // composed with fallbacks
	StatusFailed   SlideStatus = "failed"   // left partially filled
)

// SlideOutcome records what happened to one slide.
type SlideOutcome struct {
	Index    int         `json:"index"`
	ID       int         `json:"id"`
	Kind     Kind        `json:"kind"`
	Status   SlideStatus `json:"status"`
	Warnings []string    `json:"warnings,omitempty"`
	Err      error       `json:"-"`
}

// WarnImageUnavailable is the warning recorded when a slide asked for an
// image and none could be fetched.
const WarnImageUnavailable = "image unavailable"

// warn records a non-fatal fallback.
func (o *SlideOutcome) warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// MarshalJSON renders Err as its message.
func (o SlideOutcome) MarshalJSON() ([]byte, error) {
	type alias SlideOutcome
	out := struct {
		alias
		Error string `json:"error,omitempty"`
	}{alias: alias(o)}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}

// Report summarizes a render. Slides is in outline order and always has
// one entry per input slide.
type Report struct {
	Topic            string         `json:"topic"`
	Theme            string         `json:"theme"`
	TemplateFallback bool           `json:"template_fallback"`
	Slides           []SlideOutcome `json:"slides"`
	Duration         time.Duration  `json:"duration_ns"`
}

// Rendered returns the number of slides composed without fallbacks.
func (r *Report) Rendered() int { return r.count(StatusRendered) }

// Degraded returns the number of slides composed with fallbacks.
func (r *Report) Degraded() int { return r.count(StatusDegraded) }

// Failed returns the number of slides whose composition failed.
func (r *Report) Failed() int { return r.count(StatusFailed) }

func (r *Report) count(s SlideStatus) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, o := range r.Slides {
		if o.Status == s {
			n++
		}
	}
	return n
}
