package imagesrc

import "errors"

// Sentinel errors for image attempts.
var (
	ErrStatus      = errors.New("unexpected response status")
	ErrEmptyBody   = errors.New("empty response body")
	ErrTooLarge    = errors.New("response body too large")
	ErrUndecodable = errors.New("not a decodable image")
	ErrEmptyPrompt = errors.New("empty prompt")
)
