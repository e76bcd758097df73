package server

import "errors"

// Sentinel errors for request handling.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrTopicTooLong   = errors.New("topic too long")
	ErrBusy           = errors.New("server busy")
)
