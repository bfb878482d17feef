package model

import "errors"

// Sentinel kinds for model construction errors.
var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrInvalidSide    = errors.New("invalid team side")
)
