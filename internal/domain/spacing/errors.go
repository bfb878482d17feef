package spacing

import "errors"

// Sentinel kinds for spacing errors.
var (
	ErrFrameIndex    = errors.New("frame index out of range")
	ErrInvalidPolicy = errors.New("invalid hull policy")
	ErrEmptyGame     = errors.New("game has no events")
)
