package regression

import "errors"

// Sentinel kinds for regression errors.
var (
	ErrInsufficientData = errors.New("insufficient data for regression")
	ErrLengthMismatch   = errors.New("x and y lengths differ")
)
