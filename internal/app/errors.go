package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoEvents = errors.New("game has no events")
	ErrNoGames  = errors.New("no game could be processed")
	ErrNoOutput = errors.New("no output selected")
)
