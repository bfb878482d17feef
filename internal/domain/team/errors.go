package team

import "errors"

// Sentinel kinds for entity resolution errors.
var (
	ErrUnknownTeam     = errors.New("unknown team")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrInvalidRegistry = errors.New("invalid team registry")
)
