package config

import "errors"

// Sentinel error kinds for configuration and manifest loading.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
