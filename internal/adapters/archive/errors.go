package archive

import (
	"errors"
	"fmt"
	"os"
)

// Sentinel kinds for archive errors.
var (
	// ErrFileNotFound wraps os.ErrNotExist so callers may test either.
	ErrFileNotFound  = fmt.Errorf("game file not found: %w", os.ErrNotExist)
	ErrMissingMember = errors.New("no json member in archive")
	ErrUnsupported   = errors.New("unsupported game file type")
)
