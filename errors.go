package fortgo

import (
	"errors"
)

var (
	// ErrClosed is returned when an operation is attempted on a closed file.
	ErrClosed = errors.New("file already closed")
)
