package reqio

import "errors"

var (
	// ErrClosed is returned by every operation on a closed handle.
	ErrClosed = errors.New("reqio: handle is closed")
)
