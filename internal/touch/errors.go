package touch

import "errors"

var (
	ErrAlreadyStarted = errors.New("sensor already started")
	ErrReadRequired   = errors.New("read function is required")
	ErrRead           = errors.New("failed to read sensor")
)
