package pulse

import "errors"

var (
	ErrUsage         = errors.New("usage: pulse [options] led|buzzer")
	ErrUnknownTarget = errors.New("unknown pulse target")
)
