package hat

import "errors"

var (
	ErrUsage          = errors.New("usage: hat [options] letters TEXT | message TEXT | random TEXT | image | clear")
	ErrUnknownCommand = errors.New("unknown command")
)
