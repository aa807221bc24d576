package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/larsks/pilab/internal/gpio"
	"github.com/warthog618/go-gpiocdev"
)

// LineRequester is satisfied by *gpiocdev.Chip.
type LineRequester interface {
	RequestLine(offset int, options ...gpiocdev.LineReqOption) (*gpiocdev.Line, error)
}

// LineOutput is an output on a GPIO character device line.
type LineOutput struct {
	line   *gpiocdev.Line
	spec   *gpio.PinSpec
	mutex  sync.Mutex
	closed bool
}

// NewLineOutput requests the line described by spec as an output, initially
// at its inactive level.
func NewLineOutput(chip LineRequester, spec *gpio.PinSpec) (*LineOutput, error) {
	line, err := chip.RequestLine(spec.LineNum, gpiocdev.AsOutput(spec.OffLevel()), gpiocdev.WithConsumer("pilab"))
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrLineRequestFailed, spec.LineNum, err)
	}

	return &LineOutput{
		line: line,
		spec: spec,
	}, nil
}

func (o *LineOutput) TurnOn() error {
	return o.write(true)
}

func (o *LineOutput) TurnOff() error {
	return o.write(false)
}

func (o *LineOutput) Set(on bool) error {
	return set(o, on)
}

func (o *LineOutput) write(on bool) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.closed {
		return fmt.Errorf("%w: %s", ErrClosed, o)
	}

	level, opErr := o.spec.OffLevel(), ErrTurnOff
	if on {
		level, opErr = o.spec.OnLevel(), ErrTurnOn
	}
	if err := o.line.SetValue(level); err != nil {
		return fmt.Errorf("%w %s: %v", opErr, o, err)
	}
	return nil
}

func (o *LineOutput) GetState() (bool, error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.closed {
		return false, fmt.Errorf("%w: %s", ErrClosed, o)
	}

	level, err := o.line.Value()
	if err != nil {
		return false, fmt.Errorf("%w %s: %v", ErrGetState, o, err)
	}
	return level == o.spec.OnLevel(), nil
}

func (o *LineOutput) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	if err := o.line.SetValue(o.spec.OffLevel()); err != nil {
		log.Printf("failed to reset %s to off state: %s", o, err)
	}
	if err := o.line.Close(); err != nil {
		return fmt.Errorf("failed to close GPIO line %d: %w", o.spec.LineNum, err)
	}
	return nil
}

func (o *LineOutput) String() string {
	return o.spec.Name()
}
