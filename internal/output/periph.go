package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/larsks/pilab/internal/gpio"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// PinOutput is an output on a periph.io pin. The caller is expected to have
// run host.Init.
type PinOutput struct {
	pin    pgpio.PinOut
	spec   *gpio.PinSpec
	mutex  sync.Mutex
	closed bool
}

// LookupPin finds the periph pin for spec.
func LookupPin(spec *gpio.PinSpec) (pgpio.PinIO, error) {
	pin := gpioreg.ByName(spec.Name())
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, spec.Name())
	}
	return pin, nil
}

// NewPinOutput puts pin in output mode at its inactive level.
func NewPinOutput(pin pgpio.PinOut, spec *gpio.PinSpec) (*PinOutput, error) {
	o := &PinOutput{pin: pin, spec: spec}
	if err := pin.Out(o.level(false)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPinOutputMode, spec.Name(), err)
	}
	return o, nil
}

func (o *PinOutput) level(on bool) pgpio.Level {
	if on {
		return o.spec.OnLevel() == 1
	}
	return o.spec.OffLevel() == 1
}

func (o *PinOutput) TurnOn() error {
	return o.write(true)
}

func (o *PinOutput) TurnOff() error {
	return o.write(false)
}

func (o *PinOutput) Set(on bool) error {
	return set(o, on)
}

func (o *PinOutput) write(on bool) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.closed {
		return fmt.Errorf("%w: %s", ErrClosed, o)
	}

	opErr := ErrTurnOff
	if on {
		opErr = ErrTurnOn
	}
	if err := o.pin.Out(o.level(on)); err != nil {
		return fmt.Errorf("%w %s: %v", opErr, o, err)
	}
	return nil
}

func (o *PinOutput) GetState() (bool, error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	reader, ok := o.pin.(pgpio.PinIn)
	if !ok {
		return false, fmt.Errorf("%w %s: pin is write-only", ErrGetState, o)
	}
	return reader.Read() == o.level(true), nil
}

func (o *PinOutput) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	if err := o.pin.Out(o.level(false)); err != nil {
		log.Printf("failed to reset %s to off state: %s", o, err)
	}
	return nil
}

func (o *PinOutput) String() string {
	return o.spec.Name()
}
