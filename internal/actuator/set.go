// Package actuator holds the feedback devices used by a program and the
// actions that drive them.
package actuator

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/larsks/pilab/internal/matrix"
	"github.com/larsks/pilab/internal/output"
	"github.com/larsks/pilab/internal/tone"
)

// DefaultDutyCycle is used by tone actions that do not set one.
const DefaultDutyCycle = 50.0

// LineDisplay is a small text display, such as an OLED status screen.
type LineDisplay interface {
	ShowLines(lines ...string) error
	Clear() error
	Close() error
}

type closer struct {
	name string
	fn   func() error
}

// Set is every actuator a session uses. Fields left nil were not acquired.
// It is built once, passed to whatever needs it and released once.
type Set struct {
	LED     output.Output
	Buzzer  tone.Tone
	Matrix  *matrix.Matrix
	Display LineDisplay
	Console io.Writer

	// DutyCycle is used by tone actions that do not set their own. Zero
	// selects DefaultDutyCycle.
	DutyCycle float64

	closers  []closer
	released bool
	mutex    sync.Mutex
}

// AddCloser registers fn to run on Release, after the actuators themselves.
// Closers run in reverse order of registration.
func (s *Set) AddCloser(name string, fn func() error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closers = append(s.closers, closer{name: name, fn: fn})
}

func (s *Set) console() io.Writer {
	if s.Console == nil {
		return io.Discard
	}
	return s.Console
}

func (s *Set) dutyCycle() float64 {
	if s.DutyCycle == 0 {
		return DefaultDutyCycle
	}
	return s.DutyCycle
}

// Signal switches the LED and the buzzer on or off together. Whichever of
// the two was not acquired is skipped.
func (s *Set) Signal(on bool) error {
	var errs []error
	if s.LED != nil {
		if err := s.LED.Set(on); err != nil {
			errs = append(errs, failed("led", err))
		}
	}
	if s.Buzzer != nil {
		var err error
		if on {
			err = s.Buzzer.Start(s.dutyCycle())
		} else {
			err = s.Buzzer.Stop()
		}
		if err != nil {
			errs = append(errs, failed("buzzer", err))
		}
	}
	return errors.Join(errs...)
}

// Released reports whether Release has run.
func (s *Set) Released() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.released
}

// Release silences and closes every acquired actuator. It works on a
// partially filled set, and only the first call does anything. Failures
// do not stop the remaining releases; they are joined in the result.
func (s *Set) Release() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.released {
		return nil
	}
	s.released = true

	var errs []error
	record := func(what string, err error) {
		if err != nil {
			log.Printf("failed to release %s: %v", what, err)
			errs = append(errs, fmt.Errorf("%w: release %s: %v", ErrActuator, what, err))
		}
	}

	if s.Buzzer != nil {
		record("buzzer", s.Buzzer.Stop())
		record("buzzer", s.Buzzer.Close())
	}
	if s.LED != nil {
		record("led", s.LED.TurnOff())
		record("led", s.LED.Close())
	}
	if s.Matrix != nil {
		record("matrix", s.Matrix.Close())
	}
	if s.Display != nil {
		record("display", s.Display.Close())
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		record(s.closers[i].name, s.closers[i].fn())
	}

	log.Printf("released actuators")
	return errors.Join(errs...)
}
