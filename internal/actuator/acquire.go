package actuator

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/matrix"
	"github.com/larsks/pilab/internal/tone"
)

// Options describes what Acquire should set up.
type Options struct {
	Needs     Needs
	LEDPin    string
	BuzzerPin string
	// Frequency is the buzzer's initial frequency; zero selects
	// tone.DefaultFrequency.
	Frequency float64
	DutyCycle float64
	Console   io.Writer

	NewMatrix  func() (*matrix.Matrix, error)
	NewDisplay func() (LineDisplay, error)
}

// Acquire claims the actuators opts.Needs names from driver. The returned
// set owns driver and closes it on Release. If any step fails, everything
// acquired so far, driver included, is released before returning.
func Acquire(driver drivers.Driver, opts Options) (*Set, error) {
	set := &Set{
		Console:   opts.Console,
		DutyCycle: opts.DutyCycle,
	}
	set.AddCloser("driver", driver.Close)

	if err := set.acquire(driver, opts); err != nil {
		if releaseErr := set.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
		return nil, err
	}
	return set, nil
}

func (s *Set) acquire(driver drivers.Driver, opts Options) error {
	var err error

	if opts.Needs.Has(NeedLED) {
		if s.LED, err = driver.Output(opts.LEDPin); err != nil {
			return fmt.Errorf("%w: led on %s: %v", ErrActuator, opts.LEDPin, err)
		}
		log.Printf("acquired led %s", s.LED)
	}

	if opts.Needs.Has(NeedBuzzer) {
		frequency := opts.Frequency
		if frequency == 0 {
			frequency = tone.DefaultFrequency
		}
		if s.Buzzer, err = driver.Tone(opts.BuzzerPin, frequency); err != nil {
			return fmt.Errorf("%w: buzzer on %s: %v", ErrActuator, opts.BuzzerPin, err)
		}
		log.Printf("acquired buzzer %s", s.Buzzer)
	}

	if opts.Needs.Has(NeedMatrix) {
		if opts.NewMatrix == nil {
			return missing("matrix")
		}
		if s.Matrix, err = opts.NewMatrix(); err != nil {
			return failed("matrix", err)
		}
		log.Printf("acquired led matrix")
	}

	if opts.Needs.Has(NeedDisplay) {
		if opts.NewDisplay == nil {
			return missing("display")
		}
		if s.Display, err = opts.NewDisplay(); err != nil {
			return failed("display", err)
		}
		log.Printf("acquired status display")
	}

	return nil
}
