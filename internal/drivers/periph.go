package drivers

import (
	"fmt"
	"log"
	"time"

	"github.com/larsks/pilab/internal/gpio"
	"github.com/larsks/pilab/internal/output"
	"github.com/larsks/pilab/internal/tone"
	"github.com/larsks/pilab/internal/touch"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
)

// PeriphConfig represents periph driver configuration. The driver has no
// settings; the type exists so unknown keys are rejected.
type PeriphConfig struct{}

// PeriphFactory implements Factory for periph.io host drivers
type PeriphFactory struct{}

func (f *PeriphFactory) CreateDriver(config map[string]any) (Driver, error) {
	if err := f.ValidateConfig(config); err != nil {
		return nil, err
	}
	return NewPeriphDriver()
}

func (f *PeriphFactory) ValidateConfig(config map[string]any) error {
	if err := decodeConfig(config, &PeriphConfig{}); err != nil {
		return fmt.Errorf("periph: %w", err)
	}
	return nil
}

// PeriphDriver looks pins up in periph's registry. It is the only driver
// with hardware PWM, on GPIO12, GPIO13, GPIO18 and GPIO19.
type PeriphDriver struct{}

func NewPeriphDriver() (*PeriphDriver, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostInit, err)
	}
	log.Printf("initialized periph.io with %d drivers", len(state.Loaded))
	return &PeriphDriver{}, nil
}

func (d *PeriphDriver) lookup(pinSpec string) (*gpio.PinSpec, pgpio.PinIO, error) {
	spec, err := gpio.ParsePin(pinSpec)
	if err != nil {
		return nil, nil, err
	}
	pin, err := output.LookupPin(spec)
	if err != nil {
		return nil, nil, err
	}
	return spec, pin, nil
}

func (d *PeriphDriver) Output(pinSpec string) (output.Output, error) {
	spec, pin, err := d.lookup(pinSpec)
	if err != nil {
		return nil, err
	}
	out, err := output.NewPinOutput(pin, spec)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d *PeriphDriver) Tone(pinSpec string, frequency float64) (tone.Tone, error) {
	_, pin, err := d.lookup(pinSpec)
	if err != nil {
		return nil, err
	}
	t, err := tone.NewPWMTone(pin, frequency)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func periphPull(pull gpio.PullMode) pgpio.Pull {
	switch pull {
	case gpio.PullUp:
		return pgpio.PullUp
	case gpio.PullDown:
		return pgpio.PullDown
	default:
		return pgpio.Float
	}
}

func (d *PeriphDriver) Sensor(name, pinSpec string, debounce time.Duration) (touch.Sensor, error) {
	spec, pin, err := d.lookup(pinSpec)
	if err != nil {
		return nil, err
	}

	if err := pin.In(periphPull(spec.EffectivePull()), pgpio.NoEdge); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInputMode, spec.Name(), err)
	}

	onLevel := pgpio.Level(spec.OnLevel() == 1)
	sensor, err := touch.NewPollingSensor(name, func() (bool, error) {
		return pin.Read() == onLevel, nil
	}, debounce, 0)
	if err != nil {
		return nil, err
	}
	sensor.OnClose(pin.Halt)

	log.Printf("added sensor %s on %s (%s)", name, spec.Name(), spec.EffectivePull())
	return sensor, nil
}

// Close is a no-op; periph has no per-process handle to release.
func (d *PeriphDriver) Close() error {
	return nil
}

func (d *PeriphDriver) String() string {
	return "periph"
}

func init() {
	MustRegister("periph", &PeriphFactory{})
}

var _ Driver = (*PeriphDriver)(nil)
