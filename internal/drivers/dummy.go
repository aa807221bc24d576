package drivers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/larsks/pilab/internal/gpio"
	"github.com/larsks/pilab/internal/output"
	"github.com/larsks/pilab/internal/tone"
	"github.com/larsks/pilab/internal/touch"
)

// DummyConfig represents dummy driver configuration
type DummyConfig struct {
	// PressOnStart presses every dummy input as soon as it is created.
	PressOnStart bool `mapstructure:"press-on-start"`
}

// DummyFactory implements Factory for dummy drivers
type DummyFactory struct{}

func (f *DummyFactory) CreateDriver(config map[string]any) (Driver, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}
	d := NewDummyDriver()
	d.pressOnStart = cfg.PressOnStart
	return d, nil
}

func (f *DummyFactory) ValidateConfig(config map[string]any) error {
	_, err := f.parseConfig(config)
	return err
}

func (f *DummyFactory) parseConfig(config map[string]any) (*DummyConfig, error) {
	cfg := &DummyConfig{}
	if err := decodeConfig(config, cfg); err != nil {
		return nil, fmt.Errorf("dummy: %w", err)
	}
	return cfg, nil
}

// DummyDriver hands out in-memory pins and keeps them so that tests can
// inspect what happened to them.
type DummyDriver struct {
	outputs      map[string]*output.DummyOutput
	tones        map[string]*tone.DummyTone
	inputs       map[string]*touch.DummyInput
	pressOnStart bool
	closed       bool
	mutex        sync.Mutex
}

func NewDummyDriver() *DummyDriver {
	return &DummyDriver{
		outputs: make(map[string]*output.DummyOutput),
		tones:   make(map[string]*tone.DummyTone),
		inputs:  make(map[string]*touch.DummyInput),
	}
}

func (d *DummyDriver) Output(pinSpec string) (output.Output, error) {
	spec, err := gpio.ParsePin(pinSpec)
	if err != nil {
		return nil, err
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	out := output.NewDummyOutput(spec.Name())
	d.outputs[spec.Name()] = out
	return out, nil
}

func (d *DummyDriver) Tone(pinSpec string, frequency float64) (tone.Tone, error) {
	spec, err := gpio.ParsePin(pinSpec)
	if err != nil {
		return nil, err
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	t := tone.NewDummyTone(spec.Name(), frequency)
	d.tones[spec.Name()] = t
	return t, nil
}

func (d *DummyDriver) Sensor(name, pinSpec string, debounce time.Duration) (touch.Sensor, error) {
	spec, err := gpio.ParsePin(pinSpec)
	if err != nil {
		return nil, err
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	input := touch.NewDummyInput(spec.Name())
	if d.pressOnStart {
		input.Press()
	}
	d.inputs[spec.Name()] = input

	sensor, err := touch.NewPollingSensor(name, input.Read, debounce, 0)
	if err != nil {
		return nil, err
	}
	return sensor, nil
}

// DummyOutput returns the output created for the named pin, or nil.
func (d *DummyDriver) DummyOutput(pinName string) *output.DummyOutput {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.outputs[pinName]
}

// DummyTone returns the tone created for the named pin, or nil.
func (d *DummyDriver) DummyTone(pinName string) *tone.DummyTone {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.tones[pinName]
}

// DummyInput returns the input behind the sensor on the named pin, or nil.
func (d *DummyDriver) DummyInput(pinName string) *touch.DummyInput {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.inputs[pinName]
}

// IsClosed reports whether Close has been called.
func (d *DummyDriver) IsClosed() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.closed
}

func (d *DummyDriver) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	log.Printf("closing dummy driver")
	d.closed = true
	return nil
}

func (d *DummyDriver) String() string {
	return "dummy"
}

func init() {
	MustRegister("dummy", &DummyFactory{})
}

var _ Driver = (*DummyDriver)(nil)
