package drivers

import (
	"fmt"
	"log"
	"time"

	"github.com/larsks/pilab/internal/gpio"
	"github.com/larsks/pilab/internal/output"
	"github.com/larsks/pilab/internal/tone"
	"github.com/larsks/pilab/internal/touch"
	"github.com/warthog618/go-gpiocdev"
)

// DefaultChip is the GPIO character device exposing the 40-pin header on a
// Raspberry Pi.
const DefaultChip = "gpiochip0"

// GpiocdevConfig represents gpiocdev driver configuration
type GpiocdevConfig struct {
	Chip string `mapstructure:"chip"`
}

// GpiocdevFactory implements Factory for the Linux GPIO character device
type GpiocdevFactory struct{}

func (f *GpiocdevFactory) CreateDriver(config map[string]any) (Driver, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}
	return NewGpiocdevDriver(cfg.Chip)
}

func (f *GpiocdevFactory) ValidateConfig(config map[string]any) error {
	_, err := f.parseConfig(config)
	return err
}

func (f *GpiocdevFactory) parseConfig(config map[string]any) (*GpiocdevConfig, error) {
	cfg := &GpiocdevConfig{}
	if err := decodeConfig(config, cfg); err != nil {
		return nil, fmt.Errorf("gpiocdev: %w", err)
	}
	if cfg.Chip == "" {
		cfg.Chip = DefaultChip
	}
	return cfg, nil
}

// GpiocdevDriver requests lines from a single GPIO chip.
type GpiocdevDriver struct {
	chip *gpiocdev.Chip
}

// NewGpiocdevDriver opens the named chip, e.g. "gpiochip0".
func NewGpiocdevDriver(chipName string) (*GpiocdevDriver, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer("pilab"))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrChipOpenFailed, chipName, err)
	}
	log.Printf("opened GPIO chip %s", chipName)
	return &GpiocdevDriver{chip: chip}, nil
}

func (d *GpiocdevDriver) Output(pinSpec string) (output.Output, error) {
	spec, err := gpio.ParsePin(pinSpec)
	if err != nil {
		return nil, err
	}
	out, err := output.NewLineOutput(d.chip, spec)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Tone returns a software generated tone, since the character device has
// no PWM support.
func (d *GpiocdevDriver) Tone(pinSpec string, frequency float64) (tone.Tone, error) {
	out, err := d.Output(pinSpec)
	if err != nil {
		return nil, err
	}

	t, err := tone.NewSoftTone(out, frequency)
	if err != nil {
		out.Close() //nolint:errcheck
		return nil, err
	}
	return t, nil
}

func (d *GpiocdevDriver) Sensor(name, pinSpec string, debounce time.Duration) (touch.Sensor, error) {
	spec, err := gpio.ParsePin(pinSpec)
	if err != nil {
		return nil, err
	}

	lineOpts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	switch spec.EffectivePull() {
	case gpio.PullUp:
		lineOpts = append(lineOpts, gpiocdev.WithPullUp)
	case gpio.PullDown:
		lineOpts = append(lineOpts, gpiocdev.WithPullDown)
	case gpio.PullNone:
		lineOpts = append(lineOpts, gpiocdev.WithBiasDisabled)
	}

	line, err := d.chip.RequestLine(spec.LineNum, lineOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInputMode, spec.Name(), err)
	}

	onLevel := spec.OnLevel()
	sensor, err := touch.NewPollingSensor(name, func() (bool, error) {
		level, err := line.Value()
		if err != nil {
			return false, err
		}
		return level == onLevel, nil
	}, debounce, 0)
	if err != nil {
		line.Close() //nolint:errcheck
		return nil, err
	}
	sensor.OnClose(line.Close)

	log.Printf("added sensor %s on %s (%s)", name, spec.Name(), spec.EffectivePull())
	return sensor, nil
}

func (d *GpiocdevDriver) Close() error {
	log.Printf("closing GPIO chip %s", d.chip.Name)
	if err := d.chip.Close(); err != nil {
		return fmt.Errorf("failed to close GPIO chip: %w", err)
	}
	return nil
}

func (d *GpiocdevDriver) String() string {
	return fmt.Sprintf("gpiocdev:%s", d.chip.Name)
}

func init() {
	MustRegister("gpiocdev", &GpiocdevFactory{})
}

var _ Driver = (*GpiocdevDriver)(nil)
