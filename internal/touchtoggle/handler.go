package touchtoggle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/cli"
	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/touch"
)

// Handler implements the CLI handler for touch-toggle
type Handler struct {
	// OpenDriver, if set, replaces the configured driver.
	OpenDriver func(cfg *Config) (drivers.Driver, error)

	// Started, if set, is called once the sensor is running.
	Started func(sensor touch.Sensor)
}

func NewHandler() *Handler {
	return &Handler{}
}

// Start implements the CommandHandler interface
func (h *Handler) Start(config cli.Configurable, args []string) error {
	cfg := config.(*Config)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return h.Run(ctx, cfg)
}

// Run mirrors the touch sensor onto the LED, and the buzzer if enabled,
// until ctx is done.
func (h *Handler) Run(ctx context.Context, cfg *Config) (err error) {
	var driver drivers.Driver
	if h.OpenDriver != nil {
		driver, err = h.OpenDriver(cfg)
	} else {
		driver, err = cfg.Open()
	}
	if err != nil {
		return err
	}

	needs := actuator.NeedLED
	if cfg.Buzzer {
		needs |= actuator.NeedBuzzer
	}

	set, err := actuator.Acquire(driver, actuator.Options{
		Needs:     needs,
		LEDPin:    cfg.LEDPin,
		BuzzerPin: cfg.BuzzerPin,
		Frequency: cfg.Frequency,
		DutyCycle: cfg.DutyCycle,
	})
	if err != nil {
		return err
	}

	sensor, err := driver.Sensor("touch", cfg.TouchPin, cfg.Debounce)
	if err != nil {
		err = fmt.Errorf("%w: touch sensor on %s: %v", actuator.ErrActuator, cfg.TouchPin, err)
		return errors.Join(err, set.Release())
	}
	// the sensor goes first so its line is free before the driver closes
	set.AddCloser("touch sensor", func() error {
		sensor.Stop()
		return nil
	})
	defer func() {
		if releaseErr := set.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	if err := sensor.Start(); err != nil {
		return err
	}
	log.Printf("watching %s", sensor)
	if h.Started != nil {
		h.Started(sensor)
	}

	return Mirror(ctx, sensor.Events(), set)
}

// Mirror turns the LED on while the sensor is pressed and off when it is
// released. If the set has a buzzer it sounds along with the LED. Mirror
// returns nil once ctx is done or events is closed, and an error if an
// actuator fails. Either way the LED and buzzer are left off.
func Mirror(ctx context.Context, events <-chan touch.Event, set *actuator.Set) error {
	for {
		select {
		case <-ctx.Done():
			log.Printf("stopping")
			return set.Signal(false)
		case event, ok := <-events:
			if !ok {
				return set.Signal(false)
			}
			log.Printf("%s %s", event.Source, event.Type)
			if err := set.Signal(event.IsPressed()); err != nil {
				return errors.Join(err, set.Signal(false))
			}
		}
	}
}
