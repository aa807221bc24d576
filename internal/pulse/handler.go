package pulse

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/cli"
	"github.com/larsks/pilab/internal/drivers"
)

// Handler implements the CLI handler for pulse
type Handler struct {
	// OpenDriver, if set, replaces the configured driver.
	OpenDriver func(cfg *Config) (drivers.Driver, error)
}

func NewHandler() *Handler {
	return &Handler{}
}

// Start implements the CommandHandler interface
func (h *Handler) Start(config cli.Configurable, args []string) error {
	cfg := config.(*Config)
	if len(args) != 1 {
		return ErrUsage
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return h.Pulse(ctx, cfg, args[0])
}

// Pulse switches the target on, waits, and switches it off again.
func (h *Handler) Pulse(ctx context.Context, cfg *Config, target string) (err error) {
	seq, err := cfg.Sequence(target)
	if err != nil {
		return err
	}

	var driver drivers.Driver
	if h.OpenDriver != nil {
		driver, err = h.OpenDriver(cfg)
	} else {
		driver, err = cfg.Open()
	}
	if err != nil {
		return err
	}

	set, err := actuator.Acquire(driver, actuator.Options{
		Needs:     seq.Needs(),
		LEDPin:    cfg.LEDPin,
		BuzzerPin: cfg.BuzzerPin,
		Frequency: cfg.Frequency,
		DutyCycle: cfg.DutyCycle,
	})
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := set.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	log.Printf("pulsing %s for %s", target, seq.Duration())
	return seq.Run(ctx, set)
}
