package guessgame

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/cli"
	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/guess"
	"github.com/larsks/pilab/internal/matrix"
	"github.com/larsks/pilab/internal/oled"
)

// Handler implements the CLI handler for guess
type Handler struct {
	Stdin  io.Reader
	Stdout io.Writer

	// Rand picks the target; nil uses a randomly seeded source.
	Rand *rand.Rand

	// OpenDriver, if set, replaces the configured driver.
	OpenDriver func(cfg *Config) (drivers.Driver, error)
}

// NewHandler creates a handler playing on the process's stdin and stdout.
func NewHandler() *Handler {
	return &Handler{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// Start implements the CommandHandler interface
func (h *Handler) Start(config cli.Configurable, args []string) error {
	cfg := config.(*Config)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return h.Play(ctx, cfg)
}

func (h *Handler) openDriver(cfg *Config) (drivers.Driver, error) {
	if h.OpenDriver != nil {
		return h.OpenDriver(cfg)
	}
	return cfg.Open()
}

// Play runs one game. Hardware is acquired after the target is chosen and
// released before Play returns.
func (h *Handler) Play(ctx context.Context, cfg *Config) error {
	policy, err := guess.Variant(cfg.Variant)
	if err != nil {
		return err
	}

	rng := h.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	target, err := guess.NewTarget(rng, cfg.Range())
	if err != nil {
		return err
	}

	driver, err := h.openDriver(cfg)
	if err != nil {
		return err
	}

	set, err := actuator.Acquire(driver, actuator.Options{
		Needs:     policy.Needs(),
		LEDPin:    cfg.LEDPin,
		BuzzerPin: cfg.BuzzerPin,
		Frequency: cfg.Frequency,
		DutyCycle: cfg.DutyCycle,
		Console:   h.Stdout,
		NewMatrix: func() (*matrix.Matrix, error) {
			return matrix.Open(cfg.MatrixDevice, cfg.DryRun)
		},
		NewDisplay: func() (actuator.LineDisplay, error) {
			d, err := oled.New(cfg.DryRun)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	})
	if err != nil {
		return err
	}

	ctrl := guess.NewController(cfg.Range(), h.Stdout)
	ctrl.OnGuess = func(g int, outcome guess.Outcome) {
		log.Printf("guess %d is %s", g, outcome)
	}
	ctrl.OnInvalid = func(line string, err error) {
		log.Printf("ignoring input: %v", err)
	}

	log.Printf("starting game with %s feedback (needs %s)", policy.Name, policy.Needs())
	if err := ctrl.Run(ctx, target, policy, guess.NewLineReader(h.Stdin), set); err != nil {
		return err
	}
	log.Printf("game over")
	return nil
}
