package hat

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"os/signal"
	"syscall"
	"time"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/cli"
	"github.com/larsks/pilab/internal/matrix"
)

// Handler implements the CLI handler for hat
type Handler struct {
	// NewMatrix, if set, replaces opening the configured device.
	NewMatrix func(cfg *Config) (*matrix.Matrix, error)

	// Rand picks colours for the random command; nil uses a randomly
	// seeded source.
	Rand *rand.Rand
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

	return h.Run(ctx, cfg, args)
}

func checkArgs(args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	switch args[0] {
	case "letters", "message", "random":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s needs one TEXT argument", ErrUsage, args[0])
		}
		if args[1] == "" {
			return fmt.Errorf("%w: %s needs non-empty TEXT", ErrUsage, args[0])
		}
	case "image", "clear":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s takes no arguments", ErrUsage, args[0])
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}

// Run executes one hat command. The matrix is blanked and closed before
// Run returns.
func (h *Handler) Run(ctx context.Context, cfg *Config, args []string) (err error) {
	if err := checkArgs(args); err != nil {
		return err
	}
	fg, bg, err := cfg.Colours()
	if err != nil {
		return err
	}

	var m *matrix.Matrix
	if h.NewMatrix != nil {
		m, err = h.NewMatrix(cfg)
	} else {
		m, err = matrix.Open(cfg.Device, cfg.DryRun)
	}
	if err != nil {
		return fmt.Errorf("%w: matrix: %v", actuator.ErrActuator, err)
	}

	set := &actuator.Set{Matrix: m}
	defer func() {
		if releaseErr := set.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	log.Printf("running %s", args[0])
	switch args[0] {
	case "letters":
		return showLetters(ctx, m, args[1], cfg.LetterTime, func(int) (color.RGBA, color.RGBA) {
			return fg, bg
		})
	case "message":
		return m.ShowMessage(ctx, args[1], cfg.Speed, fg, bg)
	case "image":
		if err := m.SetPixels(matrix.FlagImage()); err != nil {
			return err
		}
		return actuator.Sleep(ctx, cfg.ImageTime)
	case "random":
		return h.random(ctx, m, args[1], cfg.LetterTime, bg)
	default:
		return m.Clear()
	}
}

func showLetters(ctx context.Context, m *matrix.Matrix, text string, hold time.Duration, colours func(i int) (fg, bg color.RGBA)) error {
	for i, r := range []rune(text) {
		fg, bg := colours(i)
		if err := m.ShowLetter(r, fg, bg); err != nil {
			return err
		}
		if err := actuator.Sleep(ctx, hold); err != nil {
			return err
		}
	}
	return nil
}

// random shows text letter by letter in grey, green and blue at a fresh
// random intensity for each letter, over and over until ctx is done.
func (h *Handler) random(ctx context.Context, m *matrix.Matrix, text string, hold time.Duration, bg color.RGBA) error {
	rng := h.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	colours := func(i int) (color.RGBA, color.RGBA) {
		grey, green, blue := matrix.RandomIntensity(rng)
		return []color.RGBA{grey, green, blue}[i%3], bg
	}

	for ctx.Err() == nil {
		err := showLetters(ctx, m, text, hold, colours)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
