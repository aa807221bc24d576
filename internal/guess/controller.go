// Package guess runs the guess-the-number game: the operator guesses a
// hidden number and the hardware reacts to each guess until it is right.
package guess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/larsks/pilab/internal/actuator"
)

// Controller runs one game session.
type Controller struct {
	// Prompt is written before every read.
	Prompt string

	// Out receives the prompt and invalid input reports. Nil discards them.
	Out io.Writer

	// OnGuess, if set, is called for every valid guess before its
	// feedback runs.
	OnGuess func(guess int, outcome Outcome)

	// OnInvalid, if set, is called for every line that is not a number.
	OnInvalid func(line string, err error)
}

// NewController returns a controller prompting for a number in r.
func NewController(r Range, out io.Writer) *Controller {
	return &Controller{
		Prompt: fmt.Sprintf("Guess a number from %s", r),
		Out:    out,
	}
}

// ParseGuess parses a line as a whole number, ignoring surrounding space.
func ParseGuess(line string) (int, error) {
	text := strings.TrimSpace(line)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidInput, text)
	}
	return n, nil
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}

// Run plays until a guess equals target and then returns nil. Lines that
// are not numbers are reported and asked for again; running out of input,
// a cancelled ctx or any actuator failure ends the session with an error.
//
// Run owns set: it is released exactly once before Run returns, whatever
// the outcome, and any release failure is joined to the returned error. A
// set that was already released is refused with actuator.ErrReleased.
func (c *Controller) Run(ctx context.Context, target int, policy Policy, input LineReader, set *actuator.Set) (err error) {
	if set == nil {
		set = &actuator.Set{}
	}
	if set.Released() {
		return actuator.ErrReleased
	}
	defer func() {
		if releaseErr := set.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	if err := policy.Validate(); err != nil {
		return err
	}

	for {
		fmt.Fprintln(c.out(), c.Prompt) //nolint:errcheck

		line, err := input.ReadLine(ctx)
		if err != nil {
			return err
		}

		guess, err := ParseGuess(line)
		if err != nil {
			fmt.Fprintln(c.out(), err) //nolint:errcheck
			if c.OnInvalid != nil {
				c.OnInvalid(line, err)
			}
			continue
		}

		outcome := Compare(guess, target)
		if c.OnGuess != nil {
			c.OnGuess(guess, outcome)
		}

		if err := policy.For(outcome).Run(ctx, set); err != nil {
			return fmt.Errorf("%s feedback: %w", outcome, err)
		}

		if outcome == Correct {
			return nil
		}
	}
}
