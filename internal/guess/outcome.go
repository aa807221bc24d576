package guess

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Outcome is the result of comparing a guess with the target.
type Outcome int

const (
	TooLow Outcome = iota
	TooHigh
	Correct
)

func (o Outcome) String() string {
	switch o {
	case TooLow:
		return "too-low"
	case TooHigh:
		return "too-high"
	case Correct:
		return "correct"
	default:
		return "unknown"
	}
}

// Compare classifies guess relative to target.
func Compare(guess, target int) Outcome {
	switch {
	case guess < target:
		return TooLow
	case guess > target:
		return TooHigh
	default:
		return Correct
	}
}

// Range is an inclusive range of targets.
type Range struct {
	Min int
	Max int
}

// DefaultRange is the range every classroom variant of the game uses.
var DefaultRange = Range{Min: 1, Max: 10}

func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, r.Min, r.Max)
	}
	// Max-Min+1 must fit in an int.
	if span := r.Max - r.Min; span < 0 || span == math.MaxInt {
		return fmt.Errorf("%w: %s is too wide", ErrInvalidRange, r)
	}
	return nil
}

func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%d to %d", r.Min, r.Max)
}

// NewTarget picks a target uniformly from r.
func NewTarget(rng *rand.Rand, r Range) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r.Min + rng.IntN(r.Max-r.Min+1), nil
}
