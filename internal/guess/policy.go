package guess

import (
	"fmt"
	"sort"
	"time"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/matrix"
)

// Messages printed for each outcome.
const (
	MsgTooLow  = "guess is too low"
	MsgTooHigh = "guess is too high"
	MsgCorrect = "you guessed it"
)

// Policy maps each outcome to the feedback it produces. It is built
// before the game starts and not modified while it runs.
type Policy struct {
	Name    string
	TooLow  actuator.Sequence
	TooHigh actuator.Sequence
	Correct actuator.Sequence
}

// For returns the feedback for o.
func (p Policy) For(o Outcome) actuator.Sequence {
	switch o {
	case TooLow:
		return p.TooLow
	case TooHigh:
		return p.TooHigh
	default:
		return p.Correct
	}
}

// Validate checks every action of every outcome.
func (p Policy) Validate() error {
	for _, o := range []Outcome{TooLow, TooHigh, Correct} {
		if err := p.For(o).Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidPolicy, o, err)
		}
	}
	return nil
}

// Needs returns every actuator the policy drives.
func (p Policy) Needs() actuator.Needs {
	return p.TooLow.Needs() | p.TooHigh.Needs() | p.Correct.Needs()
}

// DefaultVariant is the policy used when none is selected.
const DefaultVariant = "tones-led"

var variants = map[string]func() Policy{
	"buzzer":    BuzzerPolicy,
	"tones":     TonesPolicy,
	"tones-led": TonesLEDPolicy,
	"full":      FullPolicy,
}

// Variant returns the named preset policy.
func Variant(name string) (Policy, error) {
	build, ok := variants[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %s (valid: %v)", ErrUnknownVariant, name, VariantNames())
	}
	return build(), nil
}

// VariantNames lists the preset policies in alphabetical order.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuzzerPolicy buzzes for a second at the buzzer's own frequency on any
// wrong guess.
func BuzzerPolicy() Policy {
	buzz := actuator.Tone{Hold: time.Second}
	return Policy{
		Name:    "buzzer",
		TooLow:  actuator.Sequence{actuator.Say{Text: MsgTooLow}, buzz},
		TooHigh: actuator.Sequence{actuator.Say{Text: MsgTooHigh}, buzz},
		Correct: actuator.Sequence{actuator.Say{Text: MsgCorrect}},
	}
}

func chime() actuator.Sequence {
	return actuator.Sequence{
		actuator.Tone{Frequency: 880, Hold: 200 * time.Millisecond},
		actuator.Tone{Frequency: 1760, Hold: 200 * time.Millisecond},
	}
}

// TonesPolicy uses a low note for a low guess, a high note for a high
// guess and a rising two note chime for the right answer.
func TonesPolicy() Policy {
	return Policy{
		Name: "tones",
		TooLow: actuator.Sequence{
			actuator.Say{Text: MsgTooLow},
			actuator.Tone{Frequency: 55, Hold: time.Second},
		},
		TooHigh: actuator.Sequence{
			actuator.Say{Text: MsgTooHigh},
			actuator.Tone{Frequency: 1000, Hold: time.Second},
		},
		Correct: append(actuator.Sequence{actuator.Say{Text: MsgCorrect}}, chime()...),
	}
}

// TonesLEDPolicy is TonesPolicy with the LED lit through the chime and for
// five seconds after it.
func TonesLEDPolicy() Policy {
	p := TonesPolicy()
	p.Name = "tones-led"
	p.Correct = actuator.Sequence{
		actuator.Say{Text: MsgCorrect},
		actuator.LED{On: true},
		chime(),
		actuator.Pause{Hold: 5 * time.Second},
		actuator.LED{On: false},
	}
	return p
}

// FullPolicy adds colour on the LED matrix and a note on the status
// display to TonesLEDPolicy.
func FullPolicy() Policy {
	p := TonesLEDPolicy()
	p.Name = "full"
	p.TooLow = actuator.Sequence{
		actuator.Fill{Colour: matrix.Blue},
		actuator.ShowLines{Lines: []string{"too low"}},
		p.TooLow,
	}
	p.TooHigh = actuator.Sequence{
		actuator.Fill{Colour: matrix.Red},
		actuator.ShowLines{Lines: []string{"too high"}},
		p.TooHigh,
	}
	p.Correct = actuator.Sequence{
		actuator.Fill{Colour: matrix.Green},
		actuator.ShowLines{Lines: []string{"you guessed it!"}},
		p.Correct,
		actuator.Fill{Colour: matrix.Black},
	}
	return p
}
