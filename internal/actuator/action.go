package actuator

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"
)

// Action is one step of feedback. Run blocks until the step is complete.
type Action interface {
	Run(ctx context.Context, s *Set) error
	// Duration is how long Run blocks, not counting hardware latency.
	Duration() time.Duration
	Needs() Needs
	Validate() error
	String() string
}

// Sleep waits for d or until ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func failed(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrActuator, what, err)
}

func missing(what string) error {
	return fmt.Errorf("%w: %w: %s", ErrActuator, ErrMissingActuator, what)
}

func validateHold(hold time.Duration) error {
	if hold < 0 {
		return fmt.Errorf("%w: negative duration %s", ErrInvalidAction, hold)
	}
	return nil
}

// Tone sounds the buzzer for Hold, then stops it. A zero Frequency keeps
// whatever frequency the buzzer already has; a zero DutyCycle uses the
// set's.
type Tone struct {
	Frequency float64
	DutyCycle float64
	Hold      time.Duration
}

func (a Tone) Run(ctx context.Context, s *Set) error {
	if s.Buzzer == nil {
		return missing("buzzer")
	}

	duty := a.DutyCycle
	if duty == 0 {
		duty = s.dutyCycle()
	}

	if err := s.Buzzer.Start(duty); err != nil {
		return failed("buzzer", err)
	}
	if a.Frequency > 0 {
		if err := s.Buzzer.SetFrequency(a.Frequency); err != nil {
			s.Buzzer.Stop() //nolint:errcheck
			return failed("buzzer", err)
		}
	}

	holdErr := Sleep(ctx, a.Hold)

	if err := s.Buzzer.Stop(); err != nil {
		return failed("buzzer", err)
	}
	return holdErr
}

func (a Tone) Duration() time.Duration { return a.Hold }
func (a Tone) Needs() Needs            { return NeedBuzzer }

func (a Tone) Validate() error {
	if a.Frequency < 0 || a.Frequency > 1e6 {
		return fmt.Errorf("%w: tone frequency %v", ErrInvalidAction, a.Frequency)
	}
	if a.DutyCycle < 0 || a.DutyCycle > 100 {
		return fmt.Errorf("%w: tone duty cycle %v", ErrInvalidAction, a.DutyCycle)
	}
	return validateHold(a.Hold)
}

func (a Tone) String() string {
	if a.Frequency == 0 {
		return fmt.Sprintf("tone for %s", a.Hold)
	}
	return fmt.Sprintf("tone %vHz for %s", a.Frequency, a.Hold)
}

// LED switches the LED and then waits for Hold.
type LED struct {
	On   bool
	Hold time.Duration
}

func (a LED) Run(ctx context.Context, s *Set) error {
	if s.LED == nil {
		return missing("led")
	}
	if err := s.LED.Set(a.On); err != nil {
		return failed("led", err)
	}
	return Sleep(ctx, a.Hold)
}

func (a LED) Duration() time.Duration { return a.Hold }
func (a LED) Needs() Needs            { return NeedLED }
func (a LED) Validate() error         { return validateHold(a.Hold) }

func (a LED) String() string {
	state := "off"
	if a.On {
		state = "on"
	}
	if a.Hold == 0 {
		return "led " + state
	}
	return fmt.Sprintf("led %s for %s", state, a.Hold)
}

// Pause waits without touching any hardware.
type Pause struct {
	Hold time.Duration
}

func (a Pause) Run(ctx context.Context, _ *Set) error { return Sleep(ctx, a.Hold) }
func (a Pause) Duration() time.Duration               { return a.Hold }
func (a Pause) Needs() Needs                          { return 0 }
func (a Pause) Validate() error                       { return validateHold(a.Hold) }
func (a Pause) String() string                        { return fmt.Sprintf("pause %s", a.Hold) }

// Say writes a line to the operator's console.
type Say struct {
	Text string
}

func (a Say) Run(ctx context.Context, s *Set) error {
	if _, err := fmt.Fprintln(s.console(), a.Text); err != nil {
		return failed("console", err)
	}
	return nil
}

func (a Say) Duration() time.Duration { return 0 }
func (a Say) Needs() Needs            { return 0 }
func (a Say) Validate() error         { return nil }
func (a Say) String() string          { return fmt.Sprintf("say %q", a.Text) }

// Fill paints the whole LED matrix one colour and waits for Hold.
type Fill struct {
	Colour color.RGBA
	Hold   time.Duration
}

func (a Fill) Run(ctx context.Context, s *Set) error {
	if s.Matrix == nil {
		return missing("matrix")
	}
	if err := s.Matrix.Fill(a.Colour); err != nil {
		return failed("matrix", err)
	}
	return Sleep(ctx, a.Hold)
}

func (a Fill) Duration() time.Duration { return a.Hold }
func (a Fill) Needs() Needs            { return NeedMatrix }
func (a Fill) Validate() error         { return validateHold(a.Hold) }

func (a Fill) String() string {
	return fmt.Sprintf("fill %d,%d,%d", a.Colour.R, a.Colour.G, a.Colour.B)
}

// ShowLines replaces the text on the status display.
type ShowLines struct {
	Lines []string
}

func (a ShowLines) Run(ctx context.Context, s *Set) error {
	if s.Display == nil {
		return missing("display")
	}
	if err := s.Display.ShowLines(a.Lines...); err != nil {
		return failed("display", err)
	}
	return nil
}

func (a ShowLines) Duration() time.Duration { return 0 }
func (a ShowLines) Needs() Needs            { return NeedDisplay }
func (a ShowLines) Validate() error         { return nil }
func (a ShowLines) String() string          { return fmt.Sprintf("show %q", a.Lines) }

// Sequence runs its actions in order, stopping at the first failure.
type Sequence []Action

func (seq Sequence) Run(ctx context.Context, s *Set) error {
	for _, a := range seq {
		if err := a.Run(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (seq Sequence) Duration() time.Duration {
	var total time.Duration
	for _, a := range seq {
		total += a.Duration()
	}
	return total
}

func (seq Sequence) Needs() Needs {
	var needs Needs
	for _, a := range seq {
		needs |= a.Needs()
	}
	return needs
}

func (seq Sequence) Validate() error {
	for i, a := range seq {
		if a == nil {
			return fmt.Errorf("%w: step %d is empty", ErrInvalidAction, i)
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, a, err)
		}
	}
	return nil
}

func (seq Sequence) String() string {
	steps := make([]string, len(seq))
	for i, a := range seq {
		steps[i] = a.String()
	}
	return strings.Join(steps, ", ")
}

var (
	_ Action = Tone{}
	_ Action = LED{}
	_ Action = Pause{}
	_ Action = Say{}
	_ Action = Fill{}
	_ Action = ShowLines{}
	_ Action = Sequence{}
)
