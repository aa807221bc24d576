package guess

import (
	"testing"
	"time"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants(t *testing.T) {
	assert.Equal(t, []string{"buzzer", "full", "tones", "tones-led"}, VariantNames())

	tests := []struct {
		name          string
		needs         actuator.Needs
		wrongDuration time.Duration
		rightDuration time.Duration
	}{
		{name: "buzzer", needs: actuator.NeedBuzzer, wrongDuration: time.Second, rightDuration: 0},
		{name: "tones", needs: actuator.NeedBuzzer, wrongDuration: time.Second, rightDuration: 400 * time.Millisecond},
		{name: "tones-led", needs: actuator.NeedBuzzer | actuator.NeedLED, wrongDuration: time.Second, rightDuration: 5400 * time.Millisecond},
		{
			name:          "full",
			needs:         actuator.NeedBuzzer | actuator.NeedLED | actuator.NeedMatrix | actuator.NeedDisplay,
			wrongDuration: time.Second,
			rightDuration: 5400 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Variant(tt.name)
			require.NoError(t, err)

			assert.Equal(t, tt.name, p.Name)
			assert.NoError(t, p.Validate())
			assert.Equal(t, tt.needs, p.Needs())
			assert.Equal(t, tt.wrongDuration, p.For(TooLow).Duration())
			assert.Equal(t, tt.wrongDuration, p.For(TooHigh).Duration())
			assert.Equal(t, tt.rightDuration, p.For(Correct).Duration())
		})
	}

	_, err := Variant("disco")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestTonesPolicyFrequencies(t *testing.T) {
	p := TonesPolicy()

	assert.Equal(t, actuator.Tone{Frequency: 55, Hold: time.Second}, p.TooLow[1])
	assert.Equal(t, actuator.Tone{Frequency: 1000, Hold: time.Second}, p.TooHigh[1])
	assert.Equal(t, "say \"you guessed it\", tone 880Hz for 200ms, tone 1760Hz for 200ms", p.Correct.String())
}

func TestPolicyValidateRejectsBadActions(t *testing.T) {
	p := BuzzerPolicy()
	p.TooHigh = actuator.Sequence{actuator.Tone{Frequency: -55}}

	err := p.Validate()
	assert.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Contains(t, err.Error(), "too-high")
}
