//go:build integration && gpio
// +build integration,gpio

package drivers

import (
	"testing"
	"time"

	"github.com/larsks/pilab/internal/touch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-gpiosim"
)

func TestGpiocdevDriverIntegration(t *testing.T) {
	sim, err := gpiosim.NewSimpleton(32)
	require.NoError(t, err, "gpio-sim requires root and CONFIG_GPIO_SIM")
	defer sim.Close()

	driver, err := Create("gpiocdev", map[string]any{"chip": sim.ChipName()})
	require.NoError(t, err)
	defer driver.Close()

	t.Run("output", func(t *testing.T) {
		led, err := driver.Output("PIN11")
		require.NoError(t, err)
		defer led.Close()

		require.NoError(t, led.TurnOn())
		level, err := sim.Level(17)
		require.NoError(t, err)
		assert.Equal(t, 1, level)
	})

	t.Run("active-low sensor", func(t *testing.T) {
		// idle high, as with the pull-up an active-low sensor gets
		require.NoError(t, sim.SetPull(6, 1))

		sensor, err := driver.Sensor("touch", "PIN31:active-low", 5*time.Millisecond)
		require.NoError(t, err)
		require.NoError(t, sensor.Start())
		defer sensor.Stop()

		require.NoError(t, sim.SetPull(6, 0))

		select {
		case ev := <-sensor.Events():
			assert.Equal(t, touch.Pressed, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for press")
		}
	})

	t.Run("soft tone", func(t *testing.T) {
		buzzer, err := driver.Tone("PIN32", 500)
		require.NoError(t, err)

		require.NoError(t, buzzer.Start(50))
		time.Sleep(20 * time.Millisecond)
		require.NoError(t, buzzer.Close())

		level, err := sim.Level(12)
		require.NoError(t, err)
		assert.Equal(t, 0, level, "buzzer should be silent after close")
	})
}
