package pulse

import (
	"context"
	"testing"
	"time"

	"github.com/larsks/pilab/internal/drivers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	cfg := NewConfig()
	cfg.LEDTime = 10 * time.Millisecond
	cfg.BuzzerTime = 10 * time.Millisecond
	return cfg
}

func testHandler(driver *drivers.DummyDriver) *Handler {
	return &Handler{
		OpenDriver: func(*Config) (drivers.Driver, error) { return driver, nil },
	}
}

func TestPulseLED(t *testing.T) {
	driver := drivers.NewDummyDriver()
	require.NoError(t, testHandler(driver).Pulse(context.Background(), testConfig(), "led"))

	led := driver.DummyOutput("GPIO17")
	require.NotNil(t, led)
	assert.Equal(t, []bool{true, false, false}, led.History())
	assert.Nil(t, driver.DummyTone("GPIO12"), "led pulse does not claim the buzzer")
	assert.True(t, driver.IsClosed())
}

func TestPulseBuzzer(t *testing.T) {
	driver := drivers.NewDummyDriver()
	cfg := testConfig()
	cfg.Frequency = 440
	cfg.DutyCycle = 25

	require.NoError(t, testHandler(driver).Pulse(context.Background(), cfg, "buzzer"))

	buzzer := driver.DummyTone("GPIO12")
	require.NotNil(t, buzzer)
	assert.Equal(t, []string{"start 25", "frequency 440", "stop"}, buzzer.Calls())
	assert.Equal(t, 1, buzzer.CloseCount())
	assert.True(t, driver.IsClosed())
}

func TestPulseCancelled(t *testing.T) {
	driver := drivers.NewDummyDriver()
	cfg := NewConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testHandler(driver).Pulse(ctx, cfg, "led")
	assert.ErrorIs(t, err, context.Canceled)

	led := driver.DummyOutput("GPIO17")
	require.NotNil(t, led)
	on, _ := led.GetState()
	assert.False(t, on)
	assert.True(t, driver.IsClosed())
}

func TestPulseUnknownTarget(t *testing.T) {
	driver := drivers.NewDummyDriver()
	err := testHandler(driver).Pulse(context.Background(), testConfig(), "matrix")
	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.False(t, driver.IsClosed())
}

func TestStartUsage(t *testing.T) {
	h := testHandler(drivers.NewDummyDriver())
	assert.ErrorIs(t, h.Start(testConfig(), nil), ErrUsage)
	assert.ErrorIs(t, h.Start(testConfig(), []string{"led", "buzzer"}), ErrUsage)
}

func TestSequenceValidation(t *testing.T) {
	cfg := testConfig()
	cfg.LEDTime = -time.Second
	_, err := cfg.Sequence("led")
	assert.Error(t, err)
}
