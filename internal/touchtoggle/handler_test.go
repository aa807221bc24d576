package touchtoggle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/output"
	"github.com/larsks/pilab/internal/tone"
	"github.com/larsks/pilab/internal/touch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledOn(led *output.DummyOutput) func() bool {
	return func() bool {
		on, _ := led.GetState()
		return on
	}
}

func TestMirror(t *testing.T) {
	led := output.NewDummyOutput("led")
	buzzer := tone.NewDummyTone("buzzer", 440)
	set := &actuator.Set{LED: led, Buzzer: buzzer, DutyCycle: 40}

	events := make(chan touch.Event, 4)
	events <- touch.Event{Source: "touch", Type: touch.Pressed}
	events <- touch.Event{Source: "touch", Type: touch.Released}
	events <- touch.Event{Source: "touch", Type: touch.Pressed}
	close(events)

	require.NoError(t, Mirror(context.Background(), events, set))

	assert.Equal(t, []bool{true, false, true, false}, led.History())
	assert.Equal(t, []string{"start 40", "stop", "start 40", "stop"}, buzzer.Calls())
}

func TestMirrorStopsOnCancel(t *testing.T) {
	led := output.NewDummyOutput("led")
	set := &actuator.Set{LED: led}

	events := make(chan touch.Event, 1)
	events <- touch.Event{Source: "touch", Type: touch.Pressed}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Mirror(ctx, events, set) }()

	assert.Eventually(t, ledOn(led), time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Mirror did not return after cancel")
	}
	assert.False(t, ledOn(led)())
}

func TestMirrorActuatorFailure(t *testing.T) {
	buzzer := tone.NewDummyTone("buzzer", 440)
	buzzer.StartErr = errors.New("no pwm")
	set := &actuator.Set{Buzzer: buzzer}

	events := make(chan touch.Event, 1)
	events <- touch.Event{Source: "touch", Type: touch.Pressed}

	err := Mirror(context.Background(), events, set)
	assert.ErrorIs(t, err, actuator.ErrActuator)
}

func TestRun(t *testing.T) {
	driver := drivers.NewDummyDriver()
	started := make(chan touch.Sensor, 1)
	h := &Handler{
		OpenDriver: func(*Config) (drivers.Driver, error) { return driver, nil },
		Started:    func(s touch.Sensor) { started <- s },
	}

	cfg := NewConfig()
	cfg.Buzzer = true
	cfg.Debounce = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx, cfg) }()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("sensor was not started")
	}

	input := driver.DummyInput("GPIO6")
	require.NotNil(t, input)
	led := driver.DummyOutput("GPIO17")
	require.NotNil(t, led)
	buzzer := driver.DummyTone("GPIO12")
	require.NotNil(t, buzzer)

	input.Press()
	assert.Eventually(t, ledOn(led), time.Second, time.Millisecond)
	assert.Eventually(t, buzzer.IsActive, time.Second, time.Millisecond)

	input.Release()
	assert.Eventually(t, func() bool { return !ledOn(led)() }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return !buzzer.IsActive() }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, 1, led.CloseCount())
	assert.Equal(t, 1, buzzer.CloseCount())
	assert.True(t, driver.IsClosed())
}

func TestRunWithoutBuzzer(t *testing.T) {
	driver := drivers.NewDummyDriver()
	h := &Handler{
		OpenDriver: func(*Config) (drivers.Driver, error) { return driver, nil },
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.Run(ctx, NewConfig()))
	assert.Nil(t, driver.DummyTone("GPIO12"))
	assert.True(t, driver.IsClosed())
}

func TestRunBadSensorPin(t *testing.T) {
	driver := drivers.NewDummyDriver()
	h := &Handler{
		OpenDriver: func(*Config) (drivers.Driver, error) { return driver, nil },
	}

	cfg := NewConfig()
	cfg.TouchPin = "PIN1"

	err := h.Run(context.Background(), cfg)
	assert.ErrorIs(t, err, actuator.ErrActuator)
	assert.True(t, driver.IsClosed())
	assert.Equal(t, 1, driver.DummyOutput("GPIO17").CloseCount())
}

func TestConfigValidateHandler(t *testing.T) {
	cfg := NewConfig()
	assert.NoError(t, cfg.Validate())

	cfg.TouchPin = "PIN1"
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Debounce = -time.Second
	assert.ErrorIs(t, cfg.Validate(), drivers.ErrInvalidConfig)
}
