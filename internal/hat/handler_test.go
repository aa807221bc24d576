package hat

import (
	"context"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() (*Handler, *matrix.FakeDriver) {
	driver := matrix.NewFakeDriver()
	return &Handler{
		NewMatrix: func(*Config) (*matrix.Matrix, error) {
			return matrix.New(driver), nil
		},
		Rand: rand.New(rand.NewPCG(1, 2)),
	}, driver
}

func testConfig() *Config {
	cfg := NewConfig()
	cfg.Speed = 0
	cfg.LetterTime = time.Millisecond
	cfg.ImageTime = time.Millisecond
	return cfg
}

func letter(r rune, fg, bg color.RGBA) []color.RGBA {
	m := matrix.New(matrix.NewFakeDriver())
	if err := m.ShowLetter(r, fg, bg); err != nil {
		panic(err)
	}
	return m.Pixels()
}

func allBlack(frame []color.RGBA) bool {
	for _, c := range frame {
		if c != matrix.Black {
			return false
		}
	}
	return true
}

func TestLetters(t *testing.T) {
	h, driver := testHandler()
	cfg := testConfig()
	cfg.Foreground = "red"
	cfg.Background = "0,0,255"

	require.NoError(t, h.Run(context.Background(), cfg, []string{"letters", "Hi"}))

	frames := driver.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, letter('H', matrix.Red, matrix.Blue), frames[0])
	assert.Equal(t, letter('i', matrix.Red, matrix.Blue), frames[1])
	assert.True(t, allBlack(frames[2]), "the matrix is blanked on exit")
	assert.Equal(t, 1, driver.CloseCount())
}

func TestMessage(t *testing.T) {
	h, driver := testHandler()
	require.NoError(t, h.Run(context.Background(), testConfig(), []string{"message", "Hi"}))

	// one frame per scroll offset plus the blank frame on close
	assert.Len(t, driver.Frames(), matrix.Width*3+2)
	assert.Equal(t, 1, driver.CloseCount())
}

func TestImage(t *testing.T) {
	h, driver := testHandler()
	require.NoError(t, h.Run(context.Background(), testConfig(), []string{"image"}))

	frames := driver.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, matrix.FlagImage(), frames[0])
}

func TestClear(t *testing.T) {
	h, driver := testHandler()
	require.NoError(t, h.Run(context.Background(), testConfig(), []string{"clear"}))

	for _, frame := range driver.Frames() {
		assert.True(t, allBlack(frame))
	}
}

func TestRandomRunsUntilCancelled(t *testing.T) {
	h, driver := testHandler()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, h.Run(ctx, testConfig(), []string{"random", "ab"}))

	frames := driver.Frames()
	assert.Greater(t, len(frames), 3, "the text is shown more than once")
	assert.True(t, allBlack(frames[len(frames)-1]))
	assert.Equal(t, 1, driver.CloseCount())
}

func TestCancelled(t *testing.T) {
	h, driver := testHandler()
	cfg := testConfig()
	cfg.ImageTime = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Run(ctx, cfg, []string{"image"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, driver.CloseCount())
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no command", args: nil, wantErr: ErrUsage},
		{name: "letters without text", args: []string{"letters"}, wantErr: ErrUsage},
		{name: "clear with text", args: []string{"clear", "x"}, wantErr: ErrUsage},
		{name: "letters with empty text", args: []string{"letters", ""}, wantErr: ErrUsage},
		{name: "message with empty text", args: []string{"message", ""}, wantErr: ErrUsage},
		{name: "random with empty text", args: []string{"random", ""}, wantErr: ErrUsage},
		{name: "unknown", args: []string{"sparkle"}, wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, driver := testHandler()
			assert.ErrorIs(t, h.Run(context.Background(), testConfig(), tt.args), tt.wantErr)
			assert.Empty(t, driver.Frames(), "the matrix is not opened")
		})
	}
}

func TestBadColour(t *testing.T) {
	cfg := testConfig()
	cfg.Foreground = "mauve"
	assert.ErrorIs(t, cfg.Validate(), matrix.ErrInvalidColour)

	h, _ := testHandler()
	assert.ErrorIs(t, h.Run(context.Background(), cfg, []string{"clear"}), matrix.ErrInvalidColour)
}

func TestOpenFailure(t *testing.T) {
	h := &Handler{
		NewMatrix: func(*Config) (*matrix.Matrix, error) {
			return nil, matrix.ErrNoDevice
		},
	}
	err := h.Run(context.Background(), testConfig(), []string{"clear"})
	assert.ErrorIs(t, err, actuator.ErrActuator)
}

func TestDryRun(t *testing.T) {
	cfg := testConfig()
	cfg.DryRun = true
	assert.NoError(t, NewHandler().Run(context.Background(), cfg, []string{"letters", "ok"}))
}
