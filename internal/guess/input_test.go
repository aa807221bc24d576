package guess

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("4\r\n  7 \n\n12"))
	ctx := context.Background()

	for _, expected := range []string{"4", "  7 ", "", "12"} {
		line, err := r.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, line)
	}

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrEndOfInput)

	// end of input is sticky
	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestStreamReaderEmpty(t *testing.T) {
	_, err := NewLineReader(strings.NewReader("")).ReadLine(context.Background())
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestStreamReaderCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewLineReader(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSliceReader(t *testing.T) {
	r := NewSliceReader("1", "2")
	ctx := context.Background()

	line, err := r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", line)

	line, err = r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", line)

	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrEndOfInput)
	assert.Equal(t, 2, r.Reads())
}

func TestParseGuess(t *testing.T) {
	tests := []struct {
		line     string
		expected int
		wantErr  bool
	}{
		{line: "5", expected: 5},
		{line: " 10\t", expected: 10},
		{line: "-3", expected: -3},
		{line: "x", wantErr: true},
		{line: "", wantErr: true},
		{line: "4.5", wantErr: true},
		{line: "five", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			n, err := ParseGuess(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}
