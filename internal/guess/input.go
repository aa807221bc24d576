package guess

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// LineReader delivers lines typed by the operator.
type LineReader interface {
	// ReadLine blocks for the next line, without its line ending. It
	// returns ErrEndOfInput once the input is exhausted.
	ReadLine(ctx context.Context) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// StreamReader is a LineReader over an io.Reader such as os.Stdin. Reads
// happen on a background goroutine so that ReadLine can give up when its
// context is cancelled; the goroutine stays blocked in the underlying read
// until the stream produces data or closes.
type StreamReader struct {
	reader  *bufio.Reader
	results chan lineResult
	once    sync.Once
}

func NewLineReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader:  bufio.NewReader(r),
		results: make(chan lineResult),
	}
}

func (s *StreamReader) readLoop() {
	defer close(s.results)

	for {
		line, err := s.reader.ReadString('\n')
		if line != "" {
			s.results <- lineResult{line: strings.TrimRight(line, "\r\n")}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			s.results <- lineResult{err: fmt.Errorf("%w: %v", ErrEndOfInput, err)}
			return
		}
	}
}

func (s *StreamReader) ReadLine(ctx context.Context) (string, error) {
	s.once.Do(func() { go s.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.results:
		if !ok {
			return "", ErrEndOfInput
		}
		return res.line, res.err
	}
}

// SliceReader is a LineReader that replays fixed lines, then reports
// ErrEndOfInput.
type SliceReader struct {
	lines []string
	reads int
}

func NewSliceReader(lines ...string) *SliceReader {
	return &SliceReader{lines: lines}
}

func (s *SliceReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.reads >= len(s.lines) {
		return "", ErrEndOfInput
	}
	line := s.lines[s.reads]
	s.reads++
	return line, nil
}

// Reads returns how many lines have been handed out.
func (s *SliceReader) Reads() int {
	return s.reads
}
