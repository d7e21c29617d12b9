// Package script feeds command lines into a session and records its output.
package script

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// MaxLineSize is the longest command line Replay accepts.
const MaxLineSize = 16 << 20

// Replay calls applyFunc for every line read from r until r is exhausted,
// applyFunc returns an error, or ctx is cancelled. Cancellation is noticed
// even while a read is blocked; r is closed then if it is an io.Closer.
func Replay(ctx context.Context, r io.Reader, applyFunc func(line string) error) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return ctx.Err()
		case line := <-lines:
			if err := applyFunc(line); err != nil {
				return err
			}
		case err := <-scanErr:
			return errors.Wrap(err, "read commands")
		}
	}
}

// ReplayFile runs Replay over the file at path.
func ReplayFile(ctx context.Context, path string, applyFunc func(line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open script %s", path)
	}
	defer file.Close()
	return Replay(ctx, file, applyFunc)
}

// Transcript appends session output to a file.
type Transcript struct {
	file *os.File
}

// NewTranscript opens path for appending, creating it if needed.
func NewTranscript(path string) (*Transcript, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open transcript %s", path)
	}
	return &Transcript{
		file: file,
	}, nil
}

// Write appends p and flushes it to disk.
func (t *Transcript) Write(p []byte) (int, error) {
	n, err := t.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, t.file.Sync()
}

// Close closes the underlying file.
func (t *Transcript) Close() error {
	return t.file.Close()
}
