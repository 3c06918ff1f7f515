package adapter

import (
	"errors"
	"fmt"
	"io"
)

// ErrReadLimitExceeded is returned when a reader holds more than the allowed bytes
var ErrReadLimitExceeded = errors.New("read limit exceeded")

// IO reads whole files that must fit in memory
//
//go:generate mockgen -source=io.go -destination=../mocks/io.go -package=mocks -mock_names=IO=MockIO
type IO interface {
	// ReadAll reads r to the end, failing once more than limit bytes were seen
	ReadAll(r io.Reader, limit int64) ([]byte, error)
}

// RealIO implements IO using the standard io package
type RealIO struct{}

// NewIO creates a new real IO implementation
func NewIO() IO {
	return &RealIO{}
}

func (i *RealIO) ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrReadLimitExceeded, limit)
	}
	return data, nil
}
