package data

import (
	"github.com/pkg/errors"
)

var (
	// The input held fewer integers than requested
	ErrShortInput = errors.New("data: input ended before the requested number of integers")

	// A token in the input was not a valid 32-bit decimal integer
	ErrMalformedInput = errors.New("data: malformed integer in input")
)

// Represents somewhere the unsorted input list can be loaded from.
type KeySource interface {
	// Return exactly n keys, in input order. Fails with ErrShortInput if the
	// source doesn't contain n keys. Keys after the first n are ignored.
	Load(n int) ([]int32, error)

	// Release any resources held by the source. The slice returned by Load
	// remains valid after Close.
	Close() error
}

// Opens the KeySource for a path. The only implementation is
// OpenFileSource, but tests substitute their own.
type SourceFactory func(path string) (KeySource, error)
