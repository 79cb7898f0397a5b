package sort

import (
	"fmt"

	"github.com/pkg/errors"
)

// Configuration errors, reported before any worker starts
var (
	ErrInvalidThreads    = errors.New("samplesort: thread count must be positive")
	ErrEmptyList         = errors.New("samplesort: list is empty")
	ErrIndivisibleList   = errors.New("samplesort: list size is not divisible by thread count")
	ErrIndivisibleSample = errors.New("samplesort: sample size is not divisible by thread count")
	ErrSampleTooLarge    = errors.New("samplesort: per-thread sample size exceeds per-thread chunk size")
	ErrBarrierMismatch   = errors.New("samplesort: barrier parties don't match thread count")
)

// Runtime errors
var (
	// Rejection sampling couldn't find enough distinct keys in a chunk
	ErrSampleExhausted = errors.New("samplesort: not enough distinct keys to sample")
)

// Failure of a single worker. Err is the underlying cause.
type PhaseError struct {
	Phase Phase
	Rank  int
	Err   error
}

func (self *PhaseError) Error() string {
	return fmt.Sprintf("worker %v failed in phase %v: %v", self.Rank, self.Phase, self.Err)
}

func (self *PhaseError) Unwrap() error {
	return self.Err
}

// Cause lets errors.Cause see through a PhaseError
func (self *PhaseError) Cause() error {
	return self.Err
}
