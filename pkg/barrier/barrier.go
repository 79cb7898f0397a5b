// Package barrier provides a reusable rendezvous point for a fixed number of
// goroutines. Every call to Wait blocks until all parties have arrived, then
// releases them together and resets for the next cycle.
package barrier

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrInvalidParties = errors.New("barrier: number of parties must be positive")
	ErrBroken         = errors.New("barrier: broken")
)

type Barrier struct {
	parties int
	action  func()

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	gen     uint64 // Incremented every time the barrier trips
	broken  bool
}

// New creates a barrier for n parties.
func New(n int) (*Barrier, error) {
	return NewWithAction(n, nil)
}

// NewWithAction creates a barrier for n parties. If action is non-nil, it is
// run by the last goroutine to arrive in each cycle, before any waiter is
// released.
func NewWithAction(n int, action func()) (*Barrier, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidParties, "Got %v parties", n)
	}

	b := &Barrier{parties: n, action: action}
	b.cond = sync.NewCond(&b.mu)
	return b, nil
}

func (self *Barrier) Parties() int {
	return self.parties
}

// Wait blocks until Parties() goroutines have called Wait in the current
// cycle. Returns ErrBroken if the barrier was broken before or while waiting.
func (self *Barrier) Wait() error {
	self.mu.Lock()
	defer self.mu.Unlock()

	if self.broken {
		return ErrBroken
	}

	gen := self.gen
	self.arrived++
	if self.arrived == self.parties {
		if self.action != nil {
			self.action()
		}
		self.arrived = 0
		self.gen++
		self.cond.Broadcast()
		return nil
	}

	// A new generation means we were released, even if the barrier was
	// broken afterwards by someone in the next cycle.
	for gen == self.gen && !self.broken {
		self.cond.Wait()
	}

	if gen == self.gen {
		return ErrBroken
	}
	return nil
}

// Break releases every current waiter with ErrBroken. All future calls to
// Wait fail immediately. Breaking is permanent.
func (self *Barrier) Break() {
	self.mu.Lock()
	self.broken = true
	self.cond.Broadcast()
	self.mu.Unlock()
}

func (self *Barrier) Broken() bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.broken
}
