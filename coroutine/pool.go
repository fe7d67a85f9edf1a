package coroutine

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/FalsePattern/satori/engine"
	"github.com/FalsePattern/satori/errors"
)

// Pool keeps dead coroutines for reuse, trading a recycle for a fresh
// stack reservation. Useful for high-frequency short-lived coroutines
// where Deinit plus New would dominate.
type Pool struct {
	free     []*Coroutine
	minStack uintptr
	mu       sync.Mutex
	closed   bool
}

// NewPool creates a pool whose fresh coroutines reserve at least
// minStack bytes of stack.
func NewPool(minStack uintptr) *Pool {
	return &Pool{minStack: minStack}
}

// Get returns a suspended coroutine bound to the given entry point,
// recycling a parked handle when one is available and allocating a
// fresh one otherwise.
func (p *Pool) Get(entry engine.Entry) (*Coroutine, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errors.NotInitialized("pool get")
	}
	var co *Coroutine
	if n := len(p.free); n > 0 {
		co = p.free[n-1]
		p.free = p.free[:n-1]
	}
	p.mu.Unlock()

	if co == nil {
		return New(p.minStack, entry)
	}
	if err := co.Recycle(entry); err != nil {
		return nil, err
	}
	return co, nil
}

// Put parks a dead coroutine for later reuse. Handles that are not dead
// are rejected; kill or drive them to completion first.
func (p *Pool) Put(co *Coroutine) error {
	if co.ctx == nil {
		return errors.NotInitialized("pool put")
	}
	if s := co.State(); s != Dead {
		return errors.BadState("pool put", s.String(), Dead.String())
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.NotInitialized("pool put")
	}
	p.free = append(p.free, co)
	return nil
}

// Len returns the number of parked coroutines.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Close deinitializes every parked coroutine and stops accepting
// operations, aggregating any deinit failures.
func (p *Pool) Close() error {
	p.mu.Lock()
	free := p.free
	p.free = nil
	p.closed = true
	p.mu.Unlock()

	var err error
	for _, co := range free {
		err = multierr.Append(err, co.Deinit())
	}
	return err
}
