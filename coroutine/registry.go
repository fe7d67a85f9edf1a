package coroutine

import (
	"sync"

	"github.com/FalsePattern/satori/engine"
)

// Event types for coroutine lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventRecycled
	EventDeinitialized
)

// Event represents a coroutine lifecycle event.
type Event struct {
	Coroutine *Coroutine
	Type      EventType
}

// Observer receives notifications about coroutine lifecycle events.
type Observer interface {
	OnCoroutineEvent(Event)
}

// registry maps engine context identity back to the owning handle. It
// is populated at init/recycle time and cleared at deinit, so active
// lookups never rely on memory layout or back-pointer arithmetic.
type registry struct {
	entries   sync.Map // *engine.Context -> *Coroutine
	observers []Observer
	obsMu     sync.RWMutex
}

var defaultRegistry registry

// Subscribe adds an observer for lifecycle events.
func Subscribe(o Observer) {
	defaultRegistry.obsMu.Lock()
	defer defaultRegistry.obsMu.Unlock()
	defaultRegistry.observers = append(defaultRegistry.observers, o)
}

// Unsubscribe removes an observer.
func Unsubscribe(o Observer) {
	defaultRegistry.obsMu.Lock()
	defer defaultRegistry.obsMu.Unlock()
	for i, obs := range defaultRegistry.observers {
		if obs == o {
			defaultRegistry.observers = append(defaultRegistry.observers[:i], defaultRegistry.observers[i+1:]...)
			return
		}
	}
}

func (r *registry) add(ctx *engine.Context, co *Coroutine) {
	r.entries.Store(ctx, co)
	r.notify(Event{Type: EventCreated, Coroutine: co})
}

// adopt registers a wrapper for a context discovered through Active,
// typically a pseudo-context. Concurrent adopters converge on one
// winner.
func (r *registry) adopt(ctx *engine.Context, co *Coroutine) *Coroutine {
	v, _ := r.entries.LoadOrStore(ctx, co)
	return v.(*Coroutine)
}

func (r *registry) lookup(ctx *engine.Context) (*Coroutine, bool) {
	v, ok := r.entries.Load(ctx)
	if !ok {
		return nil, false
	}
	return v.(*Coroutine), true
}

func (r *registry) remove(ctx *engine.Context, co *Coroutine) {
	r.entries.Delete(ctx)
	r.notify(Event{Type: EventDeinitialized, Coroutine: co})
}

func (r *registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnCoroutineEvent(e)
	}
}
