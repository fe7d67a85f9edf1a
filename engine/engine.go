package engine

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"

	satori "github.com/FalsePattern/satori"
	"github.com/FalsePattern/satori/errors"
)

// State is the engine's view of a context. Exactly four values, exclusive.
type State uint8

const (
	// Suspended contexts are idle and resumable.
	Suspended State = iota
	// Running contexts are executing on the calling goroutine.
	Running
	// Dead contexts have finished; only a reset or destroy is legal.
	Dead
	// Idle contexts resumed another context and are blocked waiting for
	// it to yield back.
	Idle
)

var stateNames = [...]string{
	Suspended: "suspended",
	Running:   "running",
	Dead:      "dead",
	Idle:      "idle",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Entry is the native entry-point signature: one opaque cell in, one
// opaque cell or absent out.
type Entry func(satori.Cell) (satori.Cell, bool)

// message is one word crossing a transfer boundary. kill messages wake a
// parked goroutine so it can unwind without delivering anything.
type message struct {
	cell satori.Cell
	has  bool
	kill bool
}

// killPanic unwinds a killed context's goroutine. It is recovered at the
// context's run loop and never escapes to user code that behaves.
type killPanic struct{}

// Context is one coroutine resource: a goroutine, its transfer channels
// and the engine's bookkeeping for it. The zero value is not usable;
// create contexts with NewContext.
type Context struct {
	entry   Entry
	in      chan message
	out     chan message
	resumer *Context
	waiting *Context

	stackSize uintptr
	state     atomic.Uint32

	started   bool
	destroyed bool
	pseudo    bool

	// killDeliver arranges a die-equivalent delivery of killArg at the
	// next scheduling point of a context killed while running.
	killArg     satori.Cell
	killHas     bool
	killDeliver bool
}

// mu guards the resumer/waiting links and kill bookkeeping across all
// contexts. Critical sections are short; transfers themselves happen on
// unbuffered channels outside the lock.
var mu sync.Mutex

// registry maps goroutine id to the context executing on it. Coroutine
// goroutines register themselves for their lifetime; plain goroutines
// get a lazily created pseudo-context.
var registry sync.Map

// NewContext allocates a context with at least min bytes of stack,
// rounded up per RealStackSize, bound to the given native entry point.
// The context starts suspended. The backing goroutine is launched
// lazily on first resume, so an unresumed context costs no scheduling.
func NewContext(min uintptr, entry Entry) (*Context, error) {
	if entry == nil {
		return nil, errors.InvalidData(errors.PhaseRuntime, []string{"create"}, "nil entry point")
	}
	c := &Context{
		entry:     entry,
		stackSize: RealStackSize(min),
		in:        make(chan message),
		out:       make(chan message),
	}
	c.setState(Suspended)
	debugf("context created, stack %d", c.stackSize)
	return c, nil
}

// Active returns the context currently executing on the calling
// goroutine. For a goroutine that is not a coroutine this is a
// pseudo-context: it is never suspended and must not be yielded from.
func Active() *Context {
	id := goid.Get()
	if v, ok := registry.Load(id); ok {
		return v.(*Context)
	}
	c := &Context{pseudo: true}
	c.setState(Running)
	v, _ := registry.LoadOrStore(id, c)
	return v.(*Context)
}

// State reports the context's current state. Pure query.
func (c *Context) State() State {
	return State(c.state.Load())
}

func (c *Context) setState(s State) {
	c.state.Store(uint32(s))
}

// Pseudo reports whether this is a pseudo-context standing in for a
// plain goroutine's original execution context.
func (c *Context) Pseudo() bool {
	return c.pseudo
}

// Stack returns the stack's lower bound and size when the backend
// supports introspection. The goroutine backend does not: Go owns its
// stacks and relocates them at will, so this always reports absent.
func (c *Context) Stack() (uintptr, uintptr, bool) {
	return 0, 0, false
}

// StackSize returns the stack reservation recorded at creation. On the
// goroutine backend this is a sizing contract, not a hard limit.
func (c *Context) StackSize() uintptr {
	return c.stackSize
}

// Resume transfers control into c with one opaque cell and blocks until
// c yields, dies or is killed, returning the cell handed back and
// whether one was present.
//
// Precondition: c is suspended. The engine does not check this;
// violating it is undefined behavior.
func (c *Context) Resume(in satori.Cell) (satori.Cell, bool) {
	caller := Active()

	mu.Lock()
	if s := c.State(); s != Suspended {
		debugf("resume of %s context", s)
	}
	c.resumer = caller
	caller.waiting = c
	caller.setState(Idle)
	c.setState(Running)
	start := !c.started
	if start {
		c.started = true
	}
	mu.Unlock()

	if start {
		go c.run()
	}
	c.in <- message{cell: in, has: true}
	m := <-c.out

	if m.kill {
		// This caller sits inside a chain that was killed; its own
		// delivery was already made. Unwind.
		panic(killPanic{})
	}

	mu.Lock()
	caller.waiting = nil
	caller.setState(Running)
	mu.Unlock()
	return m.cell, m.has
}

// Yield transfers control back to whoever last resumed the calling
// context, handing it one opaque cell, and blocks until resumed again.
// Callable only from inside a coroutine; a pseudo-context must not
// yield.
func Yield(v satori.Cell) satori.Cell {
	c := Active()
	if c.pseudo {
		panic(errors.BadState("yield", "pseudo-context", "running coroutine"))
	}

	mu.Lock()
	if c.State() == Dead {
		// Killed while running; takes effect here, equivalently to die.
		c.unwindLocked()
	}
	c.resumer = nil
	c.setState(Suspended)
	mu.Unlock()

	// The resumer wakes on our out channel and restores itself.
	c.out <- message{cell: v, has: true}
	m := <-c.in
	if m.kill {
		panic(killPanic{})
	}
	return m.cell
}

// Die transfers control back to the resumer like Yield, but marks the
// context dead and never returns. Equivalent to the entry function
// returning v.
func Die(v satori.Cell) {
	c := Active()
	if c.pseudo {
		panic(errors.BadState("die", "pseudo-context", "running coroutine"))
	}
	c.finish(message{cell: v, has: true})
	panic(killPanic{})
}

// Kill forces c dead.
//
// A running context killed from its own goroutine dies immediately, as
// if it had called Die. A running context killed from another goroutine
// dies at its next scheduling point. An idle context's kill propagates:
// the cell is delivered to c's resumer as if c had yielded it, and every
// context below c in the resume chain unwinds, innermost first.
func (c *Context) Kill(arg satori.Cell) {
	if c.pseudo {
		panic(errors.BadState("kill", "pseudo-context", "coroutine"))
	}
	if c == Active() {
		Die(arg)
	}

	mu.Lock()
	switch c.State() {
	case Dead:
		mu.Unlock()

	case Suspended:
		c.setState(Dead)
		started := c.started
		c.resumer = nil
		mu.Unlock()
		if started {
			// Parked in Yield; wake it so it unwinds.
			c.in <- message{kill: true}
		}

	case Running:
		// Executing on another goroutine: record the delivery and let
		// the next scheduling point carry it out.
		c.setState(Dead)
		c.killArg = arg
		c.killHas = true
		c.killDeliver = true
		mu.Unlock()

	case Idle:
		// Collect the wait chain below c before touching anything.
		chain := []*Context{c}
		for x := c.waiting; x != nil; x = x.waiting {
			chain = append(chain, x)
		}
		self := false
		for _, x := range chain {
			if x == Active() {
				self = true
			}
			x.setState(Dead)
			x.resumer = nil
			x.waiting = nil
		}
		mu.Unlock()

		// Unwind innermost first. Each idle member is blocked on its
		// child's out channel; a kill message wakes it without a
		// delivery. The innermost member is running (it is the caller,
		// or another goroutine that unwinds at its next scheduling
		// point).
		for i := len(chain) - 1; i >= 1; i-- {
			if chain[i].started {
				chain[i].out <- message{kill: true}
			}
		}
		// c's resumer receives the kill argument as if c had yielded it.
		c.out <- message{cell: arg, has: true}

		if self {
			panic(killPanic{})
		}
	}
}

// Destroy releases the context. After Destroy no operation is legal on
// it; a fresh NewContext is required.
func (c *Context) Destroy() {
	if c.pseudo {
		return
	}
	mu.Lock()
	if c.destroyed {
		mu.Unlock()
		return
	}
	c.destroyed = true
	parked := c.started && c.State() == Suspended
	c.setState(Dead)
	c.resumer = nil
	c.waiting = nil
	mu.Unlock()

	if parked {
		c.in <- message{kill: true}
	}
	debugf("context destroyed")
}

// Reset rebinds the context to a new entry point and returns it to the
// suspended state, reusing the existing stack reservation. Cheaper than
// Destroy plus NewContext for high-frequency short-lived coroutines.
func (c *Context) Reset(entry Entry) error {
	if c.pseudo {
		return errors.BadState("recycle", "pseudo-context", "coroutine")
	}
	if entry == nil {
		return errors.InvalidData(errors.PhaseRuntime, []string{"recycle"}, "nil entry point")
	}
	mu.Lock()
	if c.destroyed {
		mu.Unlock()
		return errors.NotInitialized("recycle")
	}
	parked := c.started && c.State() == Suspended
	c.entry = entry
	c.started = false
	c.resumer = nil
	c.waiting = nil
	c.setState(Dead) // transient; parked goroutine must not observe Suspended
	mu.Unlock()

	if parked {
		c.in <- message{kill: true}
	}
	c.setState(Suspended)
	debugf("context recycled")
	return nil
}

// run is a context goroutine's outermost frame. It owns registration in
// the active registry and absorbs kill unwinding.
func (c *Context) run() {
	id := goid.Get()
	registry.Store(id, c)
	defer registry.Delete(id)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(killPanic); ok {
				return
			}
			panic(r)
		}
	}()

	m := <-c.in
	if m.kill {
		return
	}
	out, has := c.entry(m.cell)
	c.finish(message{cell: out, has: has})
}

// finish marks the context dead and delivers the final cell to the
// resumer.
func (c *Context) finish(m message) {
	mu.Lock()
	if c.State() == Dead {
		// Killed while running; the recorded kill delivery wins.
		c.unwindLocked()
	}
	c.resumer = nil
	c.setState(Dead)
	mu.Unlock()

	c.out <- m
}

// unwindLocked finishes off a context that was killed while running:
// it performs the deferred die-equivalent delivery if one was recorded,
// then unwinds the goroutine. Called with mu held; does not return.
func (c *Context) unwindLocked() {
	deliver := c.killDeliver
	m := message{cell: c.killArg, has: c.killHas}
	c.killDeliver = false
	c.resumer = nil
	mu.Unlock()

	if deliver {
		c.out <- m
	}
	panic(killPanic{})
}
