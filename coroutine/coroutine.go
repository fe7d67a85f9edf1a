package coroutine

import (
	satori "github.com/FalsePattern/satori"
	"github.com/FalsePattern/satori/cell"
	"github.com/FalsePattern/satori/engine"
	"github.com/FalsePattern/satori/errors"
)

// State re-exports the engine's four-state lifecycle.
type State = engine.State

const (
	Suspended = engine.Suspended
	Running   = engine.Running
	Dead      = engine.Dead
	Idle      = engine.Idle
)

// Coroutine owns exactly one engine context for its lifetime. It must
// not be copied by value while running or idle; the context identity
// matters for the engine's active-context bookkeeping.
type Coroutine struct {
	ctx *engine.Context
}

// New allocates a coroutine with at least minStack bytes of stack,
// rounded up per RealStackSize, bound to an adapted entry point. The
// coroutine starts suspended.
func New(minStack uintptr, entry engine.Entry) (*Coroutine, error) {
	ctx, err := engine.NewContext(minStack, entry)
	if err != nil {
		return nil, err
	}
	co := &Coroutine{ctx: ctx}
	defaultRegistry.add(ctx, co)
	return co, nil
}

// Recycle rebinds the coroutine to a new entry point, reusing the
// existing stack reservation, and returns it to the suspended state.
// Cheaper than Deinit plus New for high-frequency short-lived
// coroutines. Not legal after Deinit.
func (c *Coroutine) Recycle(entry engine.Entry) error {
	if c.ctx == nil {
		return errors.NotInitialized("recycle")
	}
	if err := c.ctx.Reset(entry); err != nil {
		return err
	}
	defaultRegistry.notify(Event{Type: EventRecycled, Coroutine: c})
	return nil
}

// Deinit releases the engine context. Afterwards no operation is legal
// on the handle except discarding it; a fresh New is required. Deinit
// of an already-deinitialized handle reports an error.
func (c *Coroutine) Deinit() error {
	if c.ctx == nil {
		return errors.NotInitialized("deinit")
	}
	defaultRegistry.remove(c.ctx, c)
	c.ctx.Destroy()
	c.ctx = nil
	return nil
}

// State reports the coroutine's lifecycle state. Pure query; a
// deinitialized handle reports dead.
func (c *Coroutine) State() State {
	if c.ctx == nil {
		return Dead
	}
	return c.ctx.State()
}

// Pseudo reports whether this handle stands in for a plain goroutine's
// original execution context. Pseudo handles are never suspended and
// must not be yielded from.
func (c *Coroutine) Pseudo() bool {
	return c.ctx != nil && c.ctx.Pseudo()
}

// Stack returns the stack's lower bound and size when the engine
// backend supports introspection, absent otherwise. The region near the
// top of the stack is engine-reserved and must not be written.
func (c *Coroutine) Stack() (uintptr, uintptr, bool) {
	if c.ctx == nil {
		return 0, 0, false
	}
	return c.ctx.Stack()
}

// StackSize returns the stack reservation recorded at creation.
func (c *Coroutine) StackSize() uintptr {
	if c.ctx == nil {
		return 0
	}
	return c.ctx.StackSize()
}

// Active returns the handle for whichever coroutine is executing on the
// calling goroutine, wrapping the engine's pseudo-context in a pseudo
// handle when the goroutine is not a coroutine.
func Active() *Coroutine {
	ctx := engine.Active()
	if co, ok := defaultRegistry.lookup(ctx); ok {
		return co
	}
	return defaultRegistry.adopt(ctx, &Coroutine{ctx: ctx})
}

// Resume transfers control into c with one typed value and blocks until
// c yields, dies or is killed, decoding the value handed back as Out.
// An absent result (a void entry) decodes as the zero Out; resume with
// Out = cell.Unit when the result does not matter.
//
// Precondition: c is suspended. The engine does not check this;
// violating it is undefined behavior.
func Resume[Out, In any](c *Coroutine, arg In) Out {
	out, has := c.ctx.Resume(cell.Encode(arg))
	if !has {
		out = satori.NullCell
	}
	return cell.Decode[Out](out)
}

// Yield transfers control back to whoever last resumed this coroutine,
// handing it one typed value, and blocks until the next resume, whose
// argument is decoded as Out. Callable only from inside a running
// coroutine.
func Yield[Out, In any](arg In) Out {
	return cell.Decode[Out](engine.Yield(cell.Encode(arg)))
}

// Die transfers control back like Yield but terminally: the coroutine
// becomes dead and Die never returns. Equivalent to the entry function
// returning arg.
func Die[In any](arg In) {
	engine.Die(cell.Encode(arg))
}

// Kill forces c dead. Killing the currently running coroutine behaves
// exactly like Die(arg) called from within it. Killing an idle
// coroutine propagates through its resume chain: c's resumer receives
// arg as if c had yielded it, and everything below c unwinds, innermost
// first.
func Kill[In any](c *Coroutine, arg In) {
	c.ctx.Kill(cell.Encode(arg))
}

// PageSize returns the system page size, computed once and cached
// process-wide.
func PageSize() uintptr {
	return engine.PageSize()
}

// RealStackSize returns the stack size a given minimum request actually
// reserves.
func RealStackSize(min uintptr) uintptr {
	return engine.RealStackSize(min)
}
