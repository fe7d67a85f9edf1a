// Package engine implements the untyped stackful coroutine primitive.
//
// The engine speaks exactly one protocol: resume a context with one
// opaque cell and block until it yields, dies or is killed, receiving
// one cell back. It attaches no meaning to the cells it moves; the
// typed contract lives in the coroutine package.
//
// # Backend
//
// Contexts are backed by goroutines paired over unbuffered channels, so
// every resume/yield boundary is a synchronous, blocking handoff:
// exactly one side of a resumer/resumee pair executes at any instant.
// The backing goroutine is launched on first resume and unwound by a
// recovered panic when the context dies early, is killed, destroyed or
// recycled.
//
// Stack reservations are a sizing contract: PageSize and RealStackSize
// perform the documented page arithmetic and creation records the
// result, but Go relocates goroutine stacks at will, so Stack reports
// absent on this backend.
//
// # Active Contexts
//
// Active returns the context executing on the calling goroutine. A
// goroutine that is not a coroutine gets a lazily created
// pseudo-context: the engine's representation of the goroutine's
// original execution context. Pseudo-contexts are never suspended and
// must not yield or die.
//
// # Preconditions
//
// The engine does not defend its preconditions. Resuming a
// non-suspended context, yielding outside a coroutine's goroutine, or
// touching a destroyed context is undefined behavior; with SetDebug the
// engine traces such violations through its logger, and that is all it
// does about them.
package engine
