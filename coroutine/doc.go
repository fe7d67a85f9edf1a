// Package coroutine presents the typed contract over the untyped
// coroutine engine.
//
// # Handles
//
// A Coroutine owns one engine context for its lifetime. New allocates
// the context suspended, Recycle rebinds it to a fresh entry point
// without a new stack reservation, and Deinit releases it; after Deinit
// nothing but a fresh New is legal.
//
// # Typed Transfer
//
// Go methods cannot take type parameters, so the transfer operations
// are package-level generics:
//
//	n := coroutine.Resume[int](co, true)       // send bool, expect int
//	b := coroutine.Yield[byte](someEnum)       // yield enum, expect byte
//	coroutine.Die(-1)                          // terminal yield
//	coroutine.Kill(co, 0)                      // forced death
//
// Every boundary moves exactly one value through the cell codec; both
// sides must agree on the types or the bits will be reinterpreted,
// exactly as the engine's contract promises nothing else.
//
// # Entry Adaptation
//
// Entry functions take zero or one parameter of a representable type
// and return any representable type, cell.Never included. The Entry0,
// Entry1, Entry0Void and Entry1Void constructors adapt them onto the
// native signature; shape errors surface when the adapter is built,
// before any coroutine exists.
//
// # Active Lookup
//
// Active resolves the handle executing on the calling goroutine through
// an explicit registry keyed by engine context identity. A plain
// goroutine gets a pseudo handle: never suspended, not yieldable.
// Lifecycle observers can Subscribe to creation, recycle and deinit
// events on the registry.
//
// # Pools
//
// Pool parks dead handles and revives them with Recycle, for workloads
// that burn through short-lived coroutines.
package coroutine
