// Package satori provides typed stackful coroutines for Go.
//
// The underlying coroutine engine speaks an "opaque pointer in, opaque
// pointer out" transfer protocol: resuming a coroutine hands it one
// pointer-width word, and yielding hands one word back. The engine knows
// nothing about the logical types of the data being exchanged. This
// library is the layer that makes that protocol type-safe and generic.
//
// # Architecture Overview
//
// The library is organized into a small set of packages, leaf-first:
//
//	satori/          Root package with the shared Cell wire type
//	├── cell/        Value codec between typed values and Cells
//	├── engine/      Engine contract and goroutine-backed reference backend
//	├── coroutine/   Typed handle layer, entry adapters, active registry
//	├── errors/      Structured error types for static rejections
//	└── cmd/satori/  Interactive coroutine stepper
//
// # Quick Start
//
// Create a coroutine from a typed entry function and drive it:
//
//	co, err := coroutine.New(0, coroutine.Entry1(func(n int) int {
//	    for i := 0; i < n; i++ {
//	        coroutine.Yield[cell.Unit](i)
//	    }
//	    return -1
//	}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer co.Deinit()
//
//	first := coroutine.Resume[int](co, 3) // 0
//
// # Typed Transfer
//
// Every resume/yield boundary moves exactly one value, boxed into a
// pointer-width Cell by the cell package. A type is representable when
// its bit-size does not exceed the pointer width: booleans, integers,
// floats, enumerations, small records, pointers, Option values and Unit
// all qualify. Unsupported shapes are rejected the first time they are
// used, before any coroutine runs.
//
// # Lifecycle
//
// A handle moves through exactly four states: Suspended, Running, Idle
// and Dead. Resume and Yield are synchronous, blocking handoffs; exactly
// one side of a resumer/resumee pair executes at any instant. Kill
// forces a handle Dead, unwinding nested idle waiters innermost-first.
//
// # Thread Safety
//
// Independent coroutine chains may run on separate goroutines, but a
// single Coroutine must never be resumed concurrently from two
// goroutines. The engine's precondition checks are advisory only;
// violating them is undefined behavior, matching the engine's contract.
package satori
