// Package errors provides structured error types for the satori library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, Go type name,
// codec category and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindTooWide).
//		GoType("[4]uint64").
//		Detail("32 bytes exceed the 8-byte cell").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TooWide(errors.PhaseCompile, "[4]uint64", 32, 8)
//	err := errors.Unsupported(errors.PhaseCompile, "slices are not representable")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
