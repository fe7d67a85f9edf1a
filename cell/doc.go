// Package cell provides the value codec between typed Go values and the
// pointer-width cells the coroutine engine transfers.
//
// # Representable Types
//
// A type is representable when its byte size does not exceed CellSize.
// The category set is closed:
//
//	Category     Encoding
//	─────────────────────────────────────────────────────────
//	unit         null cell; decoding discards the cell's bits
//	bool         0 or 1 in the low bit
//	integer      reinterpreted, widened into the cell
//	float        bit pattern, widened into the cell
//	record       raw bytes, widened into the cell
//	enum         its underlying integer
//	pointer      the pointer value itself
//	Option[T]    null cell when absent, else the encoded payload
//	Never        not encodable; return-position only
//
// Go has no native tagged union; a record whose size fits the cell covers
// that row with the same reinterpret rule. Slices, strings, maps, channels,
// funcs and interfaces are not representable and are rejected.
//
// # Round-Trip Law
//
// For every representable type T and value v:
//
//	Decode[T](Encode[T](v)) == v
//
// bit for bit. This is the central correctness property of the library;
// the only documented exception is the Option null conflation described
// on the Option type.
//
// # Rejection
//
// Go cannot reject an oversized type at compile time, so the codec
// compiler rejects it on first use with a panic carrying a structured
// *errors.Error, before any bits are truncated. The rejection is cached
// per type. Call Check[T]() to surface the error as a value instead.
//
// # Purity
//
// Encode and Decode are pure data transformations: no side effects, no
// heap allocation on the hot path, no validity checking of pointer
// payloads. A decoded pointer is a reinterpretation, not a dereference;
// its validity remains the caller's responsibility, matching the
// engine's own unsafety contract.
package cell
