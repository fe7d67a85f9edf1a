package cell

// Unit is the zero-size value exchanged when a transfer carries no data.
// It encodes to the null cell; decoding any cell into a Unit discards the
// cell's bits. Any other zero-size type encodes the same way.
type Unit struct{}

// Never marks an entry function that does not return. It is valid only as
// a return type: the adapter synthesizes no return path for it, and a
// value of this type can never legally cross the transfer boundary.
type Never struct{}

// Option is a value that may be absent. Absence encodes to the null cell;
// presence encodes the payload recursively.
//
// The scheme does not separately tag "present with all-zero payload" from
// "absent": Some of a zero-valued non-pointer payload encodes to the null
// cell and decodes as None. Callers that need to distinguish the two
// should shift the payload domain or use a pointer payload.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the payload and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether the payload is present.
func (o Option[T]) Present() bool {
	return o.present
}

// option marks Option for the codec compiler. The method is unexported,
// so only this package's Option satisfies the marker interface.
func (Option[T]) option() {}

type optionMarker interface{ option() }
