package coroutine

import (
	"reflect"

	satori "github.com/FalsePattern/satori"
	"github.com/FalsePattern/satori/cell"
	"github.com/FalsePattern/satori/engine"
	"github.com/FalsePattern/satori/errors"
)

// The entry adapters wrap a statically-typed entry function into the
// engine's fixed native signature. Four constructors cover the legal
// shapes: zero or one parameter, value-returning or void. Higher
// arities do not construct; that rejection is Go's type system doing
// the work at compile time.
//
// Type shapes are validated when the adapter is built, so an entry with
// an unrepresentable parameter or return type fails before any
// coroutine is ever created.

var neverType = reflect.TypeFor[cell.Never]()

// Entry1 adapts a one-parameter entry function. The native wrapper
// decodes the first resume's argument as P, calls f, and encodes f's
// return value for delivery to the final resumer.
//
// With R = cell.Never the adapter synthesizes no return path: f must
// terminate its coroutine through Die or Kill, and reaching the point
// where f returns is a fatal bug.
func Entry1[P, R any](f func(P) R) engine.Entry {
	mustRepresent[P]("parameter")
	if reflect.TypeFor[R]() == neverType {
		return func(in satori.Cell) (satori.Cell, bool) {
			f(cell.Decode[P](in))
			panic(errors.New(errors.PhaseAdapt, errors.KindInvalidData).
				Category("never").
				Detail("never-returning entry function returned").
				Build())
		}
	}
	mustRepresent[R]("return")
	return func(in satori.Cell) (satori.Cell, bool) {
		return cell.Encode(f(cell.Decode[P](in))), true
	}
}

// Entry0 adapts a zero-parameter entry function. The native wrapper
// ignores the first resume's argument cell.
func Entry0[R any](f func() R) engine.Entry {
	if reflect.TypeFor[R]() == neverType {
		return func(satori.Cell) (satori.Cell, bool) {
			f()
			panic(errors.New(errors.PhaseAdapt, errors.KindInvalidData).
				Category("never").
				Detail("never-returning entry function returned").
				Build())
		}
	}
	mustRepresent[R]("return")
	return func(satori.Cell) (satori.Cell, bool) {
		return cell.Encode(f()), true
	}
}

// Entry1Void adapts a one-parameter entry function that returns the
// unit value; the native wrapper produces the absent result.
func Entry1Void[P any](f func(P)) engine.Entry {
	mustRepresent[P]("parameter")
	return func(in satori.Cell) (satori.Cell, bool) {
		f(cell.Decode[P](in))
		return satori.NullCell, false
	}
}

// Entry0Void adapts a zero-parameter entry function that returns the
// unit value.
func Entry0Void(f func()) engine.Entry {
	return func(satori.Cell) (satori.Cell, bool) {
		f()
		return satori.NullCell, false
	}
}

func mustRepresent[T any](position string) {
	if err := cell.Check[T](); err != nil {
		panic(errors.Wrap(errors.PhaseAdapt, errors.KindUnsupported, err,
			"entry "+position+" type is not representable"))
	}
}
