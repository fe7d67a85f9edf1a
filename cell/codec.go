package cell

import (
	"reflect"
	"sync"
	"unsafe"

	satori "github.com/FalsePattern/satori"
	"github.com/FalsePattern/satori/errors"
)

// CellSize is the byte width of one cell, and therefore the upper bound
// on the size of any representable type.
const CellSize = unsafe.Sizeof(uintptr(0))

type kind uint8

const (
	kindUnit kind = iota
	kindBool
	kindInt
	kindFloat
	kindRecord
	kindPointer
	kindOption
)

var kindNames = [...]string{
	kindUnit:    "unit",
	kindBool:    "bool",
	kindInt:     "integer",
	kindFloat:   "float",
	kindRecord:  "record",
	kindPointer: "pointer",
	kindOption:  "option",
}

func (k kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// codec is the compiled encode/decode plan for one Go type. Compilation
// happens once per type; the hot path is raw loads and stores against the
// value's bytes.
type codec struct {
	goType     reflect.Type
	payload    *codec
	size       uintptr
	presentOff uintptr
	kind       kind
}

// cache maps reflect.Type to either *codec or *errors.Error. Rejections
// are cached too, so a type fails the same way on every use.
var cache sync.Map

var (
	neverType  = reflect.TypeFor[Never]()
	optionType = reflect.TypeFor[optionMarker]()
)

// Encode packs v into one cell. The type's codec is compiled on first
// use; an unrepresentable type panics with a *errors.Error then and on
// every subsequent use, before any value is truncated.
func Encode[T any](v T) satori.Cell {
	return codecFor(reflect.TypeFor[T]()).encode(unsafe.Pointer(&v))
}

// Decode unpacks one cell into a value of type T. It is the exact
// inverse of Encode for every representable type.
func Decode[T any](c satori.Cell) T {
	var out T
	codecFor(reflect.TypeFor[T]()).decode(c, unsafe.Pointer(&out))
	return out
}

// Check compiles the codec for T and reports whether T is representable.
// Adapters call this before any coroutine is created, so that shape
// errors surface at configuration time rather than mid-transfer.
func Check[T any]() error {
	_, err := lookup(reflect.TypeFor[T]())
	return err
}

func codecFor(t reflect.Type) *codec {
	c, err := lookup(t)
	if err != nil {
		panic(err)
	}
	return c
}

func lookup(t reflect.Type) (*codec, *errors.Error) {
	if v, ok := cache.Load(t); ok {
		return unpackEntry(v)
	}

	c, err := compile(t)
	if err != nil {
		v, _ := cache.LoadOrStore(t, err)
		return unpackEntry(v)
	}
	v, _ := cache.LoadOrStore(t, c)
	return unpackEntry(v)
}

func unpackEntry(v any) (*codec, *errors.Error) {
	if err, ok := v.(*errors.Error); ok {
		return nil, err
	}
	return v.(*codec), nil
}

func compile(t reflect.Type) (*codec, *errors.Error) {
	if t == neverType {
		return nil, errors.NotEncodable(errors.PhaseCompile, t.String())
	}
	if t.Implements(optionType) {
		return compileOption(t)
	}
	if t.Size() == 0 {
		return &codec{kind: kindUnit, goType: t}, nil
	}

	var k kind
	switch t.Kind() {
	case reflect.Bool:
		k = kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr:
		// Enumerations are named integer types and take the same path.
		k = kindInt
	case reflect.Float32, reflect.Float64:
		k = kindFloat
	case reflect.Struct, reflect.Array:
		k = kindRecord
	case reflect.Pointer, reflect.UnsafePointer:
		k = kindPointer
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			GoType(t.String()).
			Detail("%s is outside the representable categories", t.Kind()).
			Build()
	}

	// The width limit applies only to types inside the representable
	// categories; a string is unsupported, not too wide.
	if t.Size() > CellSize {
		return nil, errors.TooWide(errors.PhaseCompile, t.String(), t.Size(), CellSize)
	}
	return &codec{kind: k, size: t.Size(), goType: t}, nil
}

func compileOption(t reflect.Type) (*codec, *errors.Error) {
	// The marker interface guarantees the Option layout: payload at
	// offset 0, presence flag after it.
	payload, err := compile(t.Field(0).Type)
	if err != nil {
		wrapped := *err
		wrapped.Path = append([]string{"option"}, err.Path...)
		return nil, &wrapped
	}
	return &codec{
		kind:       kindOption,
		size:       t.Size(),
		goType:     t,
		payload:    payload,
		presentOff: t.Field(1).Offset,
	}, nil
}

func (c *codec) encode(p unsafe.Pointer) satori.Cell {
	switch c.kind {
	case kindUnit:
		return satori.NullCell
	case kindBool:
		if *(*bool)(p) {
			return 1
		}
		return satori.NullCell
	case kindPointer:
		return satori.Cell(*(*uintptr)(p))
	case kindOption:
		if !*(*bool)(unsafe.Add(p, c.presentOff)) {
			return satori.NullCell
		}
		return c.payload.encode(p)
	default:
		// Integers, floats and records reinterpret as an unsigned
		// integer of the same width, widened into the cell.
		return rawLoad(p, c.size)
	}
}

func (c *codec) decode(v satori.Cell, out unsafe.Pointer) {
	switch c.kind {
	case kindUnit:
		// Discard the cell's bits.
	case kindBool:
		*(*bool)(out) = v&1 != 0
	case kindPointer:
		*(*uintptr)(out) = uintptr(v)
	case kindOption:
		if v == satori.NullCell {
			*(*bool)(unsafe.Add(out, c.presentOff)) = false
			return
		}
		c.payload.decode(v, out)
		*(*bool)(unsafe.Add(out, c.presentOff)) = true
	default:
		rawStore(out, v, c.size)
	}
}

func rawLoad(p unsafe.Pointer, size uintptr) satori.Cell {
	switch size {
	case 1:
		return satori.Cell(*(*uint8)(p))
	case 2:
		return satori.Cell(*(*uint16)(p))
	case 4:
		return satori.Cell(*(*uint32)(p))
	case 8:
		return satori.Cell(*(*uint64)(p))
	default:
		// Odd-sized records: copy the value's bytes into the low end
		// of a zeroed cell.
		var c uintptr
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&c)), size), unsafe.Slice((*byte)(p), size))
		return satori.Cell(c)
	}
}

func rawStore(out unsafe.Pointer, v satori.Cell, size uintptr) {
	switch size {
	case 1:
		*(*uint8)(out) = uint8(v)
	case 2:
		*(*uint16)(out) = uint16(v)
	case 4:
		*(*uint32)(out) = uint32(v)
	case 8:
		*(*uint64)(out) = uint64(v)
	default:
		c := uintptr(v)
		copy(unsafe.Slice((*byte)(out), size), unsafe.Slice((*byte)(unsafe.Pointer(&c)), size))
	}
}
