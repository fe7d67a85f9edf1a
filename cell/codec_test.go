package cell

import (
	goerrors "errors"
	"math"
	"testing"
	"unsafe"

	satori "github.com/FalsePattern/satori"
	"github.com/FalsePattern/satori/errors"
)

func roundTrip[T comparable](t *testing.T, v T) {
	t.Helper()
	got := Decode[T](Encode(v))
	if got != v {
		t.Errorf("round trip of %T: got %v, want %v", v, got, v)
	}
}

type color uint8

const (
	red color = iota
	green
	blue
)

type pair struct {
	X uint16
	Y int8
}

func TestRoundTrip_Booleans(t *testing.T) {
	roundTrip(t, true)
	roundTrip(t, false)

	if Encode(true) != 1 {
		t.Error("true must encode to 1")
	}
	if Encode(false) != satori.NullCell {
		t.Error("false must encode to the null cell")
	}
	// Only the low bit participates.
	if Decode[bool](satori.Cell(2)) {
		t.Error("cell 2 has a clear low bit and must decode to false")
	}
	if !Decode[bool](satori.Cell(3)) {
		t.Error("cell 3 has a set low bit and must decode to true")
	}
}

func TestRoundTrip_Integers(t *testing.T) {
	roundTrip[int8](t, -128)
	roundTrip[int8](t, 127)
	roundTrip[int16](t, -1)
	roundTrip[int32](t, math.MinInt32)
	roundTrip[int64](t, math.MaxInt64)
	roundTrip[int64](t, -1)
	roundTrip[uint8](t, 255)
	roundTrip[uint16](t, 0xBEEF)
	roundTrip[uint32](t, 0xDEADBEEF)
	roundTrip[uint64](t, math.MaxUint64)
	roundTrip[int](t, -42)
	roundTrip[uint](t, 42)
	roundTrip[uintptr](t, 0xCAFE)
}

func TestRoundTrip_Floats(t *testing.T) {
	roundTrip[float32](t, 0)
	roundTrip[float32](t, -3.5)
	roundTrip[float64](t, 0)
	roundTrip[float64](t, 2.718281828459045)
	roundTrip[float64](t, math.Inf(-1))

	// Negative zero and NaN must survive bit-for-bit; == cannot see
	// either, so compare bit patterns.
	negZero := math.Copysign(0, -1)
	if got := Decode[float64](Encode(negZero)); math.Float64bits(got) != math.Float64bits(negZero) {
		t.Errorf("negative zero bits changed: %x", math.Float64bits(got))
	}
	nan := math.Float64frombits(0x7FF8000000000001)
	if got := Decode[float64](Encode(nan)); math.Float64bits(got) != 0x7FF8000000000001 {
		t.Errorf("NaN payload bits changed: %x", math.Float64bits(got))
	}
}

func TestRoundTrip_RecordsAndEnums(t *testing.T) {
	roundTrip(t, pair{X: 0xBEEF, Y: -5})
	roundTrip(t, pair{})
	roundTrip(t, [3]byte{1, 2, 3})
	roundTrip(t, green)
	roundTrip(t, blue)

	// An enum encodes as its underlying discriminant.
	if Encode(blue) != satori.Cell(uint8(blue)) {
		t.Error("enum must encode its discriminant")
	}
}

func TestRoundTrip_Pointers(t *testing.T) {
	n := 7
	roundTrip(t, &n)
	roundTrip(t, (*int)(nil))
	roundTrip(t, unsafe.Pointer(&n))

	// A pointer is stored without reinterpretation: decoding is not a
	// dereference and the pointee is untouched.
	p := Decode[*int](Encode(&n))
	if p != &n || *p != 7 {
		t.Error("decoded pointer must alias the original")
	}
}

func TestRoundTrip_Unit(t *testing.T) {
	roundTrip(t, Unit{})

	if Encode(Unit{}) != satori.NullCell {
		t.Error("unit must encode to the null cell")
	}
	// Decoding any cell to unit discards its bits.
	_ = Decode[Unit](satori.Cell(0xFFFF))

	type empty struct{}
	roundTrip(t, empty{})
	if Encode(empty{}) != satori.NullCell {
		t.Error("any zero-size type must encode to the null cell")
	}
}

func TestRoundTrip_Option(t *testing.T) {
	roundTrip(t, Some(42))
	roundTrip(t, None[int]())
	roundTrip(t, Some(color(2)))
	roundTrip(t, None[*int]())

	n := 9
	got := Decode[Option[*int]](Encode(Some(&n)))
	if p, ok := got.Get(); !ok || p != &n {
		t.Error("present pointer option must round trip")
	}

	if Encode(None[uint32]()) != satori.NullCell {
		t.Error("absent option must encode to the null cell")
	}
	if Encode(Some[uint32](7)) != satori.Cell(7) {
		t.Error("present option must encode its payload")
	}
}

// The scheme conflates an absent option with a present all-zero payload:
// the null cell means absent, unconditionally. This pins that behavior.
func TestOption_NullConflation(t *testing.T) {
	got := Decode[Option[int]](Encode(Some(0)))
	if got.Present() {
		t.Error("Some(0) encodes to the null cell and must decode as None")
	}

	// A nil pointer payload conflates the same way.
	got2 := Decode[Option[*int]](Encode(Some[*int](nil)))
	if got2.Present() {
		t.Error("Some(nil) must decode as None")
	}

	// Nested: a present None collapses to None.
	got3 := Decode[Option[Option[int]]](Encode(Some(None[int]())))
	if got3.Present() {
		t.Error("Some(None) must decode as None")
	}
	got4 := Decode[Option[Option[int]]](Encode(Some(Some(5))))
	inner, ok := got4.Get()
	if !ok {
		t.Fatal("Some(Some(5)) must stay present")
	}
	if v, ok := inner.Get(); !ok || v != 5 {
		t.Errorf("inner payload lost: %v %v", v, ok)
	}
}

func mustPanicWith(t *testing.T, phase errors.Phase, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value is not an error: %v", r)
		}
		if !goerrors.Is(err, &errors.Error{Phase: phase, Kind: kind}) {
			t.Fatalf("wrong error: %v", err)
		}
	}()
	fn()
}

func TestReject_Unsupported(t *testing.T) {
	mustPanicWith(t, errors.PhaseCompile, errors.KindUnsupported, func() {
		Encode("not representable")
	})
	mustPanicWith(t, errors.PhaseCompile, errors.KindUnsupported, func() {
		Encode([]int{1})
	})
	mustPanicWith(t, errors.PhaseCompile, errors.KindUnsupported, func() {
		Decode[map[string]int](satori.NullCell)
	})
	mustPanicWith(t, errors.PhaseCompile, errors.KindUnsupported, func() {
		Encode(make(chan int))
	})
}

func TestReject_TooWide(t *testing.T) {
	mustPanicWith(t, errors.PhaseCompile, errors.KindTooWide, func() {
		Encode([4]uint64{})
	})
	type wide struct {
		A, B uint64
		C    uint32
	}
	mustPanicWith(t, errors.PhaseCompile, errors.KindTooWide, func() {
		Encode(wide{})
	})
}

func TestReject_Never(t *testing.T) {
	mustPanicWith(t, errors.PhaseCompile, errors.KindNotEncodable, func() {
		Encode(Never{})
	})
	mustPanicWith(t, errors.PhaseCompile, errors.KindNotEncodable, func() {
		Decode[Never](satori.NullCell)
	})
}

func TestReject_OptionOfUnrepresentable(t *testing.T) {
	mustPanicWith(t, errors.PhaseCompile, errors.KindUnsupported, func() {
		Encode(Some("payload"))
	})
}

func TestCheck(t *testing.T) {
	if err := Check[int](); err != nil {
		t.Errorf("int must be representable: %v", err)
	}
	if err := Check[Option[pair]](); err != nil {
		t.Errorf("Option[pair] must be representable: %v", err)
	}
	if err := Check[string](); err == nil {
		t.Error("string must be rejected")
	}

	// Rejections are cached and repeatable.
	first := Check[[4]uint64]()
	second := Check[[4]uint64]()
	if first == nil || second == nil {
		t.Fatal("too-wide array must be rejected every time")
	}
	if !goerrors.Is(second, &errors.Error{Phase: errors.PhaseCompile, Kind: errors.KindTooWide}) {
		t.Errorf("wrong cached error: %v", second)
	}
}

func BenchmarkEncodeInt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Encode(i)
	}
}

func BenchmarkDecodeInt(b *testing.B) {
	c := Encode(12345)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Decode[int](c)
	}
}

func BenchmarkRoundTripRecord(b *testing.B) {
	v := pair{X: 1, Y: 2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Decode[pair](Encode(v))
	}
}
