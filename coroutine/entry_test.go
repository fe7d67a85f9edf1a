package coroutine

import (
	goerrors "errors"
	"testing"

	"github.com/FalsePattern/satori/cell"
	"github.com/FalsePattern/satori/errors"
)

func TestEntry0_IgnoresInput(t *testing.T) {
	co, err := New(0, Entry0(func() uint16 { return 7 }))
	if err != nil {
		t.Fatal(err)
	}
	defer co.Deinit()

	// The input cell is ignored regardless of what the resumer sends.
	if got := Resume[uint16](co, 0xFFFF); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestEntry1Void_AbsentResult(t *testing.T) {
	var received int
	co, err := New(0, Entry1Void(func(n int) {
		received = n
	}))
	if err != nil {
		t.Fatal(err)
	}
	defer co.Deinit()

	Resume[cell.Unit](co, 5)
	if received != 5 {
		t.Fatalf("entry received %d, want 5", received)
	}
	if co.State() != Dead {
		t.Fatalf("got %s", co.State())
	}
}

func TestEntry0Void(t *testing.T) {
	ran := false
	co, err := New(0, Entry0Void(func() { ran = true }))
	if err != nil {
		t.Fatal(err)
	}
	defer co.Deinit()

	Resume[cell.Unit](co, cell.Unit{})
	if !ran {
		t.Fatal("entry did not run")
	}
}

func TestEntry_NeverReturn(t *testing.T) {
	co, err := New(0, Entry1(func(n int) cell.Never {
		Die(n + 1)
		panic("unreachable")
	}))
	if err != nil {
		t.Fatal(err)
	}
	defer co.Deinit()

	if got := Resume[int](co, 9); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
	if co.State() != Dead {
		t.Fatalf("got %s", co.State())
	}
}

func TestEntry_RejectsUnrepresentableShapes(t *testing.T) {
	assertAdaptPanic := func(name string, fn func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("adapter construction must panic")
				}
				err, ok := r.(error)
				if !ok {
					t.Fatalf("panic value is not an error: %v", r)
				}
				if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseAdapt, Kind: errors.KindUnsupported}) {
					t.Fatalf("wrong error: %v", err)
				}
			}()
			fn()
		})
	}

	assertAdaptPanic("string parameter", func() {
		Entry1(func(string) int { return 0 })
	})
	assertAdaptPanic("slice return", func() {
		Entry0(func() []byte { return nil })
	})
	assertAdaptPanic("wide parameter", func() {
		Entry1Void(func([4]uint64) {})
	})
}
