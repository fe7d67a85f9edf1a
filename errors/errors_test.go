package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseCompile,
				Kind:     KindTooWide,
				Path:     []string{"point", "tag"},
				GoType:   "[4]uint64",
				Category: "record",
				Detail:   "cannot pack",
			},
			contains: []string{"[compile]", "too_wide", "point.tag", "[4]uint64", "record", "cannot pack"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindUnsupported,
			},
			contains: []string{"[decode]", "unsupported"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindBadState,
				Detail: "handle is dead",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "bad_state", "handle is dead", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := TooWide(PhaseCompile, "[4]uint64", 32, 8)

	if !errors.Is(err, &Error{Phase: PhaseCompile, Kind: KindTooWide}) {
		t.Error("Is should match on Phase+Kind")
	}
	if errors.Is(err, &Error{Phase: PhaseEncode, Kind: KindTooWide}) {
		t.Error("Is should not match a different Phase")
	}
	if errors.Is(err, &Error{Phase: PhaseCompile, Kind: KindUnsupported}) {
		t.Error("Is should not match a different Kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseAdapt, KindInvalidArity).
		Path("entry").
		GoType("func(int, int) int").
		Category("entry").
		Value(2).
		Cause(cause).
		Detail("arity %d not in {0, 1}", 2).
		Build()

	if err.Phase != PhaseAdapt || err.Kind != KindInvalidArity {
		t.Fatalf("unexpected phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if err.Value != 2 {
		t.Errorf("unexpected value: %v", err.Value)
	}
	if err.Cause != cause {
		t.Error("cause not set")
	}
	if err.Detail != "arity 2 not in {0, 1}" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if err := Unsupported(PhaseCompile, "slices"); err.Kind != KindUnsupported {
		t.Error("Unsupported kind mismatch")
	}
	if err := NotEncodable(PhaseCompile, "cell.Never"); err.Kind != KindNotEncodable {
		t.Error("NotEncodable kind mismatch")
	}
	if err := BadState("resume", "dead", "suspended"); err.Kind != KindBadState {
		t.Error("BadState kind mismatch")
	}
	if err := NotInitialized("recycle"); err.Kind != KindNotInitialized {
		t.Error("NotInitialized kind mismatch")
	}

	err := TooWide(PhaseEncode, "big", 16, 8)
	if !strings.Contains(err.Error(), "16 bytes exceed the 8-byte cell") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
