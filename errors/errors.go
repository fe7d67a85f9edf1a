package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // codec compilation / type registration
	PhaseEncode  Phase = "encode"  // typed value to cell
	PhaseDecode  Phase = "decode"  // cell to typed value
	PhaseAdapt   Phase = "adapt"   // entry-point adaptation
	PhaseRuntime Phase = "runtime" // handle lifecycle operations
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupported    Kind = "unsupported"
	KindTooWide        Kind = "too_wide"
	KindNotEncodable   Kind = "not_encodable"
	KindInvalidArity   Kind = "invalid_arity"
	KindBadState       Kind = "bad_state"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidData    Kind = "invalid_data"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	Category string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Category != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Category != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", category ")
			b.WriteString(e.Category)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("category ")
			b.WriteString(e.Category)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Category != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Category sets the codec category name
func (b *Builder) Category(c string) *Builder {
	b.err.Category = c
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Unsupported creates an unsupported type/operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// TooWide creates an error for a type wider than one cell
func TooWide(phase Phase, goType string, size, cellSize uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTooWide,
		GoType: goType,
		Detail: fmt.Sprintf("%d bytes exceed the %d-byte cell", size, cellSize),
	}
}

// NotEncodable creates an error for a type valid only as a return type
func NotEncodable(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotEncodable,
		GoType: goType,
		Detail: "type carries no value and cannot cross the transfer boundary",
	}
}

// BadState creates a lifecycle precondition error
func BadState(op, got, want string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindBadState,
		Detail: fmt.Sprintf("%s requires state %s, handle is %s", op, want, got),
	}
}

// NotInitialized creates an error for an operation on an uninitialized handle
func NotInitialized(op string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s on a handle with no live engine context", op),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
