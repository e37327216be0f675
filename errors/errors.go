package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // ABI document decoding
	PhaseConvert  Phase = "convert"  // type tree conversion
	PhaseGenerate Phase = "generate" // entry processing and assembly
	PhaseLoad     Phase = "load"     // input loading (files, wasm sections, WIT)
	PhaseVerify   Phase = "verify"   // syntax verification of emitted code
	PhaseServe    Phase = "serve"    // explorer server
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindFieldMissing   Kind = "field_missing"
	KindUnknownType    Kind = "unknown_type"
	KindArity          Kind = "arity"
	KindDepthExceeded  Kind = "depth_exceeded"
	KindNotFound       Kind = "not_found"
	KindSyntax         Kind = "syntax"
	KindNotInitialized Kind = "not_initialized"
)

// Error is the structured error type used for hard failures and for
// generation diagnostics alike.
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Entry   string
	AbiType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Entry != "" {
		b.WriteString(" in ")
		b.WriteString(e.Entry)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.AbiType != "" {
		b.WriteString(": ABI type ")
		b.WriteString(e.AbiType)
	}

	if e.Detail != "" {
		if e.AbiType != "" {
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

// Entry sets the ABI entry name
func (b *Builder) Entry(name string) *Builder {
	b.err.Entry = name
	return b
}

// Path sets the position inside the entry
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// AbiType sets the offending ABI type name
func (b *Builder) AbiType(t string) *Builder {
	b.err.AbiType = t
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

// InvalidInput creates an error for a document whose shape cannot be used at all
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
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

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// UnknownType creates an error for a type the converter has no rendering for
func UnknownType(phase Phase, path []string, abiType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnknownType,
		Path:    path,
		AbiType: abiType,
		Detail:  "rendered as unknown",
	}
}

// Arity creates an error for a generic container with the wrong argument count
func Arity(phase Phase, path []string, abiType string, got, want int) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindArity,
		Path:    path,
		AbiType: abiType,
		Detail:  fmt.Sprintf("expected %d type arguments, got %d", want, got),
		Value:   got,
	}
}

// DepthExceeded creates an error for a type tree nested beyond the limit
func DepthExceeded(phase Phase, path []string, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("type nesting exceeds %d levels", limit),
		Value:  limit,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: what,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Syntax creates a syntax error at a line and column of generated output
func Syntax(line, col int, detail string) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindSyntax,
		Path:   []string{fmt.Sprintf("%d:%d", line, col)},
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

// WithEntry returns a copy of e attributed to the named ABI entry
func (e *Error) WithEntry(name string) *Error {
	c := *e
	c.Entry = name
	return &c
}
