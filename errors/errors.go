package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // image/document file access
	PhaseParse    Phase = "parse"    // image/document decoding
	PhaseResolve  Phase = "resolve"  // layout resolution
	PhaseDecode   Phase = "decode"   // typed memory reads
	PhaseChecksum Phase = "checksum" // CRC calculation
	PhaseRender   Phase = "render"   // report rendering
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindMalformed       Kind = "malformed"
	KindFieldMissing    Kind = "field_missing"
	KindInvalidValue    Kind = "invalid_value"
	KindInvalidOffset   Kind = "invalid_offset"
	KindUnresolvedType  Kind = "unresolved_type"
	KindCyclicStructure Kind = "cyclic_structure"
	KindOutOfRange      Kind = "out_of_range"
	KindInvalidParam    Kind = "invalid_param"
	KindInvalidUTF8     Kind = "invalid_utf8"
	KindTypeMismatch    Kind = "type_mismatch"
	KindUnsupported     Kind = "unsupported"
	KindRender          Kind = "render"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	DataType string
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

	if e.DataType != "" {
		b.WriteString(": type ")
		b.WriteString(e.DataType)
	}

	if e.Detail != "" {
		if e.DataType != "" {
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

// WithPath returns a copy of the error with prefix prepended to its path.
func (e *Error) WithPath(prefix ...string) *Error {
	cp := *e
	cp.Path = append(append([]string(nil), prefix...), e.Path...)
	return &cp
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

// Path sets the element path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// DataType sets the data type name
func (b *Builder) DataType(t string) *Builder {
	b.err.DataType = t
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

// OutOfRange creates an error for a read of an unpopulated image address
func OutOfRange(phase Phase, path []string, addr uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("address 0x%08X is not populated", addr),
		Value:  addr,
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

// InvalidValue creates an error for a field that is present but unusable
func InvalidValue(phase Phase, path []string, fieldName string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidValue,
		Path:   path,
		Detail: fmt.Sprintf("invalid %s %v", fieldName, value),
		Value:  value,
	}
}

// InvalidOffset creates an error for a structure offset that moves backwards
func InvalidOffset(phase Phase, path []string, offset, running uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidOffset,
		Path:   path,
		Detail: fmt.Sprintf("offset 0x%X lies before the next free offset 0x%X", offset, running),
		Value:  offset,
	}
}

// UnresolvedType creates an error for a type reference that is neither builtin nor declared
func UnresolvedType(phase Phase, path []string, typeName string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnresolvedType,
		Path:     path,
		DataType: typeName,
		Detail:   "neither a builtin type nor a declared structure",
	}
}

// CyclicStructure creates an error for a structure that references itself
func CyclicStructure(cycle []string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindCyclicStructure,
		Detail: strings.Join(cycle, " -> "),
		Value:  cycle,
	}
}

// InvalidParam creates a parameter error
func InvalidParam(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidParam,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// TypeMismatch creates a type mismatch error for a value accessor
func TypeMismatch(phase Phase, path []string, dataType, want string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		DataType: dataType,
		Detail:   "value is not " + want,
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

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Malformed creates a decoding error for an image or document
func Malformed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformed,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Render creates a report rendering error
func Render(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindRender,
		Detail: detail,
		Cause:  cause,
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
