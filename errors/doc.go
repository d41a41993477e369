// Package errors provides structured error types for the hexlayout library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: element path, data type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindInvalidValue).
//		Path("header", "count").
//		DataType("uint16le").
//		Detail("count must be at least 1").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.PhaseDecode, path, 0x8000)
//	err := errors.UnresolvedType(errors.PhaseResolve, path, "entry_t")
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind only, so a bare &Error{Phase: ..., Kind: ...}
// works as a sentinel.
package errors
