// Package errors provides the coded error taxonomy shared across the
// generator: initialization errors (document loading), schema errors
// (structural gate violations), generation errors (emitter failures), and
// file-write errors. Every error carries a stable machine-readable code, a
// human message, and preserves its originating cause for errors.Is/As chains.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Code identifies an error class in a machine-readable, stable way.
type Code string

const (
	CodeDocumentNotFound    Code = "INIT_DOCUMENT_NOT_FOUND"
	CodeDocumentUnparseable Code = "INIT_DOCUMENT_UNPARSEABLE"

	CodeMissingComponents Code = "SCHEMA_MISSING_COMPONENTS"
	CodeMissingType       Code = "SCHEMA_MISSING_TYPE"
	CodeArrayWithoutItems Code = "SCHEMA_ARRAY_WITHOUT_ITEMS"
	CodeUnresolvedRef     Code = "SCHEMA_UNRESOLVED_REF"
	CodeDependencyCycle   Code = "SCHEMA_DEPENDENCY_CYCLE"

	CodeGenerationFailed Code = "GENERATION_FAILED"
	CodeFileWriteFailed  Code = "FILE_WRITE_FAILED"
)

// Error is the concrete error type produced throughout the pipeline.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New constructs an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a coded error. A nil cause behaves like New.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/As traversal.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// CodeOf walks the error chain and returns the first coded error's Code, or
// the empty string when no coded error is present.
func CodeOf(err error) Code {
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// IsInitialization reports whether the error chain carries an INIT_ code.
func IsInitialization(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "INIT_")
}

// IsSchema reports whether the error chain carries a SCHEMA_ code. Schema
// errors abort generation before any artifact is written.
func IsSchema(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "SCHEMA_")
}

// IsWrite reports whether the error chain carries a file-write code.
func IsWrite(err error) bool {
	return CodeOf(err) == CodeFileWriteFailed
}
