// Package errors defines the Go-facade error types returned by the
// resolver's synchronous entry points: channel constructors, functional
// options, and the sysconfig/serverscsv parsers.
//
// These are distinct from the numeric ARES_* error codes in internal/cares,
// which is how failures cross the C ABI boundary.
package errors

import (
	"fmt"
)

// NetworkError represents socket creation, binding, or I/O failures
// encountered while submitting or driving a query.
type NetworkError struct {
	// Operation describes what network operation failed (e.g., "bind socket", "send query")
	Operation string

	// Err is the underlying error from the network stack
	Err error

	// Details provides additional context for troubleshooting
	Details string
}

func (e *NetworkError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("network error during %s: %v (%s)", e.Operation, e.Err, e.Details)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error, enabling error chain inspection with errors.Is/As.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError represents invalid caller input: a bad functional-option
// argument, an unsupported address family, or a malformed CSV/resolv.conf
// token.
type ValidationError struct {
	// Field identifies which input field failed validation (e.g., "name", "recordType", "timeout")
	Field string

	// Value is the invalid value that was provided (if safe to include)
	Value interface{}

	// Message describes why the validation failed
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// WireFormatError represents a malformed DNS frame, label, or answer:
// truncated fields, bad compression pointers, or an rdlength that overruns
// the buffer.
type WireFormatError struct {
	// Operation describes what parsing operation failed (e.g., "parse header", "decompress name")
	Operation string

	// Offset indicates the byte offset in the message where the error occurred (if known)
	Offset int

	// Message describes why the wire format is invalid
	Message string

	// Err is the underlying error (if any)
	Err error
}

func (e *WireFormatError) Error() string {
	if e.Offset >= 0 {
		if e.Err != nil {
			return fmt.Sprintf("wire format error during %s at offset %d: %s (underlying: %v)", e.Operation, e.Offset, e.Message, e.Err)
		}
		return fmt.Sprintf("wire format error during %s at offset %d: %s", e.Operation, e.Offset, e.Message)
	}

	if e.Err != nil {
		return fmt.Sprintf("wire format error during %s: %s (underlying: %v)", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("wire format error during %s: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying error, enabling error chain inspection with errors.Is/As.
func (e *WireFormatError) Unwrap() error {
	return e.Err
}
