package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent binding-level failures.
// Native engine failures are reported through NativeError.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown backend, stemmer or file type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMalformedEncoding indicates escaped bytes that no encoder could have produced.
	ErrMalformedEncoding = errors.New("malformed escaped input")

	// ErrNativeFailure indicates the native engine refused an operation.
	ErrNativeFailure = errors.New("native engine failure")

	// ErrEngineMismatch indicates a handle created by one engine was passed to another.
	ErrEngineMismatch = errors.New("handle belongs to a different engine")

	// ErrSourceClosed indicates a file source was used after Close.
	ErrSourceClosed = errors.New("source is closed")
)

// NativeError carries the message reported by the native engine.
type NativeError struct {
	// Op names the native call that failed (e.g. "open database").
	Op string

	// Message is the engine's own description of the failure.
	Message string
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap allows errors.Is(err, ErrNativeFailure).
func (e *NativeError) Unwrap() error {
	return ErrNativeFailure
}
