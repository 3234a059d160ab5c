package abi

import (
	"errors"
	"fmt"
)

// A ValidationError reports a value that does not conform
// to its descriptor. The message carries the traversal
// path, eg "tuple index 1: array index 0: ...".
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return "abi: " + e.msg
}

func verrf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// A DecodeError reports malformed encoded input.
type DecodeError struct {
	msg string
}

func (e *DecodeError) Error() string {
	return "abi: " + e.msg
}

func derrf(format string, args ...any) *DecodeError {
	return &DecodeError{msg: fmt.Sprintf(format, args...)}
}

// A PackedError reports input that the packed variant
// cannot represent or decode.
type PackedError struct {
	msg string
}

func (e *PackedError) Error() string {
	return "abi: packed: " + e.msg
}

func perrf(format string, args ...any) *PackedError {
	return &PackedError{msg: fmt.Sprintf(format, args...)}
}

// Prepends "tuple index i:" or "array index i:" to err's
// message as the traversal unwinds, preserving the type.
func indexed(array bool, i int, err error) error {
	name := "tuple"
	if array {
		name = "array"
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{msg: fmt.Sprintf("%s index %d: %s", name, i, ve.msg)}
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{msg: fmt.Sprintf("%s index %d: %s", name, i, de.msg)}
	}
	return fmt.Errorf("%s index %d: %w", name, i, err)
}
