// Unified error handling for the G-code builder
//
// Every error produced by this module carries a category code so that
// callers can distinguish recoverable validation failures from state
// machine conflicts, geometry problems, transform stack misuse and
// device I/O failures without depending on error message text.
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// ErrValidation marks malformed or out-of-range arguments.
	// Always recoverable: fix the input and retry.
	ErrValidation ErrorCode = "VALIDATION"

	// ErrToolState marks a transition that violates the tool
	// activation rules of the machine state automaton.
	ErrToolState ErrorCode = "TOOL_STATE"

	// ErrCoolantState marks a transition that violates the coolant
	// activation rules of the machine state automaton.
	ErrCoolantState ErrorCode = "COOLANT_STATE"

	// ErrGeometry marks inconsistent geometric input: mismatched arc
	// radii, zero-length normals, too few spline control points.
	ErrGeometry ErrorCode = "GEOMETRY"

	// ErrStackUnderflow marks a pop on an empty transform stack.
	// Indicates a scoping bug in the caller.
	ErrStackUnderflow ErrorCode = "STACK_UNDERFLOW"

	// ErrDevice wraps failures surfaced by the writer or formatter
	// boundary (connection loss, timeout, malformed response).
	ErrDevice ErrorCode = "DEVICE"
)

// BuildError is the unified error type for the builder
type BuildError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Err wraps the underlying error
	Err error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}

// New creates a new BuildError
func New(code ErrorCode, message string) *BuildError {
	return &BuildError{Code: code, Message: message}
}

// Wrap wraps an existing error with a category code
func Wrap(err error, code ErrorCode, message string) *BuildError {
	return &BuildError{Code: code, Message: message, Err: err}
}

// Validation creates an argument validation error
func Validation(format string, args ...interface{}) *BuildError {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

// ToolState creates a tool activation conflict error
func ToolState(message string) *BuildError {
	return New(ErrToolState, message)
}

// CoolantState creates a coolant activation conflict error
func CoolantState(message string) *BuildError {
	return New(ErrCoolantState, message)
}

// Geometry creates a geometric consistency error
func Geometry(format string, args ...interface{}) *BuildError {
	return New(ErrGeometry, fmt.Sprintf(format, args...))
}

// StackUnderflow creates a transform stack discipline error
func StackUnderflow(message string) *BuildError {
	return New(ErrStackUnderflow, message)
}

// Device wraps a writer or formatter boundary failure
func Device(err error, message string) *BuildError {
	return Wrap(err, ErrDevice, message)
}

// IsCode reports whether err carries the given category code
func IsCode(err error, code ErrorCode) bool {
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Code == code
	}
	return false
}

// CodeOf returns the category code of err, or an empty code when
// err is not a BuildError
func CodeOf(err error) ErrorCode {
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Code
	}
	return ""
}
