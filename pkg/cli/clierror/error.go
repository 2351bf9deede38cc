// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package clierror attaches process exit codes to command errors.
package clierror

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/cockroachdb/searchprof/pkg/cli/exit"
)

// Error wraps an error with the exit code the process should terminate
// with.
type Error struct {
	exitCode exit.Code
	cause    error
}

// NewError wraps err with the given exit code.
func NewError(cause error, exitCode exit.Code) error {
	return &Error{
		exitCode: exitCode,
		cause:    cause,
	}
}

// GetExitCode returns the exit code attached to the error.
func (e *Error) GetExitCode() exit.Code {
	return e.exitCode
}

// Error implements the error interface.
func (e *Error) Error() string { return e.cause.Error() }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the Go 1.13 unwrap interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %d", e.exitCode.Int())
	}
	return e.cause
}

// ExitCode returns the exit code for err: the one attached by the outermost
// Error, Success for a nil error, and UnspecifiedError otherwise.
func ExitCode(err error) exit.Code {
	if err == nil {
		return exit.Success()
	}
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.GetExitCode()
	}
	return exit.UnspecifiedError()
}
