// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package format

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bufbuild/docfmt/syntax"
)

// Error is a formatting failure.
//
// Every error returned by [Format] is an *Error. A failure always aborts the
// whole file: there is no partially formatted output.
type Error struct {
	Kind ErrorKind
	Span syntax.Span // The offending node. Zero for configuration errors.
	Err  error
}

// Mismatchf returns a [StructuralMismatch] error for the given node span.
//
// Rules use this when the tree lacks a child they require.
func Mismatchf(span syntax.Span, format string, args ...any) *Error {
	return &Error{Kind: StructuralMismatch, Span: span, Err: fmt.Errorf(format, args...)}
}

// Violationf returns an [InvariantViolation] error for the given node span.
//
// The error records a stack trace, which is printed with %+v.
func Violationf(span syntax.Span, format string, args ...any) *Error {
	return &Error{Kind: InvariantViolation, Span: span, Err: errors.Errorf(format, args...)}
}

func configErrorf(format string, args ...any) *Error {
	return &Error{Kind: ConfigurationError, Err: fmt.Errorf(format, args...)}
}

// IsKind returns whether err is an [*Error] of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Error implements [error].
func (e *Error) Error() string {
	return e.prefix() + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Format implements [fmt.Formatter].
//
// %+v includes the stack trace of an [InvariantViolation].
func (e *Error) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.prefix())
	fmt.Fprintf(s, fmt.FormatString(s, verb), e.Err)
}

func (e *Error) prefix() string {
	if e.Kind == ConfigurationError {
		return fmt.Sprintf("format: %v: ", e.Kind)
	}
	return fmt.Sprintf("format: %v at %v: ", e.Kind, e.Span)
}

// wrap converts an arbitrary error returned by a rule into an *Error.
func wrap(span syntax.Span, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: InvariantViolation, Span: span, Err: errors.WithStack(err)}
}
