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

package js

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/docfmt/syntax"
)

// SyntaxError is an error produced while parsing JavaScript source.
type SyntaxError struct {
	Path    string
	Span    syntax.Span
	Message string
	Notes   []Note

	// One-based position of Span.Start, counting columns in runes.
	Line, Column int
}

// Note is additional context attached to a [SyntaxError].
type Note struct {
	Span    syntax.Span
	Message string
}

// Error implements [error].
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

func newSyntaxError(path, source string, span syntax.Span, format string, args ...any) *SyntaxError {
	before := source[:span.Start]
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return &SyntaxError{
		Path:    path,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
		Line:    strings.Count(before, "\n") + 1,
		Column:  utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}

// withNote adds a note to e and returns it.
func (e *SyntaxError) withNote(span syntax.Span, format string, args ...any) *SyntaxError {
	e.Notes = append(e.Notes, Note{Span: span, Message: fmt.Sprintf(format, args...)})
	return e
}
