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

// Package syntax is the interface between a parser and the formatting core.
//
// A parser produces a [Tree]: an immutable, position-addressable tree of
// nodes and tokens, where every token carries the trivia (whitespace and
// comments) that surrounds it in the source. The formatter only ever walks
// this tree; it never sees the parser itself.
//
// Node and token kinds are defined by each language as values of [Kind].
package syntax

import "fmt"

// Kind is the kind of a node or token. Its meaning is defined by the
// language that built the tree.
type Kind uint16

// Span is a half-open range of byte offsets into a source file.
type Span struct {
	Start, End int
}

// Len returns the length of this span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns whether offset is within this span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// Join returns the smallest span containing both spans.
func (s Span) Join(that Span) Span {
	return Span{Start: min(s.Start, that.Start), End: max(s.End, that.End)}
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

const (
	Whitespace   TriviaKind = iota // Non-newline whitespace.
	Newline                        // A single newline.
	LineComment                    // A comment that runs until the end of the line.
	BlockComment                   // A delimited comment, which may span lines.
)

// TriviaKind is a kind of [Trivia].
type TriviaKind byte

// String implements [fmt.Stringer].
func (k TriviaKind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	default:
		return fmt.Sprintf("syntax.TriviaKind(%d)", int(k))
	}
}

// IsComment returns whether this is a kind of comment.
func (k TriviaKind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// Trivia is a piece of source text that is not part of the grammar proper.
type Trivia struct {
	Kind TriviaKind
	Text string
	Span Span
}

// SplitTrivia splits the trivia between two tokens into the trailing trivia
// of the first (everything on the same line as it) and the leading trivia
// of the second (everything from the first newline on).
//
// This is the attachment convention [Tree] expects from parsers.
func SplitTrivia(between []Trivia) (trailing, leading []Trivia) {
	for i, t := range between {
		if t.Kind == Newline {
			return between[:i], between[i:]
		}
	}
	return between, nil
}
