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
	"slices"
	"strings"

	"github.com/bufbuild/docfmt/dom"
	"github.com/bufbuild/docfmt/internal/ext/slicesx"
	"github.com/bufbuild/docfmt/syntax"
)

// Placement is the token that an own-line comment is attached to.
type Placement int

const (
	Following Placement = iota // Print the comment on its own line before the next token.
	Preceding                  // Print the comment on its own line after the previous token.
)

// CommentBlock is a run of comments on their own lines, with no blank lines
// between them, sitting between two tokens.
type CommentBlock struct {
	Comments []syntax.Trivia

	// Whether a blank line separates this block from whatever precedes and
	// follows it in the source.
	BlankBefore, BlankAfter bool

	Prev, Next syntax.Token

	// Whether Next closes a construct that Prev is inside of, such as a
	// closing bracket. Such a block is the last thing inside the construct.
	// This is only ever set for catalogues implementing [Closers].
	Closing bool

	lines []int // Number of comments on each source line of the block.
}

// CommentPlacement decides which token an own-line comment block belongs to.
//
// This is a heuristic: real-world formatters disagree on it.
type CommentPlacement interface {
	Place(block CommentBlock) Placement
}

// CommentPlacementFunc adapts a function into a [CommentPlacement].
type CommentPlacementFunc func(block CommentBlock) Placement

// Place implements [CommentPlacement].
func (f CommentPlacementFunc) Place(block CommentBlock) Placement {
	return f(block)
}

// Closers may be implemented by a [Rules] catalogue to report which token
// kinds close a bracketed construct.
type Closers interface {
	IsCloser(kind syntax.Kind) bool
}

// ProximityPlacement attaches a block to the preceding token if it directly
// follows it and is separated from the next token by a blank line, or if the
// next token closes the construct the block is in; otherwise it attaches it to
// the following token.
type ProximityPlacement struct{}

// Place implements [CommentPlacement].
func (ProximityPlacement) Place(block CommentBlock) Placement {
	if block.Closing || (!block.BlankBefore && block.BlankAfter) {
		return Preceding
	}
	return Following
}

// FollowingPlacement attaches every block to the following token.
type FollowingPlacement struct{}

// Place implements [CommentPlacement].
func (FollowingPlacement) Place(CommentBlock) Placement {
	return Following
}

// attachment is the comments attached to a single token, already rendered.
type attachment struct {
	before, after dom.Doc

	comments int  // Number of comments rendered into before and after.
	blank    bool // Whether a blank line directly precedes the token.
}

// commentLine is a source line holding nothing but comments.
type commentLine struct {
	comments    []syntax.Trivia
	blankBefore bool
}

// attach builds the comment table for a tree. Every comment in the tree is
// assigned to exactly one token.
//
// closers may be nil.
func attach(tree *syntax.Tree, policy CommentPlacement, closers Closers) []attachment {
	table := make([]attachment, tree.NumTokens())

	for tok := range tree.Tokens() {
		i := tok.Index()
		lines, inline, blank := splitLeading(tok.Leading(), i == 0)
		table[i].blank = blank

		// Once a block is placed after the next token, every block after it
		// must be too, or the comments would be reordered.
		placed := Preceding
		var before, suffix []dom.Doc
		closing := closers != nil && closers.IsCloser(tok.Kind())
		for _, block := range makeBlocks(lines, blank, tok, closing) {
			if placed == Preceding {
				placed = Following
				if !block.Prev.IsZero() {
					placed = policy.Place(block)
				}
			}
			n := len(block.Comments)

			if placed == Preceding {
				table[i-1].comments += n
				suffix = append(suffix, lineBreak(block.BlankBefore), renderBlock(block))
				if block.BlankAfter {
					suffix = append(suffix, dom.EmptyLine())
				}
				continue
			}

			table[i].comments += n
			if len(before) == 0 {
				table[i].blank = block.BlankBefore
				before = append(before, lineBreak(block.BlankBefore && i > 0))
			}
			before = append(before, renderBlock(block), lineBreak(block.BlankAfter))
		}

		if len(suffix) > 0 {
			table[i-1].after = dom.List(table[i-1].after, dom.LineSuffix(suffix...))
		}

		if len(inline) > 0 {
			table[i].comments += len(inline)
			before = append(before, renderLine(inline), dom.Space())
		}
		table[i].before = dom.List(before...)

		var after []dom.Doc
		for _, t := range tok.Trailing() {
			switch t.Kind {
			case syntax.BlockComment:
				after = append(after, dom.Space(), dom.Text(t.Text))
			case syntax.LineComment:
				after = append(after, dom.LineSuffix(dom.Text(" "+commentText(t))))
			default:
				continue
			}
			table[i].comments++
		}
		table[i].after = dom.List(after...)
	}

	return table
}

// splitLeading splits the leading trivia of a token into own-line comment
// lines and comments on the same line as the token.
//
// blank is whether a blank line separates the last own-line comment (or the
// previous token) from the line the token is on.
func splitLeading(leading []syntax.Trivia, first bool) (lines []commentLine, inline []syntax.Trivia, blank bool) {
	newlines := 0
	var current *commentLine
	for _, t := range leading {
		switch t.Kind {
		case syntax.Newline:
			newlines++
			current = nil
		case syntax.LineComment, syntax.BlockComment:
			if current == nil {
				lines = append(lines, commentLine{blankBefore: newlines > 1 && !(first && len(lines) == 0)})
				current = slicesx.LastPointer(lines)
			}
			current.comments = append(current.comments, t)
			newlines = 0
		}
	}

	if current != nil {
		// The last line of comments runs into the token.
		last, _ := slicesx.Pop(&lines)
		return lines, last.comments, last.blankBefore
	}
	return lines, nil, newlines > 1
}

// makeBlocks groups comment lines into blocks separated by blank lines.
func makeBlocks(lines []commentLine, blankAfter bool, next syntax.Token, closing bool) []CommentBlock {
	var blocks []CommentBlock
	for _, line := range lines {
		last := slicesx.LastPointer(blocks)
		if last != nil && !line.blankBefore {
			last.Comments = append(last.Comments, line.comments...)
			last.lines = append(last.lines, len(line.comments))
			continue
		}
		if last != nil {
			last.BlankAfter = true
		}
		blocks = append(blocks, CommentBlock{
			Comments:    slices.Clone(line.comments),
			BlankBefore: line.blankBefore,
			Prev:        next.Prev(),
			Next:        next,
			Closing:     closing,
			lines:       []int{len(line.comments)},
		})
	}
	if last := slicesx.LastPointer(blocks); last != nil {
		last.BlankAfter = blankAfter
	}
	return blocks
}

// renderBlock renders the lines of a comment block, separated by hard breaks.
func renderBlock(block CommentBlock) dom.Doc {
	return dom.Build(func(push dom.Sink) {
		comments := block.Comments
		for i, n := range block.lines {
			if i > 0 {
				push(dom.HardLine())
			}
			push(renderLine(comments[:n]))
			comments = comments[n:]
		}
	})
}

// renderLine renders comments that share a line.
func renderLine(comments []syntax.Trivia) dom.Doc {
	return dom.Build(func(push dom.Sink) {
		for i, c := range comments {
			if i > 0 {
				push(dom.Space())
			}
			push(dom.Text(commentText(c)))
		}
	})
}

func commentText(t syntax.Trivia) string {
	if t.Kind == syntax.LineComment {
		return strings.TrimRight(t.Text, " \t\r")
	}
	return t.Text
}

func lineBreak(blank bool) dom.Doc {
	if blank {
		return dom.EmptyLine()
	}
	return dom.HardLine()
}
