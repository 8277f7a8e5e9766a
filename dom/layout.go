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

package dom

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/docfmt/internal/ext/iterx"
	"github.com/bufbuild/docfmt/internal/ext/slicesx"
	"github.com/bufbuild/docfmt/internal/ext/stringsx"
)

const maxInt = math.MaxInt

// frame is an entry on the printer's command stack: a run of sibling tags,
// along with the indentation and group mode they are to be printed with.
type frame struct {
	tags   dom
	indent int
	mode   Cond

	fill bool // tags are the remaining parts of a Fill.
	rest bool // Used by fits(): this frame is lookahead past the content being measured.

	spanEnd int // If nonzero, this frame closes p.spans[spanEnd-1] instead.
}

// fits reports whether the frames in next, laid out flat starting at the
// current position, fit on the current line.
//
// If lookahead is set, the check continues into rest (which is a command
// stack, so it is consumed from the end) until the first line break, so
// that content which must follow the measured frames on the same line is
// accounted for.
//
// This function is a pure scan: it never modifies the printer's state, nor
// the frames it is given.
func (p *printer) fits(next []frame, rest []frame, lookahead bool) bool {
	width := p.MaxWidth - p.column
	space := p.space
	lineEmpty := p.lineEmpty
	suffix := false

	stack := make([]frame, 0, len(next)+8)
	stack = append(stack, next...)
	restIdx := len(rest)

	for {
		f, ok := slicesx.Pop(&stack)
		if !ok {
			if !lookahead || restIdx == 0 {
				return true
			}
			restIdx--
			f = rest[restIdx]
			f.rest = true
		}
		if f.spanEnd != 0 || len(f.tags) == 0 {
			continue
		}

		tag, children, siblings := f.tags.split()
		if len(siblings) > 0 {
			next := f
			next.tags = siblings
			stack = append(stack, next)
		}

		push := func(mode Cond) {
			next := f
			next.tags = children
			next.mode = mode
			next.fill = false
			stack = append(stack, next)
		}

		switch tag.kind {
		case kindText:
			text := tag.text
			multiline := strings.Contains(text, "\n")
			if multiline {
				if !f.rest {
					return false
				}
				text, _, _ = strings.Cut(text, "\n")
			}

			if space && !lineEmpty {
				width--
			}
			space = false
			lineEmpty = false

			width -= stringWidth(p.Options, -1, text)
			if width < 0 {
				return false
			}
			if multiline {
				return true
			}

		case kindSpace:
			if !lineEmpty {
				space = true
			}

		case kindLine:
			if tag.line.isHard() || f.mode == Broken {
				// A forced break in the measured content can never be flat;
				// any break in the lookahead ends the current line.
				return f.rest
			}
			if suffix && !f.rest && tag.line == SoftOrSpace {
				// Flattening this line would drag a pending line suffix (a
				// trailing comment) past content that belongs on a later line.
				return false
			}
			if tag.line == SoftOrSpace && !lineEmpty {
				space = true
			}

		case kindGroup:
			if f.rest {
				push(f.mode)
			} else {
				push(Flat)
			}

		case kindIndent, kindList, kindSpan, kindFill:
			push(f.mode)

		case kindIf:
			mode := f.mode
			if tag.id != 0 {
				if decided, ok := p.modes[tag.id]; ok {
					mode = decided
				} else if !f.rest {
					// The group is inside of the content being measured, so
					// it is being measured as flat.
					mode = Flat
				}
			}
			if tag.renderIf(mode) {
				push(f.mode)
			}

		case kindBound:
			if suffix || len(p.suffixes) > 0 {
				// This forces a newline: the end of the line for lookahead,
				// and a break in the measured content.
				return f.rest
			}

		case kindSuffix:
			if f.rest {
				break
			}
			if hasHardLine(children) {
				// The suffix will end the line it is flushed on, so the
				// content being measured cannot stay on one line.
				return false
			}
			suffix = true
		}
	}
}

// breakable returns whether a dom contains anything that could be broken.
// Groups without any breakable content are always flat.
func breakable(d dom) bool {
	for i := range d {
		switch d[i].kind {
		case kindLine:
			return true
		case kindText:
			if strings.Contains(d[i].text, "\n") {
				return true
			}
		}
	}
	return false
}

// hasHardLine returns whether a dom contains a hard line break.
func hasHardLine(d dom) bool {
	for i := range d {
		if d[i].kind == kindLine && d[i].line.isHard() {
			return true
		}
	}
	return false
}

// stringWidth calculates the rendered width of text if placed at the given
// column, accounting for tabstops.
//
// If column is -1, all tabstops are given their maximum width. This is used for
// cases where we are forced to be conservative because we do not know the
// column we will be rendering at.
func stringWidth(options Options, column int, text string) int {
	maxWidth := column < 0
	column = max(0, column)

	// We can't just use StringWidth, because that doesn't respect tabstops
	// correctly.
	for i, next := range iterx.Enumerate(stringsx.Split(text, '\t')) {
		if i > 0 {
			tab := options.TabstopWidth
			if !maxWidth {
				tab -= (column % options.TabstopWidth)
			}
			column += tab
		}
		column += uniseg.StringWidth(next)
	}

	return column
}
