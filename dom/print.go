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

// Package dom is a layout engine for source code: a Go take on the classic
// Wadler-style pretty printer, extended with the constructs a code formatter
// needs.
//
// A document ([Doc]) is an immutable tree of formatting instructions: text,
// line break candidates, indentation, groups, fills, conditional content and
// line suffixes. The function [Render] lays a document out into text.
//
// The main benefit of using this package is the ability to perform smart line
// wrapping of code. The [Group] tag can be used to group a collection of tags
// together that may be rendered in either a "flat" or "broken" orientation. The
// layout engine will determine whether this element could be laid out flat
// without going over a configured column limit, and if it would, the group is
// marked as broken. This can be combined with conditioned tags (viz. [If])
// to insert e.g. trailing commas at strategic points.
package dom

import (
	"fmt"
	"strings"

	"github.com/bufbuild/docfmt/internal/ext/slicesx"
	"github.com/bufbuild/docfmt/internal/ext/stringsx"
)

// Output is the result of [Render].
type Output struct {
	Text string

	// The output ranges of every [Span] in the document, in the order the
	// spans were entered.
	Spans []SpanRange
}

// SpanRange maps the input range of a [Span] to the range of output it
// produced. Ranges are half-open byte offsets.
type SpanRange struct {
	Start, End       int // The source range passed to [Span].
	OutStart, OutEnd int // The output range.
}

// UndecidedGroupError is returned by [Render] when an [IfGroup] refers to a
// group that has not been printed yet. This always indicates a bug in the code
// that built the document.
type UndecidedGroupError struct {
	ID GroupID
}

// Error implements [error].
func (e *UndecidedGroupError) Error() string {
	return fmt.Sprintf("dom: conditional content depends on group %d, which has not been laid out", e.ID)
}

var hardLine = HardLine()

// printer holds state for converting a [dom] into a string.
type printer struct {
	Options

	out strings.Builder

	column    int  // Width of the current line, including pending indentation.
	indent    int  // Indentation level of the current line.
	lineEmpty bool // Whether the current line has nothing but indentation.
	blank     bool // Whether the last thing written was a blank line.
	space     bool // Whether a space is pending.

	stack    []frame
	suffixes []frame
	modes    map[GroupID]Cond
	indents  []int // Cached widths of each indentation level.

	spans []SpanRange
	open  []int // Indices of spans which have not printed anything yet.
}

// Render lays out a document with the given options.
//
// Render fails only if the document is malformed; see [UndecidedGroupError].
func Render(options Options, doc Doc) (Output, error) {
	options = options.WithDefaults()
	p := printer{
		Options:   options,
		lineEmpty: true,
		modes:     make(map[GroupID]Cond),
	}

	if options.HTML {
		p.html(doc.tags.cursor())
		return Output{Text: p.out.String()}, nil
	}

	// Top level is always broken.
	p.stack = append(p.stack, frame{tags: doc.tags, mode: Broken})
	if err := p.print(); err != nil {
		return Output{}, err
	}

	return Output{Text: p.out.String(), Spans: p.spans}, nil
}

// print drains the command stack.
func (p *printer) print() error {
	for {
		f, ok := slicesx.Pop(&p.stack)
		if !ok {
			if len(p.suffixes) == 0 {
				return nil
			}
			// Suffixes are flushed at the end of the output.
			p.flushSuffixes()
			continue
		}

		if f.spanEnd != 0 {
			p.closeSpan(f.spanEnd - 1)
			continue
		}
		if len(f.tags) == 0 {
			continue
		}
		if f.fill {
			p.fill(f)
			continue
		}

		tag, children, siblings := f.tags.split()
		if len(siblings) > 0 {
			next := f
			next.tags = siblings
			p.stack = append(p.stack, next)
		}

		switch tag.kind {
		case kindText:
			p.write(tag.text)

		case kindSpace:
			p.pushSpace()

		case kindLine:
			if f.mode == Flat && !tag.line.isHard() {
				if tag.line == SoftOrSpace {
					p.pushSpace()
				}
				break
			}

			if len(p.suffixes) > 0 {
				// Print the pending suffixes, then come back to this line.
				line := f
				line.tags = f.tags[:1]
				p.stack = append(p.stack, line)
				p.flushSuffixes()
				break
			}

			p.newline(f.indent, tag.line == Empty)

		case kindGroup:
			mode := Flat
			if f.mode != Flat {
				own := []frame{{tags: children, indent: f.indent, mode: Flat}}
				if !p.fits(own, p.stack, true) && breakable(children) {
					mode = Broken
				}
			}
			if tag.id != 0 {
				p.modes[tag.id] = mode
			}
			p.push(f, children, f.indent, mode)

		case kindIndent:
			p.push(f, children, f.indent+1, f.mode)

		case kindList:
			p.push(f, children, f.indent, f.mode)

		case kindFill:
			next := f
			next.tags = children
			next.fill = true
			p.stack = append(p.stack, next)

		case kindIf:
			mode := f.mode
			if tag.id != 0 {
				decided, ok := p.modes[tag.id]
				if !ok {
					return &UndecidedGroupError{ID: tag.id}
				}
				mode = decided
			}
			if tag.renderIf(mode) {
				p.push(f, children, f.indent, f.mode)
			}

		case kindSuffix:
			suffix := f
			suffix.tags = children
			p.suffixes = append(p.suffixes, suffix)

		case kindBound:
			if len(p.suffixes) > 0 {
				line := f
				line.tags = hardLine.tags
				p.stack = append(p.stack, line)
				p.flushSuffixes()
			}

		case kindSpan:
			p.spans = append(p.spans, SpanRange{
				Start: tag.start, End: tag.end,
				OutStart: -1, OutEnd: -1,
			})
			p.open = append(p.open, len(p.spans)-1)
			p.stack = append(p.stack, frame{spanEnd: len(p.spans)})
			p.push(f, children, f.indent, f.mode)
		}
	}
}

// fill prints the next item of a Fill, deciding whether the separator after
// it must break.
//
// f.tags holds the remaining parts of the fill: items at even positions,
// separators at odd positions, each wrapped in a kindList tag.
func (p *printer) fill(f frame) {
	flat := func(tags dom) frame {
		return frame{tags: tags, indent: f.indent, mode: Flat}
	}
	broken := func(tags dom) frame {
		return frame{tags: tags, indent: f.indent, mode: Broken}
	}

	_, content, rest := f.tags.split()
	contentFits := p.fits([]frame{flat(content)}, nil, false)

	if len(rest) == 0 {
		if contentFits {
			p.stack = append(p.stack, flat(content))
		} else {
			p.stack = append(p.stack, broken(content))
		}
		return
	}

	_, sep, rest := rest.split()
	if len(rest) == 0 {
		// A trailing separator; Fill never builds these, but handle it anyway.
		p.stack = append(p.stack, broken(sep), flat(content))
		return
	}

	_, next, _ := rest.split()
	// Note that frames are a stack, so these are listed in reverse.
	pairFits := p.fits([]frame{flat(next), flat(sep), flat(content)}, nil, false)

	remaining := f
	remaining.tags = rest
	p.stack = append(p.stack, remaining)

	switch {
	case pairFits:
		p.stack = append(p.stack, flat(sep), flat(content))
	case contentFits:
		p.stack = append(p.stack, broken(sep), flat(content))
	default:
		p.stack = append(p.stack, broken(sep), broken(content))
	}
}

// push pushes children onto the stack, to be printed with the given
// indentation and mode.
func (p *printer) push(parent frame, children dom, indent int, mode Cond) {
	next := parent
	next.tags = children
	next.indent = indent
	next.mode = mode
	next.fill = false
	p.stack = append(p.stack, next)
}

// flushSuffixes moves all pending line suffixes onto the stack, so that they
// are printed next, in the order they were deferred.
func (p *printer) flushSuffixes() {
	for i := len(p.suffixes) - 1; i >= 0; i-- {
		p.stack = append(p.stack, p.suffixes[i])
	}
	p.suffixes = p.suffixes[:0]
	// Suffixes bring their own leading whitespace.
	p.space = false
}

// pushSpace requests a space before the next text on this line.
func (p *printer) pushSpace() {
	if !p.lineEmpty {
		p.space = true
	}
}

// newline ends the current line, unless it is already empty. If blank is set,
// this also ensures that a blank line separates the previous line from the
// next one.
func (p *printer) newline(indent int, blank bool) {
	p.space = false
	if !p.lineEmpty {
		p.out.WriteByte('\n')
		p.blank = false
	}
	if blank && !p.blank && p.out.Len() > 0 {
		p.out.WriteByte('\n')
		p.blank = true
	}

	p.lineEmpty = true
	p.indent = indent
	p.column = p.indentWidth(indent)
}

// write appends text to the output buffer, emitting any pending indentation
// and space first.
func (p *printer) write(text string) {
	if p.lineEmpty {
		for range p.indent {
			p.out.WriteString(p.Indent)
		}
		p.lineEmpty = false
		p.space = false
	}
	if p.space {
		p.out.WriteByte(' ')
		p.column++
		p.space = false
	}

	for _, idx := range p.open {
		p.spans[idx].OutStart = p.out.Len()
	}
	p.open = p.open[:0]

	p.out.WriteString(text)
	p.blank = false

	last := stringsx.LastLine(text)
	if len(last) < len(text) {
		p.column = stringWidth(p.Options, 0, last)
	} else {
		p.column = stringWidth(p.Options, p.column, text)
	}
}

// closeSpan records the end of a span's output.
func (p *printer) closeSpan(idx int) {
	span := &p.spans[idx]
	span.OutEnd = p.out.Len()
	if span.OutStart < 0 {
		// Nothing was printed for this span.
		span.OutStart = span.OutEnd
		for i, open := range p.open {
			if open == idx {
				p.open = append(p.open[:i], p.open[i+1:]...)
				break
			}
		}
	}
}

// indentWidth returns the width of n levels of indentation.
func (p *printer) indentWidth(n int) int {
	for len(p.indents) <= n {
		level := len(p.indents)
		if level == 0 {
			p.indents = append(p.indents, 0)
			continue
		}
		prev := p.indents[level-1]
		p.indents = append(p.indents, stringWidth(p.Options, prev, p.Indent))
	}
	return p.indents[n]
}

// html renders the contents of cursor as pseudo-HTML.
func (p *printer) html(cursor cursor) {
	first := true
	for tag, children := range cursor {
		if !first {
			p.htmlNewline()
		}
		first = false

		var cond string
		switch tag.cond {
		case Flat:
			cond = " if=flat"
		case Broken:
			cond = " if=broken"
		}

		var id string
		if tag.id != 0 {
			id = fmt.Sprintf(" id=%d", tag.id)
		}

		switch tag.kind {
		case kindText:
			fmt.Fprintf(&p.out, "%q", tag.text)
		case kindSpace:
			p.out.WriteString("<sp>")
		case kindLine:
			fmt.Fprintf(&p.out, "<br %v>", tag.line)
		case kindGroup:
			p.htmlElement("group"+id, children)
		case kindIndent:
			p.htmlElement("indent", children)
		case kindFill:
			p.htmlElement("fill", children)
		case kindList:
			p.htmlElement("part", children)
		case kindIf:
			p.htmlElement("if"+id+cond, children)
		case kindSuffix:
			p.htmlElement("suffix", children)
		case kindBound:
			p.out.WriteString("<bound>")
		case kindSpan:
			p.htmlElement(fmt.Sprintf("span src=%d:%d", tag.start, tag.end), children)
		}
	}
}

// htmlElement renders one composite tag for html().
func (p *printer) htmlElement(open string, children dom) {
	name, _, _ := strings.Cut(open, " ")
	fmt.Fprintf(&p.out, "<%v>", open)
	if len(children) > 0 {
		p.indent++
		p.htmlNewline()
		p.html(children.cursor())
		p.indent--
		p.htmlNewline()
	}
	fmt.Fprintf(&p.out, "</%v>", name)
}

func (p *printer) htmlNewline() {
	p.out.WriteByte('\n')
	for range p.indent {
		p.out.WriteString("    ")
	}
}
