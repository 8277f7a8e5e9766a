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
	"fmt"
)

const (
	Always Cond = iota
	Flat        // Render only in a flat group.
	Broken      // Render only in a broken group.
)

// Cond is a condition for a tag.
//
// Tags can be conditioned on whether or not they are rendered if the group
// that they are being rendered in is flat or broken.
type Cond byte

// String implements [fmt.Stringer].
func (c Cond) String() string {
	switch c {
	case Always:
		return "always"
	case Flat:
		return "flat"
	case Broken:
		return "broken"
	default:
		return fmt.Sprintf("dom.Cond(%d)", int(c))
	}
}

const (
	Soft        LineKind = iota // Nothing if flat, a newline if broken.
	SoftOrSpace                 // A space if flat, a newline if broken.
	Hard                        // Always a newline. Breaks all enclosing groups.
	Empty                       // Like Hard, but ensures a blank line follows.
)

// LineKind is the kind of a line break created with [Line].
type LineKind byte

// String implements [fmt.Stringer].
func (k LineKind) String() string {
	switch k {
	case Soft:
		return "soft"
	case SoftOrSpace:
		return "soft-or-space"
	case Hard:
		return "hard"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("dom.LineKind(%d)", int(k))
	}
}

// isHard returns whether this kind of line breaks regardless of mode.
func (k LineKind) isHard() bool {
	return k == Hard || k == Empty
}

// GroupID identifies a group, so that conditional content elsewhere in the
// document can depend on whether that group is broken. See [IfGroup].
//
// The zero value means "no group".
type GroupID uint32

// IDs allocates [GroupID]s.
//
// An IDs should be used for the construction of a single document; it is not
// safe for concurrent use.
type IDs struct {
	next uint32
}

// New allocates a fresh group ID.
func (ids *IDs) New() GroupID {
	ids.next++
	return GroupID(ids.next)
}

// Sink is a place to append documents; see [Build].
type Sink func(...Doc)

// Build constructs a document by calling content with a sink that appends
// to it.
//
// The sink must not be used after content returns.
func Build(content func(push Sink)) Doc {
	var docs []Doc
	content(func(d ...Doc) { docs = append(docs, d...) })
	return concat(docs)
}

// List concatenates documents.
func List(docs ...Doc) Doc {
	return concat(docs)
}

// Text returns a document that emits its text exactly.
//
// Text is never broken. If it contains newlines (such as a multi-line block
// comment), it is printed verbatim and forces any group it appears in to
// break.
func Text(text string) Doc {
	if text == "" {
		return Doc{}
	}
	return Doc{tags: dom{{kind: kindText, text: text}}}
}

// Textf is like [Text], but formats its arguments like [fmt.Sprintf].
func Textf(format string, args ...any) Doc {
	return Text(fmt.Sprintf(format, args...))
}

// Space returns an elastic space.
//
// Adjacent spaces merge into one, and a space is deleted if it would appear
// at the start or the end of a line.
func Space() Doc {
	return Doc{tags: dom{{kind: kindSpace}}}
}

// Line returns a line break candidate. Whether it becomes a newline depends
// on its kind and on the break decision of the enclosing [Group].
//
// The outermost level of a document is treated as broken.
func Line(kind LineKind) Doc {
	return Doc{tags: dom{{kind: kindLine, line: kind}}}
}

// SoftLine is shorthand for Line(Soft).
func SoftLine() Doc { return Line(Soft) }

// SoftLineOrSpace is shorthand for Line(SoftOrSpace).
func SoftLineOrSpace() Doc { return Line(SoftOrSpace) }

// HardLine is shorthand for Line(Hard).
func HardLine() Doc { return Line(Hard) }

// EmptyLine is shorthand for Line(Empty).
func EmptyLine() Doc { return Line(Empty) }

// Group returns a document that groups together a collection of child
// documents.
//
// Each group in a document can be broken or flat. The printer decides once,
// on entering the group, which one it is: a group is flat if its contents,
// laid out with every line flat, fit within the configured width, and do not
// contain a hard line break. Nested groups decide independently.
func Group(children ...Doc) Doc {
	return GroupWithID(0, children...)
}

// GroupWithID is like [Group], but records the group's break decision under
// id, for use with [IfGroup].
func GroupWithID(id GroupID, children ...Doc) Doc {
	return compose(tag{kind: kindGroup, id: id}, children)
}

// Indent increases the indentation of its contents by one unit, as
// configured by [Options].
//
// Indentation only has an effect on lines which are broken.
func Indent(children ...Doc) Doc {
	d := concat(children)
	if d.IsEmpty() {
		return d
	}
	return compose(tag{kind: kindIndent}, []Doc{d})
}

// Fill returns a document that packs items onto as few lines as possible,
// placing separator between adjacent items. Unlike a [Group], which breaks
// all of its lines or none of them, a fill only breaks a separator when the
// item after it would not fit on the current line.
//
// Empty items are skipped. separator is usually [SoftLineOrSpace].
func Fill(separator Doc, items ...Doc) Doc {
	parts := make([]Doc, 0, 2*len(items))
	for i, item := range items {
		if i > 0 {
			parts = append(parts, separator)
		}
		parts = append(parts, item)
	}
	return FillParts(parts...)
}

// FillParts is like [Fill], but each pair of adjacent items has its own
// separator: parts alternates between items and separators, starting with an
// item.
//
// Empty items are skipped, along with the separator before them; the first
// item after the skipped ones is preceded by its own separator.
func FillParts(parts ...Doc) Doc {
	var out []Doc
	var separator Doc
	for i, part := range parts {
		switch {
		case i%2 == 1:
			separator = part
		case part.IsEmpty():
			continue
		default:
			if len(out) > 0 {
				out = append(out, compose(tag{kind: kindList}, []Doc{separator}))
			}
			out = append(out, compose(tag{kind: kindList}, []Doc{part}))
		}
	}
	if len(out) == 0 {
		return Doc{}
	}
	return compose(tag{kind: kindFill}, out)
}

// If returns a document that renders children only if the enclosing group is
// in the given mode.
//
// The outermost level of a document is treated as broken.
func If(cond Cond, children ...Doc) Doc {
	return IfGroup(0, cond, children...)
}

// IfGroup is like [If], but depends on the decision made for the group with
// the given ID instead of the enclosing group.
//
// That group must be printed before this tag is printed; otherwise, [Render]
// returns an [*UndecidedGroupError].
func IfGroup(id GroupID, cond Cond, children ...Doc) Doc {
	d := concat(children)
	if d.IsEmpty() {
		return d
	}
	return compose(tag{kind: kindIf, id: id, cond: cond}, []Doc{d})
}

// LineSuffix defers its contents until just before the next newline is
// printed, or until the end of the output. This is used for trailing line
// comments.
//
// A suffix that contains a hard line break breaks every group it is in. This
// is used for comments that belong after a token, but on their own line.
func LineSuffix(children ...Doc) Doc {
	d := concat(children)
	if d.IsEmpty() {
		return d
	}
	return compose(tag{kind: kindSuffix}, []Doc{d})
}

// LineSuffixBoundary forces a newline if any [LineSuffix] is pending, so
// that the suffixes are printed before whatever follows the boundary.
// Otherwise it prints nothing.
//
// This is used before tokens after which a trailing comment would no longer
// be a comment, such as the end of a tag in markup.
func LineSuffixBoundary() Doc {
	return Doc{tags: dom{{kind: kindBound}}}
}

// Span marks its children as the rendering of the source range [start, end).
// [Render] reports the output range each span was printed to in
// [Output.Spans].
func Span(start, end int, children ...Doc) Doc {
	return compose(tag{kind: kindSpan, start: start, end: end}, children)
}

// Options specifies configuration for [Render].
type Options struct {
	// The maximum number of columns to render before triggering
	// a break. A value of zero implies an infinite width.
	MaxWidth int

	// The string printed once per indentation level. Defaults to two spaces.
	Indent string

	// The number of columns a tab character counts as. Defaults to 1.
	TabstopWidth int

	// If true, prints all of the tags in an HTML-like format. Intended for
	// debugging.
	HTML bool
}

// WithDefaults replaces any unset (read: zero value) fields of an Options which
// specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = maxInt
	}
	if o.Indent == "" {
		o.Indent = "  "
	}
	if o.TabstopWidth <= 0 {
		o.TabstopWidth = 1
	}
	return o
}
