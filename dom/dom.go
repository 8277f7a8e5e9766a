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
	"iter"
)

const (
	kindNone kind = iota //nolint:unused

	kindText   // Ordinary text.
	kindSpace  // An elastic space. See [Space].
	kindLine   // See [Line].
	kindGroup  // See [Group].
	kindIndent // See [Indent].
	kindFill   // See [Fill].
	kindIf     // See [If].
	kindSuffix // See [LineSuffix].
	kindList   // A list of tags treated as one unit; used for the parts of a [Fill].
	kindSpan   // See [Span].
	kindBound  // See [LineSuffixBoundary].
)

// kind is a kind of [tag].
type kind byte

// dom is a flattened document: a pre-order listing of tags, where each
// composite tag is followed by its children.
type dom []tag

// cursor is a recursive iterator over a [dom].
//
// See [dom.cursor].
type cursor iter.Seq2[*tag, dom]

// tag is a single tag within a [dom].
type tag struct {
	text string

	kind kind
	line LineKind // Used by kindLine.
	cond Cond     // Used by kindIf.
	id   GroupID  // Used by kindGroup and kindIf.

	start, end int // Used by kindSpan.

	children int // Number of children that follow in a [dom].
}

// Doc is a document: an immutable tree of formatting instructions, built
// bottom-up by the constructors in this package and laid out by [Render].
//
// The zero Doc is empty and contributes nothing to the output. Docs may be
// freely copied and shared; building a larger document out of smaller ones
// never modifies the smaller ones.
type Doc struct {
	tags dom
}

// IsEmpty returns whether this document contributes nothing at all.
func (d Doc) IsEmpty() bool {
	return len(d.tags) == 0
}

// Len returns the number of instructions in this document. This is mostly
// useful for debugging and tests.
func (d Doc) Len() int {
	return len(d.tags)
}

// String implements [fmt.Stringer] by dumping the document in the debugging
// format of [Options.HTML].
func (d Doc) String() string {
	p := printer{Options: Options{HTML: true}.WithDefaults()}
	p.html(d.tags.cursor())
	return p.out.String()
}

// compose appends a header tag followed by the concatenation of docs.
func compose(header tag, docs []Doc) Doc {
	n := 0
	for _, d := range docs {
		n += len(d.tags)
	}

	out := make(dom, 0, n+1)
	out = append(out, header)
	for _, d := range docs {
		out = append(out, d.tags...)
	}
	out[0].children = n
	return Doc{tags: out}
}

// concat concatenates docs without a header.
func concat(docs []Doc) Doc {
	switch len(docs) {
	case 0:
		return Doc{}
	case 1:
		return docs[0]
	}

	n := 0
	for _, d := range docs {
		n += len(d.tags)
	}

	out := make(dom, 0, n)
	for _, d := range docs {
		out = append(out, d.tags...)
	}
	return Doc{tags: out}
}

// cursor returns an iterator over the top-level tags of this dom.
//
// The iterator yields tags along with that tag's children.
func (d dom) cursor() cursor {
	return func(yield func(*tag, dom) bool) {
		for i := 0; i < len(d); i++ {
			tag := &d[i]
			children := d[i+1 : i+tag.children+1]
			i += len(children)

			if !yield(tag, children) {
				return
			}
		}
	}
}

// split splits off the first top-level tag of a dom, returning it, its
// children, and whatever follows it.
func (d dom) split() (first *tag, children, rest dom) {
	first = &d[0]
	end := 1 + first.children
	return first, d[1:end], d[end:]
}

// renderIf returns whether a conditional tag should render in a group that
// was decided to be in the given mode.
func (t *tag) renderIf(mode Cond) bool {
	return t.cond == Always || t.cond == mode
}
