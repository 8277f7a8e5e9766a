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
	"github.com/bufbuild/docfmt/dom"
	"github.com/bufbuild/docfmt/syntax"
)

// Join interleaves separator between the non-empty items.
func Join(separator dom.Doc, items ...dom.Doc) dom.Doc {
	return dom.Build(func(push dom.Sink) {
		first := true
		for _, item := range items {
			if item.IsEmpty() {
				continue
			}
			if !first {
				push(separator)
			}
			first = false
			push(item)
		}
	})
}

// SoftLineBreakOrSpace is a space if the enclosing group is flat, and a line
// break otherwise.
func SoftLineBreakOrSpace() dom.Doc { return dom.SoftLineOrSpace() }

// SoftLineBreak is nothing if the enclosing group is flat, and a line break
// otherwise.
func SoftLineBreak() dom.Doc { return dom.SoftLine() }

// HardLineBreak is always a line break.
func HardLineBreak() dom.Doc { return dom.HardLine() }

// EmptyLineBreak is a line break followed by a blank line.
func EmptyLineBreak() dom.Doc { return dom.EmptyLine() }

// Space is a single space, dropped at the start of a line.
func Space() dom.Doc { return dom.Space() }

// GroupElements groups children into a single break decision.
func GroupElements(children ...dom.Doc) dom.Doc { return dom.Group(children...) }

// SoftBlockIndent indents children onto their own lines if the enclosing
// group breaks. If children is empty, so is the result.
func SoftBlockIndent(children ...dom.Doc) dom.Doc {
	content := dom.List(children...)
	if content.IsEmpty() {
		return content
	}
	return dom.List(dom.Indent(dom.SoftLine(), content), dom.SoftLine())
}

// FormatSeparated formats the items of a separated list: a node whose
// children alternate between item nodes and separator tokens.
//
// It returns one doc per item, each followed by its separator. Separator
// tokens present in the source keep their comments but are printed as
// separator(). The separator after the last item follows policy. If the
// list has no items, neither does the result.
//
// Typically, the results are joined with [SoftLineBreakOrSpace] inside of a
// group.
func FormatSeparated(
	ctx *Context,
	list syntax.Node,
	separator func() dom.Doc,
	policy TrailingSeparator,
) ([]dom.Doc, error) {
	type entry struct {
		item syntax.Node
		sep  syntax.Token
	}

	var entries []entry
	for child := range list.Children() {
		if node := child.AsNode(); !node.IsZero() {
			if n := len(entries); n > 0 && entries[n-1].sep.IsZero() {
				return nil, Mismatchf(node.Span(), "missing separator before list item")
			}
			entries = append(entries, entry{item: node})
			continue
		}

		tok := child.AsToken()
		if n := len(entries); n == 0 || !entries[n-1].sep.IsZero() {
			return nil, Mismatchf(tok.Span(), "separator %q without a preceding list item", tok.Text())
		}
		entries[len(entries)-1].sep = tok
	}

	docs := make([]dom.Doc, 0, len(entries))
	for i, e := range entries {
		item, err := ctx.Format(e.item)
		if err != nil {
			return nil, err
		}

		var sep dom.Doc
		switch {
		case i < len(entries)-1:
			sep = separator()
		case policy == TrailingAlways:
			sep = separator()
		case policy == TrailingOmitIfLast:
			sep = dom.If(dom.Broken, separator())
		}
		docs = append(docs, dom.List(item, ctx.TokenWith(e.sep, sep)))
	}
	return docs, nil
}

// FormatList formats every child of a list whose items delimit themselves,
// such as whitespace-separated attributes.
//
// Tokens in the list are printed as-is.
func FormatList(ctx *Context, list syntax.Node) ([]dom.Doc, error) {
	docs := make([]dom.Doc, 0, list.Len())
	for child := range list.Children() {
		if tok := child.AsToken(); !tok.IsZero() {
			docs = append(docs, ctx.Token(tok))
			continue
		}

		doc, err := ctx.Format(child.AsNode())
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
