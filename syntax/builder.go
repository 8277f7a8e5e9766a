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

package syntax

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bufbuild/docfmt/internal/arena"
	"github.com/bufbuild/docfmt/internal/ext/slicesx"
)

// Builder builds a [Tree] from a stream of start-node, token, and
// finish-node events, in source order.
type Builder struct {
	tree  *Tree
	stack []arena.Pointer[rawNode]
	pos   int // End of the last token, for the spans of empty nodes.
}

// NewBuilder returns a builder for a tree over the given source.
func NewBuilder(path, source string) *Builder {
	return &Builder{tree: &Tree{path: path, source: source}}
}

// Start opens a new node of the given kind as a child of the current node.
func (b *Builder) Start(kind Kind) {
	ptr := b.tree.nodes.New(rawNode{kind: kind, span: Span{Start: -1}})
	if parent, ok := slicesx.Last(b.stack); ok {
		raw := parent.In(&b.tree.nodes)
		raw.children = append(raw.children, rawChild{node: ptr})
	} else if b.tree.root.Nil() {
		b.tree.root = ptr
	}
	b.stack = append(b.stack, ptr)
}

// Checkpoint is a position among the children of an unfinished node.
type Checkpoint struct {
	depth, child int
}

// Checkpoint returns the current position in the current node, for use with
// [Builder.StartAt].
func (b *Builder) Checkpoint() Checkpoint {
	cp := Checkpoint{depth: len(b.stack)}
	if parent, ok := slicesx.Last(b.stack); ok {
		cp.child = len(parent.In(&b.tree.nodes).children)
	}
	return cp
}

// StartAt is like [Builder.Start], but the new node adopts every child added
// to the current node since cp was taken.
//
// This is for constructs whose kind is only known after parsing a prefix of
// them.
func (b *Builder) StartAt(cp Checkpoint, kind Kind) {
	if cp.depth == 0 || cp.depth != len(b.stack) {
		panic("syntax: checkpoint does not belong to the current node")
	}
	parent := b.stack[len(b.stack)-1].In(&b.tree.nodes)
	adopted := slices.Clone(parent.children[cp.child:])
	parent.children = parent.children[:cp.child]

	b.Start(kind)
	node := b.stack[len(b.stack)-1].In(&b.tree.nodes)
	node.children = adopted
}

// Token adds a token to the current node.
//
// leading and trailing must follow the convention of [SplitTrivia].
func (b *Builder) Token(kind Kind, span Span, leading, trailing []Trivia) Token {
	b.tree.tokens = append(b.tree.tokens, rawToken{
		kind:     kind,
		span:     span,
		leading:  leading,
		trailing: trailing,
	})
	idx := int32(len(b.tree.tokens))

	if parent, ok := slicesx.Last(b.stack); ok {
		raw := parent.In(&b.tree.nodes)
		raw.children = append(raw.children, rawChild{token: idx})
	}
	b.pos = span.End
	return Token{tree: b.tree, idx: idx}
}

// Finish closes the current node.
func (b *Builder) Finish() Node {
	ptr, ok := slicesx.Pop(&b.stack)
	if !ok {
		panic("syntax: Finish called without a matching Start")
	}

	raw := ptr.In(&b.tree.nodes)
	for _, child := range raw.children {
		var span Span
		if child.token != 0 {
			span = b.tree.tokens[child.token-1].span
		} else {
			span = child.node.In(&b.tree.nodes).span
		}

		if raw.span.Start < 0 {
			raw.span = span
		} else {
			raw.span = raw.span.Join(span)
		}
	}
	if raw.span.Start < 0 {
		raw.span = Span{Start: b.pos, End: b.pos}
	}

	return Node{tree: b.tree, ptr: ptr}
}

// Tree returns the built tree. Every node must have been finished.
func (b *Builder) Tree() (*Tree, error) {
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("syntax: %d nodes were not finished", len(b.stack))
	}
	if b.tree.root.Nil() {
		return nil, errors.New("syntax: tree has no root node")
	}
	return b.tree, nil
}
