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
	"fmt"
	"iter"
	"strings"

	"github.com/bufbuild/docfmt/internal/arena"
)

// Tree is a syntax tree for a single source file.
//
// A tree is immutable once built, so it may be formatted concurrently with
// other trees, or even with itself.
type Tree struct {
	path, source string

	nodes  arena.Arena[rawNode]
	tokens []rawToken
	root   arena.Pointer[rawNode]
}

type rawNode struct {
	kind     Kind
	span     Span
	children []rawChild
}

// rawChild is either a node or a token; token is a one-based token index.
type rawChild struct {
	node  arena.Pointer[rawNode]
	token int32
}

type rawToken struct {
	kind     Kind
	span     Span
	leading  []Trivia
	trailing []Trivia
}

// Path returns the path of the file this tree was parsed from.
func (t *Tree) Path() string {
	return t.path
}

// Source returns the source text this tree was parsed from.
func (t *Tree) Source() string {
	return t.source
}

// Root returns the root node of this tree.
func (t *Tree) Root() Node {
	return Node{tree: t, ptr: t.root}
}

// Tokens returns an iterator over every token in the tree, in source order.
func (t *Tree) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for i := range t.tokens {
			if !yield(Token{tree: t, idx: int32(i + 1)}) {
				return
			}
		}
	}
}

// NumTokens returns the number of tokens in this tree.
func (t *Tree) NumTokens() int {
	return len(t.tokens)
}

// Dump renders this tree as an S-expression, for debugging. names converts
// kinds into names; if nil, kinds are printed as numbers.
func (t *Tree) Dump(names func(Kind) string) string {
	if names == nil {
		names = func(k Kind) string { return fmt.Sprint(int(k)) }
	}

	var out strings.Builder
	var dump func(n Node, depth int)
	dump = func(n Node, depth int) {
		fmt.Fprintf(&out, "%s(%s", strings.Repeat("  ", depth), names(n.Kind()))
		for child := range n.Children() {
			if tok := child.AsToken(); !tok.IsZero() {
				fmt.Fprintf(&out, " %q", tok.Text())
				continue
			}
			out.WriteByte('\n')
			dump(child.AsNode(), depth+1)
		}
		out.WriteByte(')')
	}
	dump(t.Root(), 0)
	return out.String()
}

// Node is a node in a [Tree].
//
// The zero value is a "nil" node.
type Node struct {
	tree *Tree
	ptr  arena.Pointer[rawNode]
}

// IsZero returns whether this is the nil node.
func (n Node) IsZero() bool {
	return n.tree == nil || n.ptr.Nil()
}

// Tree returns the tree this node belongs to.
func (n Node) Tree() *Tree {
	return n.tree
}

// Kind returns this node's kind.
func (n Node) Kind() Kind {
	if n.IsZero() {
		return 0
	}
	return n.raw().kind
}

// Span returns the source range covered by this node's tokens, not including
// leading or trailing trivia.
func (n Node) Span() Span {
	if n.IsZero() {
		return Span{}
	}
	return n.raw().span
}

// Text returns the source text of this node, not including leading or
// trailing trivia.
func (n Node) Text() string {
	span := n.Span()
	return n.tree.source[span.Start:span.End]
}

// Len returns the number of children of this node.
func (n Node) Len() int {
	if n.IsZero() {
		return 0
	}
	return len(n.raw().children)
}

// At returns the ith child of this node.
func (n Node) At(i int) Element {
	return n.wrap(n.raw().children[i])
}

// Children returns an iterator over the children of this node, in source
// order.
func (n Node) Children() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		if n.IsZero() {
			return
		}
		for _, child := range n.raw().children {
			if !yield(n.wrap(child)) {
				return
			}
		}
	}
}

// Nodes returns an iterator over the children of this node that are nodes.
func (n Node) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for child := range n.Children() {
			if child := child.AsNode(); !child.IsZero() && !yield(child) {
				return
			}
		}
	}
}

// Find returns the first child token of the given kind, or the zero token.
func (n Node) Find(kind Kind) Token {
	for child := range n.Children() {
		if tok := child.AsToken(); !tok.IsZero() && tok.Kind() == kind {
			return tok
		}
	}
	return Token{}
}

// FindNode returns the first child node of the given kind, or the zero node.
func (n Node) FindNode(kind Kind) Node {
	for child := range n.Nodes() {
		if child.Kind() == kind {
			return child
		}
	}
	return Node{}
}

// FirstToken returns the first token under this node, at any depth, or the
// zero token if there is none.
func (n Node) FirstToken() Token {
	for child := range n.Children() {
		if tok := child.AsToken(); !tok.IsZero() {
			return tok
		}
		if tok := child.AsNode().FirstToken(); !tok.IsZero() {
			return tok
		}
	}
	return Token{}
}

func (n Node) raw() *rawNode {
	return n.ptr.In(&n.tree.nodes)
}

func (n Node) wrap(child rawChild) Element {
	if child.token != 0 {
		return Element{token: Token{tree: n.tree, idx: child.token}}
	}
	return Element{node: Node{tree: n.tree, ptr: child.node}}
}

// Token is a token in a [Tree].
//
// The zero value is a "nil" token.
type Token struct {
	tree *Tree
	idx  int32
}

// IsZero returns whether this is the nil token.
func (t Token) IsZero() bool {
	return t.tree == nil || t.idx == 0
}

// Index returns this token's position among the tokens of its tree.
func (t Token) Index() int {
	return int(t.idx) - 1
}

// Kind returns this token's kind.
func (t Token) Kind() Kind {
	if t.IsZero() {
		return 0
	}
	return t.raw().kind
}

// Span returns this token's source range.
func (t Token) Span() Span {
	if t.IsZero() {
		return Span{}
	}
	return t.raw().span
}

// Text returns this token's source text.
func (t Token) Text() string {
	if t.IsZero() {
		return ""
	}
	span := t.Span()
	return t.tree.source[span.Start:span.End]
}

// Leading returns the trivia before this token: everything after the previous
// token's trailing trivia.
func (t Token) Leading() []Trivia {
	if t.IsZero() {
		return nil
	}
	return t.raw().leading
}

// Trailing returns the trivia after this token on the same line.
func (t Token) Trailing() []Trivia {
	if t.IsZero() {
		return nil
	}
	return t.raw().trailing
}

// Prev returns the token before this one, or the zero token.
func (t Token) Prev() Token {
	if t.idx <= 1 {
		return Token{}
	}
	return Token{tree: t.tree, idx: t.idx - 1}
}

// Next returns the token after this one, or the zero token.
func (t Token) Next() Token {
	if t.IsZero() || int(t.idx) >= len(t.tree.tokens) {
		return Token{}
	}
	return Token{tree: t.tree, idx: t.idx + 1}
}

func (t Token) raw() *rawToken {
	return &t.tree.tokens[t.idx-1]
}

// Element is a child of a [Node]: either a node or a token.
type Element struct {
	node  Node
	token Token
}

// AsNode returns this element as a node, or the zero node.
func (e Element) AsNode() Node {
	return e.node
}

// AsToken returns this element as a token, or the zero token.
func (e Element) AsToken() Token {
	return e.token
}

// Kind returns the kind of this element.
func (e Element) Kind() Kind {
	if !e.token.IsZero() {
		return e.token.Kind()
	}
	return e.node.Kind()
}

// Span returns the span of this element.
func (e Element) Span() Span {
	if !e.token.IsZero() {
		return e.token.Span()
	}
	return e.node.Span()
}
