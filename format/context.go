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
	"fmt"
	"iter"
	"strings"

	"go.uber.org/multierr"

	"github.com/bufbuild/docfmt/dom"
	"github.com/bufbuild/docfmt/syntax"
)

// Rule formats one kind of node.
type Rule interface {
	Format(ctx *Context, node syntax.Node) (dom.Doc, error)
}

// RuleFunc adapts a function into a [Rule].
type RuleFunc func(ctx *Context, node syntax.Node) (dom.Doc, error)

// Format implements [Rule].
func (f RuleFunc) Format(ctx *Context, node syntax.Node) (dom.Doc, error) {
	return f(ctx, node)
}

// Rules is a rule catalogue: it maps every node kind of a language to the
// rule that formats it.
//
// A catalogue must be total over the kinds its parser produces. Rule returns
// nil for a kind it does not know; the formatter reports this as an
// [InvariantViolation].
type Rules interface {
	Rule(kind syntax.Kind) Rule
}

// CheckRules verifies that a catalogue has a rule for every one of kinds.
//
// Catalogues are expected to call this from their tests.
func CheckRules(rules Rules, kinds iter.Seq[syntax.Kind]) error {
	var err error
	for kind := range kinds {
		if rules.Rule(kind) == nil {
			err = multierr.Append(err, Violationf(syntax.Span{}, "no rule for kind %d", kind))
		}
	}
	return err
}

// Context is passed to every rule. It carries the options and the comment
// table for the file being formatted.
//
// A Context is read-only, except for the group ID allocator, and is private to
// a single call to [Format].
type Context struct {
	file     *file
	trailing TrailingSeparator
}

// file is the state shared by all contexts derived from the same [Format]
// call.
type file struct {
	tree    *syntax.Tree
	rules   Rules
	options Options
	ids     dom.IDs

	comments []attachment
	printed  []bool // Tokens whose comments have been rendered.

	// The first token with comments that was printed more than once.
	duplicate syntax.Token
}

func newContext(tree *syntax.Tree, rules Rules, options Options) *Context {
	closers, _ := rules.(Closers)
	return &Context{
		file: &file{
			tree:     tree,
			rules:    rules,
			options:  options,
			comments: attach(tree, options.Comments, closers),
			printed:  make([]bool, tree.NumTokens()),
		},
		trailing: options.TrailingSeparator,
	}
}

// Options returns the options in effect for this context.
func (c *Context) Options() Options {
	options := c.file.options
	options.TrailingSeparator = c.trailing
	return options
}

// Tree returns the tree being formatted.
func (c *Context) Tree() *syntax.Tree {
	return c.file.tree
}

// WithTrailingSeparator returns a context that uses a different trailing
// separator policy. c is not modified.
func (c *Context) WithTrailingSeparator(policy TrailingSeparator) *Context {
	derived := *c
	derived.trailing = policy
	return &derived
}

// NewGroupID allocates a group ID that is unique within the file.
func (c *Context) NewGroupID() dom.GroupID {
	return c.file.ids.New()
}

// Format formats a node using the rule for its kind.
func (c *Context) Format(node syntax.Node) (dom.Doc, error) {
	if node.IsZero() {
		return dom.Doc{}, Violationf(syntax.Span{}, "formatting a nil node")
	}

	rule := c.file.rules.Rule(node.Kind())
	if rule == nil {
		return dom.Doc{}, Violationf(node.Span(), "no rule for kind %d", node.Kind())
	}

	doc, err := rule.Format(c, node)
	if err != nil {
		return dom.Doc{}, wrap(node.Span(), err)
	}

	if c.file.options.SourceMap {
		span := node.Span()
		doc = dom.Span(span.Start, span.End, doc)
	}
	return doc, nil
}

// Token renders a token with its attached comments.
func (c *Context) Token(tok syntax.Token) dom.Doc {
	return c.TokenWith(tok, dom.Text(tok.Text()))
}

// TokenAs renders a token's attached comments around replacement text.
func (c *Context) TokenAs(tok syntax.Token, text string) dom.Doc {
	return c.TokenWith(tok, dom.Text(text))
}

// TokenWith renders a token's attached comments around an arbitrary doc.
//
// This is used to replace a token with conditional content, such as a
// trailing separator, or to drop it while keeping its comments.
func (c *Context) TokenWith(tok syntax.Token, doc dom.Doc) dom.Doc {
	if tok.IsZero() {
		return doc
	}

	i := tok.Index()
	comments := c.file.comments[i]
	if comments.comments == 0 {
		c.file.printed[i] = true
		return doc
	}
	if c.file.printed[i] && c.file.duplicate.IsZero() {
		c.file.duplicate = tok
	}
	c.file.printed[i] = true
	return dom.List(comments.before, doc, comments.after)
}

// BlankLineBefore returns whether a blank line precedes tok (and any comments
// printed before it) in the source.
func (c *Context) BlankLineBefore(tok syntax.Token) bool {
	if tok.IsZero() {
		return false
	}
	return c.file.comments[tok.Index()].blank
}

// Expect returns the first child token of node with the given kind, or a
// [StructuralMismatch] error if there is none.
func (c *Context) Expect(node syntax.Node, kind syntax.Kind) (syntax.Token, error) {
	tok := node.Find(kind)
	if tok.IsZero() {
		return tok, Mismatchf(node.Span(), "expected token of kind %d in node of kind %d", kind, node.Kind())
	}
	return tok, nil
}

// ExpectNode is like [Context.Expect], but for a child node.
func (c *Context) ExpectNode(node syntax.Node, kind syntax.Kind) (syntax.Node, error) {
	child := node.FindNode(kind)
	if child.IsZero() {
		return child, Mismatchf(node.Span(), "expected node of kind %d in node of kind %d", kind, node.Kind())
	}
	return child, nil
}

// checkComments verifies that every token carrying comments was printed
// exactly once, so that each comment appears in the output exactly once.
func (f *file) checkComments() error {
	if tok := f.duplicate; !tok.IsZero() {
		return Violationf(tok.Span(), "%d comments attached to %q were printed more than once", f.comments[tok.Index()].comments, tok.Text())
	}
	for tok := range f.tree.Tokens() {
		i := tok.Index()
		if f.comments[i].comments > 0 && !f.printed[i] {
			return Violationf(tok.Span(), "%d comments attached to %q were never printed", f.comments[i].comments, tok.Text())
		}
	}
	return nil
}

// Quote normalizes the quotes of a string literal, including its quotes.
//
// The configured quote is used unless the contents contain more of it than
// of the other quote. Escapes of the quote that is no longer the delimiter
// are removed, and unescaped occurrences of the new delimiter are escaped.
func (c *Context) Quote(literal string) string {
	return quote(literal, c.file.options.QuoteStyle)
}

func quote(literal string, style QuoteStyle) string {
	if len(literal) < 2 || (literal[0] != '"' && literal[0] != '\'') || literal[len(literal)-1] != literal[0] {
		return literal
	}
	body := literal[1 : len(literal)-1]

	preferred, other := byte('"'), byte('\'')
	if style == QuoteSingle {
		preferred, other = other, preferred
	}
	if strings.Count(body, string(preferred)) > strings.Count(body, string(other)) {
		preferred, other = other, preferred
	}
	if literal[0] == preferred {
		return literal
	}

	var out strings.Builder
	out.Grow(len(literal) + 2)
	out.WriteByte(preferred)
	for i := 0; i < len(body); i++ {
		b := body[i]
		switch {
		case b == '\\' && i+1 < len(body):
			i++
			if body[i] != other {
				out.WriteByte('\\')
			}
			out.WriteByte(body[i])
		case b == preferred:
			out.WriteByte('\\')
			out.WriteByte(b)
		default:
			out.WriteByte(b)
		}
	}
	out.WriteByte(preferred)
	return out.String()
}

// String implements [fmt.Stringer].
func (c *Context) String() string {
	return fmt.Sprintf("format.Context{%s}", c.file.tree.Path())
}
