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

package js

import (
	"slices"
	"strings"
	"unicode"

	"github.com/bufbuild/docfmt/dom"
	"github.com/bufbuild/docfmt/format"
	"github.com/bufbuild/docfmt/syntax"
)

// Rules is the rule catalogue for the JavaScript subset accepted by [Parse].
var Rules format.Rules = rules{}

type rules struct{}

// Rule implements [format.Rules].
func (rules) Rule(kind syntax.Kind) format.Rule {
	var rule func(*format.Context, syntax.Node) (dom.Doc, error)
	switch Kind(kind) {
	case Program:
		rule = formatProgram
	case ExportDecl, ImportDecl:
		rule = formatDeclaration
	case SpecifierList, ElementList:
		rule = formatSeparated
	case Specifier:
		rule = formatSpecifier
	case FromClause:
		rule = formatFrom
	case ExprStmt:
		rule = formatExprStmt
	case IdentExpr, NumberExpr:
		rule = formatLeaf
	case StringExpr:
		rule = formatString
	case ArrayExpr:
		rule = formatArray
	case JsxElement:
		rule = formatJsxElement
	case JsxOpening:
		rule = formatJsxTag(RAngle)
	case JsxSelfClosing:
		rule = formatJsxTag(SelfClose)
	case JsxClosing:
		rule = formatJsxDelimited
	case JsxAttributeList:
		rule = formatJsxAttributes
	case JsxAttribute:
		rule = formatJsxAttribute
	case JsxString:
		rule = formatJsxString
	case JsxExprContainer:
		rule = formatJsxDelimited
	case JsxChildren:
		rule = formatJsxChildren

	case Invalid, EOF, Ident, Number, String, JsxText,
		ExportKw, ImportKw, FromKw, AsKw,
		LBrace, RBrace, LBracket, RBracket, Comma, Semi, Eq,
		LAngle, RAngle, SelfClose, CloseTagStart:
		return nil
	}
	if rule == nil {
		return nil
	}
	return format.RuleFunc(rule)
}

// IsCloser implements [format.Closers].
func (rules) IsCloser(kind syntax.Kind) bool {
	switch Kind(kind) {
	case RBrace, RBracket, RAngle, SelfClose:
		return true
	default:
		return false
	}
}

// fields looks up the children of a node, remembering the first child that
// was missing.
type fields struct {
	ctx  *format.Context
	node syntax.Node
	err  error
}

func (f *fields) token(kind Kind) syntax.Token {
	tok, err := f.ctx.Expect(f.node, syntax.Kind(kind))
	if f.err == nil {
		f.err = err
	}
	return tok
}

func (f *fields) child(kind Kind) syntax.Node {
	node, err := f.ctx.ExpectNode(f.node, syntax.Kind(kind))
	if f.err == nil {
		f.err = err
	}
	return node
}

// at returns the ith child, which must be a node.
func (f *fields) at(i int) syntax.Node {
	if i >= 0 && i < f.node.Len() {
		if node := f.node.At(i).AsNode(); !node.IsZero() {
			return node
		}
	}
	if f.err == nil {
		f.err = format.Mismatchf(f.node.Span(), "expected a node at child %d of %q", i, f.node.Text())
	}
	return syntax.Node{}
}

func (f *fields) format(node syntax.Node) dom.Doc {
	if f.err != nil {
		return dom.Doc{}
	}
	doc, err := f.ctx.Format(node)
	f.err = err
	return doc
}

func formatProgram(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	f := fields{ctx: ctx, node: node}
	eof := f.token(EOF)

	var statements []dom.Doc
	for stmt := range node.Nodes() {
		if len(statements) > 0 {
			if ctx.BlankLineBefore(stmt.FirstToken()) {
				statements = append(statements, format.EmptyLineBreak())
			} else {
				statements = append(statements, format.HardLineBreak())
			}
		}
		statements = append(statements, f.format(stmt))
	}
	if f.err != nil {
		return dom.Doc{}, f.err
	}

	return dom.List(
		dom.List(statements...),
		ctx.Token(eof),
		format.HardLineBreak(),
	), nil
}

// formatDeclaration formats both imports and exports.
func formatDeclaration(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	f := fields{ctx: ctx, node: node}
	keyword := ExportKw
	if Kind(node.Kind()) == ImportDecl {
		keyword = ImportKw
	}

	kw := f.token(keyword)
	lbrace, rbrace := f.token(LBrace), f.token(RBrace)
	list := f.child(SpecifierList)
	semi := f.token(Semi)

	specifiers := f.format(list)
	var from dom.Doc
	if clause := node.FindNode(syntax.Kind(FromClause)); !clause.IsZero() {
		from = dom.List(format.Space(), f.format(clause))
	} else if keyword == ImportKw {
		f.child(FromClause)
	}
	if f.err != nil {
		return dom.Doc{}, f.err
	}

	var braces dom.Doc
	if list.Len() == 0 {
		braces = dom.List(ctx.Token(lbrace), ctx.Token(rbrace))
	} else {
		braces = format.GroupElements(
			ctx.Token(lbrace),
			dom.If(dom.Flat, format.Space()),
			format.SoftBlockIndent(specifiers),
			dom.If(dom.Flat, format.Space()),
			ctx.Token(rbrace),
		)
	}

	return dom.List(ctx.Token(kw), format.Space(), braces, from, ctx.Token(semi)), nil
}

// formatSeparated formats comma-separated lists.
func formatSeparated(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	items, err := format.FormatSeparated(ctx, node,
		func() dom.Doc { return dom.Text(",") },
		ctx.Options().TrailingSeparator,
	)
	if err != nil {
		return dom.Doc{}, err
	}
	return format.Join(format.SoftLineBreakOrSpace(), items...), nil
}

func formatSpecifier(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	var names []syntax.Token
	for child := range node.Children() {
		if tok := child.AsToken(); tok.Kind() == syntax.Kind(Ident) {
			names = append(names, tok)
		}
	}

	as := node.Find(syntax.Kind(AsKw))
	switch {
	case len(names) == 1 && as.IsZero():
		return ctx.Token(names[0]), nil
	case len(names) == 2 && !as.IsZero():
		return dom.List(
			ctx.Token(names[0]),
			format.Space(),
			ctx.Token(as),
			format.Space(),
			ctx.Token(names[1]),
		), nil
	default:
		return dom.Doc{}, format.Mismatchf(node.Span(), "malformed specifier %q", node.Text())
	}
}

func formatFrom(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	f := fields{ctx: ctx, node: node}
	from := f.token(FromKw)
	source := f.format(f.child(StringExpr))
	return dom.List(ctx.Token(from), format.Space(), source), f.err
}

func formatExprStmt(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	f := fields{ctx: ctx, node: node}
	semi := f.token(Semi)
	expr := f.format(f.at(0))
	return dom.List(expr, ctx.Token(semi)), f.err
}

// formatLeaf prints every child of node in order, with no whitespace between
// them.
func formatLeaf(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	docs, err := format.FormatList(ctx, node)
	return dom.List(docs...), err
}

func formatString(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	tok, err := ctx.Expect(node, syntax.Kind(String))
	return ctx.TokenAs(tok, ctx.Quote(tok.Text())), err
}

func formatArray(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	f := fields{ctx: ctx, node: node}
	lbracket, rbracket := f.token(LBracket), f.token(RBracket)
	list := f.child(ElementList)
	elements := f.format(list)
	if f.err != nil {
		return dom.Doc{}, f.err
	}

	if list.Len() == 0 {
		return dom.List(ctx.Token(lbracket), ctx.Token(rbracket)), nil
	}
	return format.GroupElements(
		ctx.Token(lbracket),
		format.SoftBlockIndent(elements),
		ctx.Token(rbracket),
	), nil
}

func formatJsxElement(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	f := fields{ctx: ctx, node: node}
	opening := f.format(f.child(JsxOpening))
	children := f.child(JsxChildren)
	content := f.format(children)
	closing := f.format(f.child(JsxClosing))
	if f.err != nil {
		return dom.Doc{}, f.err
	}

	if !hasJsxContent(children) {
		return dom.List(opening, content, closing), nil
	}
	return format.GroupElements(opening, format.SoftBlockIndent(content), closing), nil
}

// formatJsxTag returns a rule for an opening tag or a self-closing element,
// which differ only in how they end.
//
// Text after the end of a tag is JSX text, so a trailing line comment inside
// the tag must be printed before the tag ends.
func formatJsxTag(end Kind) format.RuleFunc {
	return func(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
		f := fields{ctx: ctx, node: node}
		langle, name, closer := f.token(LAngle), f.token(Ident), f.token(end)
		list := f.child(JsxAttributeList)
		attributes := f.format(list)
		if f.err != nil {
			return dom.Doc{}, f.err
		}

		if list.Len() == 0 {
			var space dom.Doc
			if end == SelfClose {
				space = format.Space()
			}
			return dom.List(
				ctx.Token(langle),
				ctx.Token(name),
				space,
				dom.LineSuffixBoundary(),
				ctx.Token(closer),
			), nil
		}

		last := format.SoftLineBreak()
		if end == SelfClose {
			last = format.SoftLineBreakOrSpace()
		}
		return format.GroupElements(
			ctx.Token(langle),
			ctx.Token(name),
			dom.Indent(format.SoftLineBreakOrSpace(), attributes),
			last,
			dom.LineSuffixBoundary(),
			ctx.Token(closer),
		), nil
	}
}

func formatJsxAttributes(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	attributes, err := format.FormatList(ctx, node)
	return format.Join(format.SoftLineBreakOrSpace(), attributes...), err
}

func formatJsxAttribute(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	f := fields{ctx: ctx, node: node}
	name := f.token(Ident)
	if f.err != nil {
		return dom.Doc{}, f.err
	}

	eq := node.Find(syntax.Kind(Eq))
	if eq.IsZero() {
		return ctx.Token(name), nil
	}

	value := f.format(f.at(node.Len() - 1))
	return dom.List(ctx.Token(name), ctx.Token(eq), value), f.err
}

func formatJsxString(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	tok, err := ctx.Expect(node, syntax.Kind(String))
	return ctx.TokenAs(tok, jsxQuote(tok.Text())), err
}

// jsxQuote prefers double quotes for a JSX attribute string. JSX strings have
// no escapes, so a string containing a double quote must keep single quotes.
func jsxQuote(literal string) string {
	if len(literal) < 2 || literal[0] != '\'' {
		return literal
	}
	body := literal[1 : len(literal)-1]
	if strings.Contains(body, `"`) {
		return literal
	}
	return `"` + body + `"`
}

// formatJsxDelimited formats a closing tag or an expression container: its
// children in order, with nothing between them, and any pending trailing
// comment printed before the last token.
func formatJsxDelimited(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	docs, err := format.FormatList(ctx, node)
	if err != nil || len(docs) == 0 {
		return dom.List(docs...), err
	}
	last := len(docs) - 1
	return dom.List(dom.List(docs[:last]...), dom.LineSuffixBoundary(), docs[last]), nil
}

// jsxGap is the whitespace between two children of an element.
type jsxGap int

const (
	gapNone    jsxGap = iota // The children touch.
	gapNewline               // Whitespace spanning lines; only a space between words.
	gapSpace                 // Whitespace on one line, or an explicit {" "}.
)

// jsxChild is a word of text, or any other child of an element.
type jsxChild struct {
	doc  dom.Doc
	word bool
	gap  jsxGap // The whitespace before this child.
}

// formatJsxChildren packs the children of an element with [dom.FillParts].
//
// Every word of text is a separate item. Children that touch in the source
// are glued into one item. Whitespace follows the JSX rules: it is dropped if
// it spans lines and does not sit between two words, and is otherwise a single
// space, which is printed as {" "} where the line breaks.
func formatJsxChildren(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	var children []jsxChild
	gap := gapNone
	for child := range node.Children() {
		if elem := child.AsNode(); !elem.IsZero() {
			if isJsxSpace(elem) {
				gap = gapSpace
				continue
			}
			doc, err := ctx.Format(elem)
			if err != nil {
				return dom.Doc{}, err
			}
			children = append(children, jsxChild{doc: doc, gap: gap})
			gap = gapNone
			continue
		}

		tok := child.AsToken()
		if Kind(tok.Kind()) != JsxText {
			return dom.Doc{}, format.Mismatchf(tok.Span(), "unexpected %q among JSX children", tok.Text())
		}
		for text := tok.Text(); text != ""; {
			word := strings.TrimLeftFunc(text, unicode.IsSpace)
			if space := text[:len(text)-len(word)]; space != "" {
				gap = max(gap, whitespaceGap(space))
			}
			if word == "" {
				break
			}
			end := strings.IndexFunc(word, unicode.IsSpace)
			if end < 0 {
				end = len(word)
			}
			children = append(children, jsxChild{doc: dom.Text(word[:end]), word: true, gap: gap})
			gap = gapNone
			text = word[end:]
		}
	}

	if len(children) == 0 {
		if gap == gapSpace {
			return jsxSpace(), nil
		}
		return dom.Doc{}, nil
	}

	var lead, trail dom.Doc
	if children[0].gap == gapSpace {
		lead = jsxSpace()
	}
	if gap == gapSpace {
		trail = jsxSpace()
	}

	parts := make([]dom.Doc, 0, 2*len(children))
	var item []dom.Doc
	for i, child := range children {
		if i > 0 && child.gap != gapNone {
			parts = append(parts, dom.List(item...), jsxSeparator(children[i-1], child))
			item = nil
		}
		item = append(item, child.doc)
	}
	parts = append(parts, dom.List(item...))

	return dom.List(lead, dom.FillParts(parts...), trail), nil
}

// jsxSeparator returns the separator between two children that do not touch.
func jsxSeparator(prev, next jsxChild) dom.Doc {
	switch {
	case prev.word && next.word:
		return format.SoftLineBreakOrSpace()
	case next.gap == gapNewline:
		return format.SoftLineBreak()
	default:
		return dom.List(dom.If(dom.Broken, dom.Text(jsxSpaceText)), format.SoftLineBreakOrSpace())
	}
}

const jsxSpaceText = `{" "}`

// jsxSpace is a significant space at the start or end of an element's
// children. It must be spelled {" "} next to a line break.
func jsxSpace() dom.Doc {
	return dom.List(
		dom.If(dom.Flat, dom.Text(" ")),
		dom.If(dom.Broken, dom.Text(jsxSpaceText)),
	)
}

// isJsxSpace returns whether node is an expression container holding nothing
// but a string with a single space, and no comments.
func isJsxSpace(node syntax.Node) bool {
	if Kind(node.Kind()) != JsxExprContainer || node.Len() != 3 {
		return false
	}
	str := node.At(1).AsNode()
	if Kind(str.Kind()) != StringExpr || (str.Text() != `" "` && str.Text() != `' '`) {
		return false
	}
	for child := range node.Children() {
		tok := child.AsToken()
		if tok.IsZero() {
			tok = child.AsNode().FirstToken()
		}
		for _, t := range slices.Concat(tok.Leading(), tok.Trailing()) {
			if t.Kind.IsComment() {
				return false
			}
		}
	}
	return true
}

func whitespaceGap(space string) jsxGap {
	if strings.Contains(space, "\n") {
		return gapNewline
	}
	return gapSpace
}

// hasJsxContent returns whether children contains anything that survives
// JSX whitespace rules.
func hasJsxContent(children syntax.Node) bool {
	for child := range children.Children() {
		if !child.AsNode().IsZero() {
			return true
		}
		text := child.AsToken().Text()
		if strings.TrimSpace(text) != "" || !strings.Contains(text, "\n") {
			return true
		}
	}
	return false
}
