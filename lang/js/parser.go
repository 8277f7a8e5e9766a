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
	"fmt"

	"github.com/bufbuild/docfmt/syntax"
)

// Parse parses a JavaScript file.
//
// Parsing stops at the first error, which is always a [*SyntaxError].
func Parse(path, source string) (*syntax.Tree, error) {
	p := &parser{
		lex: lexer{path: path, src: source},
		b:   syntax.NewBuilder(path, source),
	}
	if err := p.program(); err != nil {
		return nil, err
	}
	return p.b.Tree()
}

type parser struct {
	lex lexer
	b   *syntax.Builder
	tok lexeme // The next token, not yet in the tree.
}

func (p *parser) program() error {
	leading, err := p.lex.trivia()
	if err != nil {
		return err
	}
	if p.tok, err = p.lex.token(modeJS); err != nil {
		return err
	}
	p.tok.leading = leading

	p.b.Start(syntax.Kind(Program))
	for p.tok.kind != EOF {
		if err := p.statement(); err != nil {
			return err
		}
	}
	if err := p.bump(EOF, modeJS); err != nil {
		return err
	}
	p.b.Finish()
	return nil
}

func (p *parser) statement() error {
	switch {
	case p.atWord("export"):
		return p.declaration(ExportDecl, ExportKw)
	case p.atWord("import"):
		return p.declaration(ImportDecl, ImportKw)
	}

	p.b.Start(syntax.Kind(ExprStmt))
	defer p.b.Finish()
	if err := p.expr(); err != nil {
		return err
	}
	return p.expect(Semi, modeJS)
}

// declaration parses an import or export declaration.
func (p *parser) declaration(kind, keyword Kind) error {
	p.b.Start(syntax.Kind(kind))
	defer p.b.Finish()

	if err := p.bump(keyword, modeJS); err != nil {
		return err
	}
	if err := p.expect(LBrace, modeJS); err != nil {
		return err
	}
	if err := p.specifiers(); err != nil {
		return err
	}
	if err := p.expect(RBrace, modeJS); err != nil {
		return err
	}

	if p.atWord("from") {
		if err := p.from(); err != nil {
			return err
		}
	} else if kind == ImportDecl {
		return p.errorf("expected 'from', found %s", p.describe())
	}
	return p.expect(Semi, modeJS)
}

func (p *parser) specifiers() error {
	p.b.Start(syntax.Kind(SpecifierList))
	defer p.b.Finish()

	for p.tok.kind == Ident {
		p.b.Start(syntax.Kind(Specifier))
		if err := p.bump(Ident, modeJS); err != nil {
			return err
		}
		if p.atWord("as") {
			if err := p.bump(AsKw, modeJS); err != nil {
				return err
			}
			if err := p.expect(Ident, modeJS); err != nil {
				return err
			}
		}
		p.b.Finish()

		if p.tok.kind != Comma {
			break
		}
		if err := p.bump(Comma, modeJS); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) from() error {
	p.b.Start(syntax.Kind(FromClause))
	defer p.b.Finish()

	if err := p.bump(FromKw, modeJS); err != nil {
		return err
	}
	if p.tok.kind != String {
		return p.errorf("expected a module specifier string, found %s", p.describe())
	}
	p.b.Start(syntax.Kind(StringExpr))
	defer p.b.Finish()
	return p.bump(String, modeJS)
}

func (p *parser) expr() error {
	switch p.tok.kind {
	case Ident:
		return p.leaf(IdentExpr, modeJS)
	case Number:
		return p.leaf(NumberExpr, modeJS)
	case String:
		return p.leaf(StringExpr, modeJS)
	case LBracket:
		return p.array()
	case LAngle:
		return p.element(modeJS)
	default:
		return p.errorf("expected an expression, found %s", p.describe())
	}
}

// leaf parses a node consisting of the next token alone.
func (p *parser) leaf(kind Kind, next mode) error {
	p.b.Start(syntax.Kind(kind))
	defer p.b.Finish()
	return p.bump(p.tok.kind, next)
}

func (p *parser) array() error {
	p.b.Start(syntax.Kind(ArrayExpr))
	defer p.b.Finish()

	if err := p.bump(LBracket, modeJS); err != nil {
		return err
	}

	p.b.Start(syntax.Kind(ElementList))
	for p.tok.kind != RBracket {
		if err := p.expr(); err != nil {
			return err
		}
		if p.tok.kind != Comma {
			break
		}
		if err := p.bump(Comma, modeJS); err != nil {
			return err
		}
	}
	p.b.Finish()

	return p.expect(RBracket, modeJS)
}

// element parses a JSX element. after is the mode for the token following
// the element, which depends on whether it is itself a JSX child.
func (p *parser) element(after mode) error {
	cp := p.b.Checkpoint()
	if err := p.bump(LAngle, modeTag); err != nil {
		return err
	}

	if p.tok.kind != Ident {
		return p.errorf("expected a JSX element name, found %s", p.describe())
	}
	name := p.text()
	nameSpan := p.tok.span
	if err := p.bump(Ident, modeTag); err != nil {
		return err
	}

	p.b.Start(syntax.Kind(JsxAttributeList))
	for p.tok.kind == Ident {
		if err := p.attribute(); err != nil {
			return err
		}
	}
	p.b.Finish()

	switch p.tok.kind {
	case SelfClose:
		p.b.StartAt(cp, syntax.Kind(JsxSelfClosing))
		defer p.b.Finish()
		return p.bump(SelfClose, after)
	case RAngle:
		p.b.StartAt(cp, syntax.Kind(JsxOpening))
		err := p.bump(RAngle, modeChild)
		p.b.Finish()
		if err != nil {
			return err
		}
	default:
		return p.errorf("expected a JSX attribute, found %s", p.describe())
	}

	p.b.StartAt(cp, syntax.Kind(JsxElement))
	defer p.b.Finish()

	if err := p.children(name, nameSpan); err != nil {
		return err
	}

	p.b.Start(syntax.Kind(JsxClosing))
	defer p.b.Finish()
	if err := p.bump(CloseTagStart, modeTag); err != nil {
		return err
	}
	if p.tok.kind != Ident || p.text() != name {
		return p.closingTagError(name, nameSpan)
	}
	if err := p.bump(Ident, modeTag); err != nil {
		return err
	}
	return p.expect(RAngle, after)
}

func (p *parser) children(name string, nameSpan syntax.Span) error {
	p.b.Start(syntax.Kind(JsxChildren))
	defer p.b.Finish()

	for {
		var err error
		switch p.tok.kind {
		case JsxText:
			err = p.bump(JsxText, modeChild)
		case LBrace:
			err = p.container(modeChild)
		case LAngle:
			err = p.element(modeChild)
		case CloseTagStart:
			return nil
		default:
			return p.closingTagError(name, nameSpan)
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) closingTagError(name string, nameSpan syntax.Span) error {
	return p.lex.errorf(p.tok.span, "expected corresponding JSX closing tag for '%s'", name).
		withNote(nameSpan, "opening tag")
}

func (p *parser) attribute() error {
	p.b.Start(syntax.Kind(JsxAttribute))
	defer p.b.Finish()

	if err := p.bump(Ident, modeTag); err != nil {
		return err
	}
	if p.tok.kind != Eq {
		return nil
	}
	if err := p.bump(Eq, modeTag); err != nil {
		return err
	}

	switch p.tok.kind {
	case String:
		return p.leaf(JsxString, modeTag)
	case LBrace:
		return p.container(modeTag)
	default:
		return p.errorf("expected a JSX attribute value, found %s", p.describe())
	}
}

// container parses an expression in braces, which may be empty.
func (p *parser) container(after mode) error {
	p.b.Start(syntax.Kind(JsxExprContainer))
	defer p.b.Finish()

	if err := p.bump(LBrace, modeJS); err != nil {
		return err
	}
	if p.tok.kind != RBrace {
		if err := p.expr(); err != nil {
			return err
		}
	}
	return p.expect(RBrace, after)
}

// bump adds the next token to the tree as the given kind, and lexes the token
// after it in the given mode.
//
// Trivia between the two is split per [syntax.SplitTrivia]; in modeChild,
// there is none.
func (p *parser) bump(kind Kind, next mode) error {
	tok := p.tok

	var trailing []syntax.Trivia
	var err error
	switch {
	case tok.kind == EOF:
	case next == modeChild:
		p.tok = p.lex.child()
	default:
		var between []syntax.Trivia
		if between, err = p.lex.trivia(); err != nil {
			break
		}
		var leading []syntax.Trivia
		trailing, leading = syntax.SplitTrivia(between)
		if p.tok, err = p.lex.token(next); err != nil {
			break
		}
		p.tok.leading = leading
	}

	p.b.Token(syntax.Kind(kind), tok.span, tok.leading, trailing)
	return err
}

// expect is like bump, but first checks that the next token has the given
// kind.
func (p *parser) expect(kind Kind, next mode) error {
	if p.tok.kind != kind {
		return p.errorf("expected %s, found %s", describeKind(kind), p.describe())
	}
	return p.bump(kind, next)
}

// atWord returns whether the next token is an identifier with the given text.
func (p *parser) atWord(word string) bool {
	return p.tok.kind == Ident && p.text() == word
}

func (p *parser) text() string {
	return p.lex.src[p.tok.span.Start:p.tok.span.End]
}

// describe describes the next token for use in diagnostics.
func (p *parser) describe() string {
	switch p.tok.kind {
	case EOF:
		return "end of file"
	case JsxText:
		return "JSX text"
	default:
		return fmt.Sprintf("'%s'", p.text())
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return p.lex.errorf(p.tok.span, format, args...)
}

func describeKind(kind Kind) string {
	switch kind {
	case Ident:
		return "an identifier"
	case RBrace:
		return "'}'"
	case LBrace:
		return "'{'"
	case RBracket:
		return "']'"
	case RAngle:
		return "'>'"
	case Semi:
		return "';'"
	default:
		return kind.String()
	}
}
