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

package format_test

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bufbuild/docfmt/dom"
	"github.com/bufbuild/docfmt/format"
	"github.com/bufbuild/docfmt/syntax"
)

// A toy language for exercising the formatter: a comma-separated list of
// identifiers and bracketed lists, with C-style comments.
//
//	File  = Items EOF
//	Items = [ Item { "," Item } [ "," ] ]
//	Item  = Ident | "[" Items "]"

const (
	kindFile syntax.Kind = iota + 1
	kindItems
	kindIdent
	kindArray

	tokIdent
	tokComma
	tokOpen
	tokClose
	tokEOF
)

var kinds = []syntax.Kind{kindFile, kindItems, kindIdent, kindArray}

type lexeme struct {
	kind    syntax.Kind
	span    syntax.Span
	leading []syntax.Trivia // All trivia before the token.
}

func lex(src string) ([]lexeme, error) {
	var out []lexeme
	var trivia []syntax.Trivia
	for i := 0; i < len(src); {
		start := i
		add := func(kind syntax.TriviaKind) {
			trivia = append(trivia, syntax.Trivia{Kind: kind, Text: src[start:i], Span: syntax.Span{Start: start, End: i}})
		}
		tok := func(kind syntax.Kind) {
			out = append(out, lexeme{kind: kind, span: syntax.Span{Start: start, End: i}, leading: trivia})
			trivia = nil
		}

		switch c := src[i]; {
		case c == '\n':
			i++
			add(syntax.Newline)
		case c == ' ' || c == '\t' || c == '\r':
			for i < len(src) && strings.ContainsRune(" \t\r", rune(src[i])) {
				i++
			}
			add(syntax.Whitespace)
		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}
			i += end
			add(syntax.LineComment)
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated comment at %d", i)
			}
			i += end + 2
			add(syntax.BlockComment)
		case c == ',':
			i++
			tok(tokComma)
		case c == '[':
			i++
			tok(tokOpen)
		case c == ']':
			i++
			tok(tokClose)
		case unicode.IsLetter(rune(c)):
			for i < len(src) && unicode.IsLetter(rune(src[i])) {
				i++
			}
			tok(tokIdent)
		default:
			return nil, fmt.Errorf("unexpected %q at %d", c, i)
		}
	}
	out = append(out, lexeme{kind: tokEOF, span: syntax.Span{Start: len(src), End: len(src)}, leading: trivia})
	return out, nil
}

type parser struct {
	b      *syntax.Builder
	tokens []lexeme
	pos    int
}

func parse(src string) (*syntax.Tree, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{b: syntax.NewBuilder("test.toy", src), tokens: tokens}

	p.b.Start(kindFile)
	if err := p.items(); err != nil {
		return nil, err
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	p.b.Finish()
	return p.b.Tree()
}

func (p *parser) peek() syntax.Kind {
	return p.tokens[p.pos].kind
}

func (p *parser) expect(kind syntax.Kind) error {
	tok := p.tokens[p.pos]
	if tok.kind != kind {
		return fmt.Errorf("expected token %d at %v, got %d", kind, tok.span, tok.kind)
	}

	// Trivia between two tokens is split at the first newline.
	var leading, trailing []syntax.Trivia
	if p.pos == 0 {
		leading = tok.leading
	} else {
		_, leading = syntax.SplitTrivia(tok.leading)
	}
	if p.pos+1 < len(p.tokens) {
		trailing, _ = syntax.SplitTrivia(p.tokens[p.pos+1].leading)
	}

	p.b.Token(kind, tok.span, leading, trailing)
	p.pos++
	return nil
}

func (p *parser) items() error {
	p.b.Start(kindItems)
	defer p.b.Finish()
	for {
		switch p.peek() {
		case tokIdent:
			p.b.Start(kindIdent)
			_ = p.expect(tokIdent)
			p.b.Finish()
		case tokOpen:
			p.b.Start(kindArray)
			_ = p.expect(tokOpen)
			if err := p.items(); err != nil {
				return err
			}
			if err := p.expect(tokClose); err != nil {
				return err
			}
			p.b.Finish()
		default:
			return nil
		}

		if p.peek() != tokComma {
			return nil
		}
		_ = p.expect(tokComma)
	}
}

// rules is the toy language's rule catalogue.
type rules struct{}

func (rules) Rule(kind syntax.Kind) format.Rule {
	switch kind {
	case kindFile:
		return format.RuleFunc(formatFile)
	case kindItems:
		return format.RuleFunc(formatItems)
	case kindIdent:
		return format.RuleFunc(func(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
			ident, err := ctx.Expect(node, tokIdent)
			return ctx.Token(ident), err
		})
	case kindArray:
		return format.RuleFunc(formatArray)
	default:
		return nil
	}
}

func (rules) IsCloser(kind syntax.Kind) bool {
	return kind == tokClose
}

func formatFile(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	items, err := ctx.ExpectNode(node, kindItems)
	if err != nil {
		return dom.Doc{}, err
	}
	eof, err := ctx.Expect(node, tokEOF)
	if err != nil {
		return dom.Doc{}, err
	}

	list, err := ctx.Format(items)
	if err != nil {
		return dom.Doc{}, err
	}
	return dom.List(format.GroupElements(list), ctx.Token(eof), format.HardLineBreak()), nil
}

func formatItems(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	items, err := format.FormatSeparated(ctx, node,
		func() dom.Doc { return dom.Text(",") },
		ctx.Options().TrailingSeparator,
	)
	if err != nil {
		return dom.Doc{}, err
	}
	return format.Join(format.SoftLineBreakOrSpace(), items...), nil
}

func formatArray(ctx *format.Context, node syntax.Node) (dom.Doc, error) {
	open, err := ctx.Expect(node, tokOpen)
	if err != nil {
		return dom.Doc{}, err
	}
	closer, err := ctx.Expect(node, tokClose)
	if err != nil {
		return dom.Doc{}, err
	}
	items, err := ctx.ExpectNode(node, kindItems)
	if err != nil {
		return dom.Doc{}, err
	}

	list, err := ctx.Format(items)
	if err != nil {
		return dom.Doc{}, err
	}
	return format.GroupElements(
		ctx.Token(open),
		format.SoftBlockIndent(list),
		ctx.Token(closer),
	), nil
}
