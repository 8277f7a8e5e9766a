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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bufbuild/docfmt/syntax"
)

// mode selects how the lexer interprets the text after a token.
type mode int

const (
	// Ordinary JavaScript.
	modeJS mode = iota
	// Inside of a JSX tag: identifiers may contain dashes, and strings have
	// no escapes.
	modeTag
	// Between JSX tags: everything other than a tag or an expression
	// container is text, including whitespace and comment-like text.
	modeChild
)

// lexeme is a token that the parser has not yet added to the tree.
type lexeme struct {
	kind    Kind
	span    syntax.Span
	leading []syntax.Trivia
}

// lexer produces one token at a time, in whichever mode the parser asks for.
type lexer struct {
	path, src string
	cursor    int
}

// rest returns the remaining unlexed text.
func (l *lexer) rest() string {
	return l.src[l.cursor:]
}

// done returns whether or not we're done lexing runes.
func (l *lexer) done() bool {
	return l.cursor >= len(l.src)
}

// peek peeks the next character.
//
// Returns -1 if l.done().
func (l *lexer) peek() rune {
	r, n := utf8.DecodeRuneInString(l.rest())
	if n == 0 {
		return -1
	}
	return r
}

// takeWhile consumes the characters while they match the given function.
// Returns consumed characters.
func (l *lexer) takeWhile(f func(rune) bool) string {
	start := l.cursor
	for !l.done() {
		r, n := utf8.DecodeRuneInString(l.rest())
		if !f(r) {
			break
		}
		l.cursor += n
	}
	return l.src[start:l.cursor]
}

func (l *lexer) errorf(span syntax.Span, format string, args ...any) *SyntaxError {
	return newSyntaxError(l.path, l.src, span, format, args...)
}

// trivia consumes whitespace and comments.
func (l *lexer) trivia() ([]syntax.Trivia, error) {
	var out []syntax.Trivia
	for !l.done() {
		start := l.cursor
		rest := l.rest()

		var kind syntax.TriviaKind
		switch {
		case strings.HasPrefix(rest, "\r\n"):
			l.cursor += 2
			kind = syntax.Newline
		case rest[0] == '\n':
			l.cursor++
			kind = syntax.Newline
		case isSpace(l.peek()):
			l.takeWhile(func(r rune) bool {
				return isSpace(r) && !strings.HasPrefix(l.rest(), "\r\n")
			})
			kind = syntax.Whitespace
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			l.cursor += len(strings.TrimSuffix(rest[:end], "\r"))
			kind = syntax.LineComment
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return nil, l.errorf(syntax.Span{Start: start, End: start + 2}, "unterminated block comment")
			}
			l.cursor += end + 4
			kind = syntax.BlockComment
		default:
			return out, nil
		}

		out = append(out, syntax.Trivia{
			Kind: kind,
			Text: l.src[start:l.cursor],
			Span: syntax.Span{Start: start, End: l.cursor},
		})
	}
	return out, nil
}

var punctuation = map[byte]Kind{
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semi,
	'=': Eq,
	'<': LAngle,
	'>': RAngle,
}

// token lexes a single token after trivia() has been called.
func (l *lexer) token(m mode) (lexeme, error) {
	start := l.cursor
	tok := func(kind Kind) (lexeme, error) {
		return lexeme{kind: kind, span: syntax.Span{Start: start, End: l.cursor}}, nil
	}
	if l.done() {
		return tok(EOF)
	}

	c := l.src[l.cursor]
	if kind, ok := punctuation[c]; ok {
		l.cursor++
		return tok(kind)
	}

	r := l.peek()
	switch {
	case strings.HasPrefix(l.rest(), "/>"):
		l.cursor += 2
		return tok(SelfClose)
	case c == '"' || c == '\'':
		if err := l.string(m == modeTag); err != nil {
			return lexeme{}, err
		}
		return tok(String)
	case '0' <= c && c <= '9':
		l.takeWhile(isDigit)
		if strings.HasPrefix(l.rest(), ".") {
			l.cursor++
			l.takeWhile(isDigit)
		}
		return tok(Number)
	case isIdentStart(r):
		l.takeWhile(func(r rune) bool {
			return isIdentStart(r) || unicode.IsDigit(r) || (m == modeTag && r == '-')
		})
		return tok(Ident)
	default:
		_, n := utf8.DecodeRuneInString(l.rest())
		return lexeme{}, l.errorf(syntax.Span{Start: start, End: start + n}, "unexpected character %q", r)
	}
}

// string consumes a string literal, including its quotes.
func (l *lexer) string(raw bool) error {
	start := l.cursor
	quote := l.src[start]
	l.cursor++
	for !l.done() {
		switch c := l.src[l.cursor]; {
		case c == quote:
			l.cursor++
			return nil
		case c == '\\' && !raw:
			l.cursor += min(2, len(l.src)-l.cursor)
		case c == '\n' && !raw:
			return l.errorf(syntax.Span{Start: start, End: l.cursor}, "unterminated string literal")
		default:
			l.cursor++
		}
	}
	return l.errorf(syntax.Span{Start: start, End: l.cursor}, "unterminated string literal")
}

// child lexes a single token between JSX tags. There is no trivia in this
// mode: whitespace belongs to the text.
func (l *lexer) child() lexeme {
	start := l.cursor
	switch {
	case l.done():
		return lexeme{kind: EOF, span: syntax.Span{Start: start, End: start}}
	case strings.HasPrefix(l.rest(), "</"):
		l.cursor += 2
		return lexeme{kind: CloseTagStart, span: syntax.Span{Start: start, End: l.cursor}}
	case l.src[start] == '<':
		l.cursor++
		return lexeme{kind: LAngle, span: syntax.Span{Start: start, End: l.cursor}}
	case l.src[start] == '{':
		l.cursor++
		return lexeme{kind: LBrace, span: syntax.Span{Start: start, End: l.cursor}}
	}

	l.takeWhile(func(r rune) bool { return r != '<' && r != '{' })
	return lexeme{kind: JsxText, span: syntax.Span{Start: start, End: l.cursor}}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f' || r == '\uFEFF'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}
