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

package js_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/docfmt/format"
	"github.com/bufbuild/docfmt/internal/golden"
	"github.com/bufbuild/docfmt/lang/js"
	"github.com/bufbuild/docfmt/syntax"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata",
		Extensions: []string{"yaml"},
		Outputs: []golden.Output{
			{Extension: "txt"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		var testCase struct {
			Source  string         `yaml:"source"`
			Options format.Options `yaml:"options"`
		}
		if err := yaml.Unmarshal([]byte(text), &testCase); err != nil {
			t.Fatalf("failed to parse test case %q: %v", path, err)
		}

		out, err := js.Format(path, testCase.Source, testCase.Options)
		if err != nil {
			outputs[0] = fmt.Sprintf("error: %v\n", err)
			return
		}
		outputs[0] = out

		again, err := js.Format(path, out, testCase.Options)
		require.NoError(t, err)
		assert.Equal(t, out, again, "formatting is not idempotent")
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		options format.Options
		want    string
	}{
		{
			name: "flat",
			src:  "export {a,b,c};",
			want: "export { a, b, c };\n",
		},
		{
			name:    "broken",
			src:     "export {a,b,c};",
			options: format.Options{PrintWidth: 3},
			want:    "export {\n  a,\n  b,\n  c,\n};\n",
		},
		{
			name: "empty",
			src:  "",
			want: "",
		},
		{
			name: "empty-list",
			src:  "export {  } ;",
			want: "export {};\n",
		},
		{
			name: "trailing-comment",
			src:  "export { a, b // c\n};",
			want: "export { a, b }; // c\n",
		},
		{
			name:    "always",
			src:     "export { a, b };",
			options: format.Options{TrailingSeparator: format.TrailingAlways},
			want:    "export { a, b, };\n",
		},
		{
			name:    "never",
			src:     "export { a, b, };",
			options: format.Options{PrintWidth: 3, TrailingSeparator: format.TrailingNever},
			want:    "export {\n  a,\n  b\n};\n",
		},
		{
			name: "double-quotes",
			src:  `import { a as b } from 'x';`,
			want: "import { a as b } from \"x\";\n",
		},
		{
			name:    "single-quotes",
			src:     `import { a as b } from "x";`,
			options: format.Options{QuoteStyle: format.QuoteSingle},
			want:    "import { a as b } from 'x';\n",
		},
		{
			name:    "jsx-keeps-double-quotes",
			src:     `<a b="c" d='e' f='"' />;`,
			options: format.Options{QuoteStyle: format.QuoteSingle},
			want:    "<a b=\"c\" d=\"e\" f='\"' />;\n",
		},
		{
			name: "blank-lines",
			src:  "a;\n\n\n\nb;\nc;",
			want: "a;\n\nb;\nc;\n",
		},
		{
			name: "eof-comment",
			src:  "a;\n// end\n",
			want: "a;\n// end\n",
		},
		{
			name: "whitespace-children",
			src:  "<a>\n  </a>;",
			want: "<a></a>;\n",
		},
		{
			name: "jsx-comment-in-tag",
			src:  "<div a // c\n>hello world</div>;",
			want: "<div\n  a // c\n>\n  hello world\n</div>;\n",
		},
		{
			name: "jsx-comment-after-name",
			src:  "<div // c\n>x</div>;",
			want: "<div // c\n>\n  x\n</div>;\n",
		},
		{
			name: "jsx-own-line-comment-before-close",
			src:  "<div\n  a\n  // c\n>x</div>;",
			want: "<div\n  a\n  // c\n>\n  x\n</div>;\n",
		},
		{
			name: "jsx-edge-spaces",
			src:  "<div> a </div>;",
			want: "<div> a </div>;\n",
		},
		{
			name:    "jsx-edge-spaces-broken",
			src:     "<div> aaaa </div>;",
			options: format.Options{PrintWidth: 8},
			want:    "<div>\n  {\" \"}aaaa{\" \"}\n</div>;\n",
		},
		{
			name: "jsx-only-space",
			src:  "<a> </a>;",
			want: "<a> </a>;\n",
		},
		{
			name: "jsx-lines-between-elements",
			src:  "<a>\n  <b />\n  <c />\n</a>;",
			want: "<a><b /><c /></a>;\n",
		},
		{
			name: "jsx-space-between-elements",
			src:  "<a><b /> <c /></a>;",
			want: "<a><b /> <c /></a>;\n",
		},
		{
			name:    "jsx-space-between-elements-broken",
			src:     "<a><b /> <c /></a>;",
			options: format.Options{PrintWidth: 10},
			want:    "<a>\n  <b />{\" \"}\n  <c />\n</a>;\n",
		},
		{
			name: "own-line-comment-before-bracket",
			src:  "[a\n// own after a\n];",
			want: "[\n  a,\n  // own after a\n];\n",
		},
		{
			name:    "tabs",
			src:     "[a, b];",
			options: format.Options{PrintWidth: 3, IndentStyle: format.IndentTab},
			want:    "[\n\ta,\n\tb,\n];\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := js.Format("test.js", tt.src, tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := js.Format("test.js", got, tt.options)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

// TestCommentsRoundTrip checks that every comment in the input is printed
// exactly once, however the output is wrapped.
func TestCommentsRoundTrip(t *testing.T) {
	t.Parallel()

	sources := []string{
		"// a\nexport { x, /* b */ y }; // c\n",
		"export {\n  // a\n  x,\n\n  // b\n  y, // c\n  /* d */ z\n  // e\n};\n",
		"[ /* a */ 1, // b\n 2 /* c */ ];\n// d\n\n// e\n",
		"<a // a\n  b={/* b */ c} /* c */>text {/* d */}</a>;",
	}
	placements := map[string]format.CommentPlacement{
		"proximity": format.ProximityPlacement{},
		"following": format.FollowingPlacement{},
	}

	for i, src := range sources {
		tree, err := js.Parse("test.js", src)
		require.NoError(t, err)

		var comments []string
		for tok := range tree.Tokens() {
			for _, trivia := range slices.Concat(tok.Leading(), tok.Trailing()) {
				if trivia.Kind.IsComment() {
					comments = append(comments, trivia.Text)
				}
			}
		}
		require.NotEmpty(t, comments)

		for name, placement := range placements {
			for _, width := range []uint{1, 20, 80} {
				t.Run(fmt.Sprintf("%d/%s/%d", i, name, width), func(t *testing.T) {
					t.Parallel()

					options := format.Options{PrintWidth: width, Comments: placement}
					out, err := format.Format(tree, js.Rules, options)
					require.NoError(t, err)
					for _, comment := range comments {
						assert.Equal(t, 1, strings.Count(out.Text, comment), "%q in %q", comment, out.Text)
					}
				})
			}
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tree, err := js.Parse("test.js", `<a b="x">hi</a>;`)
	require.NoError(t, err)
	assert.Equal(t, `(Program
  (ExprStmt
    (JsxElement
      (JsxOpening "<" "a"
        (JsxAttributeList
          (JsxAttribute "b" "="
            (JsxString "\"x\""))) ">")
      (JsxChildren "hi")
      (JsxClosing "</" "a" ">")) ";") "")`, tree.Dump(js.KindName))

	tree, err = js.Parse("test.js", "export { a } // x\n// y\n;")
	require.NoError(t, err)
	var semi syntax.Token
	for tok := range tree.Tokens() {
		if js.Kind(tok.Kind()) == js.Semi {
			semi = tok
		}
	}
	require.False(t, semi.IsZero())
	rbrace := semi.Prev()
	assert.Equal(t, "}", rbrace.Text())
	assert.Empty(t, cmp.Diff([]syntax.Trivia{
		{Kind: syntax.Whitespace, Text: " ", Span: syntax.Span{Start: 12, End: 13}},
		{Kind: syntax.LineComment, Text: "// x", Span: syntax.Span{Start: 13, End: 17}},
	}, rbrace.Trailing()))
	assert.Empty(t, cmp.Diff([]syntax.Trivia{
		{Kind: syntax.Newline, Text: "\n", Span: syntax.Span{Start: 17, End: 18}},
		{Kind: syntax.LineComment, Text: "// y", Span: syntax.Span{Start: 18, End: 22}},
		{Kind: syntax.Newline, Text: "\n", Span: syntax.Span{Start: 22, End: 23}},
	}, semi.Leading()))
}

func TestSyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src, want string
	}{
		{src: "<a></b>;", want: "test.js:1:6: expected corresponding JSX closing tag for 'a'"},
		{src: "<a>\ntext", want: "test.js:2:5: expected corresponding JSX closing tag for 'a'"},
		{src: "export { a }", want: "test.js:1:13: expected ';', found end of file"},
		{src: "import { a };", want: "test.js:1:13: expected 'from', found ';'"},
		{src: "import { a } from b;", want: "test.js:1:19: expected a module specifier string, found 'b'"},
		{src: `"abc`, want: "test.js:1:1: unterminated string literal"},
		{src: "a; @", want: "test.js:1:4: unexpected character '@'"},
		{src: "<a b=>", want: "test.js:1:6: expected a JSX attribute value, found '>'"},
		{src: `<a "b">`, want: `test.js:1:4: expected a JSX attribute, found '"b"'`},
		{src: "[a b];", want: "test.js:1:4: expected ']', found 'b'"},
		{src: "a; /* b", want: "test.js:1:4: unterminated block comment"},
		{src: ";", want: "test.js:1:1: expected an expression, found ';'"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			_, err := js.Parse("test.js", tt.src)
			var syntaxErr *js.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.want, err.Error())
		})
	}

	_, err := js.Parse("test.js", "<a></b>;")
	var syntaxErr *js.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, []js.Note{{Span: syntax.Span{Start: 1, End: 2}, Message: "opening tag"}}, syntaxErr.Notes)
}

func TestRules(t *testing.T) {
	t.Parallel()

	require.NoError(t, format.CheckRules(js.Rules, js.NodeKinds()))
	for kind := range js.Kinds() {
		if !kind.IsNode() {
			assert.Nil(t, js.Rules.Rule(syntax.Kind(kind)), "%v", kind)
		}
	}
	assert.Nil(t, js.Rules.Rule(syntax.Kind(js.NumKinds)))

	closers, ok := js.Rules.(format.Closers)
	require.True(t, ok)
	assert.True(t, closers.IsCloser(syntax.Kind(js.RBracket)))
	assert.True(t, closers.IsCloser(syntax.Kind(js.SelfClose)))
	assert.False(t, closers.IsCloser(syntax.Kind(js.Semi)))
}

func TestSourceMap(t *testing.T) {
	t.Parallel()

	src := "export {alpha};"
	tree, err := js.Parse("test.js", src)
	require.NoError(t, err)

	out, err := format.Format(tree, js.Rules, format.Options{SourceMap: true})
	require.NoError(t, err)
	require.Equal(t, "export { alpha };\n", out.Text)

	mapping, ok := out.SourceMap.Lookup(strings.Index(out.Text, "alpha"))
	require.True(t, ok)
	assert.Equal(t, "alpha", src[mapping.Input.Start:mapping.Input.End])
}

func ExampleFormat() {
	out, err := js.Format("example.js", "export {a,b as c} from 'mod';", format.Options{})
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
	// Output:
	// export { a, b as c } from "mod";
}
