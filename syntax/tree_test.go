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

package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/docfmt/syntax"
)

const (
	kindList syntax.Kind = iota + 1
	kindItem
	kindIdent
	kindComma
	kindEmpty
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	src := "a, /* x */ b // y\n"
	b := syntax.NewBuilder("test", src)
	b.Start(kindList)
	b.Start(kindItem)
	a := b.Token(kindIdent, syntax.Span{Start: 0, End: 1}, nil, nil)
	b.Finish()
	b.Token(kindComma, syntax.Span{Start: 1, End: 2}, nil, []syntax.Trivia{
		{Kind: syntax.Whitespace, Text: " ", Span: syntax.Span{Start: 2, End: 3}},
		{Kind: syntax.BlockComment, Text: "/* x */", Span: syntax.Span{Start: 3, End: 10}},
		{Kind: syntax.Whitespace, Text: " ", Span: syntax.Span{Start: 10, End: 11}},
	})
	b.Start(kindItem)
	last := b.Token(kindIdent, syntax.Span{Start: 11, End: 12}, nil, []syntax.Trivia{
		{Kind: syntax.Whitespace, Text: " ", Span: syntax.Span{Start: 12, End: 13}},
		{Kind: syntax.LineComment, Text: "// y", Span: syntax.Span{Start: 13, End: 17}},
	})
	b.Finish()
	b.Start(kindEmpty)
	b.Finish()
	b.Finish()

	tree, err := b.Tree()
	require.NoError(t, err)

	root := tree.Root()
	assert.Equal(t, kindList, root.Kind())
	assert.Equal(t, syntax.Span{Start: 0, End: 12}, root.Span())
	assert.Equal(t, "a, /* x */ b", root.Text())
	assert.Equal(t, 4, root.Len())
	assert.Equal(t, 3, tree.NumTokens())

	var kinds []syntax.Kind
	for child := range root.Children() {
		kinds = append(kinds, child.Kind())
	}
	assert.Equal(t, []syntax.Kind{kindItem, kindComma, kindItem, kindEmpty}, kinds)

	empty := root.FindNode(kindEmpty)
	assert.Equal(t, syntax.Span{Start: 12, End: 12}, empty.Span())
	assert.Equal(t, 0, empty.Len())

	comma := root.Find(kindComma)
	assert.Equal(t, ",", comma.Text())
	assert.Len(t, comma.Trailing(), 3)
	assert.Equal(t, a, comma.Prev())
	assert.Equal(t, last, comma.Next())
	assert.True(t, last.Next().IsZero())
	assert.True(t, a.Prev().IsZero())
	assert.Equal(t, 2, last.Index())

	assert.Equal(t,
		"(1\n  (2 \"a\") \",\"\n  (2 \"b\")\n  (5))",
		tree.Dump(nil),
	)
}

func TestBuilderErrors(t *testing.T) {
	t.Parallel()

	_, err := syntax.NewBuilder("test", "").Tree()
	require.Error(t, err)

	b := syntax.NewBuilder("test", "")
	b.Start(kindList)
	_, err = b.Tree()
	require.Error(t, err)

	assert.Panics(t, func() { syntax.NewBuilder("test", "").Finish() })
}

func TestSplitTrivia(t *testing.T) {
	t.Parallel()

	ws := syntax.Trivia{Kind: syntax.Whitespace, Text: " "}
	nl := syntax.Trivia{Kind: syntax.Newline, Text: "\n"}
	c := syntax.Trivia{Kind: syntax.LineComment, Text: "// c"}

	trailing, leading := syntax.SplitTrivia([]syntax.Trivia{ws, c, nl, ws})
	assert.Equal(t, []syntax.Trivia{ws, c}, trailing)
	assert.Equal(t, []syntax.Trivia{nl, ws}, leading)

	trailing, leading = syntax.SplitTrivia([]syntax.Trivia{ws})
	assert.Equal(t, []syntax.Trivia{ws}, trailing)
	assert.Empty(t, leading)
}

func TestZero(t *testing.T) {
	t.Parallel()

	var n syntax.Node
	var tok syntax.Token
	assert.True(t, n.IsZero())
	assert.Equal(t, 0, n.Len())
	assert.Equal(t, syntax.Kind(0), n.Kind())
	assert.True(t, tok.IsZero())
	assert.Empty(t, tok.Text())
	assert.True(t, tok.Next().IsZero())
	assert.True(t, n.Find(kindComma).IsZero())
}

func TestCheckpoint(t *testing.T) {
	t.Parallel()

	src := "a b"
	b := syntax.NewBuilder("test", src)
	b.Start(kindList)
	cp := b.Checkpoint()
	b.Start(kindItem)
	b.Token(kindIdent, syntax.Span{Start: 0, End: 1}, nil, nil)
	b.Finish()
	b.StartAt(cp, kindEmpty)
	b.Token(kindIdent, syntax.Span{Start: 2, End: 3}, nil, nil)
	wrapper := b.Finish()
	b.Finish()

	tree, err := b.Tree()
	require.NoError(t, err)

	root := tree.Root()
	require.Equal(t, 1, root.Len())
	assert.Equal(t, kindEmpty, root.At(0).Kind())
	assert.Equal(t, syntax.Span{Start: 0, End: 3}, wrapper.Span())
	assert.Equal(t, kindItem, wrapper.At(0).Kind())
	assert.Equal(t, "a", root.FirstToken().Text())
	assert.Equal(t, "a", wrapper.FirstToken().Text())

	assert.Panics(t, func() {
		b := syntax.NewBuilder("test", src)
		b.StartAt(b.Checkpoint(), kindList)
	})
}
