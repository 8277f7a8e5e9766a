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

// Package format turns syntax trees into formatted source text.
//
// A language provides a parser producing a [syntax.Tree] and a catalogue of
// [Rules], one per node kind. Each rule converts its node into a [dom.Doc]
// using the builders in this package and the [Context] it is given;
// [Format] then lays the resulting document out with the configured
// [Options].
//
// Comments never appear in rules directly: [Context.Token] prints each token
// together with the comments attached to it, and every comment in the source
// is attached to exactly one token.
package format

import (
	"errors"

	"github.com/bufbuild/docfmt/dom"
	"github.com/bufbuild/docfmt/syntax"
)

// Output is the result of [Format].
type Output struct {
	Text string

	// Set if [Options.SourceMap] was set.
	SourceMap *SourceMap
}

// Format formats a tree with the given rule catalogue.
//
// On failure, the error is an [*Error] and no output is produced.
func Format(tree *syntax.Tree, rules Rules, options Options) (*Output, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	options = options.WithDefaults()

	ctx := newContext(tree, rules, options)
	doc, err := ctx.Format(tree.Root())
	if err != nil {
		return nil, err
	}
	if err := ctx.file.checkComments(); err != nil {
		return nil, err
	}

	out, err := dom.Render(options.layout(), doc)
	if err != nil {
		var undecided *dom.UndecidedGroupError
		if errors.As(err, &undecided) {
			return nil, Violationf(tree.Root().Span(), "%v", err)
		}
		return nil, wrap(tree.Root().Span(), err)
	}

	output := &Output{Text: out.Text}
	if options.SourceMap {
		output.SourceMap = newSourceMap(out.Spans)
	}
	return output, nil
}
