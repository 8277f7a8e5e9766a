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

// Package js formats a small subset of JavaScript with JSX: import and export
// declarations with named specifiers, and expression statements over
// identifiers, numbers, strings, arrays and JSX elements.
//
// It is a rule catalogue for package format, together with the parser that
// produces the trees it consumes.
package js

import (
	"iter"

	"github.com/bufbuild/docfmt/format"
	"github.com/bufbuild/docfmt/syntax"
)

//go:generate go run github.com/bufbuild/docfmt/internal/enum kind.yaml

// Format parses and formats a JavaScript file.
func Format(path, source string, options format.Options) (string, error) {
	tree, err := Parse(path, source)
	if err != nil {
		return "", err
	}
	out, err := format.Format(tree, Rules, options)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// IsNode returns whether this is the kind of a node, rather than a token.
func (v Kind) IsNode() bool {
	return v >= Program && v < NumKinds
}

// NodeKinds returns an iterator over every node kind, for use with
// [format.CheckRules].
func NodeKinds() iter.Seq[syntax.Kind] {
	return func(yield func(syntax.Kind) bool) {
		for k := range Kinds() {
			if k.IsNode() && !yield(syntax.Kind(k)) {
				return
			}
		}
	}
}

// KindName returns the name of a kind, for use with [syntax.Tree.Dump].
func KindName(kind syntax.Kind) string {
	return Kind(kind).String()
}
