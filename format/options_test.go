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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/docfmt/format"
)

func TestParseOptions(t *testing.T) {
	t.Parallel()

	options, err := format.ParseOptions([]byte(`
print_width: 100
indent_style: tab
indent_width: 4
quote_style: single
trailing_separator: never
source_map: true
`))
	require.NoError(t, err)
	assert.Equal(t, format.Options{
		PrintWidth:        100,
		IndentStyle:       format.IndentTab,
		IndentWidth:       4,
		QuoteStyle:        format.QuoteSingle,
		TrailingSeparator: format.TrailingNever,
		SourceMap:         true,
	}, options)

	options, err = format.ParseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, format.Options{}, options)

	options, err = format.ParseOptions([]byte("quote_style: single"))
	require.NoError(t, err)
	assert.Zero(t, options.PrintWidth)
	assert.Equal(t, format.DefaultPrintWidth, int(options.WithDefaults().PrintWidth))

	for _, bad := range []string{
		"indent_style: tabs",
		"trailing_separator: sometimes",
		"width: 80",
		"print_width: 1000",
		"indent_width: 17",
		"print_width: 0",
		"indent_width: 0",
	} {
		_, err := format.ParseOptions([]byte(bad))
		assert.True(t, format.IsKind(err, format.ConfigurationError), "%s: %v", bad, err)
	}
}

func TestOptionDefaults(t *testing.T) {
	t.Parallel()

	options := format.Options{}.WithDefaults()
	assert.Equal(t, uint(format.DefaultPrintWidth), options.PrintWidth)
	assert.Equal(t, uint(format.DefaultIndentWidth), options.IndentWidth)
	assert.Equal(t, format.ProximityPlacement{}, options.Comments)
	require.NoError(t, options.Validate())

	assert.Error(t, format.Options{QuoteStyle: 7}.Validate())
	assert.Error(t, format.Options{TrailingSeparator: -1}.Validate())
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	for _, policy := range []format.TrailingSeparator{format.TrailingOmitIfLast, format.TrailingAlways, format.TrailingNever} {
		parsed, ok := format.ParseTrailingSeparator(policy.String())
		assert.True(t, ok)
		assert.Equal(t, policy, parsed)
	}
	assert.Equal(t, "TrailingSeparator(9)", format.TrailingSeparator(9).String())
	assert.Equal(t, "invariant violation", format.InvariantViolation.String())

	_, ok := format.ParseIndentStyle("Tab")
	assert.False(t, ok)
}
