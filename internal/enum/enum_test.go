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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	out, err := generate("example.com/gen", "demo", "testdata/demo.yaml", []byte(`
- name: Color
  type: int
  docs: Color is a color.
  total: NumColors
  methods:
  - kind: string
  - kind: from-string
    name: ParseColor
    docs: ParseColor parses a Color.
  - kind: yaml
    via: ParseColor
  - kind: all
    name: Colors
    skip: [Blue]
  values:
  - name: Red
    string: red
    docs: The color of blood.
  - name: Blue
  - name: Crimson
    alias: Red
`))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "// Code generated by example.com/gen. DO NOT EDIT.\n// input: demo.yaml\n")
	assert.Contains(t, text, "\npackage demo\n")
	assert.Contains(t, text, "// Copyright 2020-2025 Buf Technologies, Inc.")
	assert.Contains(t, text, "// Color is a color.\ntype Color int\n")
	assert.Contains(t, text, "\t// The color of blood.\n\tRed Color = iota\n")
	assert.Regexp(t, `Crimson\s+= Red`, text)
	assert.Regexp(t, `NumColors\s+= 2`, text)
	assert.Contains(t, text, `"gopkg.in/yaml.v3"`)
	assert.Contains(t, text, "// String implements [fmt.Stringer].\nfunc (v Color) String() string {")
	assert.Contains(t, text, "func ParseColor(s string) (Color, bool) {")
	assert.Contains(t, text, "// UnmarshalYAML implements [yaml.Unmarshaler].\nfunc (v *Color) UnmarshalYAML(node *yaml.Node) error {")
	assert.Contains(t, text, "x, ok := ParseColor(s)")
	assert.Contains(t, text, "func Colors() iter.Seq[Color] {")
	assert.Regexp(t, `Red:\s+"red",`, text)
	assert.Regexp(t, `(?s)_table_Color_Colors = \[\.\.\.\]Color\{\s*Red,\s*\}`, text)
	assert.NotContains(t, text, "go-string")
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, yaml, want string
	}{
		{
			name: "unknown-field",
			yaml: "- name: E\n  type: int\n  bogus: 1\n",
			want: "field bogus not found",
		},
		{
			name: "missing-type",
			yaml: "- name: E\n",
			want: `enum "E": name and type are required`,
		},
		{
			name: "duplicate",
			yaml: "- name: E\n  type: int\n  values:\n  - name: A\n  - name: A\n",
			want: "enum E: duplicate value A",
		},
		{
			name: "bad-alias",
			yaml: "- name: E\n  type: int\n  values:\n  - name: A\n    alias: B\n",
			want: "enum E: A aliases B, which is not an earlier value",
		},
		{
			name: "unnamed",
			yaml: "- name: E\n  type: int\n  methods:\n  - kind: all\n",
			want: "enum E: all method needs a name",
		},
		{
			name: "no-via",
			yaml: "- name: E\n  type: int\n  methods:\n  - kind: yaml\n",
			want: "enum E: yaml method needs a from-string function in via",
		},
		{
			name: "bad-skip",
			yaml: "- name: E\n  type: int\n  methods:\n  - kind: string\n    skip: [X]\n",
			want: "enum E: string skips unknown value X",
		},
		{
			name: "bad-kind",
			yaml: "- name: E\n  type: int\n  methods:\n  - kind: json\n",
			want: `enum E: unknown method kind "json"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := generate("gen", "demo", "demo.yaml", []byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMakeDocs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, makeDocs("", "\t"))
	assert.Equal(t, "\t// One.\n\t//\n\t// Two.\n", makeDocs("One.\n\nTwo.\n", "\t"))
}
