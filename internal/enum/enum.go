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

// enum generates the boilerplate for Go enums from a YAML description.
//
// To generate the enums described by foo.yaml into foo.go, write
//
//	//go:generate go run github.com/bufbuild/docfmt/internal/enum foo.yaml
//
// in a file of the package foo.yaml belongs to. Each file must contain a list
// of [Enum]s. Every value gets a constant; the methods a type gets are listed
// under its methods key, and are backed by lookup tables at the end of the
// generated file.
//
//nolint:revive // We use _ in field names to disambiguate them from methods, while still exporting them.
package main

import (
	"bytes"
	"debug/buildinfo"
	_ "embed"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/docfmt/internal/ext/slicesx"
)

// Enum describes a single enum type.
type Enum struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`  // Underlying type, such as int or uint16.
	Docs    string   `yaml:"docs"`  // Doc comment for the type, without slashes.
	Total   string   `yaml:"total"` // If set, a constant with this name counts the values.
	Methods []Method `yaml:"methods"`
	Values_ []Value  `yaml:"values"`
}

// Values returns this enum's values, linked back to it.
func (e *Enum) Values() []Value {
	for i := range e.Values_ {
		e.Values_[i].Parent = e
		e.Values_[i].Idx = i
	}
	return e.Values_
}

// Count returns the number of distinct values, not counting aliases.
func (e *Enum) Count() int {
	n := 0
	for _, v := range e.Values_ {
		if v.Alias == "" {
			n++
		}
	}
	return n
}

// Included returns the values a method's table covers.
func (e *Enum) Included(m Method) []Value {
	return slices.DeleteFunc(slices.Clone(e.Values()), func(v Value) bool {
		return v.Alias != "" || slices.Contains(m.Skip, v.Name)
	})
}

// check validates the description of an enum.
func (e *Enum) check() error {
	var err error
	if e.Name == "" || e.Type == "" {
		err = multierr.Append(err, fmt.Errorf("enum %q: name and type are required", e.Name))
	}

	names := make(map[string]bool)
	for _, v := range e.Values_ {
		if names[v.Name] {
			err = multierr.Append(err, fmt.Errorf("enum %s: duplicate value %s", e.Name, v.Name))
		}
		names[v.Name] = true
		if v.Alias != "" && !names[v.Alias] {
			err = multierr.Append(err, fmt.Errorf("enum %s: %s aliases %s, which is not an earlier value", e.Name, v.Name, v.Alias))
		}
	}

	for _, m := range e.Methods {
		if _, nameErr := m.Name(); nameErr != nil {
			err = multierr.Append(err, fmt.Errorf("enum %s: %w", e.Name, nameErr))
		}
		if m.Kind == MethodYAML && m.Via == "" {
			err = multierr.Append(err, fmt.Errorf("enum %s: yaml method needs a from-string function in via", e.Name))
		}
		for _, skip := range m.Skip {
			if !names[skip] {
				err = multierr.Append(err, fmt.Errorf("enum %s: %s skips unknown value %s", e.Name, m.Kind, skip))
			}
		}
	}
	return err
}

// Value is a single value of an [Enum].
type Value struct {
	Name    string `yaml:"name"`
	Alias   string `yaml:"alias"`  // An earlier value this one is equal to.
	String_ string `yaml:"string"` // Defaults to Name.
	Docs    string `yaml:"docs"`

	Parent *Enum `yaml:"-"`
	Idx    int   `yaml:"-"`
}

// HasSuffixDocs returns whether this value's docs fit in a comment on the same
// line. This is only done when the next value also has docs; otherwise, the
// comment goes above the value.
func (v Value) HasSuffixDocs() bool {
	if v.Docs == "" || strings.Contains(v.Docs, "\n") {
		return false
	}
	next, ok := slicesx.Get(v.Parent.Values_, v.Idx+1)
	return !ok || next.Docs != ""
}

func (v Value) String() string {
	if v.String_ == "" {
		return v.Name
	}
	return v.String_
}

// Method is a method, function or table to generate for an [Enum].
type Method struct {
	Kind  MethodKind `yaml:"kind"`
	Name_ string     `yaml:"name"` // Required unless the kind implements an interface.
	Docs_ string     `yaml:"docs"`
	Skip  []string   `yaml:"skip"` // Values to leave out of this method's table.
	Via   string     `yaml:"via"`  // For yaml, the from-string function to parse with.
}

// MethodKind is the kind of a [Method].
type MethodKind string

const (
	MethodString     MethodKind = "string"      // A String method.
	MethodGoString   MethodKind = "go-string"   // A GoString method.
	MethodFromString MethodKind = "from-string" // A function inverting String.
	MethodYAML       MethodKind = "yaml"        // An UnmarshalYAML method that calls a from-string function.
	MethodAll        MethodKind = "all"         // A function returning an iterator over all values.
)

// interfaces are the method kinds that implement a standard interface, and
// so have a fixed name and docs.
var interfaces = map[MethodKind]struct{ name, iface string }{
	MethodString:   {"String", "fmt.Stringer"},
	MethodGoString: {"GoString", "fmt.GoStringer"},
	MethodYAML:     {"UnmarshalYAML", "yaml.Unmarshaler"},
}

func (m Method) Name() (string, error) {
	if m.Name_ != "" {
		return m.Name_, nil
	}
	switch m.Kind {
	case MethodFromString, MethodAll:
		return "", fmt.Errorf("%s method needs a name", m.Kind)
	}
	if iface, ok := interfaces[m.Kind]; ok {
		return iface.name, nil
	}
	return "", fmt.Errorf("unknown method kind %q", m.Kind)
}

func (m Method) Docs() string {
	if m.Docs_ != "" {
		return m.Docs_
	}
	if iface, ok := interfaces[m.Kind]; ok {
		return fmt.Sprintf("%s implements [%s].", iface.name, iface.iface)
	}
	return ""
}

// File is the input to the template.
type File struct {
	Binary, Package, Config string
	YAML                    []Enum
}

// Imports returns the packages the generated file needs. An empty string
// separates standard library imports from the rest.
func (f *File) Imports() []string {
	kinds := make(map[MethodKind]bool)
	for _, e := range f.YAML {
		for _, m := range e.Methods {
			kinds[m.Kind] = true
		}
	}

	var imports []string
	if kinds[MethodString] || kinds[MethodGoString] || kinds[MethodYAML] {
		imports = append(imports, "fmt")
	}
	if kinds[MethodAll] {
		imports = append(imports, "iter")
	}
	if kinds[MethodYAML] {
		imports = append(imports, "", "gopkg.in/yaml.v3")
	}
	return imports
}

//go:embed enum.go.tmpl
var tmplText string

var tmpl = template.Must(template.New("enum.go.tmpl").Funcs(template.FuncMap{
	"makeDocs": makeDocs,
	"chomp":    func(s string) string { return strings.TrimSuffix(s, "\n") },
}).Parse(tmplText))

// makeDocs converts text into a doc comment, with each line indented by
// indent.
func makeDocs(text, indent string) string {
	if text == "" {
		return ""
	}

	var out strings.Builder
	for line := range strings.SplitSeq(strings.TrimSpace(text), "\n") {
		out.WriteString(indent)
		out.WriteString(strings.TrimRight("// "+line, " "))
		out.WriteByte('\n')
	}
	return out.String()
}

// generate renders the enums described by config, returning formatted Go
// source.
func generate(binary, pkg, config string, text []byte) ([]byte, error) {
	input := File{Binary: binary, Package: pkg, Config: filepath.Base(config)}

	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	if err := dec.Decode(&input.YAML); err != nil {
		return nil, err
	}

	var err error
	for i := range input.YAML {
		err = multierr.Append(err, input.YAML[i].check())
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, &input); err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated invalid Go: %w", err)
	}
	return out, nil
}

func run(config string) error {
	if filepath.Ext(config) != ".yaml" {
		return fmt.Errorf("%s: file argument must end in .yaml", config)
	}

	info, err := buildinfo.ReadFile(os.Args[0])
	if err != nil {
		return err
	}
	text, err := os.ReadFile(config)
	if err != nil {
		return err
	}

	out, err := generate(info.Path, os.Getenv("GOPACKAGE"), config, text)
	if err != nil {
		return fmt.Errorf("%s: %w", config, err)
	}
	return os.WriteFile(strings.TrimSuffix(config, ".yaml")+".go", out, 0o644) //nolint:gosec // Generated source is not secret.
}

func main() {
	var err error
	for _, config := range os.Args[1:] {
		err = multierr.Append(err, run(config))
	}
	for _, err := range multierr.Errors(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	if err != nil {
		os.Exit(1)
	}
}
