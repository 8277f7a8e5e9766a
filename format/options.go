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

package format

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/docfmt/dom"
)

//go:generate go run github.com/bufbuild/docfmt/internal/enum enums.yaml

const (
	// DefaultPrintWidth is the print width used when none is set.
	DefaultPrintWidth = 80
	// MaxPrintWidth is the largest print width [Options.Validate] accepts.
	MaxPrintWidth = 320

	// DefaultIndentWidth is the indent width used when none is set.
	DefaultIndentWidth = 2
	// MaxIndentWidth is the largest indent width [Options.Validate] accepts.
	MaxIndentWidth = 16
)

// Options configures formatting.
//
// Zero fields mean "use the default". The zero Options is valid.
type Options struct {
	// The column that lines should not extend past.
	PrintWidth uint `yaml:"print_width"`

	IndentStyle IndentStyle `yaml:"indent_style"`

	// Columns per indentation level. For tabs, this is the tabstop width used
	// when measuring lines.
	IndentWidth uint `yaml:"indent_width"`

	QuoteStyle        QuoteStyle        `yaml:"quote_style"`
	TrailingSeparator TrailingSeparator `yaml:"trailing_separator"`

	// Where to attach own-line comments that sit between two tokens. Defaults
	// to [ProximityPlacement].
	Comments CommentPlacement `yaml:"-"`

	// If set, [Output.SourceMap] maps output ranges back to the nodes they
	// were produced from.
	SourceMap bool `yaml:"source_map"`
}

// ParseOptions parses YAML-encoded options. Unknown fields are rejected, as
// are widths explicitly set to zero.
func ParseOptions(data []byte) (Options, error) {
	var options Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&options); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, configErrorf("%w", err)
	}

	// Zero means "default" only when the field is absent.
	var explicit struct {
		PrintWidth  *uint `yaml:"print_width"`
		IndentWidth *uint `yaml:"indent_width"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return Options{}, configErrorf("%w", err)
	}
	switch {
	case explicit.PrintWidth != nil && *explicit.PrintWidth == 0:
		return Options{}, configErrorf("print width must be positive")
	case explicit.IndentWidth != nil && *explicit.IndentWidth == 0:
		return Options{}, configErrorf("indent width must be positive")
	}
	return options, options.Validate()
}

// WithDefaults returns a copy of these options with all zero fields replaced
// by their defaults.
func (o Options) WithDefaults() Options {
	if o.PrintWidth == 0 {
		o.PrintWidth = DefaultPrintWidth
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.Comments == nil {
		o.Comments = ProximityPlacement{}
	}
	return o
}

// Validate checks that every option is within its valid domain, returning a
// [ConfigurationError] if not.
func (o Options) Validate() error {
	switch {
	case o.PrintWidth > MaxPrintWidth:
		return configErrorf("print width %d exceeds maximum of %d", o.PrintWidth, MaxPrintWidth)
	case o.IndentWidth > MaxIndentWidth:
		return configErrorf("indent width %d exceeds maximum of %d", o.IndentWidth, MaxIndentWidth)
	case o.IndentStyle < IndentSpace || o.IndentStyle > IndentTab:
		return configErrorf("invalid indent style: %v", o.IndentStyle)
	case o.QuoteStyle < QuoteDouble || o.QuoteStyle > QuoteSingle:
		return configErrorf("invalid quote style: %v", o.QuoteStyle)
	case o.TrailingSeparator < TrailingOmitIfLast || o.TrailingSeparator > TrailingNever:
		return configErrorf("invalid trailing separator policy: %v", o.TrailingSeparator)
	}
	return nil
}

// layout converts these options into options for the printer. o must
// already have defaults applied.
func (o Options) layout() dom.Options {
	indent := "\t"
	if o.IndentStyle == IndentSpace {
		indent = strings.Repeat(" ", int(o.IndentWidth))
	}
	return dom.Options{
		MaxWidth:     int(o.PrintWidth),
		Indent:       indent,
		TabstopWidth: int(o.IndentWidth),
	}
}
