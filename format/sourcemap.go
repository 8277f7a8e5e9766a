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
	"iter"

	"github.com/bufbuild/docfmt/dom"
	"github.com/bufbuild/docfmt/internal/interval"
	"github.com/bufbuild/docfmt/syntax"
)

// Mapping relates a range of formatted output to the source range of the node
// it was produced from.
type Mapping struct {
	Input, Output syntax.Span
}

// SourceMap maps ranges of formatted output back to the nodes that produced
// them.
type SourceMap struct {
	mappings []Mapping
	index    interval.Index[int, int] // Output offsets to indices of mappings.
}

func newSourceMap(spans []dom.SpanRange) *SourceMap {
	m := new(SourceMap)
	for _, span := range spans {
		if span.OutStart == span.OutEnd {
			continue
		}
		m.mappings = append(m.mappings, Mapping{
			Input:  syntax.Span{Start: span.Start, End: span.End},
			Output: syntax.Span{Start: span.OutStart, End: span.OutEnd},
		})
		m.index.Insert(span.OutStart, span.OutEnd-1, len(m.mappings)-1)
	}
	return m
}

// Lookup returns the mapping for the innermost node whose output contains the
// given output offset.
func (m *SourceMap) Lookup(offset int) (Mapping, bool) {
	best := -1
	for _, idx := range m.index.Stab(offset).Values {
		// Spans are recorded outermost first, so among spans of equal
		// length, the later one is nested in the earlier one.
		if best < 0 || m.mappings[idx].Output.Len() <= m.mappings[best].Output.Len() {
			best = idx
		}
	}
	if best < 0 {
		return Mapping{}, false
	}
	return m.mappings[best], true
}

// Ranges returns an iterator over every mapping, ordered by where the node
// begins in the output; enclosing nodes come before the nodes they contain.
func (m *SourceMap) Ranges() iter.Seq[Mapping] {
	return func(yield func(Mapping) bool) {
		for _, mapping := range m.mappings {
			if !yield(mapping) {
				return
			}
		}
	}
}
