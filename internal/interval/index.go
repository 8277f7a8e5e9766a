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

// Package interval provides an index over possibly-overlapping intervals
// that answers "which intervals contain this point" in logarithmic time.
package interval

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Segment is a maximal run of points that are all contained in the same
// intervals of an [Index]. Both endpoints are inclusive.
type Segment[K Endpoint, V any] struct {
	Start, End K

	// The values of every interval containing this segment, in insertion
	// order.
	Values []V
}

// Contains returns whether a segment contains a given point.
func (s Segment[K, V]) Contains(point K) bool {
	return s.Start <= point && point <= s.End
}

// Index is a collection of intervals, each with an associated value, cut into
// disjoint segments so that a point lookup is a single tree search.
//
// A zero value is ready to use.
type Index[K Endpoint, V any] struct {
	// Keys are the ends of the segments.
	tree btree.Map[K, *Segment[K, V]]
}

// Len returns the number of segments in this index.
func (x *Index[K, V]) Len() int {
	return x.tree.Len()
}

// Stab returns the segment containing point.
//
// If no interval contains point, the returned segment's Values is nil.
func (x *Index[K, V]) Stab(point K) Segment[K, V] {
	iter := x.tree.Iter()
	if !iter.Seek(point) || point < iter.Value().Start {
		return Segment[K, V]{}
	}
	return *iter.Value()
}

// Segments returns an iterator over the segments of this index, in order.
func (x *Index[K, V]) Segments() iter.Seq[Segment[K, V]] {
	return func(yield func(Segment[K, V]) bool) {
		iter := x.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(*iter.Value()) {
				return
			}
		}
	}
}

// Insert adds the interval [start, end] with the given value.
func (x *Index[K, V]) Insert(start, end K, value V) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	x.cut(start)
	if end+1 > end {
		x.cut(end + 1)
	}

	// After cutting, every segment overlapping [start, end] lies entirely
	// inside of it.
	var hit []*Segment[K, V]
	iter := x.tree.Iter()
	for more := iter.Seek(start); more && iter.Value().Start <= end; more = iter.Next() {
		hit = append(hit, iter.Value())
	}

	next := start
	for _, seg := range hit {
		if next < seg.Start {
			x.tree.Set(seg.Start-1, &Segment[K, V]{Start: next, End: seg.Start - 1, Values: []V{value}})
		}
		seg.Values = append(seg.Values, value)
		next = seg.End + 1
	}
	if len(hit) == 0 {
		x.tree.Set(end, &Segment[K, V]{Start: start, End: end, Values: []V{value}})
	} else if last := hit[len(hit)-1]; last.End < end {
		x.tree.Set(end, &Segment[K, V]{Start: last.End + 1, End: end, Values: []V{value}})
	}
}

// cut splits the segment containing point, if any, so that point begins a
// segment.
func (x *Index[K, V]) cut(point K) {
	iter := x.tree.Iter()
	if !iter.Seek(point) {
		return
	}
	seg := iter.Value()
	if seg.Start >= point {
		return
	}

	x.tree.Set(point-1, &Segment[K, V]{
		Start:  seg.Start,
		End:    point - 1,
		Values: slices.Clone(seg.Values),
	})
	seg.Start = point
}

// Format implements [fmt.Formatter].
func (x *Index[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	for seg := range x.Segments() {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if seg.Start == seg.End {
			fmt.Fprintf(s, "%#v: ", seg.Start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", seg.Start, seg.End)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), seg.Values)
	}
	fmt.Fprint(s, "}")
}
