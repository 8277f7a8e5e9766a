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

package interval_test

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/docfmt/internal/interval"
)

func TestInsert(t *testing.T) {
	t.Parallel()
	type in struct {
		start, end int
		value      string
	}
	type out = interval.Segment[int, string]

	tests := []struct {
		name   string
		ranges []in
		want   []out
	}{
		{
			name:   "single",
			ranges: []in{{0, 9, "a"}},
			want:   []out{{0, 9, []string{"a"}}},
		},
		{
			name:   "disjoint",
			ranges: []in{{30, 39, "b"}, {0, 9, "a"}},
			want: []out{
				{0, 9, []string{"a"}},
				{30, 39, []string{"b"}},
			},
		},
		{
			name:   "nested",
			ranges: []in{{0, 9, "a"}, {3, 5, "b"}},
			want: []out{
				{0, 2, []string{"a"}},
				{3, 5, []string{"a", "b"}},
				{6, 9, []string{"a"}},
			},
		},
		{
			name:   "nested-inner-first",
			ranges: []in{{3, 5, "b"}, {0, 9, "a"}},
			want: []out{
				{0, 2, []string{"a"}},
				{3, 5, []string{"b", "a"}},
				{6, 9, []string{"a"}},
			},
		},
		{
			name:   "overlap",
			ranges: []in{{0, 5, "a"}, {3, 9, "b"}},
			want: []out{
				{0, 2, []string{"a"}},
				{3, 5, []string{"a", "b"}},
				{6, 9, []string{"b"}},
			},
		},
		{
			name:   "bridge",
			ranges: []in{{0, 1, "a"}, {4, 5, "b"}, {1, 4, "c"}},
			want: []out{
				{0, 0, []string{"a"}},
				{1, 1, []string{"a", "c"}},
				{2, 3, []string{"c"}},
				{4, 4, []string{"b", "c"}},
				{5, 5, []string{"b"}},
			},
		},
		{
			name:   "same",
			ranges: []in{{2, 4, "a"}, {2, 4, "b"}},
			want:   []out{{2, 4, []string{"a", "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var x interval.Index[int, string]
			for _, r := range tt.ranges {
				x.Insert(r.start, r.end, r.value)
			}
			assert.Equal(t, tt.want, slices.Collect(x.Segments()))
			assert.Equal(t, len(tt.want), x.Len())
		})
	}
}

func TestStab(t *testing.T) {
	t.Parallel()

	var x interval.Index[int, int]
	x.Insert(10, 20, 1)
	x.Insert(12, 14, 2)

	assert.Nil(t, x.Stab(9).Values)
	assert.Equal(t, []int{1}, x.Stab(10).Values)
	assert.Equal(t, []int{1, 2}, x.Stab(13).Values)
	assert.Equal(t, []int{1}, x.Stab(20).Values)
	assert.Nil(t, x.Stab(21).Values)

	assert.Equal(t, "{[10, 11]: [1], [12, 14]: [1 2], [15, 20]: [1]}", fmt.Sprintf("%v", &x))
}

func TestStabRandom(t *testing.T) {
	t.Parallel()

	type span struct{ start, end int }
	r := rand.New(rand.NewSource(1))

	var spans []span
	var x interval.Index[int, int]
	for i := range 200 {
		start := r.Intn(500)
		end := start + r.Intn(40)
		spans = append(spans, span{start, end})
		x.Insert(start, end, i)
	}

	for p := range 560 {
		var want []int
		for i, s := range spans {
			if s.start <= p && p <= s.end {
				want = append(want, i)
			}
		}
		assert.Equal(t, want, x.Stab(p).Values, "point %d", p)
	}
}
