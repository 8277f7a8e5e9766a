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

// Package arena defines an Arena type with compressed pointers.
package arena

import (
	"fmt"
	"iter"
	"math/bits"
)

// minChunkShift is the log2 of the length of the first chunk of an arena.
const (
	minChunkShift = 4
	minChunk      = 1 << minChunkShift
)

// Pointer is a compressed pointer into an [Arena].
//
// The value of a pointer is one plus the number of values allocated before
// it, so the zero value is nil.
type Pointer[T any] uint32

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return p == 0
}

// In looks up this pointer in the given arena.
//
// arena must be the arena that allocated this pointer; otherwise this will
// either return an arbitrary value or panic. If p is nil, this panics.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(p)
}

// Arena is a slice of T that guarantees that the Ts in it never move, so
// pointers to them remain valid as the arena grows.
//
// It does this by maintaining a table of chunks that double in size, mimicking
// the resizing behavior of an ordinary slice. Lookup is O(1).
//
// A zero Arena[T] is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(chunks[n]) == minChunk << n.
	// 2. len(chunks[n]) == cap(chunks[n]) for n < len(chunks)-1.
	chunks [][]T
}

// New allocates a new value on the arena.
func (a *Arena[T]) New(value T) Pointer[T] {
	if len(a.chunks) == 0 {
		a.chunks = [][]T{make([]T, 0, minChunk)}
	}

	last := &a.chunks[len(a.chunks)-1]
	if len(*last) == cap(*last) {
		a.chunks = append(a.chunks, make([]T, 0, 2*cap(*last)))
		last = &a.chunks[len(a.chunks)-1]
	}

	*last = append(*last, value)
	return Pointer[T](a.Len())
}

// At dereferences a pointer, as if by [Pointer.In].
func (a *Arena[T]) At(p Pointer[T]) *T {
	if p.Nil() {
		panic("arena: nil pointer dereference")
	}
	chunk, idx := a.coordinates(int(p) - 1)
	return &a.chunks[chunk][idx]
}

// Len returns the number of values allocated in this arena.
func (a *Arena[T]) Len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	n := len(a.chunks) - 1
	return chunkOffset(n) + len(a.chunks[n])
}

// All returns an iterator over the pointers and values in this arena, in
// allocation order.
func (a *Arena[T]) All() iter.Seq2[Pointer[T], *T] {
	return func(yield func(Pointer[T], *T) bool) {
		p := Pointer[T](0)
		for _, chunk := range a.chunks {
			for i := range chunk {
				p++
				if !yield(p, &chunk[i]) {
					return
				}
			}
		}
	}
}

// chunkOffset returns the number of values in the first n chunks.
func chunkOffset(n int) int {
	// minChunk * (2^0 + 2^1 + ... + 2^(n-1)) == minChunk * (2^n - 1).
	return (minChunk << n) - minChunk
}

// coordinates converts an index into a chunk index and an offset within that
// chunk, performing a bounds check.
func (a *Arena[T]) coordinates(idx int) (chunk, offset int) {
	if idx < 0 || idx >= a.Len() {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx+1))
	}

	// Chunk n starts at minChunk * (2^n - 1); adding minChunk makes that a
	// power of two whose high bit identifies n.
	chunk = bits.Len(uint(idx+minChunk)) - minChunkShift - 1
	return chunk, idx - chunkOffset(chunk)
}
