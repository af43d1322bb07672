// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "golang.org/x/exp/constraints"

// Number constrains the values a DeltaEncoder/DeltaDecoder can carry: every
// PBF column that is delta-coded is either an integer (ids, timestamps,
// changesets, uids, string-table indices) or a float (never actually used on
// the wire, but kept for parity with the teacher's calcDeltas).
type Number interface {
	constraints.Integer | constraints.Float
}

// DeltaEncoder is a stateful running-difference codec: each call to Next
// returns the difference between v and the previously encoded value, then
// remembers v as the new baseline. It is the encode-side half of the
// delta-coding scheme used throughout PrimitiveBlock's dense columns.
type DeltaEncoder[T Number] struct {
	prev T
}

// Next returns v's delta from the last value seen (zero initially).
func (e *DeltaEncoder[T]) Next(v T) T {
	d := v - e.prev
	e.prev = v

	return d
}

// EncodeAll applies Next across values in order, starting from the encoder's
// current state; it does not reset the running total first.
func (e *DeltaEncoder[T]) EncodeAll(values []T) []T {
	deltas := make([]T, len(values))
	for i, v := range values {
		deltas[i] = e.Next(v)
	}

	return deltas
}

// DeltaDecoder is the inverse of DeltaEncoder: it accumulates a running total
// from a stream of deltas.
type DeltaDecoder[T Number] struct {
	total T
}

// Next adds delta to the running total and returns the new total.
func (d *DeltaDecoder[T]) Next(delta T) T {
	d.total += delta

	return d.total
}

// Total returns the current running total without advancing it.
func (d *DeltaDecoder[T]) Total() T {
	return d.total
}

// DecodeAll applies Next across deltas in order, starting from the decoder's
// current state.
func (d *DeltaDecoder[T]) DecodeAll(deltas []T) []T {
	values := make([]T, len(deltas))
	for i, delta := range deltas {
		values[i] = d.Next(delta)
	}

	return values
}
