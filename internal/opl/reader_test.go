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

package opl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/pbf/v2/model"
)

const sample = "n1 v1 dV c1 t2016-01-03T09:15:54Z i1 u Thighway=residential x1.1 y2.2\n" +
	"n2 v1 dV c1 t2016-01-03T09:15:54Z i1 u T x3.3 y4.4\n" +
	"w3 v1 dV c1 t2016-01-03T09:15:54Z i1 u T N1,2\n"

func TestReaderWholeInput(t *testing.T) {
	r := NewReader()

	entities, err := r.Feed([]byte(sample))
	require.NoError(t, err)

	rest, err := r.Close()
	require.NoError(t, err)

	entities = append(entities, rest...)
	require.Len(t, entities, 3)
	assert.Equal(t, model.ID(1), entities[0].GetID())
	assert.Equal(t, model.ID(2), entities[1].GetID())
	assert.Equal(t, model.ID(3), entities[2].GetID())
}

// TestReaderChunkedAtEveryBoundary feeds the sample text one byte at a time
// and confirms the reassembled entity sequence is identical no matter where
// a line happens to be split across Feed calls.
func TestReaderChunkedAtEveryBoundary(t *testing.T) {
	r := NewReader(WithBufferThreshold(1 << 30))

	var entities []model.Entity

	for _, b := range []byte(sample) {
		es, err := r.Feed([]byte{b})
		require.NoError(t, err)
		entities = append(entities, es...)
	}

	rest, err := r.Close()
	require.NoError(t, err)
	entities = append(entities, rest...)

	require.Len(t, entities, 3)
	assert.Equal(t, model.ID(1), entities[0].GetID())
	assert.Equal(t, model.ID(2), entities[1].GetID())
	assert.Equal(t, model.ID(3), entities[2].GetID())
}

func TestReaderSplitAtBoundary(t *testing.T) {
	for split := 1; split < len(sample); split++ {
		r := NewReader(WithBufferThreshold(1 << 30))

		es1, err := r.Feed([]byte(sample[:split]))
		require.NoError(t, err)

		es2, err := r.Feed([]byte(sample[split:]))
		require.NoError(t, err)

		rest, err := r.Close()
		require.NoError(t, err)

		entities := append(append(es1, es2...), rest...)
		require.Lenf(t, entities, 3, "split at %d", split)
	}
}

func TestDecodeAll(t *testing.T) {
	entities, err := DecodeAll(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Len(t, entities, 3)
}

func TestReaderRunawayLine(t *testing.T) {
	r := NewReader(WithBufferCapacity(16), WithBufferThreshold(0))

	_, err := r.Feed([]byte(strings.Repeat("x", 32)))
	assert.Error(t, err)
}
