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

package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/pbf/v2/model"
)

func newTestNode(id model.ID) *model.Node {
	return &model.Node{ID: id, Info: &model.Info{}}
}

func TestPrimitiveBlockBuilderEmpty(t *testing.T) {
	b := NewPrimitiveBlockBuilder(EntityLimit)

	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.CanAdd(newTestNode(1)))
}

func TestPrimitiveBlockBuilderAddAndReset(t *testing.T) {
	b := NewPrimitiveBlockBuilder(EntityLimit)

	b.Add(newTestNode(1))
	b.Add(newTestNode(2))

	assert.False(t, b.Empty())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []model.Entity{newTestNode(1), newTestNode(2)}, b.Entities())

	b.Reset()

	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Len())
}

func TestPrimitiveBlockBuilderEntityLimit(t *testing.T) {
	b := NewPrimitiveBlockBuilder(2)

	assert.True(t, b.CanAdd(newTestNode(1)))
	b.Add(newTestNode(1))

	assert.True(t, b.CanAdd(newTestNode(2)))
	b.Add(newTestNode(2))

	assert.False(t, b.CanAdd(newTestNode(3)))
}

func TestPrimitiveBlockBuilderMixedKindRejected(t *testing.T) {
	b := NewPrimitiveBlockBuilder(EntityLimit)

	b.Add(newTestNode(1))

	way := &model.Way{ID: 2, Info: &model.Info{}, NodeIDs: []model.ID{1, 2}}
	assert.False(t, b.CanAdd(way))
}

func TestPrimitiveBlockBuilderSizeCap(t *testing.T) {
	b := NewPrimitiveBlockBuilder(EntityLimit)

	huge := &model.Way{
		ID:      1,
		Info:    &model.Info{},
		NodeIDs: make([]model.ID, maxBlockBytes),
	}

	assert.True(t, b.CanAdd(huge))
	b.Add(huge)

	assert.False(t, b.CanAdd(&model.Way{ID: 2, Info: &model.Info{}, NodeIDs: []model.ID{1}}))
}
