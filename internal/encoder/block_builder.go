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
	"m4o.io/pbf/v2/model"
)

// maxBlockBytes is 95% of the 16 MiB soft uncompressed blob size most PBF
// readers (including osmosis) are tuned for; crossing it risks tripping a
// reader's hard 32 MiB cap once a block's varints and tag strings are added
// up, so PrimitiveBlockBuilder flushes before it gets there.
const maxBlockBytes = int(0.95 * 16 * 1024 * 1024)

// PrimitiveBlockBuilder accumulates same-kind entities for one
// pb.PrimitiveBlock, enforcing the caps a PrimitiveGroup must respect: no
// more than maxEntities entities, an estimated uncompressed size under
// maxBlockBytes, and a single entity kind per group. CanAdd reports whether
// one more entity still fits; once it returns false the caller must flush
// (Entities followed by Reset) before adding more.
type PrimitiveBlockBuilder struct {
	maxEntities int

	kind     model.EntityType
	hasKind  bool
	entities []model.Entity
	size     int
}

// NewPrimitiveBlockBuilder returns an empty builder that flushes at
// maxEntities entities or maxBlockBytes estimated bytes, whichever comes
// first.
func NewPrimitiveBlockBuilder(maxEntities int) *PrimitiveBlockBuilder {
	return &PrimitiveBlockBuilder{maxEntities: maxEntities}
}

// CanAdd reports whether e may be appended without breaching the
// entity-count cap, the estimated-size cap, or mixing entity kinds. An empty
// builder accepts any entity, whatever its estimated size.
func (b *PrimitiveBlockBuilder) CanAdd(e model.Entity) bool {
	if len(b.entities) == 0 {
		return true
	}

	if b.hasKind && entityTypeOf(e) != b.kind {
		return false
	}

	if len(b.entities) >= b.maxEntities {
		return false
	}

	return b.size+estimateSize(e) <= maxBlockBytes
}

// Add appends e. Callers must check CanAdd first; Add does not itself
// enforce the caps.
func (b *PrimitiveBlockBuilder) Add(e model.Entity) {
	if !b.hasKind {
		b.kind = entityTypeOf(e)
		b.hasKind = true
	}

	b.entities = append(b.entities, e)
	b.size += estimateSize(e)
}

// Len reports the number of entities accumulated so far.
func (b *PrimitiveBlockBuilder) Len() int {
	return len(b.entities)
}

// Empty reports whether the builder holds no entities.
func (b *PrimitiveBlockBuilder) Empty() bool {
	return len(b.entities) == 0
}

// Entities returns the entities accumulated so far, in insertion order.
func (b *PrimitiveBlockBuilder) Entities() []model.Entity {
	return b.entities
}

// Reset clears the builder so it can accumulate the next block.
func (b *PrimitiveBlockBuilder) Reset() {
	b.entities = nil
	b.size = 0
	b.hasKind = false
}

func entityTypeOf(e model.Entity) model.EntityType {
	switch e.(type) {
	case *model.Node:
		return model.NODE
	case *model.Way:
		return model.WAY
	case *model.Relation:
		return model.RELATION
	default:
		panic("unrecognized entity type")
	}
}

// estimateSize is a rough per-entity byte estimate used only to decide when
// to flush a block; it is not the exact wire size.
func estimateSize(e model.Entity) int {
	const baseOverhead = 16

	size := baseOverhead

	for k, v := range e.GetTags() {
		size += len(k) + len(v) + 2
	}

	switch v := e.(type) {
	case *model.Way:
		size += len(v.NodeIDs) * 4
	case *model.Relation:
		size += len(v.Members) * 12
	}

	return size
}
