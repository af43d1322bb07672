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

package pb

// StringTable is the per-block string pool. Entry 0 is always the empty
// string sentinel.
type StringTable struct {
	S []string
}

func (s *StringTable) GetS() []string {
	if s == nil {
		return nil
	}

	return s.S
}

func (s *StringTable) marshal() []byte {
	var buf []byte

	for _, v := range s.S {
		buf = appendStringField(buf, 1, v)
	}

	return buf
}

func unmarshalStringTable(data []byte) (*StringTable, error) {
	s := &StringTable{}

	err := scanFields(data, func(f field) error {
		if f.num == 1 {
			s.S = append(s.S, string(f.data))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// PrimitiveGroup holds one homogeneous run of entities: plain nodes, a
// single DenseNodes column block, ways, or relations (never a mix).
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

func (g *PrimitiveGroup) GetNodes() []*Node         { return g.Nodes }
func (g *PrimitiveGroup) GetDense() *DenseNodes     { return g.Dense }
func (g *PrimitiveGroup) GetWays() []*Way           { return g.Ways }
func (g *PrimitiveGroup) GetRelations() []*Relation { return g.Relations }

func (g *PrimitiveGroup) marshal() []byte {
	var buf []byte

	for _, n := range g.Nodes {
		buf = appendMessageField(buf, 1, n.marshal())
	}

	if g.Dense != nil {
		buf = appendMessageField(buf, 2, g.Dense.Marshal())
	}

	for _, w := range g.Ways {
		buf = appendMessageField(buf, 3, w.marshal())
	}

	for _, r := range g.Relations {
		buf = appendMessageField(buf, 4, r.marshal())
	}

	return buf
}

func unmarshalPrimitiveGroup(data []byte) (*PrimitiveGroup, error) {
	g := &PrimitiveGroup{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			n, err := unmarshalNode(f.data)
			if err != nil {
				return err
			}

			g.Nodes = append(g.Nodes, n)
		case 2:
			d, err := unmarshalDenseNodes(f.data)
			if err != nil {
				return err
			}

			g.Dense = d
		case 3:
			w, err := unmarshalWay(f.data)
			if err != nil {
				return err
			}

			g.Ways = append(g.Ways, w)
		case 4:
			r, err := unmarshalRelation(f.data)
			if err != nil {
				return err
			}

			g.Relations = append(g.Relations, r)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// PrimitiveBlock is the payload of every non-header Blob: a string table
// shared by all contained groups, the groups themselves, and the
// granularity/offset parameters used to decode coordinates and timestamps.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     *int32
	LatOffset       *int64
	LonOffset       *int64
	DateGranularity *int32
}

func (b *PrimitiveBlock) GetStringtable() *StringTable { return b.Stringtable }

func (b *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup { return b.Primitivegroup }

func (b *PrimitiveBlock) GetGranularity() int32 {
	if b.Granularity == nil {
		return 100
	}

	return *b.Granularity
}

func (b *PrimitiveBlock) GetDateGranularity() int32 {
	if b.DateGranularity == nil {
		return 1000
	}

	return *b.DateGranularity
}

func (b *PrimitiveBlock) GetLatOffset() int64 { return getInt64(b.LatOffset) }
func (b *PrimitiveBlock) GetLonOffset() int64 { return getInt64(b.LonOffset) }

func (b *PrimitiveBlock) Marshal() []byte {
	var buf []byte

	if b.Stringtable != nil {
		buf = appendMessageField(buf, 1, b.Stringtable.marshal())
	}

	for _, g := range b.Primitivegroup {
		buf = appendMessageField(buf, 2, g.marshal())
	}

	if b.Granularity != nil {
		buf = appendVarintField(buf, 17, uint64(uint32(*b.Granularity)))
	}

	if b.DateGranularity != nil {
		buf = appendVarintField(buf, 18, uint64(uint32(*b.DateGranularity)))
	}

	if b.LatOffset != nil {
		buf = appendVarintField(buf, 19, uint64(*b.LatOffset))
	}

	if b.LonOffset != nil {
		buf = appendVarintField(buf, 20, uint64(*b.LonOffset))
	}

	return buf
}

func UnmarshalPrimitiveBlock(data []byte) (*PrimitiveBlock, error) {
	b := &PrimitiveBlock{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			st, err := unmarshalStringTable(f.data)
			if err != nil {
				return err
			}

			b.Stringtable = st
		case 2:
			g, err := unmarshalPrimitiveGroup(f.data)
			if err != nil {
				return err
			}

			b.Primitivegroup = append(b.Primitivegroup, g)
		case 17:
			b.Granularity = ptrInt32(int32(f.val))
		case 18:
			b.DateGranularity = ptrInt32(int32(f.val))
		case 19:
			b.LatOffset = ptrInt64(int64(f.val))
		case 20:
			b.LonOffset = ptrInt64(int64(f.val))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}
