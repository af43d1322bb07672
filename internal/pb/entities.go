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

// Info carries the optional metadata of a single Node/Way/Relation.
type Info struct {
	Version   *int32
	Timestamp *int32
	Changeset *int64
	Uid       *int32
	UserSid   *int32
	Visible   *bool
}

func (i *Info) GetVersion() int32   { return getInt32(i.Version) }
func (i *Info) GetTimestamp() int32 { return getInt32(i.Timestamp) }
func (i *Info) GetChangeset() int64 { return getInt64(i.Changeset) }
func (i *Info) GetUid() int32       { return getInt32(i.Uid) }
func (i *Info) GetUserSid() int32   { return getInt32(i.UserSid) }
func (i *Info) GetVisible() bool    { return getBool(i.Visible) }

func (i *Info) marshal() []byte {
	var buf []byte

	if i.Version != nil {
		buf = appendVarintField(buf, 1, uint64(uint32(*i.Version)))
	}

	if i.Timestamp != nil {
		buf = appendVarintField(buf, 2, uint64(uint32(*i.Timestamp)))
	}

	if i.Changeset != nil {
		buf = appendVarintField(buf, 3, uint64(*i.Changeset))
	}

	if i.Uid != nil {
		buf = appendVarintField(buf, 4, uint64(uint32(*i.Uid)))
	}

	if i.UserSid != nil {
		buf = appendVarintField(buf, 5, uint64(uint32(*i.UserSid)))
	}

	if i.Visible != nil {
		buf = appendBoolField(buf, 6, *i.Visible)
	}

	return buf
}

func unmarshalInfo(data []byte) (*Info, error) {
	i := &Info{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			i.Version = ptrInt32(int32(f.val))
		case 2:
			i.Timestamp = ptrInt32(int32(f.val))
		case 3:
			i.Changeset = ptrInt64(int64(f.val))
		case 4:
			i.Uid = ptrInt32(int32(f.val))
		case 5:
			i.UserSid = ptrInt32(int32(f.val))
		case 6:
			i.Visible = ptrBool(f.val != 0)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return i, nil
}

// Node is a single standalone node within a PrimitiveGroup.
type Node struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  *int64
	Lon  *int64
}

func (n *Node) GetId() int64      { return getInt64(n.Id) }
func (n *Node) GetLat() int64     { return getInt64(n.Lat) }
func (n *Node) GetLon() int64     { return getInt64(n.Lon) }
func (n *Node) GetInfo() *Info    { return n.Info }
func (n *Node) GetKeys() []uint32 { return n.Keys }
func (n *Node) GetVals() []uint32 { return n.Vals }

func (n *Node) marshal() []byte {
	var buf []byte

	if n.Id != nil {
		buf = appendZigZagField(buf, 1, *n.Id)
	}

	buf = appendPackedVarint(buf, 2, uint32sTo64s(n.Keys))
	buf = appendPackedVarint(buf, 3, uint32sTo64s(n.Vals))

	if n.Info != nil {
		buf = appendMessageField(buf, 4, n.Info.marshal())
	}

	if n.Lat != nil {
		buf = appendZigZagField(buf, 8, *n.Lat)
	}

	if n.Lon != nil {
		buf = appendZigZagField(buf, 9, *n.Lon)
	}

	return buf
}

func unmarshalNode(data []byte) (*Node, error) {
	n := &Node{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			n.Id = ptrInt64(decodeZigZag(f.val))
		case 2:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			n.Keys = uint64sTo32s(vs)
		case 3:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			n.Vals = uint64sTo32s(vs)
		case 4:
			info, err := unmarshalInfo(f.data)
			if err != nil {
				return err
			}

			n.Info = info
		case 8:
			n.Lat = ptrInt64(decodeZigZag(f.val))
		case 9:
			n.Lon = ptrInt64(decodeZigZag(f.val))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

// Way is a sequence of node references plus optional tags/metadata.
type Way struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64 // delta-coded node ids
	Lat  []int64 // delta-coded, only used when locations_on_ways is set
	Lon  []int64
}

func (w *Way) GetId() int64      { return getInt64(w.Id) }
func (w *Way) GetKeys() []uint32 { return w.Keys }
func (w *Way) GetVals() []uint32 { return w.Vals }
func (w *Way) GetInfo() *Info    { return w.Info }
func (w *Way) GetRefs() []int64  { return w.Refs }

func (w *Way) marshal() []byte {
	var buf []byte

	if w.Id != nil {
		buf = appendZigZagField(buf, 1, *w.Id)
	}

	buf = appendPackedVarint(buf, 2, uint32sTo64s(w.Keys))
	buf = appendPackedVarint(buf, 3, uint32sTo64s(w.Vals))

	if w.Info != nil {
		buf = appendMessageField(buf, 4, w.Info.marshal())
	}

	buf = appendPackedZigZag(buf, 8, w.Refs)
	buf = appendPackedZigZag(buf, 9, w.Lat)
	buf = appendPackedZigZag(buf, 10, w.Lon)

	return buf
}

func unmarshalWay(data []byte) (*Way, error) {
	w := &Way{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			w.Id = ptrInt64(decodeZigZag(f.val))
		case 2:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			w.Keys = uint64sTo32s(vs)
		case 3:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			w.Vals = uint64sTo32s(vs)
		case 4:
			info, err := unmarshalInfo(f.data)
			if err != nil {
				return err
			}

			w.Info = info
		case 8:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			w.Refs = vs
		case 9:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			w.Lat = vs
		case 10:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			w.Lon = vs
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

// Relation_MemberType enumerates the three OSM entity kinds a member can
// reference.
type Relation_MemberType int32

const (
	Relation_NODE     Relation_MemberType = 0
	Relation_WAY       Relation_MemberType = 1
	Relation_RELATION Relation_MemberType = 2
)

// Relation is an ordered set of typed member references plus tags/metadata.
type Relation struct {
	Id       *int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64 // delta-coded
	Types    []Relation_MemberType
}

func (r *Relation) GetId() int64                    { return getInt64(r.Id) }
func (r *Relation) GetKeys() []uint32                { return r.Keys }
func (r *Relation) GetVals() []uint32                { return r.Vals }
func (r *Relation) GetInfo() *Info                   { return r.Info }
func (r *Relation) GetRolesSid() []int32             { return r.RolesSid }
func (r *Relation) GetMemids() []int64               { return r.Memids }
func (r *Relation) GetTypes() []Relation_MemberType  { return r.Types }

func (r *Relation) marshal() []byte {
	var buf []byte

	if r.Id != nil {
		buf = appendZigZagField(buf, 1, *r.Id)
	}

	buf = appendPackedVarint(buf, 2, uint32sTo64s(r.Keys))
	buf = appendPackedVarint(buf, 3, uint32sTo64s(r.Vals))

	if r.Info != nil {
		buf = appendMessageField(buf, 4, r.Info.marshal())
	}

	roles := make([]int64, len(r.RolesSid))
	for i, v := range r.RolesSid {
		roles[i] = int64(v)
	}

	buf = appendPackedZigZag(buf, 8, roles)
	buf = appendPackedZigZag(buf, 9, r.Memids)

	types := make([]uint64, len(r.Types))
	for i, v := range r.Types {
		types[i] = uint64(v)
	}

	buf = appendPackedVarint(buf, 10, types)

	return buf
}

func unmarshalRelation(data []byte) (*Relation, error) {
	r := &Relation{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			r.Id = ptrInt64(decodeZigZag(f.val))
		case 2:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			r.Keys = uint64sTo32s(vs)
		case 3:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			r.Vals = uint64sTo32s(vs)
		case 4:
			info, err := unmarshalInfo(f.data)
			if err != nil {
				return err
			}

			r.Info = info
		case 8:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			r.RolesSid = make([]int32, len(vs))
			for i, v := range vs {
				r.RolesSid[i] = int32(v)
			}
		case 9:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			r.Memids = vs
		case 10:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			r.Types = make([]Relation_MemberType, len(vs))
			for i, v := range vs {
				r.Types[i] = Relation_MemberType(v)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func uint32sTo64s(vs []uint32) []uint64 {
	if len(vs) == 0 {
		return nil
	}

	out := make([]uint64, len(vs))
	for i, v := range vs {
		out[i] = uint64(v)
	}

	return out
}

func uint64sTo32s(vs []uint64) []uint32 {
	if len(vs) == 0 {
		return nil
	}

	out := make([]uint32, len(vs))
	for i, v := range vs {
		out[i] = uint32(v)
	}

	return out
}
