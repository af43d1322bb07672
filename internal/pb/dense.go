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

// DenseInfo is the column-oriented counterpart of Info, one slice per field,
// all delta-coded except Visible.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

func (d *DenseInfo) GetVersion() []int32   { return d.Version }
func (d *DenseInfo) GetTimestamp() []int64 { return d.Timestamp }
func (d *DenseInfo) GetChangeset() []int64 { return d.Changeset }
func (d *DenseInfo) GetUid() []int32       { return d.Uid }
func (d *DenseInfo) GetUserSid() []int32   { return d.UserSid }
func (d *DenseInfo) GetVisible() []bool    { return d.Visible }

func (d *DenseInfo) marshal() []byte {
	var buf []byte

	vs := make([]uint64, len(d.Version))
	for i, v := range d.Version {
		vs[i] = uint64(uint32(v))
	}

	buf = appendPackedVarint(buf, 1, vs)
	buf = appendPackedZigZag(buf, 2, d.Timestamp)
	buf = appendPackedZigZag(buf, 3, d.Changeset)

	uid := make([]int64, len(d.Uid))
	for i, v := range d.Uid {
		uid[i] = int64(v)
	}

	buf = appendPackedZigZag(buf, 4, uid)

	sid := make([]int64, len(d.UserSid))
	for i, v := range d.UserSid {
		sid[i] = int64(v)
	}

	buf = appendPackedZigZag(buf, 5, sid)

	if len(d.Visible) > 0 {
		buf = appendPackedBool(buf, 6, d.Visible)
	}

	return buf
}

func unmarshalDenseInfo(data []byte) (*DenseInfo, error) {
	d := &DenseInfo{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			d.Version = make([]int32, len(vs))
			for i, v := range vs {
				d.Version[i] = int32(v)
			}
		case 2:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			d.Timestamp = vs
		case 3:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			d.Changeset = vs
		case 4:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			d.Uid = make([]int32, len(vs))
			for i, v := range vs {
				d.Uid[i] = int32(v)
			}
		case 5:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			d.UserSid = make([]int32, len(vs))
			for i, v := range vs {
				d.UserSid[i] = int32(v)
			}
		case 6:
			vs, err := consumePackedBool(f.data)
			if err != nil {
				return err
			}

			d.Visible = vs
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// DenseNodes is the column-oriented encoding of a run of nodes: every slice
// (other than KeysVals) is delta-coded against its predecessor.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func (d *DenseNodes) GetId() []int64         { return d.Id }
func (d *DenseNodes) GetDenseinfo() *DenseInfo { return d.Denseinfo }
func (d *DenseNodes) GetLat() []int64         { return d.Lat }
func (d *DenseNodes) GetLon() []int64         { return d.Lon }
func (d *DenseNodes) GetKeysVals() []int32    { return d.KeysVals }

func (d *DenseNodes) Marshal() []byte {
	var buf []byte

	buf = appendPackedZigZag(buf, 1, d.Id)

	if d.Denseinfo != nil {
		buf = appendMessageField(buf, 5, d.Denseinfo.marshal())
	}

	buf = appendPackedZigZag(buf, 8, d.Lat)
	buf = appendPackedZigZag(buf, 9, d.Lon)

	kv := make([]uint64, len(d.KeysVals))
	for i, v := range d.KeysVals {
		kv[i] = uint64(uint32(v))
	}

	buf = appendPackedVarint(buf, 10, kv)

	return buf
}

func unmarshalDenseNodes(data []byte) (*DenseNodes, error) {
	d := &DenseNodes{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			d.Id = vs
		case 5:
			di, err := unmarshalDenseInfo(f.data)
			if err != nil {
				return err
			}

			d.Denseinfo = di
		case 8:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			d.Lat = vs
		case 9:
			vs, err := consumePackedZigZag(f.data)
			if err != nil {
				return err
			}

			d.Lon = vs
		case 10:
			vs, err := consumePackedVarint(f.data)
			if err != nil {
				return err
			}

			d.KeysVals = make([]int32, len(vs))
			for i, v := range vs {
				d.KeysVals[i] = int32(v)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}
