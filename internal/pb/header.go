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

// HeaderBBox is the optional bounding box carried in a HeaderBlock. Values
// are nanodegrees (lon/lat * 1e9), matching osmformat.proto.
type HeaderBBox struct {
	Left   *int64
	Right  *int64
	Top    *int64
	Bottom *int64
}

func (h *HeaderBBox) GetLeft() int64   { return getInt64(h.Left) }
func (h *HeaderBBox) GetRight() int64  { return getInt64(h.Right) }
func (h *HeaderBBox) GetTop() int64    { return getInt64(h.Top) }
func (h *HeaderBBox) GetBottom() int64 { return getInt64(h.Bottom) }

func (h *HeaderBBox) marshal() []byte {
	var buf []byte

	if h.Left != nil {
		buf = appendZigZagField(buf, 1, *h.Left)
	}

	if h.Right != nil {
		buf = appendZigZagField(buf, 2, *h.Right)
	}

	if h.Top != nil {
		buf = appendZigZagField(buf, 3, *h.Top)
	}

	if h.Bottom != nil {
		buf = appendZigZagField(buf, 4, *h.Bottom)
	}

	return buf
}

func unmarshalHeaderBBox(data []byte) (*HeaderBBox, error) {
	bb := &HeaderBBox{}

	err := scanFields(data, func(f field) error {
		v := decodeZigZag(f.val)

		switch f.num {
		case 1:
			bb.Left = ptrInt64(v)
		case 2:
			bb.Right = ptrInt64(v)
		case 3:
			bb.Top = ptrInt64(v)
		case 4:
			bb.Bottom = ptrInt64(v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return bb, nil
}

// HeaderBlock is the first message of every PBF file.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   *string
	Source                           *string
	OsmosisReplicationTimestamp      *int64
	OsmosisReplicationSequenceNumber *int64
	OsmosisReplicationBaseUrl        *string
}

func (h *HeaderBlock) GetBbox() *HeaderBBox { return h.Bbox }

func (h *HeaderBlock) GetWritingprogram() string { return getString(h.Writingprogram) }

func (h *HeaderBlock) GetSource() string { return getString(h.Source) }

func (h *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	return getInt64(h.OsmosisReplicationSequenceNumber)
}

func (h *HeaderBlock) Marshal() []byte {
	var buf []byte

	if h.Bbox != nil {
		buf = appendMessageField(buf, 1, h.Bbox.marshal())
	}

	for _, s := range h.RequiredFeatures {
		buf = appendStringField(buf, 4, s)
	}

	for _, s := range h.OptionalFeatures {
		buf = appendStringField(buf, 5, s)
	}

	if h.Writingprogram != nil {
		buf = appendStringField(buf, 16, *h.Writingprogram)
	}

	if h.Source != nil {
		buf = appendStringField(buf, 17, *h.Source)
	}

	if h.OsmosisReplicationTimestamp != nil {
		buf = appendVarintField(buf, 32, uint64(*h.OsmosisReplicationTimestamp))
	}

	if h.OsmosisReplicationSequenceNumber != nil {
		buf = appendVarintField(buf, 33, uint64(*h.OsmosisReplicationSequenceNumber))
	}

	if h.OsmosisReplicationBaseUrl != nil {
		buf = appendStringField(buf, 34, *h.OsmosisReplicationBaseUrl)
	}

	return buf
}

func UnmarshalHeaderBlock(data []byte) (*HeaderBlock, error) {
	h := &HeaderBlock{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			bb, err := unmarshalHeaderBBox(f.data)
			if err != nil {
				return err
			}

			h.Bbox = bb
		case 4:
			h.RequiredFeatures = append(h.RequiredFeatures, string(f.data))
		case 5:
			h.OptionalFeatures = append(h.OptionalFeatures, string(f.data))
		case 16:
			h.Writingprogram = ptrString(string(f.data))
		case 17:
			h.Source = ptrString(string(f.data))
		case 32:
			h.OsmosisReplicationTimestamp = ptrInt64(int64(f.val))
		case 33:
			h.OsmosisReplicationSequenceNumber = ptrInt64(int64(f.val))
		case 34:
			h.OsmosisReplicationBaseUrl = ptrString(string(f.data))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}
