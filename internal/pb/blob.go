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

// isBlobData marks the mutually exclusive payload variants of a Blob,
// mirroring the oneof that fileformat.proto declares for Blob.data.
type isBlobData interface {
	isBlobData()
}

type Blob_Raw struct{ Raw []byte }

type Blob_ZlibData struct{ ZlibData []byte }

type Blob_LzmaData struct{ LzmaData []byte }

type Blob_Lz4Data struct{ Lz4Data []byte }

type Blob_ZstdData struct{ ZstdData []byte }

func (*Blob_Raw) isBlobData()       {}
func (*Blob_ZlibData) isBlobData()  {}
func (*Blob_LzmaData) isBlobData()  {}
func (*Blob_Lz4Data) isBlobData()   {}
func (*Blob_ZstdData) isBlobData()  {}

// Blob carries either raw or one compressed variant of a PrimitiveBlock or
// HeaderBlock message.
type Blob struct {
	RawSize *int32
	Data    isBlobData
}

func (b *Blob) GetRawSize() int32 { return getInt32(b.GetRawSizeP()) }
func (b *Blob) GetRawSizeP() *int32 {
	if b == nil {
		return nil
	}

	return b.RawSize
}

func (b *Blob) GetRaw() []byte {
	if v, ok := b.Data.(*Blob_Raw); ok {
		return v.Raw
	}

	return nil
}

func (b *Blob) GetZlibData() []byte {
	if v, ok := b.Data.(*Blob_ZlibData); ok {
		return v.ZlibData
	}

	return nil
}

func (b *Blob) GetLzmaData() []byte {
	if v, ok := b.Data.(*Blob_LzmaData); ok {
		return v.LzmaData
	}

	return nil
}

func (b *Blob) GetLz4Data() []byte {
	if v, ok := b.Data.(*Blob_Lz4Data); ok {
		return v.Lz4Data
	}

	return nil
}

func (b *Blob) GetZstdData() []byte {
	if v, ok := b.Data.(*Blob_ZstdData); ok {
		return v.ZstdData
	}

	return nil
}

func (b *Blob) Marshal() []byte {
	var buf []byte

	if b.RawSize != nil {
		buf = appendVarintField(buf, 2, uint64(uint32(*b.RawSize)))
	}

	switch v := b.Data.(type) {
	case *Blob_Raw:
		buf = appendBytesField(buf, 1, v.Raw)
	case *Blob_ZlibData:
		buf = appendBytesField(buf, 3, v.ZlibData)
	case *Blob_LzmaData:
		buf = appendBytesField(buf, 4, v.LzmaData)
	case *Blob_Lz4Data:
		buf = appendBytesField(buf, 6, v.Lz4Data)
	case *Blob_ZstdData:
		buf = appendBytesField(buf, 7, v.ZstdData)
	}

	return buf
}

func UnmarshalBlob(data []byte) (*Blob, error) {
	b := &Blob{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			b.Data = &Blob_Raw{Raw: f.data}
		case 2:
			b.RawSize = ptrInt32(int32(f.val))
		case 3:
			b.Data = &Blob_ZlibData{ZlibData: f.data}
		case 4:
			b.Data = &Blob_LzmaData{LzmaData: f.data}
		case 6:
			b.Data = &Blob_Lz4Data{Lz4Data: f.data}
		case 7:
			b.Data = &Blob_ZstdData{ZstdData: f.data}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// BlobHeader precedes every Blob in the framed stream.
type BlobHeader struct {
	Type     *string
	IndexData []byte
	Datasize *int32
}

func (h *BlobHeader) GetType() string {
	if h == nil {
		return ""
	}

	return getString(h.Type)
}

func (h *BlobHeader) GetDatasize() int32 {
	if h == nil {
		return 0
	}

	return getInt32(h.Datasize)
}

func (h *BlobHeader) Marshal() []byte {
	var buf []byte

	if h.Type != nil {
		buf = appendStringField(buf, 1, *h.Type)
	}

	if h.IndexData != nil {
		buf = appendBytesField(buf, 2, h.IndexData)
	}

	if h.Datasize != nil {
		buf = appendVarintField(buf, 3, uint64(uint32(*h.Datasize)))
	}

	return buf
}

func UnmarshalBlobHeader(data []byte) (*BlobHeader, error) {
	h := &BlobHeader{}

	err := scanFields(data, func(f field) error {
		switch f.num {
		case 1:
			h.Type = ptrString(string(f.data))
		case 2:
			h.IndexData = f.data
		case 3:
			h.Datasize = ptrInt32(int32(f.val))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}
