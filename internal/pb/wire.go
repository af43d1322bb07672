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

// Package pb implements the fixed OSM PBF message set (fileformat.proto and
// osmformat.proto) directly on top of the protobuf wire primitives, without
// a protoc-generated binding. Each message is a plain Go struct with
// pointer fields for optional scalars, Get* accessors matching the shape of
// generated code, and hand-written Marshal/Unmarshal methods built from
// google.golang.org/protobuf/encoding/protowire.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// errTruncated is returned when a message ends in the middle of a field.
var errTruncated = fmt.Errorf("pb: truncated message")

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	b = protowire.AppendVarint(b, v)

	return b
}

func appendZigZagField(b []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(b, num, protowire.EncodeZigZag(v))
}

func decodeZigZag(v uint64) int64 {
	return protowire.DecodeZigZag(v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendBytes(b, v)

	return b
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendString(b, v)

	return b
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	var u uint64
	if v {
		u = 1
	}

	return appendVarintField(b, num, u)
}

// appendPackedVarint packs a repeated varint-encoded field (no zig-zag).
func appendPackedVarint(b []byte, num protowire.Number, vs []uint64) []byte {
	if len(vs) == 0 {
		return b
	}

	var payload []byte
	for _, v := range vs {
		payload = protowire.AppendVarint(payload, v)
	}

	return appendBytesField(b, num, payload)
}

// appendPackedZigZag packs a repeated sint-encoded field.
func appendPackedZigZag(b []byte, num protowire.Number, vs []int64) []byte {
	if len(vs) == 0 {
		return b
	}

	var payload []byte
	for _, v := range vs {
		payload = protowire.AppendVarint(payload, protowire.EncodeZigZag(v))
	}

	return appendBytesField(b, num, payload)
}

func appendPackedBool(b []byte, num protowire.Number, vs []bool) []byte {
	if len(vs) == 0 {
		return b
	}

	var payload []byte

	for _, v := range vs {
		u := uint64(0)
		if v {
			u = 1
		}

		payload = protowire.AppendVarint(payload, u)
	}

	return appendBytesField(b, num, payload)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	return appendBytesField(b, num, msg)
}

// consumePackedVarint reads a length-delimited run of plain varints.
func consumePackedVarint(b []byte) ([]uint64, error) {
	var out []uint64

	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, errTruncated
		}

		out = append(out, v)
		b = b[n:]
	}

	return out, nil
}

// consumePackedZigZag reads a length-delimited run of zig-zag varints.
func consumePackedZigZag(b []byte) ([]int64, error) {
	vs, err := consumePackedVarint(b)
	if err != nil {
		return nil, err
	}

	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = protowire.DecodeZigZag(v)
	}

	return out, nil
}

func consumePackedBool(b []byte) ([]bool, error) {
	vs, err := consumePackedVarint(b)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(vs))
	for i, v := range vs {
		out[i] = v != 0
	}

	return out, nil
}

// field is one decoded (tag, value) pair from a generic field scan.
type field struct {
	num  protowire.Number
	typ  protowire.Type
	data []byte // BytesType payload
	val  uint64 // VarintType/Fixed32Type/Fixed64Type payload
}

// scanFields walks b and invokes fn for every top-level varint, fixed or
// length-delimited field. Group fields are skipped; a truncated or malformed
// field yields errTruncated.
func scanFields(b []byte, fn func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errTruncated
		}

		b = b[n:]

		var f field
		f.num = num
		f.typ = typ

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return errTruncated
			}

			f.val = v
			b = b[n:]
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return errTruncated
			}

			f.val = uint64(v)
			b = b[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return errTruncated
			}

			f.val = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return errTruncated
			}

			f.data = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errTruncated
			}

			b = b[n:]

			continue
		}

		if err := fn(f); err != nil {
			return err
		}
	}

	return nil
}

func ptrInt32(v int32) *int32   { return &v }
func ptrInt64(v int64) *int64   { return &v }
func ptrUint32(v uint32) *uint32 { return &v }
func ptrBool(v bool) *bool      { return &v }
func ptrString(v string) *string { return &v }

func getInt32(p *int32) int32 {
	if p == nil {
		return 0
	}

	return *p
}

func getInt64(p *int64) int64 {
	if p == nil {
		return 0
	}

	return *p
}

func getUint32(p *uint32) uint32 {
	if p == nil {
		return 0
	}

	return *p
}

func getBool(p *bool) bool {
	if p == nil {
		return false
	}

	return *p
}

func getString(p *string) string {
	if p == nil {
		return ""
	}

	return *p
}
