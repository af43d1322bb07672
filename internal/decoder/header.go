// Copyright 2017-25 the original author or authors.
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

package decoder

import (
	"fmt"
	"io"
	"time"

	"m4o.io/pbf/v2/internal/core"
	"m4o.io/pbf/v2/internal/pb"
	"m4o.io/pbf/v2/model"
)

// LoadHeader reads the leading OSMHeader blob off of reader and decodes it
// into a model.Header.
func LoadHeader(reader io.Reader) (model.Header, error) {
	blob, err := readBlob(reader)
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to read header blob: %w", err)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	raw, err := unpack(buf, blob)
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to unpack header blob: %w", err)
	}

	hb, err := pb.UnmarshalHeaderBlock(raw)
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to unmarshal header block: %w", err)
	}

	return toHeader(hb), nil
}

func toHeader(hb *pb.HeaderBlock) model.Header {
	h := model.Header{
		RequiredFeatures:                 hb.RequiredFeatures,
		OptionalFeatures:                 hb.OptionalFeatures,
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
	}

	if hb.OsmosisReplicationTimestamp != nil {
		h.OsmosisReplicationTimestamp = time.Unix(*hb.OsmosisReplicationTimestamp, 0).UTC()
	}

	if hb.OsmosisReplicationBaseUrl != nil {
		h.OsmosisReplicationBaseURL = *hb.OsmosisReplicationBaseUrl
	}

	if bbox := hb.GetBbox(); bbox != nil {
		h.BoundingBox = &model.BoundingBox{
			Top:    model.ToDegrees(0, 1, bbox.GetTop()),
			Left:   model.ToDegrees(0, 1, bbox.GetLeft()),
			Bottom: model.ToDegrees(0, 1, bbox.GetBottom()),
			Right:  model.ToDegrees(0, 1, bbox.GetRight()),
		}
	}

	return h
}
