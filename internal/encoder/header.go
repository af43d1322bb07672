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
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"

	"m4o.io/pbf/v2/internal/pb"
	"m4o.io/pbf/v2/model"
)

// Required and optional PBF header feature strings, per §4.7 step 2.
const (
	FeatureOsmSchemaV06    = "OsmSchema-V0.6"
	FeatureDenseNodes      = "DenseNodes"
	FeatureHistoricalInfo  = "HistoricalInformation"
	FeatureLocationsOnWays = "LocationsOnWays"
)

// SaveHeader builds and writes the HeaderBlock. It always requires
// OsmSchema-V0.6; it additionally requires DenseNodes when opts.DenseNodes is
// set and HistoricalInformation when historical (the data set carries an
// entity past its first version) is true, and advertises LocationsOnWays as
// an optional feature when opts.LocationsOnWays is set.
func SaveHeader(wrtr io.Writer, hdr model.Header, compression BlobCompression, opts BlockOptions, historical bool) error {
	required := appendMissing(hdr.RequiredFeatures, FeatureOsmSchemaV06)

	if opts.DenseNodes {
		required = appendMissing(required, FeatureDenseNodes)
	}

	if historical {
		required = appendMissing(required, FeatureHistoricalInfo)
	}

	optional := hdr.OptionalFeatures

	if opts.LocationsOnWays {
		optional = appendMissing(optional, FeatureLocationsOnWays)
	}

	bbox := hdr.BoundingBox
	hb := &pb.HeaderBlock{
		Bbox: &pb.HeaderBBox{
			Top:    proto.Int64(bbox.Top.Coordinate()),
			Left:   proto.Int64(bbox.Left.Coordinate()),
			Bottom: proto.Int64(bbox.Bottom.Coordinate()),
			Right:  proto.Int64(bbox.Right.Coordinate()),
		},
		RequiredFeatures:                 required,
		OptionalFeatures:                 optional,
		Writingprogram:                   proto.String(hdr.WritingProgram),
		Source:                           proto.String(hdr.Source),
		OsmosisReplicationTimestamp:      proto.Int64(fromTimestamp(DateGranularityMs, hdr.OsmosisReplicationTimestamp)),
		OsmosisReplicationSequenceNumber: proto.Int64(hdr.OsmosisReplicationSequenceNumber),
		OsmosisReplicationBaseUrl:        proto.String(hdr.OsmosisReplicationBaseURL),
	}

	if err := writeBlob(wrtr, hb, compression); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	return nil
}

// appendMissing appends v to list unless it's already present.
func appendMissing(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}

	return append(append([]string{}, list...), v)
}
