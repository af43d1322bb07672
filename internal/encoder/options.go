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
	"strings"

	"m4o.io/pbf/v2/internal/core"
)

// MetadataField is a bitmask selecting which optional Info/DenseInfo columns
// the encoder serializes. The Visible flag is not one of these: it is always
// written, independent of add_metadata.
type MetadataField uint8

const (
	MetadataVersion MetadataField = 1 << iota
	MetadataTimestamp
	MetadataChangeset
	MetadataUID
	MetadataUser

	MetadataNone MetadataField = 0
	MetadataAll                = MetadataVersion | MetadataTimestamp | MetadataChangeset | MetadataUID | MetadataUser
)

// Has reports whether f is included in the mask.
func (m MetadataField) Has(f MetadataField) bool {
	return m&f != 0
}

// ParseMetadata interprets the add_metadata config value: "true" or "all"
// selects every field, "false" or "none" selects nothing, and anything else
// is read as a comma-separated list drawn from
// version,timestamp,changeset,uid,user.
func ParseMetadata(value string) (MetadataField, error) {
	switch value {
	case "true", "all":
		return MetadataAll, nil
	case "false", "none", "":
		return MetadataNone, nil
	}

	var m MetadataField

	for _, tok := range strings.Split(value, ",") {
		switch strings.TrimSpace(tok) {
		case "version":
			m |= MetadataVersion
		case "timestamp":
			m |= MetadataTimestamp
		case "changeset":
			m |= MetadataChangeset
		case "uid":
			m |= MetadataUID
		case "user":
			m |= MetadataUser
		default:
			return 0, &core.ConfigError{Key: "add_metadata", Reason: "unrecognized field " + tok}
		}
	}

	return m, nil
}

// BlockOptions configures how a batch of same-kind entities is serialized
// into a pb.PrimitiveBlock: whether nodes are written densely, which Info
// fields are carried, and whether way node references embed their location.
type BlockOptions struct {
	DenseNodes      bool
	Metadata        MetadataField
	LocationsOnWays bool
}

// DefaultBlockOptions matches the encoder's out-of-the-box behavior: dense
// nodes, every metadata field, no embedded way locations.
var DefaultBlockOptions = BlockOptions{
	DenseNodes: true,
	Metadata:   MetadataAll,
}
