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

package pbf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/pbf/v2/model"
)

func TestOpenKnownTags(t *testing.T) {
	for _, tag := range []string{"pbf", "opl"} {
		codec, err := Open(tag)
		require.NoError(t, err)
		assert.NotNil(t, codec)
	}
}

func TestOpenUnknownTag(t *testing.T) {
	_, err := Open("geojson")
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestOPLCodecRoundTrip(t *testing.T) {
	codec, err := Open("opl")
	require.NoError(t, err)

	entities := []model.Entity{
		&model.Node{
			ID:   1,
			Tags: map[string]string{"amenity": "cafe"},
			Info: &model.Info{Version: 1, Visible: true},
			Lon:  1.5,
			Lat:  2.5,
		},
	}

	var buf bytes.Buffer

	require.NoError(t, codec.EncodeAll(&buf, entities))

	decoded, err := codec.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	n, ok := decoded[0].(*model.Node)
	require.True(t, ok)
	assert.Equal(t, model.ID(1), n.ID)
	assert.Equal(t, "cafe", n.Tags["amenity"])
}
