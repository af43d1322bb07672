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

package info

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/pbf/v2"
	"m4o.io/pbf/v2/model"
)

func encodeSample(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	e, err := pbf.NewEncoder(&buf, pbf.WithSource("test"))
	require.NoError(t, err)

	require.NoError(t, e.EncodeBatch([]model.Entity{
		&model.Node{ID: 1, Info: &model.Info{Visible: true}, Lat: 51.5, Lon: -0.1},
		&model.Node{ID: 2, Info: &model.Info{Visible: true}, Lat: 51.6, Lon: -0.2},
		&model.Way{ID: 3, Info: &model.Info{Visible: true}, NodeIDs: []model.ID{1, 2}},
	}))

	e.Close()

	return &buf
}

func TestRunInfo(t *testing.T) {
	buf := encodeSample(t)

	info, err := runInfo(buf, 2, false)
	require.NoError(t, err)

	assert.Equal(t, "test", info.Source)
	assert.Equal(t, int64(0), info.NodeCount)
	assert.Equal(t, int64(0), info.WayCount)
	assert.Equal(t, int64(0), info.RelationCount)
}

func TestRunInfoExtended(t *testing.T) {
	buf := encodeSample(t)

	info, err := runInfo(buf, 2, true)
	require.NoError(t, err)

	assert.Equal(t, "test", info.Source)
	assert.Equal(t, int64(2), info.NodeCount)
	assert.Equal(t, int64(1), info.WayCount)
	assert.Equal(t, int64(0), info.RelationCount)
	assert.True(t, info.BoundingBox.Contains(51.5, -0.1))
	assert.True(t, info.BoundingBox.Contains(51.6, -0.2))
}
