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

package opl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/pbf/v2/model"
)

func TestParseLineNode(t *testing.T) {
	line := "n1 v1 dV c100 t2016-01-03T09:15:54Z i123 uexample Thighway=residential x1.234 y5.678"

	e, err := parseLine(line)
	require.NoError(t, err)
	require.IsType(t, &model.Node{}, e)

	n := e.(*model.Node)
	assert.Equal(t, model.ID(1), n.ID)
	assert.Equal(t, int32(1), n.Info.Version)
	assert.True(t, n.Info.Visible)
	assert.Equal(t, int64(100), n.Info.Changeset)
	assert.Equal(t, model.UID(123), n.Info.UID)
	assert.Equal(t, "example", n.Info.User)
	assert.Equal(t, map[string]string{"highway": "residential"}, n.Tags)
	assert.InDelta(t, 1.234, float64(n.Lon), 1e-9)
	assert.InDelta(t, 5.678, float64(n.Lat), 1e-9)

	ts, err := time.Parse(time.RFC3339, "2016-01-03T09:15:54Z")
	require.NoError(t, err)
	assert.True(t, n.Info.Timestamp.Equal(ts))
}

func TestParseLineWay(t *testing.T) {
	line := "w1 v2 dV c1 t2016-01-03T09:15:54Z i1 u Thighway=residential N1,2,3"

	e, err := parseLine(line)
	require.NoError(t, err)
	require.IsType(t, &model.Way{}, e)

	w := e.(*model.Way)
	assert.Equal(t, model.ID(1), w.ID)
	assert.Equal(t, []model.ID{1, 2, 3}, w.NodeIDs)
	assert.Equal(t, map[string]string{"highway": "residential"}, w.Tags)
}

func TestParseLineRelation(t *testing.T) {
	line := "r1 v1 dV c1 t2016-01-03T09:15:54Z i1 u Ttype=route Mn1@,w2@outer,r3@"

	e, err := parseLine(line)
	require.NoError(t, err)
	require.IsType(t, &model.Relation{}, e)

	rel := e.(*model.Relation)
	assert.Equal(t, []model.Member{
		{ID: 1, Type: model.NODE, Role: ""},
		{ID: 2, Type: model.WAY, Role: "outer"},
		{ID: 3, Type: model.RELATION, Role: ""},
	}, rel.Members)
}

func TestParseLineDeleted(t *testing.T) {
	e, err := parseLine("n1 v2 dD c1 t i1 u T")
	require.NoError(t, err)

	n := e.(*model.Node)
	assert.False(t, n.Info.Visible)
}

func TestParseLineChangesetIgnored(t *testing.T) {
	e, err := parseLine("c1 c1 i1 uexample")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestParseLineBadEscape(t *testing.T) {
	_, err := parseLine("n1 v1 dV c1 t i1 u%ZZ T")
	assert.Error(t, err)
}

func TestParseLineUnrecognizedType(t *testing.T) {
	_, err := parseLine("z1 v1")
	assert.Error(t, err)
}

func TestEncodeLineRoundTrip(t *testing.T) {
	n := &model.Node{
		ID:  1,
		Tags: map[string]string{"highway": "residential"},
		Info: &model.Info{
			Version:   1,
			Visible:   true,
			Changeset: 100,
			UID:       123,
			User:      "example",
			Timestamp: time.Date(2016, 1, 3, 9, 15, 54, 0, time.UTC),
		},
		Lon: 1.234,
		Lat: 5.678,
	}

	line, err := encodeLine(n)
	require.NoError(t, err)

	e, err := parseLine(line)
	require.NoError(t, err)

	got := e.(*model.Node)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, n.Tags, got.Tags)
	assert.Equal(t, n.Info.Version, got.Info.Version)
	assert.Equal(t, n.Info.Visible, got.Info.Visible)
	assert.Equal(t, n.Info.Changeset, got.Info.Changeset)
	assert.Equal(t, n.Info.UID, got.Info.UID)
	assert.Equal(t, n.Info.User, got.Info.User)
	assert.True(t, n.Info.Timestamp.Equal(got.Info.Timestamp))
	assert.InDelta(t, float64(n.Lon), float64(got.Lon), 1e-9)
	assert.InDelta(t, float64(n.Lat), float64(got.Lat), 1e-9)
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	s := "a,b=c@d%e f"

	escaped := escape(s)
	assert.NotContains(t, escaped, ",")

	got, err := unescape(escaped)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
