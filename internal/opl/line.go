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
	"fmt"
	"strconv"
	"strings"
	"time"

	"m4o.io/pbf/v2/model"
)

// parseLine parses one OPL record: a type letter ('n', 'w', 'r', or 'c')
// glued to its id, followed by space-separated lettered fields. 'c'
// (changeset) records are recognized but produce no model.Entity, since
// changesets aren't part of the object model this codec exchanges.
func parseLine(line string) (model.Entity, error) {
	if line == "" {
		return nil, fmt.Errorf("empty line")
	}

	kind := line[0]

	sp := strings.IndexByte(line, ' ')

	var idField, rest string
	if sp < 0 {
		idField = line[1:]
	} else {
		idField = line[1:sp]
		rest = line[sp+1:]
	}

	id, err := strconv.ParseInt(idField, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad id %q: %w", idField, err)
	}

	info := &model.Info{Visible: true}

	var (
		tags map[string]string
		lon  model.Degrees
		lat  model.Degrees
		refs []model.ID
		mems []model.Member
	)

	for _, tok := range strings.Fields(rest) {
		if len(tok) == 0 {
			continue
		}

		field, value := tok[0], tok[1:]

		switch field {
		case 'v':
			v, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bad version %q: %w", value, err)
			}

			info.Version = int32(v)
		case 'd':
			switch value {
			case "V":
				info.Visible = true
			case "D":
				info.Visible = false
			default:
				return nil, fmt.Errorf("bad visible flag %q", value)
			}
		case 'c':
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad changeset %q: %w", value, err)
			}

			info.Changeset = v
		case 't':
			if value == "" {
				continue
			}

			ts, err := time.Parse(time.RFC3339, value)
			if err != nil {
				return nil, fmt.Errorf("bad timestamp %q: %w", value, err)
			}

			info.Timestamp = ts
		case 'i':
			v, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bad uid %q: %w", value, err)
			}

			info.UID = model.UID(v)
		case 'u':
			u, err := unescape(value)
			if err != nil {
				return nil, fmt.Errorf("bad user %q: %w", value, err)
			}

			info.User = u
		case 'T':
			t, err := parseTags(value)
			if err != nil {
				return nil, err
			}

			tags = t
		case 'x':
			d, err := model.ParseDegrees(value)
			if err != nil {
				return nil, fmt.Errorf("bad lon %q: %w", value, err)
			}

			lon = d
		case 'y':
			d, err := model.ParseDegrees(value)
			if err != nil {
				return nil, fmt.Errorf("bad lat %q: %w", value, err)
			}

			lat = d
		case 'N':
			r, err := parseRefs(value)
			if err != nil {
				return nil, err
			}

			refs = r
		case 'M':
			m, err := parseMembers(value)
			if err != nil {
				return nil, err
			}

			mems = m
		default:
			return nil, fmt.Errorf("unrecognized field %q", tok)
		}
	}

	switch kind {
	case 'n':
		return &model.Node{ID: model.ID(id), Tags: tags, Info: info, Lat: lat, Lon: lon}, nil
	case 'w':
		return &model.Way{ID: model.ID(id), Tags: tags, Info: info, NodeIDs: refs}, nil
	case 'r':
		return &model.Relation{ID: model.ID(id), Tags: tags, Info: info, Members: mems}, nil
	case 'c':
		return nil, nil
	default:
		return nil, fmt.Errorf("unrecognized record type %q", string(kind))
	}
}

func parseTags(value string) (map[string]string, error) {
	if value == "" {
		return nil, nil
	}

	tags := make(map[string]string)

	for _, pair := range strings.Split(value, ",") {
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			return nil, fmt.Errorf("bad tag %q: missing '='", pair)
		}

		k, err := unescape(pair[:eq])
		if err != nil {
			return nil, fmt.Errorf("bad tag key %q: %w", pair[:eq], err)
		}

		v, err := unescape(pair[eq+1:])
		if err != nil {
			return nil, fmt.Errorf("bad tag value %q: %w", pair[eq+1:], err)
		}

		tags[k] = v
	}

	return tags, nil
}

func parseRefs(value string) ([]model.ID, error) {
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	refs := make([]model.ID, len(parts))

	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad node ref %q: %w", p, err)
		}

		refs[i] = model.ID(v)
	}

	return refs, nil
}

func parseMembers(value string) ([]model.Member, error) {
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	members := make([]model.Member, len(parts))

	for i, p := range parts {
		if len(p) == 0 {
			return nil, fmt.Errorf("empty member")
		}

		mtype, err := parseMemberType(p[0])
		if err != nil {
			return nil, err
		}

		at := strings.IndexByte(p, '@')
		if at < 0 {
			return nil, fmt.Errorf("bad member %q: missing '@'", p)
		}

		id, err := strconv.ParseInt(p[1:at], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad member id %q: %w", p[1:at], err)
		}

		role, err := unescape(p[at+1:])
		if err != nil {
			return nil, fmt.Errorf("bad member role %q: %w", p[at+1:], err)
		}

		members[i] = model.Member{ID: model.ID(id), Type: mtype, Role: role}
	}

	return members, nil
}

func parseMemberType(c byte) (model.EntityType, error) {
	switch c {
	case 'n':
		return model.NODE, nil
	case 'w':
		return model.WAY, nil
	case 'r':
		return model.RELATION, nil
	default:
		return 0, fmt.Errorf("unrecognized member type %q", string(c))
	}
}

// encodeLine renders e as one canonical OPL line, without a trailing
// newline.
func encodeLine(e model.Entity) (string, error) {
	var b strings.Builder

	switch v := e.(type) {
	case *model.Node:
		fmt.Fprintf(&b, "n%d", v.ID)
		writeInfo(&b, v.Info)
		writeTags(&b, v.Tags)
		fmt.Fprintf(&b, " x%s y%s", ftoa(float64(v.Lon)), ftoa(float64(v.Lat)))
	case *model.Way:
		fmt.Fprintf(&b, "w%d", v.ID)
		writeInfo(&b, v.Info)
		writeTags(&b, v.Tags)
		writeRefs(&b, v.NodeIDs)
	case *model.Relation:
		fmt.Fprintf(&b, "r%d", v.ID)
		writeInfo(&b, v.Info)
		writeTags(&b, v.Tags)
		writeMembers(&b, v.Members)
	default:
		return "", fmt.Errorf("unsupported entity type %T", e)
	}

	return b.String(), nil
}

func writeInfo(b *strings.Builder, info *model.Info) {
	if info == nil {
		info = &model.Info{Visible: true}
	}

	fmt.Fprintf(b, " v%d", info.Version)

	if info.Visible {
		b.WriteString(" dV")
	} else {
		b.WriteString(" dD")
	}

	fmt.Fprintf(b, " c%d", info.Changeset)

	if !info.Timestamp.IsZero() {
		fmt.Fprintf(b, " t%s", info.Timestamp.UTC().Format(time.RFC3339))
	} else {
		b.WriteString(" t")
	}

	fmt.Fprintf(b, " i%d u%s", info.UID, escape(info.User))
}

func writeTags(b *strings.Builder, tags map[string]string) {
	b.WriteString(" T")

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}

	sortStrings(keys)

	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}

		fmt.Fprintf(b, "%s=%s", escape(k), escape(tags[k]))
	}
}

func writeRefs(b *strings.Builder, refs []model.ID) {
	b.WriteString(" N")

	for i, r := range refs {
		if i > 0 {
			b.WriteByte(',')
		}

		fmt.Fprintf(b, "%d", r)
	}
}

func writeMembers(b *strings.Builder, members []model.Member) {
	b.WriteString(" M")

	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}

		fmt.Fprintf(b, "%s%d@%s", memberTypeLetter(m.Type), m.ID, escape(m.Role))
	}
}

func memberTypeLetter(t model.EntityType) string {
	switch t {
	case model.NODE:
		return "n"
	case model.WAY:
		return "w"
	case model.RELATION:
		return "r"
	default:
		return "?"
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
