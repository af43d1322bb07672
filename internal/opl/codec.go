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
	"io"

	"m4o.io/pbf/v2/internal/registry"
	"m4o.io/pbf/v2/model"
)

// Tag is the format tag this package registers itself under.
const Tag = "opl"

// Codec adapts this package's Reader/Writer to the shape callers look up
// through internal/registry: something that can turn a stream of bytes into
// entities and back. It satisfies the Codec interface the root package
// defines, structurally, so neither package imports the other.
type Codec struct{}

// DecodeAll reads every OPL entity from r.
func (Codec) DecodeAll(r io.Reader) ([]model.Entity, error) {
	return DecodeAll(r)
}

// EncodeAll writes every entity in entities to w as OPL text.
func (Codec) EncodeAll(w io.Writer, entities []model.Entity) error {
	return EncodeAll(w, entities)
}

func init() {
	registry.Register(Tag, func() (any, error) {
		return Codec{}, nil
	})
}
