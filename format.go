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
	"context"
	"fmt"
	"io"

	// opl registers itself under the "opl" tag as a side effect of import.
	_ "m4o.io/pbf/v2/internal/opl"
	"m4o.io/pbf/v2/internal/registry"
	"m4o.io/pbf/v2/model"
)

// PbfTag is the format tag the PBF codec registers itself under.
const PbfTag = "pbf"

// Codec turns a stream of bytes into entities and back. Both the "pbf" and
// "opl" tags registered with internal/registry resolve, via Lookup, to a
// value satisfying this interface.
type Codec interface {
	DecodeAll(r io.Reader) ([]model.Entity, error)
	EncodeAll(w io.Writer, entities []model.Entity) error
}

// pbfCodec adapts Encoder/Decoder to Codec.
type pbfCodec struct{}

func (pbfCodec) DecodeAll(r io.Reader) ([]model.Entity, error) {
	ctx := context.Background()

	d, err := NewDecoder(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("opening pbf decoder: %w", err)
	}

	defer d.Close()

	var entities []model.Entity

	for {
		e, err := d.Decode()
		if err == io.EOF {
			return entities, nil
		}

		if err != nil {
			return entities, err
		}

		entities = append(entities, e)
	}
}

func (pbfCodec) EncodeAll(w io.Writer, entities []model.Entity) error {
	e, err := NewEncoder(w)
	if err != nil {
		return fmt.Errorf("opening pbf encoder: %w", err)
	}

	if len(entities) > 0 {
		if err := e.EncodeBatch(entities); err != nil {
			e.Close()

			return err
		}
	}

	e.Close()

	return nil
}

// Open resolves tag ("pbf" or "opl") to its registered Codec.
func Open(tag string) (Codec, error) {
	factory, ok := registry.Lookup(tag)
	if !ok {
		return nil, &ConfigError{Key: tag, Reason: "no codec registered under this tag"}
	}

	v, err := factory()
	if err != nil {
		return nil, err
	}

	codec, ok := v.(Codec)
	if !ok {
		return nil, &ConfigError{Key: tag, Reason: fmt.Sprintf("registered factory returned %T, not a Codec", v)}
	}

	return codec, nil
}

func init() {
	registry.Register(PbfTag, func() (any, error) {
		return pbfCodec{}, nil
	})
}
