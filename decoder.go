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
	"log/slog"

	"github.com/destel/rill"

	"m4o.io/pbf/v2/internal/decoder"
	"m4o.io/pbf/v2/internal/pb"
	"m4o.io/pbf/v2/model"
)

// Decoder reads and decodes OpenStreetMap PBF data from an input stream.
type Decoder struct {
	Header model.Header

	cfg    *decoderOptions
	cancel context.CancelFunc
	pairs  <-chan rill.Try[model.Entity]
}

// NewDecoder returns a new decoder, configured with options, that reads from
// reader. The decoder is initialized with the OSM header before any
// background decoding pipeline is started.
func NewDecoder(ctx context.Context, reader io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	header, err := decoder.LoadHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("unable to load header: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	blobs := generateBlobs(ctx, reader)
	batched := rill.Batch(blobs, cfg.protoBatchSize, -1)
	decoded := rill.OrderedMap(batched, int(cfg.nCPU), decodeBatch)
	pairs := flattenEntities(decoded)

	d := &Decoder{
		Header: header,
		cfg:    &cfg,
		cancel: cancel,
		pairs:  pairs,
	}

	return d, nil
}

// Decode reads the next OSM entity and returns either a *model.Node,
// *model.Way, or *model.Relation representing the underlying OpenStreetMap
// PBF data, or the error encountered. The end of the input stream is
// reported by an io.EOF error.
func (d *Decoder) Decode() (model.Entity, error) {
	res, more := <-d.pairs
	if !more {
		return nil, io.EOF
	}

	return res.Value, res.Error
}

// Close cancels the background decoding pipeline.
func (d *Decoder) Close() {
	d.cancel()
}

// generateBlobs adapts decoder.GenerateBlobReader's range-over-func iterator into a
// channel so it can feed rill.Batch.
func generateBlobs(ctx context.Context, reader io.Reader) <-chan rill.Try[*pb.Blob] {
	out := make(chan rill.Try[*pb.Blob])

	go func() {
		defer close(out)

		for blob, err := range decoder.GenerateBlobReader(ctx, reader) {
			if err != nil {
				out <- rill.Try[*pb.Blob]{Error: err}

				return
			}

			select {
			case <-ctx.Done():
				return
			case out <- rill.Try[*pb.Blob]{Value: blob}:
			}
		}
	}()

	return out
}

// decodeBatch unpacks and parses one batch of blobs into the entities it
// contains, draining decoder.DecodeBatch's own per-blob channel into a single
// slice so it can flow through rill.OrderedMap alongside every other batch.
func decodeBatch(blobs []*pb.Blob) ([]model.Entity, error) {
	var entities []model.Entity

	for res := range decoder.DecodeBatch(blobs) {
		if res.Error != nil {
			return nil, res.Error
		}

		entities = append(entities, res.Value...)
	}

	return entities, nil
}

// flattenEntities splits each decoded batch back into individual entities,
// preserving order, so Decode can hand them out one at a time.
func flattenEntities(in <-chan rill.Try[[]model.Entity]) <-chan rill.Try[model.Entity] {
	out := make(chan rill.Try[model.Entity])

	go func() {
		defer close(out)

		for batch := range in {
			if batch.Error != nil {
				slog.Error("error decoding batch", "error", batch.Error)
				out <- rill.Try[model.Entity]{Error: batch.Error}

				return
			}

			for _, e := range batch.Value {
				out <- rill.Try[model.Entity]{Value: e}
			}
		}
	}()

	return out
}
