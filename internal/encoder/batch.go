package encoder

import (
	"io"

	"github.com/destel/rill"

	"m4o.io/pbf/v2/internal/core"
	"m4o.io/pbf/v2/internal/pb"
	"m4o.io/pbf/v2/model"
)

func Coalesce(in <-chan []model.Entity, size int) <-chan rill.Try[[]model.Entity] {
	nch := make(chan rill.Try[model.Entity])
	rch := make(chan rill.Try[model.Entity])
	wch := make(chan rill.Try[model.Entity])

	go func() {
		defer close(nch)
		defer close(rch)
		defer close(wch)

		for entities := range in {
			for _, e := range entities {
				o := rill.Try[model.Entity]{Value: e}
				nch <- o
				rch <- o
				wch <- o
			}
		}
	}()

	bn := batchEntities[*model.Node](nch, size)
	br := batchEntities[*model.Relation](rch, size)
	bw := batchEntities[*model.Way](wch, size)

	return rill.Merge(bn, br, bw)
}

// ExtractBoundingBoxes passes entity batches through unchanged while also
// emitting, per batch, the bounding box of any nodes it contains and whether
// it holds an entity past its first version. The latter feeds the encoder's
// decision to set the HistoricalInformation required feature (§4.7 step 2).
func ExtractBoundingBoxes(
	in <-chan rill.Try[[]model.Entity],
) (
	<-chan rill.Try[[]model.Entity],
	<-chan rill.Try[*model.BoundingBox],
	<-chan rill.Try[bool],
) {
	ech := make(chan rill.Try[[]model.Entity])
	bch := make(chan rill.Try[*model.BoundingBox])
	hch := make(chan rill.Try[bool])

	go func() {
		defer close(ech)
		defer close(bch)
		defer close(hch)

		for entities := range in {
			ech <- entities

			bbox := model.InitialBoundingBox()
			historical := false

			for _, e := range entities.Value {
				if n, ok := e.(*model.Node); ok {
					bbox.ExpandWithLatLng(n.Lat, n.Lon)
				}

				if info := e.GetInfo(); info != nil && info.Version > 1 {
					historical = true
				}
			}

			bch <- rill.Wrap(bbox, nil)
			hch <- rill.Wrap(historical, nil)
		}
	}()

	return ech, bch, hch
}

func batchEntities[T model.Entity](in <-chan rill.Try[model.Entity], size int) <-chan rill.Try[[]model.Entity] {
	filtered := rill.OrderedFilter(in, 1, func(object model.Entity) (bool, error) {
		_, ok := object.(T)

		return ok, nil
	})

	return sizeAwareBatch(filtered, size)
}

// sizeAwareBatch groups same-kind entities into batches bounded by both
// entity count (size) and estimated serialized bytes (maxBlockBytes),
// enforcing data-model invariants I2 and I3 on every batch this pipeline
// hands to EncodeBatch. A single entity whose own estimated size already
// exceeds maxBlockBytes force-flushes whatever has accumulated and is then
// reported as a core.CapacityError rather than silently blown up into an
// oversized block, per the §7 force-flush-then-fail path.
func sizeAwareBatch(in <-chan rill.Try[model.Entity], size int) <-chan rill.Try[[]model.Entity] {
	out := make(chan rill.Try[[]model.Entity])

	go func() {
		defer close(out)

		builder := NewPrimitiveBlockBuilder(size)

		flush := func() {
			if !builder.Empty() {
				out <- rill.Try[[]model.Entity]{Value: builder.Entities()}
				builder.Reset()
			}
		}

		for item := range in {
			if item.Error != nil {
				flush()
				out <- rill.Try[[]model.Entity]{Error: item.Error}

				continue
			}

			e := item.Value

			if s := estimateSize(e); s > maxBlockBytes {
				flush()
				out <- rill.Try[[]model.Entity]{Error: &core.CapacityError{Limit: maxBlockBytes, Size: s}}

				continue
			}

			if !builder.CanAdd(e) {
				flush()
			}

			builder.Add(e)
		}

		flush()
	}()

	return out
}

// EncodeBatch serializes a batch with DefaultBlockOptions.
func EncodeBatch(batch []model.Entity) (*pb.PrimitiveBlock, error) {
	return newBlockContext(batch, DefaultBlockOptions).extractPrimitiveBlock(), nil
}

// GenerateBlockEncoder returns a batch encoder bound to opts, for use as the
// mapper stage between Coalesce and GenerateBatchPacker.
func GenerateBlockEncoder(opts BlockOptions) func(batch []model.Entity) (*pb.PrimitiveBlock, error) {
	return func(batch []model.Entity) (*pb.PrimitiveBlock, error) {
		return newBlockContext(batch, opts).extractPrimitiveBlock(), nil
	}
}

func SavePacked(w io.Writer, ch <-chan rill.Try[[]byte]) <-chan rill.Try[struct{}] {
	out := make(chan rill.Try[struct{}])

	go func() {
		defer close(out)

		for buf := range ch {
			out <- rill.Wrap(struct{}{}, SaveBlock(w, buf))
		}
	}()

	return out
}

func GenerateBatchPacker(c BlobCompression) func(block *pb.PrimitiveBlock) ([]byte, error) {
	return func(block *pb.PrimitiveBlock) ([]byte, error) {
		return Pack(block, c)
	}
}
