package pbf

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"m4o.io/pbf/v2/internal/encoder"
)

const (
	DefaultBlobCompression = encoder.ZLIB

	tempFileName = "entities.pbf"
)

// encoderOptions provides optional configuration parameters for Encoder construction.
type encoderOptions struct {
	compression encoder.BlobCompression
	nCPU        uint16 // the number of CPUs to use for background processing

	store string
	wrtr  *os.File

	requiredFeatures                 []string
	optionalFeatures                 []string
	writingProgram                   string
	source                           string
	osmosisReplicationTimestamp      time.Time
	osmosisReplicationSequenceNumber int64
	osmosisReplicationBaseURL        string

	denseNodes      bool
	metadata        encoder.MetadataField
	locationsOnWays bool

	// err holds the first error raised by a string-keyed WithOption call;
	// NewEncoder surfaces it instead of starting the pipeline.
	err error
}

// EncoderOption configures how we set up the encoder.
type EncoderOption func(*encoderOptions)

// WithCompression specifies the compression algorithm to use when encoding
// PBF blobs.  The default is ZLIB.
func WithCompression(compression encoder.BlobCompression) EncoderOption {
	return func(o *encoderOptions) {
		o.compression = compression
	}
}

// WithStorePath lets you specify where to temporarily store entities.
func WithStorePath(path string) EncoderOption {
	return func(o *encoderOptions) {
		o.store = path
	}
}

// WithRequiredFeatures sets the required features of the PBF header.
func WithRequiredFeatures(features ...string) EncoderOption {
	return func(o *encoderOptions) {
		o.requiredFeatures = append(o.requiredFeatures, features...)
	}
}

// WithOptionalFeatures sets the optional features of the PBF header.
func WithOptionalFeatures(features ...string) EncoderOption {
	return func(o *encoderOptions) {
		o.optionalFeatures = append(o.optionalFeatures, features...)
	}
}

// WithWritingProgram sets the writing program of the PBF header.
func WithWritingProgram(program string) EncoderOption {
	return func(o *encoderOptions) {
		o.writingProgram = program
	}
}

// WithSource sets the source of the PBF header.
func WithSource(source string) EncoderOption {
	return func(o *encoderOptions) {
		o.source = source
	}
}

// WithOsmosisReplicationTimestamp sets the Osmosis replication timestamp of
// the PBF header.
func WithOsmosisReplicationTimestamp(timestamp time.Time) EncoderOption {
	return func(o *encoderOptions) {
		o.osmosisReplicationTimestamp = timestamp
	}
}

// WithOsmosisReplicationSequenceNumber sets the Osmosis replication sequence
// number of the PBF header.
func WithOsmosisReplicationSequenceNumber(sequenceNumber int64) EncoderOption {
	return func(o *encoderOptions) {
		o.osmosisReplicationSequenceNumber = sequenceNumber
	}
}

// WithOsmosisReplicationBaseURL sets the Osmosis replication base URL of the
// PBF header.
func WithOsmosisReplicationBaseURL(url string) EncoderOption {
	return func(o *encoderOptions) {
		o.osmosisReplicationBaseURL = url
	}
}

// WithDenseNodes toggles whether nodes are emitted as DenseNodes (the
// default) or, when false, as individual Node messages.
func WithDenseNodes(enabled bool) EncoderOption {
	return func(o *encoderOptions) {
		o.denseNodes = enabled
	}
}

// WithMetadataFields selects which Info/DenseInfo columns are serialized.
// The default is encoder.MetadataAll.
func WithMetadataFields(fields encoder.MetadataField) EncoderOption {
	return func(o *encoderOptions) {
		o.metadata = fields
	}
}

// WithLocationsOnWays toggles embedding each way's per-nodeRef coordinates
// directly in the Way message and advertising the LocationsOnWays optional
// feature. The default is false.
func WithLocationsOnWays(enabled bool) EncoderOption {
	return func(o *encoderOptions) {
		o.locationsOnWays = enabled
	}
}

// WithOption sets an encoder option by its external config key, mirroring
// the pbf_dense_nodes / pbf_compression / add_metadata / locations_on_ways
// key=value surface. pbf_add_metadata is a deprecated alias for
// add_metadata and, like any unrecognized key, is rejected with a
// ConfigError rather than silently ignored.
func WithOption(key, value string) EncoderOption {
	return func(o *encoderOptions) {
		switch key {
		case "pbf_dense_nodes":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				o.setErr(&ConfigError{Key: key, Reason: "not a bool: " + value})
				return
			}

			o.denseNodes = enabled
		case "pbf_compression":
			c, err := parseCompression(value)
			if err != nil {
				o.setErr(&ConfigError{Key: key, Reason: err.Error()})
				return
			}

			o.compression = c
		case "add_metadata":
			m, err := encoder.ParseMetadata(value)
			if err != nil {
				o.setErr(err)
				return
			}

			o.metadata = m
		case "locations_on_ways":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				o.setErr(&ConfigError{Key: key, Reason: "not a bool: " + value})
				return
			}

			o.locationsOnWays = enabled
		case "pbf_add_metadata":
			o.setErr(&ConfigError{Key: key, Reason: "deprecated alias for add_metadata"})
		default:
			o.setErr(&ConfigError{Key: key, Reason: "unrecognized option"})
		}
	}
}

func (o *encoderOptions) setErr(err error) {
	if o.err == nil {
		o.err = err
	}
}

func parseCompression(value string) (encoder.BlobCompression, error) {
	switch value {
	case "zlib":
		return encoder.ZLIB, nil
	case "none":
		return encoder.RAW, nil
	case "lzma":
		return encoder.LZMA, nil
	case "lz4":
		return encoder.LZ4, nil
	case "zstd":
		return encoder.ZSTD, nil
	default:
		return 0, fmt.Errorf("unrecognized compression %q", value)
	}
}

// defaultEncoderConfig provides a default configuration for encoders.
var defaultEncoderConfig = encoderOptions{
	compression: DefaultBlobCompression,
	denseNodes:  true,
	metadata:    encoder.MetadataAll,
}

// initializeTempStore initializes the temporary file that entities are stored
// before being copied, after the header, to the io.Writer passed to the encoder.
func initializeTempStore(o *encoderOptions) {
	if o.store == "" {
		tmpdir, err := os.MkdirTemp("", "pbf")
		if err != nil {
			panic(fmt.Errorf("cannot create temporary directory: %w", err))
		}

		o.store = tmpdir
	}

	if wrtr, err := os.Create(path.Join(o.store, tempFileName)); err != nil {
		panic(fmt.Errorf("cannot create temporary file %s: %w", path.Join(o.store, tempFileName), err))
	} else {
		o.wrtr = wrtr
	}
}
