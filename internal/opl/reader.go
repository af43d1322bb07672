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
	"bufio"
	"fmt"
	"io"
	"strings"

	"m4o.io/pbf/v2/internal/core"
	"m4o.io/pbf/v2/model"
)

const (
	// defaultBufferCapacity bounds how much unterminated input Reader will
	// carry forward between Feed calls before reporting a FormatError for
	// the line fragment it's holding.
	defaultBufferCapacity = 1024 * 1024

	// defaultFlushThreshold is the point at which Reader proactively parses
	// and emits whatever complete lines it's accumulated, rather than
	// waiting for the caller to ask, mirroring the incremental line-format
	// readers this package is modeled on.
	defaultFlushThreshold = 800 * 1024
)

// Reader incrementally parses OPL text fed to it in arbitrary-sized chunks,
// reassembling lines split across chunk boundaries. It is not safe for
// concurrent use.
type Reader struct {
	flushThreshold int
	bufferCapacity int

	rest string
	line int
}

// NewReader returns a Reader ready to accept chunks via Feed.
func NewReader(opts ...Option) *Reader {
	cfg := defaultConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Reader{
		flushThreshold: cfg.flushThreshold,
		bufferCapacity: cfg.bufferCapacity,
	}
}

// Feed appends chunk to the reader's pending input. While the pending input
// is shorter than the flush threshold, Feed only buffers it and returns no
// entities; once it reaches the threshold, Feed returns every entity parsed
// from the complete lines it contains. Complete lines are determined by
// newline boundaries; a trailing partial line is carried over to the next
// Feed or Close call. 'c' (changeset) lines are consumed for
// line-counting purposes but contribute no entity.
func (r *Reader) Feed(chunk []byte) ([]model.Entity, error) {
	r.rest += string(chunk)

	if len(r.rest) < r.flushThreshold {
		return nil, nil
	}

	return r.drain(false)
}

// Close flushes any remaining buffered, newline-terminated lines plus a
// final unterminated line if one is pending, and releases the reader's
// state. It returns the entities parsed from that trailing content.
func (r *Reader) Close() ([]model.Entity, error) {
	return r.drain(true)
}

// drain parses every complete line currently buffered. When final is true,
// a trailing line with no newline is parsed too; otherwise it's kept for
// the next call, unless it has grown past bufferCapacity, in which case the
// input is malformed (a runaway line) and a FormatError is returned.
func (r *Reader) drain(final bool) ([]model.Entity, error) {
	var entities []model.Entity

	for {
		nl := strings.IndexByte(r.rest, '\n')
		if nl < 0 {
			break
		}

		raw := r.rest[:nl]
		r.rest = r.rest[nl+1:]
		r.line++

		e, err := r.parse(raw)
		if err != nil {
			return entities, err
		}

		if e != nil {
			entities = append(entities, e)
		}
	}

	if final {
		if r.rest != "" {
			r.line++

			e, err := r.parse(r.rest)
			if err != nil {
				return entities, err
			}

			if e != nil {
				entities = append(entities, e)
			}
		}

		r.rest = ""

		return entities, nil
	}

	if len(r.rest) > r.bufferCapacity {
		return entities, &core.FormatError{
			Reason: fmt.Sprintf("line exceeds %d byte buffer with no terminator", r.bufferCapacity),
			Line:   r.line + 1,
		}
	}

	return entities, nil
}

func (r *Reader) parse(raw string) (model.Entity, error) {
	line := strings.TrimRight(raw, "\r")
	if line == "" {
		return nil, nil
	}

	e, err := parseLine(line)
	if err != nil {
		return nil, &core.FormatError{Reason: err.Error(), Line: r.line, Err: err}
	}

	return e, nil
}

// DecodeAll reads every entity from r, draining it to EOF. It's a
// convenience for callers that don't need streaming input, such as tests.
func DecodeAll(r io.Reader, opts ...Option) ([]model.Entity, error) {
	reader := NewReader(opts...)

	br := bufio.NewReaderSize(r, defaultBufferCapacity)

	var entities []model.Entity

	buf := make([]byte, 64*1024)

	for {
		n, err := br.Read(buf)
		if n > 0 {
			es, ferr := reader.Feed(buf[:n])
			if ferr != nil {
				return entities, ferr
			}

			entities = append(entities, es...)
		}

		if err == io.EOF {
			es, ferr := reader.Close()
			if ferr != nil {
				return entities, ferr
			}

			entities = append(entities, es...)

			return entities, nil
		}

		if err != nil {
			return entities, fmt.Errorf("reading opl input: %w", err)
		}
	}
}
