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

package core

import "fmt"

// FormatError reports malformed input: a bad frame, an unknown compression
// tag, a blob whose decompressed size doesn't match raw_size, or (for OPL) a
// line that fails to parse. Line is 1-based and zero when the error isn't
// tied to a specific line.
type FormatError struct {
	Reason string
	Line   int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error at line %d: %s", e.Line, e.Reason)
	}

	return fmt.Sprintf("format error: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ConfigError reports an unrecognized or deprecated option key, or mutually
// exclusive settings.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Key, e.Reason)
}

// CapacityError reports an entity whose encoded size alone exceeds the
// uncompressed blob size limit, even in a freshly flushed block.
type CapacityError struct {
	Limit int
	Size  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("entity encodes to %d bytes, exceeding the %d byte block limit", e.Size, e.Limit)
}

// CancelledError is observed when the output queue backing a pipeline has
// been closed out from under a producer or consumer.
type CancelledError struct{}

func (e *CancelledError) Error() string { return "operation cancelled: output queue closed" }
