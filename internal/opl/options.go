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

type config struct {
	flushThreshold int
	bufferCapacity int
}

var defaultConfig = config{
	flushThreshold: defaultFlushThreshold,
	bufferCapacity: defaultBufferCapacity,
}

// Option configures a Reader or Writer.
type Option func(*config)

// WithBufferThreshold sets the number of pending input bytes at which a
// Reader proactively parses and emits buffered lines.
func WithBufferThreshold(n int) Option {
	return func(c *config) {
		c.flushThreshold = n
	}
}

// WithBufferCapacity sets the largest single unterminated line a Reader
// will carry between Feed calls before reporting a FormatError.
func WithBufferCapacity(n int) Option {
	return func(c *config) {
		c.bufferCapacity = n
	}
}
