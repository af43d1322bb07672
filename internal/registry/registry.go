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

// Package registry is the process-wide map from a format tag ("pbf", "opl",
// ...) to the factory that builds a codec for it, mirroring how
// image.RegisterFormat or database/sql.Register let a format announce itself
// at init() time instead of the core importing every format by name.
package registry

import (
	"fmt"
	"sync"
)

// Factory builds a codec instance for one format. What it returns is
// format-specific (an encoder, a decoder, a parser); callers type-assert the
// result to the interface they expect.
type Factory func() (any, error)

var (
	mu        sync.Mutex
	factories = make(map[string]Factory)
)

// Register installs factory under tag. It panics if tag is already
// registered — duplicate registration of the same format tag is a
// programming error, caught once at package init time rather than handled
// as a runtime condition.
func Register(tag string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := factories[tag]; ok {
		panic(fmt.Sprintf("registry: format %q already registered", tag))
	}

	factories[tag] = factory
}

// Lookup returns the factory registered for tag, if any.
func Lookup(tag string) (Factory, bool) {
	mu.Lock()
	defer mu.Unlock()

	factory, ok := factories[tag]

	return factory, ok
}

// Tags returns every currently registered format tag, in no particular
// order.
func Tags() []string {
	mu.Lock()
	defer mu.Unlock()

	tags := make([]string, 0, len(factories))
	for tag := range factories {
		tags = append(tags, tag)
	}

	return tags
}
