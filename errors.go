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

import "m4o.io/pbf/v2/internal/core"

// FormatError, ConfigError, CapacityError, and CancelledError are the error
// kinds this module's encoders and decoders surface to callers; IOError is
// deliberately not one of them, since a wrapped stdlib error already lets
// callers use errors.Is(err, io.EOF) and similar.
type (
	FormatError    = core.FormatError
	ConfigError    = core.ConfigError
	CapacityError  = core.CapacityError
	CancelledError = core.CancelledError
)
