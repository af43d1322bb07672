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

	"m4o.io/pbf/v2/model"
)

// Writer encodes entities as OPL text, one per line.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write encodes e as one OPL line, terminated with "\n".
func (w *Writer) Write(e model.Entity) error {
	line, err := encodeLine(e)
	if err != nil {
		return err
	}

	if _, err := w.w.WriteString(line); err != nil {
		return fmt.Errorf("writing opl line: %w", err)
	}

	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing opl line terminator: %w", err)
	}

	return nil
}

// Flush flushes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing opl output: %w", err)
	}

	return nil
}

// EncodeAll writes every entity in entities to w, in order, and flushes.
func EncodeAll(w io.Writer, entities []model.Entity) error {
	writer := NewWriter(w)

	for _, e := range entities {
		if err := writer.Write(e); err != nil {
			return err
		}
	}

	return writer.Flush()
}
