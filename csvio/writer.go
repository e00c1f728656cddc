// Copyright 2026 The CSV Relic Authors.
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

package csvio

import (
	"bufio"
	"os"
	"strings"

	"github.com/csvrelic/queryengine/internal/qerrors"
	"github.com/csvrelic/queryengine/value"
)

// Writer encodes an output schema's column names as a header (no type
// annotations, per §6) followed by one CSV line per written row.
// Null values serialize to empty fields.
type Writer struct {
	path string
	file *os.File
	buf  *bufio.Writer
}

// Create opens path for writing and writes the header line for schema.
func Create(path string, schema value.Schema) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, qerrors.ErrIO.New(path, err.Error())
	}
	buf := bufio.NewWriter(f)
	if _, err := buf.WriteString(strings.Join(schema.Names(), ",") + "\n"); err != nil {
		f.Close()
		return nil, qerrors.ErrIO.New(path, err.Error())
	}
	return &Writer{path: path, file: f, buf: buf}, nil
}

// WriteRow encodes one tuple as a CSV line.
func (w *Writer) WriteRow(tup value.Tuple) error {
	fields := make([]string, len(tup.Values))
	for i, v := range tup.Values {
		if v.IsNull() {
			fields[i] = ""
		} else {
			fields[i] = v.String()
		}
	}
	if _, err := w.buf.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
		return qerrors.ErrIO.New(w.path, err.Error())
	}
	return nil
}

// Close flushes buffered output and closes the file (§4.5: "On close,
// flushes and closes the file").
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return qerrors.ErrIO.New(w.path, err.Error())
	}
	return w.file.Close()
}
