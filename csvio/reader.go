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

// Package csvio implements the minimal CSV schema-header convention
// of §6: row 1 encodes "name:type" tokens, subsequent rows are data,
// and empty fields parse to null. It is an external collaborator per
// §1's scope note ("CSV I/O beyond a minimal schema-header convention"
// is out of scope) — this package is the "minimal" part the core
// still needs in order to run.
package csvio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/csvrelic/queryengine/internal/qerrors"
	"github.com/csvrelic/queryengine/value"
)

// Reader streams rows from a schema-header CSV file one at a time.
type Reader struct {
	path   string
	file   *os.File
	scan   *bufio.Scanner
	schema value.Schema
}

// Open reads and parses the header line, leaving the file positioned
// at the first data row.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, qerrors.ErrIO.New(path, err.Error())
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		f.Close()
		if err := scanner.Err(); err != nil {
			return nil, qerrors.ErrIO.New(path, err.Error())
		}
		return nil, qerrors.ErrIO.New(path, "empty file, missing schema header")
	}

	schema, err := parseHeader(scanner.Text())
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Reader{path: path, file: f, scan: scanner, schema: schema}, nil
}

// Path returns the source path this reader was opened from.
func (r *Reader) Path() string { return r.path }

// Schema returns the parsed header schema.
func (r *Reader) Schema() value.Schema { return r.schema }

// Next returns the next data row, or io.EOF at end of file.
func (r *Reader) Next() (value.Tuple, error) {
	if !r.scan.Scan() {
		if err := r.scan.Err(); err != nil {
			return value.Tuple{}, qerrors.ErrIO.New(r.path, err.Error())
		}
		return value.Tuple{}, io.EOF
	}

	fields := strings.Split(r.scan.Text(), ",")
	values := make([]value.Value, len(r.schema.Columns))
	for i, col := range r.schema.Columns {
		if i < len(fields) {
			values[i] = value.ParseCell(fields[i], col.Type)
		} else {
			values[i] = value.NullValue
		}
	}

	return value.NewTuple(r.schema, values)
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

func parseHeader(line string) (value.Schema, error) {
	tokens := strings.Split(line, ",")
	cols := make([]value.Column, len(tokens))
	for i, tok := range tokens {
		name, kind, err := parseHeaderToken(tok)
		if err != nil {
			return value.Schema{}, err
		}
		cols[i] = value.Column{Name: name, Type: kind}
	}
	return value.NewSchema(cols)
}

func parseHeaderToken(tok string) (string, value.Kind, error) {
	parts := strings.SplitN(tok, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", 0, qerrors.ErrMalformedHeader.New(tok)
	}
	switch parts[1] {
	case "integer":
		return parts[0], value.Int, nil
	case "double":
		return parts[0], value.Float, nil
	case "string":
		return parts[0], value.String, nil
	default:
		return "", 0, qerrors.ErrUnknownType.New(parts[1])
	}
}
