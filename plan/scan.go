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

package plan

import (
	"github.com/csvrelic/queryengine/csvio"
	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/value"
)

// Scan streams rows from a CSV file, one at a time, per §4.2.
type Scan struct {
	operator.State
	path   string
	schema value.Schema
	reader *csvio.Reader
}

// NewScan builds a Scan over path. The header is not read here: the
// schema is resolved lazily, by Schema's header peek or by Open.
func NewScan(path string) *Scan {
	return &Scan{State: operator.NewState("Scan"), path: path}
}

// Path returns the source file path, used as the table identity key
// by the catalog.
func (s *Scan) Path() string { return s.path }

// Name implements operator.Operator.
func (s *Scan) Name() string { return "Scan" }

// Schema implements operator.Operator. Scan's output schema is a
// deterministic function of its only parameter, the source path
// (§3) — it is the parsed CSV header. Schema peeks that header
// on demand (cheap: one line) so the optimizer can reason about
// column membership before Open/execution; a peek failure (e.g. the
// file does not exist yet) yields an empty schema rather than an
// error, since the real, fatal Schema error is reported at Open per
// §7, not here.
func (s *Scan) Schema() value.Schema {
	if s.schema.Arity() == 0 {
		if peeked, err := peekSchema(s.path); err == nil {
			s.schema = peeked
		}
	}
	return s.schema
}

// Children implements Node; Scan is a leaf.
func (s *Scan) Children() []Node { return nil }

// Open implements operator.Operator.
func (s *Scan) Open(ctx *operator.Context) error {
	finish := operator.Span(ctx, s.Name(), "Open")
	defer finish()
	ctx.Hook.Open(s.Name())

	reader, err := csvio.Open(s.path)
	if err != nil {
		return err
	}
	s.reader = reader
	s.schema = reader.Schema()
	return s.MarkOpen()
}

// Next implements operator.Operator.
func (s *Scan) Next(ctx *operator.Context) (value.Tuple, error) {
	if err := s.CheckNext(); err != nil {
		return value.Tuple{}, err
	}
	finish := operator.Span(ctx, s.Name(), "Next")
	defer finish()

	if s.Exhausted() {
		ctx.Hook.Next(s.Name(), false)
		return value.Tuple{}, operator.EOS
	}

	row, err := s.reader.Next()
	if err == operator.EOS {
		s.MarkExhausted()
		ctx.Hook.Next(s.Name(), false)
		return value.Tuple{}, operator.EOS
	}
	if err != nil {
		return value.Tuple{}, err
	}
	ctx.Hook.Next(s.Name(), true)
	return row, nil
}

// Close implements operator.Operator.
func (s *Scan) Close(ctx *operator.Context) error {
	if err := s.MarkClose(); err != nil {
		return err
	}
	finish := operator.Span(ctx, s.Name(), "Close")
	defer finish()
	ctx.Hook.Close(s.Name())

	if s.reader != nil {
		return s.reader.Close()
	}
	return nil
}

// Clone implements Node.
func (s *Scan) Clone() Node {
	return NewScan(s.path)
}

// peekSchema opens path just long enough to parse its header line.
func peekSchema(path string) (value.Schema, error) {
	r, err := csvio.Open(path)
	if err != nil {
		return value.Schema{}, err
	}
	defer r.Close()
	return r.Schema(), nil
}
