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

// Sink writes every row pulled from its child to a CSV file (§4.5).
// It drives its own pull loop from Next rather than being driven from
// above: a single call to Next exhausts the child entirely and writes
// every row, then returns EOS. This is the "driver drives the sink's
// internal write loop" option §4.5 allows, chosen because it lets
// Sink be the natural root an Executor simply opens, calls Next once
// on, and closes — mirroring how the teacher's own top-level query
// execution is a single drain loop, not a row at a time handed back
// to an outer caller.
type Sink struct {
	operator.State
	Child  Node
	path   string
	writer *csvio.Writer
}

// NewSink builds a Sink over child that writes to path.
func NewSink(path string, child Node) *Sink {
	return &Sink{State: operator.NewState("Sink"), Child: child, path: path}
}

// Path returns the destination file path.
func (s *Sink) Path() string { return s.path }

// Name implements operator.Operator.
func (s *Sink) Name() string { return "Sink" }

// Schema implements operator.Operator: identical to the child's.
func (s *Sink) Schema() value.Schema { return s.Child.Schema() }

// Children implements Node.
func (s *Sink) Children() []Node { return []Node{s.Child} }

// Open implements operator.Operator: opens the output file and writes
// the header line derived from the child schema.
func (s *Sink) Open(ctx *operator.Context) error {
	finish := operator.Span(ctx, s.Name(), "Open")
	defer finish()
	ctx.Hook.Open(s.Name())

	if err := s.Child.Open(ctx); err != nil {
		return err
	}

	writer, err := csvio.Create(s.path, s.Child.Schema())
	if err != nil {
		return err
	}
	s.writer = writer
	return s.MarkOpen()
}

// Next implements operator.Operator. The first call drains the child
// entirely, writing each row; subsequent calls return EOS immediately
// per the idempotence requirement (§4.1).
func (s *Sink) Next(ctx *operator.Context) (value.Tuple, error) {
	if err := s.CheckNext(); err != nil {
		return value.Tuple{}, err
	}
	finish := operator.Span(ctx, s.Name(), "Next")
	defer finish()

	if s.Exhausted() {
		return value.Tuple{}, operator.EOS
	}

	for {
		if ctx.Stopped() {
			break
		}
		row, err := s.Child.Next(ctx)
		if err == operator.EOS {
			break
		}
		if err != nil {
			return value.Tuple{}, err
		}
		if err := s.writer.WriteRow(row); err != nil {
			return value.Tuple{}, err
		}
		ctx.Hook.Next(s.Name(), true)
	}

	s.MarkExhausted()
	ctx.Hook.Next(s.Name(), false)
	return value.Tuple{}, operator.EOS
}

// Close implements operator.Operator: flushes and closes the output
// file, then propagates to the child.
func (s *Sink) Close(ctx *operator.Context) error {
	if err := s.MarkClose(); err != nil {
		return err
	}
	finish := operator.Span(ctx, s.Name(), "Close")
	defer finish()
	ctx.Hook.Close(s.Name())

	var writeErr error
	if s.writer != nil {
		writeErr = s.writer.Close()
	}
	if err := s.Child.Close(ctx); err != nil {
		return err
	}
	return writeErr
}

// Clone implements Node.
func (s *Sink) Clone() Node {
	return NewSink(s.path, s.Child.Clone())
}
