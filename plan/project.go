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
	"github.com/csvrelic/queryengine/internal/similartext"
	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/value"
)

// Project reshapes each incoming row to an ordered list of named
// columns, optionally suppressing duplicates (§4.4).
type Project struct {
	operator.State
	Child    Node
	Columns  []string
	Distinct bool

	schema value.Schema
	seen   map[interface{}]struct{}
}

// NewProject builds a Project over child producing exactly columns,
// in order.
func NewProject(columns []string, distinct bool, child Node) *Project {
	return &Project{
		State:    operator.NewState("Project"),
		Child:    child,
		Columns:  columns,
		Distinct: distinct,
	}
}

// Name implements operator.Operator.
func (p *Project) Name() string { return "Project" }

// Schema implements operator.Operator: exactly Columns, typed from
// the child schema (§4.4). Unknown names surface as a string-typed
// column, matching value.Schema.Project's documented tolerance.
func (p *Project) Schema() value.Schema {
	if p.schema.Arity() == 0 && len(p.Columns) > 0 {
		if p.Child != nil {
			p.schema = p.Child.Schema().Project(p.Columns)
		}
	}
	return p.schema
}

// Children implements Node.
func (p *Project) Children() []Node { return []Node{p.Child} }

// Open implements operator.Operator.
func (p *Project) Open(ctx *operator.Context) error {
	finish := operator.Span(ctx, p.Name(), "Open")
	defer finish()
	ctx.Hook.Open(p.Name())

	if err := p.Child.Open(ctx); err != nil {
		return err
	}
	childNames := p.Child.Schema().Names()
	p.schema = p.Child.Schema().Project(p.Columns)
	for _, name := range p.Columns {
		if p.Child.Schema().IndexOf(name) >= 0 {
			continue
		}
		msg := "unknown column " + name + " projects as null"
		if suggestion := similartext.Find(childNames, name); suggestion != "" {
			msg += suggestion
		}
		ctx.Hook.Warn(p.Name(), msg)
	}
	if p.Distinct {
		p.seen = make(map[interface{}]struct{})
	}
	return p.MarkOpen()
}

// Next implements operator.Operator.
func (p *Project) Next(ctx *operator.Context) (value.Tuple, error) {
	if err := p.CheckNext(); err != nil {
		return value.Tuple{}, err
	}
	finish := operator.Span(ctx, p.Name(), "Next")
	defer finish()

	if p.Exhausted() {
		return value.Tuple{}, operator.EOS
	}

	for {
		if ctx.Stopped() {
			p.MarkExhausted()
			return value.Tuple{}, operator.EOS
		}
		row, err := p.Child.Next(ctx)
		if err == operator.EOS {
			p.MarkExhausted()
			ctx.Hook.Next(p.Name(), false)
			return value.Tuple{}, operator.EOS
		}
		if err != nil {
			return value.Tuple{}, err
		}

		values := make([]value.Value, len(p.Columns))
		for i, name := range p.Columns {
			values[i] = row.Get(name)
		}
		out, err := value.NewTuple(p.schema, values)
		if err != nil {
			return value.Tuple{}, err
		}

		if p.Distinct {
			key := out.Key()
			if _, dup := p.seen[key]; dup {
				continue
			}
			p.seen[key] = struct{}{}
		}

		ctx.Hook.Next(p.Name(), true)
		return out, nil
	}
}

// Close implements operator.Operator.
func (p *Project) Close(ctx *operator.Context) error {
	if err := p.MarkClose(); err != nil {
		return err
	}
	finish := operator.Span(ctx, p.Name(), "Close")
	defer finish()
	ctx.Hook.Close(p.Name())
	p.seen = nil
	return p.Child.Close(ctx)
}

// Clone implements Node.
func (p *Project) Clone() Node {
	cols := make([]string, len(p.Columns))
	copy(cols, p.Columns)
	return NewProject(cols, p.Distinct, p.Child.Clone())
}
