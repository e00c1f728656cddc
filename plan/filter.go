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
	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/predicate"
	"github.com/csvrelic/queryengine/value"
)

// Filter forwards only rows its predicate accepts, preserving the
// child's order (§4.3).
type Filter struct {
	operator.State
	Child     Node
	Predicate predicate.Predicate
}

// NewFilter builds a Filter over child.
func NewFilter(predicate predicate.Predicate, child Node) *Filter {
	return &Filter{State: operator.NewState("Filter"), Child: child, Predicate: predicate}
}

// Name implements operator.Operator.
func (f *Filter) Name() string { return "Filter" }

// Schema implements operator.Operator: identical to the child's.
func (f *Filter) Schema() value.Schema { return f.Child.Schema() }

// Children implements Node.
func (f *Filter) Children() []Node { return []Node{f.Child} }

// Open implements operator.Operator.
func (f *Filter) Open(ctx *operator.Context) error {
	finish := operator.Span(ctx, f.Name(), "Open")
	defer finish()
	ctx.Hook.Open(f.Name())

	if err := f.Child.Open(ctx); err != nil {
		return err
	}
	return f.MarkOpen()
}

// Next implements operator.Operator.
func (f *Filter) Next(ctx *operator.Context) (value.Tuple, error) {
	if err := f.CheckNext(); err != nil {
		return value.Tuple{}, err
	}
	finish := operator.Span(ctx, f.Name(), "Next")
	defer finish()

	if f.Exhausted() {
		return value.Tuple{}, operator.EOS
	}

	for {
		if ctx.Stopped() {
			f.MarkExhausted()
			return value.Tuple{}, operator.EOS
		}
		row, err := f.Child.Next(ctx)
		if err == operator.EOS {
			f.MarkExhausted()
			ctx.Hook.Next(f.Name(), false)
			return value.Tuple{}, operator.EOS
		}
		if err != nil {
			return value.Tuple{}, err
		}

		accept := f.Predicate.Eval(row)
		ctx.Hook.Eval(f.Predicate.String(), accept)
		if accept {
			ctx.Hook.Next(f.Name(), true)
			return row, nil
		}
	}
}

// Close implements operator.Operator.
func (f *Filter) Close(ctx *operator.Context) error {
	if err := f.MarkClose(); err != nil {
		return err
	}
	finish := operator.Span(ctx, f.Name(), "Close")
	defer finish()
	ctx.Hook.Close(f.Name())
	return f.Child.Close(ctx)
}

// Clone implements Node.
func (f *Filter) Clone() Node {
	return NewFilter(f.Predicate, f.Child.Clone())
}
