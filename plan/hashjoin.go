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
	"github.com/mitchellh/hashstructure"

	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/predicate"
	"github.com/csvrelic/queryengine/value"
)

// HashJoin implements the build-left / probe-right algorithm of §4.6.
// The build side is fully materialized in Open; Next streams the
// probe side one row at a time, re-verifying every hash-bucket
// candidate against the predicate (defensive against hash collisions
// and the numeric/string coercion the bucketing key performs, §9).
type HashJoin struct {
	operator.State
	Left, Right Node
	Predicate   *predicate.EqualityJoinPredicate

	schema  value.Schema
	buckets map[uint64][]value.Tuple

	probeRow     value.Tuple
	pending      []value.Tuple
	pendingIndex int
	haveProbeRow bool
}

// NewHashJoin builds a HashJoin over left and right using pred.
func NewHashJoin(left, right Node, pred *predicate.EqualityJoinPredicate) *HashJoin {
	return &HashJoin{
		State:     operator.NewState("HashJoin"),
		Left:      left,
		Right:     right,
		Predicate: pred,
	}
}

// Name implements operator.Operator.
func (j *HashJoin) Name() string { return "HashJoin" }

// Schema implements operator.Operator: concatenation of left then
// right schemas (§4.6).
func (j *HashJoin) Schema() value.Schema {
	if j.schema.Arity() == 0 {
		j.schema = j.Left.Schema().Concat(j.Right.Schema())
	}
	return j.schema
}

// Children implements Node.
func (j *HashJoin) Children() []Node { return []Node{j.Left, j.Right} }

// bucketKey canonicalizes a join-column value into a hashable bucket
// key via hashstructure, so integers and doubles that compare equal
// (§4.7's numeric widening) land in the same bucket (§9: "do not hash
// on Object identity").
func bucketKey(v value.Value) (uint64, bool) {
	if v.IsNull() {
		return 0, false
	}
	h, err := hashstructure.Hash(v.CanonicalKey(), nil)
	if err != nil {
		return 0, false
	}
	return h, true
}

// Open implements operator.Operator: opens both children, then fully
// drains the left child into the hash table (§4.6 step 1).
func (j *HashJoin) Open(ctx *operator.Context) error {
	finish := operator.Span(ctx, j.Name(), "Open")
	defer finish()
	ctx.Hook.Open(j.Name())

	if err := j.Left.Open(ctx); err != nil {
		return err
	}
	if err := j.Right.Open(ctx); err != nil {
		return err
	}

	j.buckets = make(map[uint64][]value.Tuple)
	for {
		row, err := j.Left.Next(ctx)
		if err == operator.EOS {
			break
		}
		if err != nil {
			return err
		}
		key := row.Get(j.Predicate.Left)
		h, ok := bucketKey(key)
		if !ok {
			// Null build key: skip, per §4.6 step 1 — null is never
			// equal to anything.
			continue
		}
		j.buckets[h] = append(j.buckets[h], row)
	}

	return j.MarkOpen()
}

// Next implements operator.Operator: the probe phase of §4.6 step 2.
// Output ordering follows probe-row arrival order, and within a probe
// row, left-bucket insertion order (§4.6).
func (j *HashJoin) Next(ctx *operator.Context) (value.Tuple, error) {
	if err := j.CheckNext(); err != nil {
		return value.Tuple{}, err
	}
	finish := operator.Span(ctx, j.Name(), "Next")
	defer finish()

	if j.Exhausted() {
		return value.Tuple{}, operator.EOS
	}

	for {
		if ctx.Stopped() {
			j.MarkExhausted()
			return value.Tuple{}, operator.EOS
		}

		if j.haveProbeRow && j.pendingIndex < len(j.pending) {
			candidate := j.pending[j.pendingIndex]
			j.pendingIndex++
			if j.Predicate.Verify(candidate, j.probeRow) {
				out := candidate.Concat(j.probeRow)
				ctx.Hook.Next(j.Name(), true)
				return out, nil
			}
			continue
		}

		row, err := j.Right.Next(ctx)
		if err == operator.EOS {
			j.MarkExhausted()
			ctx.Hook.Next(j.Name(), false)
			return value.Tuple{}, operator.EOS
		}
		if err != nil {
			return value.Tuple{}, err
		}

		probeKey := row.Get(j.Predicate.Right)
		h, ok := bucketKey(probeKey)
		if !ok {
			// Null probe key: discard, pull the next right row.
			continue
		}

		j.probeRow = row
		j.haveProbeRow = true
		j.pending = j.buckets[h]
		j.pendingIndex = 0
	}
}

// Close implements operator.Operator.
func (j *HashJoin) Close(ctx *operator.Context) error {
	if err := j.MarkClose(); err != nil {
		return err
	}
	finish := operator.Span(ctx, j.Name(), "Close")
	defer finish()
	ctx.Hook.Close(j.Name())

	j.buckets = nil
	j.pending = nil

	var rightErr error
	if err := j.Left.Close(ctx); err != nil {
		rightErr = err
	}
	if err := j.Right.Close(ctx); err != nil {
		return err
	}
	return rightErr
}

// Clone implements Node.
func (j *HashJoin) Clone() Node {
	return NewHashJoin(j.Left.Clone(), j.Right.Clone(), j.Predicate)
}
