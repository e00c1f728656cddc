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

package predicate

import (
	"fmt"

	"github.com/csvrelic/queryengine/value"
)

// JoinPredicate restricts the kinds of join conditions the engine
// understands. EqualityJoinPredicate is the only variant implemented;
// other kinds are reserved for future use (§3).
type JoinPredicate interface {
	// LeftColumn and RightColumn name the equi-join columns.
	LeftColumn() string
	RightColumn() string
	// Verify re-checks the predicate against a left tuple and a right
	// tuple, used defensively by HashJoinOperator after a hash-bucket
	// lookup (§4.6 step 2).
	Verify(left, right value.Tuple) bool
	fmt.Stringer
}

// EqualityJoinPredicate is equality between one left-schema column and
// one right-schema column.
type EqualityJoinPredicate struct {
	Left, Right string
}

// NewEqualityJoin builds an EqualityJoinPredicate.
func NewEqualityJoin(left, right string) *EqualityJoinPredicate {
	return &EqualityJoinPredicate{Left: left, Right: right}
}

// LeftColumn implements JoinPredicate.
func (p *EqualityJoinPredicate) LeftColumn() string { return p.Left }

// RightColumn implements JoinPredicate.
func (p *EqualityJoinPredicate) RightColumn() string { return p.Right }

// Verify re-checks equality of the left tuple's Left column and the
// right tuple's Right column. This guards against hash collisions and against the numeric
// coercion performed by the bucketing key (§4.6: "re-verify the
// equality predicate").
func (p *EqualityJoinPredicate) Verify(left, right value.Tuple) bool {
	lv := left.Get(p.Left)
	rv := right.Get(p.Right)
	cmp, ok := value.Compare(lv, rv)
	return ok && cmp == 0
}

// Swapped returns a new EqualityJoinPredicate with the left and right
// columns exchanged, used by the optimizer's join-reordering pass
// (§4.8 Pass 4) when it swaps build and probe sides.
func (p *EqualityJoinPredicate) Swapped() *EqualityJoinPredicate {
	return &EqualityJoinPredicate{Left: p.Right, Right: p.Left}
}

// String implements fmt.Stringer.
func (p *EqualityJoinPredicate) String() string {
	return fmt.Sprintf("%s = %s", p.Left, p.Right)
}
