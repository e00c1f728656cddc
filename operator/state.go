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

package operator

import "github.com/csvrelic/queryengine/internal/qerrors"

// lifecycle stage of an operator instance.
type stage int

const (
	unopened stage = iota
	opened
	closed
)

// State is embedded by every concrete operator to detect misuse
// (§7's Operator misuse error: next before open, next after close,
// double close) and to idempotently return EOS once reached, per
// §4.1's "must be idempotent on further calls after the terminal
// marker is returned".
type State struct {
	name      string
	stage     stage
	exhausted bool
}

// NewState returns a State tagged with the owning operator's name,
// used in misuse error messages.
func NewState(name string) State {
	return State{name: name}
}

// MarkOpen transitions to opened and clears the exhausted flag. It
// always returns nil: a repeated Open, including one after Close, is
// not rejected and re-arms the operator.
func (s *State) MarkOpen() error {
	s.stage = opened
	s.exhausted = false
	return nil
}

// CheckNext returns ErrNotOpen/ErrAlreadyClosed as appropriate, or nil
// if Next may proceed.
func (s *State) CheckNext() error {
	switch s.stage {
	case unopened:
		return qerrors.ErrNotOpen.New(s.name)
	case closed:
		return qerrors.ErrAlreadyClosed.New(s.name)
	default:
		return nil
	}
}

// Exhausted reports whether EOS has already been returned once.
func (s *State) Exhausted() bool { return s.exhausted }

// MarkExhausted records that EOS has been returned, so subsequent
// Next calls can short-circuit straight to EOS without re-running the
// operator's exhaustion logic.
func (s *State) MarkExhausted() { s.exhausted = true }

// MarkClose transitions to closed; returns ErrAlreadyClosed if called
// twice.
func (s *State) MarkClose() error {
	if s.stage == closed {
		return qerrors.ErrAlreadyClosed.New(s.name)
	}
	s.stage = closed
	return nil
}
