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

// Package qerrors defines the fatal error kinds raised by the query
// engine, per the error taxonomy of the core design: schema errors,
// resolution errors, type errors, I/O errors, arity errors, and
// operator-misuse errors.
package qerrors

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrDuplicateColumn is raised when a table declares the same
	// column name twice; column names must be globally unique.
	ErrDuplicateColumn = errors.NewKind("duplicate column name %q in schema")

	// ErrMalformedHeader is raised when a CSV header cell cannot be
	// split into a name:type pair.
	ErrMalformedHeader = errors.NewKind("malformed schema header cell %q, want name:type")

	// ErrUnknownType is raised when a header cell names a type outside
	// {integer, string, double}.
	ErrUnknownType = errors.NewKind("unknown column type %q")

	// ErrTypeMismatch is raised when two resolved values cannot be
	// compared under any coercion rule.
	ErrTypeMismatch = errors.NewKind("cannot compare values of incompatible types: %v and %v")

	// ErrIO wraps a file-system error encountered opening or writing a
	// CSV source or sink.
	ErrIO = errors.NewKind("I/O error on %q: %s")

	// ErrArity is raised when a tuple's value count disagrees with its
	// schema's column count.
	ErrArity = errors.NewKind("arity mismatch: tuple has %d values, schema has %d columns")

	// ErrNotOpen is raised when Next is called on an operator that has
	// not been Opened.
	ErrNotOpen = errors.NewKind("operator %s: Next called before Open")

	// ErrAlreadyClosed is raised when Next is called on an operator
	// after Close, or Close is called twice.
	ErrAlreadyClosed = errors.NewKind("operator %s: called after Close")

	// ErrUnsupportedJoin is raised when a join predicate other than
	// equality between a left and a right column is supplied; the
	// core only implements EqualityJoinPredicate.
	ErrUnsupportedJoin = errors.NewKind("unsupported join predicate: %s")

	// ErrUnknownOperator is raised by the fluent predicate-text parser
	// when an operator token doesn't match {=,>,>=,<,<=,!=}.
	ErrUnknownOperator = errors.NewKind("unknown comparison operator %q")

	// ErrMalformedPredicate is raised by the fluent predicate-text
	// parser when the text isn't exactly three whitespace-separated
	// tokens ("<left> <op> <right>").
	ErrMalformedPredicate = errors.NewKind("malformed predicate text %q, want \"<left> <op> <right>\"")
)
