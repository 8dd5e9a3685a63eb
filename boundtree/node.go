//  Copyright (c) The nullgraph Authors.
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

// Package boundtree is the binder's input contract (spec section 6): a
// bound tree enumerable by operation kind with typed children and resolved
// symbol references, classification of each conversion, and a dominator-
// based non-null-flow predicate on syntactic nodes.
//
// nullgraph never produces these values for real source itself - a compiler
// front-end collaborator does, and is out of scope (spec section 1). The
// frontend package is this repository's own minimal collaborator, used only
// to drive the test harness.
package boundtree

import "go/token"

// Node is the tagged-union root every operation-kind struct implements
// (design notes, "Polymorphic visitors": a tagged-union match with one arm
// per operation kind). Concrete types live in expr.go and stmt.go; the
// operation visitor (package opvisit) recovers the tag with a type switch.
type Node interface {
	Pos() token.Pos
}

// base carries the source position every node needs; embedded, never used
// standalone.
type base struct {
	At token.Pos
}

func (b base) Pos() token.Pos { return b.At }

// NonNullFlow is the harness-supplied oracle from spec 4.3 ("Null checks")
// and 4.5's design note "Non-null flow": an opaque predicate, already
// computed by a dominator analysis over explicit null comparisons, that the
// operation visitor consults but never re-derives.
type NonNullFlow interface {
	// IsNonNullAt reports whether the reference occurring at pos is
	// dominated by a proof that its value is non-null.
	IsNonNullAt(pos token.Pos) bool
}

// NoNonNullFlow is a NonNullFlow that never refines anything, useful for
// callers (or tests) with no dominator analysis available.
type NoNonNullFlow struct{}

func (NoNonNullFlow) IsNonNullAt(token.Pos) bool { return false }
