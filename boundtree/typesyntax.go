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

package boundtree

import (
	"go/token"

	"github.com/nullgraph/nullgraph/symbol"
)

// TypeSyntax is one syntactic reference-type occurrence (spec 4.2): a
// declared-type position in a signature, local declaration, `new T(...)`,
// cast target, array creation, or explicit type argument list. It pairs the
// already-resolved underlying symbol.Type with the syntactic details the
// syntax visitor needs that the resolved type alone does not carry: whether
// a trailing `?` was written, and (for `var`) that no type was written at
// all.
//
// Node identity matters here exactly as it does for typegraph.Node: the
// same *TypeSyntax pointer revisited twice must yield the same
// typesystem.TypeWithNode (spec 4.2, "or reuses the one recorded in the
// syntax->node mapping"), which is why syntaxvisit keys its cache on this
// pointer rather than on a value copy.
type TypeSyntax struct {
	At token.Pos

	// Resolved is the type this syntax denotes, ignoring any nullability
	// annotation - e.g. for `string?` this is the Named "string".
	Resolved symbol.Type

	// Nullable records a written trailing `?`.
	Nullable bool

	// Args holds the generic-type-argument (or array-element, or tuple-
	// element) syntax nodes, parallel to Resolved's own children when
	// Resolved is *symbol.Named, *symbol.Array or *symbol.Tuple.
	Args []*TypeSyntax

	// TupleNames is parallel to Args when Resolved is *symbol.Tuple: a
	// named tuple member's declared name, or "" if positional.
	TupleNames []string

	// IsVar marks a `var` local/foreach-variable declaration: the syntax
	// visitor does not descend into this node at all, and the caller must
	// adopt the initializer's TypeWithNode wholesale (spec 4.2, 4.3).
	IsVar bool
}

// Pos returns the syntax's source location.
func (t *TypeSyntax) Pos() token.Pos { return t.At }
