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

// Package typesystem is the type system registry (spec section 4.1): it
// interns the three special nodes via typegraph, and for each symbol in the
// current compilation unit stores a TypeWithNode - the declared type paired
// with a tree of nullability nodes.
package typesystem

import (
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
)

// TypeWithNode is spec 3's "TypeWithNode": a declared type paired with an
// outer nullability node, plus one child TypeWithNode per type argument /
// array element / tuple element / function parameter+return, in declaration
// order.
//
// Node identity matters: two TypeWithNode values built for the same
// declared symbol must share the same *typegraph.Node instances so that
// edges recorded against one use site are visible from every other use site
// of that symbol (spec 4.1's registry invariant).
type TypeWithNode struct {
	Type symbol.Type
	Node *typegraph.Node
	Args []TypeWithNode
}

// Child returns the i'th type-argument/element TypeWithNode, or the zero
// value with a nil Node if there is none - callers that expect a child to
// exist (e.g. unwrapping Sequence<T>) should check Node != nil.
func (t TypeWithNode) Child(i int) TypeWithNode {
	if i < 0 || i >= len(t.Args) {
		return TypeWithNode{}
	}
	return t.Args[i]
}

// WithNode returns a copy of t with its outer node replaced, used when a
// non-null-flow predicate or null-forgiving operator overrides only the
// outer position while leaving inner structure untouched (spec 4.3).
func (t TypeWithNode) WithNode(n *typegraph.Node) TypeWithNode {
	t.Node = n
	return t
}
