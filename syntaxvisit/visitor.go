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

// Package syntaxvisit implements spec 4.2: mapping type syntax to
// TypeWithNode. For each reference-type syntactic position it allocates a
// node, or reuses the one recorded in the tree's syntax->node mapping, and
// recursively descends into generic arguments, array element types, and
// tuple element lists.
package syntaxvisit

import (
	"fmt"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
)

// Visitor maps a single tree's TypeSyntax occurrences to TypeWithNode,
// caching by syntax-node identity in the registry's per-tree mapping so a
// syntax node visited twice yields the identical node tree both times.
type Visitor struct {
	Registry *typesystem.Registry
	Arena    *typegraph.Arena
	TreePath string
}

// New returns a Visitor for one tree.
func New(registry *typesystem.Registry, arena *typegraph.Arena, treePath string) *Visitor {
	return &Visitor{Registry: registry, Arena: arena, TreePath: treePath}
}

// Visit returns ts's TypeWithNode, per the rules in spec 4.2:
//   - T (unannotated reference type) -> fresh inferred node.
//   - T? where T is reference-typed -> nullable node.
//   - T? where T is value-typed -> oblivious node for the outer Nullable<T>,
//     recursive rules for inner T.
//
// Visit must not be called on a `var`-flagged TypeSyntax; callers adopt the
// initializer's TypeWithNode directly instead (spec 4.2, 4.3).
func (v *Visitor) Visit(ts *boundtree.TypeSyntax) typesystem.TypeWithNode {
	if ts == nil {
		return typesystem.TypeWithNode{}
	}
	if ts.IsVar {
		panic("syntaxvisit: var type syntax must be resolved from its initializer, not visited")
	}

	mapping := v.Registry.GetMapping(v.TreePath)
	if cached, ok := mapping[ts]; ok {
		return cached
	}

	twn := v.build(ts)
	mapping[ts] = twn
	return twn
}

func (v *Visitor) build(ts *boundtree.TypeSyntax) typesystem.TypeWithNode {
	t := ts.Resolved
	if t == nil {
		panic("syntaxvisit: type syntax has no resolved type")
	}

	if t.IsValueType() {
		outer := v.Arena.NewObliviousNode(t.String())
		return typesystem.TypeWithNode{Type: t, Node: outer, Args: v.visitArgs(ts)}
	}

	var outer *typegraph.Node
	if ts.Nullable {
		outer = typegraph.NullableSingleton
	} else {
		outer = v.Arena.NewInferredNode(t.String())
	}
	return typesystem.TypeWithNode{Type: t, Node: outer, Args: v.visitArgs(ts)}
}

func (v *Visitor) visitArgs(ts *boundtree.TypeSyntax) []typesystem.TypeWithNode {
	if len(ts.Args) == 0 {
		return nil
	}
	args := make([]typesystem.TypeWithNode, len(ts.Args))
	for i, a := range ts.Args {
		args[i] = v.Visit(a)
	}
	return args
}

// NamedTupleIndex resolves a named tuple member to its positional index
// (spec 4.2, "named tuple members alias to the positional child").
func NamedTupleIndex(ts *boundtree.TypeSyntax, name string) (int, bool) {
	for i, n := range ts.TupleNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// VisitVarFromInitializer implements the `var` rule directly: it does not
// visit ts (which must be IsVar), and instead returns initializer verbatim,
// including its inner node structure, matching spec 4.2/4.3's requirement
// that implicit-typed locals adopt the initializer's entire TypeWithNode.
func VisitVarFromInitializer(ts *boundtree.TypeSyntax, initializer typesystem.TypeWithNode) typesystem.TypeWithNode {
	if ts != nil && !ts.IsVar {
		panic(fmt.Sprintf("syntaxvisit: VisitVarFromInitializer called on non-var syntax at pos %v", ts.Pos()))
	}
	return initializer
}
