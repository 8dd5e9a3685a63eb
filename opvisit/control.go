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

package opvisit

import (
	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
	"github.com/nullgraph/nullgraph/variance"
)

// visitCoalesce implements `a ?? b`: the result's outer position is b's -
// if a is null the expression evaluates to b, so the result can only be
// non-null when b is - while any generic structure the two operands share
// unifies invariantly, since either could flow out through it.
func (v *Visitor) visitCoalesce(n *boundtree.Coalesce) typesystem.TypeWithNode {
	left := v.Visit(n.Left)
	right := v.Visit(n.Right)

	result := typesystem.TypeWithNode{Type: right.Type, Node: right.Node, Args: right.Args}
	n2 := len(left.Args)
	if len(right.Args) < n2 {
		n2 = len(right.Args)
	}
	for i := 0; i < n2; i++ {
		v.Builder.RegisterEdges(variance.CreateTypeEdge(left.Args[i], result.Args[i], nil, variance.Invariant, "coalesce operand unification", n.Pos())...)
	}
	return result
}

// visitConditional implements `c ? x : y` per the resolved open question
// (spec 9): both branches are visited exactly once, unconditionally, and
// both flow into one fresh result position.
func (v *Visitor) visitConditional(n *boundtree.Conditional) typesystem.TypeWithNode {
	v.Visit(n.Condition)
	whenTrue := v.Visit(n.WhenTrue)
	whenFalse := v.Visit(n.WhenFalse)

	result := typesystem.TypeWithNode{Type: pickType(whenTrue, whenFalse), Node: v.freshResultNode("conditional")}
	v.assignInto(whenTrue, result, "conditional true branch", n.Pos())
	v.assignInto(whenFalse, result, "conditional false branch", n.Pos())
	return result
}

func pickType(a, b typesystem.TypeWithNode) symbol.Type {
	if a.Type != nil {
		return a.Type
	}
	return b.Type
}

// visitBinaryNullCheck implements `x == null` / `x is null` and their
// negations: the operand is visited for its own internal constraints, and
// the check itself yields an oblivious boolean. The harness, not the
// operation visitor, uses these sites to compute NonNullFlow for the
// branches they guard.
func (v *Visitor) visitBinaryNullCheck(n *boundtree.BinaryNullCheck) typesystem.TypeWithNode {
	v.Visit(n.Operand)
	return typesystem.TypeWithNode{Node: typegraph.ObliviousSingleton}
}

// visitSwitchExpression implements spec 4.3, "Pattern matching": the
// switched-on operand is never dereferenced by the match itself (a type or
// property pattern that doesn't match simply fails to match, it doesn't
// throw), and every arm - including an explicit null arm - flows into one
// fresh result position.
func (v *Visitor) visitSwitchExpression(n *boundtree.SwitchExpression) typesystem.TypeWithNode {
	v.Visit(n.Operand)
	result := typesystem.TypeWithNode{Node: v.freshResultNode("switch expression")}

	for _, arm := range n.Arms {
		if arm.Pattern != nil {
			v.Visit(arm.Pattern)
		}
		if arm.IsNullArm {
			v.assignInto(typesystem.TypeWithNode{Node: typegraph.NullableSingleton}, result, "switch null arm", n.Pos())
			continue
		}
		value := v.Visit(arm.Value)
		v.assignInto(value, result, "switch arm", n.Pos())
	}
	return result
}
