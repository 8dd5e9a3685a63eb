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

// visitConversion implements spec 4.3, "Conversions". A reference conversion
// (upcast/downcast) flows the operand into the target syntax's type like an
// ordinary assignment. Unboxing to a non-nullable value type dereferences
// the operand - unboxing a null value throws at runtime - while unboxing to
// a nullable value type does not.
func (v *Visitor) visitConversion(n *boundtree.Conversion) typesystem.TypeWithNode {
	operand := v.Visit(n.Operand)
	target := v.Syntax.Visit(n.Target)

	switch n.Kind {
	case boundtree.ConversionUnboxingToNonNullable:
		v.dereference(operand, "unboxing conversion", n.Pos())
	default:
		v.assignInto(operand, target, "conversion", n.Pos())
	}
	return target
}

// visitThrow implements spec 4.3, "Throw expression": the operand is
// visited and dereferenced (throwing it requires a non-null value), but the
// expression's value is oblivious of whatever target type it appears in
// (e.g. `x ?? throw ...`), so it never constrains that target.
func (v *Visitor) visitThrow(n *boundtree.ThrowExpr) typesystem.TypeWithNode {
	v.dereference(v.Visit(n.Operand), "throw", n.Pos())
	return typesystem.TypeWithNode{Node: typegraph.ObliviousSingleton}
}

// visitNullForgiving implements the postfix `!` operator: the operand is
// visited normally, but the result's outer position is replaced with the
// non-null singleton, overriding whatever the operand's own outer node was.
func (v *Visitor) visitNullForgiving(n *boundtree.NullForgiving) typesystem.TypeWithNode {
	operand := v.Visit(n.Operand)
	return operand.WithNode(typegraph.NonNullSingleton)
}

// visitUserDefinedConversion implements spec 4.3, "User-defined implicit
// conversions": the conversion operator is invoked like a single-parameter
// static method, its return type substituted under the receiver's type
// arguments if the conversion is generic-qualified.
func (v *Visitor) visitUserDefinedConversion(n *boundtree.UserDefinedConversion) typesystem.TypeWithNode {
	operand := v.Visit(n.Operand)

	sub := &variance.Substitution{}
	if len(n.ReceiverTypeArgs) > 0 {
		sub.ClassArgs = make([]typesystem.TypeWithNode, len(n.ReceiverTypeArgs))
		for i, a := range n.ReceiverTypeArgs {
			sub.ClassArgs[i] = v.Syntax.Visit(a)
		}
	}

	if params := n.Operator.Parameters(); len(params) > 0 {
		paramTwn := v.Registry.GetSymbolType(params[0])
		v.assignWithSubstitution(operand, paramTwn, sub, "user-defined conversion operand", n.Pos())
	}

	returnTwn := v.Registry.GetSymbolType(n.Operator)
	return variance.Substitute(returnTwn, sub)
}

// visitDelegateConversion implements the DelegateConversion doc comment:
// parameter positions flow contravariantly (the delegate's declared
// parameter into the target's), the return position flows covariantly (the
// target's return into the delegate's). The delegate type syntax's Args
// follow symbol.FunctionShape's own convention - parameter types in order,
// then the return type - matching how the registry builds a FunctionShape's
// children.
func (v *Visitor) visitDelegateConversion(n *boundtree.DelegateConversion) typesystem.TypeWithNode {
	delegateTwn := v.Syntax.Visit(n.DelegateType)
	operand := v.Visit(n.Operand)

	shape, ok := delegateTwn.Type.(*symbol.FunctionShape)
	if !ok {
		return delegateTwn
	}

	paramCount := len(shape.Params)
	for i := 0; i < paramCount && i < len(operand.Args) && i < len(delegateTwn.Args); i++ {
		v.assignInto(delegateTwn.Args[i], operand.Args[i], "delegate parameter", n.Pos())
	}
	if len(operand.Args) > paramCount && len(delegateTwn.Args) > paramCount {
		v.assignInto(operand.Args[paramCount], delegateTwn.Args[paramCount], "delegate return", n.Pos())
	}
	return delegateTwn
}
