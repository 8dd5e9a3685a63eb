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
	"fmt"
	"go/token"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/typesystem"
	"github.com/nullgraph/nullgraph/variance"
)

// visitInvocation implements spec 4.3, "Calls / indexers / constructors": a
// non-static call dereferences its receiver, each argument is bound against
// its parameter's declared type under the call's generic substitution, and
// the result is the declared return type after that same substitution.
func (v *Visitor) visitInvocation(n *boundtree.Invocation) typesystem.TypeWithNode {
	if n.Receiver != nil {
		receiver := v.Visit(n.Receiver)
		v.dereference(receiver, "dereference of receiver of "+n.Method.Name(), n.Pos())
	}

	sub := v.buildInvocationSubstitution(n)
	v.bindInvocationArguments(n, sub)

	returnTwn := v.Registry.GetSymbolType(n.Method)
	return variance.Substitute(returnTwn, sub)
}

func (v *Visitor) bindArgument(arg boundtree.Argument, paramTwn typesystem.TypeWithNode, sub *variance.Substitution, pos token.Pos) {
	value := v.Visit(arg.Value)
	if arg.RefKind.IsByRef() {
		v.bidirectionalInto(value, paramTwn, sub, "by-ref argument", pos)
		return
	}
	v.assignWithSubstitution(value, paramTwn, sub, "argument", pos)
}

// buildInvocationSubstitution assembles the call's Substitution: class
// arguments come from the receiver's generic instantiation if the call site
// names one explicitly, and method arguments come from either explicit type
// arguments or a fresh inferred node per declared method type parameter
// (spec 4.3, "the method's own type parameters, if any, are either the
// explicit type arguments ... or, if omitted, fresh inferred nodes").
func (v *Visitor) buildInvocationSubstitution(n *boundtree.Invocation) *variance.Substitution {
	sub := &variance.Substitution{}
	if len(n.ReceiverTypeArgs) > 0 {
		sub.ClassArgs = make([]typesystem.TypeWithNode, len(n.ReceiverTypeArgs))
		for i, a := range n.ReceiverTypeArgs {
			sub.ClassArgs[i] = v.Syntax.Visit(a)
		}
	}
	if len(n.ExplicitTypeArgs) > 0 {
		sub.MethodArgs = make([]typesystem.TypeWithNode, len(n.ExplicitTypeArgs))
		for i, a := range n.ExplicitTypeArgs {
			sub.MethodArgs[i] = v.Syntax.Visit(a)
		}
	} else if tps := n.Method.TypeParameters(); len(tps) > 0 {
		sub.MethodArgs = make([]typesystem.TypeWithNode, len(tps))
		for i := range tps {
			sub.MethodArgs[i] = typesystem.TypeWithNode{Node: v.freshResultNode(fmt.Sprintf("%s!!%d", n.Method.Name(), i))}
		}
	}
	return sub
}
