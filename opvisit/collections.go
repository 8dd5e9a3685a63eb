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
	"go/token"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
	"github.com/nullgraph/nullgraph/variance"
)

// visitArrayCreation implements spec 4.3, "Array creation": a freshly
// created array is always non-null, and every initializer element binds
// invariantly against the element type - a caller can both read and write
// through the array, so neither direction alone is sound.
func (v *Visitor) visitArrayCreation(n *boundtree.ArrayCreation) typesystem.TypeWithNode {
	elemTwn := v.Syntax.Visit(n.ElementType)
	for _, elem := range n.Initializer {
		value := v.Visit(elem)
		v.bidirectionalInto(value, elemTwn, nil, "array initializer element", n.Pos())
	}
	return typesystem.TypeWithNode{
		Type: &symbol.Array{Element: elemTwn.Type},
		Node: typegraph.NonNullSingleton,
		Args: []typesystem.TypeWithNode{elemTwn},
	}
}

// visitObjectCreation implements spec 4.3, "Object/collection initializers":
// a freshly created object is always non-null; constructor arguments bind
// like an ordinary call; each initializer member either assigns a
// field/property or, for a collection initializer, binds arguments to an
// Add(...) overload, with the implicit receiver pushed for the duration so
// InstanceRef inside member values resolves without re-visiting this node.
func (v *Visitor) visitObjectCreation(n *boundtree.ObjectCreation) typesystem.TypeWithNode {
	result := v.Syntax.Visit(n.Type).WithNode(typegraph.NonNullSingleton)

	if n.Constructor != nil {
		v.bindInvocationArguments(n.Constructor, v.buildInvocationSubstitution(n.Constructor))
	}

	v.pushImplicitReceiver(result)
	defer v.popImplicitReceiver()
	for _, init := range n.Initializers {
		v.visitInitializerMember(init, n.Pos())
	}
	return result
}

// bindInvocationArguments binds an invocation's arguments against its
// method's parameters under sub, shared between visitInvocation's call form
// and an ObjectCreation's constructor call.
func (v *Visitor) bindInvocationArguments(inv *boundtree.Invocation, sub *variance.Substitution) {
	params := inv.Method.Parameters()
	variadic := len(params) > 0 && params[len(params)-1].RefKind() == symbol.RefParams

	for i, arg := range inv.Arguments {
		var paramTwn typesystem.TypeWithNode
		switch {
		case variadic && i >= len(params)-1:
			paramTwn = v.Registry.GetSymbolType(params[len(params)-1]).Child(0)
		case i < len(params):
			paramTwn = v.Registry.GetSymbolType(params[i])
		default:
			continue
		}
		v.bindArgument(arg, paramTwn, sub, inv.Pos())
	}
}

func (v *Visitor) visitInitializerMember(init boundtree.InitializerMember, pos token.Pos) {
	if init.AddMethod != nil {
		params := init.AddMethod.Parameters()
		for i, arg := range init.AddArguments {
			if i >= len(params) {
				continue
			}
			paramTwn := v.Registry.GetSymbolType(params[i])
			v.bindArgument(arg, paramTwn, nil, pos)
		}
		return
	}
	memberTwn := v.Registry.GetSymbolType(init.Member)
	value := v.Visit(init.Value)
	v.assignInto(value, memberTwn, "object initializer member", pos)
}

// visitTupleLiteral implements `(a, b, c)`: the outer position is always
// oblivious - a value tuple can never itself be null - and each element
// keeps its own visited TypeWithNode as a child.
func (v *Visitor) visitTupleLiteral(n *boundtree.TupleLiteral) typesystem.TypeWithNode {
	args := make([]typesystem.TypeWithNode, len(n.Elements))
	elems := make([]symbol.Type, len(n.Elements))
	for i, e := range n.Elements {
		args[i] = v.Visit(e)
		elems[i] = args[i].Type
	}
	return typesystem.TypeWithNode{
		Type: &symbol.Tuple{Elements: elems, Names: n.Names},
		Node: typegraph.ObliviousSingleton,
		Args: args,
	}
}

// visitAnonymousObject implements `new { A = 1, B = s }`: a freshly created
// anonymous object is non-null, and is modeled structurally like a named
// tuple since it shares the same "one child per member, positionally" shape.
func (v *Visitor) visitAnonymousObject(n *boundtree.AnonymousObject) typesystem.TypeWithNode {
	args := make([]typesystem.TypeWithNode, len(n.Members))
	elems := make([]symbol.Type, len(n.Members))
	names := make([]string, len(n.Members))
	for i, m := range n.Members {
		args[i] = v.Visit(m.Value)
		elems[i] = args[i].Type
		names[i] = m.Name
	}
	return typesystem.TypeWithNode{
		Type: &symbol.Tuple{Elements: elems, Names: names},
		Node: typegraph.NonNullSingleton,
		Args: args,
	}
}
