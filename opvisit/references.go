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

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
	"github.com/nullgraph/nullgraph/variance"
)

// visitSymbolRef implements spec 4.3, "References": fetch the declared
// TypeWithNode, dereference an instance receiver if present, substitute a
// generic-qualified static owner's type arguments if present, then apply
// any non-null-flow override the harness reports for this syntactic
// position.
func (v *Visitor) visitSymbolRef(n *boundtree.SymbolRef) typesystem.TypeWithNode {
	var declared typesystem.TypeWithNode
	if twn, ok := v.locals[n.Symbol]; ok {
		declared = twn
	} else if _, isLocal := n.Symbol.(symbol.Local); isLocal {
		panic(fmt.Sprintf("opvisit: reference to undeclared local %q at %v", n.Symbol.Name(), n.Pos()))
	} else {
		declared = v.Registry.GetSymbolType(n.Symbol)
	}

	if n.Receiver != nil {
		receiver := v.Visit(n.Receiver)
		v.dereference(receiver, "dereference of receiver of "+n.Symbol.Name(), n.Pos())
	}

	if len(n.OwnerTypeArgs) > 0 {
		classArgs := make([]typesystem.TypeWithNode, len(n.OwnerTypeArgs))
		for i, a := range n.OwnerTypeArgs {
			classArgs[i] = v.Syntax.Visit(a)
		}
		declared = variance.Substitute(declared, &variance.Substitution{ClassArgs: classArgs})
	}

	if v.Flow.IsNonNullAt(n.Pos()) {
		declared = declared.WithNode(typegraph.NonNullSingleton)
	}
	return declared
}

// visitInstanceRef implements spec 4.3, "Instance reference": `this` is
// always non-null; the implicit receiver of an object/collection
// initializer member adopts the enclosing ObjectCreation's own
// TypeWithNode, resolved via the visitor's implicit-receiver stack rather
// than by re-visiting that node.
func (v *Visitor) visitInstanceRef(n *boundtree.InstanceRef) typesystem.TypeWithNode {
	if n.IsThis {
		return typesystem.TypeWithNode{Node: typegraph.NonNullSingleton}
	}
	return v.currentImplicitReceiver()
}
