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
	"github.com/nullgraph/nullgraph/syntaxvisit"
	"github.com/nullgraph/nullgraph/typesystem"
)

// visitForeach implements spec 4.3, "Foreach": the collection is
// dereferenced (GetEnumerator/MoveNext throw on a null collection), and the
// iteration variable's type is resolved, in order, from an array's element
// type, a Sequence<T>-shaped collection's type argument, or an explicit
// variable type when neither structural form applies.
func (v *Visitor) visitForeach(n *boundtree.Foreach) {
	collection := v.Visit(n.Collection)
	v.dereference(collection, "foreach collection", n.Pos())

	var elemTwn typesystem.TypeWithNode
	switch t := collection.Type.(type) {
	case *symbol.Array:
		elemTwn = collection.Child(0)
	case *symbol.Named:
		if isSequenceName(t.Name) && len(collection.Args) == 1 {
			elemTwn = collection.Args[0]
		}
	}
	if elemTwn.Node == nil && n.VariableType != nil {
		elemTwn = v.Syntax.Visit(n.VariableType)
	}
	if elemTwn.Node == nil {
		panic(fmt.Sprintf("opvisit: foreach element type could not be resolved at %v", n.Pos()))
	}

	v.locals[n.Variable] = elemTwn
	v.VisitStatements(n.Body)
}

// visitVariableDeclaration implements spec 4.2/4.3's `var` rule: an
// implicit-typed local adopts its initializer's TypeWithNode wholesale;
// an explicitly typed local's initializer flows into the declared type as
// an ordinary assignment.
func (v *Visitor) visitVariableDeclaration(n *boundtree.VariableDeclaration) {
	var initTwn typesystem.TypeWithNode
	if n.Initializer != nil {
		initTwn = v.Visit(n.Initializer)
	}

	var declared typesystem.TypeWithNode
	switch {
	case n.Type == nil:
		declared = syntaxvisit.VisitVarFromInitializer(nil, initTwn)
	case n.Initializer != nil:
		declared = v.Syntax.Visit(n.Type)
		v.assignInto(initTwn, declared, "variable initializer", n.Pos())
	default:
		declared = v.Syntax.Visit(n.Type)
	}
	v.locals[n.Local] = declared
}
