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
)

// visitLambda implements spec 4.3, "Lambdas / local functions / delegates":
// each parameter adopts the target delegate's corresponding parameter node
// directly (target typing), the body is visited with currentMethodReturnType
// rebound to the target's return, and a freshly created lambda is itself
// always non-null.
func (v *Visitor) visitLambda(n *boundtree.Lambda) typesystem.TypeWithNode {
	targetTwn := v.Syntax.Visit(n.Target)
	shape, _ := targetTwn.Type.(*symbol.FunctionShape)

	for i, p := range n.Parameters {
		var twn typesystem.TypeWithNode
		if shape != nil && i < len(shape.Params) && i < len(targetTwn.Args) {
			twn = targetTwn.Args[i]
		} else {
			twn = v.Registry.FromType(p.DeclaredType(), symbol.AnnotationNone)
		}
		v.locals[p] = twn
	}

	savedReturn, savedIter := v.currentReturn, v.currentIsIterator
	defer func() { v.currentReturn, v.currentIsIterator = savedReturn, savedIter }()
	v.currentIsIterator = false

	switch {
	case shape != nil && len(targetTwn.Args) > len(shape.Params):
		v.currentReturn = targetTwn.Args[len(shape.Params)]
	case n.ReturnType != nil:
		v.currentReturn = v.Syntax.Visit(n.ReturnType)
	default:
		v.currentReturn = typesystem.TypeWithNode{}
	}

	if n.ExpressionBody != nil {
		result := v.Visit(n.ExpressionBody)
		if v.currentReturn.Node != nil {
			v.assignInto(result, v.currentReturn, "lambda expression body", n.Pos())
		}
	} else {
		v.VisitStatements(n.Body)
	}

	return targetTwn.WithNode(typegraph.NonNullSingleton)
}
