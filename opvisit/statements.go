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
)

// VisitStatements walks a statement list in order.
func (v *Visitor) VisitStatements(stmts []boundtree.Node) {
	for _, s := range stmts {
		v.VisitStatement(s)
	}
}

// VisitStatement dispatches on the concrete statement kind. Unlike Visit,
// it returns nothing - statements don't themselves have a TypeWithNode.
func (v *Visitor) VisitStatement(n boundtree.Node) {
	switch t := n.(type) {
	case *boundtree.ExpressionStatement:
		v.Visit(t.Expression)
	case *boundtree.ReturnStatement:
		if t.Value == nil {
			return
		}
		result := v.Visit(t.Value)
		if v.currentReturn.Node != nil {
			v.assignInto(result, v.currentReturn, "return", t.Pos())
		}
	case *boundtree.IfStatement:
		v.Visit(t.Condition)
		v.VisitStatements(t.Then)
		v.VisitStatements(t.Else)
	case *boundtree.Foreach:
		v.visitForeach(t)
	case *boundtree.VariableDeclaration:
		v.visitVariableDeclaration(t)
	case *boundtree.YieldReturn:
		v.visitYieldReturn(t)
	default:
		panic(fmt.Sprintf("opvisit: unsupported statement %T at %v", n, n.Pos()))
	}
}
