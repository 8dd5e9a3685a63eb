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
	"github.com/nullgraph/nullgraph/typesystem"
)

// visitAwait implements spec 4.3, "Async": awaiting a null task throws at
// runtime, so the task instance is dereferenced; the result unwraps
// TaskLike<T>/Task<T>/ValueTask<T> to T, mirroring unwrapReturn.
func (v *Visitor) visitAwait(n *boundtree.Await) typesystem.TypeWithNode {
	operand := v.Visit(n.Operand)
	v.dereference(operand, "await", n.Pos())
	return unwrapTaskLike(operand)
}

// visitTaskResultAccess implements `.Result` on a TaskLike<T>: the same
// dereference-then-unwrap rule as Await, since it is another way to block
// on and read out of the underlying task.
func (v *Visitor) visitTaskResultAccess(n *boundtree.TaskResultAccess) typesystem.TypeWithNode {
	operand := v.Visit(n.Operand)
	v.dereference(operand, "task result access", n.Pos())
	return unwrapTaskLike(operand)
}

func unwrapTaskLike(twn typesystem.TypeWithNode) typesystem.TypeWithNode {
	named, ok := twn.Type.(*symbol.Named)
	if !ok || !isTaskLikeName(named.Name) || len(twn.Args) != 1 {
		return twn
	}
	return twn.Args[0]
}

// visitYieldReturn implements `yield return e` inside an iterator method: the
// value is assigned into the iterator's already-unwrapped element type
// (spec 4.3, "Iterators"), the same currentReturn VisitMethod bound from
// unwrapReturn.
func (v *Visitor) visitYieldReturn(n *boundtree.YieldReturn) {
	value := v.Visit(n.Value)
	v.assignInto(value, v.currentReturn, "yield return", n.Pos())
}
