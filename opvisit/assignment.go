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
	"github.com/nullgraph/nullgraph/typesystem"
)

// visitAssignment implements spec 4.3, "Assignment": the value's type flows
// into the target's type, and the assignment's own result (for chained
// assignment, `a = b = c`) is the target's type after the write.
func (v *Visitor) visitAssignment(n *boundtree.Assignment) typesystem.TypeWithNode {
	target := v.Visit(n.Target)
	value := v.Visit(n.Value)
	v.assignInto(value, target, "assignment", n.Pos())
	return target
}

// visitTupleDeconstruction implements spec 4.3, "Tuple deconstruction":
// each target receives the assignability edge from the corresponding
// element of the value's tuple TypeWithNode.
func (v *Visitor) visitTupleDeconstruction(n *boundtree.TupleDeconstruction) typesystem.TypeWithNode {
	value := v.Visit(n.Value)
	for i, target := range n.Targets {
		targetTwn := v.Visit(target)
		v.assignInto(value.Child(i), targetTwn, "tuple deconstruction", n.Pos())
	}
	return value
}
