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
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
)

// visitNullLiteral implements spec 4.3: `null` -> (type, nullable).
func (v *Visitor) visitNullLiteral(n *boundtree.NullLiteral) typesystem.TypeWithNode {
	return typesystem.TypeWithNode{Node: typegraph.NullableSingleton}
}

// visitLiteral implements spec 4.3: non-null reference literals (strings,
// typeof) -> (type, non-null); value-type literals -> (type, oblivious).
func (v *Visitor) visitLiteral(n *boundtree.Literal) typesystem.TypeWithNode {
	if n.IsValueType {
		return typesystem.TypeWithNode{Type: n.Type, Node: typegraph.ObliviousSingleton}
	}
	return typesystem.TypeWithNode{Type: n.Type, Node: typegraph.NonNullSingleton}
}
