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

// visitIsPattern implements spec 4.3, "Pattern matching": a type pattern
// never dereferences its operand - a null operand simply fails to match -
// and, when the pattern binds a local, that local is non-null for the
// scope in which the match is known to have succeeded, since a null
// operand cannot satisfy a type test.
func (v *Visitor) visitIsPattern(n *boundtree.IsPattern) typesystem.TypeWithNode {
	v.Visit(n.Operand)
	patternTwn := v.Syntax.Visit(n.PatternType)
	if n.Binding != nil {
		v.locals[n.Binding] = patternTwn.WithNode(typegraph.NonNullSingleton)
	}
	return typesystem.TypeWithNode{Node: typegraph.ObliviousSingleton}
}

// visitPropertyPattern implements `obj is { P: var x }`: the operand is not
// dereferenced (a property pattern reads through a null-check internally),
// and each bound sub-pattern local keeps the referenced property's own
// declared nullability, since `var x` matches any value including null.
func (v *Visitor) visitPropertyPattern(n *boundtree.PropertyPattern) typesystem.TypeWithNode {
	v.Visit(n.Operand)
	for _, b := range n.Bindings {
		v.locals[b.Binding] = v.Registry.GetSymbolType(b.Property)
	}
	return typesystem.TypeWithNode{Node: typegraph.ObliviousSingleton}
}
