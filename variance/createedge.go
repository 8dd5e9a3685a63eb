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

package variance

import (
	"go/token"

	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
)

// CreateTypeEdge implements spec 4.4. It recursively descends source and
// target's TypeWithNode trees, substituting type-parameter slots in target
// under sub, and emits an outer edge oriented by v: source->target for Out,
// target->source for In, both for Invariant. Recursion into type arguments
// composes variance by the target's declared per-argument variance, except
// array element positions which are always Invariant regardless of the
// declared (covariant) element conversion, to preserve store soundness
// (spec 4.4, final paragraph).
func CreateTypeEdge(source, target typesystem.TypeWithNode, sub *Substitution, v Variance, label string, pos token.Pos) []typegraph.EdgeSpec {
	if source.Node == nil || target.Node == nil {
		return nil
	}

	if tp, ok := target.Type.(*symbol.TypeParameter); ok {
		if resolved, ok := sub.Lookup(tp); ok {
			target = resolved
		}
	}

	var edges []typegraph.EdgeSpec
	switch v {
	case Out:
		edges = append(edges, typegraph.Spec(source.Node, target.Node, label, pos))
	case In:
		edges = append(edges, typegraph.Spec(target.Node, source.Node, label, pos))
	case Invariant:
		edges = append(edges, typegraph.Spec(source.Node, target.Node, label, pos))
		edges = append(edges, typegraph.Spec(target.Node, source.Node, label, pos))
	}

	n := len(source.Args)
	if len(target.Args) < n {
		n = len(target.Args)
	}
	for i := 0; i < n; i++ {
		childVariance := composeChildVariance(target.Type, i, v)
		edges = append(edges, CreateTypeEdge(source.Args[i], target.Args[i], sub, childVariance, label, pos)...)
	}
	return edges
}

// composeChildVariance decides the variance to use when recursing into the
// i'th child of target, given the caller's variance v at this level.
func composeChildVariance(targetType symbol.Type, i int, v Variance) Variance {
	switch t := targetType.(type) {
	case *symbol.Array:
		// Array element positions are invariant at the nullability level
		// even though the element conversion itself is covariant.
		return Invariant
	case *symbol.NullableValue:
		return v
	case *symbol.FunctionShape:
		if i < len(t.Params) {
			return v.Flip() // parameter positions are contravariant
		}
		return v // return position is covariant
	case *symbol.Named:
		return compose(v, t.VarianceOf(i))
	default:
		// Tuples and unmodeled shapes: preserve the caller's variance,
		// matching plain positional assignability (spec 4.3, "Tuples").
		return v
	}
}
