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

	"github.com/nullgraph/nullgraph/typesystem"
	"github.com/nullgraph/nullgraph/variance"
)

// assignInto emits an ordinary assignability edge chain from value into
// target - covariant at the outer level, with inner levels composed by
// package variance's table: array elements and invariant generic slots get
// both directions, contravariant slots are reversed.
func (v *Visitor) assignInto(value, target typesystem.TypeWithNode, label string, pos token.Pos) {
	v.assignWithSubstitution(value, target, nil, label, pos)
}

// assignWithSubstitution is assignInto with an explicit generic
// substitution, used by call-argument binding (spec 4.3, "Calls / indexers
// / constructors").
func (v *Visitor) assignWithSubstitution(value, target typesystem.TypeWithNode, sub *variance.Substitution, label string, pos token.Pos) {
	if value.Node == nil || target.Node == nil {
		return
	}
	v.Builder.RegisterEdges(variance.CreateTypeEdge(value, target, sub, variance.Out, label, pos)...)
}

// bidirectionalInto emits both directions between value and target, used
// for by-reference ("ref") argument binding (spec 4.3).
func (v *Visitor) bidirectionalInto(value, target typesystem.TypeWithNode, sub *variance.Substitution, label string, pos token.Pos) {
	if value.Node == nil || target.Node == nil {
		return
	}
	v.Builder.RegisterEdges(variance.CreateTypeEdge(value, target, sub, variance.Invariant, label, pos)...)
}
