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

// Package variance implements spec 4.4's CreateTypeEdge: recursive,
// variance-aware edge creation between two TypeWithNode trees.
package variance

import "github.com/nullgraph/nullgraph/symbol"

// Variance selects which direction(s) CreateTypeEdge emits an edge in at a
// given tree position.
type Variance int

const (
	// Out is covariant / assignment position: source -> target.
	Out Variance = iota
	// In is contravariant / parameter position: target -> source.
	In
	// Invariant emits both directions.
	Invariant
)

// Flip returns the opposite of a covariant/contravariant variance;
// Invariant is its own flip.
func (v Variance) Flip() Variance {
	switch v {
	case Out:
		return In
	case In:
		return Out
	default:
		return Invariant
	}
}

// FromDeclared converts a type parameter's declaration-site variance
// (symbol.Variance) into the edge-direction Variance used during recursion,
// per spec 4.4's composition table.
func FromDeclared(d symbol.Variance) Variance {
	switch d {
	case symbol.VarianceCovariant:
		return Out
	case symbol.VarianceContravariant:
		return In
	default:
		return Invariant
	}
}

// compose implements the small table from spec 4.4/design notes: recursing
// into a covariant parameter preserves the caller's variance; into a
// contravariant one flips it; into an invariant slot forces invariance
// regardless of the caller's variance.
func compose(outer Variance, declared symbol.Variance) Variance {
	switch declared {
	case symbol.VarianceCovariant:
		return outer
	case symbol.VarianceContravariant:
		return outer.Flip()
	default:
		return Invariant
	}
}
