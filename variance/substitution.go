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
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typesystem"
)

// Substitution is the design notes' "two parallel ordered lists": nodes
// bound to the receiver's class type parameters, and nodes bound to a
// method's own (possibly inferred) type parameters at one use site.
type Substitution struct {
	ClassArgs  []typesystem.TypeWithNode
	MethodArgs []typesystem.TypeWithNode
}

// Lookup resolves a type-parameter occurrence by (kind, ordinal). If the
// ordinal falls outside the recorded list - e.g. an outer-enclosing generic
// with no substitution supplied at this call site - it reports false and
// the caller falls through to the declared node unchanged (design notes,
// "Generic substitution").
func (s *Substitution) Lookup(tp *symbol.TypeParameter) (typesystem.TypeWithNode, bool) {
	if s == nil || tp == nil {
		return typesystem.TypeWithNode{}, false
	}
	if tp.OnClass {
		if tp.Ordinal >= 0 && tp.Ordinal < len(s.ClassArgs) {
			return s.ClassArgs[tp.Ordinal], true
		}
		return typesystem.TypeWithNode{}, false
	}
	if tp.Ordinal >= 0 && tp.Ordinal < len(s.MethodArgs) {
		return s.MethodArgs[tp.Ordinal], true
	}
	return typesystem.TypeWithNode{}, false
}
