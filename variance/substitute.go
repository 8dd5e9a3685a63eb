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

// Substitute rebuilds t with every type-parameter occurrence replaced by
// its bound node under sub, used to compute a call's substituted return
// type (spec 4.3, "The call's result is the declared return type after
// substitution").
func Substitute(t typesystem.TypeWithNode, sub *Substitution) typesystem.TypeWithNode {
	if tp, ok := t.Type.(*symbol.TypeParameter); ok {
		if resolved, ok := sub.Lookup(tp); ok {
			return resolved
		}
		return t
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]typesystem.TypeWithNode, len(t.Args))
	for i, a := range t.Args {
		args[i] = Substitute(a, sub)
	}
	t.Args = args
	return t
}
