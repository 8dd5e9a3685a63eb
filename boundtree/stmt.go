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

package boundtree

import "github.com/nullgraph/nullgraph/symbol"

// Foreach is `foreach (var x in collection) body` (spec 4.3, "Foreach").
type Foreach struct {
	base
	Variable     symbol.Local
	VariableType *TypeSyntax // nil if Variable.Implicit()
	Collection   Node
	Body         []Node
}

// VariableDeclaration declares and optionally initializes a local,
// including the implicit-`var` case (spec 4.2, 4.3).
type VariableDeclaration struct {
	base
	Local       symbol.Local
	Type        *TypeSyntax // nil if Local.Implicit()
	Initializer Node        // nil for a declaration with no initializer
}

// ExpressionStatement wraps an expression used in statement position (a
// bare call, a throw statement, ...).
type ExpressionStatement struct {
	base
	Expression Node
}

// ReturnStatement is `return e;` or a bare `return;`.
type ReturnStatement struct {
	base
	Value Node // nil for a bare `return;`
}

// IfStatement is `if (cond) then else`. Any non-null-flow refinement that
// applies inside Then/Else is entirely the harness's responsibility; the
// operation visitor treats If purely as control flow (spec 4.3, "Null
// checks").
type IfStatement struct {
	base
	Condition Node
	Then      []Node
	Else      []Node
}
