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

// MethodDeclaration is a method, constructor, or operator declaration.
// Exactly one of Body or ExpressionBody is populated.
type MethodDeclaration struct {
	base
	Symbol         symbol.Method
	ReturnType     *TypeSyntax // nil for a constructor
	ParameterTypes []*TypeSyntax
	Body           []Node
	ExpressionBody Node
}

// PropertyDeclaration is a property or indexer declaration.
type PropertyDeclaration struct {
	base
	Symbol              symbol.Property
	Type                *TypeSyntax
	IndexParameterTypes []*TypeSyntax
	Getter              *MethodDeclaration
	Setter              *MethodDeclaration
}

// FieldDeclaration is a field declaration, with an optional initializer.
type FieldDeclaration struct {
	base
	Symbol      symbol.Field
	Type        *TypeSyntax
	Initializer Node
}

// ClassDeclaration groups the member declarations of one named type.
// nullgraph.Run registers each member's type from it in Phase 1 and visits
// its methods' and property accessors' bodies in Phase 2; field
// initializers are not visited (SPEC_FULL 3.1).
type ClassDeclaration struct {
	base
	Name       string
	Fields     []*FieldDeclaration
	Properties []*PropertyDeclaration
	Methods    []*MethodDeclaration
}

// Tree is one syntax tree - the unit of per-tree Builder construction
// (spec 5). Path is used as the committer's stable sort key, so the
// resulting graph is deterministic regardless of build order.
type Tree struct {
	Path    string
	Classes []*ClassDeclaration
	Methods []*MethodDeclaration

	// NoInfer marks a tree whose source carried config.NoInferDirective in a
	// comment; nullgraph.Run skips it entirely rather than registering or
	// visiting its declarations.
	NoInfer bool
}
