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

// ConversionKind classifies a Conversion node (spec 6, "classification of
// each conversion").
type ConversionKind int

const (
	ConversionReference ConversionKind = iota
	ConversionUnboxingToNonNullable
	ConversionUnboxingToNullable
)

// NullLiteral is the `null` literal (spec 4.3, "Literals").
type NullLiteral struct{ base }

// Literal is any non-null literal: a reference literal (string, typeof -
// IsValueType false, always non-null) or a value-type literal (int, bool,
// ... - IsValueType true, always oblivious).
type Literal struct {
	base
	Type        symbol.Type
	IsValueType bool
}

// SymbolRef references a declared parameter, local, field, property or
// event (spec 4.3, "References"). Receiver is non-nil for an instance
// member access.
type SymbolRef struct {
	base
	Symbol   symbol.Symbol
	Receiver Node
	// OwnerTypeArgs substitutes a generic-qualified static owner's type
	// arguments at this reference (spec 4.3, "static references on a
	// generic-qualified owner adopt the qualifier's type arguments").
	OwnerTypeArgs []*TypeSyntax
}

// InstanceRef is `this`, or the implicit receiver inside an object /
// collection initializer. In the latter case (IsThis false) the visitor
// resolves it against the object-creation currently being visited rather
// than against a node pointer here, since re-visiting that node would
// double-emit its edges (spec 4.3, "Instance reference").
type InstanceRef struct {
	base
	IsThis bool
}

// Assignment is `target = value`.
type Assignment struct {
	base
	Target Node
	Value  Node
}

// Argument is one call argument, its by-reference modifier mirroring the
// parameter it binds to.
type Argument struct {
	Value   Node
	RefKind symbol.RefKind
}

// InvocationKind distinguishes calls, indexers, and constructors, which
// share the same argument-binding and substitution machinery (spec 4.3,
// "Calls / indexers / constructors").
type InvocationKind int

const (
	InvokeCall InvocationKind = iota
	InvokeIndexer
	InvokeConstructor
)

// Invocation is a method call, indexer access, or constructor invocation.
type Invocation struct {
	base
	InvocationKind   InvocationKind
	Receiver         Node // nil for static calls and constructors
	Method           symbol.Method
	ExplicitTypeArgs []*TypeSyntax // method type arguments written at the call site
	ReceiverTypeArgs []*TypeSyntax // the receiver's own class's type arguments, if generic-qualified
	Arguments        []Argument    // positional, aligned to Method.Parameters()
}

// Conversion is a reference conversion or an unboxing conversion (spec 4.3,
// "Conversions").
type Conversion struct {
	base
	Kind    ConversionKind
	Operand Node
	Target  *TypeSyntax
}

// ThrowExpr is `throw e` used in expression position; oblivious of any
// target type (spec 4.3, "Throw expression").
type ThrowExpr struct {
	base
	Operand Node
}

// Coalesce is `a ?? b`.
type Coalesce struct {
	base
	Left, Right Node
}

// Conditional is `c ? x : y`. The resolved open question (spec 9): both
// branches are visited exactly once and both feed the result.
type Conditional struct {
	base
	Condition, WhenTrue, WhenFalse Node
}

// BinaryNullCheck is `x == null`, `x != null`, `x is null`, or
// `x is not null`. It yields an oblivious boolean; the harness (not the
// operation visitor) uses these sites to compute NonNullFlow.
type BinaryNullCheck struct {
	base
	Operand Node
	Negated bool
}

// NullForgiving is the postfix `!` operator.
type NullForgiving struct {
	base
	Operand Node
}

// ArrayCreation is `new T[n]` with optional initializer elements, or a
// bracketed array initializer `new[] { ... }`. Multi-dimensional and jagged
// arrays are modeled by nesting ArrayCreation/TypeSyntax as usual.
type ArrayCreation struct {
	base
	ElementType *TypeSyntax
	Initializer []Node
}

// InitializerMember is one entry of an object or collection initializer
// (spec 4.3, "Object/collection initializers"). Exactly one of (Member,
// Value) or (AddMethod, AddArguments) is populated.
type InitializerMember struct {
	Member symbol.Symbol // field/property/indexer being initialized
	Value  Node

	AddMethod    symbol.Method // collection-initializer entries model as Add(...) calls
	AddArguments []Argument
}

// ObjectCreation is `new T(...)` optionally followed by `{ ... }`.
type ObjectCreation struct {
	base
	Type         *TypeSyntax
	Constructor  *Invocation // nil for a target-typed `new()` with no constructor arguments
	Initializers []InitializerMember
}

// TupleLiteral is `(a, b, c)`, optionally with named elements.
type TupleLiteral struct {
	base
	Elements []Node
	Names    []string
}

// TupleDeconstruction is `(a, b) = expr`. Targets are assignable nodes, one
// per tuple element.
type TupleDeconstruction struct {
	base
	Targets []Node
	Value   Node
}

// Lambda is a lambda expression or local function (spec 4.3, "Lambdas /
// local functions / delegates").
type Lambda struct {
	base
	Parameters         []symbol.Parameter
	ReturnType         *TypeSyntax // nil if inferred from Target
	Body               []Node
	ExpressionBody     Node // set instead of Body for `x => expr`
	Target             *TypeSyntax
}

// DelegateConversion converts a lambda or method group to a named delegate
// type, emitting edges parameter-for-parameter (contravariant) and
// return-for-return (covariant).
type DelegateConversion struct {
	base
	Operand      Node
	DelegateType *TypeSyntax
}

// YieldReturn is `yield return e` inside an iterator method.
type YieldReturn struct {
	base
	Value Node
}

// Await is `await e`.
type Await struct {
	base
	Operand Node
}

// TaskResultAccess is `.Result` on a TaskLike<T>.
type TaskResultAccess struct {
	base
	Operand Node
}

// IsPattern is a type pattern `obj is Box b`.
type IsPattern struct {
	base
	Operand     Node
	PatternType *TypeSyntax
	Binding     symbol.Local // nil if the pattern introduces no binding
}

// PropertyPatternBinding is one `P: var x` entry of a property pattern.
type PropertyPatternBinding struct {
	Property symbol.Property
	Binding  symbol.Local
}

// PropertyPattern is `obj is { P: var x }`.
type PropertyPattern struct {
	base
	Operand  Node
	Bindings []PropertyPatternBinding
}

// SwitchArm is one arm of a switch expression.
type SwitchArm struct {
	Pattern   Node // nil for a wildcard `_` arm
	IsNullArm bool
	Value     Node
}

// SwitchExpression evaluates every arm; reference-typed arms flow into a
// fresh result type (spec 4.3, "Pattern matching").
type SwitchExpression struct {
	base
	Operand Node
	Arms    []SwitchArm
}

// AnonymousObjectMember is one `Name = value` member of an anonymous object.
type AnonymousObjectMember struct {
	Name  string
	Value Node
}

// AnonymousObject is `new { A = 1, B = s }`.
type AnonymousObject struct {
	base
	Members []AnonymousObjectMember
}

// UserDefinedConversion applies a user-defined implicit or explicit
// conversion operator.
type UserDefinedConversion struct {
	base
	Operand          Node
	Operator         symbol.OperatorSymbol
	ReceiverTypeArgs []*TypeSyntax
}
