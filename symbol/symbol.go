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

package symbol

// Kind classifies a Symbol per the binder's symbol interface (spec 6).
type Kind int

const (
	KindMethod Kind = iota
	KindParameter
	KindProperty
	KindField
	KindEvent
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindParameter:
		return "parameter"
	case KindProperty:
		return "property"
	case KindField:
		return "field"
	case KindEvent:
		return "event"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Annotation is the three-state declared nullable annotation an external
// symbol carries (spec 3): Annotated -> Nullable, NotAnnotated -> NonNull,
// None -> Oblivious.
type Annotation int

const (
	AnnotationNone Annotation = iota
	AnnotationAnnotated
	AnnotationNotAnnotated
)

// RefKind is a parameter's by-reference modifier (spec 6).
type RefKind int

const (
	RefNone RefKind = iota
	RefIn
	RefOut
	RefRef
	RefParams
)

func (r RefKind) IsByRef() bool { return r == RefRef || r == RefOut || r == RefIn }

// Symbol is the common surface every declared entity exposes to the builder,
// per spec 6's "Symbol interface".
type Symbol interface {
	Name() string
	Kind() Kind
	// Container returns the enclosing symbol (declaring method for a local
	// or parameter, declaring type for a member), or nil at the top level.
	Container() Symbol
	// DeclaredType is the symbol's declared type, nullability-free.
	DeclaredType() Type
	// DeclaredAnnotation is meaningful for symbols outside the current
	// compilation unit; symbols belonging to the unit are resolved purely
	// structurally by the syntax visitor instead (spec 4.1).
	DeclaredAnnotation() Annotation
	// Module identifies which compilation unit declared this symbol. The
	// type system registry uses this to decide whether GetSymbolType must
	// find the symbol already registered (current module) or may
	// materialize it lazily from its declared annotation (external).
	Module() string
}

// Method is a Symbol of KindMethod (also used for constructors and operator
// overloads - OperatorSymbol below narrows further for the latter).
type Method interface {
	Symbol
	ReturnType() Type
	Parameters() []Parameter
	TypeParameters() []TypeParameter
	// IsStatic reports whether a receiver dereference edge is required
	// (spec 4.3, "Calls / indexers / constructors").
	IsStatic() bool
	// IsAsync marks a method whose declared return is TaskLike<T> but which
	// behaves, for flow purposes, as if it returned T (spec 4.3, "Async").
	IsAsync() bool
	// IsIterator marks a method containing `yield return`, whose declared
	// return is Sequence<T> (spec 4.3, "Iterators").
	IsIterator() bool
}

// OperatorSymbol narrows Method for a user-defined implicit/explicit
// conversion operator (spec 4.3, "User-defined implicit conversions").
type OperatorSymbol interface {
	Method
	// ConversionOperator reports whether this operator is a conversion
	// operator; its single parameter's type is the type converted from, and
	// ReturnType is the type converted to.
	ConversionOperator() bool
}

// Parameter is a Symbol of KindParameter.
type Parameter interface {
	Symbol
	Ordinal() int
	RefKind() RefKind
}

// Property is a Symbol of KindProperty; Parameters is non-empty only for
// indexers (spec 4.1, "Indexer accessor parameters").
type Property interface {
	Symbol
	Parameters() []Parameter
}

// Field is a Symbol of KindField.
type Field interface {
	Symbol
}

// Event is a Symbol of KindEvent.
type Event interface {
	Symbol
}

// Local is a Symbol of KindLocal (includes `foreach` iteration variables and
// pattern-match bindings).
type Local interface {
	Symbol
	// Implicit reports whether the local was declared with `var` and must
	// adopt its initializer's TypeWithNode wholesale (spec 4.2, 4.3).
	Implicit() bool
}
