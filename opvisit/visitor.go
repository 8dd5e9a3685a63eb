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

// Package opvisit is the operation visitor (spec 4.3): it walks the bound
// tree of expressions and statements, produces each expression's
// TypeWithNode, and emits assignability/dereference edges. This is the core
// of the flow-graph builder (spec section 2, "~55% of budget").
//
// A Visitor is scoped to one syntax tree and must not be shared across
// trees; it owns that tree's Builder and local-variable table, but it still
// allocates fresh nodes out of the one Arena shared by the whole
// compilation unit and can materialize external symbols directly into the
// shared Registry, so nullgraph.Run visits one tree's Visitor to completion
// before starting the next rather than running multiple concurrently.
package opvisit

import (
	"fmt"
	"go/token"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/builder"
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/syntaxvisit"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
)

// Visitor walks one tree's method bodies.
type Visitor struct {
	Registry *typesystem.Registry
	Syntax   *syntaxvisit.Visitor
	Builder  *builder.Builder
	Flow     boundtree.NonNullFlow

	// locals holds every symbol whose TypeWithNode is scoped to this tree's
	// walk rather than registered in the shared Registry: block-scoped
	// locals, foreach/pattern bindings, and lambda parameters (spec 4.3,
	// "Lambdas" - a lambda parameter's type comes from the delegate target,
	// not from any Phase 1 declaration).
	locals map[symbol.Symbol]typesystem.TypeWithNode

	// currentReturn is the enclosing function's return TypeWithNode,
	// already unwrapped for async/iterator methods (spec 4.3, "Async",
	// "Iterators"). It is rebound on entry to each lambda/local function
	// (spec 4.3, "Lambdas ... the body is visited with
	// currentMethodReturnType bound to the target's return").
	currentReturn typesystem.TypeWithNode
	// currentIsIterator marks that yield return, not return, is expected
	// in the current function body.
	currentIsIterator bool

	// implicitReceivers stacks the enclosing object-creation's TypeWithNode
	// while its initializer members are being visited, so InstanceRef with
	// IsThis false resolves without re-visiting (and double-emitting edges
	// for) the ObjectCreation node itself.
	implicitReceivers []typesystem.TypeWithNode
}

func (v *Visitor) pushImplicitReceiver(twn typesystem.TypeWithNode) {
	v.implicitReceivers = append(v.implicitReceivers, twn)
}

func (v *Visitor) popImplicitReceiver() {
	v.implicitReceivers = v.implicitReceivers[:len(v.implicitReceivers)-1]
}

func (v *Visitor) currentImplicitReceiver() typesystem.TypeWithNode {
	if len(v.implicitReceivers) == 0 {
		panic("opvisit: implicit receiver referenced outside an object/collection initializer")
	}
	return v.implicitReceivers[len(v.implicitReceivers)-1]
}

// New returns a Visitor for one tree.
func New(registry *typesystem.Registry, syn *syntaxvisit.Visitor, b *builder.Builder, flow boundtree.NonNullFlow) *Visitor {
	if flow == nil {
		flow = boundtree.NoNonNullFlow{}
	}
	return &Visitor{Registry: registry, Syntax: syn, Builder: b, Flow: flow, locals: make(map[symbol.Symbol]typesystem.TypeWithNode)}
}

// VisitMethod visits one method's body (or expression body), with
// currentReturn bound to its declared return type, unwrapped for
// async/iterator methods per spec 4.3.
func (v *Visitor) VisitMethod(decl *boundtree.MethodDeclaration) {
	saved, savedIter := v.currentReturn, v.currentIsIterator
	defer func() { v.currentReturn, v.currentIsIterator = saved, savedIter }()

	if decl.Symbol != nil && decl.ReturnType != nil {
		declared := v.Registry.GetSymbolType(decl.Symbol)
		v.currentIsIterator = decl.Symbol.IsIterator()
		v.currentReturn = unwrapReturn(declared, decl.Symbol)
	} else {
		v.currentReturn = typesystem.TypeWithNode{}
		v.currentIsIterator = false
	}

	if decl.ExpressionBody != nil {
		result := v.Visit(decl.ExpressionBody)
		if decl.ReturnType != nil {
			v.assignInto(result, v.currentReturn, "return", decl.ExpressionBody.Pos())
		}
		return
	}
	v.VisitStatements(decl.Body)
}

// unwrapReturn implements spec 4.3's "Async"/"Iterators" pass-through
// wrapping: a TaskLike<T>/Sequence<T> declared return is treated, for flow
// purposes, as T.
func unwrapReturn(declared typesystem.TypeWithNode, m symbol.Method) typesystem.TypeWithNode {
	named, ok := declared.Type.(*symbol.Named)
	if !ok {
		return declared
	}
	if (m.IsAsync() && isTaskLikeName(named.Name)) || (m.IsIterator() && isSequenceName(named.Name)) {
		if len(declared.Args) == 1 {
			return declared.Args[0]
		}
	}
	return declared
}

func isTaskLikeName(name string) bool {
	switch name {
	case "TaskLike", "Task", "ValueTask":
		return true
	default:
		return false
	}
}

func isSequenceName(name string) bool {
	switch name {
	case "Sequence", "Enumerable", "Enumerator", "IEnumerable", "IEnumerator":
		return true
	default:
		return false
	}
}

// Visit dispatches on the concrete operation kind, per the design notes'
// "tagged-union match with one arm per operation kind; default arm is
// unsupported and fatal".
func (v *Visitor) Visit(n boundtree.Node) typesystem.TypeWithNode {
	switch t := n.(type) {
	case *boundtree.NullLiteral:
		return v.visitNullLiteral(t)
	case *boundtree.Literal:
		return v.visitLiteral(t)
	case *boundtree.SymbolRef:
		return v.visitSymbolRef(t)
	case *boundtree.InstanceRef:
		return v.visitInstanceRef(t)
	case *boundtree.Assignment:
		return v.visitAssignment(t)
	case *boundtree.Invocation:
		return v.visitInvocation(t)
	case *boundtree.Conversion:
		return v.visitConversion(t)
	case *boundtree.ThrowExpr:
		return v.visitThrow(t)
	case *boundtree.Coalesce:
		return v.visitCoalesce(t)
	case *boundtree.Conditional:
		return v.visitConditional(t)
	case *boundtree.BinaryNullCheck:
		return v.visitBinaryNullCheck(t)
	case *boundtree.NullForgiving:
		return v.visitNullForgiving(t)
	case *boundtree.ArrayCreation:
		return v.visitArrayCreation(t)
	case *boundtree.ObjectCreation:
		return v.visitObjectCreation(t)
	case *boundtree.TupleLiteral:
		return v.visitTupleLiteral(t)
	case *boundtree.TupleDeconstruction:
		return v.visitTupleDeconstruction(t)
	case *boundtree.Lambda:
		return v.visitLambda(t)
	case *boundtree.DelegateConversion:
		return v.visitDelegateConversion(t)
	case *boundtree.Await:
		return v.visitAwait(t)
	case *boundtree.TaskResultAccess:
		return v.visitTaskResultAccess(t)
	case *boundtree.IsPattern:
		return v.visitIsPattern(t)
	case *boundtree.PropertyPattern:
		return v.visitPropertyPattern(t)
	case *boundtree.SwitchExpression:
		return v.visitSwitchExpression(t)
	case *boundtree.AnonymousObject:
		return v.visitAnonymousObject(t)
	case *boundtree.UserDefinedConversion:
		return v.visitUserDefinedConversion(t)
	default:
		panic(fmt.Sprintf("opvisit: unsupported construct %T at %v", n, n.Pos()))
	}
}

// dereference emits `node -> NonNull` (spec 3's dereference-constraint
// encoding), used whenever an expression's value is dereferenced: a member
// access receiver, an indexer receiver, a foreach source, an unboxing
// operand, or an explicit `throw e`.
func (v *Visitor) dereference(twn typesystem.TypeWithNode, label string, pos token.Pos) {
	if twn.Node == nil {
		return
	}
	v.Builder.RegisterEdges(typegraph.Spec(twn.Node, typegraph.NonNullSingleton, label, pos))
}

// freshResultNode allocates a fresh inferred node for a synthetic result
// position (conditional, switch expression, an inferred generic method type
// argument at a call site), registering it with
// the builder for solver enumeration.
func (v *Visitor) freshResultNode(debugName string) *typegraph.Node {
	n := v.Registry.Arena().NewInferredNode(debugName)
	v.Builder.RegisterNodes(n)
	return n
}
