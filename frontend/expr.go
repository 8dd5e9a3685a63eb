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

package frontend

import (
	"fmt"
	"go/token"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/symbol"
)

// parseExpr parses a full expression: assignment down through primary and
// postfix operators. Lambdas are only recognized through
// parseExprWithTarget, since this grammar has no delegate type inference.
func (p *parser) parseExpr() boundtree.Node {
	return p.parseAssignment()
}

// parseExprWithTarget is parseExpr, but a bare `name => ...` is parsed as a
// Lambda targeted at target instead of falling through to parseAssignment
// (which has no production for it) - target normally comes from the
// declaration the expression initializes (spec 4.3, "Lambdas / local
// functions / delegates").
func (p *parser) parseExprWithTarget(target *boundtree.TypeSyntax) boundtree.Node {
	if lam, ok := p.tryParseLambda(target); ok {
		return lam
	}
	return p.parseExpr()
}

func (p *parser) tryParseLambda(target *boundtree.TypeSyntax) (boundtree.Node, bool) {
	if p.cur().kind != tokIdent {
		return nil, false
	}
	if !(p.idx+1 < len(p.toks) && p.toks[p.idx+1].kind == tokPunct && p.toks[p.idx+1].text == "=>") {
		return nil, false
	}
	pname, pos := p.expectIdent()
	p.expectPunct("=>")

	p.pushScope()
	defer p.popScope()
	param := &parameterSymbol{name: pname, ordinal: 0}
	p.declare(pname, param)

	body := p.parseExpr()
	lam := &boundtree.Lambda{Parameters: []symbol.Parameter{param}, ExpressionBody: body, Target: target}
	lam.At = pos
	return lam, true
}

func (p *parser) parseAssignment() boundtree.Node {
	left := p.parseCoalesce()
	if p.atPunct("=") {
		pos := p.advance().pos
		value := p.parseAssignment()
		n := &boundtree.Assignment{Target: left, Value: value}
		n.At = pos
		return n
	}
	return left
}

// parseCoalesce is `a ?? b`, right-associative.
func (p *parser) parseCoalesce() boundtree.Node {
	left := p.parseTernary()
	if p.atPunct("??") {
		pos := p.advance().pos
		right := p.parseCoalesce()
		n := &boundtree.Coalesce{Left: left, Right: right}
		n.At = pos
		return n
	}
	return left
}

// parseTernary is `c ? x : y`, resolving spec 9's open question: both
// branches are parsed (and later visited) exactly once.
func (p *parser) parseTernary() boundtree.Node {
	cond := p.parseUnary()
	if p.atPunct("?") {
		pos := p.advance().pos
		whenTrue := p.parseExpr()
		p.expectPunct(":")
		whenFalse := p.parseExpr()
		n := &boundtree.Conditional{Condition: cond, WhenTrue: whenTrue, WhenFalse: whenFalse}
		n.At = pos
		return n
	}
	return cond
}

func (p *parser) parseUnary() boundtree.Node {
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix consumes member access, indexing, a trailing `switch`
// expression, and the postfix null-forgiving `!`, left to right.
func (p *parser) parsePostfix(expr boundtree.Node) boundtree.Node {
	for {
		switch {
		case p.atPunct("."):
			p.advance()
			name, pos := p.expectIdent()
			expr = p.buildMemberAccess(expr, name, pos)

		case p.atPunct("["):
			p.advance()
			idx := p.parseExpr()
			p.expectPunct("]")
			expr = p.buildIndexer(expr, idx)

		case p.atKeyword("switch"):
			expr = p.parseSwitchExpression(expr)

		case p.atPunct("!"):
			pos := p.advance().pos
			n := &boundtree.NullForgiving{Operand: expr}
			n.At = pos
			expr = n

		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() boundtree.Node {
	t := p.cur()

	switch {
	case t.kind == tokIntLiteral:
		p.advance()
		n := &boundtree.Literal{Type: namedType("int", nil, nil), IsValueType: true}
		n.At = t.pos
		return n

	case t.kind == tokStringLiteral:
		p.advance()
		n := &boundtree.Literal{Type: namedType("string", nil, nil), IsValueType: false}
		n.At = t.pos
		return n

	case p.atKeyword("true") || p.atKeyword("false"):
		p.advance()
		n := &boundtree.Literal{Type: namedType("bool", nil, nil), IsValueType: true}
		n.At = t.pos
		return n

	case p.atKeyword("null"):
		p.advance()
		n := &boundtree.NullLiteral{}
		n.At = t.pos
		return n

	case p.atKeyword("this"):
		p.advance()
		n := &boundtree.InstanceRef{IsThis: true}
		n.At = t.pos
		return n

	case p.atKeyword("throw"):
		p.advance()
		operand := p.parseExpr()
		n := &boundtree.ThrowExpr{Operand: operand}
		n.At = t.pos
		return n

	case p.atKeyword("new"):
		return p.parseNew()

	case p.atPunct("("):
		if n, ok := p.tryParseCast(); ok {
			return n
		}
		return p.parseParenOrTuple()

	case t.kind == tokIdent:
		return p.parseIdentOrCall()

	default:
		p.fail(fmt.Sprintf("unexpected token %q", t.text))
		return nil
	}
}

// parseIdentOrCall parses a bare name: a reference to a declared local,
// parameter, or field, or - when followed by `(` - a call to a top-level
// method declared earlier in the same snippet (design note "Polymorphic
// visitors" only covers the operation visitor; name resolution here is the
// frontend's own binder responsibility, spec section 6).
func (p *parser) parseIdentOrCall() boundtree.Node {
	name, pos := p.expectIdent()

	var explicitArgs []*boundtree.TypeSyntax
	if p.atPunct("<") {
		p.advance()
		for {
			explicitArgs = append(explicitArgs, p.parseType())
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
		p.expectPunct(">")
	}

	if p.atPunct("(") {
		sym, ok := p.resolve(name)
		method, isMethod := sym.(*methodSymbol)
		if !ok || !isMethod {
			p.fail(fmt.Sprintf("call to undeclared method %q", name))
		}
		p.advance() // '('
		var args []boundtree.Argument
		for !p.atPunct(")") {
			args = append(args, boundtree.Argument{Value: p.parseExpr()})
			if p.atPunct(",") {
				p.advance()
				continue
			}
		}
		p.expectPunct(")")
		inv := &boundtree.Invocation{InvocationKind: boundtree.InvokeCall, Method: method, ExplicitTypeArgs: explicitArgs, Arguments: args}
		inv.At = pos
		return inv
	}

	if len(explicitArgs) > 0 {
		p.fail(fmt.Sprintf("%q is not a method", name))
	}

	sym, ok := p.resolve(name)
	if !ok {
		p.fail(fmt.Sprintf("undeclared identifier %q", name))
	}
	ref := &boundtree.SymbolRef{Symbol: sym}
	ref.At = pos
	if p.proven[name] {
		p.flow.proven[pos] = true
	}
	return ref
}

// buildMemberAccess resolves `receiver.name` against the declared class of
// receiver's static type, one of the harness's own declared classes
// (SPEC_FULL 3.1); anything else is unsupported in this toy grammar.
func (p *parser) buildMemberAccess(receiver boundtree.Node, name string, pos token.Pos) boundtree.Node {
	className, ok := p.classNameOf(receiver)
	if !ok {
		p.fail(fmt.Sprintf("cannot resolve member %q: receiver is not a known class-typed reference", name))
	}
	field, ok := p.classes[className][name]
	if !ok {
		p.fail(fmt.Sprintf("class %q has no field %q", className, name))
	}
	ref := &boundtree.SymbolRef{Symbol: field, Receiver: receiver}
	ref.At = pos
	return ref
}

func (p *parser) classNameOf(n boundtree.Node) (string, bool) {
	ref, ok := n.(*boundtree.SymbolRef)
	if !ok || ref.Symbol == nil {
		return "", false
	}
	named, ok := ref.Symbol.DeclaredType().(*symbol.Named)
	if !ok {
		return "", false
	}
	if _, known := p.classes[named.Name]; !known {
		return "", false
	}
	return named.Name, true
}

// buildIndexer resolves `receiver[idx]` against a bare array-typed
// reference. There is no user-declared indexer to bind against in this
// grammar (arrays are the only indexable type), so the first `x[...]` seen
// for a given array symbol synthesizes a hidden method declaration for its
// element position and appends it to the tree's own method list - Phase 1
// registration then allocates that element's node exactly the way it would
// any real declared return type, and every later `x[...]` for the same
// array symbol resolves to the identical registered symbol, so reads and
// writes through the same array share one TypeWithNode (spec 8, scenario 5:
// `arr[0] = input; return arr[0];`).
func (p *parser) buildIndexer(receiver boundtree.Node, idx boundtree.Node) boundtree.Node {
	ref, ok := receiver.(*boundtree.SymbolRef)
	if !ok || ref.Symbol == nil {
		p.fail("indexer receiver must be a plain array-typed reference")
	}
	arr, ok := ref.Symbol.DeclaredType().(*symbol.Array)
	if !ok {
		p.fail(fmt.Sprintf("%q is not an array", ref.Symbol.Name()))
	}

	method, ok := p.indexers[ref.Symbol]
	if !ok {
		pos := receiver.Pos()
		method = &methodSymbol{name: ref.Symbol.Name() + "[]", returnType: arr.Element}
		indexParam := &parameterSymbol{name: "index", container: method, declaredType: namedType("int", nil, nil), ordinal: 0}
		method.params = []symbol.Parameter{indexParam}

		decl := &boundtree.MethodDeclaration{
			Symbol:         method,
			ReturnType:     &boundtree.TypeSyntax{At: pos, Resolved: arr.Element},
			ParameterTypes: []*boundtree.TypeSyntax{{At: pos, Resolved: namedType("int", nil, nil)}},
		}
		decl.At = pos
		p.tree.Methods = append(p.tree.Methods, decl)

		p.indexers[ref.Symbol] = method
	}

	inv := &boundtree.Invocation{
		InvocationKind: boundtree.InvokeIndexer,
		Receiver:       receiver,
		Method:         method,
		Arguments:      []boundtree.Argument{{Value: idx}},
	}
	inv.At = receiver.Pos()
	return inv
}

// parseNew parses `new T[n]`, `new T[] { ... }`, or `new T()` optionally
// followed by a `{ Field = value, ... }` initializer (SPEC_FULL 3.1).
func (p *parser) parseNew() boundtree.Node {
	pos := p.advance().pos // 'new'
	typeName := p.expectIdentLike()

	if p.atPunct("[") {
		p.advance()
		var initializer []boundtree.Node
		if p.atPunct("]") {
			p.advance()
			p.expectPunct("{")
			for !p.atPunct("}") {
				initializer = append(initializer, p.parseExpr())
				if p.atPunct(",") {
					p.advance()
					continue
				}
			}
			p.expectPunct("}")
		} else {
			p.parseExpr() // element count; not itself a nullability position
			p.expectPunct("]")
		}
		elemType := &boundtree.TypeSyntax{At: pos, Resolved: namedType(typeName, nil, nil)}
		n := &boundtree.ArrayCreation{ElementType: elemType, Initializer: initializer}
		n.At = pos
		return n
	}

	ts := &boundtree.TypeSyntax{At: pos, Resolved: namedType(typeName, nil, nil)}
	oc := &boundtree.ObjectCreation{Type: ts}
	oc.At = pos

	if p.atPunct("(") {
		p.advance()
		// This grammar's classes declare no explicit constructors (fields
		// default per SPEC_FULL 3.1), so a constructor argument list is
		// always empty; ObjectCreation.Constructor stays nil.
		p.expectPunct(")")
	}

	if p.atPunct("{") {
		p.advance()
		fields := p.classes[typeName]
		for !p.atPunct("}") {
			fname, _ := p.expectIdent()
			p.expectPunct("=")
			val := p.parseExpr()
			f, ok := fields[fname]
			if !ok {
				p.fail(fmt.Sprintf("class %q has no field %q", typeName, fname))
			}
			oc.Initializers = append(oc.Initializers, boundtree.InitializerMember{Member: f, Value: val})
			if p.atPunct(",") {
				p.advance()
				continue
			}
		}
		p.expectPunct("}")
	}
	return oc
}

// tryParseCast disambiguates `(Type)expr` from a parenthesized expression
// the way a real binder would: an identifier in parens is a cast target
// only if it does not already resolve to a local, parameter, or field in
// scope (an unresolvable name, or a builtin value-type keyword, can only be
// a type here) and what follows the closing paren can start an expression.
func (p *parser) tryParseCast() (boundtree.Node, bool) {
	if !p.atPunct("(") {
		return nil, false
	}
	save := p.idx
	startPos := p.cur().pos
	p.advance() // '('

	if p.cur().kind != tokIdent && !p.atKeyword("void") {
		p.idx = save
		return nil, false
	}
	name := p.cur().text
	if _, resolved := p.resolve(name); resolved && !valueTypeNames[name] {
		if _, isTypeParam := p.lookupTypeParameter(name); !isTypeParam {
			p.idx = save
			return nil, false
		}
	}

	typ := p.parseTypeCore(p.cur().pos)
	if !p.atPunct(")") {
		p.idx = save
		return nil, false
	}
	p.advance() // ')'
	if !p.startsExpression() {
		p.idx = save
		return nil, false
	}

	operand := p.parseUnary()
	kind := boundtree.ConversionReference
	if typ.Resolved != nil && typ.Resolved.IsValueType() {
		if typ.Nullable {
			kind = boundtree.ConversionUnboxingToNullable
		} else {
			kind = boundtree.ConversionUnboxingToNonNullable
		}
	}
	n := &boundtree.Conversion{Kind: kind, Operand: operand, Target: typ}
	n.At = startPos
	return n, true
}

func (p *parser) startsExpression() bool {
	t := p.cur()
	switch t.kind {
	case tokIdent, tokIntLiteral, tokStringLiteral:
		return true
	case tokKeyword:
		switch t.text {
		case "true", "false", "null", "this", "new", "throw":
			return true
		}
		return false
	case tokPunct:
		return t.text == "("
	default:
		return false
	}
}

func (p *parser) parseParenOrTuple() boundtree.Node {
	pos := p.advance().pos // '('
	first := p.parseExpr()
	if p.atPunct(",") {
		elems := []boundtree.Node{first}
		for p.atPunct(",") {
			p.advance()
			elems = append(elems, p.parseExpr())
		}
		p.expectPunct(")")
		n := &boundtree.TupleLiteral{Elements: elems}
		n.At = pos
		return n
	}
	p.expectPunct(")")
	return first
}

// parseSwitchExpression parses `operand switch { pattern => value, ... }`
// (spec 4.3, "Pattern matching"; spec 8, scenario 8). Patterns are int
// literals or the wildcard `_`; a value of `null` marks the arm IsNullArm
// rather than visiting a NullLiteral node, matching visitSwitchExpression's
// own handling.
func (p *parser) parseSwitchExpression(operand boundtree.Node) boundtree.Node {
	pos := p.advance().pos // 'switch'
	p.expectPunct("{")

	var arms []boundtree.SwitchArm
	for !p.atPunct("}") {
		var pattern boundtree.Node
		if t := p.cur(); t.kind == tokIdent && t.text == "_" {
			p.advance()
		} else {
			pattern = p.parsePrimary()
		}

		p.expectPunct("=>")

		var value boundtree.Node
		isNullArm := false
		if p.atKeyword("null") {
			p.advance()
			isNullArm = true
		} else {
			value = p.parseExpr()
		}

		arms = append(arms, boundtree.SwitchArm{Pattern: pattern, IsNullArm: isNullArm, Value: value})
		if p.atPunct(",") {
			p.advance()
			continue
		}
	}
	p.expectPunct("}")

	n := &boundtree.SwitchExpression{Operand: operand, Arms: arms}
	n.At = pos
	return n
}
