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
	"strings"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/config"
	"github.com/nullgraph/nullgraph/symbol"
)

// parseError is the panic value every parsing failure raises; Parse recovers
// it at the top level and turns it into a returned error, matching how the
// rest of this module treats malformed input as a recoverable error rather
// than a programming-error panic (SPEC_FULL 1.1).
type parseError struct{ msg string }

func (e parseError) Error() string { return e.msg }

// parser combines lexing-consumption, parsing, and binding into one
// recursive-descent pass: as soon as a name is parsed it is resolved
// against the current scope, and the boundtree nodes this pass produces are
// already fully bound - there is no separate untyped-AST stage.
type parser struct {
	toks []tok
	idx  int

	scopes     []map[string]symbol.Symbol
	typeParams []map[string]*symbol.TypeParameter

	proven map[string]bool // locals/parameters currently proven non-null

	flow *flowOracle

	// indexers caches the synthetic builtin indexer method used for `x[i]`
	// against a given array-typed symbol, so repeated reads and writes of
	// the same array resolve to one shared TypeWithNode (design note
	// "Cyclic references" - the arena, not this cache, owns node identity;
	// this only ensures both occurrences ask the registry for the same
	// symbol).
	indexers map[symbol.Symbol]*methodSymbol

	// classes maps a declared class's name to its fields by name, so a
	// later `new ClassName { Field = value }` object creation can resolve
	// each initializer member (SPEC_FULL 3.1, struct-field defaults).
	classes map[string]map[string]*fieldSymbol

	// tree is the program currently being parsed. buildIndexer appends a
	// hidden method declaration to it the first time it sees a given
	// array indexed, so Phase 1 registration allocates that element
	// position's node exactly the way it would any real method's
	// declared return type - see buildIndexer's doc comment.
	tree *boundtree.Tree
}

// Parse parses one snippet into a boundtree.Tree with exactly the method and
// class declarations it contains, plus the non-null-flow oracle derived
// from its explicit null checks (design note "Non-null flow"). A tree whose
// source carries config.NoInferDirective in a `//` comment comes back with
// NoInfer set, so nullgraph.Run's Phase 1/2 can skip it entirely (useful for
// isolating unit tests from unrelated inference noise).
func Parse(path, src string) (tree *boundtree.Tree, flow boundtree.NonNullFlow, err error) {
	fset := token.NewFileSet()
	file := fset.AddFile(path, -1, len(src))

	toks, comments, lexErr := lex(file, src)
	if lexErr != nil {
		return nil, nil, lexErr
	}

	p := &parser{
		toks:     toks,
		scopes:   []map[string]symbol.Symbol{{}},
		proven:   map[string]bool{},
		flow:     &flowOracle{proven: map[token.Pos]bool{}},
		indexers: map[symbol.Symbol]*methodSymbol{},
		classes:  map[string]map[string]*fieldSymbol{},
	}

	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(parseError); ok {
				err = fmt.Errorf("frontend: %s", pe.msg)
				return
			}
			panic(r)
		}
	}()

	tree = p.parseProgram(path)
	for _, c := range comments {
		if strings.Contains(c, config.NoInferDirective) {
			tree.NoInfer = true
			break
		}
	}
	return tree, p.flow, nil
}

func (p *parser) fail(msg string) {
	panic(parseError{msg: fmt.Sprintf("%s (at token %d: %q)", msg, p.idx, p.cur().text)})
}

// --- token helpers ---

func (p *parser) cur() tok {
	if p.idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.idx]
}

func (p *parser) advance() tok {
	t := p.cur()
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	return t
}

func (p *parser) atEOF() bool { return p.cur().kind == tokEOF }

func (p *parser) atPunct(s string) bool  { t := p.cur(); return t.kind == tokPunct && t.text == s }
func (p *parser) atKeyword(s string) bool { t := p.cur(); return t.kind == tokKeyword && t.text == s }

func (p *parser) expectPunct(s string) token.Pos {
	if !p.atPunct(s) {
		p.fail(fmt.Sprintf("expected %q", s))
	}
	return p.advance().pos
}

func (p *parser) expectIdent() (string, token.Pos) {
	if p.cur().kind != tokIdent {
		p.fail("expected identifier")
	}
	t := p.advance()
	return t.text, t.pos
}

// --- scopes ---

func (p *parser) pushScope() { p.scopes = append(p.scopes, map[string]symbol.Symbol{}) }
func (p *parser) popScope()  { p.scopes = p.scopes[:len(p.scopes)-1] }

func (p *parser) declare(name string, sym symbol.Symbol) {
	p.scopes[len(p.scopes)-1][name] = sym
}

func (p *parser) resolve(name string) (symbol.Symbol, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if s, ok := p.scopes[i][name]; ok {
			return s, true
		}
	}
	return nil, false
}

func (p *parser) pushTypeParams(m map[string]*symbol.TypeParameter) {
	p.typeParams = append(p.typeParams, m)
}
func (p *parser) popTypeParams() { p.typeParams = p.typeParams[:len(p.typeParams)-1] }

func (p *parser) lookupTypeParameter(name string) (*symbol.TypeParameter, bool) {
	for i := len(p.typeParams) - 1; i >= 0; i-- {
		if tp, ok := p.typeParams[i][name]; ok {
			return tp, true
		}
	}
	return nil, false
}

// --- program / declarations ---

func (p *parser) parseProgram(path string) *boundtree.Tree {
	tree := &boundtree.Tree{Path: path}
	p.tree = tree
	for !p.atEOF() {
		if p.atKeyword("class") {
			tree.Classes = append(tree.Classes, p.parseClassDecl())
		} else {
			// Reserve the slot first: parsing the body can append synthetic
			// indexer methods to tree.Methods, which then follow this one.
			i := len(tree.Methods)
			tree.Methods = append(tree.Methods, nil)
			tree.Methods[i] = p.parseMethodDecl(nil, true)
		}
	}
	return tree
}

func (p *parser) parseClassDecl() *boundtree.ClassDeclaration {
	p.advance() // 'class'
	name, _ := p.expectIdent()
	p.expectPunct("{")

	cls := &classSymbol{name: name}
	decl := &boundtree.ClassDeclaration{Name: name}
	fields := map[string]*fieldSymbol{}

	for !p.atPunct("}") {
		fieldType := p.parseType()
		fieldName, fieldPos := p.expectIdent()
		p.expectPunct(";")

		f := &fieldSymbol{name: fieldName, container: cls, declaredType: fieldType.Resolved}
		fd := &boundtree.FieldDeclaration{Symbol: f, Type: fieldType}
		fd.At = fieldPos
		decl.Fields = append(decl.Fields, fd)
		fields[fieldName] = f
	}
	p.expectPunct("}")
	p.classes[name] = fields
	return decl
}

// parseMethodDecl parses `ReturnType Name<T...>? ( Params ) ( => Expr ; | Block )`.
// isTopLevel marks a static, container-less top-level declaration, the
// common case for harness snippets (spec 6, "the single declared method").
func (p *parser) parseMethodDecl(container symbol.Symbol, isTopLevel bool) *boundtree.MethodDeclaration {
	isAsync := false
	if p.atKeyword("async") {
		p.advance()
		isAsync = true
	}

	// The return type may reference a method type parameter declared after
	// it in `ReturnType Name<T>(...)` (e.g. `T Identity<T>(T value)`), so
	// the generic parameter list is discovered by lookahead and pushed into
	// scope before the return type itself is parsed.
	typeParamMap, typeParamList := p.prescanMethodTypeParams(p.idx)
	p.pushTypeParams(typeParamMap)
	defer p.popTypeParams()

	retType := p.parseType()
	name, _ := p.expectIdent()

	if p.atPunct("<") {
		p.advance()
		for !p.atPunct(">") {
			p.advance()
		}
		p.advance()
	}

	m := &methodSymbol{name: name, container: container, returnType: retType.Resolved, isStatic: isTopLevel, isAsync: isAsync, typeParams: typeParamList}
	if isTopLevel {
		// Declared before its own body is parsed so the method can recurse
		// and later top-level methods can call it; a top-level method
		// calling one declared after it in the same snippet is not
		// supported (no forward-reference pass, unlike a real binder).
		p.declare(name, m)
	}

	p.expectPunct("(")
	p.pushScope()
	defer p.popScope()

	var paramTypes []*boundtree.TypeSyntax
	ordinal := 0
	for !p.atPunct(")") {
		refKind := symbol.RefNone
		if p.atKeyword("params") {
			p.advance()
			refKind = symbol.RefParams
		}
		pt := p.parseType()
		pname, _ := p.expectIdent()
		param := &parameterSymbol{name: pname, container: m, declaredType: pt.Resolved, ordinal: ordinal, refKind: refKind}
		m.params = append(m.params, param)
		paramTypes = append(paramTypes, pt)
		p.declare(pname, param)
		ordinal++
		if p.atPunct(",") {
			p.advance()
			continue
		}
	}
	p.expectPunct(")")

	decl := &boundtree.MethodDeclaration{Symbol: m, ReturnType: retType, ParameterTypes: paramTypes}

	if p.atPunct("=>") {
		p.advance()
		decl.ExpressionBody = p.parseExpr()
		p.expectPunct(";")
	} else {
		decl.Body = p.parseBlock()
		m.isIterator = containsYieldReturn(decl.Body)
	}
	return decl
}

// prescanMethodTypeParams looks ahead from a method declaration's start to
// find its parameter-list opening `(` and, if immediately preceded by a
// `<...>` generic parameter list, extracts the type parameter names without
// consuming any tokens - the real parse below re-reads that list once the
// return type has already resolved against it.
func (p *parser) prescanMethodTypeParams(from int) (map[string]*symbol.TypeParameter, []symbol.TypeParameter) {
	depth := 0
	parenIdx := -1
	for i := from; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.kind == tokPunct {
			switch t.text {
			case "<", "[":
				depth++
			case ">", "]":
				if depth > 0 {
					depth--
				}
			case "(":
				if depth == 0 {
					parenIdx = i
				}
			}
		}
		if parenIdx >= 0 {
			break
		}
	}
	if parenIdx < from+1 {
		return nil, nil
	}
	if !(p.toks[parenIdx-1].kind == tokPunct && p.toks[parenIdx-1].text == ">") {
		return nil, nil
	}

	d := 0
	j := parenIdx - 1
	ltIdx := -1
	for j >= from {
		t := p.toks[j]
		if t.kind == tokPunct {
			if t.text == ">" {
				d++
			}
			if t.text == "<" {
				d--
				if d == 0 {
					ltIdx = j
					break
				}
			}
		}
		j--
	}
	if ltIdx <= from {
		return nil, nil
	}

	m := map[string]*symbol.TypeParameter{}
	var list []symbol.TypeParameter
	ordinal := 0
	for k := ltIdx + 1; k < parenIdx-1; k++ {
		t := p.toks[k]
		if t.kind == tokIdent {
			tp := &symbol.TypeParameter{Name: t.text, Ordinal: ordinal, OnClass: false}
			m[t.text] = tp
			list = append(list, *tp)
			ordinal++
		}
	}
	return m, list
}

func containsYieldReturn(stmts []boundtree.Node) bool {
	for _, s := range stmts {
		switch t := s.(type) {
		case *boundtree.YieldReturn:
			return true
		case *boundtree.IfStatement:
			if containsYieldReturn(t.Then) || containsYieldReturn(t.Else) {
				return true
			}
		}
	}
	return false
}

// --- statements ---

func (p *parser) parseBlock() []boundtree.Node {
	p.expectPunct("{")
	var stmts []boundtree.Node
	for !p.atPunct("}") {
		stmts = append(stmts, p.parseStatement())
	}
	p.expectPunct("}")
	return stmts
}

// parseStatementBody parses either a brace-delimited block or a single
// statement, the way an `if`/`else` arm without braces works.
func (p *parser) parseStatementBody() []boundtree.Node {
	if p.atPunct("{") {
		return p.parseBlock()
	}
	return []boundtree.Node{p.parseStatement()}
}

func (p *parser) parseStatement() boundtree.Node {
	switch {
	case p.atKeyword("return"):
		pos := p.advance().pos
		var val boundtree.Node
		if !p.atPunct(";") {
			val = p.parseExpr()
		}
		p.expectPunct(";")
		n := &boundtree.ReturnStatement{Value: val}
		n.At = pos
		return n

	case p.atKeyword("yield"):
		pos := p.advance().pos
		if !p.atKeyword("return") {
			p.fail("expected 'return' after 'yield'")
		}
		p.advance()
		val := p.parseExpr()
		p.expectPunct(";")
		n := &boundtree.YieldReturn{Value: val}
		n.At = pos
		return n

	case p.atKeyword("if"):
		return p.parseIfStatement()

	case p.atKeyword("foreach"):
		return p.parseForeach()

	case p.atKeyword("var"):
		return p.parseVarDecl()

	default:
		return p.parseExprStatementOrDecl()
	}
}

func (p *parser) parseIfStatement() boundtree.Node {
	pos := p.advance().pos // 'if'
	p.expectPunct("(")
	cond := p.parseCondition()
	p.expectPunct(")")

	var thenStmts []boundtree.Node
	if cond.valid && !cond.isEqualNull {
		thenStmts = p.parseStatementBodyWithProven(cond.checkedName)
	} else {
		thenStmts = p.parseStatementBody()
	}

	var elseStmts []boundtree.Node
	hasElse := false
	if p.atKeyword("else") {
		p.advance()
		hasElse = true
		if cond.valid && cond.isEqualNull {
			elseStmts = p.parseStatementBodyWithProven(cond.checkedName)
		} else {
			elseStmts = p.parseStatementBody()
		}
	}

	if cond.valid && cond.isEqualNull && !hasElse && blockAlwaysExits(thenStmts) {
		p.proven[cond.checkedName] = true
	}

	n := &boundtree.IfStatement{Condition: cond.node, Then: thenStmts, Else: elseStmts}
	n.At = pos
	return n
}

// parseStatementBodyWithProven parses a statement body with name
// temporarily proven non-null for its duration - the `x != null` branch of
// a null check (design note "Non-null flow").
func (p *parser) parseStatementBodyWithProven(name string) []boundtree.Node {
	prev, had := p.proven[name]
	p.proven[name] = true
	stmts := p.parseStatementBody()
	if had {
		p.proven[name] = prev
	} else {
		delete(p.proven, name)
	}
	return stmts
}

func blockAlwaysExits(stmts []boundtree.Node) bool {
	if len(stmts) == 0 {
		return false
	}
	switch stmts[len(stmts)-1].(type) {
	case *boundtree.ReturnStatement:
		return true
	case *boundtree.ThrowExpr:
		return true
	default:
		return false
	}
}

func (p *parser) parseForeach() boundtree.Node {
	pos := p.advance().pos // 'foreach'
	p.expectPunct("(")

	var varType *boundtree.TypeSyntax
	if p.atKeyword("var") {
		vpos := p.advance().pos
		varType = &boundtree.TypeSyntax{At: token.Pos(vpos), IsVar: true}
	} else {
		varType = p.parseType()
	}
	varName, _ := p.expectIdent()
	if !p.atKeyword("in") {
		p.fail("expected 'in' in foreach")
	}
	p.advance()
	collection := p.parseExpr()
	p.expectPunct(")")

	p.pushScope()
	defer p.popScope()

	local := &localSymbol{name: varName, declaredType: varType.Resolved, implicit: varType.IsVar}
	p.declare(varName, local)

	body := p.parseStatementBody()

	n := &boundtree.Foreach{Variable: local, VariableType: varType, Collection: collection, Body: body}
	if varType.IsVar {
		n.VariableType = nil
	}
	n.At = pos
	return n
}

func (p *parser) parseVarDecl() boundtree.Node {
	pos := p.advance().pos // 'var'
	name, _ := p.expectIdent()
	p.expectPunct("=")
	init := p.parseExpr()
	p.expectPunct(";")

	local := &localSymbol{name: name, implicit: true}
	if ac, ok := init.(*boundtree.ArrayCreation); ok {
		// `var arr = new T[...]` - a `var` local carries no declared-type
		// syntax of its own (spec 4.3), but the indexer parsed off of it
		// later still needs a static element type to build against.
		local.declaredType = &symbol.Array{Element: ac.ElementType.Resolved}
	}
	p.declare(name, local)

	n := &boundtree.VariableDeclaration{Local: local, Type: nil, Initializer: init}
	n.At = pos
	return n
}

// parseExprStatementOrDecl disambiguates `Type name = expr;` (a typed local
// declaration) from a bare expression statement by attempting to parse a
// type and identifier and checking what follows.
func (p *parser) parseExprStatementOrDecl() boundtree.Node {
	if p.looksLikeTypedLocalDecl() {
		pos := p.cur().pos
		declType := p.parseType()
		name, _ := p.expectIdent()

		local := &localSymbol{name: name, declaredType: declType.Resolved}
		var init boundtree.Node
		if p.atPunct("=") {
			p.advance()
			init = p.parseExprWithTarget(declType)
		}
		p.expectPunct(";")
		p.declare(name, local)

		n := &boundtree.VariableDeclaration{Local: local, Type: declType, Initializer: init}
		n.At = pos
		return n
	}

	pos := p.cur().pos
	expr := p.parseExpr()
	p.expectPunct(";")
	n := &boundtree.ExpressionStatement{Expression: expr}
	n.At = pos
	return n
}

// looksLikeTypedLocalDecl performs a bounded, non-consuming lookahead: an
// identifier (optionally with a generic argument list or array suffix)
// followed directly by another identifier is a declaration, never a valid
// expression statement in this grammar.
func (p *parser) looksLikeTypedLocalDecl() bool {
	if p.cur().kind != tokIdent {
		return false
	}
	i := p.idx + 1
	depth := 0
	for i < len(p.toks) {
		t := p.toks[i]
		if t.kind == tokPunct {
			switch t.text {
			case "<":
				depth++
				i++
				continue
			case ">":
				if depth > 0 {
					depth--
					i++
					continue
				}
			case "[":
				if depth == 0 {
					if i+1 < len(p.toks) && p.toks[i+1].kind == tokPunct && p.toks[i+1].text == "]" {
						i += 2
						continue
					}
				}
			case "?":
				if depth == 0 {
					i++
					continue
				}
			}
		}
		if depth > 0 && (t.kind == tokIdent || t.text == ",") {
			i++
			continue
		}
		break
	}
	return i < len(p.toks) && p.toks[i].kind == tokIdent
}

// --- conditions (non-null-flow detection) ---

type condInfo struct {
	node        boundtree.Node
	checkedName string
	isEqualNull bool
	valid       bool
}

func (p *parser) parseCondition() condInfo {
	if p.cur().kind == tokIdent {
		name := p.cur().text
		save := p.idx
		p.advance()

		if p.atPunct("==") || p.atPunct("!=") {
			neg := p.cur().text == "!="
			p.advance()
			if p.atKeyword("null") {
				nullPos := p.advance().pos
				return p.buildNullCheck(name, save, nullPos, neg)
			}
			p.idx = save
		} else if p.atKeyword("is") {
			p.advance()
			neg := false
			if p.atKeyword("not") {
				p.advance()
				neg = true
			}
			if p.atKeyword("null") {
				nullPos := p.advance().pos
				return p.buildNullCheck(name, save, nullPos, neg)
			}
			p.idx = save
		} else {
			p.idx = save
		}
	}
	return condInfo{node: p.parseExpr()}
}

func (p *parser) buildNullCheck(name string, identIdx int, pos token.Pos, negated bool) condInfo {
	sym, ok := p.resolve(name)
	if !ok {
		p.fail(fmt.Sprintf("undeclared identifier %q", name))
	}
	ref := &boundtree.SymbolRef{Symbol: sym}
	ref.At = p.toks[identIdx].pos
	chk := &boundtree.BinaryNullCheck{Operand: ref, Negated: negated}
	chk.At = pos
	return condInfo{node: chk, checkedName: name, isEqualNull: !negated, valid: true}
}
