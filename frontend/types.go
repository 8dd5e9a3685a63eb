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

// builtin value types are oblivious regardless of any trailing `?`, matching
// symbol.Type.IsValueType's role in the type system registry.
var valueTypeNames = map[string]bool{
	"int": true, "bool": true, "double": true, "long": true, "char": true,
}

func namedType(name string, args []symbol.Type, argVariance []symbol.Variance) *symbol.Named {
	return &symbol.Named{Name: name, Args: args, ValueType: valueTypeNames[name], ArgVariance: argVariance}
}

// parseType parses one type syntax occurrence: a name, optional generic
// argument list, and any number of trailing `[]`/`?` modifiers (`?` applies
// to whichever type it trails directly, so `string[]?` is a nullable array
// of non-nullable strings and `string?[]` is a non-nullable array of
// nullable strings).
func (p *parser) parseType() *boundtree.TypeSyntax {
	pos := p.cur().pos

	if p.atKeyword("var") {
		p.advance()
		return &boundtree.TypeSyntax{At: pos, IsVar: true}
	}

	ts := p.parseTypeCore(pos)

	for p.atPunct("[") {
		p.advance()
		p.expectPunct("]")
		element := ts
		ts = &boundtree.TypeSyntax{
			At:       pos,
			Resolved: &symbol.Array{Element: element.Resolved},
			Args:     []*boundtree.TypeSyntax{element},
		}
		if p.atPunct("?") {
			p.advance()
			ts.Nullable = true
		}
	}
	return ts
}

// parseTypeCore parses a bare name, its optional generic argument list, and
// a single trailing `?`, without array-suffix handling (parseType wraps
// this to apply `[]` after the fact so that `?` binds tighter than `[]`
// composes correctly for nested array types).
func (p *parser) parseTypeCore(pos token.Pos) *boundtree.TypeSyntax {
	name := p.expectIdentLike()

	if tp, ok := p.lookupTypeParameter(name); ok {
		ts := &boundtree.TypeSyntax{At: pos, Resolved: tp}
		if p.atPunct("?") {
			p.advance()
			ts.Nullable = true
		}
		return ts
	}

	var argSyntax []*boundtree.TypeSyntax
	if p.atPunct("<") {
		p.advance()
		for {
			argSyntax = append(argSyntax, p.parseType())
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
		p.expectPunct(">")
	}

	if name == "" {
		p.fail("expected a type name")
	}

	ts := &boundtree.TypeSyntax{At: pos}
	switch {
	case name == "Func" && len(argSyntax) > 0:
		params := make([]symbol.Type, len(argSyntax)-1)
		for i := 0; i < len(argSyntax)-1; i++ {
			params[i] = argSyntax[i].Resolved
		}
		ret := argSyntax[len(argSyntax)-1].Resolved
		ts.Resolved = &symbol.FunctionShape{Params: params, Return: ret}
		ts.Args = argSyntax
	case len(argSyntax) > 0:
		args := make([]symbol.Type, len(argSyntax))
		for i, a := range argSyntax {
			args[i] = a.Resolved
		}
		ts.Resolved = namedType(name, args, p.varianceFor(name))
		ts.Args = argSyntax
	default:
		ts.Resolved = namedType(name, nil, nil)
	}

	if p.atPunct("?") {
		p.advance()
		ts.Nullable = true
	}
	return ts
}

// varianceFor returns the declaration-site variance of a well-known
// generic type's arguments; anything unrecognized defaults to invariant,
// matching symbol.Named.VarianceOf's own default (spec 4.4).
func (p *parser) varianceFor(name string) []symbol.Variance {
	switch name {
	case "Sequence", "Enumerable", "IEnumerable", "IReadOnlyList":
		return []symbol.Variance{symbol.VarianceCovariant}
	default:
		return nil
	}
}

// expectIdentLike accepts an identifier or one of the builtin type
// keywords ("void", "this" is never a type) as a type name.
func (p *parser) expectIdentLike() string {
	t := p.cur()
	if t.kind == tokIdent || (t.kind == tokKeyword && t.text == "void") {
		p.advance()
		return t.text
	}
	p.fail(fmt.Sprintf("expected type name, got %q", t.text))
	return ""
}
