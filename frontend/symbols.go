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

import "github.com/nullgraph/nullgraph/symbol"

// moduleName marks every symbol the frontend produces as belonging to the
// single compilation unit the harness feeds through the pipeline in one
// shot; there is no notion of an external symbol in these snippets.
const moduleName = "harness-snippet"

// methodSymbol is the frontend's symbol.Method (and symbol.OperatorSymbol,
// where the parsed declaration is a conversion operator).
type methodSymbol struct {
	name       string
	container  symbol.Symbol
	returnType symbol.Type
	params     []symbol.Parameter
	typeParams []symbol.TypeParameter
	isStatic   bool
	isAsync    bool
	isIterator bool
	isConv     bool // conversion operator
}

func (m *methodSymbol) Name() string                      { return m.name }
func (m *methodSymbol) Kind() symbol.Kind                  { return symbol.KindMethod }
func (m *methodSymbol) Container() symbol.Symbol           { return m.container }
func (m *methodSymbol) DeclaredType() symbol.Type          { return m.returnType }
func (m *methodSymbol) DeclaredAnnotation() symbol.Annotation { return symbol.AnnotationNone }
func (m *methodSymbol) Module() string                     { return moduleName }
func (m *methodSymbol) ReturnType() symbol.Type            { return m.returnType }
func (m *methodSymbol) Parameters() []symbol.Parameter     { return m.params }
func (m *methodSymbol) TypeParameters() []symbol.TypeParameter { return m.typeParams }
func (m *methodSymbol) IsStatic() bool                     { return m.isStatic }
func (m *methodSymbol) IsAsync() bool                      { return m.isAsync }
func (m *methodSymbol) IsIterator() bool                   { return m.isIterator }
func (m *methodSymbol) ConversionOperator() bool           { return m.isConv }

// parameterSymbol is the frontend's symbol.Parameter.
type parameterSymbol struct {
	name         string
	container    symbol.Symbol
	declaredType symbol.Type
	ordinal      int
	refKind      symbol.RefKind
}

func (p *parameterSymbol) Name() string                      { return p.name }
func (p *parameterSymbol) Kind() symbol.Kind                  { return symbol.KindParameter }
func (p *parameterSymbol) Container() symbol.Symbol           { return p.container }
func (p *parameterSymbol) DeclaredType() symbol.Type          { return p.declaredType }
func (p *parameterSymbol) DeclaredAnnotation() symbol.Annotation { return symbol.AnnotationNone }
func (p *parameterSymbol) Module() string                     { return moduleName }
func (p *parameterSymbol) Ordinal() int                       { return p.ordinal }
func (p *parameterSymbol) RefKind() symbol.RefKind             { return p.refKind }

// localSymbol is the frontend's symbol.Local: block-scoped locals,
// `foreach` iteration variables, and pattern-match bindings all share this
// representation, mirroring opvisit's own broadened locals map.
type localSymbol struct {
	name         string
	container    symbol.Symbol
	declaredType symbol.Type
	implicit     bool
}

func (l *localSymbol) Name() string                      { return l.name }
func (l *localSymbol) Kind() symbol.Kind                  { return symbol.KindLocal }
func (l *localSymbol) Container() symbol.Symbol           { return l.container }
func (l *localSymbol) DeclaredType() symbol.Type          { return l.declaredType }
func (l *localSymbol) DeclaredAnnotation() symbol.Annotation { return symbol.AnnotationNone }
func (l *localSymbol) Module() string                     { return moduleName }
func (l *localSymbol) Implicit() bool                     { return l.implicit }

// fieldSymbol is the frontend's symbol.Field, used for the fields of the
// small class declarations the frontend parses (SPEC_FULL 3.1).
type fieldSymbol struct {
	name         string
	container    symbol.Symbol
	declaredType symbol.Type
}

func (f *fieldSymbol) Name() string                      { return f.name }
func (f *fieldSymbol) Kind() symbol.Kind                  { return symbol.KindField }
func (f *fieldSymbol) Container() symbol.Symbol           { return f.container }
func (f *fieldSymbol) DeclaredType() symbol.Type          { return f.declaredType }
func (f *fieldSymbol) DeclaredAnnotation() symbol.Annotation { return symbol.AnnotationNone }
func (f *fieldSymbol) Module() string                     { return moduleName }

// classSymbol stands in as the Container() of a class's own members; it is
// never itself passed to the type system as a Symbol.
type classSymbol struct {
	name string
}

func (c *classSymbol) Name() string                      { return c.name }
func (c *classSymbol) Kind() symbol.Kind                  { return symbol.KindField }
func (c *classSymbol) Container() symbol.Symbol           { return nil }
func (c *classSymbol) DeclaredType() symbol.Type          { return nil }
func (c *classSymbol) DeclaredAnnotation() symbol.Annotation { return symbol.AnnotationNone }
func (c *classSymbol) Module() string                     { return moduleName }
