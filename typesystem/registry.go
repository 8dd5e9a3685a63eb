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

package typesystem

import (
	"fmt"
	"strings"

	"github.com/nullgraph/nullgraph/config"
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
)

// Registry is the shared, committed state described by spec 4.1. It is not
// thread-safe (spec section 5): exactly one committer flushes builders into
// it, serially, after each per-tree builder has finished its own local work.
type Registry struct {
	arena *typegraph.Arena

	// currentModule identifies the compilation unit being built. Symbols
	// whose Module() differs are external and materialized lazily.
	currentModule string

	bySymbol map[symbol.Symbol]TypeWithNode

	// treeMappings holds the syntax -> TypeWithNode cache described in spec
	// 4.2 ("or reuses the one recorded in the syntax->node mapping"),
	// keyed first by tree path then by the syntax node's identity (a
	// boundtree.TypeSyntax value, always a pointer, used here as an opaque
	// comparable key so this package need not import boundtree).
	treeMappings map[string]map[any]TypeWithNode

	// trustedNonNull is the supplemented trusted-external-function
	// allowlist (SPEC_FULL 3.2): qualified names forced to NotAnnotated
	// even when the binder reports AnnotationNone for them.
	trustedNonNull map[string]bool

	// allNodes and allEdges aggregate everything committed across every
	// tree's flush, for the solver's whole-graph queries.
	allNodes []*typegraph.Node
	allEdges []*typegraph.Edge
}

// NewRegistry constructs an empty Registry for the named compilation unit.
func NewRegistry(currentModule string, arena *typegraph.Arena) *Registry {
	return &Registry{
		arena:          arena,
		currentModule:  currentModule,
		bySymbol:       make(map[symbol.Symbol]TypeWithNode),
		treeMappings:   make(map[string]map[any]TypeWithNode),
		trustedNonNull: make(map[string]bool),
	}
}

// TrustNonNull adds a qualified external symbol name (as formatted by
// qualifiedName) to the trusted-nonnull allowlist (SPEC_FULL 3.2).
func (r *Registry) TrustNonNull(qualifiedNames ...string) {
	for _, n := range qualifiedNames {
		r.trustedNonNull[n] = true
	}
}

func qualifiedName(sym symbol.Symbol) string {
	if c := sym.Container(); c != nil {
		return qualifiedName(c) + "." + sym.Name()
	}
	return sym.Name()
}

// Arena exposes the underlying node arena, used by syntax/operation
// visitors that need to allocate fresh inferred nodes directly.
func (r *Registry) Arena() *typegraph.Arena { return r.arena }

// FromType constructs a TypeWithNode whose outer node (and every
// descendant's node) is chosen uniformly from annotation, per spec 4.1.
// Value-typed positions always get the oblivious node regardless of
// annotation (spec 3, TypeWithNode invariants).
func (r *Registry) FromType(t symbol.Type, annotation symbol.Annotation) TypeWithNode {
	if t == nil {
		return TypeWithNode{}
	}

	if t.IsValueType() {
		return r.fromValueType(t, annotation)
	}

	outer := outerNodeForAnnotation(annotation)
	return TypeWithNode{Type: t, Node: outer, Args: r.childArgs(t, annotation)}
}

func (r *Registry) fromValueType(t symbol.Type, annotation symbol.Annotation) TypeWithNode {
	return TypeWithNode{Type: t, Node: typegraph.ObliviousSingleton, Args: r.childArgs(t, annotation)}
}

func (r *Registry) childArgs(t symbol.Type, annotation symbol.Annotation) []TypeWithNode {
	switch tt := t.(type) {
	case *symbol.Named:
		args := make([]TypeWithNode, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = r.FromType(a, annotation)
		}
		return args
	case *symbol.NullableValue:
		return []TypeWithNode{r.FromType(tt.Element, annotation)}
	case *symbol.Array:
		return []TypeWithNode{r.FromType(tt.Element, annotation)}
	case *symbol.Tuple:
		args := make([]TypeWithNode, len(tt.Elements))
		for i, e := range tt.Elements {
			args[i] = r.FromType(e, annotation)
		}
		return args
	case *symbol.FunctionShape:
		args := make([]TypeWithNode, 0, len(tt.Params)+1)
		for _, p := range tt.Params {
			args = append(args, r.FromType(p, annotation))
		}
		args = append(args, r.FromType(tt.Return, annotation))
		return args
	default:
		return nil
	}
}

func outerNodeForAnnotation(annotation symbol.Annotation) *typegraph.Node {
	switch annotation {
	case symbol.AnnotationAnnotated:
		return typegraph.NullableSingleton
	case symbol.AnnotationNotAnnotated:
		return typegraph.NonNullSingleton
	default:
		return typegraph.ObliviousSingleton
	}
}

// AddSymbolType commits sym -> twn into the registry. Called by a builder's
// Flush (see package builder), where it is the transactional counterpart of
// the buffered AddSymbolType queued during a tree's build, and directly by
// package nullgraph's declaration pass (Run's Phase 1).
func (r *Registry) AddSymbolType(sym symbol.Symbol, twn TypeWithNode) {
	if existing, ok := r.bySymbol[sym]; ok {
		panic(fmt.Sprintf("nullgraph: symbol %q already registered with a different TypeWithNode", qualifiedName(sym)) +
			fmt.Sprintf(" (existing node %p, new node %p)", existing.Node, twn.Node))
	}
	r.bySymbol[sym] = twn
}

// AddNodes appends the nodes a flushed builder registered to the registry's
// node list (see Nodes). Nodes the syntax visitor allocates for declarations
// are not added here; the solver enumerates inferred nodes from the Arena.
func (r *Registry) AddNodes(nodes ...*typegraph.Node) {
	r.allNodes = append(r.allNodes, nodes...)
}

// AddEdges appends edges to the registry's whole-graph edge list, used for
// diagnostics and solver bookkeeping. The edges are already linked into
// their endpoints' incoming/outgoing lists by typegraph.Link when
// Builder.Flush applies them; this list exists purely for enumeration.
func (r *Registry) AddEdges(edges ...*typegraph.Edge) {
	r.allEdges = append(r.allEdges, edges...)
}

// Nodes returns every node a flushed builder registered so far, across
// every tree.
func (r *Registry) Nodes() []*typegraph.Node { return r.allNodes }

// Edges returns every edge committed so far, across every flushed tree.
func (r *Registry) Edges() []*typegraph.Edge { return r.allEdges }

// GetMapping returns the syntax->TypeWithNode cache for treePath, creating
// it if this is the first syntax occurrence seen for that tree.
func (r *Registry) GetMapping(treePath string) map[any]TypeWithNode {
	m, ok := r.treeMappings[treePath]
	if !ok {
		m = make(map[any]TypeWithNode)
		r.treeMappings[treePath] = m
	}
	return m
}

// GetSymbolType implements spec 4.1's GetSymbolType, including the property
// setter and indexer-accessor-parameter aliasing special cases.
func (r *Registry) GetSymbolType(sym symbol.Symbol) TypeWithNode {
	if param, ok := sym.(symbol.Parameter); ok {
		if alias, ok := r.aliasedParameterOwner(param); ok {
			return r.GetSymbolType(alias)
		}
	}

	if sym.Module() == r.currentModule {
		twn, ok := r.bySymbol[sym]
		if !ok {
			panic(fmt.Sprintf("nullgraph: symbol %q belongs to the current module but was never registered", qualifiedName(sym)))
		}
		return twn
	}

	// External symbol: materialize lazily from its declared annotation,
	// honoring the trusted-nonnull allowlist supplement (SPEC_FULL 3.2). A
	// symbol from one of nullgraph's own packages is never eligible for that
	// allowlist: the allowlist exists to paper over third-party annotation
	// gaps, not to loosen checking on the module's own scratch compilation
	// units (config.SelfModulePathPrefix).
	if twn, ok := r.bySymbol[sym]; ok {
		return twn
	}
	annotation := sym.DeclaredAnnotation()
	if r.trustedNonNull[qualifiedName(sym)] && !strings.HasPrefix(sym.Module(), config.SelfModulePathPrefix) {
		annotation = symbol.AnnotationNotAnnotated
	}
	twn := r.FromType(sym.DeclaredType(), annotation)
	r.bySymbol[sym] = twn
	return twn
}

// IsAliasedParameter reports whether param is the implicit setter "value"
// parameter or an indexer-accessor index parameter, either of which must be
// skipped during declaration registration since GetSymbolType redirects
// them to their owner rather than ever looking them up directly (spec 4.1).
func (r *Registry) IsAliasedParameter(param symbol.Parameter) bool {
	_, ok := r.aliasedParameterOwner(param)
	return ok
}

// aliasedParameterOwner implements the two aliasing rules from spec 4.1: the
// implicit "value" parameter of a property setter aliases to the property
// itself, and indexer accessor parameters below the indexer's own parameter
// count alias to the corresponding indexer parameter.
func (r *Registry) aliasedParameterOwner(param symbol.Parameter) (symbol.Symbol, bool) {
	accessor, ok := param.Container().(symbol.Method)
	if !ok {
		return nil, false
	}
	prop, ok := accessor.Container().(symbol.Property)
	if !ok {
		return nil, false
	}
	indexParams := prop.Parameters()

	if param.Name() == "value" && param.Ordinal() == len(indexParams) {
		return prop, true
	}
	if param.Ordinal() < len(indexParams) {
		return indexParams[param.Ordinal()], true
	}
	return nil, false
}
