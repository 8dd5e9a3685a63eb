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

// Package nullgraph is the top-level facade that wires spec.md §2's five
// pipeline stages together: declaration registration, per-tree operation
// visiting, deterministic commit, and the reachability solve (SPEC_FULL.md
// §2.1). It plays the same role nilaway.go plays for the teacher, minus the
// go/analysis.Pass machinery - our compilation unit is a batch of already-
// bound trees, not a *packages.Package.
package nullgraph

import (
	"fmt"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/builder"
	"github.com/nullgraph/nullgraph/diagnostic"
	"github.com/nullgraph/nullgraph/opvisit"
	"github.com/nullgraph/nullgraph/solver"
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/syntaxvisit"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"

	"golang.org/x/tools/go/analysis"
)

// CompilationUnit is one syntax tree plus its harness-supplied non-null-flow
// oracle (spec.md §6's binder input contract). A CompilationUnit corresponds
// to one Builder; Run visits each unit's tree in turn (Phase 2 below), since
// the visitor filling a Builder allocates out of the one shared
// typegraph.Arena and can materialize external symbols directly into the
// shared typesystem.Registry - spec section 5's "independent per-tree
// builder" isolation covers Flush, not the visit itself.
type CompilationUnit struct {
	Tree *boundtree.Tree
	Flow boundtree.NonNullFlow
}

// Result is the output of running the whole pipeline (spec.md §6): the
// per-node verdicts, plus any contradiction/unsupported-construct
// diagnostics collected along the way.
type Result struct {
	Solve       solver.Result
	Diagnostics []analysis.Diagnostic
	Registry    *typesystem.Registry
}

// Analyzer wires the pipeline together for one run. CurrentModule identifies
// the compilation-unit-under-analysis (its symbols are looked up in the
// registry's own map rather than materialized lazily, per
// typesystem.Registry.GetSymbolType); TrustedNonNull is the SPEC_FULL §3.2
// allowlist of external qualified names to treat as non-null regardless of
// their declared annotation.
type Analyzer struct {
	CurrentModule   string
	TrustedNonNull  []string
	// Cancel is polled before each tree's body visit and at the start of each
	// builder's commit (spec section 5's cooperative cancellation).
	Cancel builder.CancelFunc
}

// Run executes stages 1-5 of spec.md §2 over units: Phase 1 registers every
// declared member's TypeWithNode directly into the registry (single-
// threaded, since declarations must be visible before any body is walked);
// Phase 2 builds one Builder per tree, recovering a panicking tree into an
// "unsupported construct" diagnostic rather than aborting the run (spec 7,
// SPEC_FULL §1.1); Phase 3 commits every builder in tree-path order; Phase 4
// solves the committed graph. A unit whose Tree.NoInfer is set (source
// carried config.NoInferDirective) is skipped by both phases, as if it were
// never passed in.
func (a *Analyzer) Run(units []CompilationUnit) (*Result, error) {
	arena := typegraph.NewArena()
	registry := typesystem.NewRegistry(a.CurrentModule, arena)
	registry.TrustNonNull(a.TrustedNonNull...)

	result := &Result{Registry: registry}

	builders := make([]*builder.Builder, 0, len(units))
	for _, unit := range units {
		if unit.Tree == nil || unit.Tree.NoInfer {
			continue
		}
		if err := registerDeclarations(registry, unit.Tree); err != nil {
			return nil, fmt.Errorf("nullgraph: registering declarations for %q: %w", unit.Tree.Path, err)
		}
	}

	for _, unit := range units {
		if unit.Tree == nil || unit.Tree.NoInfer {
			continue
		}
		if a.Cancel != nil && a.Cancel() {
			return nil, fmt.Errorf("nullgraph: visit: %w", builder.ErrCancelled)
		}
		b, diags := visitTree(registry, unit)
		builders = append(builders, b)
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	committer := builder.NewCommitter(registry)
	if err := committer.Commit(builders, a.Cancel); err != nil {
		return nil, fmt.Errorf("nullgraph: commit: %w", err)
	}

	var inferred []*typegraph.Node
	for _, n := range arena.Nodes() {
		if n.NullType == typegraph.Inferred {
			inferred = append(inferred, n)
		}
	}
	solved := solver.Solve(inferred)
	result.Solve = solved
	for _, grouped := range diagnostic.GroupContradictions(solved.Contradictions) {
		result.Diagnostics = append(result.Diagnostics, grouped.Diagnostic)
	}

	return result, nil
}

// registerDeclarations implements Phase 1 (spec.md §2, stage "declaration
// registration"): it walks a tree's classes and methods, visiting each
// declared member's type syntax through syntaxvisit and committing the
// result directly into the registry via AddSymbolType - exactly the
// treatment a real declared symbol gets, which is why the frontend's
// synthetic array-indexer method (frontend.buildIndexer) needs no special
// case here: it is simply another *boundtree.MethodDeclaration in
// tree.Methods.
func registerDeclarations(registry *typesystem.Registry, tree *boundtree.Tree) error {
	syn := syntaxvisit.New(registry, registry.Arena(), tree.Path)

	for _, m := range tree.Methods {
		if err := registerMethod(registry, syn, m); err != nil {
			return err
		}
	}
	for _, c := range tree.Classes {
		for _, f := range c.Fields {
			registry.AddSymbolType(f.Symbol, syn.Visit(f.Type))
		}
		for _, p := range c.Properties {
			registry.AddSymbolType(p.Symbol, syn.Visit(p.Type))
			for i, pt := range p.IndexParameterTypes {
				registerParam(registry, syn, p.Symbol.Parameters()[i], pt)
			}
			if p.Getter != nil {
				if err := registerMethod(registry, syn, p.Getter); err != nil {
					return err
				}
			}
			if p.Setter != nil {
				if err := registerMethod(registry, syn, p.Setter); err != nil {
					return err
				}
			}
		}
		for _, m := range c.Methods {
			if err := registerMethod(registry, syn, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func registerMethod(registry *typesystem.Registry, syn *syntaxvisit.Visitor, m *boundtree.MethodDeclaration) error {
	if m.Symbol == nil {
		return fmt.Errorf("method declaration at %v has no symbol", m.Pos())
	}
	if m.ReturnType != nil {
		registry.AddSymbolType(m.Symbol, syn.Visit(m.ReturnType))
	}
	params := m.Symbol.Parameters()
	if len(params) != len(m.ParameterTypes) {
		return fmt.Errorf("method %q: %d parameters but %d parameter type syntaxes", m.Symbol.Name(), len(params), len(m.ParameterTypes))
	}
	for i, pt := range m.ParameterTypes {
		registerParam(registry, syn, params[i], pt)
	}
	return nil
}

// registerParam skips aliased parameters (a property setter's implicit
// "value", or an indexer accessor's index parameters): GetSymbolType
// redirects those to their owning property/indexer, so registering them
// directly would either be dead weight or, worse, race the owner's own
// registration (typesystem.Registry.IsAliasedParameter, spec 4.1).
func registerParam(registry *typesystem.Registry, syn *syntaxvisit.Visitor, param symbol.Parameter, ts *boundtree.TypeSyntax) {
	if registry.IsAliasedParameter(param) {
		return
	}
	registry.AddSymbolType(param, syn.Visit(ts))
}

// visitTree implements Phase 2: build one Builder for unit's tree, walking
// every declared method's body (skipping declarations with neither a Body
// nor an ExpressionBody, i.e. synthetic ones like the array indexer). A
// panic from a malformed bound tree is recovered into a per-tree diagnostic
// rather than aborting the run (SPEC_FULL §1.1).
func visitTree(registry *typesystem.Registry, unit CompilationUnit) (b *builder.Builder, diags []analysis.Diagnostic) {
	b = builder.New(unit.Tree.Path)

	defer func() {
		if r := recover(); r != nil {
			diags = append(diags, diagnostic.FromRecoveredPanic(unit.Tree.Path, r))
		}
	}()

	syn := syntaxvisit.New(registry, registry.Arena(), unit.Tree.Path)
	ov := opvisit.New(registry, syn, b, unit.Flow)

	for _, m := range unit.Tree.Methods {
		visitMethodBody(ov, m)
	}
	for _, c := range unit.Tree.Classes {
		for _, m := range c.Methods {
			visitMethodBody(ov, m)
		}
		for _, p := range c.Properties {
			visitMethodBody(ov, p.Getter)
			visitMethodBody(ov, p.Setter)
		}
	}
	return b, diags
}

func visitMethodBody(ov *opvisit.Visitor, m *boundtree.MethodDeclaration) {
	if m == nil || (m.Body == nil && m.ExpressionBody == nil) {
		return
	}
	ov.VisitMethod(m)
}
