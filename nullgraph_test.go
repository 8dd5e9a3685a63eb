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

package nullgraph

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/frontend"
	"github.com/nullgraph/nullgraph/solver"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func findMethod(tree *boundtree.Tree, name string) *boundtree.MethodDeclaration {
	for _, m := range tree.Methods {
		if m.Symbol.Name() == name {
			return m
		}
	}
	return nil
}

// A generic method call with no explicit type argument links the argument
// into the call's fresh substitution node, and that same node is the
// result's node (spec.md §8, "Generic method calls...").
func TestGenericCallLinksArgumentToResultAcrossMethods(t *testing.T) {
	src := `
		T Identity<T>(T value) => value;
		string Caller(string input) => Identity(input);
	`
	tree, flow, err := frontend.Parse("generic.src", src)
	require.NoError(t, err)

	analyzer := &Analyzer{CurrentModule: "harness-snippet"}
	result, err := analyzer.Run([]CompilationUnit{{Tree: tree, Flow: flow}})
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)

	caller := findMethod(tree, "Caller")
	require.NotNil(t, caller)

	param := result.Registry.GetSymbolType(caller.Symbol.Parameters()[0])
	ret := result.Registry.GetSymbolType(caller.Symbol)
	require.NotNil(t, param.Node)
	require.NotNil(t, ret.Node)
	require.True(t, solver.HasPath(param.Node, ret.Node))
}

// Two independent trees commit deterministically regardless of the order
// they're supplied in (spec section 5, "stable sort on tree path").
func TestRunMultipleTreesOrderIndependent(t *testing.T) {
	unitA := mustUnit(t, "a.src", `string A(string input) => input;`)
	unitB := mustUnit(t, "b.src", `string B(string input) { return "literal"; }`)

	forward := &Analyzer{CurrentModule: "harness-snippet"}
	r1, err := forward.Run([]CompilationUnit{unitA, unitB})
	require.NoError(t, err)

	backward := &Analyzer{CurrentModule: "harness-snippet"}
	r2, err := backward.Run([]CompilationUnit{unitB, unitA})
	require.NoError(t, err)

	require.Equal(t, len(r1.Solve.Verdicts), len(r2.Solve.Verdicts))
}

func mustUnit(t *testing.T, path, src string) CompilationUnit {
	t.Helper()
	tree, flow, err := frontend.Parse(path, src)
	require.NoError(t, err)
	return CompilationUnit{Tree: tree, Flow: flow}
}

// A malformed tree (nil Symbol on a declared method) fails declaration
// registration outright, since a method the registry cannot even name is a
// programming error in the binder collaborator, not a per-tree recoverable
// condition (spec 7, "internal assertions ... abort").
func TestRunFailsOnMethodWithNoSymbol(t *testing.T) {
	badTree := &boundtree.Tree{
		Path: "broken.src",
		Methods: []*boundtree.MethodDeclaration{
			{},
		},
	}
	analyzer := &Analyzer{CurrentModule: "harness-snippet"}
	_, err := analyzer.Run([]CompilationUnit{{Tree: badTree}})
	require.Error(t, err)
}

// unsupportedNode is a boundtree.Node opvisit has no case for; visitTree
// must recover the resulting panic into an "unsupported construct"
// diagnostic and let the rest of the run continue (spec 7, SPEC_FULL §1.1).
type unsupportedNode struct{ pos token.Pos }

func (n unsupportedNode) Pos() token.Pos { return n.pos }

func TestRunRecoversUnsupportedConstructIntoDiagnostic(t *testing.T) {
	tree, flow, err := frontend.Parse("broken.src", `string Test(string input) => input;`)
	require.NoError(t, err)

	target := findMethod(tree, "Test")
	require.NotNil(t, target)
	target.ExpressionBody = unsupportedNode{pos: target.Pos()}

	analyzer := &Analyzer{CurrentModule: "harness-snippet"}
	result, err := analyzer.Run([]CompilationUnit{{Tree: tree, Flow: flow}})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	require.Contains(t, result.Diagnostics[0].Message, "unsupported construct")
}
