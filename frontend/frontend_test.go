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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nullgraph/nullgraph/boundtree"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseExpressionBodiedMethod(t *testing.T) {
	tree, _, err := Parse("t.src", `string Test(string input) => input;`)
	require.NoError(t, err)
	require.Len(t, tree.Methods, 1)

	m := tree.Methods[0]
	require.Equal(t, "Test", m.Symbol.Name())
	require.Len(t, m.Symbol.Parameters(), 1)
	require.Equal(t, "input", m.Symbol.Parameters()[0].Name())
	require.NotNil(t, m.ExpressionBody)
	require.Empty(t, m.Body)
}

func TestParseBlockBodiedMethod(t *testing.T) {
	tree, _, err := Parse("t.src", `
		string Test(string input) {
			return input;
		}
	`)
	require.NoError(t, err)
	require.Len(t, tree.Methods, 1)

	m := tree.Methods[0]
	require.Nil(t, m.ExpressionBody)
	require.Len(t, m.Body, 1)
	_, ok := m.Body[0].(*boundtree.ReturnStatement)
	require.True(t, ok)
}

func TestParseClassDeclarationRegistersFields(t *testing.T) {
	tree, _, err := Parse("t.src", `
		class Widget {
			string Name;
			int Id;
		}
		string Test(Widget w) => w.Name;
	`)
	require.NoError(t, err)
	require.Len(t, tree.Classes, 1)

	cls := tree.Classes[0]
	require.Equal(t, "Widget", cls.Name)
	require.Len(t, cls.Fields, 2)
	require.Equal(t, "Name", cls.Fields[0].Symbol.Name())
	require.Equal(t, "Id", cls.Fields[1].Symbol.Name())
}

func TestParseRejectsUndeclaredIdentifier(t *testing.T) {
	_, _, err := Parse("t.src", `string Test() => missing;`)
	require.Error(t, err)
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	_, _, err := Parse("t.src", `string Test(string input) => input`)
	require.Error(t, err)
}

// The `x == null` branch that always returns proves x non-null for the
// remainder of the method, and the second reference to the parameter is
// recorded in the flow oracle at its own position (design note "Non-null
// flow"; spec.md §8 scenario 2).
func TestNonNullFlowMarksSecondUseNonNull(t *testing.T) {
	tree, flow, err := Parse("t.src", `
		string Test(string input) {
			if (input == null) return "null";
			return input;
		}
	`)
	require.NoError(t, err)
	require.Len(t, tree.Methods, 1)

	body := tree.Methods[0].Body
	require.Len(t, body, 2)

	ifStmt, ok := body[0].(*boundtree.IfStatement)
	require.True(t, ok)
	ret, ok := body[1].(*boundtree.ReturnStatement)
	require.True(t, ok)
	secondRef, ok := ret.Value.(*boundtree.SymbolRef)
	require.True(t, ok)

	// The condition's own reference to input is never proven - only the
	// later, dominated use is.
	check, ok := ifStmt.Condition.(*boundtree.BinaryNullCheck)
	require.True(t, ok)
	condRef, ok := check.Operand.(*boundtree.SymbolRef)
	require.True(t, ok)
	require.False(t, flow.IsNonNullAt(condRef.Pos()))
	require.True(t, flow.IsNonNullAt(secondRef.Pos()))
}

// A read and a write of the same array element resolve to the same
// synthesized indexer method, so both occurrences share one registered
// symbol (spec.md §8 scenario 5).
func TestArrayIndexerSharedAcrossReadsAndWrites(t *testing.T) {
	tree, _, err := Parse("t.src", `
		string Test(string input) {
			var arr = new string[1];
			arr[0] = input;
			return arr[0];
		}
	`)
	require.NoError(t, err)

	// One user-declared method plus exactly one synthesized indexer method,
	// however many times the array is indexed.
	require.Len(t, tree.Methods, 2)

	indexer := tree.Methods[1]
	require.Contains(t, indexer.Symbol.Name(), "[]")

	body := tree.Methods[0].Body
	require.Len(t, body, 3)

	assign, ok := body[1].(*boundtree.ExpressionStatement)
	require.True(t, ok)
	writeInv, ok := assign.Expression.(*boundtree.Assignment)
	require.True(t, ok)
	writeTarget, ok := writeInv.Target.(*boundtree.Invocation)
	require.True(t, ok)

	ret, ok := body[2].(*boundtree.ReturnStatement)
	require.True(t, ok)
	readInv, ok := ret.Value.(*boundtree.Invocation)
	require.True(t, ok)

	require.Equal(t, boundtree.InvokeIndexer, writeTarget.InvocationKind)
	require.Equal(t, boundtree.InvokeIndexer, readInv.InvocationKind)
	require.Same(t, writeTarget.Method, readInv.Method)
}

func TestParseGenericMethodDeclaresTypeParameter(t *testing.T) {
	tree, _, err := Parse("t.src", `T Identity<T>(T input) => input;`)
	require.NoError(t, err)
	require.Len(t, tree.Methods, 1)

	m := tree.Methods[0]
	require.Len(t, m.Symbol.TypeParameters(), 1)
	require.Equal(t, "T", m.Symbol.TypeParameters()[0].Name)
}
