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

package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nullgraph/nullgraph/typegraph"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func link(source, target *typegraph.Node) {
	typegraph.Link(typegraph.Spec(source, target, "test", 0))
}

func TestHasPathTransitive(t *testing.T) {
	arena := typegraph.NewArena()
	a := arena.NewInferredNode("a")
	b := arena.NewInferredNode("b")
	c := arena.NewInferredNode("c")
	link(a, b)
	link(b, c)

	require.True(t, HasPath(a, c))
	require.False(t, HasPath(c, a))
}

func TestHasPathSameNode(t *testing.T) {
	arena := typegraph.NewArena()
	n := arena.NewInferredNode("n")
	require.True(t, HasPath(n, n))
}

func TestSolveForcesNullableThroughSingleton(t *testing.T) {
	arena := typegraph.NewArena()
	n := arena.NewInferredNode("nullable-forced")
	link(typegraph.NullableSingleton, n)

	result := Solve([]*typegraph.Node{n})
	require.Len(t, result.Verdicts, 1)
	require.Equal(t, VerdictNullable, result.Verdicts[0].Verdict)
	require.Empty(t, result.Contradictions)
}

func TestSolveDefaultsUnforcedToNonNull(t *testing.T) {
	arena := typegraph.NewArena()
	n := arena.NewInferredNode("unforced")

	result := Solve([]*typegraph.Node{n})
	require.Len(t, result.Verdicts, 1)
	require.Equal(t, VerdictNonNull, result.Verdicts[0].Verdict)
}

func TestSolveReportsContradictionAndDefaultsToNullable(t *testing.T) {
	arena := typegraph.NewArena()
	n := arena.NewInferredNode("contradictory")
	link(typegraph.NullableSingleton, n)
	link(n, typegraph.NonNullSingleton)

	result := Solve([]*typegraph.Node{n})
	require.Len(t, result.Contradictions, 1)
	require.Equal(t, n, result.Contradictions[0].Node)
	require.Len(t, result.Verdicts, 1)
	require.Equal(t, VerdictNullable, result.Verdicts[0].Verdict)
}

func TestSolveSkipsSpecialSingletons(t *testing.T) {
	result := Solve([]*typegraph.Node{typegraph.NullableSingleton, typegraph.NonNullSingleton, typegraph.ObliviousSingleton})
	require.Empty(t, result.Verdicts)
}
