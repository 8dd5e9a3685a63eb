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

package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nullgraph/nullgraph/solver"
	"github.com/nullgraph/nullgraph/typegraph"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func edgeChain(pos token.Pos, nodes ...*typegraph.Node) []*typegraph.Edge {
	var edges []*typegraph.Edge
	for i := 0; i+1 < len(nodes); i++ {
		edges = append(edges, &typegraph.Edge{Source: nodes[i], Target: nodes[i+1], Label: "test", Pos: pos})
	}
	return edges
}

func TestFromContradictionMessage(t *testing.T) {
	arena := typegraph.NewArena()
	n := arena.NewInferredNode("n")

	c := solver.Contradiction{
		Node:         n,
		NullablePath: edgeChain(1, typegraph.NullableSingleton, n),
		NonNullPath:  edgeChain(2, n, typegraph.NonNullSingleton),
	}

	d := FromContradiction(c)
	require.Contains(t, d.Message, "inferred both nullable and non-null")
	require.Len(t, d.Related, 2)
}

func TestGroupContradictionsMergesSharedNullablePath(t *testing.T) {
	arena := typegraph.NewArena()
	source := arena.NewInferredNode("shared-source")
	n1 := arena.NewInferredNode("n1")
	n2 := arena.NewInferredNode("n2")

	shared := edgeChain(10, typegraph.NullableSingleton, source)

	c1 := solver.Contradiction{Node: n1, NullablePath: shared, NonNullPath: edgeChain(11, n1, typegraph.NonNullSingleton)}
	c2 := solver.Contradiction{Node: n2, NullablePath: shared, NonNullPath: edgeChain(12, n2, typegraph.NonNullSingleton)}

	grouped := GroupContradictions([]solver.Contradiction{c1, c2})
	require.Len(t, grouped, 1)
	require.Contains(t, grouped[0].String(), "other place(s)")
}

func TestGroupContradictionsKeepsDistinctPathsSeparate(t *testing.T) {
	arena := typegraph.NewArena()
	n1 := arena.NewInferredNode("n1")
	n2 := arena.NewInferredNode("n2")

	c1 := solver.Contradiction{Node: n1, NullablePath: edgeChain(20, typegraph.NullableSingleton, n1), NonNullPath: edgeChain(21, n1, typegraph.NonNullSingleton)}
	c2 := solver.Contradiction{Node: n2, NullablePath: edgeChain(22, typegraph.NullableSingleton, n2), NonNullPath: edgeChain(23, n2, typegraph.NonNullSingleton)}

	grouped := GroupContradictions([]solver.Contradiction{c1, c2})
	require.Len(t, grouped, 2)
}

func TestFromRecoveredPanicMessage(t *testing.T) {
	d := FromRecoveredPanic("unit.src", "boom")
	require.Contains(t, d.Message, "unit.src")
	require.Contains(t, d.Message, "boom")
}
