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

package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCommitOrdersByTreePathRegardlessOfInputOrder(t *testing.T) {
	arena := typegraph.NewArena()
	registry := typesystem.NewRegistry("mod", arena)

	var order []string
	record := func(path string) *Builder {
		b := New(path)
		b.RegisterNodes(arena.NewInferredNode(path))
		return b
	}

	bZ := record("z.src")
	bA := record("a.src")
	bM := record("m.src")

	committer := NewCommitter(registry)
	require.NoError(t, committer.Commit([]*Builder{bZ, bA, bM}, nil))

	for _, n := range registry.Nodes() {
		order = append(order, n.DebugName)
	}
	require.Equal(t, []string{"a.src", "m.src", "z.src"}, order)
}

func TestCommitStopsOnCancellation(t *testing.T) {
	arena := typegraph.NewArena()
	registry := typesystem.NewRegistry("mod", arena)

	b1 := New("a.src")
	b1.RegisterNodes(arena.NewInferredNode("a.src"))
	b2 := New("b.src")
	b2.RegisterNodes(arena.NewInferredNode("b.src"))

	calls := 0
	cancel := func() bool {
		calls++
		return calls > 1
	}

	committer := NewCommitter(registry)
	err := committer.Commit([]*Builder{b1, b2}, cancel)
	require.ErrorIs(t, err, ErrCancelled)
	require.Len(t, registry.Nodes(), 1)
}

func TestFlushLinksBufferedEdges(t *testing.T) {
	arena := typegraph.NewArena()
	registry := typesystem.NewRegistry("mod", arena)

	source := arena.NewInferredNode("source")
	target := arena.NewInferredNode("target")

	b := New("only.src")
	b.RegisterNodes(source, target)
	b.RegisterEdges(typegraph.Spec(source, target, "test edge", 0))

	committer := NewCommitter(registry)
	require.NoError(t, committer.Commit([]*Builder{b}, nil))

	require.Len(t, registry.Edges(), 1)
	require.Len(t, source.Outgoing(), 1)
	require.Len(t, target.Incoming(), 1)
}
