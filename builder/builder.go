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

// Package builder implements spec 3's "Builder buffering": one Builder per
// syntax tree, buffering the symbol types, nodes, and edge specs an
// operation visitor emits for that tree, and a Committer that flushes every
// tree's buffer into the shared typesystem.Registry serially, in a
// deterministic order. Buffering a tree's own additions this way keeps
// Flush's registration and edge-linking a single, ordered pass rather than
// interleaving writes from every tree as they're visited; it does not by
// itself make visiting trees safe to run concurrently, since the visitors
// that fill a Builder's buffers allocate their nodes out of the one shared
// typegraph.Arena and can materialize external symbols directly into the
// shared typesystem.Registry (spec section 5's per-tree passes must
// therefore still run one at a time, not in parallel goroutines - see
// nullgraph.Run's Phase 2).
package builder

import (
	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"
)

type pendingSymbolType struct {
	Symbol symbol.Symbol
	Type   typesystem.TypeWithNode
}

// Builder accumulates one tree's additions - new nodes for locals and
// call-site generic instantiations, and the edges the operation visitor
// emits - without touching the shared registry's committed maps and
// lists. That isolation covers Flush's own bookkeeping, but the visitor
// filling a Builder still allocates through the shared typegraph.Arena and
// can read/write the shared typesystem.Registry when it resolves an
// external symbol (typesystem.Registry.GetSymbolType's lazy
// materialization), so building more than one tree's Builder at a time is
// not currently safe - Run visits trees one at a time for exactly this
// reason.
type Builder struct {
	TreePath string

	symbolTypes []pendingSymbolType
	nodes       []*typegraph.Node
	edges       []typegraph.EdgeSpec
}

// New returns an empty Builder for the named tree.
func New(treePath string) *Builder {
	return &Builder{TreePath: treePath}
}

// AddSymbolType queues sym -> twn for registration on Flush. Used for
// symbols local to this tree - most commonly locals declared inside a body,
// since declared members are registered before body-visiting begins (see
// package nullgraph's declaration pass).
func (b *Builder) AddSymbolType(sym symbol.Symbol, twn typesystem.TypeWithNode) {
	b.symbolTypes = append(b.symbolTypes, pendingSymbolType{Symbol: sym, Type: twn})
}

// RegisterNodes queues nodes this tree's visitors allocated for eventual
// whole-graph enumeration by the solver.
func (b *Builder) RegisterNodes(nodes ...*typegraph.Node) {
	b.nodes = append(b.nodes, nodes...)
}

// RegisterEdges queues edge specs emitted while visiting this tree. They
// are not linked into their endpoints' incoming/outgoing lists until Flush.
func (b *Builder) RegisterEdges(specs ...typegraph.EdgeSpec) {
	b.edges = append(b.edges, specs...)
}

// NodeCount and EdgeCount expose the buffer sizes.
func (b *Builder) NodeCount() int { return len(b.nodes) }
func (b *Builder) EdgeCount() int { return len(b.edges) }

// Flush transactionally applies every buffered addition to registry: it
// registers this tree's symbol types, links every buffered edge spec into
// the shared graph, and records the resulting nodes and edges into the
// registry's whole-graph lists. Flush must be called by the single
// committer that owns registry (spec section 5) - never concurrently with
// another Builder's Flush.
func (b *Builder) Flush(registry *typesystem.Registry) {
	for _, p := range b.symbolTypes {
		registry.AddSymbolType(p.Symbol, p.Type)
	}
	registry.AddNodes(b.nodes...)

	linked := make([]*typegraph.Edge, 0, len(b.edges))
	for _, spec := range b.edges {
		linked = append(linked, typegraph.Link(spec))
	}
	registry.AddEdges(linked...)
}
